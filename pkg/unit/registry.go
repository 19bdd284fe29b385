package unit

// Handler is one unit of business logic. Handlers are total: business failures
// come back as failure outcomes, never as errors.
type Handler func(Request) Outcome

func handlerRegistry() map[Function]Handler {
	return map[Function]Handler{
		FunctionGreet:     greet,
		FunctionValidate:  validate,
		FunctionTransform: transform,
		FunctionBranch:    branchExample,
	}
}

// Dispatch runs exactly one handler selected by req.Function.
func Dispatch(req Request) Outcome {
	fn := ParseFunction(req.Function)
	if fn == FunctionUnknown {
		return unknownFunction(req.Function)
	}
	h, ok := handlerRegistry()[fn]
	if !ok {
		return unknownFunction(req.Function)
	}
	return h(req)
}

func unknownFunction(name string) Outcome {
	return Fail("Unknown function: " + name)
}
