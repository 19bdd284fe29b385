package unit

// Function identifies which handler a request's function name selects.
type Function int

const (
	FunctionUnknown Function = iota
	FunctionGreet
	FunctionValidate
	FunctionTransform
	FunctionBranch
)

// ParseFunction maps a wire function name to a Function. Matching is exact and
// case-sensitive; anything unrecognized is FunctionUnknown.
func ParseFunction(name string) Function {
	switch name {
	case "execute", "greet":
		return FunctionGreet
	case "validate":
		return FunctionValidate
	case "transform":
		return FunctionTransform
	case "branch":
		return FunctionBranch
	default:
		return FunctionUnknown
	}
}

func (f Function) String() string {
	switch f {
	case FunctionGreet:
		return "greet"
	case FunctionValidate:
		return "validate"
	case FunctionTransform:
		return "transform"
	case FunctionBranch:
		return "branch_example"
	default:
		return "unknown"
	}
}

func supportedFunctions() []Function {
	return []Function{
		FunctionGreet,
		FunctionValidate,
		FunctionTransform,
		FunctionBranch,
	}
}
