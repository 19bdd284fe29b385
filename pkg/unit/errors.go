package unit

// DecodeError is a hard failure: the incoming request could not be parsed.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "Failed to parse input: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is a hard failure: the outcome could not be serialized.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return "Failed to serialize output: " + e.Err.Error() }
func (e *EncodeError) Unwrap() error { return e.Err }
