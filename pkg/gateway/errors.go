package gateway

import "errors"

// Failure kinds. Every error returned by the gateway is an *Error whose Kind
// is one of these, so callers can match with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingCredential = errors.New("missing credential")
	ErrOperationFailed   = errors.New("operation failed")
	ErrOutputMissing     = errors.New("output missing")
)

// Error is a typed gateway failure.
type Error struct {
	Op    string
	Kind  error
	Field string // offending input or output field, when known
	Err   error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func invalidInput(op, field string, err error) *Error {
	return &Error{Op: op, Kind: ErrInvalidInput, Field: field, Err: err}
}
