package query

import "errors"

// SyntaxError reports a search string that cannot be parsed or compiled.
// Callers map it to a client error; anything else is an internal failure.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return "Search syntax error: " + e.Msg
}

// NewSyntaxError is used by the planner for semantic failures
// (unknown field, bad field value) that share the syntax error prefix.
func NewSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{Msg: msg}
}

// IsSyntaxError reports whether err is or wraps a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}
