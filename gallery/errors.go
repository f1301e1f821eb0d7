package gallery

import (
	"errors"
	"fmt"

	"github.com/nonibytes/gallery/gallery/query"
)

type ErrorKind string

const (
	ErrIO         ErrorKind = "io"
	ErrSQL        ErrorKind = "sql"
	ErrSchema     ErrorKind = "schema"
	ErrQueryParse ErrorKind = "query_parse"
	ErrNotFound   ErrorKind = "not_found"
	ErrInvalid    ErrorKind = "invalid"
	ErrConflict   ErrorKind = "conflict"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Field   string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Field != "" {
		base = fmt.Sprintf("%s (field=%s)", base, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Wrap(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func NotFoundError(what string, id int64) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found: %d", what, id)}
}

func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsSyntaxError reports whether err was caused by an invalid search string.
// Such errors belong to the client; anything else is an internal failure.
func IsSyntaxError(err error) bool {
	return query.IsSyntaxError(err)
}

// wrapQuery classifies a failure from an operation that compiles a query.
func wrapQuery(msg string, err error) *Error {
	if query.IsSyntaxError(err) {
		return Wrap(ErrQueryParse, msg, err)
	}
	return Wrap(ErrSQL, msg, err)
}
