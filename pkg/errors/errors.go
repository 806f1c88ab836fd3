// Package errors carries the storefront's typed error codes and their HTTP
// presentation.
package errors

import (
	stdErrors "errors"
	"net/http"
	"strings"
)

// Code classifies a failure for clients and logs.
type Code string

const (
	// CodeValidation is bad caller input: malformed ids, bodies, or query params.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeNotFound is an unknown product or route.
	CodeNotFound Code = "NOT_FOUND"
	// CodeInternal is a bug or a render failure.
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeDependency is a failing catalog upstream or visitor storage backend.
	CodeDependency Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code is presented over HTTP.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

// MetadataFor returns the presentation for code. Unknown codes present as
// internal errors.
func MetadataFor(code Code) Metadata {
	switch code {
	case CodeValidation:
		return Metadata{HTTPStatus: http.StatusBadRequest, PublicMessage: "validation failed", DetailsAllowed: true}
	case CodeNotFound:
		return Metadata{HTTPStatus: http.StatusNotFound, PublicMessage: "resource not found"}
	case CodeDependency:
		return Metadata{HTTPStatus: http.StatusServiceUnavailable, Retryable: true, PublicMessage: "dependency unavailable", DetailsAllowed: true}
	default:
		return Metadata{HTTPStatus: http.StatusInternalServerError, Retryable: true, PublicMessage: "internal server error"}
	}
}

// Status is shorthand for MetadataFor(c).HTTPStatus.
func (c Code) Status() int {
	return MetadataFor(c).HTTPStatus
}

// Error is a coded error with an optional operation name, public details,
// and an underlying cause.
type Error struct {
	code    Code
	op      string
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap attaches code and message to err. A nil err behaves like New.
func Wrap(code Code, err error, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Op names the storefront operation that failed, e.g. "cart.add".
func (e *Error) Op() string {
	if e == nil {
		return ""
	}
	return e.op
}

// WithOp records the failing operation.
func (e *Error) WithOp(op string) *Error {
	if e == nil {
		return nil
	}
	e.op = op
	return e
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

// Error renders "[op: ]CODE: message[: cause]".
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	if e.op != "" {
		b.WriteString(e.op)
		b.WriteString(": ")
	}
	b.WriteString(string(e.code))
	b.WriteString(": ")
	b.WriteString(e.message)
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As returns the outermost *Error in err's chain, or nil.
func As(err error) *Error {
	var typed *Error
	if err != nil && stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether the outermost coded error in err's chain has code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the outermost coded error, or "" for plain errors.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return ""
}
