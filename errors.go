package dicer

import (
	"github.com/pkg/errors"
)

// Kind classifies what part of a dicing operation failed.
type Kind int

const (
	// Spec indicates invalid Prefs or input shape, detected eagerly.
	Spec Kind = iota
	// Io indicates a failure at the filesystem collaborator boundary.
	Io
	// Image indicates a failure at the image codec collaborator boundary.
	Image
)

func (k Kind) String() string {
	switch k {
	case Spec:
		return "spec"
	case Io:
		return "io"
	case Image:
		return "image"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by every stage of the pipeline.
// No error is ever recovered inside the core; all propagate to the caller.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Msg
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// specErr builds a Spec error with a fixed message string.
func specErr(msg string) *Error {
	return &Error{Kind: Spec, Msg: msg}
}

// ioErr wraps a filesystem failure as an Io error.
func ioErr(msg string, cause error) *Error {
	return &Error{Kind: Io, Msg: msg, Err: errors.Wrap(cause, msg)}
}

// imageErr wraps a codec failure as an Image error.
func imageErr(msg string, cause error) *Error {
	return &Error{Kind: Image, Msg: msg, Err: errors.Wrap(cause, msg)}
}
