package errors

import (
	"fmt"
	"io/fs"
)

// Error extends the standard error interface with structured information.
//
// Errors are compatible with errors.Is and errors.As. In addition, errors
// coded CodeNotFound, CodeForbidden and CodeInvalidAddress match the io/fs
// sentinels fs.ErrNotExist, fs.ErrPermission and fs.ErrInvalid, so callers
// that only know the io/fs conventions keep working.
type Error interface {
	error

	// Code returns the error code identifying the type of error.
	Code() ErrorCode

	// Classification returns whether the error is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the human-readable error message.
	Message() string

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error, or nil.
	Unwrap() error
}

// objfsError is the concrete implementation of Error.
type objfsError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	context        map[string]interface{}
	cause          error
}

// Error returns "[CODE] message" or "[CODE] message: cause".
func (e *objfsError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

func (e *objfsError) Code() ErrorCode                     { return e.code }
func (e *objfsError) Classification() ErrorClassification { return e.classification }
func (e *objfsError) Message() string                     { return e.message }
func (e *objfsError) Unwrap() error                       { return e.cause }

// Context returns a copy of the context map.
func (e *objfsError) Context() map[string]interface{} {
	if e.context == nil {
		return nil
	}
	ctx := make(map[string]interface{}, len(e.context))
	for k, v := range e.context {
		ctx[k] = v
	}
	return ctx
}

// Is maps error codes onto the io/fs sentinel errors.
func (e *objfsError) Is(target error) bool {
	switch target {
	case fs.ErrNotExist:
		return e.code == CodeNotFound
	case fs.ErrPermission:
		return e.code == CodeForbidden
	case fs.ErrInvalid:
		return e.code == CodeInvalidAddress
	}
	return false
}

// New creates a new Error with the given code and message.
// The classification is derived from the code.
//
// Example:
//
//	err := errors.New(errors.CodeNotFound, "object not found")
func New(code ErrorCode, message string) Error {
	return &objfsError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf creates a new Error with a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeInvalidAddress, "unsupported scheme %q", scheme)
func Newf(code ErrorCode, format string, args ...interface{}) Error {
	return New(code, fmt.Sprintf(format, args...))
}
