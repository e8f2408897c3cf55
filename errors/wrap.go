package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with a code and message while preserving the original
// error for errors.Is, errors.As and errors.Unwrap.
//
// If err already carries a classification, it is preserved. Returns nil if
// err is nil.
//
// Example:
//
//	rc, err := bucket.Get(ctx, key)
//	if err != nil {
//	    return errors.Wrap(err, errors.CodeNetwork, "failed to open object")
//	}
func Wrap(err error, code ErrorCode, message string) Error {
	if err == nil {
		return nil
	}

	classification := getDefaultClassification(code)
	var e Error
	if errors.As(err, &e) {
		classification = e.Classification()
	}

	return &objfsError{
		code:           code,
		classification: classification,
		message:        message,
		cause:          err,
	}
}

// Wrapf wraps an error with a formatted message.
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) Error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps an error and attaches context metadata in one step.
// The context map is copied. Returns nil if err is nil.
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) Error {
	if err == nil {
		return nil
	}
	return WithContextMap(Wrap(err, code, message), ctx)
}
