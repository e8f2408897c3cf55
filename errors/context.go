package errors

import "errors"

// WithContext adds a single context field to an error.
// Existing context fields are preserved.
//
// If err is not an Error, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContext(err, "address", "s3://walrus/data/foo")
func WithContext(err error, key string, value interface{}) Error {
	if err == nil {
		return nil
	}
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap adds multiple context fields to an error.
// New fields override existing ones with the same key.
//
// If err is not an Error, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) Error {
	if err == nil {
		return nil
	}

	var e Error
	if !errors.As(err, &e) {
		e = &objfsError{
			code:           CodeUnknown,
			classification: ClassificationPermanent,
			message:        err.Error(),
			cause:          err,
		}
	}

	merged := make(map[string]interface{}, len(ctx))
	for k, v := range e.Context() {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}

	return &objfsError{
		code:           e.Code(),
		classification: e.Classification(),
		message:        e.Message(),
		context:        merged,
		cause:          e.Unwrap(),
	}
}
