package errors

// ErrorClassification indicates whether an error should trigger a retry.
// objfs never retries on its own; the classification is for callers.
type ErrorClassification string

const (
	// ClassificationRetryable indicates temporary failures that may succeed on retry.
	ClassificationRetryable ErrorClassification = "RETRYABLE"

	// ClassificationPermanent indicates failures that will not succeed on retry.
	ClassificationPermanent ErrorClassification = "PERMANENT"
)

// IsRetryable returns true if the classification indicates retry should be attempted.
func (c ErrorClassification) IsRetryable() bool {
	return c == ClassificationRetryable
}

var defaultClassifications = map[ErrorCode]ErrorClassification{
	CodeNetwork: ClassificationRetryable,
	CodeTimeout: ClassificationRetryable,

	CodeInvalidAddress:      ClassificationPermanent,
	CodeInvalidInput:        ClassificationPermanent,
	CodeInvalidConfig:       ClassificationPermanent,
	CodeNotFound:            ClassificationPermanent,
	CodeDecompressionFailed: ClassificationPermanent,
	CodeForbidden:           ClassificationPermanent,
	CodeInternal:            ClassificationPermanent,
	CodeUnknown:             ClassificationPermanent,
}

// getDefaultClassification returns the default classification for an error code.
// Unmapped codes are permanent.
func getDefaultClassification(code ErrorCode) ErrorClassification {
	if class, ok := defaultClassifications[code]; ok {
		return class
	}
	return ClassificationPermanent
}
