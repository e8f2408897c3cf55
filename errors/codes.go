// Package errors provides the structured error type used across objfs.
// Every failure carries an error code, a retry classification and optional
// context fields such as the address being operated on.
package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// Address errors.

	// CodeInvalidAddress indicates a path or URI could not be parsed or
	// names no resolvable object (for example a missing bucket component).
	CodeInvalidAddress ErrorCode = "INVALID_ADDRESS"

	// CodeInvalidInput indicates malformed caller input other than an address,
	// such as a glob pattern with an unterminated character class.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// Object errors.

	// CodeNotFound indicates the requested object does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeDecompressionFailed indicates compressed content was corrupt or truncated.
	CodeDecompressionFailed ErrorCode = "DECOMPRESSION_FAILED"

	// Transport errors.

	// CodeNetwork indicates the storage client failed to complete a request.
	CodeNetwork ErrorCode = "NETWORK_ERROR"

	// CodeTimeout indicates an operation exceeded its deadline or was cancelled.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeForbidden indicates the storage service denied access.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// System errors.

	// CodeInternal indicates an internal invariant was violated.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)
