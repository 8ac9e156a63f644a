package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Provider call errors. A chunk that fails with one of these is never retried.
const (
	// ErrCodeTransport indicates a network, connection or timeout failure.
	ErrCodeTransport ErrorCode = "TRANSPORT_ERROR"
	// ErrCodeProvider indicates the provider rejected the request with a non-2xx status.
	ErrCodeProvider ErrorCode = "PROVIDER_ERROR"
	// ErrCodeDecode indicates a 2xx reply that was not the expected JSON.
	ErrCodeDecode ErrorCode = "DECODE_ERROR"
)

// Batch errors
const (
	// ErrCodeWorkerFault indicates a unit of work terminated abnormally.
	ErrCodeWorkerFault ErrorCode = "WORKER_FAULT"
	// ErrCodeAggregate indicates one or more chunks of a batch failed.
	ErrCodeAggregate ErrorCode = "AGGREGATE_FAILURE"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// ErrCodeInternal indicates an unexpected internal failure.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

// retryableCodes marks failures that a caller could reasonably retry.
// scribe itself never retries; the flag is informational.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeTransport: true,
	ErrCodeProvider:  false,
	ErrCodeDecode:    false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
