package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation could be retried by a caller.
	Retryable bool `json:"retryable"`
	// Status is the HTTP status returned by the provider (PROVIDER_ERROR only).
	Status int `json:"status,omitempty"`
	// Body is the raw provider response body, kept for diagnostics.
	Body string `json:"body,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Provider call errors ---

// Transport creates an error for a failure to reach the provider at all:
// DNS, refused connections, TLS, or the per-request timeout expiring.
func Transport(provider string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTransport, Message: fmt.Sprintf("request to %s failed", provider),
		Retryable: true, Cause: cause,
		Details: map[string]any{"provider": provider},
	}
}

// Provider creates an error for a non-2xx provider reply. The body is kept
// verbatim and is never parsed.
func Provider(provider string, status int, body string) *AppError {
	return &AppError{
		Code:      ErrCodeProvider,
		Message:   fmt.Sprintf("%s API error (%d %s): %s", provider, status, http.StatusText(status), body),
		Retryable: status == http.StatusTooManyRequests || status >= http.StatusInternalServerError,
		Status:    status,
		Body:      body,
		Details:   map[string]any{"provider": provider},
	}
}

// Decode creates an error for a 2xx reply whose body was not the expected JSON.
func Decode(provider string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeDecode, Message: fmt.Sprintf("failed to parse %s API response", provider),
		Cause: cause, Details: map[string]any{"provider": provider},
	}
}

// WorkerFault converts a recovered panic from a unit of work into an error.
func WorkerFault(index int, recovered any) *AppError {
	cause, ok := recovered.(error)
	if !ok {
		cause = fmt.Errorf("%v", recovered)
	}
	return &AppError{
		Code: ErrCodeWorkerFault, Message: fmt.Sprintf("worker for chunk %d terminated abnormally", index),
		Cause: cause, Details: map[string]any{"chunk": index},
	}
}

// --- Validation errors ---

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}

// --- Aggregate ---

// AggregateError reports every failing chunk of a batch. No partial
// transcript accompanies it.
type AggregateError struct {
	Failed int
	Total  int
	Causes []error
}

// NewAggregate builds an AggregateError for a batch of total chunks.
func NewAggregate(total int, causes []error) *AggregateError {
	return &AggregateError{Failed: len(causes), Total: total, Causes: causes}
}

// Error lists the failure count followed by one cause per line.
func (e *AggregateError) Error() string {
	msgs := make([]string, len(e.Causes))
	for i, c := range e.Causes {
		msgs[i] = c.Error()
	}
	return fmt.Sprintf("%s: failed to transcribe %d of %d chunks:\n%s",
		ErrCodeAggregate, e.Failed, e.Total, strings.Join(msgs, "\n"))
}

// Unwrap exposes the individual causes to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Causes }

// --- Inspection helpers ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err, or any error it wraps, is an AppError with code.
// An AggregateError matches ErrCodeAggregate.
func IsCode(err error, code ErrorCode) bool {
	if code == ErrCodeAggregate {
		var agg *AggregateError
		return stderrors.As(err, &agg)
	}
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
