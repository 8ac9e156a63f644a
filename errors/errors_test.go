package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeDecode, "bad json")
	if err.Code != ErrCodeDecode {
		t.Errorf("expected code %s, got %s", ErrCodeDecode, err.Code)
	}
	if err.Message != "bad json" {
		t.Errorf("expected message 'bad json', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("DECODE_ERROR should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTransport, "connection reset")
	if !err.Retryable {
		t.Error("TRANSPORT_ERROR should be retryable")
	}
}

func TestAppError_Transport(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Transport("openai", cause)
	if err.Code != ErrCodeTransport {
		t.Errorf("expected TRANSPORT_ERROR, got %s", err.Code)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	if err.Details["provider"] != "openai" {
		t.Errorf("expected provider=openai, got %v", err.Details["provider"])
	}
}

func TestAppError_Provider(t *testing.T) {
	err := Provider("mistral", http.StatusUnauthorized, `{"message":"bad key"}`)
	if err.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", err.Status)
	}
	if err.Body != `{"message":"bad key"}` {
		t.Errorf("expected raw body to be kept, got %q", err.Body)
	}
	if err.Retryable {
		t.Error("401 should not be retryable")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in message, got %q", err.Error())
	}

	if !Provider("openai", http.StatusTooManyRequests, "").Retryable {
		t.Error("429 should be retryable")
	}
	if !Provider("openai", http.StatusBadGateway, "").Retryable {
		t.Error("502 should be retryable")
	}
}

func TestAppError_WorkerFault(t *testing.T) {
	err := WorkerFault(4, "index out of range")
	if err.Code != ErrCodeWorkerFault {
		t.Errorf("expected WORKER_FAULT, got %s", err.Code)
	}
	if err.Details["chunk"] != 4 {
		t.Errorf("expected chunk=4, got %v", err.Details["chunk"])
	}
	if err.Cause == nil || err.Cause.Error() != "index out of range" {
		t.Errorf("expected recovered value as cause, got %v", err.Cause)
	}

	sentinel := fmt.Errorf("boom")
	if !stderrors.Is(WorkerFault(0, sentinel), sentinel) {
		t.Error("expected recovered error to be unwrapped as-is")
	}
}

func TestAppError_InvalidInput_Success(t *testing.T) {
	err := InvalidInput("language", "must be a 2-letter code")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Details["field"] != "language" {
		t.Errorf("expected field=language, got %v", err.Details["field"])
	}
}

func TestAppError_MissingField(t *testing.T) {
	err := MissingField("api_key")
	if err.Code != ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %s", err.Code)
	}
	if !strings.Contains(err.Message, "api_key") {
		t.Errorf("expected field name in message, got %q", err.Message)
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := Internal(nil).WithDetail("a", 1).WithDetails(map[string]any{"b": 2})
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("expected merged details, got %v", err.Details)
	}
}

func TestAggregateError(t *testing.T) {
	causes := []error{
		fmt.Errorf("chunk 1: %w", Provider("openai", 500, "oops")),
		fmt.Errorf("chunk 3: %w", Transport("openai", fmt.Errorf("timeout"))),
	}
	err := NewAggregate(5, causes)

	if err.Failed != 2 || err.Total != 5 {
		t.Errorf("expected 2 of 5, got %d of %d", err.Failed, err.Total)
	}
	msg := err.Error()
	if !strings.Contains(msg, "failed to transcribe 2 of 5 chunks") {
		t.Errorf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, "chunk 1:") || !strings.Contains(msg, "chunk 3:") {
		t.Errorf("expected every cause listed, got %q", msg)
	}
	if !IsCode(err, ErrCodeAggregate) {
		t.Error("expected IsCode to match AGGREGATE_FAILURE")
	}
	if !IsCode(err, ErrCodeProvider) {
		t.Error("expected IsCode to find the wrapped provider error")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Decode("openai", fmt.Errorf("unexpected EOF")))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AppError to be found")
	}
	if appErr.Code != ErrCodeDecode {
		t.Errorf("expected DECODE_ERROR, got %s", appErr.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected plain error not to convert")
	}
	if IsAppError(nil) {
		t.Error("nil is not an AppError")
	}
}
