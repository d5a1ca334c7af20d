package errors

import (
	"encoding/json"
	stdErrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPErrorAdapter_StatusCodeFor(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: http.StatusOK},
		{name: "validation", err: ValidationError("bad input").Build(), expected: http.StatusBadRequest},
		{name: "not found", err: NotFoundError("no such page").Build(), expected: http.StatusNotFound},
		{name: "content", err: ContentError("bad record").Build(), expected: http.StatusUnprocessableEntity},
		{name: "internal", err: InternalError("boom").Build(), expected: http.StatusInternalServerError},
		{name: "unclassified", err: stdErrors.New("unknown"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.StatusCodeFor(tt.err); got != tt.expected {
				t.Errorf("StatusCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHTTPErrorAdapter_WriteErrorResponse(t *testing.T) {
	adapter := NewHTTPErrorAdapter(slog.Default())
	err := NotFoundError("page not found").WithContext("path", "/nope").Build()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	adapter.WriteErrorResponse(rec, req, err)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	var resp HTTPErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "page not found" || resp.Code != "not_found" {
		t.Errorf("unexpected payload %+v", resp)
	}
	if resp.Details["path"] != "/nope" {
		t.Errorf("expected details to carry path, got %v", resp.Details)
	}
}

func TestHTTPErrorAdapter_RetryableFlag(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)
	resp := adapter.FormatErrorResponse(FileSystemError("disk busy").Build())
	if !resp.Retryable {
		t.Error("expected filesystem errors to be reported as retryable")
	}
}
