package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

// Error is the typed form of the backend error envelope:
// {"detail": {"message": ..., "error_code": ..., "details": ...}} or
// {"detail": "plain message"}.
type Error struct {
	Operation  string
	StatusCode int
	Status     string
	Message    string
	ErrorCode  string
}

func (e *Error) Error() string {
	if e == nil {
		return "notelm api error"
	}
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("notelm %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("notelm %s status: %s: %s", e.Operation, e.Status, strings.TrimSpace(e.Message))
}

// Unwrap maps the HTTP status onto the domain error kinds so callers can
// use domain.IsKind without inspecting status codes.
func (e *Error) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case e.StatusCode >= 500:
		return domain.ErrTemporary
	default:
		return nil
	}
}

type errorDetail struct {
	Message   string         `json:"message"`
	ErrorCode string         `json:"error_code"`
	Details   map[string]any `json:"details"`
}

type errorEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

// newStatusError drains up to 2KB of the failed response body and parses
// whichever envelope revision the backend produced.
func newStatusError(operation string, resp *http.Response) *Error {
	out := &Error{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return out
	}

	var plain string
	if err := json.Unmarshal(envelope.Detail, &plain); err == nil {
		out.Message = plain
		return out
	}

	var structured errorDetail
	if err := json.Unmarshal(envelope.Detail, &structured); err == nil {
		out.Message = structured.Message
		out.ErrorCode = structured.ErrorCode
	}
	return out
}
