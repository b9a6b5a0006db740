package api

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

func fakeResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestStatusErrorParsesPlainDetail(t *testing.T) {
	err := newStatusError("projects.get", fakeResponse(404, `{"detail": "Project not found"}`))
	if err.Message != "Project not found" {
		t.Fatalf("expected plain detail, got %q", err.Message)
	}
	if err.ErrorCode != "" {
		t.Fatalf("expected no error code, got %q", err.ErrorCode)
	}
}

func TestStatusErrorParsesStructuredDetail(t *testing.T) {
	body := `{"detail": {"message": "Session expired", "error_code": "AUTHENTICATION_ERROR", "details": {"hint": "re-login"}}}`
	err := newStatusError("auth.me", fakeResponse(401, body))
	if err.Message != "Session expired" {
		t.Fatalf("expected structured message, got %q", err.Message)
	}
	if err.ErrorCode != "AUTHENTICATION_ERROR" {
		t.Fatalf("expected error code, got %q", err.ErrorCode)
	}
}

func TestStatusErrorToleratesNonJSONBody(t *testing.T) {
	err := newStatusError("documents.get", fakeResponse(502, "<html>bad gateway</html>"))
	if err.Message != "" {
		t.Fatalf("expected empty message for junk body, got %q", err.Message)
	}
	if err.StatusCode != 502 {
		t.Fatalf("expected status 502, got %d", err.StatusCode)
	}
}

func TestErrorUnwrapsToDomainKinds(t *testing.T) {
	cases := []struct {
		status int
		kind   error
	}{
		{401, domain.ErrUnauthorized},
		{404, domain.ErrNotFound},
		{400, domain.ErrInvalidInput},
		{422, domain.ErrInvalidInput},
		{500, domain.ErrTemporary},
		{503, domain.ErrTemporary},
	}
	for _, tc := range cases {
		err := &Error{Operation: "op", StatusCode: tc.status, Status: http.StatusText(tc.status)}
		if !domain.IsKind(err, tc.kind) {
			t.Fatalf("status %d should unwrap to %v", tc.status, tc.kind)
		}
	}

	forbidden := &Error{Operation: "op", StatusCode: 403, Status: "Forbidden"}
	if domain.IsKind(forbidden, domain.ErrUnauthorized) {
		t.Fatalf("403 must not unwrap to unauthorized")
	}
}

func TestErrorStringIncludesMessage(t *testing.T) {
	err := &Error{Operation: "rag.chat", StatusCode: 500, Status: "500 Internal Server Error", Message: "model overloaded"}
	want := "notelm rag.chat status: 500 Internal Server Error: model overloaded"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}
