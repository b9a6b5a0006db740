package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/kirillkom/notelm-client/internal/infrastructure/resilience"
	"github.com/kirillkom/notelm-client/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Session, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess, err := session.Open(filepath.Join(t.TempDir(), "token"))
	if err != nil {
		t.Fatalf("open session: %v", err)
	}

	client := New(Config{
		BaseURL:         srv.URL,
		Timeout:         5 * time.Second,
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		Resilience: resilience.Config{
			RetryMaxAttempts:    3,
			RetryInitialBackoff: 1 * time.Millisecond,
			RetryMaxBackoff:     2 * time.Millisecond,
			BreakerEnabled:      false,
		},
	}, sess)
	return client, sess, srv
}

func TestRequestsCarryBearerTokenAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`[]`))
	})
	client, sess, _ := newTestClient(t, handler)
	if err := sess.SetToken("abc123"); err != nil {
		t.Fatalf("set token: %v", err)
	}

	if _, err := client.ListProjects(context.Background()); err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestUnauthenticatedRequestsOmitAuthorizationHeader(t *testing.T) {
	var sawAuthHeader bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuthHeader = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	})
	client, _, _ := newTestClient(t, handler)

	if _, err := client.ListProjects(context.Background()); err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if sawAuthHeader {
		t.Fatalf("expected no Authorization header without a token")
	}
}

func TestUnauthorizedResponseClearsSessionAndNotifiesOnce(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "token expired"}`))
	})
	client, sess, _ := newTestClient(t, handler)
	if err := sess.SetToken("stale"); err != nil {
		t.Fatalf("set token: %v", err)
	}

	fired := 0
	client.authMu.Lock()
	client.onAuthExpired = func() { fired++ }
	client.authMu.Unlock()

	_, err := client.ListProjects(context.Background())
	if err == nil {
		t.Fatalf("expected error on 401")
	}
	if sess.IsAuthenticated() {
		t.Fatalf("expected session cleared after 401")
	}
	if fired != 1 {
		t.Fatalf("expected auth-expired callback exactly once, got %d", fired)
	}
}

func TestIdempotentGetRetriesServerErrors(t *testing.T) {
	attempts := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	})
	client, _, _ := newTestClient(t, handler)

	if _, err := client.ListProjects(context.Background()); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestPostIsNeverRetried(t *testing.T) {
	attempts := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client, _, _ := newTestClient(t, handler)

	if _, err := client.CreateProject(context.Background(), "t", ""); err == nil {
		t.Fatalf("expected error from failing POST")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt for POST, got %d", attempts)
	}
}

func TestNotFoundIsNotRetried(t *testing.T) {
	attempts := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "no such project"}`))
	})
	client, _, _ := newTestClient(t, handler)

	_, err := client.GetProject(context.Background(), 7)
	if err == nil {
		t.Fatalf("expected error on 404")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt for 404, got %d", attempts)
	}
}
