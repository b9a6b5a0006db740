package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestLoginPersistsAccessToken(t *testing.T) {
	var gotBody loginRequest
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode login body: %v", err)
		}
		w.Write([]byte(`{"access_token": "tok-1", "token_type": "bearer"}`))
	})
	client, sess, _ := newTestClient(t, handler)

	if err := client.Login(context.Background(), "a@b.com", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if gotBody.Email != "a@b.com" || gotBody.Password != "secret123" {
		t.Fatalf("unexpected login payload: %+v", gotBody)
	}
	if sess.Token() != "tok-1" {
		t.Fatalf("expected token persisted, got %q", sess.Token())
	}
}

func TestLoginRejectsEmptyAccessToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token": "", "token_type": "bearer"}`))
	})
	client, sess, _ := newTestClient(t, handler)

	if err := client.Login(context.Background(), "a@b.com", "secret123"); err == nil {
		t.Fatalf("expected error for empty access token")
	}
	if sess.IsAuthenticated() {
		t.Fatalf("session must stay logged out")
	}
}

func TestRegisterDoesNotLogIn(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"id": 1, "email": "a@b.com", "username": "ana", "is_active": true}`))
	})
	client, sess, _ := newTestClient(t, handler)

	user, err := client.Register(context.Background(), "a@b.com", "ana", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "ana" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if sess.IsAuthenticated() {
		t.Fatalf("register must not store a token")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	client, sess, _ := newTestClient(t, http.NotFoundHandler())
	if err := sess.SetToken("tok"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	client.Logout()
	if sess.IsAuthenticated() {
		t.Fatalf("expected cleared session")
	}
	client.Logout() // idempotent
}
