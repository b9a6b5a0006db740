package api

import (
	"context"
	"fmt"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates an account and returns the new user. It does not log
// the user in; callers chain Login themselves.
func (c *Client) Register(ctx context.Context, email, username, password string) (domain.User, error) {
	var user domain.User
	err := c.postJSON(ctx, "auth.register", "/auth/register", registerRequest{
		Email:    email,
		Username: username,
		Password: password,
	}, &user)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login exchanges credentials for a bearer token and persists it in the
// session. It deliberately returns no user; callers fetch CurrentUser.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var token tokenResponse
	err := c.postJSON(ctx, "auth.login", "/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &token)
	if err != nil {
		return err
	}
	if token.AccessToken == "" {
		return fmt.Errorf("auth.login: empty access token in response")
	}
	return c.sess.SetToken(token.AccessToken)
}

func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var user domain.User
	if err := c.getJSON(ctx, "auth.me", "/auth/me", &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Logout drops the stored token. Idempotent, purely local.
func (c *Client) Logout() {
	c.sess.Clear()
}
