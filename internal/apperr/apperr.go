// Package apperr turns heterogeneous backend failures into user-facing
// messages and handles the error codes that demand side effects.
package apperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kirillkom/notelm-client/internal/api"
	"github.com/kirillkom/notelm-client/internal/session"
)

const (
	MsgBadRequest   = "Invalid request. Check your input and try again."
	MsgUnauthorized = "Authentication required. Please log in again."
	MsgForbidden    = "You do not have permission to perform this action."
	MsgNotFound     = "The requested resource was not found."
	MsgServerError  = "A server error occurred. Try again in a moment."
	MsgUnknown      = "An unknown error occurred."
)

// Message maps an error to a user-facing string: a structured or plain
// backend detail is returned verbatim, otherwise a fixed status-keyed
// table applies, otherwise the error speaks for itself.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		switch apiErr.StatusCode {
		case http.StatusBadRequest:
			return MsgBadRequest
		case http.StatusUnauthorized:
			return MsgUnauthorized
		case http.StatusForbidden:
			return MsgForbidden
		case http.StatusNotFound:
			return MsgNotFound
		case http.StatusInternalServerError:
			return MsgServerError
		default:
			return MsgUnknown
		}
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgUnknown
}

// HandleSpecial inspects the backend error code. An authentication error
// clears the session and fires the logout callback; the return value tells
// the caller its own generic handling should be suppressed.
func HandleSpecial(err error, sess *session.Session, onLogout func()) bool {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.ErrorCode {
	case "AUTHENTICATION_ERROR":
		sess.Clear()
		if onLogout != nil {
			onLogout()
		}
		return true
	case "FILE_UPLOAD_ERROR":
		// Surfaced inline at the upload call site.
		return false
	default:
		return false
	}
}

// Log writes one structured diagnostic line. A production error-reporting
// backend would hook in here.
func Log(logger *slog.Logger, err error, context string) {
	if logger == nil || err == nil {
		return
	}
	logger.Error("operation_failed",
		"context", context,
		"message", Message(err),
		"error", err,
	)
}
