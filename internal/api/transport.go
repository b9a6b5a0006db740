package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// call is the single entry point for every backend round trip. The body is
// held as bytes so idempotent calls can be retried with a fresh reader.
func (c *Client) call(
	ctx context.Context,
	operation, method, path string,
	body []byte,
	contentType string,
	out any,
	idempotent bool,
) error {
	return c.exec.Execute(ctx, operation, idempotent, func(ctx context.Context) error {
		return c.doOnce(ctx, operation, method, path, body, contentType, out)
	}, classifyError)
}

func (c *Client) getJSON(ctx context.Context, operation, path string, out any) error {
	return c.call(ctx, operation, http.MethodGet, path, nil, "", out, true)
}

func (c *Client) postJSON(ctx context.Context, operation, path string, payload, out any) error {
	body, contentType, err := encodeJSON(operation, payload)
	if err != nil {
		return err
	}
	return c.call(ctx, operation, http.MethodPost, path, body, contentType, out, false)
}

func (c *Client) putJSON(ctx context.Context, operation, path string, payload, out any) error {
	body, contentType, err := encodeJSON(operation, payload)
	if err != nil {
		return err
	}
	return c.call(ctx, operation, http.MethodPut, path, body, contentType, out, true)
}

func (c *Client) deleteJSON(ctx context.Context, operation, path string) error {
	return c.call(ctx, operation, http.MethodDelete, path, nil, "", nil, true)
}

func encodeJSON(operation string, payload any) ([]byte, string, error) {
	if payload == nil {
		return nil, "", nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("marshal %s request: %w", operation, err)
	}
	return body, "application/json", nil
}

func (c *Client) doOnce(
	ctx context.Context,
	operation, method, path string,
	body []byte,
	contentType string,
	out any,
) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	if token := c.sess.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(operation, 0, start)
		return fmt.Errorf("notelm %s request: %w", operation, err)
	}
	defer resp.Body.Close()
	c.record(operation, resp.StatusCode, start)

	if resp.StatusCode == http.StatusUnauthorized {
		statusErr := newStatusError(operation, resp)
		c.handleAuthExpired(operation)
		return statusErr
	}
	if resp.StatusCode >= 300 {
		return newStatusError(operation, resp)
	}

	switch target := out.(type) {
	case nil:
		return nil
	case *[]byte:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read %s response: %w", operation, err)
		}
		*target = raw
		return nil
	default:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
		return nil
	}
}

func (c *Client) record(operation string, statusCode int, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordRequest(serviceName, operation, statusCode, time.Since(start))
}
