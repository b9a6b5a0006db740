package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

// ErrFileTooLarge marks an upload rejected by the client-side size gate
// before any network I/O happened.
type ErrFileTooLarge struct {
	LimitBytes int64
	SizeBytes  int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("file exceeds the %d MB upload limit", e.LimitBytes>>20)
}

func (c *Client) ListDocuments(ctx context.Context, projectID int64) (domain.DocumentList, error) {
	var list domain.DocumentList
	path := fmt.Sprintf("/api/documents/?project_id=%d", projectID)
	if err := c.getJSON(ctx, "documents.list", path, &list); err != nil {
		return domain.DocumentList{}, err
	}
	return list, nil
}

func (c *Client) GetDocument(ctx context.Context, documentID int64) (domain.Document, error) {
	var doc domain.Document
	path := fmt.Sprintf("/api/documents/%d", documentID)
	if err := c.getJSON(ctx, "documents.get", path, &doc); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

// UploadDocument sends the file as multipart form data (field "file" plus
// "project_id"). Files over the configured limit are rejected here, before
// any bytes leave the process.
func (c *Client) UploadDocument(ctx context.Context, projectID int64, filename string, size int64, file io.Reader) (domain.Document, error) {
	if size > c.maxUploadBytes {
		if c.metrics != nil {
			c.metrics.RecordUploadReject()
		}
		return domain.Document{}, &ErrFileTooLarge{LimitBytes: c.maxUploadBytes, SizeBytes: size}
	}

	body, contentType, err := buildUploadBody(projectID, filename, file)
	if err != nil {
		return domain.Document{}, err
	}

	var doc domain.Document
	if err := c.call(ctx, "documents.upload", "POST", "/api/documents/upload", body, contentType, &doc, false); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

func buildUploadBody(projectID int64, filename string, file io.Reader) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("create upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("read upload file: %w", err)
	}
	if err := writer.WriteField("project_id", strconv.FormatInt(projectID, 10)); err != nil {
		return nil, "", fmt.Errorf("write upload field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finish upload form: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

func (c *Client) DeleteDocument(ctx context.Context, documentID int64) error {
	path := fmt.Sprintf("/api/documents/%d", documentID)
	return c.deleteJSON(ctx, "documents.delete", path)
}

func (c *Client) DownloadDocument(ctx context.Context, documentID int64) ([]byte, error) {
	var raw []byte
	path := fmt.Sprintf("/api/documents/%d/download", documentID)
	if err := c.call(ctx, "documents.download", "GET", path, nil, "", &raw, true); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) DocumentStatus(ctx context.Context, documentID int64) (domain.ProcessingState, error) {
	var state domain.ProcessingState
	path := fmt.Sprintf("/api/documents/%d/status", documentID)
	if err := c.getJSON(ctx, "documents.status", path, &state); err != nil {
		return domain.ProcessingState{}, err
	}
	return state, nil
}

// ReprocessDocument kicks off server-side reprocessing. The status change
// is asynchronous; callers observe it by re-fetching the document.
func (c *Client) ReprocessDocument(ctx context.Context, documentID int64) error {
	path := fmt.Sprintf("/api/documents/%d/reprocess", documentID)
	return c.postJSON(ctx, "documents.reprocess", path, nil, nil)
}
