package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

// SummarizeVideo uploads a video for transcription and summary. The
// endpoint sits outside the documents/projects resource families.
func (c *Client) SummarizeVideo(ctx context.Context, filename string, file io.Reader) (domain.VideoSummary, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return domain.VideoSummary{}, fmt.Errorf("create video form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return domain.VideoSummary{}, fmt.Errorf("read video file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return domain.VideoSummary{}, fmt.Errorf("finish video form: %w", err)
	}

	var summary domain.VideoSummary
	err = c.call(ctx, "videos.summary", "POST", "/api/videos/summary", buf.Bytes(), writer.FormDataContentType(), &summary, false)
	if err != nil {
		return domain.VideoSummary{}, err
	}
	return summary, nil
}
