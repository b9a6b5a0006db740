package api

import (
	"context"
	"fmt"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

type chatRequest struct {
	Message string `json:"message"`
}

type mindmapResponse struct {
	Mindmap domain.MindmapData `json:"mindmap"`
}

// Chat asks a question against the project's documents. Plain
// request/response; there is no streaming transport.
func (c *Client) Chat(ctx context.Context, projectID int64, question string) (domain.ChatAnswer, error) {
	var answer domain.ChatAnswer
	path := fmt.Sprintf("/api/rag/projects/%d/chat", projectID)
	if err := c.postJSON(ctx, "rag.chat", path, chatRequest{Message: question}, &answer); err != nil {
		return domain.ChatAnswer{}, err
	}
	return answer, nil
}

func (c *Client) ChatHistory(ctx context.Context, projectID int64, limit int) (domain.ChatHistory, error) {
	var history domain.ChatHistory
	path := fmt.Sprintf("/api/rag/projects/%d/chat/history", projectID)
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	if err := c.getJSON(ctx, "rag.history", path, &history); err != nil {
		return domain.ChatHistory{}, err
	}
	return history, nil
}

// Summarize generates a summary for one document, or for the whole
// project when documentID is nil.
func (c *Client) Summarize(ctx context.Context, projectID int64, documentID *int64) (domain.Summary, error) {
	path := fmt.Sprintf("/api/rag/projects/%d/summary", projectID)
	if documentID != nil {
		path = fmt.Sprintf("%s?document_id=%d", path, *documentID)
	}
	var summary domain.Summary
	if err := c.postJSON(ctx, "rag.summary", path, nil, &summary); err != nil {
		return domain.Summary{}, err
	}
	return summary, nil
}

func (c *Client) Mindmap(ctx context.Context, documentID int64) (domain.MindmapData, error) {
	var resp mindmapResponse
	path := fmt.Sprintf("/api/rag/documents/%d/mindmap", documentID)
	if err := c.postJSON(ctx, "rag.mindmap", path, nil, &resp); err != nil {
		return domain.MindmapData{}, err
	}
	return resp.Mindmap, nil
}
