package domain

import "time"

// ChatExchange is one question/answer pair. The canonical shape is the
// single-record form the history endpoint returns; the earlier two-record
// sender-tagged shape is not propagated past the service boundary.
type ChatExchange struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	Response   string    `json:"response"`
	CreatedAt  time.Time `json:"created_at"`
	TokensUsed int       `json:"tokens_used"`
	Sources    []int64   `json:"sources"`
	Rating     *int      `json:"rating,omitempty"`
}

type ChatAnswer struct {
	Message    string  `json:"message"`
	Sources    []int64 `json:"sources"`
	TokensUsed int     `json:"tokens_used"`
}

type ChatHistory struct {
	ProjectID  string         `json:"project_id"`
	TotalChats int            `json:"total_chats"`
	Chats      []ChatExchange `json:"chats"`
}

type Summary struct {
	Summary        string   `json:"summary"`
	DocumentTitles []string `json:"document_titles"`
	TokensUsed     int      `json:"tokens_used"`
}

type VideoSummary struct {
	Transcript string `json:"transcript"`
	Summary    string `json:"summary"`
}
