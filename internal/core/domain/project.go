package domain

import (
	"encoding/json"
	"time"
)

// Project is the canonical project record. Earlier backend revisions used
// "name" for the title and "user_id" for the owner; the adapter below folds
// both spellings into the canonical fields.
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Project) UnmarshalJSON(data []byte) error {
	type canonical Project
	aux := struct {
		*canonical

		Name   string `json:"name"`
		UserID int64  `json:"user_id"`
	}{canonical: (*canonical)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.Title == "" && aux.Name != "" {
		p.Title = aux.Name
	}
	if p.OwnerID == 0 && aux.UserID != 0 {
		p.OwnerID = aux.UserID
	}
	return nil
}

type ProjectStats struct {
	DocumentCount int    `json:"document_count"`
	MemberCount   int    `json:"member_count"`
	TotalSize     int64  `json:"total_size"`
	LastActivity  string `json:"last_activity"`
}
