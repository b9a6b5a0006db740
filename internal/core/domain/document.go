package domain

import (
	"encoding/json"
	"time"
)

type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusCompleted  DocumentStatus = "completed"
	StatusFailed     DocumentStatus = "failed"
)

// Document is the canonical document record. The backend went through two
// schema revisions; the wire adapter in UnmarshalJSON folds the legacy
// {name, size, content_type, processed} shape into the canonical fields so
// the ambiguity never leaves this package.
type Document struct {
	ID               int64          `json:"id"`
	Filename         string         `json:"filename"`
	OriginalFilename string         `json:"original_filename"`
	FileSize         int64          `json:"file_size"`
	FileSizeMB       float64        `json:"file_size_mb"`
	FileType         string         `json:"file_type"`
	ProcessingStatus DocumentStatus `json:"processing_status"`
	ContentLength    int64          `json:"content_length"`
	ChunkCount       int            `json:"chunk_count"`
	ProjectID        int64          `json:"project_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	ProcessedAt      *time.Time     `json:"processed_at,omitempty"`
	ProcessingError  string         `json:"processing_error,omitempty"`
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type canonical Document
	aux := struct {
		*canonical

		// Legacy revision fields.
		Name        string `json:"name"`
		Size        int64  `json:"size"`
		ContentType string `json:"content_type"`
		Processed   *bool  `json:"processed"`
		UploadDate  string `json:"upload_date"`
	}{canonical: (*canonical)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if d.Filename == "" && aux.Name != "" {
		d.Filename = aux.Name
	}
	if d.OriginalFilename == "" {
		d.OriginalFilename = d.Filename
	}
	if d.FileSize == 0 && aux.Size > 0 {
		d.FileSize = aux.Size
	}
	if d.FileSizeMB == 0 && d.FileSize > 0 {
		d.FileSizeMB = float64(d.FileSize) / (1024 * 1024)
	}
	if d.FileType == "" && aux.ContentType != "" {
		d.FileType = aux.ContentType
	}
	if d.ProcessingStatus == "" && aux.Processed != nil {
		if *aux.Processed {
			d.ProcessingStatus = StatusCompleted
		} else {
			d.ProcessingStatus = StatusPending
		}
	}
	if d.CreatedAt.IsZero() && aux.UploadDate != "" {
		if ts, err := time.Parse(time.RFC3339, aux.UploadDate); err == nil {
			d.CreatedAt = ts
		}
	}
	return nil
}

// Terminal reports whether the processing lifecycle reached an end state.
// The client only ever observes snapshots of the backend's state machine.
func (s DocumentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// DocumentList mirrors the list endpoint envelope.
type DocumentList struct {
	Documents         []Document `json:"documents"`
	Total             int        `json:"total"`
	ProjectCanAddMore bool       `json:"project_can_add_more"`
}

// ProcessingState mirrors the status endpoint payload.
type ProcessingState struct {
	Processed       bool   `json:"processed"`
	ProcessingError string `json:"processing_error,omitempty"`
	ChunksCount     int    `json:"chunks_count,omitempty"`
}
