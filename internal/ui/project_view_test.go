package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

func documentList(ids ...int64) domain.DocumentList {
	list := domain.DocumentList{Total: len(ids), ProjectCanAddMore: true}
	for _, id := range ids {
		list.Documents = append(list.Documents, domain.Document{
			ID:               id,
			OriginalFilename: "doc",
			ProcessingStatus: domain.StatusCompleted,
		})
	}
	return list
}

func TestApplyDocumentsSelectsFirstOnInitialLoad(t *testing.T) {
	v := NewProjectView(domain.Project{ID: 1, Title: "p"})
	if v.Selected() != nil {
		t.Fatalf("empty view should have no selection")
	}

	v.ApplyDocuments(v.Documents.Begin(), documentList(10, 11), nil)
	sel := v.Selected()
	if sel == nil || sel.ID != 10 {
		t.Fatalf("expected first document auto-selected, got %+v", sel)
	}
}

func TestApplyDocumentsKeepsExplicitSelection(t *testing.T) {
	v := NewProjectView(domain.Project{ID: 1})
	v.ApplyDocuments(v.Documents.Begin(), documentList(10, 11), nil)
	if err := v.Select(11); err != nil {
		t.Fatalf("select: %v", err)
	}

	v.ApplyDocuments(v.Documents.Begin(), documentList(10, 11, 12), nil)
	if sel := v.Selected(); sel == nil || sel.ID != 11 {
		t.Fatalf("refresh must not steal the selection, got %+v", sel)
	}
}

func TestApplyDocumentsDropsVanishedSelection(t *testing.T) {
	v := NewProjectView(domain.Project{ID: 1})
	v.ApplyDocuments(v.Documents.Begin(), documentList(10, 11), nil)
	if err := v.Select(11); err != nil {
		t.Fatalf("select: %v", err)
	}

	// Document 11 was deleted server-side.
	v.ApplyDocuments(v.Documents.Begin(), documentList(10), nil)
	if sel := v.Selected(); sel == nil || sel.ID != 10 {
		t.Fatalf("vanished selection should fall back to the first document, got %+v", sel)
	}
}

func TestSelectUnknownDocumentFails(t *testing.T) {
	v := NewProjectView(domain.Project{ID: 1})
	v.ApplyDocuments(v.Documents.Begin(), documentList(10), nil)
	if err := v.Select(99); err == nil {
		t.Fatalf("expected error selecting unknown document")
	}
}

func TestApplyRefetchUpdatesDocumentInPlace(t *testing.T) {
	v := NewProjectView(domain.Project{ID: 1})
	v.ApplyDocuments(v.Documents.Begin(), documentList(10), nil)

	updated := domain.Document{ID: 10, OriginalFilename: "doc", ProcessingStatus: domain.StatusProcessing}
	v.ApplyRefetch(updated, nil)

	sel := v.Selected()
	if sel == nil || sel.ProcessingStatus != domain.StatusProcessing {
		t.Fatalf("refetch should update the stored document, got %+v", sel)
	}
}

func TestApplyRefetchFailureKeepsStatusAndDegradesSummary(t *testing.T) {
	v := NewProjectView(domain.Project{ID: 1})
	v.ApplyDocuments(v.Documents.Begin(), documentList(10), nil)
	v.SetSummary("real summary")

	v.ApplyRefetch(domain.Document{}, errors.New("backend down"))

	sel := v.Selected()
	if sel == nil || sel.ProcessingStatus != domain.StatusCompleted {
		t.Fatalf("failed refetch must keep the last known status, got %+v", sel)
	}
	if !v.SummaryFailed {
		t.Fatalf("expected degraded summary panel")
	}
	if !strings.HasPrefix(v.SummaryText, "Summary unavailable:") {
		t.Fatalf("fallback text must be clearly marked, got %q", v.SummaryText)
	}
}

func TestReplaceTranscriptReversesNewestFirstHistory(t *testing.T) {
	v := NewProjectView(domain.Project{ID: 1})
	v.ReplaceTranscript([]domain.ChatExchange{
		{ID: "newest", Message: "q2"},
		{ID: "oldest", Message: "q1"},
	})
	if len(v.Transcript) != 2 || v.Transcript[0].ID != "oldest" || v.Transcript[1].ID != "newest" {
		t.Fatalf("transcript must read oldest first: %+v", v.Transcript)
	}
}
