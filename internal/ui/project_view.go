package ui

import (
	"fmt"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

// ProjectView is the state container behind the project detail screen:
// the document list, the current selection, the summary panel and the chat
// transcript. It holds no I/O; the shell feeds it fetch results.
type ProjectView struct {
	Project domain.Project

	Documents Resource[domain.DocumentList]

	selectedID int64

	SummaryText   string
	SummaryFailed bool

	// Transcript is this session's exchanges, oldest first. History
	// fetched from the backend replaces it wholesale.
	Transcript []domain.ChatExchange
}

func NewProjectView(project domain.Project) *ProjectView {
	return &ProjectView{Project: project}
}

// ApplyDocuments records a document list fetch. On the first successful
// load with no prior selection, the first document is selected
// automatically. Returns false for stale responses.
func (v *ProjectView) ApplyDocuments(gen uint64, list domain.DocumentList, err error) bool {
	if !v.Documents.Apply(gen, list, err) {
		return false
	}
	if err != nil {
		return true
	}
	if v.selectedID == 0 && len(list.Documents) > 0 {
		v.selectedID = list.Documents[0].ID
	}
	// Drop a selection that no longer exists server-side.
	if v.selectedID != 0 && v.findDocument(v.selectedID) == nil {
		v.selectedID = 0
		if len(list.Documents) > 0 {
			v.selectedID = list.Documents[0].ID
		}
	}
	return true
}

func (v *ProjectView) Select(documentID int64) error {
	if v.findDocument(documentID) == nil {
		return fmt.Errorf("no document %d in this project", documentID)
	}
	v.selectedID = documentID
	return nil
}

// Selected returns the currently selected document from the last known
// list, or nil.
func (v *ProjectView) Selected() *domain.Document {
	return v.findDocument(v.selectedID)
}

func (v *ProjectView) findDocument(id int64) *domain.Document {
	snap := v.Documents.Snapshot()
	if !snap.HasValue || id == 0 {
		return nil
	}
	for i := range snap.Value.Documents {
		if snap.Value.Documents[i].ID == id {
			return &snap.Value.Documents[i]
		}
	}
	return nil
}

// ApplyRefetch folds a single-document refetch into the list. When the
// refetch failed, the document keeps its last known status and the summary
// panel shows the error-wrapped fallback instead.
func (v *ProjectView) ApplyRefetch(doc domain.Document, err error) {
	if err != nil {
		v.SetSummaryFallback(err)
		return
	}

	snap := v.Documents.Snapshot()
	if !snap.HasValue {
		return
	}
	list := snap.Value
	for i := range list.Documents {
		if list.Documents[i].ID == doc.ID {
			list.Documents[i] = doc
			break
		}
	}
	gen := v.Documents.Begin()
	v.Documents.Apply(gen, list, nil)
}

func (v *ProjectView) SetSummary(text string) {
	v.SummaryText = text
	v.SummaryFailed = false
}

// SetSummaryFallback shows the degraded summary panel; the underlying
// message stays visible so the failure is never mistaken for content.
func (v *ProjectView) SetSummaryFallback(err error) {
	v.SummaryText = fmt.Sprintf("Summary unavailable: %v", err)
	v.SummaryFailed = true
}

func (v *ProjectView) AppendExchange(exchange domain.ChatExchange) {
	v.Transcript = append(v.Transcript, exchange)
}

func (v *ProjectView) ReplaceTranscript(chats []domain.ChatExchange) {
	// History arrives newest first; the transcript reads oldest first.
	reversed := make([]domain.ChatExchange, 0, len(chats))
	for i := len(chats) - 1; i >= 0; i-- {
		reversed = append(reversed, chats[i])
	}
	v.Transcript = reversed
}
