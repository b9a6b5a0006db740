package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestUploadRejectsOversizedFileBeforeAnyRequest(t *testing.T) {
	requested := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	})
	client, _, _ := newTestClient(t, handler)

	size := int64(15 << 20)
	_, err := client.UploadDocument(context.Background(), 1, "big.pdf", size, bytes.NewReader(nil))

	var tooLarge *ErrFileTooLarge
	if !errors.As(err, &tooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if got := tooLarge.Error(); got != "file exceeds the 10 MB upload limit" {
		t.Fatalf("unexpected size-limit message: %q", got)
	}
	if requested {
		t.Fatalf("oversized upload must not reach the network")
	}
}

func TestUploadSendsMultipartFileAndProjectID(t *testing.T) {
	var gotFilename, gotProjectID, gotContent string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		gotProjectID = r.FormValue("project_id")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		var buf bytes.Buffer
		buf.ReadFrom(file)
		gotContent = buf.String()

		w.Write([]byte(`{"id": 42, "original_filename": "notes.txt", "processing_status": "pending", "project_id": 3}`))
	})
	client, _, _ := newTestClient(t, handler)

	content := "plain text body"
	doc, err := client.UploadDocument(context.Background(), 3, "notes.txt", int64(len(content)), strings.NewReader(content))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.ID != 42 {
		t.Fatalf("expected document 42, got %d", doc.ID)
	}
	if gotFilename != "notes.txt" || gotProjectID != "3" || gotContent != content {
		t.Fatalf("unexpected multipart payload: file=%q project_id=%q content=%q", gotFilename, gotProjectID, gotContent)
	}
}

func TestListDocumentsFoldsLegacyFields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("project_id"); got != "9" {
			t.Errorf("expected project_id=9, got %q", got)
		}
		w.Write([]byte(`{
			"documents": [
				{"id": 1, "name": "legacy.pdf", "size": 2097152, "content_type": "application/pdf", "processed": true},
				{"id": 2, "original_filename": "current.txt", "file_size": 10, "processing_status": "processing"}
			],
			"total": 2,
			"project_can_add_more": false
		}`))
	})
	client, _, _ := newTestClient(t, handler)

	list, err := client.ListDocuments(context.Background(), 9)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(list.Documents) != 2 || list.Total != 2 || list.ProjectCanAddMore {
		t.Fatalf("unexpected list envelope: %+v", list)
	}

	legacy := list.Documents[0]
	if legacy.OriginalFilename != "legacy.pdf" {
		t.Fatalf("legacy name not folded: %+v", legacy)
	}
	if legacy.FileSizeMB != 2.0 {
		t.Fatalf("expected 2 MB derived from size, got %v", legacy.FileSizeMB)
	}
	if !legacy.ProcessingStatus.Terminal() {
		t.Fatalf("processed=true should map to a terminal status, got %s", legacy.ProcessingStatus)
	}
}

func TestDownloadDocumentReturnsRawBytes(t *testing.T) {
	payload := []byte("%PDF-1.4 fake")
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents/5/download" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write(payload)
	})
	client, _, _ := newTestClient(t, handler)

	raw, err := client.DownloadDocument(context.Background(), 5)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if !bytes.Equal(raw, payload) {
		t.Fatalf("downloaded bytes differ")
	}
}
