package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kirillkom/notelm-client/internal/apperr"
	"github.com/kirillkom/notelm-client/internal/core/domain"
	"github.com/kirillkom/notelm-client/internal/export"
	"github.com/kirillkom/notelm-client/internal/mindmap"
	"github.com/kirillkom/notelm-client/internal/upload"
)

const chatUnavailableMessage = "Sorry, the service is currently unavailable."

func (s *Shell) dispatchProject(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "docs":
		s.refreshDocuments(ctx)
	case "select":
		s.cmdSelect(args)
	case "upload":
		s.cmdUpload(ctx, args)
	case "download":
		s.cmdDownload(ctx, args)
	case "remove":
		s.cmdRemoveDocument(ctx)
	case "reprocess":
		s.cmdReprocess(ctx)
	case "status":
		s.cmdStatus(ctx)
	case "summary":
		s.cmdSummary(ctx, args)
	case "ask":
		s.cmdAsk(ctx, args)
	case "history":
		s.cmdHistory(ctx, args)
	case "export":
		s.cmdExport(ctx, args)
	case "mindmap":
		s.cmdMindmap(ctx, args)
	case "back":
		s.view = nil
	case "help":
		s.printHelp()
	default:
		printError(s.out, fmt.Sprintf("unknown command %q (try 'help')", cmd))
	}
}

// refreshDocuments is the project view's document fetch. Every call gets a
// generation token so a slow response cannot clobber a newer one, and a
// failed refresh keeps the last known list on screen with a stale banner
// instead of fabricating data.
func (s *Shell) refreshDocuments(ctx context.Context) {
	view := s.view
	gen := view.Documents.Begin()
	list, err := s.client.ListDocuments(ctx, view.Project.ID)
	if !view.ApplyDocuments(gen, list, err) {
		return
	}
	if err != nil {
		apperr.Log(s.logger, err, "documents.list")
		if apperr.HandleSpecial(err, s.sess, s.NotifyAuthExpired) {
			return
		}
		snap := view.Documents.Snapshot()
		if snap.Stale {
			printStaleBanner(s.out, apperr.Message(err))
			renderDocuments(s.out, snap.Value, s.selectedDocumentID())
			return
		}
		printError(s.out, apperr.Message(err))
		return
	}
	renderDocuments(s.out, list, s.selectedDocumentID())
}

func (s *Shell) selectedDocumentID() int64 {
	if doc := s.view.Selected(); doc != nil {
		return doc.ID
	}
	return 0
}

func (s *Shell) cmdSelect(args []string) {
	documentID, ok := parseID(s, args, "usage: select <document-id>")
	if !ok {
		return
	}
	if err := s.view.Select(documentID); err != nil {
		printError(s.out, err.Error())
		return
	}
	doc := s.view.Selected()
	printOK(s.out, fmt.Sprintf("selected #%d %s", doc.ID, doc.OriginalFilename))
}

func (s *Shell) cmdUpload(ctx context.Context, args []string) {
	if len(args) != 1 {
		printError(s.out, "usage: upload <path>")
		return
	}

	info, err := upload.Inspect(args[0], s.cfg.MaxUploadBytes)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordUploadReject()
		}
		printError(s.out, err.Error())
		return
	}
	if info.Warning != "" {
		fmt.Fprintln(s.out, staleStyle.Sprint("! "+info.Warning))
	}
	if info.PDFPages > 0 {
		fmt.Fprintln(s.out, dimStyle.Sprintf("uploading %s (%d pages, %.2f MB)", info.Filename, info.PDFPages, float64(info.Size)/(1024*1024)))
	}

	f, err := os.Open(info.Path)
	if err != nil {
		s.fail(err, "documents.upload")
		return
	}
	defer f.Close()

	doc, err := s.client.UploadDocument(ctx, s.view.Project.ID, info.Filename, info.Size, f)
	if err != nil {
		s.fail(err, "documents.upload")
		return
	}

	view := s.view
	gen := view.Documents.Begin()
	list, listErr := s.client.ListDocuments(ctx, view.Project.ID)
	view.ApplyDocuments(gen, list, listErr)
	if selErr := view.Select(doc.ID); selErr == nil {
		view.SetSummary("Document uploaded. Run \"reprocess\" to process it.")
	}
	printOK(s.out, fmt.Sprintf("uploaded #%d %s", doc.ID, doc.OriginalFilename))
}

func (s *Shell) cmdDownload(ctx context.Context, args []string) {
	doc := s.view.Selected()
	if doc == nil {
		printError(s.out, "no document selected")
		return
	}
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	raw, err := s.client.DownloadDocument(ctx, doc.ID)
	if err != nil {
		s.fail(err, "documents.download")
		return
	}
	target := filepath.Join(dir, doc.OriginalFilename)
	if err := os.WriteFile(target, raw, 0o644); err != nil {
		s.fail(err, "documents.download")
		return
	}
	printOK(s.out, fmt.Sprintf("saved %s (%d bytes)", target, len(raw)))
}

func (s *Shell) cmdRemoveDocument(ctx context.Context) {
	doc := s.view.Selected()
	if doc == nil {
		printError(s.out, "no document selected")
		return
	}
	if err := s.client.DeleteDocument(ctx, doc.ID); err != nil {
		s.fail(err, "documents.delete")
		return
	}
	printOK(s.out, fmt.Sprintf("deleted #%d %s", doc.ID, doc.OriginalFilename))
	s.refreshDocuments(ctx)
}

// cmdReprocess triggers server-side reprocessing and refetches the
// document to observe the status change. A failed refetch keeps the last
// known status and degrades the summary panel instead.
func (s *Shell) cmdReprocess(ctx context.Context) {
	doc := s.view.Selected()
	if doc == nil {
		printError(s.out, "no document selected")
		return
	}

	if err := s.client.ReprocessDocument(ctx, doc.ID); err != nil {
		s.fail(err, "documents.reprocess")
		return
	}

	updated, err := s.client.GetDocument(ctx, doc.ID)
	s.view.ApplyRefetch(updated, err)
	if err != nil {
		apperr.Log(s.logger, err, "documents.get")
		fmt.Fprintln(s.out, staleStyle.Sprint("! reprocess started but the refresh failed"))
		fmt.Fprintln(s.out, s.view.SummaryText)
		return
	}
	printOK(s.out, fmt.Sprintf("reprocessing #%d, status now %s", updated.ID, updated.ProcessingStatus))
}

func (s *Shell) cmdStatus(ctx context.Context) {
	doc := s.view.Selected()
	if doc == nil {
		printError(s.out, "no document selected")
		return
	}
	state, err := s.client.DocumentStatus(ctx, doc.ID)
	if err != nil {
		s.fail(err, "documents.status")
		return
	}
	if state.Processed {
		printOK(s.out, fmt.Sprintf("#%d processed (%d chunks)", doc.ID, state.ChunksCount))
		return
	}
	if state.ProcessingError != "" {
		printError(s.out, fmt.Sprintf("#%d failed: %s", doc.ID, state.ProcessingError))
		return
	}
	fmt.Fprintln(s.out, staleStyle.Sprintf("#%d still processing; try again shortly", doc.ID))
}

// cmdSummary generates a summary for the selected document, or the whole
// project with "summary project". AI failures degrade to the clearly
// marked fallback text rather than blocking the view.
func (s *Shell) cmdSummary(ctx context.Context, args []string) {
	var documentID *int64
	if len(args) == 1 && args[0] == "project" {
		documentID = nil
	} else {
		doc := s.view.Selected()
		if doc == nil {
			printError(s.out, "no document selected (use 'summary project' for the whole project)")
			return
		}
		documentID = &doc.ID
	}

	summary, err := s.client.Summarize(ctx, s.view.Project.ID, documentID)
	if err != nil {
		apperr.Log(s.logger, err, "rag.summary")
		if apperr.HandleSpecial(err, s.sess, s.NotifyAuthExpired) {
			return
		}
		if s.metrics != nil {
			s.metrics.RecordAIFallback("notelm-client", "summary")
		}
		s.view.SetSummaryFallback(err)
		fmt.Fprintln(s.out, staleStyle.Sprint("! AI generation failed"))
		fmt.Fprintln(s.out, s.view.SummaryText)
		return
	}

	s.view.SetSummary(summary.Summary)
	fmt.Fprintln(s.out, headerStyle.Sprint("Summary"))
	fmt.Fprintln(s.out, summary.Summary)
	if len(summary.DocumentTitles) > 0 {
		fmt.Fprintln(s.out, dimStyle.Sprintf("based on: %s (%d tokens)", strings.Join(summary.DocumentTitles, ", "), summary.TokensUsed))
	}
}

// cmdAsk sends a chat question. A failed call appends the fixed apology
// exchange so the transcript keeps the question visible.
func (s *Shell) cmdAsk(ctx context.Context, args []string) {
	if len(args) == 0 {
		printError(s.out, "usage: ask <question>")
		return
	}
	question := strings.Join(args, " ")

	answer, err := s.client.Chat(ctx, s.view.Project.ID, question)
	if err != nil {
		apperr.Log(s.logger, err, "rag.chat")
		if apperr.HandleSpecial(err, s.sess, s.NotifyAuthExpired) {
			return
		}
		s.view.AppendExchange(domain.ChatExchange{
			Message:   question,
			Response:  chatUnavailableMessage,
			CreatedAt: time.Now(),
		})
		printError(s.out, apperr.Message(err))
		fmt.Fprintf(s.out, "%s %s\n", okStyle.Sprint("ai: "), chatUnavailableMessage)
		return
	}

	s.view.AppendExchange(domain.ChatExchange{
		Message:    question,
		Response:   answer.Message,
		CreatedAt:  time.Now(),
		TokensUsed: answer.TokensUsed,
		Sources:    answer.Sources,
	})
	fmt.Fprintf(s.out, "%s %s\n", okStyle.Sprint("ai: "), answer.Message)
	if len(answer.Sources) > 0 {
		fmt.Fprintln(s.out, dimStyle.Sprintf("sources: %v (%d tokens)", answer.Sources, answer.TokensUsed))
	}
}

func (s *Shell) cmdHistory(ctx context.Context, args []string) {
	limit := 20
	if len(args) == 1 {
		if id, ok := parseID(s, args, "usage: history [limit]"); ok {
			limit = int(id)
		} else {
			return
		}
	}

	history, err := s.client.ChatHistory(ctx, s.view.Project.ID, limit)
	if err != nil {
		s.fail(err, "rag.history")
		return
	}
	s.view.ReplaceTranscript(history.Chats)
	renderTranscript(s.out, s.view.Transcript)
}

func (s *Shell) cmdExport(ctx context.Context, args []string) {
	if len(args) != 1 || !strings.HasSuffix(args[0], ".xlsx") {
		printError(s.out, "usage: export <file.xlsx>")
		return
	}

	history, err := s.client.ChatHistory(ctx, s.view.Project.ID, 0)
	if err != nil {
		s.fail(err, "rag.history")
		return
	}
	if err := export.WriteChatHistory(args[0], s.view.Project, history); err != nil {
		s.fail(err, "export.history")
		return
	}
	printOK(s.out, fmt.Sprintf("exported %d exchanges to %s", len(history.Chats), args[0]))
}

// cmdMindmap renders the mindmap for the selected document. Generation
// failure substitutes the deterministic placeholder, always behind a
// visible banner so it cannot pass for real analysis.
func (s *Shell) cmdMindmap(ctx context.Context, args []string) {
	doc := s.view.Selected()
	if doc == nil {
		printError(s.out, "no document selected")
		return
	}

	data, err := s.client.Mindmap(ctx, doc.ID)
	placeholder := false
	if err != nil {
		apperr.Log(s.logger, err, "rag.mindmap")
		if apperr.HandleSpecial(err, s.sess, s.NotifyAuthExpired) {
			return
		}
		if s.metrics != nil {
			s.metrics.RecordAIFallback("notelm-client", "mindmap")
		}
		data = domain.PlaceholderMindmap(doc.OriginalFilename)
		placeholder = true
	}

	layout := mindmap.Compute(data)
	if placeholder {
		fmt.Fprintln(s.out, staleStyle.Sprint("! AI generation failed - showing placeholder structure"))
	}
	mindmap.WriteTree(s.out, layout)

	if len(args) == 2 && args[0] == "svg" {
		f, err := os.Create(args[1])
		if err != nil {
			s.fail(err, "mindmap.svg")
			return
		}
		defer f.Close()
		if err := mindmap.WriteSVG(f, layout); err != nil {
			s.fail(err, "mindmap.svg")
			return
		}
		printOK(s.out, "wrote "+args[1])
	}
}
