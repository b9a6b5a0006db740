package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

var (
	headerStyle = color.New(color.FgCyan, color.Bold)
	errorStyle  = color.New(color.FgRed)
	okStyle     = color.New(color.FgGreen)
	staleStyle  = color.New(color.FgYellow)
	dimStyle    = color.New(color.FgHiBlack)
)

func printError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Sprint("error: "+msg))
}

func printOK(w io.Writer, msg string) {
	fmt.Fprintln(w, okStyle.Sprint(msg))
}

func printStaleBanner(w io.Writer, msg string) {
	fmt.Fprintln(w, staleStyle.Sprint("! showing last known data (refresh failed): "+msg))
}

func renderProjects(w io.Writer, projects []domain.Project) {
	fmt.Fprintln(w, headerStyle.Sprintf("Projects (%d)", len(projects)))
	for _, p := range projects {
		fmt.Fprintf(w, "  #%-4d %-30s %s\n", p.ID, p.Title, dimStyle.Sprint(p.Description))
	}
	if len(projects) == 0 {
		fmt.Fprintln(w, dimStyle.Sprint("  no projects yet; use: create <title> [description]"))
	}
}

func renderDocuments(w io.Writer, list domain.DocumentList, selectedID int64) {
	fmt.Fprintln(w, headerStyle.Sprintf("Documents (%d of %d)", len(list.Documents), list.Total))
	for _, d := range list.Documents {
		marker := "  "
		if d.ID == selectedID {
			marker = "* "
		}
		fmt.Fprintf(w, "%s#%-4d %-35s %8.2f MB  %s\n",
			marker, d.ID, d.OriginalFilename, d.FileSizeMB, renderStatus(d))
	}
	if !list.ProjectCanAddMore {
		fmt.Fprintln(w, staleStyle.Sprint("  project is at its document limit"))
	}
}

func renderStatus(d domain.Document) string {
	switch d.ProcessingStatus {
	case domain.StatusCompleted:
		return okStyle.Sprint(string(d.ProcessingStatus))
	case domain.StatusFailed:
		out := errorStyle.Sprint(string(d.ProcessingStatus))
		if d.ProcessingError != "" {
			out += dimStyle.Sprintf(" (%s)", d.ProcessingError)
		}
		return out
	case domain.StatusProcessing:
		return staleStyle.Sprint(string(d.ProcessingStatus))
	default:
		return dimStyle.Sprint(string(d.ProcessingStatus))
	}
}

func renderTranscript(w io.Writer, transcript []domain.ChatExchange) {
	if len(transcript) == 0 {
		fmt.Fprintln(w, dimStyle.Sprint("no chat messages yet; use: ask <question>"))
		return
	}
	for _, exchange := range transcript {
		fmt.Fprintf(w, "%s %s\n", headerStyle.Sprint("you:"), exchange.Message)
		fmt.Fprintf(w, "%s %s\n", okStyle.Sprint("ai: "), exchange.Response)
		if exchange.TokensUsed > 0 {
			fmt.Fprintln(w, dimStyle.Sprintf("     %d tokens, sources %v", exchange.TokensUsed, exchange.Sources))
		}
	}
}

func renderStats(w io.Writer, stats domain.ProjectStats) {
	fmt.Fprintln(w, headerStyle.Sprint("Project stats"))
	fmt.Fprintf(w, "  documents:     %d\n", stats.DocumentCount)
	fmt.Fprintf(w, "  members:       %d\n", stats.MemberCount)
	fmt.Fprintf(w, "  total size:    %d bytes\n", stats.TotalSize)
	fmt.Fprintf(w, "  last activity: %s\n", stats.LastActivity)
}

func renderUser(w io.Writer, user domain.User, expires time.Time) {
	fmt.Fprintf(w, "%s %s <%s>\n", headerStyle.Sprint("logged in as:"), user.Username, user.Email)
	flags := ""
	if user.IsActive {
		flags += " active"
	}
	if user.IsVerified {
		flags += " verified"
	}
	if flags != "" {
		fmt.Fprintln(w, dimStyle.Sprint("  flags:"+flags))
	}
	if !expires.IsZero() {
		fmt.Fprintf(w, "%s\n", dimStyle.Sprintf("  token expires: %s", expires.Format(time.RFC3339)))
	}
}
