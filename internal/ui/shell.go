// Package ui is the interactive shell: the page-level containers of the
// product, expressed as readline views over the API client.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/chzyer/readline"
	"github.com/go-playground/validator/v10"

	"github.com/kirillkom/notelm-client/internal/api"
	"github.com/kirillkom/notelm-client/internal/apperr"
	"github.com/kirillkom/notelm-client/internal/config"
	"github.com/kirillkom/notelm-client/internal/core/domain"
	"github.com/kirillkom/notelm-client/internal/observability/metrics"
	"github.com/kirillkom/notelm-client/internal/session"
)

type Shell struct {
	cfg     config.Config
	sess    *session.Session
	logger  *slog.Logger
	metrics *metrics.APIClientMetrics

	client   *api.Client
	rl       *readline.Instance
	out      io.Writer
	validate *validator.Validate

	user *domain.User
	view *ProjectView

	authExpired atomic.Bool
}

func NewShell(cfg config.Config, sess *session.Session, logger *slog.Logger, m *metrics.APIClientMetrics) *Shell {
	return &Shell{
		cfg:      cfg,
		sess:     sess,
		logger:   logger,
		metrics:  m,
		out:      os.Stdout,
		validate: validator.New(),
	}
}

// Bind attaches the API client. Separate from the constructor because the
// client's auth-expired callback points back at the shell.
func (s *Shell) Bind(client *api.Client) {
	s.client = client
}

// NotifyAuthExpired is the 401 subscription: the transport clears the
// token and the shell transitions to the auth view on its next prompt.
func (s *Shell) NotifyAuthExpired() {
	s.authExpired.Store(true)
}

func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     s.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()
	s.rl = rl

	fmt.Fprintln(s.out, headerStyle.Sprint("notelm — document analysis client"))
	fmt.Fprintln(s.out, dimStyle.Sprint("type 'help' for commands, 'exit' to quit"))
	s.restoreSession(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		s.dispatch(ctx, line)
		s.checkAuthExpired()
	}
}

// restoreSession replays the application-mount behavior: a stored token is
// validated by fetching the current user; a dead token forces logout.
func (s *Shell) restoreSession(ctx context.Context) {
	if !s.sess.IsAuthenticated() {
		fmt.Fprintln(s.out, dimStyle.Sprint("not logged in; use 'login' or 'register'"))
		return
	}
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.client.Logout()
		s.authExpired.Store(false)
		apperr.Log(s.logger, err, "session.restore")
		fmt.Fprintln(s.out, dimStyle.Sprint("stored session is no longer valid; please log in"))
		return
	}
	s.user = &user
	printOK(s.out, fmt.Sprintf("welcome back, %s", user.Username))
}

func (s *Shell) checkAuthExpired() {
	if !s.authExpired.CompareAndSwap(true, false) {
		return
	}
	s.user = nil
	s.view = nil
	printError(s.out, "your session has expired; please log in again")
}

func (s *Shell) prompt() string {
	switch {
	case s.user == nil:
		return "notelm> "
	case s.view != nil:
		return fmt.Sprintf("notelm/%s> ", s.view.Project.Title)
	default:
		return fmt.Sprintf("notelm:%s> ", s.user.Username)
	}
}

func (s *Shell) dispatch(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	if s.user == nil {
		s.dispatchAuth(ctx, cmd, args)
		return
	}
	if s.view != nil {
		s.dispatchProject(ctx, cmd, args)
		return
	}
	s.dispatchDashboard(ctx, cmd, args)
}

// fail logs the error, runs the special-case handling, and prints the
// user-facing message unless the special handler already dealt with it.
func (s *Shell) fail(err error, context string) {
	apperr.Log(s.logger, err, context)
	if apperr.HandleSpecial(err, s.sess, s.NotifyAuthExpired) {
		return
	}
	printError(s.out, apperr.Message(err))
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, headerStyle.Sprint("commands"))
	if s.user == nil {
		fmt.Fprint(s.out, `  login               log in with email and password
  register            create an account (logs in afterwards)
  exit                quit
`)
		return
	}
	if s.view != nil {
		fmt.Fprint(s.out, `  docs                list documents (refreshes from the backend)
  select <id>         select a document
  upload <path>       upload a .pdf or .txt file (10 MB limit)
  download <dir>      download the selected document
  remove              delete the selected document
  reprocess           reprocess the selected document and refresh it
  status              poll processing status of the selected document
  summary [project]   summarize the selected document (or whole project)
  ask <question>      ask a question about the project documents
  history [limit]     fetch chat history from the backend
  export <file.xlsx>  export chat history to a spreadsheet
  mindmap [svg <path>] render a mindmap of the selected document
  back                return to the project list
  exit                quit
`)
		return
	}
	fmt.Fprint(s.out, `  projects            list projects
  create <title> [description]
  open <id>           open a project
  rename <id> <title> rename a project
  describe <id> <text>
  delete <id>         delete a project
  stats <id>          show project statistics
  video <path>        transcribe and summarize a video file
  whoami              show the logged-in user
  logout              log out
  exit                quit
`)
}
