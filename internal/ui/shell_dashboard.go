package ui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kirillkom/notelm-client/internal/api"
)

func (s *Shell) dispatchDashboard(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "projects":
		s.cmdProjects(ctx)
	case "create":
		s.cmdCreateProject(ctx, args)
	case "open":
		s.cmdOpenProject(ctx, args)
	case "rename":
		s.cmdRenameProject(ctx, args)
	case "describe":
		s.cmdDescribeProject(ctx, args)
	case "delete":
		s.cmdDeleteProject(ctx, args)
	case "stats":
		s.cmdProjectStats(ctx, args)
	case "video":
		s.cmdVideoSummary(ctx, args)
	case "whoami":
		s.cmdWhoami(ctx)
	case "logout":
		s.cmdLogout()
	case "help":
		s.printHelp()
	default:
		printError(s.out, fmt.Sprintf("unknown command %q (try 'help')", cmd))
	}
}

func (s *Shell) cmdProjects(ctx context.Context) {
	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		s.fail(err, "projects.list")
		return
	}
	renderProjects(s.out, projects)
}

func (s *Shell) cmdCreateProject(ctx context.Context, args []string) {
	if len(args) == 0 {
		printError(s.out, "usage: create <title> [description]")
		return
	}
	title := args[0]
	description := strings.Join(args[1:], " ")
	project, err := s.client.CreateProject(ctx, title, description)
	if err != nil {
		s.fail(err, "projects.create")
		return
	}
	printOK(s.out, fmt.Sprintf("created project #%d %s", project.ID, project.Title))
}

func (s *Shell) cmdOpenProject(ctx context.Context, args []string) {
	projectID, ok := parseID(s, args, "usage: open <project-id>")
	if !ok {
		return
	}
	project, err := s.client.GetProject(ctx, projectID)
	if err != nil {
		s.fail(err, "projects.get")
		return
	}
	s.view = NewProjectView(project)
	printOK(s.out, fmt.Sprintf("opened project %s", project.Title))
	s.refreshDocuments(ctx)
}

func (s *Shell) cmdRenameProject(ctx context.Context, args []string) {
	if len(args) < 2 {
		printError(s.out, "usage: rename <project-id> <new title>")
		return
	}
	projectID, ok := parseID(s, args[:1], "usage: rename <project-id> <new title>")
	if !ok {
		return
	}
	title := strings.Join(args[1:], " ")
	project, err := s.client.UpdateProject(ctx, projectID, api.UpdateProject{Title: &title})
	if err != nil {
		s.fail(err, "projects.update")
		return
	}
	printOK(s.out, fmt.Sprintf("renamed project #%d to %s", project.ID, project.Title))
}

func (s *Shell) cmdDescribeProject(ctx context.Context, args []string) {
	if len(args) < 2 {
		printError(s.out, "usage: describe <project-id> <description>")
		return
	}
	projectID, ok := parseID(s, args[:1], "usage: describe <project-id> <description>")
	if !ok {
		return
	}
	description := strings.Join(args[1:], " ")
	if _, err := s.client.UpdateProject(ctx, projectID, api.UpdateProject{Description: &description}); err != nil {
		s.fail(err, "projects.update")
		return
	}
	printOK(s.out, fmt.Sprintf("updated description of project #%d", projectID))
}

func (s *Shell) cmdDeleteProject(ctx context.Context, args []string) {
	projectID, ok := parseID(s, args, "usage: delete <project-id>")
	if !ok {
		return
	}
	if err := s.client.DeleteProject(ctx, projectID); err != nil {
		s.fail(err, "projects.delete")
		return
	}
	printOK(s.out, fmt.Sprintf("deleted project #%d", projectID))
}

func (s *Shell) cmdProjectStats(ctx context.Context, args []string) {
	projectID, ok := parseID(s, args, "usage: stats <project-id>")
	if !ok {
		return
	}
	stats, err := s.client.ProjectStats(ctx, projectID)
	if err != nil {
		s.fail(err, "projects.stats")
		return
	}
	renderStats(s.out, stats)
}

func (s *Shell) cmdVideoSummary(ctx context.Context, args []string) {
	if len(args) != 1 {
		printError(s.out, "usage: video <path>")
		return
	}
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		s.fail(err, "videos.open")
		return
	}
	defer f.Close()

	fmt.Fprintln(s.out, dimStyle.Sprint("uploading video for transcription; this can take a while..."))
	result, err := s.client.SummarizeVideo(ctx, f.Name(), f)
	if err != nil {
		s.fail(err, "videos.summary")
		return
	}
	fmt.Fprintln(s.out, headerStyle.Sprint("Summary"))
	fmt.Fprintln(s.out, result.Summary)
	fmt.Fprintln(s.out, headerStyle.Sprint("Transcript"))
	fmt.Fprintln(s.out, result.Transcript)
}

func (s *Shell) cmdWhoami(ctx context.Context) {
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.fail(err, "auth.me")
		return
	}
	s.user = &user

	// Claims come from the unverified token and are display-only.
	claims, _ := s.sess.InspectClaims()
	renderUser(s.out, user, claims.ExpiresAt)
}

func (s *Shell) cmdLogout() {
	s.client.Logout()
	s.user = nil
	s.view = nil
	printOK(s.out, "logged out")
}

func parseID(s *Shell, args []string, usage string) (int64, bool) {
	if len(args) != 1 {
		printError(s.out, usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		printError(s.out, usage)
		return 0, false
	}
	return id, true
}
