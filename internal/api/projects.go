package api

import (
	"context"
	"fmt"

	"github.com/kirillkom/notelm-client/internal/core/domain"
)

type createProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// UpdateProject carries the mutable project fields; nil means unchanged.
type UpdateProject struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.getJSON(ctx, "projects.list", "/api/projects/", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GetProject(ctx context.Context, projectID int64) (domain.Project, error) {
	var project domain.Project
	path := fmt.Sprintf("/api/projects/%d", projectID)
	if err := c.getJSON(ctx, "projects.get", path, &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (c *Client) CreateProject(ctx context.Context, title, description string) (domain.Project, error) {
	var project domain.Project
	err := c.postJSON(ctx, "projects.create", "/api/projects/", createProjectRequest{
		Title:       title,
		Description: description,
	}, &project)
	if err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (c *Client) UpdateProject(ctx context.Context, projectID int64, update UpdateProject) (domain.Project, error) {
	var project domain.Project
	path := fmt.Sprintf("/api/projects/%d", projectID)
	if err := c.putJSON(ctx, "projects.update", path, update, &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (c *Client) DeleteProject(ctx context.Context, projectID int64) error {
	path := fmt.Sprintf("/api/projects/%d", projectID)
	return c.deleteJSON(ctx, "projects.delete", path)
}

func (c *Client) ProjectStats(ctx context.Context, projectID int64) (domain.ProjectStats, error) {
	var stats domain.ProjectStats
	path := fmt.Sprintf("/api/projects/%d/stats", projectID)
	if err := c.getJSON(ctx, "projects.stats", path, &stats); err != nil {
		return domain.ProjectStats{}, err
	}
	return stats, nil
}
