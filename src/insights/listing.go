package insights

import (
	"context"
	"time"

	"actions-insight/src/provider"
)

// WorkflowsReport lists the workflows of a repository.
type WorkflowsReport struct {
	TotalCount int               `json:"total_count"`
	Workflows  []WorkflowSummary `json:"workflows"`
}

// WorkflowSummary is the projected form of a workflow.
type WorkflowSummary struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Path      string     `json:"path"`
	State     string     `json:"state"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	URL       string     `json:"url"`
}

// RunsReport lists runs of a workflow.
type RunsReport struct {
	TotalCount   int          `json:"total_count"`
	WorkflowRuns []RunSummary `json:"workflow_runs"`
}

// RunSummary is the projected form of a workflow run.
type RunSummary struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Status       provider.Status     `json:"status"`
	Conclusion   provider.Conclusion `json:"conclusion"`
	CreatedAt    *time.Time          `json:"created_at"`
	UpdatedAt    *time.Time          `json:"updated_at"`
	RunStartedAt *time.Time          `json:"run_started_at"`
	RunAttempt   int                 `json:"run_attempt"`
	URL          string              `json:"url"`
	JobsURL      string              `json:"jobs_url"`
	LogsURL      string              `json:"logs_url"`
	HeadBranch   string              `json:"head_branch"`
	HeadSHA      string              `json:"head_sha"`
	Event        string              `json:"event"`
}

// RepositoriesReport lists a user's repositories.
type RepositoriesReport struct {
	Repositories []RepositorySummary `json:"repositories"`
}

// RepositorySummary is the projected form of a repository.
type RepositorySummary struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	FullName    string     `json:"full_name"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	Private     bool       `json:"private"`
	HTMLURL     string     `json:"html_url"`
	Description *string    `json:"description"`
	Homepage    *string    `json:"homepage"`
	Topics      []string   `json:"topics"`
}

// Workflows lists the workflows defined in owner/repo.
func (s *Service) Workflows(ctx context.Context, owner, repo string) (*WorkflowsReport, error) {
	list, err := s.provider.ListWorkflows(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	report := &WorkflowsReport{
		TotalCount: list.TotalCount,
		Workflows:  make([]WorkflowSummary, len(list.Workflows)),
	}
	for i, w := range list.Workflows {
		report.Workflows[i] = WorkflowSummary{
			ID:        w.ID,
			Name:      w.Name,
			Path:      w.Path,
			State:     w.State,
			CreatedAt: w.CreatedAt,
			UpdatedAt: w.UpdatedAt,
			URL:       w.HTMLURL,
		}
	}
	return report, nil
}

// WorkflowRuns lists runs of the workflow identified by ID or file name.
func (s *Service) WorkflowRuns(ctx context.Context, owner, repo, workflowID string, filter provider.RunFilter) (*RunsReport, error) {
	list, err := s.provider.ListWorkflowRuns(ctx, owner, repo, workflowID, filter)
	if err != nil {
		return nil, err
	}

	report := &RunsReport{
		TotalCount:   list.TotalCount,
		WorkflowRuns: make([]RunSummary, len(list.Runs)),
	}
	for i, r := range list.Runs {
		report.WorkflowRuns[i] = RunSummary{
			ID:           r.ID,
			Name:         r.Name,
			Status:       r.Status,
			Conclusion:   r.Conclusion,
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
			RunStartedAt: r.RunStartedAt,
			RunAttempt:   r.RunAttempt,
			URL:          r.HTMLURL,
			JobsURL:      r.JobsURL,
			LogsURL:      r.LogsURL,
			HeadBranch:   r.HeadBranch,
			HeadSHA:      r.HeadSHA,
			Event:        r.Event,
		}
	}
	return report, nil
}

// Repositories lists the repositories of username.
func (s *Service) Repositories(ctx context.Context, username string) (*RepositoriesReport, error) {
	repos, err := s.provider.ListRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	report := &RepositoriesReport{Repositories: make([]RepositorySummary, len(repos))}
	for i, r := range repos {
		report.Repositories[i] = RepositorySummary{
			ID:          r.ID,
			Name:        r.Name,
			FullName:    r.FullName,
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
			Private:     r.Private,
			HTMLURL:     r.HTMLURL,
			Description: r.Description,
			Homepage:    r.Homepage,
			Topics:      r.Topics,
		}
	}
	return report, nil
}
