package githubactions

import (
	"context"

	"actions-insight/src/provider"
)

func init() {
	// Register the GitHub Actions provider factory
	provider.RegisterProvider("github", func(token, baseURL string) provider.Provider {
		return NewProvider(token, baseURL)
	})
}

// Provider implements provider.Provider for GitHub Actions
type Provider struct {
	client *Client
}

// NewProvider creates a GitHub Actions provider with API token.
// baseURL may be empty to use the public API.
func NewProvider(token, baseURL string) *Provider {
	return &Provider{
		client: NewClient(token).WithBaseURL(baseURL),
	}
}

// Name returns "github"
func (p *Provider) Name() string {
	return "github"
}

// ListWorkflows delegates to the client
func (p *Provider) ListWorkflows(ctx context.Context, owner, repo string) (*provider.WorkflowList, error) {
	return p.client.ListWorkflows(ctx, owner, repo)
}

// ListWorkflowRuns delegates to the client
func (p *Provider) ListWorkflowRuns(ctx context.Context, owner, repo, workflowID string, filter provider.RunFilter) (*provider.RunList, error) {
	return p.client.ListWorkflowRuns(ctx, owner, repo, workflowID, filter)
}

// GetWorkflowRun delegates to the client
func (p *Provider) GetWorkflowRun(ctx context.Context, owner, repo string, runID int64) (*provider.Run, error) {
	return p.client.GetWorkflowRun(ctx, owner, repo, runID)
}

// ListJobs delegates to the client
func (p *Provider) ListJobs(ctx context.Context, owner, repo string, runID int64) ([]provider.Job, error) {
	return p.client.ListJobs(ctx, owner, repo, runID)
}

// GetJob delegates to the client
func (p *Provider) GetJob(ctx context.Context, owner, repo string, jobID int64) (*provider.Job, error) {
	return p.client.GetJob(ctx, owner, repo, jobID)
}

// ListRepositories delegates to the client
func (p *Provider) ListRepositories(ctx context.Context, username string) ([]provider.Repository, error) {
	return p.client.ListUserRepositories(ctx, username)
}
