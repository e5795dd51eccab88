package githubactions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"actions-insight/src/provider"
)

const (
	defaultBaseURL = "https://api.github.com"
	jobsPerPage    = 100 // GitHub's max per page
)

// APIError is a non-2xx response from the GitHub API.
type APIError struct {
	StatusCode int
	Message    string
	// RateLimited is set when the response reports an exhausted rate limit.
	RateLimited bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error %d: %s", e.StatusCode, e.Message)
}

// Is maps status codes onto the provider sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case provider.ErrAuthFailed:
		return e.StatusCode == http.StatusUnauthorized ||
			(e.StatusCode == http.StatusForbidden && !e.RateLimited)
	case provider.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case provider.ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests || e.RateLimited
	}
	return false
}

// Client is a GitHub Actions API client
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new GitHub Actions client. An empty token sends
// unauthenticated requests.
func NewClient(token string) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: defaultBaseURL,
	}
}

// WithBaseURL points the client at a GitHub Enterprise or test server.
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}

// ListWorkflows fetches the workflows of a repository
func (c *Client) ListWorkflows(ctx context.Context, owner, repo string) (*provider.WorkflowList, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/workflows", owner, repo)

	var list provider.WorkflowList
	if err := c.get(ctx, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListWorkflowRuns fetches runs of a workflow identified by ID or file name
func (c *Client) ListWorkflowRuns(ctx context.Context, owner, repo, workflowID string, filter provider.RunFilter) (*provider.RunList, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/workflows/%s/runs", owner, repo, url.PathEscape(workflowID))

	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Conclusion != "" {
		query.Set("conclusion", string(filter.Conclusion))
	}
	if filter.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(filter.PerPage))
	}

	var list provider.RunList
	if err := c.get(ctx, path, query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetWorkflowRun fetches workflow run metadata
func (c *Client) GetWorkflowRun(ctx context.Context, owner, repo string, runID int64) (*provider.Run, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/runs/%d", owner, repo, runID)

	var run provider.Run
	if err := c.get(ctx, path, nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListJobs fetches jobs for a workflow run (handles pagination)
func (c *Client) ListJobs(ctx context.Context, owner, repo string, runID int64) ([]provider.Job, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/runs/%d/jobs", owner, repo, runID)

	allJobs := []provider.Job{}
	page := 1

	for {
		query := url.Values{}
		query.Set("per_page", strconv.Itoa(jobsPerPage))
		query.Set("page", strconv.Itoa(page))

		var jobsResp jobsResponse
		if err := c.get(ctx, path, query, &jobsResp); err != nil {
			return nil, err
		}

		allJobs = append(allJobs, jobsResp.Jobs...)

		// Check if we've fetched all jobs
		if len(allJobs) >= jobsResp.TotalCount || len(jobsResp.Jobs) < jobsPerPage {
			break
		}

		page++
	}

	return allJobs, nil
}

// GetJob fetches a single job with its steps
func (c *Client) GetJob(ctx context.Context, owner, repo string, jobID int64) (*provider.Job, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/jobs/%d", owner, repo, jobID)

	var job provider.Job
	if err := c.get(ctx, path, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListUserRepositories fetches the public repositories of a user
func (c *Client) ListUserRepositories(ctx context.Context, username string) ([]provider.Repository, error) {
	path := fmt.Sprintf("/users/%s/repos", url.PathEscape(username))

	repos := []provider.Repository{}
	if err := c.get(ctx, path, nil, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func newAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	apiErr := &APIError{
		StatusCode:  resp.StatusCode,
		Message:     string(body),
		RateLimited: resp.Header.Get("X-RateLimit-Remaining") == "0",
	}

	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

