package githubactions

import "actions-insight/src/provider"

// jobsResponse is the API response for listing jobs
type jobsResponse struct {
	TotalCount int            `json:"total_count"`
	Jobs       []provider.Job `json:"jobs"`
}

// errorResponse is the body GitHub returns with non-2xx statuses
type errorResponse struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}
