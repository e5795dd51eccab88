package provider

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"sync"
)

var (
	ErrInvalidURL      = errors.New("invalid workflow run URL")
	ErrProviderUnknown = errors.New("unknown CI provider")
)

// Provider is the data source the analysis tools read from.
type Provider interface {
	// Name returns the provider name (e.g., "github")
	Name() string

	// ListWorkflows returns the workflows defined in a repository
	ListWorkflows(ctx context.Context, owner, repo string) (*WorkflowList, error)

	// ListWorkflowRuns returns runs of one workflow, by numeric ID or file name
	ListWorkflowRuns(ctx context.Context, owner, repo, workflowID string, filter RunFilter) (*RunList, error)

	// GetWorkflowRun returns run metadata
	GetWorkflowRun(ctx context.Context, owner, repo string, runID int64) (*Run, error)

	// ListJobs returns the jobs of a run in upstream order
	ListJobs(ctx context.Context, owner, repo string, runID int64) ([]Job, error)

	// GetJob returns a single job including its steps
	GetJob(ctx context.Context, owner, repo string, jobID int64) (*Job, error)

	// ListRepositories returns the public repositories of a user
	ListRepositories(ctx context.Context, username string) ([]Repository, error)
}

// Factory builds a provider from an API token and an optional base URL.
type Factory func(token, baseURL string) Provider

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// RegisterProvider makes a provider available under name.
func RegisterProvider(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// GetProvider builds the provider registered under name.
func GetProvider(name, token, baseURL string) (Provider, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderUnknown, name)
	}
	return factory(token, baseURL), nil
}

// Registered returns the registered provider names, sorted.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var runURLPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/actions/runs/(\d+)`)

// ParseRunURL extracts owner, repo and run ID from a workflow run URL.
func ParseRunURL(url string) (*RunRef, error) {
	matches := runURLPattern.FindStringSubmatch(url)
	if matches == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}

	runID, err := strconv.ParseInt(matches[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}

	return &RunRef{Owner: matches[1], Repo: matches[2], RunID: runID}, nil
}
