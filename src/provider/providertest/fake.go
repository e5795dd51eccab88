// Package providertest provides an in-memory provider.Provider for tests.
package providertest

import (
	"context"
	"fmt"
	"sync"

	"actions-insight/src/provider"
)

// Fake serves canned responses. Set an *Err field to make that call fail.
type Fake struct {
	Workflows    *provider.WorkflowList
	WorkflowsErr error

	Runs    *provider.RunList
	RunsErr error

	Run    *provider.Run
	RunErr error

	Jobs    []provider.Job
	JobsErr error

	// JobDetails is returned by GetJob; jobs missing here fall back to Jobs.
	JobDetails map[int64]provider.Job
	JobErrs    map[int64]error

	Repos    []provider.Repository
	ReposErr error

	mu         sync.Mutex
	calls      []string
	lastFilter provider.RunFilter
}

var _ provider.Provider = (*Fake)(nil)

func (f *Fake) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

// Calls returns the calls made so far, in completion order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// LastFilter returns the filter of the last ListWorkflowRuns call.
func (f *Fake) LastFilter() provider.RunFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastFilter
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) ListWorkflows(ctx context.Context, owner, repo string) (*provider.WorkflowList, error) {
	f.record("ListWorkflows %s/%s", owner, repo)
	if f.WorkflowsErr != nil {
		return nil, f.WorkflowsErr
	}
	if f.Workflows == nil {
		return &provider.WorkflowList{}, nil
	}
	return f.Workflows, nil
}

func (f *Fake) ListWorkflowRuns(ctx context.Context, owner, repo, workflowID string, filter provider.RunFilter) (*provider.RunList, error) {
	f.record("ListWorkflowRuns %s/%s %s", owner, repo, workflowID)
	f.mu.Lock()
	f.lastFilter = filter
	f.mu.Unlock()
	if f.RunsErr != nil {
		return nil, f.RunsErr
	}
	if f.Runs == nil {
		return &provider.RunList{}, nil
	}
	return f.Runs, nil
}

func (f *Fake) GetWorkflowRun(ctx context.Context, owner, repo string, runID int64) (*provider.Run, error) {
	f.record("GetWorkflowRun %s/%s %d", owner, repo, runID)
	if f.RunErr != nil {
		return nil, f.RunErr
	}
	if f.Run == nil {
		return nil, provider.ErrNotFound
	}
	return f.Run, nil
}

func (f *Fake) ListJobs(ctx context.Context, owner, repo string, runID int64) ([]provider.Job, error) {
	f.record("ListJobs %s/%s %d", owner, repo, runID)
	if f.JobsErr != nil {
		return nil, f.JobsErr
	}
	return f.Jobs, nil
}

func (f *Fake) GetJob(ctx context.Context, owner, repo string, jobID int64) (*provider.Job, error) {
	f.record("GetJob %s/%s %d", owner, repo, jobID)
	if err, ok := f.JobErrs[jobID]; ok {
		return nil, err
	}
	if job, ok := f.JobDetails[jobID]; ok {
		return &job, nil
	}
	for _, job := range f.Jobs {
		if job.ID == jobID {
			return &job, nil
		}
	}
	return nil, provider.ErrNotFound
}

func (f *Fake) ListRepositories(ctx context.Context, username string) ([]provider.Repository, error) {
	f.record("ListRepositories %s", username)
	if f.ReposErr != nil {
		return nil, f.ReposErr
	}
	return f.Repos, nil
}
