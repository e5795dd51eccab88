package provider

import (
	"encoding/json"
	"time"
)

// Status is the lifecycle state of a run, job or step.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Conclusion is the terminal outcome of a run, job or step.
// Empty while the item has not completed.
type Conclusion string

const (
	ConclusionSuccess        Conclusion = "success"
	ConclusionFailure        Conclusion = "failure"
	ConclusionNeutral        Conclusion = "neutral"
	ConclusionCancelled      Conclusion = "cancelled"
	ConclusionSkipped        Conclusion = "skipped"
	ConclusionTimedOut       Conclusion = "timed_out"
	ConclusionActionRequired Conclusion = "action_required"
)

// Statuses lists the accepted status filter values.
var Statuses = []Status{StatusQueued, StatusInProgress, StatusCompleted}

// Conclusions lists the accepted conclusion filter values.
var Conclusions = []Conclusion{
	ConclusionSuccess,
	ConclusionFailure,
	ConclusionNeutral,
	ConclusionCancelled,
	ConclusionSkipped,
	ConclusionTimedOut,
	ConclusionActionRequired,
}

// MarshalJSON renders a missing conclusion as null.
func (c Conclusion) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

// Run is a single execution of a workflow.
type Run struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	RunNumber    int        `json:"run_number"`
	RunAttempt   int        `json:"run_attempt"`
	Status       Status     `json:"status"`
	Conclusion   Conclusion `json:"conclusion"`
	Event        string     `json:"event"`
	HeadBranch   string     `json:"head_branch"`
	HeadSHA      string     `json:"head_sha"`
	HTMLURL      string     `json:"html_url"`
	JobsURL      string     `json:"jobs_url"`
	LogsURL      string     `json:"logs_url"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
	RunStartedAt *time.Time `json:"run_started_at"`
}

// Job is a unit of work within a run.
type Job struct {
	ID              int64      `json:"id"`
	RunID           int64      `json:"run_id"`
	Name            string     `json:"name"`
	Status          Status     `json:"status"`
	Conclusion      Conclusion `json:"conclusion"`
	StartedAt       *time.Time `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	RunnerName      *string    `json:"runner_name"`
	RunnerGroupName *string    `json:"runner_group_name"`
	Labels          []string   `json:"labels"`
	Steps           []Step     `json:"steps"`
}

// Step is a single step of a job. Number is 1-based.
type Step struct {
	Name        string     `json:"name"`
	Status      Status     `json:"status"`
	Conclusion  Conclusion `json:"conclusion"`
	Number      int        `json:"number"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// Workflow is a workflow definition in a repository.
type Workflow struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Path      string     `json:"path"`
	State     string     `json:"state"`
	HTMLURL   string     `json:"html_url"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Repository is a repository owned by a user.
type Repository struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	FullName    string     `json:"full_name"`
	Private     bool       `json:"private"`
	HTMLURL     string     `json:"html_url"`
	Description *string    `json:"description"`
	Homepage    *string    `json:"homepage"`
	Topics      []string   `json:"topics"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// WorkflowList is one page of workflows with the total count reported upstream.
type WorkflowList struct {
	TotalCount int        `json:"total_count"`
	Workflows  []Workflow `json:"workflows"`
}

// RunList is one page of workflow runs with the total count reported upstream.
type RunList struct {
	TotalCount int   `json:"total_count"`
	Runs       []Run `json:"workflow_runs"`
}

// RunFilter narrows a workflow run listing. Zero values are not sent.
type RunFilter struct {
	Status     Status
	Conclusion Conclusion
	PerPage    int
}

// RunRef identifies a workflow run in a repository.
type RunRef struct {
	Owner string
	Repo  string
	RunID int64
}
