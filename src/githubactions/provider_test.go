package githubactions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"actions-insight/src/provider"
)

func TestGitHubProvider_Name(t *testing.T) {
	p := NewProvider("fake-token", "")
	if p.Name() != "github" {
		t.Errorf("Name() = %v, want github", p.Name())
	}
}

func TestGitHubProvider_Registered(t *testing.T) {
	p, err := provider.GetProvider("github", "fake-token", "")
	if err != nil {
		t.Fatalf("GetProvider(github) error = %v", err)
	}
	if p.Name() != "github" {
		t.Errorf("Name() = %v, want github", p.Name())
	}
}

func TestGitHubProvider_Delegates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check authorization header
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("Authorization header = %v, want Bearer test-token", auth)
		}

		switch r.URL.Path {
		case "/repos/testowner/testrepo/actions/runs/12345":
			w.Write([]byte(`{"id": 12345, "name": "CI", "status": "completed", "conclusion": "failure"}`))
		case "/repos/testowner/testrepo/actions/runs/12345/jobs":
			w.Write([]byte(`{"total_count": 2, "jobs": [{"id": 1, "name": "test"}, {"id": 2, "name": "build"}]}`))
		case "/repos/testowner/testrepo/actions/jobs/2":
			w.Write([]byte(`{"id": 2, "name": "build", "steps": [{"name": "compile", "number": 1}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	var p provider.Provider = NewProvider("test-token", server.URL)
	ctx := context.Background()

	run, err := p.GetWorkflowRun(ctx, "testowner", "testrepo", 12345)
	if err != nil {
		t.Fatalf("GetWorkflowRun() error = %v", err)
	}
	if run.Conclusion != provider.ConclusionFailure {
		t.Errorf("Conclusion = %v, want failure", run.Conclusion)
	}

	jobs, err := p.ListJobs(ctx, "testowner", "testrepo", 12345)
	if err != nil {
		t.Fatalf("ListJobs() error = %v", err)
	}
	if len(jobs) != 2 || jobs[1].Name != "build" {
		t.Errorf("jobs = %+v", jobs)
	}

	job, err := p.GetJob(ctx, "testowner", "testrepo", 2)
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if len(job.Steps) != 1 || job.Steps[0].Name != "compile" {
		t.Errorf("steps = %+v", job.Steps)
	}

	if _, err := p.ListWorkflows(ctx, "testowner", "missing"); err == nil {
		t.Error("ListWorkflows() expected error for unknown repo")
	}
}
