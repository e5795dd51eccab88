package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// fakeGitHub serves just enough of the Actions API for the commands.
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()

	routes := map[string]string{
		"/repos/acme/api/actions/workflows": `{"total_count":1,"workflows":[
			{"id":7,"name":"CI","path":".github/workflows/ci.yml","state":"active","html_url":"https://github.com/acme/api/actions/workflows/ci.yml"}]}`,
		"/repos/acme/api/actions/workflows/ci.yml/runs": `{"total_count":1,"workflow_runs":[
			{"id":1234567890,"name":"CI","status":"completed","conclusion":"failure","head_branch":"main","event":"push"}]}`,
		"/repos/acme/api/actions/runs/1234567890": `{"id":1234567890,"name":"CI","status":"completed","conclusion":"failure",
			"run_started_at":"2024-03-01T10:00:00Z","updated_at":"2024-03-01T10:01:00Z"}`,
		"/repos/acme/api/actions/runs/1234567890/jobs": `{"total_count":2,"jobs":[
			{"id":1,"name":"Job A","status":"completed","conclusion":"success","started_at":"2024-03-01T10:00:00Z","completed_at":"2024-03-01T10:00:05Z"},
			{"id":2,"name":"Job B","status":"completed","conclusion":"failure","started_at":"2024-03-01T10:00:00Z","completed_at":"2024-03-01T10:00:12Z"}]}`,
		"/repos/acme/api/actions/jobs/1": `{"id":1,"name":"Job A","started_at":"2024-03-01T10:00:00Z","completed_at":"2024-03-01T10:00:05Z",
			"steps":[{"name":"Checkout","number":1,"started_at":"2024-03-01T10:00:00Z","completed_at":"2024-03-01T10:00:01Z"}]}`,
		"/users/octocat/repos": `[{"id":1,"name":"hello","full_name":"octocat/hello","private":false,"description":null}]`,
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	srv := fakeGitHub(t)
	t.Cleanup(srv.Close)
	t.Setenv("GITHUB_API_URL", srv.URL)
	t.Setenv("GITHUB_TOKEN", "test-token")
	t.Setenv("REDPANDA_BROKERS", "")
	t.Setenv("ACTIONS_INSIGHT_LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWorkflowsJSON(t *testing.T) {
	out, err := run(t, "workflows", "acme", "api", "-o", "json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var got struct {
		TotalCount int `json:"total_count"`
		Workflows  []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"workflows"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if got.TotalCount != 1 || got.Workflows[0].URL != "https://github.com/acme/api/actions/workflows/ci.yml" {
		t.Errorf("got %+v", got)
	}
}

func TestRunsTable(t *testing.T) {
	out, err := run(t, "runs", "acme", "api", "ci.yml", "--status", "completed")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"1234567890", "failure", "main", "1 of 1 run(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyzeByURL_YAML(t *testing.T) {
	out, err := run(t, "analyze", "https://github.com/acme/api/actions/runs/1234567890", "-o", "yaml")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var got struct {
		RunInfo struct {
			ID              int64 `yaml:"id"`
			TotalDurationMs int64 `yaml:"total_duration_ms"`
		} `yaml:"run_info"`
		PerformanceInsights struct {
			FailedJobs           int     `yaml:"failed_jobs"`
			LongestJob           string  `yaml:"longest_job"`
			AverageJobDurationMs float64 `yaml:"average_job_duration_ms"`
		} `yaml:"performance_insights"`
	}
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if got.RunInfo.ID != 1234567890 || got.RunInfo.TotalDurationMs != 60000 {
		t.Errorf("run_info = %+v", got.RunInfo)
	}
	if pi := got.PerformanceInsights; pi.FailedJobs != 1 || pi.LongestJob != "Job B" || pi.AverageJobDurationMs != 8500 {
		t.Errorf("performance_insights = %+v", pi)
	}
	if !strings.Contains(out, "id: 1234567890") {
		t.Errorf("expected exact integer id in yaml:\n%s", out)
	}
}

func TestTimingsPartialFailure(t *testing.T) {
	// job 2 has no detail route, so its entry becomes an error
	out, err := run(t, "timings", "acme", "api", "1234567890", "-o", "json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var got struct {
		Jobs    []map[string]any `json:"jobs"`
		Summary struct {
			TotalJobs  int    `json:"total_jobs"`
			TotalSteps int    `json:"total_steps"`
			SlowestJob string `json:"slowest_job"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if got.Summary.TotalJobs != 2 || got.Summary.TotalSteps != 1 || got.Summary.SlowestJob != "Job A" {
		t.Errorf("summary = %+v", got.Summary)
	}
	if msg, _ := got.Jobs[1]["error"].(string); msg != "Failed to fetch job details: GitHub API error 404: Not Found" {
		t.Errorf("jobs[1].error = %q", msg)
	}
}

func TestReposTable(t *testing.T) {
	out, err := run(t, "repos", "octocat")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "octocat/hello") {
		t.Errorf("output missing repository:\n%s", out)
	}
}

func TestUpstreamErrorIsReturned(t *testing.T) {
	_, err := run(t, "workflows", "acme", "missing", "-o", "json")
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "fetch workflows: GitHub API error 404: Not Found"; err.Error() != want {
		t.Errorf("error = %q, want %q", err, want)
	}
}

func TestInvalidInvocations(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad output format", []string{"workflows", "acme", "api", "-o", "xml"}, "invalid output format"},
		{"bad run url", []string{"analyze", "https://example.com/runs/1"}, "invalid workflow run URL"},
		{"bad run id", []string{"timings", "acme", "api", "abc"}, `invalid run ID "abc"`},
		{"two run args", []string{"analyze", "acme", "api"}, "expected a run URL"},
		{"bad status", []string{"runs", "acme", "api", "ci.yml", "--status", "done"}, `invalid status "done"`},
		{"bad per-page", []string{"runs", "acme", "api", "ci.yml", "--per-page", "500"}, "--per-page must be between 1 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}
