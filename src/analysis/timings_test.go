package analysis

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"actions-insight/src/provider"
)

func TestBuildJobTiming_SlowestStep(t *testing.T) {
	listed := provider.Job{ID: 7, Name: "build", StartedAt: at(0), CompletedAt: at(30 * time.Second)}

	tests := []struct {
		name       string
		steps      []provider.Step
		wantNil    bool
		wantName   string
		wantKnown  bool
		wantMillis int64
	}{
		{
			name:    "no steps",
			steps:   nil,
			wantNil: true,
		},
		{
			name: "steps with unknown durations",
			steps: []provider.Step{
				{Name: "setup", Number: 1},
				{Name: "test", Number: 2, StartedAt: at(0)},
			},
			wantName:  "setup",
			wantKnown: false,
		},
		{
			name: "definite slowest",
			steps: []provider.Step{
				{Name: "setup", Number: 1, StartedAt: at(0), CompletedAt: at(2 * time.Second)},
				{Name: "test", Number: 2, StartedAt: at(2 * time.Second), CompletedAt: at(20 * time.Second)},
				{Name: "upload", Number: 3, StartedAt: at(20 * time.Second), CompletedAt: at(38 * time.Second)},
			},
			wantName:   "test",
			wantKnown:  true,
			wantMillis: 18000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timing := BuildJobTiming(listed, provider.Job{ID: 7, Steps: tt.steps})

			if len(timing.Steps) != len(tt.steps) {
				t.Fatalf("len(Steps) = %d, want %d", len(timing.Steps), len(tt.steps))
			}
			if tt.wantNil {
				if timing.SlowestStep != nil {
					t.Errorf("SlowestStep = %+v, want nil", timing.SlowestStep)
				}
				return
			}
			if timing.SlowestStep == nil {
				t.Fatal("SlowestStep = nil, want a step")
			}
			if timing.SlowestStep.Name != tt.wantName {
				t.Errorf("SlowestStep.Name = %q, want %q", timing.SlowestStep.Name, tt.wantName)
			}
			ms, known := timing.SlowestStep.DurationMs.Value()
			if known != tt.wantKnown || ms != tt.wantMillis {
				t.Errorf("SlowestStep duration = (%d, %v), want (%d, %v)", ms, known, tt.wantMillis, tt.wantKnown)
			}
		})
	}
}

func TestBuildJobTiming_UsesListedJobDuration(t *testing.T) {
	listed := provider.Job{ID: 7, Name: "build", StartedAt: at(0), CompletedAt: at(30 * time.Second)}
	detail := provider.Job{ID: 7, Name: "ignored", StartedAt: at(0), CompletedAt: at(time.Second)}

	timing := BuildJobTiming(listed, detail)
	if timing.JobName != "build" {
		t.Errorf("JobName = %q, want build", timing.JobName)
	}
	if ms, _ := timing.DurationMs.Value(); ms != 30000 {
		t.Errorf("DurationMs = %d, want 30000", ms)
	}
	if timing.Steps == nil {
		t.Error("Steps should be an empty slice, not nil")
	}
}

func TestSummarizeTimings_PartialFailure(t *testing.T) {
	jobs := []provider.Job{
		{ID: 41, Name: "lint", StartedAt: at(0), CompletedAt: at(5 * time.Second)},
		{ID: 42, Name: "test"},
		{ID: 43, Name: "build", StartedAt: at(0), CompletedAt: at(9 * time.Second)},
	}

	results := []JobTimingResult{
		TimingResult(BuildJobTiming(jobs[0], provider.Job{Steps: steps(provider.ConclusionSuccess)})),
		FailedResult(jobs[1], errors.New("boom")),
		TimingResult(BuildJobTiming(jobs[2], provider.Job{Steps: steps(provider.ConclusionSuccess, provider.ConclusionSuccess)})),
	}

	report := SummarizeTimings(123, results)

	if report.Summary.TotalJobs != 3 {
		t.Errorf("TotalJobs = %d, want 3", report.Summary.TotalJobs)
	}
	if report.Summary.TotalSteps != 3 {
		t.Errorf("TotalSteps = %d, want 3", report.Summary.TotalSteps)
	}
	if report.Summary.SlowestJob == nil || *report.Summary.SlowestJob != "build" {
		t.Errorf("SlowestJob = %v, want build", report.Summary.SlowestJob)
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded struct {
		RunID int64            `json:"run_id"`
		Jobs  []map[string]any `json:"jobs"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.RunID != 123 || len(decoded.Jobs) != 3 {
		t.Fatalf("decoded = %+v", decoded)
	}

	errorEntries := 0
	for _, job := range decoded.Jobs {
		if msg, ok := job["error"]; ok {
			errorEntries++
			if job["job_id"] != float64(42) || job["job_name"] != "test" {
				t.Errorf("error entry = %v, want job 42", job)
			}
			if msg != "Failed to fetch job details: boom" {
				t.Errorf("error = %v", msg)
			}
			if _, hasSteps := job["steps"]; hasSteps {
				t.Error("error entry should not carry steps")
			}
		}
	}
	if errorEntries != 1 {
		t.Errorf("error entries = %d, want 1", errorEntries)
	}
}

func TestSummarizeTimings_Empty(t *testing.T) {
	report := SummarizeTimings(5, nil)

	if report.Summary.SlowestJob != nil {
		t.Errorf("SlowestJob = %q, want nil", *report.Summary.SlowestJob)
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"jobs":[]`) || !strings.Contains(string(data), `"slowest_job":null`) {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestSummarizeTimings_AllFailedPicksFirst(t *testing.T) {
	results := []JobTimingResult{
		FailedResult(provider.Job{ID: 1, Name: "one"}, errors.New("x")),
		FailedResult(provider.Job{ID: 2, Name: "two"}, errors.New("y")),
	}

	report := SummarizeTimings(1, results)
	if report.Summary.SlowestJob == nil || *report.Summary.SlowestJob != "one" {
		t.Errorf("SlowestJob = %v, want one", report.Summary.SlowestJob)
	}
	if report.Summary.TotalSteps != 0 {
		t.Errorf("TotalSteps = %d, want 0", report.Summary.TotalSteps)
	}
}
