// Demo program to showcase the timings TUI with a realistic run, no token needed.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"actions-insight/src/analysis"
	"actions-insight/src/provider"
	"actions-insight/src/tui"
)

func main() {
	fmt.Println("Generating sample run data...")
	report := generateSampleReport()

	fmt.Printf("Loaded %d jobs with %d steps.\n", report.Summary.TotalJobs, report.Summary.TotalSteps)
	fmt.Println("Launching TUI...")

	err := tui.Run("acme/api run 9876543210 (demo)", func() (*analysis.TimingReport, error) {
		time.Sleep(time.Second) // show the loading screen
		return report, nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

var start = time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)

func at(seconds int) *time.Time {
	ts := start.Add(time.Duration(seconds) * time.Second)
	return &ts
}

func strPtr(s string) *string { return &s }

// step builds a completed step running from..to seconds after start.
func step(n int, name string, conclusion provider.Conclusion, from, to int) provider.Step {
	return provider.Step{
		Name:        name,
		Number:      n,
		Status:      provider.StatusCompleted,
		Conclusion:  conclusion,
		StartedAt:   at(from),
		CompletedAt: at(to),
	}
}

func job(id int64, name string, conclusion provider.Conclusion, from, to int, steps ...provider.Step) provider.Job {
	return provider.Job{
		ID:          id,
		Name:        name,
		Status:      provider.StatusCompleted,
		Conclusion:  conclusion,
		StartedAt:   at(from),
		CompletedAt: at(to),
		RunnerName:  strPtr(fmt.Sprintf("GitHub Actions %d", id%7)),
		Labels:      []string{"ubuntu-latest"},
		Steps:       steps,
	}
}

func generateSampleReport() *analysis.TimingReport {
	ok := provider.ConclusionSuccess
	jobs := []provider.Job{
		job(101, "lint", ok, 0, 48,
			step(1, "Set up job", ok, 0, 2),
			step(2, "Checkout", ok, 2, 5),
			step(3, "Set up Go", ok, 5, 17),
			step(4, "golangci-lint", ok, 17, 46),
			step(5, "Complete job", ok, 46, 48),
		),
		job(102, "test (ubuntu-latest, 1.24)", provider.ConclusionFailure, 0, 412,
			step(1, "Set up job", ok, 0, 2),
			step(2, "Checkout", ok, 2, 6),
			step(3, "Set up Go", ok, 6, 19),
			step(4, "Start postgres service", ok, 19, 41),
			step(5, "go test ./...", provider.ConclusionFailure, 41, 405),
			step(6, "Upload coverage", provider.ConclusionSkipped, 405, 405),
			step(7, "Complete job", ok, 405, 412),
		),
		job(103, "test (macos-latest, 1.24)", ok, 0, 298,
			step(1, "Set up job", ok, 0, 9),
			step(2, "Checkout", ok, 9, 14),
			step(3, "Set up Go", ok, 14, 51),
			step(4, "go test ./...", ok, 51, 290),
			step(5, "Complete job", ok, 290, 298),
		),
		job(104, "build-image", provider.ConclusionCancelled, 0, 133,
			step(1, "Set up job", ok, 0, 2),
			step(2, "Set up Docker Buildx", ok, 2, 14),
			step(3, "Build and push", provider.ConclusionCancelled, 14, 133),
		),
	}

	results := make([]analysis.JobTimingResult, 0, len(jobs)+1)
	for _, j := range jobs {
		results = append(results, analysis.TimingResult(analysis.BuildJobTiming(j, j)))
	}
	results = append(results, analysis.FailedResult(
		provider.Job{ID: 105, Name: "deploy-preview"},
		errors.New("GitHub API error 502: Bad Gateway"),
	))

	report := analysis.SummarizeTimings(9876543210, results)
	return &report
}
