package analysis

import (
	"time"

	"actions-insight/src/provider"
)

// AnalysisReport is the result of analyzing one workflow run.
type AnalysisReport struct {
	RunInfo             RunInfo             `json:"run_info"`
	JobsAnalysis        []JobAnalysis       `json:"jobs_analysis"`
	PerformanceInsights PerformanceInsights `json:"performance_insights"`
}

// RunInfo summarizes the run with its total duration.
type RunInfo struct {
	ID              int64               `json:"id"`
	Name            string              `json:"name"`
	Status          provider.Status     `json:"status"`
	Conclusion      provider.Conclusion `json:"conclusion"`
	CreatedAt       *time.Time          `json:"created_at"`
	UpdatedAt       *time.Time          `json:"updated_at"`
	RunStartedAt    *time.Time          `json:"run_started_at"`
	TotalDurationMs Duration            `json:"total_duration_ms"`
	Event           string              `json:"event"`
	HeadBranch      string              `json:"head_branch"`
	HeadSHA         string              `json:"head_sha"`
}

// JobAnalysis is the per-job part of the report.
type JobAnalysis struct {
	ID              int64               `json:"id"`
	Name            string              `json:"name"`
	Status          provider.Status     `json:"status"`
	Conclusion      provider.Conclusion `json:"conclusion"`
	StartedAt       *time.Time          `json:"started_at"`
	CompletedAt     *time.Time          `json:"completed_at"`
	DurationMs      Duration            `json:"duration_ms"`
	DurationHuman   HumanDuration       `json:"duration_human"`
	RunnerName      *string             `json:"runner_name"`
	RunnerGroupName *string             `json:"runner_group_name"`
	Labels          []string            `json:"labels"`
	StepsCount      int                 `json:"steps_count"`
	FailedSteps     int                 `json:"failed_steps"`
}

// PerformanceInsights aggregates over all jobs of the run.
type PerformanceInsights struct {
	TotalJobs     int `json:"total_jobs"`
	FailedJobs    int `json:"failed_jobs"`
	CancelledJobs int `json:"cancelled_jobs"`
	// LongestJob is nil when the run has no jobs.
	LongestJob           *string `json:"longest_job"`
	AverageJobDurationMs float64 `json:"average_job_duration_ms"`
}

// Analyze builds the report for a run and its jobs, in upstream job order.
func Analyze(run provider.Run, jobs []provider.Job) AnalysisReport {
	analyses := make([]JobAnalysis, len(jobs))
	for i, job := range jobs {
		analyses[i] = analyzeJob(job)
	}

	return AnalysisReport{
		RunInfo: RunInfo{
			ID:              run.ID,
			Name:            run.Name,
			Status:          run.Status,
			Conclusion:      run.Conclusion,
			CreatedAt:       run.CreatedAt,
			UpdatedAt:       run.UpdatedAt,
			RunStartedAt:    run.RunStartedAt,
			TotalDurationMs: Elapsed(run.RunStartedAt, run.UpdatedAt),
			Event:           run.Event,
			HeadBranch:      run.HeadBranch,
			HeadSHA:         run.HeadSHA,
		},
		JobsAnalysis:        analyses,
		PerformanceInsights: insights(analyses),
	}
}

func analyzeJob(job provider.Job) JobAnalysis {
	duration := Elapsed(job.StartedAt, job.CompletedAt)

	return JobAnalysis{
		ID:              job.ID,
		Name:            job.Name,
		Status:          job.Status,
		Conclusion:      job.Conclusion,
		StartedAt:       job.StartedAt,
		CompletedAt:     job.CompletedAt,
		DurationMs:      duration,
		DurationHuman:   HumanDuration(duration),
		RunnerName:      job.RunnerName,
		RunnerGroupName: job.RunnerGroupName,
		Labels:          job.Labels,
		StepsCount:      len(job.Steps),
		FailedSteps:     countSteps(job.Steps, provider.ConclusionFailure),
	}
}

func insights(jobs []JobAnalysis) PerformanceInsights {
	result := PerformanceInsights{TotalJobs: len(jobs)}

	var totalMs int64
	for _, job := range jobs {
		switch job.Conclusion {
		case provider.ConclusionFailure:
			result.FailedJobs++
		case provider.ConclusionCancelled:
			result.CancelledJobs++
		}
		totalMs += job.DurationMs.OrZero()
	}

	if i := longest(jobs, func(j JobAnalysis) Duration { return j.DurationMs }); i >= 0 {
		name := jobs[i].Name
		result.LongestJob = &name
	}
	if len(jobs) > 0 {
		result.AverageJobDurationMs = float64(totalMs) / float64(len(jobs))
	}

	return result
}

func countSteps(steps []provider.Step, conclusion provider.Conclusion) int {
	n := 0
	for _, step := range steps {
		if step.Conclusion == conclusion {
			n++
		}
	}
	return n
}
