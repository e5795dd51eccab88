package analysis

import (
	"encoding/json"
	"time"

	"actions-insight/src/provider"
)

// TimingReport is the per-job step timing breakdown of a run.
type TimingReport struct {
	RunID   int64             `json:"run_id"`
	Jobs    []JobTimingResult `json:"jobs"`
	Summary TimingSummary     `json:"summary"`
}

// TimingSummary aggregates over every job entry, failed fetches included.
type TimingSummary struct {
	TotalJobs  int `json:"total_jobs"`
	TotalSteps int `json:"total_steps"`
	// SlowestJob is nil when the run has no jobs.
	SlowestJob *string `json:"slowest_job"`
}

// JobTiming is a job with the durations of its steps.
type JobTiming struct {
	JobID       int64               `json:"job_id"`
	JobName     string              `json:"job_name"`
	Status      provider.Status     `json:"status"`
	Conclusion  provider.Conclusion `json:"conclusion"`
	StartedAt   *time.Time          `json:"started_at"`
	CompletedAt *time.Time          `json:"completed_at"`
	DurationMs  Duration            `json:"duration_ms"`
	RunnerName  *string             `json:"runner_name"`
	Steps       []StepTiming        `json:"steps"`
	// SlowestStep is nil when the job has no steps. When every step
	// duration is unknown it is the first step.
	SlowestStep *StepTiming `json:"slowest_step"`
}

// StepTiming is a step with its duration.
type StepTiming struct {
	Name        string              `json:"name"`
	Status      provider.Status     `json:"status"`
	Conclusion  provider.Conclusion `json:"conclusion"`
	Number      int                 `json:"number"`
	StartedAt   *time.Time          `json:"started_at"`
	CompletedAt *time.Time          `json:"completed_at"`
	DurationMs  Duration            `json:"duration_ms"`
}

// JobError replaces a job entry whose details could not be fetched.
type JobError struct {
	JobID   int64  `json:"job_id"`
	JobName string `json:"job_name"`
	Error   string `json:"error"`
}

// JobTimingResult holds exactly one of Timing or Failure.
type JobTimingResult struct {
	Timing  *JobTiming
	Failure *JobError
}

// TimingResult wraps a successful job entry.
func TimingResult(t JobTiming) JobTimingResult {
	return JobTimingResult{Timing: &t}
}

// FailedResult wraps a job whose details could not be fetched.
func FailedResult(job provider.Job, err error) JobTimingResult {
	return JobTimingResult{Failure: &JobError{
		JobID:   job.ID,
		JobName: job.Name,
		Error:   "Failed to fetch job details: " + err.Error(),
	}}
}

// Name returns the job name of either variant.
func (r JobTimingResult) Name() string {
	if r.Timing != nil {
		return r.Timing.JobName
	}
	if r.Failure != nil {
		return r.Failure.JobName
	}
	return ""
}

// Duration returns the job duration, unknown for failed entries.
func (r JobTimingResult) Duration() Duration {
	if r.Timing != nil {
		return r.Timing.DurationMs
	}
	return Unknown()
}

// MarshalJSON renders whichever variant is set.
func (r JobTimingResult) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return json.Marshal(r.Failure)
	}
	return json.Marshal(r.Timing)
}

// BuildJobTiming combines a listed job with its fetched detail. The job
// duration comes from the listing, the steps from the detail.
func BuildJobTiming(listed, detail provider.Job) JobTiming {
	steps := make([]StepTiming, len(detail.Steps))
	for i, step := range detail.Steps {
		steps[i] = StepTiming{
			Name:        step.Name,
			Status:      step.Status,
			Conclusion:  step.Conclusion,
			Number:      step.Number,
			StartedAt:   step.StartedAt,
			CompletedAt: step.CompletedAt,
			DurationMs:  Elapsed(step.StartedAt, step.CompletedAt),
		}
	}

	timing := JobTiming{
		JobID:       listed.ID,
		JobName:     listed.Name,
		Status:      listed.Status,
		Conclusion:  listed.Conclusion,
		StartedAt:   listed.StartedAt,
		CompletedAt: listed.CompletedAt,
		DurationMs:  Elapsed(listed.StartedAt, listed.CompletedAt),
		RunnerName:  listed.RunnerName,
		Steps:       steps,
	}
	if i := longest(steps, func(s StepTiming) Duration { return s.DurationMs }); i >= 0 {
		slowest := steps[i]
		timing.SlowestStep = &slowest
	}
	return timing
}

// SummarizeTimings assembles the report from per-job results in input order.
func SummarizeTimings(runID int64, results []JobTimingResult) TimingReport {
	if results == nil {
		results = []JobTimingResult{}
	}

	summary := TimingSummary{TotalJobs: len(results)}
	for _, r := range results {
		if r.Timing != nil {
			summary.TotalSteps += len(r.Timing.Steps)
		}
	}
	if i := longest(results, JobTimingResult.Duration); i >= 0 {
		name := results[i].Name()
		summary.SlowestJob = &name
	}

	return TimingReport{RunID: runID, Jobs: results, Summary: summary}
}
