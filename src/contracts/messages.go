// Package contracts defines the messages actions-insight publishes.
package contracts

import "encoding/json"

// Event kinds.
const (
	KindRunAnalyzed    = "run_analyzed"
	KindTimingsFetched = "timings_fetched"
)

// AnalysisEvent is published after a successful analysis or timing report.
// Key: {owner}/{repo}/{run_id}
type AnalysisEvent struct {
	EventID   string `json:"event_id"`
	Kind      string `json:"kind"`
	Owner     string `json:"owner"`
	Repo      string `json:"repo"`
	RunID     int64  `json:"run_id"`
	Timestamp string `json:"timestamp"`
	TotalJobs int    `json:"total_jobs"`
	// FailedJobs counts jobs concluded as failure (analysis) or whose
	// details could not be fetched (timings).
	FailedJobs int `json:"failed_jobs"`
	// SlowestJob is the longest job name, empty when there are no jobs.
	SlowestJob string `json:"slowest_job,omitempty"`
	// Report is the full JSON report.
	Report json.RawMessage `json:"report,omitempty"`
}
