package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"actions-insight/src/analysis"
	"actions-insight/src/insights"
	"actions-insight/src/provider"
)

// maxCellWidth caps free-text cells in CLI tables.
const maxCellWidth = 48

func newTable(styles *StyleConfig, headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(styles.PrimaryBlue).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderColor)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func cell(s string) string {
	return Truncate(CleanText(s), maxCellWidth, true)
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return cell(*s)
}

func timestamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}

func conclusion(c provider.Conclusion) string {
	if c == "" {
		return "-"
	}
	return string(c)
}

// WorkflowsTable renders a workflow listing.
func WorkflowsTable(r *insights.WorkflowsReport) string {
	t := newTable(DefaultStyles(), "ID", "Name", "Path", "State", "Updated")
	for _, w := range r.Workflows {
		t.Row(strconv.FormatInt(w.ID, 10), cell(w.Name), cell(w.Path), w.State, timestamp(w.UpdatedAt))
	}
	return fmt.Sprintf("%s\n%d workflow(s)\n", t.String(), r.TotalCount)
}

// RunsTable renders a workflow run listing.
func RunsTable(r *insights.RunsReport) string {
	t := newTable(DefaultStyles(), "ID", "Name", "Status", "Conclusion", "Branch", "Event", "Started")
	for _, run := range r.WorkflowRuns {
		t.Row(
			strconv.FormatInt(run.ID, 10),
			cell(run.Name),
			string(run.Status),
			conclusion(run.Conclusion),
			cell(run.HeadBranch),
			run.Event,
			timestamp(run.RunStartedAt),
		)
	}
	return fmt.Sprintf("%s\n%d of %d run(s)\n", t.String(), len(r.WorkflowRuns), r.TotalCount)
}

// RepositoriesTable renders a repository listing.
func RepositoriesTable(r *insights.RepositoriesReport) string {
	t := newTable(DefaultStyles(), "Name", "Private", "Description", "Updated")
	for _, repo := range r.Repositories {
		t.Row(cell(repo.FullName), strconv.FormatBool(repo.Private), optional(repo.Description), timestamp(repo.UpdatedAt))
	}
	return fmt.Sprintf("%s\n%d repositories\n", t.String(), len(r.Repositories))
}

// AnalysisTable renders a run analysis: run summary, jobs, insights.
func AnalysisTable(r *analysis.AnalysisReport) string {
	styles := DefaultStyles()
	var b strings.Builder

	info := r.RunInfo
	fmt.Fprintln(&b, styles.TitleStyle().Render(fmt.Sprintf("Run %d: %s", info.ID, CleanText(info.Name))))
	fmt.Fprintf(&b, "  Status: %s  Conclusion: %s  Duration: %s\n",
		info.Status, conclusion(info.Conclusion), FormatDuration(info.TotalDurationMs))
	fmt.Fprintf(&b, "  Branch: %s  Event: %s  SHA: %s\n\n", CleanText(info.HeadBranch), info.Event, shortSHA(info.HeadSHA))

	t := newTable(styles, "Job", "Conclusion", "Duration", "Steps", "Failed", "Runner")
	for _, job := range r.JobsAnalysis {
		t.Row(
			cell(job.Name),
			conclusionText(string(job.Status), string(job.Conclusion)),
			FormatDuration(job.DurationMs),
			strconv.Itoa(job.StepsCount),
			strconv.Itoa(job.FailedSteps),
			optional(job.RunnerName),
		)
	}
	fmt.Fprintln(&b, t.String())

	pi := r.PerformanceInsights
	longest := "-"
	if pi.LongestJob != nil {
		longest = CleanText(*pi.LongestJob)
	}
	fmt.Fprintf(&b, "\n  Jobs: %d  Failed: %d  Cancelled: %d\n", pi.TotalJobs, pi.FailedJobs, pi.CancelledJobs)
	fmt.Fprintf(&b, "  Longest job: %s  Average duration: %s\n", longest, FormatDuration(analysis.Millis(int64(pi.AverageJobDurationMs+0.5))))

	return b.String()
}

// TimingsTable renders a timing report, one row per job.
func TimingsTable(r *analysis.TimingReport) string {
	styles := DefaultStyles()
	var b strings.Builder

	t := newTable(styles, "Job", "Conclusion", "Duration", "Steps", "Slowest step")
	for _, job := range r.Jobs {
		if job.Failure != nil {
			t.Row(cell(job.Failure.JobName), "unavailable", "-", "-", cell(job.Failure.Error))
			continue
		}
		timing := job.Timing
		slowest := "-"
		if timing.SlowestStep != nil {
			slowest = fmt.Sprintf("%s (%s)", cell(timing.SlowestStep.Name), FormatDuration(timing.SlowestStep.DurationMs))
		}
		t.Row(
			cell(timing.JobName),
			conclusionText(string(timing.Status), string(timing.Conclusion)),
			FormatDuration(timing.DurationMs),
			strconv.Itoa(len(timing.Steps)),
			slowest,
		)
	}
	fmt.Fprintln(&b, styles.TitleStyle().Render(fmt.Sprintf("Run %d job timings", r.RunID)))
	fmt.Fprintln(&b, t.String())

	slowest := "-"
	if r.Summary.SlowestJob != nil {
		slowest = CleanText(*r.Summary.SlowestJob)
	}
	fmt.Fprintf(&b, "\n  Jobs: %d  Steps: %d  Slowest job: %s\n", r.Summary.TotalJobs, r.Summary.TotalSteps, slowest)

	return b.String()
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	if sha == "" {
		return "-"
	}
	return sha
}
