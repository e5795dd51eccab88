package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"actions-insight/src/analysis"
)

const (
	stepNumberWidth = 4
	stepDuration    = 8
	maxBarWidth     = 30
)

// renderJobDetail renders the steps of a job with a duration bar scaled to
// the slowest step, or the fetch error of an unavailable job.
func renderJobDetail(job analysis.JobTimingResult, maxWidth int, styles *StyleConfig) string {
	if maxWidth < 20 {
		maxWidth = 20
	}
	var content strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(styles.PrimaryBlue).Bold(true)

	if job.Failure != nil {
		fmt.Fprintf(&content, "%s\n\n", headerStyle.Render(fmt.Sprintf("Job %d: %s", job.Failure.JobID, CleanText(job.Failure.JobName))))
		fmt.Fprintln(&content, lipgloss.NewStyle().Foreground(styles.Failure).Bold(true).Render(Wrap(job.Failure.Error, maxWidth)))
		return content.String()
	}

	t := job.Timing
	runner := "-"
	if t.RunnerName != nil {
		runner = CleanText(*t.RunnerName)
	}
	fmt.Fprintf(&content, "%s\n", headerStyle.Render(fmt.Sprintf("Job %d: %s", t.JobID, CleanText(t.JobName))))
	fmt.Fprintf(&content, "%s\n\n", lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(
		fmt.Sprintf("Duration: %s │ Runner: %s │ Steps: %d", FormatDuration(t.DurationMs), runner, len(t.Steps))))

	if len(t.Steps) == 0 {
		fmt.Fprintln(&content, styles.HelpStyle().Render("No steps reported."))
		return content.String()
	}

	var slowest int64
	if t.SlowestStep != nil {
		slowest = t.SlowestStep.DurationMs.OrZero()
	}

	barWidth := min(maxBarWidth, maxWidth/3)
	nameWidth := maxWidth - stepNumberWidth - stepDuration - barWidth - 3
	if nameWidth < 8 {
		nameWidth = 8
	}

	barStyle := lipgloss.NewStyle().Foreground(styles.Bar)
	for _, step := range t.Steps {
		name := TruncateAndPad(CleanText(step.Name), nameWidth, true)
		line := fmt.Sprintf("%*d %s %*s ", stepNumberWidth, step.Number, name, stepDuration, FormatDuration(step.DurationMs))

		style := styles.ConclusionStyle(step.Conclusion)
		if t.SlowestStep != nil && step.Number == t.SlowestStep.Number {
			style = style.Bold(true)
		}
		fmt.Fprintf(&content, "%s%s\n", style.Render(line), barStyle.Render(durationBar(step.DurationMs, slowest, barWidth)))
	}

	if t.SlowestStep != nil {
		fmt.Fprintf(&content, "\n%s\n", lipgloss.NewStyle().Foreground(styles.Warning).Render(
			fmt.Sprintf("Slowest step: %s (%s)", CleanText(t.SlowestStep.Name), FormatDuration(t.SlowestStep.DurationMs))))
	}

	return content.String()
}

// durationBar scales d against the slowest duration. Unknown durations
// draw no bar.
func durationBar(d analysis.Duration, slowest int64, width int) string {
	ms, ok := d.Value()
	if !ok || slowest <= 0 || width <= 0 {
		return ""
	}
	n := int(ms * int64(width) / slowest)
	if n == 0 && ms > 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
