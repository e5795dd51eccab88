package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"actions-insight/src/analysis"
)

// Header is the top status bar of the timings view.
type Header struct {
	title  string
	report *analysis.TimingReport
	styles *StyleConfig
}

// NewHeader creates a new header with default styles
func NewHeader(title string) Header {
	return Header{title: title, styles: DefaultStyles()}
}

// SetReport updates the summary shown next to the title.
func (h *Header) SetReport(report *analysis.TimingReport) {
	h.report = report
}

// Render renders the header
func (h Header) Render(width int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(h.styles.PrimaryBlue).
		Bold(true).
		Padding(0, 2)
	sections := []string{titleStyle.Render(h.title)}

	if h.report != nil {
		summaryStyle := lipgloss.NewStyle().
			Foreground(h.styles.TextSecondary).
			Padding(0, 2)

		slowest := "none"
		if h.report.Summary.SlowestJob != nil {
			slowest = CleanText(*h.report.Summary.SlowestJob)
		}
		sections = append(sections,
			summaryStyle.Render(fmt.Sprintf("Jobs: %d", h.report.Summary.TotalJobs)),
			summaryStyle.Render(fmt.Sprintf("Steps: %d", h.report.Summary.TotalSteps)),
			summaryStyle.Render(fmt.Sprintf("Slowest: %s", slowest)),
		)
		if failed := countFailures(h.report); failed > 0 {
			sections = append(sections, lipgloss.NewStyle().
				Foreground(h.styles.Failure).
				Padding(0, 2).
				Render(fmt.Sprintf("Unavailable: %d", failed)))
		}
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, sections...)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(h.styles.BorderColor)
	if width > 0 {
		headerStyle = headerStyle.Width(width)
	}
	return headerStyle.Render(content)
}

func countFailures(report *analysis.TimingReport) int {
	n := 0
	for _, job := range report.Jobs {
		if job.Failure != nil {
			n++
		}
	}
	return n
}
