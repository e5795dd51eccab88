// Package tui provides the terminal views of actions-insight: an
// interactive browser over a run's job timings and the tables printed by
// the CLI.
package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"actions-insight/src/analysis"
)

// Loader fetches the report shown by the timings view.
type Loader func() (*analysis.TimingReport, error)

type reportLoadedMsg struct {
	report *analysis.TimingReport
	err    error
}

// Column widths of the jobs table, the name column takes the rest.
const (
	idxWidth        = 3
	conclusionWidth = 12
	durationWidth   = 9
	stepsWidth      = 6
	minNameWidth    = 12
)

// TimingsModel is the Bubble Tea model for browsing a timing report.
// The jobs table is always visible; enter opens the selected job's steps.
type TimingsModel struct {
	load     Loader
	report   *analysis.TimingReport
	err      error
	loading  bool
	progress ProgressModel
	header   Header

	jobs          table.Model
	detail        viewport.Model
	detailFocused bool

	width  int
	height int
	ready  bool
	styles *StyleConfig
}

// NewTimingsModel creates the view. load runs in the background on Init
// and again on refresh.
func NewTimingsModel(title string, load Loader) TimingsModel {
	styles := DefaultStyles()

	jobs := table.New(
		table.WithColumns(jobColumns(80)),
		table.WithFocused(true),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.BorderColor).
		BorderBottom(true).
		Foreground(styles.PrimaryBlue).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(styles.PrimaryBlue).
		Background(styles.SelectedColor).
		Bold(true)
	jobs.SetStyles(ts)

	return TimingsModel{
		load:     load,
		loading:  true,
		progress: NewProgressModel(),
		header:   NewHeader(title),
		jobs:     jobs,
		detail:   viewport.New(0, 0),
		styles:   styles,
	}
}

// Run starts the interactive view on the alternate screen.
func Run(title string, load Loader) error {
	_, err := tea.NewProgram(NewTimingsModel(title, load), tea.WithAltScreen()).Run()
	return err
}

func (m TimingsModel) Init() tea.Cmd {
	return tea.Batch(SpinnerTick(), m.fetch())
}

func (m TimingsModel) fetch() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		report, err := load()
		return reportLoadedMsg{report: report, err: err}
	}
}

func (m TimingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case SpinnerTickMsg, ProgressMsg:
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd

	case reportLoadedMsg:
		m.loading = false
		m.progress, _ = m.progress.Update(ProgressMsg{Stage: "complete"})
		m.err = msg.err
		if msg.err == nil {
			m.setReport(msg.report)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.detailFocused = false
			return m, nil
		case "r":
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.err = nil
			m.progress = NewProgressModel()
			m.progress, _ = m.progress.Update(ProgressMsg{Stage: "Refreshing job timings"})
			return m, tea.Batch(SpinnerTick(), m.fetch())
		case "enter":
			if m.report != nil && len(m.report.Jobs) > 0 {
				m.detailFocused = true
				m.updateDetail()
			}
			return m, nil
		}

		if m.detailFocused {
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		m.jobs, cmd = m.jobs.Update(msg)
		m.updateDetail()
		return m, cmd
	}

	return m, nil
}

func (m *TimingsModel) setReport(report *analysis.TimingReport) {
	m.report = report
	m.header.SetReport(report)
	m.jobs.SetRows(jobRows(report))
	if m.jobs.Cursor() >= len(report.Jobs) {
		m.jobs.SetCursor(0)
	}
	m.updateDetail()
}

// selected returns the job under the table cursor.
func (m TimingsModel) selected() (analysis.JobTimingResult, bool) {
	if m.report == nil {
		return analysis.JobTimingResult{}, false
	}
	i := m.jobs.Cursor()
	if i < 0 || i >= len(m.report.Jobs) {
		return analysis.JobTimingResult{}, false
	}
	return m.report.Jobs[i], true
}

func (m *TimingsModel) updateDetail() {
	job, ok := m.selected()
	if !ok {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(renderJobDetail(job, m.detail.Width-2, m.styles))
	m.detail.GotoTop()
}

// resize splits the screen: jobs table on top, step detail below.
func (m *TimingsModel) resize() {
	headerHeight := lipgloss.Height(m.header.Render(m.width))
	// header + help line + two panel borders each
	available := m.height - headerHeight - 1 - 4
	if available < 4 {
		available = 4
	}
	tableHeight := available / 2

	m.jobs.SetColumns(jobColumns(m.width - 2))
	m.jobs.SetWidth(m.width - 2)
	m.jobs.SetHeight(tableHeight)

	m.detail.Width = m.width - 2
	m.detail.Height = available - tableHeight
	m.updateDetail()
}

func jobColumns(width int) []table.Column {
	// every column carries 2 cells of padding
	name := width - idxWidth - conclusionWidth - durationWidth - stepsWidth - 5*2
	if name < minNameWidth {
		name = minNameWidth
	}
	return []table.Column{
		{Title: "#", Width: idxWidth},
		{Title: "Job", Width: name},
		{Title: "Conclusion", Width: conclusionWidth},
		{Title: "Duration", Width: durationWidth},
		{Title: "Steps", Width: stepsWidth},
	}
}

func jobRows(report *analysis.TimingReport) []table.Row {
	rows := make([]table.Row, len(report.Jobs))
	for i, job := range report.Jobs {
		idx := strconv.Itoa(i + 1)
		if job.Failure != nil {
			rows[i] = table.Row{idx, CleanText(job.Failure.JobName), "unavailable", "-", "-"}
			continue
		}
		t := job.Timing
		rows[i] = table.Row{
			idx,
			CleanText(t.JobName),
			conclusionText(string(t.Status), string(t.Conclusion)),
			FormatDuration(t.DurationMs),
			strconv.Itoa(len(t.Steps)),
		}
	}
	return rows
}

// conclusionText shows the conclusion, or the status while still running.
func conclusionText(status, conclusion string) string {
	if conclusion != "" {
		return conclusion
	}
	if status != "" {
		return status
	}
	return "-"
}

// View renders the complete TUI layout
func (m TimingsModel) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := m.header.Render(m.width)

	if m.loading && m.report == nil {
		centered := lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			PaddingTop(2).
			Render(m.progress.View())
		return lipgloss.JoinVertical(lipgloss.Left, header, centered)
	}

	if m.err != nil && m.report == nil {
		msg := lipgloss.NewStyle().
			Foreground(m.styles.Failure).
			Padding(1, 2).
			Render(Wrap(fmt.Sprintf("Error fetching job timings: %v", m.err), max(m.width-4, 20)))
		return lipgloss.JoinVertical(lipgloss.Left, header, msg, m.renderHelpText())
	}

	if len(m.report.Jobs) == 0 {
		empty := m.styles.HelpStyle().Padding(1, 2).Render("No jobs in this run.")
		return lipgloss.JoinVertical(lipgloss.Left, header, empty, m.renderHelpText())
	}

	jobsPanel := m.styles.PanelStyle(!m.detailFocused).Render(m.jobs.View())
	detailPanel := m.styles.PanelStyle(m.detailFocused).
		Width(m.detail.Width).
		Render(m.detail.View())

	sections := []string{header, jobsPanel, detailPanel}
	if m.err != nil {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(m.styles.Failure).
			Padding(0, 2).
			Render(Truncate(fmt.Sprintf("Refresh failed: %v", m.err), max(m.width-4, 20), true)))
	}
	sections = append(sections, m.renderHelpText())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHelpText renders context-aware help text at the bottom
func (m TimingsModel) renderHelpText() string {
	keyStyle := lipgloss.NewStyle().Foreground(m.styles.PrimaryBlue).Bold(true)
	sepStyle := lipgloss.NewStyle().Foreground(m.styles.TextSecondary)

	var helpText string
	if m.detailFocused {
		helpText = fmt.Sprintf("%s: Scroll %s %s: Back %s %s: Quit",
			keyStyle.Render("j/k"), sepStyle.Render("•"),
			keyStyle.Render("Esc"), sepStyle.Render("•"),
			keyStyle.Render("q"))
	} else {
		helpText = fmt.Sprintf("%s: Nav %s %s: Steps %s %s: Refresh %s %s: Quit",
			keyStyle.Render("j/k"), sepStyle.Render("•"),
			keyStyle.Render("Enter"), sepStyle.Render("•"),
			keyStyle.Render("r"), sepStyle.Render("•"),
			keyStyle.Render("q"))
	}

	return m.styles.HelpStyle().Render(helpText)
}
