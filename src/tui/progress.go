package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner frames for the loading animation
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ProgressMsg updates the loading stage. Stage "complete" stops the spinner.
type ProgressMsg struct {
	Stage string
}

// SpinnerTickMsg triggers spinner animation frame advance
type SpinnerTickMsg time.Time

// ProgressModel is the loading indicator shown while a report is fetched.
type ProgressModel struct {
	stage        string
	done         bool
	spinnerFrame int
	styles       *StyleConfig
}

func NewProgressModel() ProgressModel {
	return ProgressModel{styles: DefaultStyles()}
}

// SpinnerTick returns a command that sends SpinnerTickMsg after a delay
func SpinnerTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return SpinnerTickMsg(t)
	})
}

func (m ProgressModel) Update(msg tea.Msg) (ProgressModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.stage = msg.Stage
		m.done = msg.Stage == "complete"
	case SpinnerTickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
		if !m.done {
			return m, SpinnerTick()
		}
	}
	return m, nil
}

func (m ProgressModel) View() string {
	title := m.styles.TitleStyle().Render("actions-insight")

	if m.done {
		status := lipgloss.NewStyle().Foreground(m.styles.Success).Render("✓ Complete")
		return lipgloss.JoinVertical(lipgloss.Center, title, "", status)
	}

	spinner := lipgloss.NewStyle().Foreground(m.styles.Warning).Render(spinnerFrames[m.spinnerFrame])
	stage := m.stage
	if stage == "" {
		stage = "Loading"
	}
	return lipgloss.JoinVertical(lipgloss.Center, title, "", fmt.Sprintf("%s %s...", spinner, stage))
}
