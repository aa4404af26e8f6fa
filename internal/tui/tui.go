package tui

import (
	"quire-cli/internal/journal"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(dir string, svc *journal.Service, sink *feedbackSink) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(dir, svc, sink)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus()).Run()
	return err
}
