package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/ui"
)

// Style variables for the dashboard, rebuilt from the ui theme by
// initStyles.
var (
	titleStyle   lipgloss.Style
	dimStyle     lipgloss.Style
	accentStyle  lipgloss.Style
	barStyle     lipgloss.Style
	runStyle     lipgloss.Style
	okStyle      lipgloss.Style
	errStyle     lipgloss.Style
	verdictStyle lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds all styles from the current ui theme. Run calls it
// again after app.Run has applied InitTheme.
func initStyles() {
	t := ui.GetCurrentTheme()

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Muted)
	accentStyle = lipgloss.NewStyle().Foreground(t.Accent)
	barStyle = lipgloss.NewStyle().Foreground(t.Accent)
	runStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	okStyle = lipgloss.NewStyle().Foreground(t.Positive).Bold(true)
	errStyle = lipgloss.NewStyle().Foreground(t.Negative).Bold(true)
	verdictStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
}
