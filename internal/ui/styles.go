package ui

import (
	"github.com/charmbracelet/lipgloss"

	"daybook/internal/storage"
	"daybook/internal/task"
)

var (
	accentColor = lipgloss.Color("#5FAFAF")
	subtleColor = lipgloss.Color("#666666")
	alertColor  = lipgloss.Color("#AF5F5F")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	subtleStyle   = lipgloss.NewStyle().Foreground(subtleColor)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	doneStyle     = lipgloss.NewStyle().Foreground(subtleColor).Strikethrough(true)
	alertStyle    = lipgloss.NewStyle().Bold(true).Foreground(alertColor)
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(subtleColor).
			Padding(0, 1)
	alertBoxStyle = boxStyle.BorderForeground(alertColor)
	plainStyle    = lipgloss.NewStyle()
)

var taskColors = map[task.Color]lipgloss.Color{
	task.Red:    lipgloss.Color("#E06C75"),
	task.Orange: lipgloss.Color("#D19A66"),
	task.Yellow: lipgloss.Color("#E5C07B"),
	task.Green:  lipgloss.Color("#98C379"),
	task.Blue:   lipgloss.Color("#61AFEF"),
	task.Indigo: lipgloss.Color("#7C83FD"),
	task.Purple: lipgloss.Color("#C678DD"),
}

func colorStyle(c task.Color) lipgloss.Style {
	col, ok := taskColors[c]
	if !ok {
		col = taskColors[task.DefaultColor]
	}
	return lipgloss.NewStyle().Foreground(col)
}

// clockStyle sizes the header clock. Opacity below half renders faint,
// which is as close as a terminal gets to transparency.
func clockStyle(s storage.Settings) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(accentColor)
	switch s.ClockSize {
	case storage.ClockMedium:
		st = st.Bold(true)
	case storage.ClockLarge:
		st = st.Bold(true).Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 2)
	}
	if s.ClockOpacity < 50 {
		st = st.Faint(true)
	}
	return st
}
