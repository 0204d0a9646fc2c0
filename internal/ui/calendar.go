package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"daybook/internal/calendar"
	"daybook/internal/task"
)

// calState is the calendar page and the highlighted day on it.
type calState struct {
	year  int
	month time.Month
	day   int
}

func (c calState) daysIn() int {
	return time.Date(c.year, c.month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

func (c calState) shift(n int) calState {
	c.year, c.month = calendar.Shift(c.year, c.month, n)
	c.day = min(c.day, c.daysIn())
	return c
}

func (c calState) date() string {
	return task.FormatDate(time.Date(c.year, c.month, c.day, 0, 0, 0, 0, time.Local))
}

func (m Model) updateCalendar(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit, m.cfg.Keys.Cancel, "esc", m.cfg.Keys.Calendar:
		m.mode = modeList
		m.status = ""
	case m.cfg.Keys.PrevMonth:
		m.cal = m.cal.shift(-1)
	case m.cfg.Keys.NextMonth:
		m.cal = m.cal.shift(1)
	case "left", "h":
		m.cal = m.cal.move(-1)
	case "right", "l":
		m.cal = m.cal.move(1)
	case "up", m.cfg.Keys.Up:
		m.cal = m.cal.move(-7)
	case "down", m.cfg.Keys.Down:
		m.cal = m.cal.move(7)
	case m.cfg.Keys.Confirm, "enter":
		return m.startAdd(m.cal.date())
	}
	return m, nil
}

// move steps the highlighted day by n, crossing month boundaries.
func (c calState) move(n int) calState {
	d := time.Date(c.year, c.month, c.day+n, 0, 0, 0, 0, time.Local)
	return calState{year: d.Year(), month: d.Month(), day: d.Day()}
}

func (m Model) renderCalendar() string {
	page := calendar.Build(m.cal.year, m.cal.month, m.ctrl.Tasks(), m.now())
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s %s",
		m.cfg.Keys.PrevMonth, page.Title(), m.cfg.Keys.NextMonth)))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(" Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")
	for _, week := range page.Weeks() {
		for _, cell := range week {
			if cell == nil {
				b.WriteString("   ")
				continue
			}
			label := fmt.Sprintf("%3d", cell.Day)
			style := plainStyle
			if cell.HasColor {
				style = colorStyle(cell.Color).Bold(true)
			}
			if cell.Today {
				style = style.Underline(true)
			}
			if cell.Day == m.cal.day {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(label))
		}
		b.WriteString("\n")
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
