package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"daybook/internal/config"
	"daybook/internal/storage"
	"daybook/internal/task"
	"daybook/internal/timer"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if alert := m.renderOverdue(); alert != "" {
		b.WriteString(alert)
		b.WriteString("\n")
	}

	switch {
	case m.mode == modeCalendar:
		b.WriteString(m.renderCalendar())
	case len(m.rows()) == 0:
		b.WriteString(subtleStyle.Render(fmt.Sprintf("No tasks. Press '%s' to add one.", m.cfg.Keys.Add)))
	default:
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n---\n")
	b.WriteString(m.renderTimers())

	switch {
	case m.form != nil:
		b.WriteString("\n\n")
		b.WriteString(m.renderForm())
		b.WriteString(m.input.View())
	case m.prompt != nil:
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderHeader() string {
	parts := []string{titleStyle.Render("daybook")}
	if m.settings.ClockSize != storage.ClockNone {
		parts = append(parts, clockStyle(m.settings).Render(m.now().Format("15:04:05")))
	}
	who := "signed out"
	if m.identity.SignedIn() {
		who = m.identity.Email
	}
	parts = append(parts, subtleStyle.Render(who))
	if m.ctrl.FocusLock().Enabled() {
		parts = append(parts, alertStyle.Render("FOCUS LOCK"))
	}
	parts = append(parts, subtleStyle.Render("["+m.filterDone+", "+string(m.settings.NormalSort)+"]"))
	return lipgloss.JoinHorizontal(lipgloss.Center, join(parts, "  ")...)
}

func join(parts []string, sep string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

func (m Model) renderOverdue() string {
	overdue := m.ctrl.Overdue()
	if len(overdue) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(alertStyle.Render(fmt.Sprintf("%d overdue task(s)", len(overdue))))
	for _, t := range overdue {
		b.WriteString(fmt.Sprintf("\n  %s (due %s)", t.Text, t.DueDate))
	}
	b.WriteString(fmt.Sprintf("\n%s: remove them  %s: flag urgent", m.cfg.Keys.ResolveDone, m.cfg.Keys.ResolveUrgent))
	return alertBoxStyle.Render(b.String())
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	tt := m.ctrl.TaskTimer()
	inDaily := false
	for i, t := range m.rows() {
		if i == 0 || t.IsDaily != inDaily {
			inDaily = t.IsDaily
			heading := "Tasks"
			if inDaily {
				heading = "Daily"
			}
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(subtleStyle.Render(heading))
			b.WriteString("\n")
		}

		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}
		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}
		text := t.Text
		switch {
		case t.Completed:
			text = doneStyle.Render(text)
		case m.cursor == i && m.mode == modeList:
			text = selectedStyle.Render(text)
		}

		body := fmt.Sprintf("%s %s %s %s", cursor, checkbox, colorStyle(t.Color).Render("●"), text)
		for _, badge := range m.badges(t, tt) {
			body += " " + badge
		}
		b.WriteString(body)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) badges(t task.Task, tt *timer.TaskTimer) []string {
	var out []string
	if t.DueDate != "" {
		out = append(out, subtleStyle.Render("due "+t.DueDate))
	}
	switch {
	case tt.Active(t.ID):
		out = append(out, selectedStyle.Render("⏱ "+timer.FormatClock(tt.Remaining())))
	case t.HasTimer():
		out = append(out, subtleStyle.Render("⏱ "+timer.FormatClock(int(t.Timer().Seconds()))))
	}
	if t.CompletedCount > 0 {
		out = append(out, subtleStyle.Render(fmt.Sprintf("×%d", t.CompletedCount)))
	}
	if m.ctrl.IsUrgent(t.ID) {
		out = append(out, alertStyle.Render("URGENT"))
	}
	return out
}

func (m Model) renderTimers() string {
	free := m.ctrl.FreeTimer()
	label := "Timer"
	if free.Pomodoro() {
		label = "Pomodoro"
	}
	line := fmt.Sprintf("%s %s (%s)", label, timer.FormatClock(free.Remaining()), free.State())
	if tt := m.ctrl.TaskTimer(); tt.Target() != "" {
		if t, ok := m.ctrl.Get(tt.Target()); ok {
			line += fmt.Sprintf("  •  %s %s", t.Text, timer.FormatClock(tt.Remaining()))
		}
	}
	return line
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s delete • %s/%s reorder • %s/%s task timer • %s/%s/%s/%s free timer • %s calendar • %s sort • %s filter • %s clock • %s focus lock • %s quit",
		k.Up, k.Down, k.Add, keyName(k.Toggle), k.Delete, k.MoveUp, k.MoveDown, k.StartTimer, k.StopTimer,
		k.FreeStart, k.FreePause, k.FreeReset, k.Pomodoro, k.Calendar, k.Sort, k.Filter, k.ClockSize, k.FocusLock, k.Quit)
}
