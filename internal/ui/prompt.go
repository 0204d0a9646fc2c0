package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"daybook/internal/app"
)

type promptKind int

const (
	promptDelete promptKind = iota
	promptReorder
	promptLockOn
	promptLockOff
	promptPasswdOld
	promptPasswdNew
)

// prompt asks for the focus-lock password before a guarded action.
type prompt struct {
	kind     promptKind
	taskID   string
	position int
	old      string
}

func (p prompt) label() string {
	switch p.kind {
	case promptDelete:
		return "Password to delete this daily task"
	case promptReorder:
		return "Password to reorder daily tasks"
	case promptLockOn:
		return "Choose a focus-lock password"
	case promptLockOff:
		return "Password to turn focus lock off"
	case promptPasswdOld:
		return "Current focus-lock password"
	case promptPasswdNew:
		return "New focus-lock password"
	}
	return "Password"
}

func (m Model) askPassword(p prompt) (tea.Model, tea.Cmd) {
	m.prompt = &p
	m.mode = modePrompt
	m.input.SetValue("")
	m.input.Placeholder = p.label()
	m.input.EchoMode = textinput.EchoPassword
	m.input.Focus()
	m.status = p.label() + " (enter to confirm, esc to cancel)"
	return m, nil
}

func (m *Model) closePrompt() {
	m.prompt = nil
	m.mode = modeList
	m.input.SetValue("")
	m.input.EchoMode = textinput.EchoNormal
	m.input.Blur()
}

func (m Model) updatePrompt(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.closePrompt()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		p := *m.prompt
		pw := m.input.Value()
		m.closePrompt()
		return m.submitPrompt(p, pw)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) submitPrompt(p prompt, pw string) (tea.Model, tea.Cmd) {
	var err error
	switch p.kind {
	case promptDelete:
		if err = m.ctrl.Delete(p.taskID, pw); err == nil {
			m.cursor = clampCursor(m.cursor, len(m.rows()))
			m.status = "Deleted task"
		}
	case promptReorder:
		if err = m.ctrl.Reorder(p.taskID, p.position, pw); err == nil {
			m.selectID(p.taskID)
			m.status = "Moved task"
		}
	case promptLockOn:
		if err = m.ctrl.EnableFocusLock(pw); err == nil {
			m.status = "Focus lock on"
		}
	case promptLockOff:
		if err = m.ctrl.DisableFocusLock(pw); err == nil {
			m.status = "Focus lock off"
		}
	case promptPasswdOld:
		if err = m.ctrl.FocusLock().Verify(pw); err == nil {
			return m.askPassword(prompt{kind: promptPasswdNew, old: pw})
		}
	case promptPasswdNew:
		if err = m.ctrl.ChangeFocusPassword(p.old, pw); err == nil {
			m.status = "Focus-lock password changed"
		}
	}
	if err != nil {
		m.status = promptError(err)
	}
	cmd := m.enforceFocus()
	return m, cmd
}

func promptError(err error) string {
	if errors.Is(err, app.ErrFocusLocked) {
		return err.Error()
	}
	return fmt.Sprintf("refused: %v", err)
}
