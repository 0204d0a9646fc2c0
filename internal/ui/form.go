package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"daybook/internal/task"
)

// formState is the add form. Fields are edited one at a time through the
// shared text input.
type formState struct {
	text  string
	daily string
	due   string
	color string
	timer string
	index int
}

func formFields() []string {
	return []string{"task", "daily (y/n)", "due date (YYYY-MM-DD)", "color", "timer (none|10|25|30|MM:SS)"}
}

func (fs formState) currentLabel() string {
	return formFields()[fs.index]
}

func (fs formState) currentValue() string {
	switch fs.index {
	case 0:
		return fs.text
	case 1:
		return fs.daily
	case 2:
		return fs.due
	case 3:
		return fs.color
	case 4:
		return fs.timer
	default:
		return ""
	}
}

func (fs *formState) setCurrentValue(v string) {
	switch fs.index {
	case 0:
		fs.text = v
	case 1:
		fs.daily = v
	case 2:
		fs.due = v
	case 3:
		fs.color = v
	case 4:
		fs.timer = v
	}
}

// draft validates the form into a task draft.
func (fs formState) draft() (task.Draft, error) {
	color, err := task.ParseColor(fs.color)
	if err != nil {
		return task.Draft{}, err
	}
	timer, err := task.ParseTimer(fs.timer)
	if err != nil {
		return task.Draft{}, err
	}
	d := task.Draft{
		Text:      fs.text,
		Recurring: parseYN(fs.daily),
		Color:     color,
		Timer:     timer,
	}
	if !d.Recurring {
		d.DueDate = strings.TrimSpace(fs.due)
	}
	return d, nil
}

func (m Model) startAdd(due string) (tea.Model, tea.Cmd) {
	m.form = &formState{daily: "n", due: due, color: string(task.DefaultColor), timer: "none"}
	m.input.EchoMode = textinput.EchoNormal
	m.input.SetValue(m.form.currentValue())
	m.input.CursorEnd()
	m.input.Placeholder = m.form.currentLabel()
	m.input.Focus()
	m.mode = modeAdd
	m.status = m.formPrompt()
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "tab", "down":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index+1, len(formFields()))
		m.syncFormInput()
		return m, nil
	case "shift+tab", "up":
		m.form.setCurrentValue(m.input.Value())
		m.form.index = wrapIndex(m.form.index-1, len(formFields()))
		m.syncFormInput()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.form.setCurrentValue(m.input.Value())
		if m.form.index >= len(formFields())-1 {
			return m.saveForm()
		}
		m.form.index++
		m.syncFormInput()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) syncFormInput() {
	m.input.SetValue(m.form.currentValue())
	m.input.CursorEnd()
	m.input.Placeholder = m.form.currentLabel()
	m.status = m.formPrompt()
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	d, err := m.form.draft()
	if err != nil {
		m.status = fmt.Sprintf("invalid: %v", err)
		return m, nil
	}
	if strings.TrimSpace(d.Text) == "" {
		m.form = nil
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = ""
		return m, nil
	}
	t, err := m.ctrl.Add(d)
	if err != nil && t.ID == "" {
		m.status = fmt.Sprintf("add failed: %v", err)
		return m, nil
	}
	m.form = nil
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	m.selectID(t.ID)
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
	} else {
		m.status = "Added task"
	}
	return m, nil
}

func (m Model) formPrompt() string {
	if m.form == nil {
		return ""
	}
	return fmt.Sprintf("Adding: %s (field %d of %d). Enter to advance, Esc to cancel, tab to move.",
		m.form.currentLabel(), m.form.index+1, len(formFields()))
}

func (m Model) renderForm() string {
	if m.form == nil {
		return ""
	}
	values := []string{m.form.text, m.form.daily, m.form.due, m.form.color, m.form.timer}
	var b strings.Builder
	for i, name := range formFields() {
		prefix := " "
		if i == m.form.index {
			prefix = ">"
		}
		val := values[i]
		if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-28s : %s\n", prefix, name, val))
	}
	return b.String()
}

func parseYN(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "y" || v == "yes" || v == "true" || v == "1"
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
