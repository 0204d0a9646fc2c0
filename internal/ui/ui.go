// Package ui is the Bubble Tea front end. All controller calls happen in
// Update, so the periodic monitors and key handlers never overlap.
package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"daybook/internal/app"
	"daybook/internal/auth"
	"daybook/internal/clock"
	"daybook/internal/config"
	"daybook/internal/lock"
	"daybook/internal/storage"
	"daybook/internal/task"
	"daybook/internal/timer"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeCalendar
	modePrompt
)

// Filters cycled by the filter key.
var filters = []string{"all", "pending", "done"}

type (
	tickMsg     time.Time
	resetMsg    time.Time
	focusMsg    time.Time
	identityMsg auth.Identity
)

// SettingsSaver persists display preferences.
type SettingsSaver interface {
	SaveSettings(storage.Settings) error
}

type Options struct {
	Config   config.Config
	Settings storage.Settings
	Saver    SettingsSaver
	Auth     *auth.Service
	Clock    clock.Clock
	Logger   *slog.Logger
}

type Model struct {
	ctrl     *app.Controller
	cfg      config.Config
	settings storage.Settings
	saver    SettingsSaver
	clock    clock.Clock
	logger   *slog.Logger
	identity auth.Identity

	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	filterDone string
	confirmDel bool
	pendingDel *task.Task
	form       *formState
	prompt     *prompt
	cal        calState
	width      int
}

func New(ctrl *app.Controller, opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	ti := textinput.New()
	ti.Placeholder = "Task"
	ti.CharLimit = 256
	ti.Width = 40

	filter := strings.ToLower(opts.Config.DefaultFilter)
	if !slices.Contains(filters, filter) {
		filter = "all"
	}
	m := Model{
		ctrl:       ctrl,
		cfg:        opts.Config,
		settings:   opts.Settings,
		saver:      opts.Saver,
		clock:      opts.Clock,
		logger:     opts.Logger,
		input:      ti,
		mode:       modeList,
		filterDone: filter,
		status:     fmt.Sprintf("Press '%s' to add, '%s' to toggle, '%s' to delete.", opts.Config.Keys.Add, keyName(opts.Config.Keys.Toggle), opts.Config.Keys.Delete),
	}
	if opts.Auth != nil {
		m.identity = opts.Auth.Current()
	}
	now := m.now()
	m.cal = calState{year: now.Year(), month: now.Month(), day: now.Day()}
	return m
}

// Run starts the program and blocks until it exits.
func Run(ctrl *app.Controller, opts Options) error {
	program := tea.NewProgram(New(ctrl, opts))
	if opts.Auth != nil {
		opts.Auth.OnChange(func(id auth.Identity) { program.Send(identityMsg(id)) })
	}
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), resetTick(), focusTick(), m.enforceFocus())
}

func tick() tea.Cmd {
	return tea.Tick(app.TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func resetTick() tea.Cmd {
	return tea.Tick(app.DailyResetInterval, func(t time.Time) tea.Msg { return resetMsg(t) })
}

func focusTick() tea.Cmd {
	return tea.Tick(app.FocusCheckInterval, func(t time.Time) tea.Msg { return focusMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompt != nil {
			return m.updatePrompt(msg.String(), msg)
		}
		if m.form != nil {
			return m.updateAddMode(msg.String(), msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.mode == modeCalendar {
			return m.updateCalendar(msg.String())
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-10, 10)
	case tickMsg:
		id, err := m.ctrl.Tick()
		if err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else if id != "" {
			if t, ok := m.ctrl.Get(id); ok {
				m.status = fmt.Sprintf("Timer finished: %s", t.Text)
			}
		}
		return m, tea.Batch(tick(), tea.SetWindowTitle(m.windowTitle()))
	case resetMsg:
		if n, err := m.ctrl.ResetDaily(); err != nil {
			m.status = fmt.Sprintf("daily reset failed: %v", err)
		} else if n > 0 {
			m.status = fmt.Sprintf("New day: %d daily task(s) reset", n)
		}
		return m, resetTick()
	case focusMsg:
		cmd := m.enforceFocus()
		return m, tea.Batch(focusTick(), cmd)
	case identityMsg:
		m.identity = auth.Identity(msg)
	}
	return m, nil
}

// enforceFocus runs one focus-lock step. The alternate screen stands in
// for full screen; it is requested again on every step while required.
func (m *Model) enforceFocus() tea.Cmd {
	switch m.ctrl.EnforceFocus() {
	case lock.ActionAcquire:
		return tea.EnterAltScreen
	case lock.ActionRelease:
		m.status = "All daily tasks done. Focus lock released the screen."
		return tea.ExitAltScreen
	}
	return nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	rows := m.rows()
	overdue := len(m.ctrl.Overdue()) > 0

	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		if m.ctrl.FocusHeld() {
			m.status = "Focus lock: finish your daily tasks first"
			return m, nil
		}
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(rows) > 0 {
			m.cursor = clampCursor(m.cursor+1, len(rows))
		}
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(rows))
		}
	case m.cfg.Keys.Add:
		return m.startAdd("")
	case m.cfg.Keys.Toggle:
		if len(rows) == 0 {
			return m, nil
		}
		t := rows[m.cursor]
		if err := m.ctrl.Toggle(t.ID); err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			return m, nil
		}
		m.status = "Toggled task"
		m.cursor = clampCursor(m.cursor, len(m.rows()))
		cmd := m.enforceFocus()
		return m, cmd
	case m.cfg.Keys.Delete:
		if len(rows) == 0 {
			return m, nil
		}
		return m.startDelete(rows[m.cursor])
	case m.cfg.Keys.MoveUp, m.cfg.Keys.MoveDown:
		if len(rows) == 0 {
			return m, nil
		}
		t := rows[m.cursor]
		if !t.IsDaily {
			m.status = "Only daily tasks can be reordered"
			return m, nil
		}
		pos := t.Order + 1
		if key == m.cfg.Keys.MoveUp {
			pos = t.Order - 1
		}
		if m.ctrl.FocusLock().Enabled() {
			return m.askPassword(prompt{kind: promptReorder, taskID: t.ID, position: pos})
		}
		if err := m.ctrl.Reorder(t.ID, pos, ""); err != nil {
			m.status = fmt.Sprintf("move failed: %v", err)
			return m, nil
		}
		m.selectID(t.ID)
	case m.cfg.Keys.StartTimer:
		if len(rows) == 0 {
			return m, nil
		}
		t := rows[m.cursor]
		switch err := m.ctrl.StartTaskTimer(t.ID); {
		case errors.Is(err, app.ErrNoTimer):
			m.status = "This task has no timer"
		case err != nil:
			m.status = fmt.Sprintf("timer: %v", err)
		default:
			m.status = fmt.Sprintf("Timer started: %s", t.Text)
		}
	case m.cfg.Keys.StopTimer:
		m.ctrl.ResetTaskTimer()
		m.status = "Task timer reset"
	case m.cfg.Keys.FreeStart:
		free := m.ctrl.FreeTimer()
		if free.Remaining() > 0 {
			free.Resume()
		} else {
			free.Start()
		}
	case m.cfg.Keys.FreePause:
		m.ctrl.FreeTimer().Pause()
	case m.cfg.Keys.FreeReset:
		m.ctrl.FreeTimer().Reset()
	case m.cfg.Keys.Pomodoro:
		if m.ctrl.FreeTimer().TogglePomodoro() {
			m.status = "Pomodoro on"
		} else {
			m.status = "Pomodoro off"
		}
	case m.cfg.Keys.Calendar:
		m.mode = modeCalendar
		m.status = "Calendar: arrows move, enter adds a task that day"
	case m.cfg.Keys.Sort:
		if m.settings.NormalSort == task.SortDue {
			m.settings.NormalSort = task.SortCreated
		} else {
			m.settings.NormalSort = task.SortDue
		}
		m.saveSettings()
		m.status = "Sorted by " + string(m.settings.NormalSort)
	case m.cfg.Keys.Filter:
		i := slices.Index(filters, m.filterDone)
		m.filterDone = filters[wrapIndex(i+1, len(filters))]
		m.cursor = clampCursor(m.cursor, len(m.rows()))
		m.status = "Showing " + m.filterDone
	case m.cfg.Keys.ClockSize:
		i := slices.Index(storage.ClockSizes, m.settings.ClockSize)
		m.settings.ClockSize = storage.ClockSizes[wrapIndex(i+1, len(storage.ClockSizes))]
		m.saveSettings()
	case "+", "-":
		step := 10
		if key == "-" {
			step = -10
		}
		m.settings.ClockOpacity = min(max(m.settings.ClockOpacity+step, storage.MinClockOpacity), storage.MaxClockOpacity)
		m.saveSettings()
	case m.cfg.Keys.FocusLock:
		fl := m.ctrl.FocusLock()
		switch {
		case fl.Enabled():
			return m.askPassword(prompt{kind: promptLockOff})
		case !fl.HasPassword():
			return m.askPassword(prompt{kind: promptLockOn})
		default:
			if err := m.ctrl.EnableFocusLock(""); err != nil {
				m.status = fmt.Sprintf("focus lock: %v", err)
				return m, nil
			}
			m.status = "Focus lock on"
			cmd := m.enforceFocus()
			return m, cmd
		}
	case m.cfg.Keys.LockPasswd:
		if !m.ctrl.FocusLock().HasPassword() {
			m.status = "No focus-lock password set yet"
			return m, nil
		}
		return m.askPassword(prompt{kind: promptPasswdOld})
	case m.cfg.Keys.ResolveDone:
		if !overdue {
			return m, nil
		}
		n, err := m.ctrl.MarkOverdueDone()
		if err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, len(m.rows()))
		m.status = fmt.Sprintf("Removed %d overdue task(s)", n)
	case m.cfg.Keys.ResolveUrgent:
		if !overdue {
			return m, nil
		}
		m.status = fmt.Sprintf("Flagged %d task(s) urgent", m.ctrl.MarkOverdueUrgent())
	}
	return m, nil
}

func (m Model) startDelete(t task.Task) (tea.Model, tea.Cmd) {
	if t.IsDaily && m.ctrl.FocusLock().Enabled() {
		m.status = app.ErrFocusLocked.Error()
		return m, nil
	}
	if m.ctrl.NeedsPassword(t.ID) {
		return m.askPassword(prompt{kind: promptDelete, taskID: t.ID})
	}
	m.confirmDel = true
	m.pendingDel = &t
	m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Text)
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			break
		}
		if err := m.ctrl.Delete(m.pendingDel.ID, ""); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
			break
		}
		m.cursor = clampCursor(m.cursor, len(m.rows()))
		m.status = "Deleted task"
	default:
		return m, nil
	}
	m.confirmDel = false
	m.pendingDel = nil
	cmd := m.enforceFocus()
	return m, cmd
}

func (m *Model) saveSettings() {
	if m.saver == nil {
		return
	}
	if err := m.saver.SaveSettings(m.settings); err != nil {
		m.logger.Error("save settings", slog.String("error", err.Error()))
		m.status = fmt.Sprintf("save failed: %v", err)
	}
}

// rows is the visible list: daily tasks by rank, then normal tasks in the
// chosen order, both narrowed by the completion filter.
func (m Model) rows() []task.Task {
	all := append(m.ctrl.Recurring(), m.ctrl.OneOff(m.settings.NormalSort)...)
	if m.filterDone == "all" {
		return all
	}
	wantDone := m.filterDone == "done"
	out := all[:0]
	for _, t := range all {
		if t.Completed == wantDone {
			out = append(out, t)
		}
	}
	return out
}

func (m *Model) selectID(id string) {
	for i, t := range m.rows() {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
	m.cursor = clampCursor(m.cursor, len(m.rows()))
}

func (m Model) windowTitle() string {
	if tt := m.ctrl.TaskTimer(); tt.Running() {
		return timer.FormatClock(tt.Remaining()) + " - daybook"
	}
	if free := m.ctrl.FreeTimer(); free.Running() {
		return timer.FormatClock(free.Remaining()) + " - daybook"
	}
	return "daybook"
}

func (m Model) now() time.Time {
	return m.clock.Now().In(time.Local)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
