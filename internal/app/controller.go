// Package app owns the task list and the monitors that rewrite it: daily
// reset, overdue scan, the two countdown timers and the focus lock.
//
// A Controller is not safe for concurrent use. The TUI drives it from the
// Bubble Tea update loop and the watch command from a single select loop;
// every periodic handler re-checks its condition, so running one after
// another handler has already advanced the state is harmless.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"daybook/internal/alert"
	"daybook/internal/clock"
	"daybook/internal/lock"
	"daybook/internal/task"
	"daybook/internal/timer"
)

var (
	ErrNotFound     = errors.New("task not found")
	ErrAmbiguous    = errors.New("task id prefix is ambiguous")
	ErrNotRecurring = errors.New("task is not a daily task")
	ErrCompleted    = errors.New("task is already completed")
	ErrNoTimer      = errors.New("task has no timer")
	ErrFocusLocked  = errors.New("focus lock is on: daily tasks cannot be deleted")
)

// Persister mirrors the controller's state to durable storage.
type Persister interface {
	SaveTasks([]task.Task) error
	SaveFocusLock(enabled bool, hash string) error
}

// State is what the controller is loaded with at start-up.
type State struct {
	Tasks        []task.Task
	FocusEnabled bool
	FocusHash    string
	FreeTimer    time.Duration
	Pomodoro     bool
}

type Options struct {
	Clock  clock.Clock
	Logger *slog.Logger
	Beeper alert.Beeper
	NewID  func() string
}

type Controller struct {
	tasks  []task.Task
	store  Persister
	clock  clock.Clock
	logger *slog.Logger
	beeper alert.Beeper
	newID  func() string

	taskTimer timer.TaskTimer
	free      *timer.FreeTimer

	focus    lock.FocusLock
	enforcer lock.Enforcer

	overdue []string
	urgent  map[string]struct{}
}

func New(store Persister, st State, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Beeper == nil {
		opts.Beeper = alert.Silent{}
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	c := &Controller{
		tasks:  slices.Clone(st.Tasks),
		store:  store,
		clock:  opts.Clock,
		logger: opts.Logger,
		beeper: opts.Beeper,
		newID:  opts.NewID,
		free:   timer.NewFreeTimer(st.FreeTimer, st.Pomodoro),
		focus:  lock.Restore(st.FocusEnabled, st.FocusHash),
		urgent: map[string]struct{}{},
	}
	c.renumberRecurring()
	c.ScanOverdue()
	return c
}

// Tasks returns a copy of the list in store order.
func (c *Controller) Tasks() []task.Task {
	return slices.Clone(c.tasks)
}

// Recurring returns the daily tasks by rank.
func (c *Controller) Recurring() []task.Task {
	var out []task.Task
	for _, t := range c.tasks {
		if t.IsDaily {
			out = append(out, t)
		}
	}
	return task.SortRecurring(out)
}

// OneOff returns the normal tasks in the requested order.
func (c *Controller) OneOff(mode task.SortMode) []task.Task {
	var out []task.Task
	for _, t := range c.tasks {
		if !t.IsDaily {
			out = append(out, t)
		}
	}
	return task.SortOneOff(out, mode)
}

func (c *Controller) Get(id string) (task.Task, bool) {
	i := c.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	return c.tasks[i], true
}

// Resolve expands a unique id prefix to a full id.
func (c *Controller) Resolve(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrNotFound
	}
	match := ""
	for _, t := range c.tasks {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", ErrAmbiguous, prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	return match, nil
}

// Add builds a task from d and appends it. Empty text yields
// task.ErrEmptyText and leaves the store untouched.
func (c *Controller) Add(d task.Draft) (task.Task, error) {
	t, err := task.New(c.newID(), d, c.now())
	if err != nil {
		return task.Task{}, err
	}
	if t.IsDaily {
		t.Order = len(c.Recurring()) + 1
	}
	c.tasks = append(c.tasks, t)
	c.logger.Info("task added", slog.String("id", t.ID), slog.String("kind", t.Kind().String()))
	return t, c.changed()
}

// Toggle flips completion. Toggling the running timer's task cancels the
// timer without completing it.
func (c *Controller) Toggle(id string) error {
	i := c.index(id)
	if i < 0 {
		return ErrNotFound
	}
	c.tasks[i].Completed = !c.tasks[i].Completed
	if c.taskTimer.Active(id) {
		c.taskTimer.Reset()
	}
	return c.changed()
}

// NeedsPassword reports whether deleting id will ask for the lock password.
func (c *Controller) NeedsPassword(id string) bool {
	t, ok := c.Get(id)
	return ok && t.IsDaily && t.CompletedCount > 0 && c.focus.HasPassword()
}

// Delete removes a task. Daily tasks cannot be deleted while the focus
// lock is on; a daily task that has been finished by its timer needs the
// lock password, when one is set.
func (c *Controller) Delete(id, password string) error {
	i := c.index(id)
	if i < 0 {
		return ErrNotFound
	}
	t := c.tasks[i]
	if t.IsDaily && c.focus.Enabled() {
		return ErrFocusLocked
	}
	if c.NeedsPassword(id) {
		if err := c.focus.Verify(password); err != nil {
			return err
		}
	}
	c.remove(id)
	c.logger.Info("task deleted", slog.String("id", id))
	return c.changed()
}

// Reorder moves a daily task to the 1-based position among daily tasks
// and renumbers them all from 1. While the focus lock is on this needs
// the lock password.
func (c *Controller) Reorder(id string, position int, password string) error {
	t, ok := c.Get(id)
	if !ok {
		return ErrNotFound
	}
	if !t.IsDaily {
		return ErrNotRecurring
	}
	if c.focus.Enabled() {
		if err := c.focus.Verify(password); err != nil {
			return err
		}
	}
	ranked := c.Recurring()
	from := slices.IndexFunc(ranked, func(r task.Task) bool { return r.ID == id })
	position = min(max(position, 1), len(ranked))
	moved := ranked[from]
	ranked = slices.Delete(ranked, from, from+1)
	ranked = slices.Insert(ranked, position-1, moved)
	c.applyRanks(ranked)
	return c.changed()
}

func (c *Controller) remove(id string) {
	c.tasks = slices.DeleteFunc(c.tasks, func(t task.Task) bool { return t.ID == id })
	if c.taskTimer.Active(id) {
		c.taskTimer.Reset()
	}
	delete(c.urgent, id)
	c.renumberRecurring()
}

// renumberRecurring keeps daily ranks contiguous from 1 in their current
// relative order.
func (c *Controller) renumberRecurring() {
	c.applyRanks(c.Recurring())
}

func (c *Controller) applyRanks(ranked []task.Task) {
	rank := make(map[string]int, len(ranked))
	for n, r := range ranked {
		rank[r.ID] = n + 1
	}
	for n := range c.tasks {
		if r, ok := rank[c.tasks[n].ID]; ok {
			c.tasks[n].Order = r
		}
	}
}

func (c *Controller) index(id string) int {
	return slices.IndexFunc(c.tasks, func(t task.Task) bool { return t.ID == id })
}

// changed persists the list and re-derives the overdue alert.
func (c *Controller) changed() error {
	c.ScanOverdue()
	if err := c.store.SaveTasks(c.tasks); err != nil {
		c.logger.Error("save tasks", slog.String("error", err.Error()))
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (c *Controller) now() time.Time {
	return c.clock.Now().In(time.Local)
}
