package app

import (
	"log/slog"
	"slices"
	"time"

	"daybook/internal/task"
)

// Daily tasks belong to a day that runs from DayStartHour until
// LateNightEndHour the next morning; in between, resets are held back.
const (
	DayStartHour     = 5
	LateNightEndHour = 1

	DailyResetInterval = time.Minute
	FocusCheckInterval = 500 * time.Millisecond
	TickInterval       = time.Second
)

// InResetWindow reports whether a daily reset may run at t.
func InResetWindow(t time.Time) bool {
	h := t.Hour()
	return h >= DayStartHour || h < LateNightEndHour
}

// ResetDaily clears completion on daily tasks not yet reset today and
// returns how many changed. Outside the reset window it does nothing.
func (c *Controller) ResetDaily() (int, error) {
	now := c.now()
	if !InResetWindow(now) {
		return 0, nil
	}
	today := task.FormatDate(now)
	n := 0
	for i := range c.tasks {
		t := &c.tasks[i]
		if !t.IsDaily || t.LastResetDate == today {
			continue
		}
		t.Completed = false
		t.LastResetDate = today
		n++
	}
	if n == 0 {
		return 0, nil
	}
	c.logger.Info("daily reset", slog.Int("tasks", n), slog.String("date", today))
	return n, c.changed()
}

// ScanOverdue recomputes the overdue alert: incomplete normal tasks whose
// due date is before today, minus those already flagged urgent. It returns
// the alerted tasks in store order.
func (c *Controller) ScanOverdue() []task.Task {
	now := c.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	var alerted []task.Task
	ids := make([]string, 0, len(c.overdue))
	for _, t := range c.tasks {
		if t.IsDaily || t.Completed {
			continue
		}
		due, ok := t.Due()
		if !ok || !due.Before(today) {
			continue
		}
		if _, flagged := c.urgent[t.ID]; flagged {
			continue
		}
		alerted = append(alerted, t)
		ids = append(ids, t.ID)
	}
	if !slices.Equal(ids, c.overdue) && len(ids) > 0 {
		c.logger.Info("overdue tasks", slog.Int("count", len(ids)))
	}
	c.overdue = ids
	return alerted
}

// Overdue returns the current alert in store order.
func (c *Controller) Overdue() []task.Task {
	out := make([]task.Task, 0, len(c.overdue))
	for _, id := range c.overdue {
		if t, ok := c.Get(id); ok {
			out = append(out, t)
		}
	}
	return out
}

// MarkOverdueDone resolves the alert by removing every alerted task from
// the store. The tasks are deleted, not completed.
func (c *Controller) MarkOverdueDone() (int, error) {
	ids := slices.Clone(c.overdue)
	if len(ids) == 0 {
		return 0, nil
	}
	for _, id := range ids {
		c.remove(id)
	}
	c.overdue = nil
	c.logger.Info("overdue tasks removed", slog.Int("count", len(ids)))
	return len(ids), c.changed()
}

// MarkOverdueUrgent moves the alerted ids into the urgent set, replacing
// whatever was there, and clears the alert. Tasks are left as they are.
func (c *Controller) MarkOverdueUrgent() int {
	c.urgent = make(map[string]struct{}, len(c.overdue))
	for _, id := range c.overdue {
		c.urgent[id] = struct{}{}
	}
	n := len(c.overdue)
	c.overdue = nil
	return n
}

func (c *Controller) IsUrgent(id string) bool {
	_, ok := c.urgent[id]
	return ok
}
