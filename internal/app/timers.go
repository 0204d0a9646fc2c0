package app

import (
	"log/slog"
	"time"

	"daybook/internal/alert"
	"daybook/internal/timer"
)

// StartTaskTimer runs the task's countdown, abandoning any other task's
// timer. Tasks without a timer are ignored silently (ErrNoTimer is
// returned for callers that want to say so).
func (c *Controller) StartTaskTimer(id string) error {
	t, ok := c.Get(id)
	if !ok {
		return ErrNotFound
	}
	if t.Completed {
		return ErrCompleted
	}
	if !c.taskTimer.Start(id, t.Timer()) {
		return ErrNoTimer
	}
	c.logger.Debug("task timer started", slog.String("id", id), slog.Duration("duration", t.Timer()))
	return nil
}

// ResetTaskTimer cancels the task countdown without completing the task.
func (c *Controller) ResetTaskTimer() {
	c.taskTimer.Reset()
}

func (c *Controller) TaskTimer() *timer.TaskTimer {
	return &c.taskTimer
}

func (c *Controller) FreeTimer() *timer.FreeTimer {
	return c.free
}

// ConfigureFreeTimer sets the free timer's non-pomodoro duration.
func (c *Controller) ConfigureFreeTimer(d time.Duration) {
	c.free.Configure(d)
}

// Tick advances both countdowns by one second. An expiring task timer
// beeps, completes its task and bumps its completion count; an expiring
// free timer beeps. It reports the id of a task completed on this tick.
func (c *Controller) Tick() (string, error) {
	if c.free.Tick() {
		c.beeper.Beep(alert.Expiry)
		c.logger.Info("free timer expired", slog.Bool("pomodoro", c.free.Pomodoro()))
	}

	id, expired := c.taskTimer.Tick()
	if !expired {
		return "", nil
	}
	c.beeper.Beep(alert.Expiry)
	i := c.index(id)
	if i < 0 {
		return "", nil
	}
	c.tasks[i].Completed = true
	c.tasks[i].CompletedCount++
	c.logger.Info("task timer finished", slog.String("id", id), slog.Int("completed_count", c.tasks[i].CompletedCount))
	return id, c.changed()
}
