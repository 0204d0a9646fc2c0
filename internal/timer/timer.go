// Package timer implements the one-second countdowns behind per-task
// timers and the free-standing pomodoro timer.
package timer

import (
	"fmt"
	"time"
)

const (
	PomodoroWork  = 25 * time.Minute
	PomodoroBreak = 5 * time.Minute
)

type State int

const (
	Idle State = iota
	Running
	Expired
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Expired:
		return "expired"
	default:
		return "idle"
	}
}

// Countdown counts whole seconds down to zero. Tick only has an effect
// while Running, so a paused countdown keeps its remaining value.
type Countdown struct {
	remaining int
	state     State
}

// Load sets the remaining time and leaves the countdown Idle.
func (c *Countdown) Load(d time.Duration) {
	c.remaining = seconds(d)
	c.state = Idle
}

// Start runs the countdown if there is time left on it.
func (c *Countdown) Start() bool {
	if c.remaining <= 0 {
		return false
	}
	c.state = Running
	return true
}

func (c *Countdown) Pause() {
	if c.state == Running {
		c.state = Idle
	}
}

func (c *Countdown) Stop() {
	c.remaining = 0
	c.state = Idle
}

// Tick advances one second and reports whether this tick hit zero.
func (c *Countdown) Tick() bool {
	if c.state != Running {
		return false
	}
	c.remaining--
	if c.remaining > 0 {
		return false
	}
	c.remaining = 0
	c.state = Expired
	return true
}

func (c *Countdown) Remaining() int { return c.remaining }
func (c *Countdown) State() State   { return c.state }
func (c *Countdown) Running() bool  { return c.state == Running }

func seconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// FormatClock renders seconds as MM:SS; minutes are not wrapped at 60.
func FormatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
