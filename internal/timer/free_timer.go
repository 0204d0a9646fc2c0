package timer

import "time"

// FreeTimer is a countdown not tied to any task. In pomodoro mode it
// always starts from PomodoroWork and, on expiry, loads PomodoroBreak
// without starting it.
type FreeTimer struct {
	countdown  Countdown
	configured time.Duration
	pomodoro   bool
}

func NewFreeTimer(configured time.Duration, pomodoro bool) *FreeTimer {
	f := &FreeTimer{configured: configured, pomodoro: pomodoro}
	f.Reset()
	return f
}

func (f *FreeTimer) duration() time.Duration {
	if f.pomodoro {
		return PomodoroWork
	}
	return f.configured
}

// Start loads the configured (or pomodoro) duration and runs it.
func (f *FreeTimer) Start() bool {
	f.countdown.Load(f.duration())
	return f.countdown.Start()
}

func (f *FreeTimer) Pause() {
	f.countdown.Pause()
}

// Resume continues from the preserved remaining time.
func (f *FreeTimer) Resume() bool {
	if f.countdown.Running() {
		return true
	}
	return f.countdown.Start()
}

// Reset reloads the duration without starting.
func (f *FreeTimer) Reset() {
	f.countdown.Load(f.duration())
}

// Tick advances one second and reports whether the timer expired on it.
func (f *FreeTimer) Tick() bool {
	if !f.countdown.Tick() {
		return false
	}
	if f.pomodoro {
		f.countdown.Load(PomodoroBreak)
	}
	return true
}

// Configure sets the non-pomodoro duration. A stopped timer shows it
// immediately.
func (f *FreeTimer) Configure(d time.Duration) {
	if d < 0 {
		d = 0
	}
	f.configured = d
	if !f.countdown.Running() {
		f.Reset()
	}
}

func (f *FreeTimer) TogglePomodoro() bool {
	f.SetPomodoro(!f.pomodoro)
	return f.pomodoro
}

func (f *FreeTimer) SetPomodoro(on bool) {
	f.pomodoro = on
	if !f.countdown.Running() {
		f.Reset()
	}
}

func (f *FreeTimer) Pomodoro() bool            { return f.pomodoro }
func (f *FreeTimer) Configured() time.Duration { return f.configured }
func (f *FreeTimer) Remaining() int            { return f.countdown.Remaining() }
func (f *FreeTimer) Running() bool             { return f.countdown.Running() }
func (f *FreeTimer) State() State              { return f.countdown.State() }
