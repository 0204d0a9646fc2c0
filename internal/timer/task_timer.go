package timer

import "time"

// TaskTimer runs a countdown on behalf of at most one task.
type TaskTimer struct {
	countdown Countdown
	target    string
}

// Start targets id with a countdown of d. Any previous target is dropped
// without being completed. A zero duration is ignored.
func (t *TaskTimer) Start(id string, d time.Duration) bool {
	if id == "" || seconds(d) <= 0 {
		return false
	}
	t.target = id
	t.countdown.Load(d)
	return t.countdown.Start()
}

// Reset cancels the countdown and clears the target.
func (t *TaskTimer) Reset() {
	t.countdown.Stop()
	t.target = ""
}

// Tick advances one second. On expiry it returns the finished target and
// goes back to Idle with no target.
func (t *TaskTimer) Tick() (string, bool) {
	if !t.countdown.Tick() {
		return "", false
	}
	done := t.target
	t.target = ""
	t.countdown.Stop()
	return done, true
}

func (t *TaskTimer) Target() string { return t.target }
func (t *TaskTimer) Remaining() int { return t.countdown.Remaining() }
func (t *TaskTimer) Running() bool  { return t.countdown.Running() }
func (t *TaskTimer) State() State   { return t.countdown.State() }

func (t *TaskTimer) Active(id string) bool {
	return id != "" && t.target == id
}
