package lock

// Action is what the enforcement loop asks the display to do on a step.
type Action int

const (
	ActionNone Action = iota
	ActionAcquire
	ActionRelease
)

func (a Action) String() string {
	switch a {
	case ActionAcquire:
		return "acquire"
	case ActionRelease:
		return "release"
	default:
		return "none"
	}
}

// Enforcer turns the "lock required" condition into display requests.
// While required it asks to acquire on every step, so a display that was
// escaped gets re-captured on the next step. It asks to release once,
// when the requirement clears.
type Enforcer struct {
	held bool
}

func (e *Enforcer) Step(required bool) Action {
	if required {
		e.held = true
		return ActionAcquire
	}
	if e.held {
		e.held = false
		return ActionRelease
	}
	return ActionNone
}

func (e *Enforcer) Held() bool { return e.held }
