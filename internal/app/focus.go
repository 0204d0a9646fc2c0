package app

import (
	"fmt"
	"log/slog"

	"daybook/internal/lock"
)

func (c *Controller) FocusLock() lock.FocusLock {
	return c.focus
}

// EnableFocusLock turns focus lock on. pw is only used the first time,
// when no password has been stored yet.
func (c *Controller) EnableFocusLock(pw string) error {
	next := c.focus
	if err := next.Enable(pw); err != nil {
		return err
	}
	if err := c.saveFocus(next); err != nil {
		return err
	}
	c.logger.Info("focus lock enabled")
	return nil
}

func (c *Controller) DisableFocusLock(pw string) error {
	next := c.focus
	if err := next.Disable(pw); err != nil {
		return err
	}
	if err := c.saveFocus(next); err != nil {
		return err
	}
	c.logger.Info("focus lock disabled")
	return nil
}

func (c *Controller) ChangeFocusPassword(old, pw string) error {
	next := c.focus
	if err := next.ChangePassword(old, pw); err != nil {
		return err
	}
	return c.saveFocus(next)
}

// saveFocus persists next and only then adopts it, so a failed write
// leaves the in-memory lock unchanged.
func (c *Controller) saveFocus(next lock.FocusLock) error {
	if err := c.store.SaveFocusLock(next.Enabled(), next.Hash()); err != nil {
		c.logger.Error("save focus lock", slog.String("error", err.Error()))
		return fmt.Errorf("save focus lock: %w", err)
	}
	c.focus = next
	return nil
}

// FocusRequired reports whether the lock should hold the screen: the mode
// is on and some daily task is unfinished.
func (c *Controller) FocusRequired() bool {
	if !c.focus.Enabled() {
		return false
	}
	for _, t := range c.tasks {
		if t.IsDaily && !t.Completed {
			return true
		}
	}
	return false
}

// EnforceFocus is the 500ms focus check. It asks for the screen on every
// step while required and releases it once everything daily is done; the
// mode itself stays on until disabled with the password.
func (c *Controller) EnforceFocus() lock.Action {
	held := c.enforcer.Held()
	action := c.enforcer.Step(c.FocusRequired())
	switch {
	case action == lock.ActionAcquire && !held:
		c.logger.Info("focus lock holding screen")
	case action == lock.ActionRelease:
		c.logger.Info("focus lock released screen")
	}
	return action
}

func (c *Controller) FocusHeld() bool {
	return c.enforcer.Held()
}
