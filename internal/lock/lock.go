// Package lock holds the focus-lock mode: a password-protected switch that,
// while some daily task is unfinished, keeps the screen captured.
package lock

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to the lock password when it is first set and
// when it is changed.
const MinPasswordLength = 4

var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrWrongPassword    = errors.New("wrong password")
	ErrNoPassword       = errors.New("no password set")
)

// HashPassword returns a bcrypt hash of pw.
func HashPassword(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// CheckPassword compares pw against a stored hash.
func CheckPassword(hash, pw string) error {
	if hash == "" {
		return ErrNoPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

func validNew(pw string) error {
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// FocusLock is the persisted mode flag plus its password hash.
type FocusLock struct {
	enabled bool
	hash    string
}

// Restore rebuilds the lock from durable state.
func Restore(enabled bool, hash string) FocusLock {
	if hash == "" {
		enabled = false
	}
	return FocusLock{enabled: enabled, hash: hash}
}

func (f FocusLock) Enabled() bool     { return f.enabled }
func (f FocusLock) HasPassword() bool { return f.hash != "" }
func (f FocusLock) Hash() string      { return f.hash }

// Enable turns the mode on. The first activation stores pw; later ones
// reuse the stored password and ignore pw.
func (f *FocusLock) Enable(pw string) error {
	if f.hash == "" {
		if err := validNew(pw); err != nil {
			return err
		}
		h, err := HashPassword(pw)
		if err != nil {
			return err
		}
		f.hash = h
	}
	f.enabled = true
	return nil
}

// Disable turns the mode off when pw matches.
func (f *FocusLock) Disable(pw string) error {
	if err := f.Verify(pw); err != nil {
		return err
	}
	f.enabled = false
	return nil
}

func (f *FocusLock) ChangePassword(old, next string) error {
	if err := f.Verify(old); err != nil {
		return err
	}
	if err := validNew(next); err != nil {
		return err
	}
	h, err := HashPassword(next)
	if err != nil {
		return err
	}
	f.hash = h
	return nil
}

func (f FocusLock) Verify(pw string) error {
	return CheckPassword(f.hash, pw)
}
