package lock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFocusLock_FirstEnableStoresPassword(t *testing.T) {
	var f FocusLock
	assert.ErrorIs(t, f.Enable("abc"), ErrPasswordTooShort)
	assert.False(t, f.Enabled())

	require.NoError(t, f.Enable("abcd"))
	assert.True(t, f.Enabled())
	assert.True(t, f.HasPassword())
	assert.NoError(t, f.Verify("abcd"))
}

func TestFocusLock_LaterEnableReusesPassword(t *testing.T) {
	var f FocusLock
	require.NoError(t, f.Enable("first"))
	require.NoError(t, f.Disable("first"))

	require.NoError(t, f.Enable(""))
	assert.True(t, f.Enabled())
	assert.ErrorIs(t, f.Disable("other"), ErrWrongPassword)
	assert.True(t, f.Enabled())
	assert.NoError(t, f.Disable("first"))
}

func TestFocusLock_ChangePassword(t *testing.T) {
	var f FocusLock
	require.NoError(t, f.Enable("old-pw"))

	assert.ErrorIs(t, f.ChangePassword("nope", "new-pw"), ErrWrongPassword)
	assert.ErrorIs(t, f.ChangePassword("old-pw", "123"), ErrPasswordTooShort)
	require.NoError(t, f.ChangePassword("old-pw", "new-pw"))

	assert.ErrorIs(t, f.Verify("old-pw"), ErrWrongPassword)
	assert.NoError(t, f.Verify("new-pw"))
}

func TestFocusLock_VerifyWithoutPassword(t *testing.T) {
	var f FocusLock
	assert.ErrorIs(t, f.Verify("anything"), ErrNoPassword)
	assert.ErrorIs(t, f.ChangePassword("", "abcd"), ErrNoPassword)
}

func TestRestore_WithoutHashIsDisabled(t *testing.T) {
	f := Restore(true, "")
	assert.False(t, f.Enabled())
}

func TestEnforcer_ReacquiresUntilReleased(t *testing.T) {
	var e Enforcer
	assert.Equal(t, ActionNone, e.Step(false))
	assert.Equal(t, ActionAcquire, e.Step(true))
	assert.Equal(t, ActionAcquire, e.Step(true))
	assert.True(t, e.Held())
	assert.Equal(t, ActionRelease, e.Step(false))
	assert.False(t, e.Held())
	assert.Equal(t, ActionNone, e.Step(false))
}
