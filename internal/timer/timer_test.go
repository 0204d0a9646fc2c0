package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdown_TicksOnlyWhileRunning(t *testing.T) {
	var c Countdown
	c.Load(3 * time.Second)
	assert.Equal(t, Idle, c.State())

	assert.False(t, c.Tick())
	assert.Equal(t, 3, c.Remaining())

	require.True(t, c.Start())
	assert.False(t, c.Tick())
	c.Pause()
	assert.False(t, c.Tick())
	assert.Equal(t, 2, c.Remaining())

	require.True(t, c.Start())
	assert.False(t, c.Tick())
	assert.True(t, c.Tick())
	assert.Equal(t, Expired, c.State())
	assert.Zero(t, c.Remaining())
	assert.False(t, c.Tick())
}

func TestCountdown_StartWithoutTime(t *testing.T) {
	var c Countdown
	assert.False(t, c.Start())
	c.Load(500 * time.Millisecond)
	assert.False(t, c.Start())
	assert.Equal(t, Idle, c.State())
}

func TestTaskTimer_ExpiresAfterDuration(t *testing.T) {
	var tt TaskTimer
	require.True(t, tt.Start("t1", 5*time.Second))

	for i := 0; i < 4; i++ {
		_, done := tt.Tick()
		require.False(t, done, "tick %d", i+1)
	}
	assert.Equal(t, "t1", tt.Target())
	assert.Equal(t, 1, tt.Remaining())

	id, done := tt.Tick()
	require.True(t, done)
	assert.Equal(t, "t1", id)
	assert.Empty(t, tt.Target())
	assert.Equal(t, Idle, tt.State())
	assert.False(t, tt.Running())
}

func TestTaskTimer_StartReplacesTarget(t *testing.T) {
	var tt TaskTimer
	require.True(t, tt.Start("a", time.Minute))
	tt.Tick()
	require.True(t, tt.Start("b", 10*time.Second))

	assert.True(t, tt.Active("b"))
	assert.False(t, tt.Active("a"))
	assert.Equal(t, 10, tt.Remaining())
}

func TestTaskTimer_ZeroDurationIgnored(t *testing.T) {
	var tt TaskTimer
	assert.False(t, tt.Start("a", 0))
	assert.Empty(t, tt.Target())
	assert.Equal(t, Idle, tt.State())
}

func TestTaskTimer_Reset(t *testing.T) {
	var tt TaskTimer
	tt.Start("a", time.Minute)
	tt.Reset()

	assert.Empty(t, tt.Target())
	assert.Zero(t, tt.Remaining())
	_, done := tt.Tick()
	assert.False(t, done)
}

func TestFreeTimer_PomodoroExpiryLoadsBreak(t *testing.T) {
	f := NewFreeTimer(time.Minute, true)
	assert.Equal(t, 25*60, f.Remaining())
	require.True(t, f.Start())

	expired := 0
	for i := 0; i < 25*60; i++ {
		if f.Tick() {
			expired++
		}
	}
	assert.Equal(t, 1, expired)
	assert.Equal(t, 300, f.Remaining())
	assert.False(t, f.Running())

	// The break is loaded but has to be resumed by hand.
	assert.False(t, f.Tick())
	require.True(t, f.Resume())
	f.Tick()
	assert.Equal(t, 299, f.Remaining())
}

func TestFreeTimer_PlainExpiryStopsAtZero(t *testing.T) {
	f := NewFreeTimer(2*time.Second, false)
	require.True(t, f.Start())
	assert.False(t, f.Tick())
	assert.True(t, f.Tick())

	assert.Zero(t, f.Remaining())
	assert.False(t, f.Running())
	assert.Equal(t, Expired, f.State())
	assert.False(t, f.Resume())
}

func TestFreeTimer_PauseResumeKeepsRemaining(t *testing.T) {
	f := NewFreeTimer(10*time.Second, false)
	f.Start()
	f.Tick()
	f.Tick()
	f.Pause()
	f.Tick()
	assert.Equal(t, 8, f.Remaining())

	f.Resume()
	f.Tick()
	assert.Equal(t, 7, f.Remaining())
}

func TestFreeTimer_ResetReloadsWithoutStarting(t *testing.T) {
	f := NewFreeTimer(90*time.Second, false)
	f.Start()
	f.Tick()
	f.Reset()
	assert.Equal(t, 90, f.Remaining())
	assert.False(t, f.Running())

	f.SetPomodoro(true)
	f.Reset()
	assert.Equal(t, 1500, f.Remaining())
}

func TestFreeTimer_ZeroConfiguredDoesNotStart(t *testing.T) {
	f := NewFreeTimer(0, false)
	assert.False(t, f.Start())
	assert.Equal(t, Idle, f.State())
}

func TestFreeTimer_ConfigureWhileRunningKeepsCountdown(t *testing.T) {
	f := NewFreeTimer(10*time.Second, false)
	f.Start()
	f.Configure(time.Minute)
	assert.Equal(t, 10, f.Remaining())
	f.Pause()
	f.Configure(2 * time.Minute)
	assert.Equal(t, 120, f.Remaining())
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "00:05", FormatClock(5))
	assert.Equal(t, "25:00", FormatClock(1500))
	assert.Equal(t, "90:01", FormatClock(5401))
	assert.Equal(t, "00:00", FormatClock(-4))
}
