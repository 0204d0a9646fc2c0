package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daybook/internal/config"
)

func testConfig(t *testing.T) string {
	t.Helper()
	t.Setenv(config.EnvDB, "")
	return filepath.Join(t.TempDir(), config.DefaultConfigFileName)
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	e := &env{}
	defer e.close()
	cmd := newRootCmd(e)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func mustRun(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	out, err := run(t, cfgPath, args...)
	require.NoError(t, err, out)
	return out
}

// addedID pulls the short id out of "added <id> <text>".
func addedID(t *testing.T, out string) string {
	t.Helper()
	fields := strings.Fields(out)
	require.GreaterOrEqual(t, len(fields), 2, out)
	require.Equal(t, "added", fields[0])
	return fields[1]
}

func TestTaskCommands_RoundTrip(t *testing.T) {
	cfg := testConfig(t)

	out := mustRun(t, cfg, "add", "buy", "milk", "--due", "2099-01-01", "--color", "red", "--timer", "10")
	id := addedID(t, out)
	assert.Contains(t, out, "buy milk")

	out = mustRun(t, cfg, "list")
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "2099-01-01")
	assert.Contains(t, out, "10:00")

	out = mustRun(t, cfg, "done", id)
	assert.Contains(t, out, "[x]")

	out = mustRun(t, cfg, "list", "--filter", "pending")
	assert.Contains(t, out, "no tasks")

	out = mustRun(t, cfg, "rm", id)
	assert.Contains(t, out, "deleted "+id)
	assert.Contains(t, mustRun(t, cfg, "list"), "no tasks")
}

func TestAdd_Rejects(t *testing.T) {
	cfg := testConfig(t)

	_, err := run(t, cfg, "add", "   ")
	assert.Error(t, err)
	_, err = run(t, cfg, "add", "x", "--due", "soon")
	assert.Error(t, err)
	_, err = run(t, cfg, "add", "x", "--color", "teal")
	assert.Error(t, err)
	_, err = run(t, cfg, "list", "--sort", "alpha")
	assert.Error(t, err)
}

func TestMove_DailyOrder(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "add", "stretch", "--daily")
	second := addedID(t, mustRun(t, cfg, "add", "read", "--daily"))

	out := mustRun(t, cfg, "move", second, "1")
	assert.Contains(t, out, "to #1")

	list := mustRun(t, cfg, "list")
	assert.Less(t, strings.Index(list, "read"), strings.Index(list, "stretch"))
}

func TestLockCommands(t *testing.T) {
	cfg := testConfig(t)
	daily := addedID(t, mustRun(t, cfg, "add", "stretch", "--daily"))
	mustRun(t, cfg, "add", "read", "--daily")

	_, err := run(t, cfg, "lock", "on", "--password", "abc")
	assert.Error(t, err)

	assert.Contains(t, mustRun(t, cfg, "lock", "on", "--password", "abcd"), "focus lock on")
	assert.Contains(t, mustRun(t, cfg, "lock"), "focus lock on")

	_, err = run(t, cfg, "rm", daily)
	assert.ErrorContains(t, err, "focus lock is on")
	_, err = run(t, cfg, "move", daily, "2")
	assert.ErrorContains(t, err, "wrong password")
	mustRun(t, cfg, "move", daily, "2", "--password", "abcd")

	mustRun(t, cfg, "lock", "passwd", "--password", "abcd", "--new-password", "efgh")
	_, err = run(t, cfg, "lock", "off", "--password", "abcd")
	assert.Error(t, err)
	assert.Contains(t, mustRun(t, cfg, "lock", "off", "--password", "efgh"), "focus lock off")

	mustRun(t, cfg, "rm", daily)
}

func TestAuthCommands(t *testing.T) {
	cfg := testConfig(t)

	assert.Contains(t, mustRun(t, cfg, "auth", "whoami"), "signed out")
	_, err := run(t, cfg, "auth", "signup", "me@example.com", "--password", "short")
	assert.Error(t, err)

	assert.Contains(t, mustRun(t, cfg, "auth", "signup", "me@example.com", "--password", "hunter22"), "signed up as me@example.com")
	assert.Contains(t, mustRun(t, cfg, "auth", "whoami"), "me@example.com")

	mustRun(t, cfg, "auth", "signout")
	assert.Contains(t, mustRun(t, cfg, "auth", "whoami"), "signed out")

	_, err = run(t, cfg, "auth", "signin", "me@example.com", "--password", "nope-nope")
	assert.Error(t, err)
	assert.Contains(t, mustRun(t, cfg, "auth", "signin", "me@example.com", "--password", "hunter22"), "signed in as")
}

func TestWatchOnce_ReportsOverdue(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "add", "file taxes", "--due", "2000-01-01")
	mustRun(t, cfg, "add", "later", "--due", "2999-01-01")

	out := mustRun(t, cfg, "watch", "--once")
	assert.Contains(t, out, "overdue:")
	assert.Contains(t, out, "file taxes")
	assert.NotContains(t, out, "later")
}

func TestWatch_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	mustRun(t, cfg, "add", "file taxes", "--due", "2000-01-01")

	e := &env{}
	defer e.close()
	require.NoError(t, e.load(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	var buf bytes.Buffer
	require.NoError(t, watch(ctx, e, 10*time.Millisecond, &buf))

	assert.Equal(t, 1, strings.Count(buf.String(), "overdue:"), "unchanged overdue set is printed once")
}
