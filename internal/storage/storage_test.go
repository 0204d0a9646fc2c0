package storage

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daybook/internal/task"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "daybook.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("", nil)
	assert.Error(t, err)
}

func TestKV_SetGetOverwrite(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("k", "one"))
	require.NoError(t, s.Set("k", "two"))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)

	require.NoError(t, s.Delete("k"))
	_, ok, err = s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTasks_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	tasks, err := s.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	in := []task.Task{
		{ID: "a", Text: "stretch", IsDaily: true, LastResetDate: "2026-03-01", Color: task.Green, Order: 1, CompletedCount: 2},
		{ID: "b", Text: "taxes", DueDate: "2026-04-15", TimerMinutes: 25, Color: task.Red},
	}
	require.NoError(t, s.SaveTasks(in))

	out, err := s.LoadTasks()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].Text, out[0].Text)
	assert.Equal(t, 2, out[0].CompletedCount)
	assert.Equal(t, "2026-04-15", out[1].DueDate)
	assert.Equal(t, 25, out[1].TimerMinutes)
}

func TestTasks_PersistedFieldNames(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveTasks([]task.Task{{ID: "a", Text: "x", IsDaily: true, LastResetDate: "2026-03-01"}}))

	raw, ok, err := s.Get(KeyTodos)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"isDaily":true`)
	assert.Contains(t, raw, `"lastResetDate":"2026-03-01"`)
	assert.NotContains(t, raw, `"dueDate"`)
}

func TestTasks_MalformedFallsBackToEmpty(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Set(KeyTodos, "{not json"))

	tasks, err := s.LoadTasks()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTasks_DropsDuplicateIDsAndNormalizes(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Set(KeyTodos, `[
		{"id":"a","text":"one","isDaily":true,"dueDate":"2026-01-01"},
		{"id":"a","text":"dup"},
		{"id":"","text":"anonymous"}
	]`))

	tasks, err := s.LoadTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "one", tasks[0].Text)
	assert.Empty(t, tasks[0].DueDate)
	assert.Equal(t, task.DefaultColor, tasks[0].Color)
}

func TestSettings_DefaultsAndRoundTrip(t *testing.T) {
	s := openTestStore(t)

	cfg, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), cfg)

	want := Settings{ClockSize: ClockLarge, ClockOpacity: 40, NormalSort: task.SortDue}
	require.NoError(t, s.SaveSettings(want))
	got, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettings_MalformedValuesUseDefaults(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Set(KeyClockSize, "gigantic"))
	require.NoError(t, s.Set(KeyClockOpacity, "5"))
	require.NoError(t, s.Set(KeyNormalSort, "vibes"))

	cfg, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), cfg)
}

func TestFocusLock_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	enabled, hash, err := s.LoadFocusLock()
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.Empty(t, hash)

	require.NoError(t, s.SaveFocusLock(true, "$2a$hash"))
	enabled, hash, err = s.LoadFocusLock()
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Equal(t, "$2a$hash", hash)

	require.NoError(t, s.Set(KeySabotageMode, "maybe"))
	enabled, _, err = s.LoadFocusLock()
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestUsers_CreateAndFind(t *testing.T) {
	s := openTestStore(t)
	created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateUser(User{ID: "u1", Email: " Me@Example.com ", PasswordHash: "h", CreatedAt: created}))
	assert.ErrorIs(t, s.CreateUser(User{ID: "u2", Email: "me@example.com", PasswordHash: "h", CreatedAt: created}), ErrUserExists)

	u, err := s.UserByEmail("ME@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "me@example.com", u.Email)
	assert.True(t, created.Equal(u.CreatedAt))
	assert.False(t, u.LastSignIn.Valid)

	require.NoError(t, s.TouchSignIn("u1", created.Add(time.Hour)))
	u, err = s.UserByEmail("me@example.com")
	require.NoError(t, err)
	assert.True(t, u.LastSignIn.Valid)

	_, err = s.UserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSession_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.LoadSession()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveSession(Session{UserID: "u1", Email: "me@example.com"}))
	sess, ok, err := s.LoadSession()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "u1", sess.UserID)

	require.NoError(t, s.ClearSession())
	_, ok, err = s.LoadSession()
	require.NoError(t, err)
	assert.False(t, ok)
}
