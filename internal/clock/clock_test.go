package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake_SetAndAdvance(t *testing.T) {
	start := time.Date(2025, time.March, 10, 4, 59, 0, 0, time.UTC)
	c := NewFake(start)
	assert.Equal(t, start, c.Now())

	c.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), c.Now())

	next := start.AddDate(0, 0, 1)
	c.Set(next)
	assert.Equal(t, next, c.Now())
}

func TestReal_Moves(t *testing.T) {
	before := time.Now()
	assert.False(t, Real().Now().Before(before))
}
