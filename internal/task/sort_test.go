package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestSortOneOff_Due(t *testing.T) {
	in := []Task{
		{ID: "none"},
		{ID: "late", DueDate: "2026-05-01"},
		{ID: "bad", DueDate: "soon"},
		{ID: "early", DueDate: "2026-04-01"},
	}
	got := SortOneOff(in, SortDue)
	assert.Equal(t, []string{"early", "late", "none", "bad"}, ids(got))
	assert.Equal(t, "none", in[0].ID, "input must not be reordered")
}

func TestSortOneOff_CreatedKeepsOrder(t *testing.T) {
	in := []Task{{ID: "b", DueDate: "2026-05-01"}, {ID: "a", DueDate: "2026-01-01"}}
	assert.Equal(t, []string{"b", "a"}, ids(SortOneOff(in, SortCreated)))
}

func TestSortRecurring(t *testing.T) {
	in := []Task{{ID: "c", Order: 3}, {ID: "a", Order: 1}, {ID: "b", Order: 2}}
	assert.Equal(t, []string{"a", "b", "c"}, ids(SortRecurring(in)))
}

func TestParseSortMode(t *testing.T) {
	m, ok := ParseSortMode("DUE")
	assert.True(t, ok)
	assert.Equal(t, SortDue, m)

	m, ok = ParseSortMode("priority")
	assert.False(t, ok)
	assert.Equal(t, SortCreated, m)
}
