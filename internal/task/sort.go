package task

import (
	"slices"
	"strings"
)

// SortMode orders the one-off task list.
type SortMode string

const (
	SortCreated SortMode = "created"
	SortDue     SortMode = "due"
)

func ParseSortMode(v string) (SortMode, bool) {
	switch SortMode(strings.ToLower(strings.TrimSpace(v))) {
	case SortCreated:
		return SortCreated, true
	case SortDue:
		return SortDue, true
	}
	return SortCreated, false
}

// SortOneOff returns a sorted copy. SortDue puts the earliest due date
// first and undated or unparseable tasks last, keeping insertion order
// among equals.
func SortOneOff(tasks []Task, mode SortMode) []Task {
	out := slices.Clone(tasks)
	if mode != SortDue {
		return out
	}
	slices.SortStableFunc(out, func(a, b Task) int {
		da, okA := a.Due()
		db, okB := b.Due()
		switch {
		case okA && okB:
			return da.Compare(db)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	return out
}

// SortRecurring returns a copy ordered by rank.
func SortRecurring(tasks []Task) []Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b Task) int {
		return a.Order - b.Order
	})
	return out
}
