// Package calendar lays out a month grid and tints each day with the color
// of the first normal task due on it.
package calendar

import (
	"strconv"
	"time"

	"daybook/internal/task"
)

type Cell struct {
	Day      int
	Date     string
	Color    task.Color
	HasColor bool
	Today    bool
}

// Month is one page of the calendar. Leading is the number of blank cells
// before day 1 in a Sunday-first week.
type Month struct {
	Year    int
	Month   time.Month
	Leading int
	Cells   []Cell
}

// Build lays out year/month. Only one-off tasks with a due date tint a day;
// the first such task in list order wins.
func Build(year int, month time.Month, tasks []task.Task, today time.Time) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	days := first.AddDate(0, 1, -1).Day()

	tint := make(map[string]task.Color)
	for _, t := range tasks {
		if t.IsDaily || t.DueDate == "" {
			continue
		}
		if _, seen := tint[t.DueDate]; !seen {
			tint[t.DueDate] = t.Color
		}
	}

	todayKey := task.FormatDate(today)
	m := Month{
		Year:    first.Year(),
		Month:   first.Month(),
		Leading: int(first.Weekday()),
		Cells:   make([]Cell, 0, days),
	}
	for d := 1; d <= days; d++ {
		date := task.FormatDate(time.Date(year, month, d, 0, 0, 0, 0, time.Local))
		color, ok := tint[date]
		m.Cells = append(m.Cells, Cell{
			Day:      d,
			Date:     date,
			Color:    color,
			HasColor: ok,
			Today:    date == todayKey,
		})
	}
	return m
}

// Weeks splits the grid into rows of seven; nil marks a blank cell.
func (m Month) Weeks() [][]*Cell {
	var (
		weeks [][]*Cell
		row   []*Cell
	)
	for i := 0; i < m.Leading; i++ {
		row = append(row, nil)
	}
	for i := range m.Cells {
		row = append(row, &m.Cells[i])
		if len(row) == 7 {
			weeks = append(weeks, row)
			row = nil
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, nil)
		}
		weeks = append(weeks, row)
	}
	return weeks
}

// Title renders e.g. "March 2025".
func (m Month) Title() string {
	return m.Month.String() + " " + strconv.Itoa(m.Year)
}

func (m Month) Prev() (int, time.Month) {
	return Shift(m.Year, m.Month, -1)
}

func (m Month) Next() (int, time.Month) {
	return Shift(m.Year, m.Month, 1)
}

// Shift moves year/month by n months.
func Shift(year int, month time.Month, n int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return t.Year(), t.Month()
}
