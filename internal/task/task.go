package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk and display format for due and reset dates.
const DateLayout = "2006-01-02"

var (
	ErrEmptyText    = errors.New("task text is empty")
	ErrInvalidDate  = errors.New("invalid date, want YYYY-MM-DD")
	ErrUnknownColor = errors.New("unknown color")
	ErrInvalidTimer = errors.New("invalid timer")
)

type Color string

const (
	Red    Color = "red"
	Orange Color = "orange"
	Yellow Color = "yellow"
	Green  Color = "green"
	Blue   Color = "blue"
	Indigo Color = "indigo"
	Purple Color = "purple"
)

// DefaultColor is used when a draft leaves the color empty.
const DefaultColor = Blue

var Colors = []Color{Red, Orange, Yellow, Green, Blue, Indigo, Purple}

func ParseColor(v string) (Color, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return DefaultColor, nil
	}
	for _, c := range Colors {
		if string(c) == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownColor, v)
}

type Kind int

const (
	OneOff Kind = iota
	Recurring
)

func (k Kind) String() string {
	if k == Recurring {
		return "daily"
	}
	return "normal"
}

// Task is the persisted record. JSON names match the stored "todos" list.
// Which of DueDate and LastResetDate may be set follows from IsDaily; use
// New to build one and Normalize to repair loaded records.
type Task struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	Completed      bool      `json:"completed"`
	IsDaily        bool      `json:"isDaily"`
	LastResetDate  string    `json:"lastResetDate,omitempty"`
	DueDate        string    `json:"dueDate,omitempty"`
	TimerMinutes   int       `json:"timerMinutes,omitempty"`
	TimerSeconds   int       `json:"timerSeconds,omitempty"`
	Color          Color     `json:"color,omitempty"`
	CompletedCount int       `json:"completedCount,omitempty"`
	Order          int       `json:"order,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Draft carries the add-form input.
type Draft struct {
	Text      string
	Recurring bool
	DueDate   string
	Timer     time.Duration
	Color     Color
}

// New validates d and builds a task. Recurring tasks start with today as
// their reset date and never carry a due date.
func New(id string, d Draft, now time.Time) (Task, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	color := d.Color
	if color == "" {
		color = DefaultColor
	}
	if _, err := ParseColor(string(color)); err != nil {
		return Task{}, err
	}
	if d.Timer < 0 {
		return Task{}, ErrInvalidTimer
	}

	t := Task{
		ID:        id,
		Text:      text,
		IsDaily:   d.Recurring,
		Color:     color,
		CreatedAt: now,
	}
	t.SetTimer(d.Timer)

	if d.Recurring {
		t.LastResetDate = FormatDate(now)
		return t, nil
	}
	due := strings.TrimSpace(d.DueDate)
	if due != "" {
		if _, err := ParseDate(due); err != nil {
			return Task{}, err
		}
		t.DueDate = due
	}
	return t, nil
}

func (t Task) Kind() Kind {
	if t.IsDaily {
		return Recurring
	}
	return OneOff
}

func (t Task) Timer() time.Duration {
	return time.Duration(t.TimerMinutes)*time.Minute + time.Duration(t.TimerSeconds)*time.Second
}

func (t Task) HasTimer() bool {
	return t.Timer() > 0
}

func (t *Task) SetTimer(d time.Duration) {
	total := int(d / time.Second)
	t.TimerMinutes = total / 60
	t.TimerSeconds = total % 60
}

// Due reports the parsed due date; ok is false for recurring tasks and for
// missing or unparseable dates.
func (t Task) Due() (time.Time, bool) {
	if t.IsDaily || t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := ParseDate(t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Normalize repairs a loaded record so the kind invariants hold.
func Normalize(t Task) Task {
	if t.IsDaily {
		t.DueDate = ""
	} else {
		t.LastResetDate = ""
		t.Order = 0
	}
	if t.TimerMinutes < 0 {
		t.TimerMinutes = 0
	}
	if t.TimerSeconds < 0 {
		t.TimerSeconds = 0
	}
	t.SetTimer(t.Timer())
	if _, err := ParseColor(string(t.Color)); err != nil || t.Color == "" {
		t.Color = DefaultColor
	}
	if t.CompletedCount < 0 {
		t.CompletedCount = 0
	}
	return t
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses YYYY-MM-DD as a local calendar day.
func ParseDate(v string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(v), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, v)
	}
	return d, nil
}
