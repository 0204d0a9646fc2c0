package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimerPresets are the choices offered by the add form, in display order.
var TimerPresets = []string{"none", "10", "25", "30", "custom"}

// ParseTimer turns an add-form timer choice into a duration. Accepted
// values are "", "none", a whole number of minutes, or "MM:SS".
func ParseTimer(v string) (time.Duration, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" || v == "none" {
		return 0, nil
	}
	if mins, secs, ok := strings.Cut(v, ":"); ok {
		return CustomTimer(mins, secs)
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimer, v)
	}
	return time.Duration(n) * time.Minute, nil
}

// CustomTimer reads the custom minutes and seconds fields. Blank fields
// count as zero.
func CustomTimer(minutes, seconds string) (time.Duration, error) {
	m, err := atoiBlank(minutes)
	if err != nil {
		return 0, err
	}
	s, err := atoiBlank(seconds)
	if err != nil {
		return 0, err
	}
	return time.Duration(m)*time.Minute + time.Duration(s)*time.Second, nil
}

func atoiBlank(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimer, v)
	}
	return n, nil
}
