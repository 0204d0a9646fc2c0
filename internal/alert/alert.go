// Package alert plays the timer-expiry tone.
package alert

import (
	"io"
	"sync"
	"time"
)

// Tone describes the expiry signal: a fixed-pitch sine with a short decay.
type Tone struct {
	Frequency float64
	Decay     time.Duration
}

var Expiry = Tone{Frequency: 900, Decay: 500 * time.Millisecond}

type Beeper interface {
	Beep(Tone)
}

// Bell rings the terminal bell. Terminals choose their own pitch, so the
// tone is advisory.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Beep(Tone) {
	if b == nil || b.w == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.w, "\a")
}

// Silent drops every beep.
type Silent struct{}

func (Silent) Beep(Tone) {}
