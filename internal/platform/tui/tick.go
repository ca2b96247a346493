// Package tui provides the Bubble Tea integration for Orb Drift.
// It handles the terminal UI loop, input mapping and the session history view.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation frame. It carries the frame time.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock turns tick timestamps into frame deltas in milliseconds.
type frameClock struct {
	rate int
	last time.Time
}

// delta returns the time since the previous tick. The first tick after a
// reset reports one nominal frame.
func (c *frameClock) delta(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		rate := c.rate
		if rate <= 0 {
			rate = 60
		}
		return 1000 / float64(rate)
	}
	d := now.Sub(c.last)
	c.last = now
	if d < 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}

// reset forgets the previous tick so a long gap is not replayed.
func (c *frameClock) reset() {
	c.last = time.Time{}
}
