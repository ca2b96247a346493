package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/orbdrift/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"space flaps", tea.KeyMsg{Type: tea.KeySpace}, core.ActionFlap},
		{"w flaps", runeKey('w'), core.ActionFlap},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionMoveLeft},
		{"a", runeKey('a'), core.ActionMoveLeft},
		{"d", runeKey('d'), core.ActionMoveRight},
		{"up arrow nudges", tea.KeyMsg{Type: tea.KeyUp}, core.ActionMoveUp},
		{"s nudges down", runeKey('s'), core.ActionMoveDown},
		{"enter starts", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionRequestStart},
		{"r restarts", runeKey('r'), core.ActionRestart},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"f3 debug", tea.KeyMsg{Type: tea.KeyF3}, core.ActionToggleDebug},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"tab is handled by the model", tea.KeyMsg{Type: tea.KeyTab}, core.ActionNone},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.Action(tc.msg); got != tc.expected {
				t.Errorf("Action(%q) = %s, expected %s", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestFrameClock(t *testing.T) {
	c := &frameClock{rate: 50}
	t0 := time.Unix(100, 0)

	if d := c.delta(t0); d != 20 {
		t.Errorf("first delta = %v, expected one nominal frame", d)
	}
	if d := c.delta(t0.Add(35 * time.Millisecond)); d != 35 {
		t.Errorf("delta = %v, expected 35", d)
	}
	if d := c.delta(t0); d != 0 {
		t.Errorf("time going backwards should give 0, got %v", d)
	}

	c.reset()
	if d := c.delta(t0.Add(time.Hour)); d != 20 {
		t.Errorf("after reset delta = %v, expected one nominal frame", d)
	}
}
