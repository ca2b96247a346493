package core

// Action represents a semantic game action, abstracted from physical key presses.
// Input adapters deliver already-debounced actions; the game never sees raw keys.
type Action int

const (
	ActionNone         Action = iota
	ActionFlap                // Space, W - flap upward
	ActionMoveLeft            // A, Left arrow - drift left
	ActionMoveRight           // D, Right arrow - drift right
	ActionMoveUp              // Up arrow - vertical nudge up
	ActionMoveDown            // S, Down arrow - vertical nudge down
	ActionRequestStart        // Enter - start a round
	ActionRestart             // R - reset and start a fresh round
	ActionPause               // P, Escape - pause/unpause
	ActionToggleDebug         // F3, ` - toggle debug mode
	ActionQuit                // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionMoveUp:
		return "MoveUp"
	case ActionMoveDown:
		return "MoveDown"
	case ActionRequestStart:
		return "RequestStart"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionToggleDebug:
		return "ToggleDebug"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one frame, in arrival order.
// Duplicates are dropped so a held key cannot fire an action twice per frame.
type InputFrame struct {
	order []Action
	seen  map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		seen: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	if f.seen == nil {
		f.seen = make(map[Action]bool)
	}
	if f.seen[a] {
		return
	}
	f.seen[a] = true
	f.order = append(f.order, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.seen[a]
}

// Actions returns the triggered actions in the order they arrived.
func (f InputFrame) Actions() []Action {
	return f.order
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.order) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.seen {
		delete(f.seen, k)
	}
	f.order = f.order[:0]
}
