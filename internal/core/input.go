package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move north
	ActionDown           // S, Down arrow - move south
	ActionLeft           // A, Left arrow - move west
	ActionRight          // D, Right arrow - move east
	ActionSpecial        // Space, E - class ability
	ActionClass1         // 1 - pick first class
	ActionClass2         // 2 - pick second class
	ActionClass3         // 3 - pick third class
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - reset the run
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSpecial:
		return "Special"
	case ActionClass1:
		return "Class1"
	case ActionClass2:
		return "Class2"
	case ActionClass3:
		return "Class3"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// ParseAction is the inverse of Action.String. Unknown names map to ActionNone.
func ParseAction(name string) Action {
	for a := ActionNone; a <= ActionPause; a++ {
		if a.String() == name {
			return a
		}
	}
	return ActionNone
}

// InputFrame holds the actions triggered during one simulation tick,
// in the order they arrived. Grid games care about order: "up, right"
// and "right, up" can end on different cells.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	if len(f.Actions) == 0 {
		return InputFrame{}
	}
	clone := make([]Action, len(f.Actions))
	copy(clone, f.Actions)
	return InputFrame{Actions: clone}
}
