package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games react to intents rather than raw input, so any frontend can drive them.
type Action int

const (
	ActionNone        Action = iota
	ActionLeft               // Left arrow, A - move one lane left
	ActionRight              // Right arrow, D - move one lane right
	ActionJump               // Space, W, Up - jump
	ActionUp                 // Up, W, K - menu cursor up
	ActionDown               // Down, S, J - menu cursor down
	ActionConfirm            // Enter - confirm menu selection
	ActionPause              // P - pause the run
	ActionResume             // P while paused - resume the run
	ActionSelectLevel        // start the level stored in InputFrame.Level
	ActionRestart            // R - restart the current level
	ActionBack               // B, Escape - return to the level menu
	ActionQuit               // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionResume:
		return "Resume"
	case ActionSelectLevel:
		return "SelectLevel"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the intents collected during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Level is the payload of ActionSelectLevel.
	Level int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SelectLevel queues a level-start intent.
func (f *InputFrame) SelectLevel(level int) {
	f.Set(ActionSelectLevel)
	f.Level = level
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Level = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Level = f.Level
	return clone
}
