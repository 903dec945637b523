package core

// Action is a semantic input, decoupled from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionConfirm        // Enter, Space: place mark, reveal cell
	ActionFlag           // F: toggle a minesweeper flag
	ActionPause          // P
	ActionRestart        // R
	ActionBack           // B, Esc
	ActionQuit           // Q, Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionConfirm: "Confirm",
	ActionFlag:    "Flag",
	ActionPause:   "Pause",
	ActionRestart: "Restart",
	ActionBack:    "Back",
	ActionQuit:    "Quit",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "Unknown"
}

// InputFrame holds the actions triggered since the previous step.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Frame builds an input frame with the given actions set.
func Frame(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether an action was triggered.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets the frame for the next step.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
