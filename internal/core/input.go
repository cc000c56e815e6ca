package core

// Action represents a semantic session action, abstracted from physical
// key presses. Level input that carries coordinates (pointer presses,
// typed text) is delivered to the levels directly instead.
type Action int

const (
	ActionNone       Action = iota
	ActionStart             // Enter, Space - leave the start screen
	ActionRestart           // Ctrl+R anywhere, R on start/victory - reload the session
	ActionQuit              // Q, Ctrl+C - exit
	ActionKiss              // Space - Level 4 action at the button center
	ActionScreenshot        // Ctrl+S - dump the screen to a file
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionKiss:
		return "Kiss"
	case ActionScreenshot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}
