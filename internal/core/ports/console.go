package ports

import "context"

// Prompter is one interactive console session.
type Prompter interface {
	// Ask prints label and reads one line of input without its line
	// terminator. It returns io.EOF once input is exhausted.
	Ask(ctx context.Context, label string) (string, error)

	// Say prints a formatted line.
	Say(format string, args ...any)
}

// MenuHandler defines the "plugin" interface for one menu option.
type MenuHandler interface {
	// Option returns the key the user types (e.g. "3")
	Option() string
	// Title is shown in the menu listing.
	Title() string
	// Handle runs the option to completion.
	Handle(ctx context.Context, p Prompter) error
}
