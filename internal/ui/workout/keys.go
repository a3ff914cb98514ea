package workout

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle       key.Binding
	Next         key.Binding
	Previous     key.Binding
	Jump         key.Binding
	LogSet       key.Binding
	Complete     key.Binding
	SkipRest     key.Binding
	ResetRest    key.Binding
	Sound        key.Binding
	Notes        key.Binding
	WorkoutNotes key.Binding
	AddExercise  key.Binding
	Save         key.Binding
	Finish       key.Binding
	View         key.Binding
	Back         key.Binding
	Quit         key.Binding
	Submit       key.Binding
	Dismiss      key.Binding
	Yes          key.Binding
	No           key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" ", "s"),
		key.WithHelp("space", "start/pause"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l", "n"),
		key.WithHelp("→/n", "next"),
	),
	Previous: key.NewBinding(
		key.WithKeys("left", "h", "p"),
		key.WithHelp("←/p", "previous"),
	),
	Jump: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "jump"),
	),
	LogSet: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "log set"),
	),
	Complete: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "complete exercise"),
	),
	SkipRest: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "skip rest"),
	),
	ResetRest: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rest"),
	),
	Sound: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "sound"),
	),
	Notes: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "notes"),
	),
	WorkoutNotes: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "workout notes"),
	),
	AddExercise: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add exercise"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s", "S"),
		key.WithHelp("S", "save"),
	),
	Finish: key.NewBinding(
		key.WithKeys("F"),
		key.WithHelp("F", "finish"),
	),
	View: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "compact"),
	),
	Back: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q", "menu"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "ok"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n", "no"),
	),
}
