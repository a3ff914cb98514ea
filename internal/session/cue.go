package session

import (
	"io"
	"os"
)

// Cue is the audible signal played when a rest period runs out.
type Cue interface {
	Play() error
}

// CueFunc adapts a function to Cue.
type CueFunc func() error

func (f CueFunc) Play() error { return f() }

// Bell rings the terminal bell.
type Bell struct {
	Out io.Writer
}

func (b Bell) Play() error {
	out := b.Out
	if out == nil {
		out = os.Stderr
	}
	_, err := io.WriteString(out, "\a")
	return err
}
