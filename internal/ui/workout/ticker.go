package workout

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg struct {
	gen int
	at  time.Time
}

// ticker owns the one-second tick chain of a session. Every arm or release
// bumps the generation, so ticks from an earlier chain are recognised and
// dropped instead of running alongside the current one.
type ticker struct {
	gen   int
	armed bool
}

func (t *ticker) schedule() tea.Cmd {
	gen := t.gen
	return tea.Tick(time.Second, func(at time.Time) tea.Msg {
		return tickMsg{gen: gen, at: at}
	})
}

// ensure starts a chain unless one is already running.
func (t *ticker) ensure() tea.Cmd {
	if t.armed {
		return nil
	}
	t.gen++
	t.armed = true
	return t.schedule()
}

// accept reports whether msg belongs to the live chain.
func (t *ticker) accept(msg tickMsg) bool {
	return t.armed && msg.gen == t.gen
}

// next continues the live chain after an accepted tick.
func (t *ticker) next() tea.Cmd {
	if !t.armed {
		return nil
	}
	return t.schedule()
}

func (t *ticker) release() {
	if t.armed {
		t.gen++
		t.armed = false
	}
}

func (t *ticker) running() bool { return t.armed }
