package workout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var compactBarStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), false, false, true, false).
	BorderForeground(lipgloss.Color("#7D56F4")).
	Padding(0, 1)

// compactView is the small always-on-top rendition: one status bar plus
// the prompt and status lines.
func (m Model) compactView() string {
	st := m.ctrl.State()

	icon := "⏸"
	if st.IsRunning {
		icon = "▶"
	}
	fields := []string{icon + " " + clock(st.TotalElapsedSeconds)}

	if st.ExerciseCount > 0 {
		ex := m.ctrl.Exercises()[st.CurrentExerciseIndex]
		name := ex.Exercise.Name
		if ex.Completed {
			name = doneStyle.Render("✓ " + name)
		}
		fields = append(fields,
			fmt.Sprintf("%d/%d %s", st.CurrentExerciseIndex+1, st.ExerciseCount, name),
			fmt.Sprintf("set %d", st.CurrentSetNumber),
		)
	}
	if st.IsResting {
		fields = append(fields, restStyle.Render("rest "+clock(st.RestRemainingSeconds)))
	}
	fields = append(fields, fmt.Sprintf("%d%%", st.Progress))

	lines := []string{compactBarStyle.Render(strings.Join(fields, " │ "))}
	if p := m.renderPrompt(); p != "" {
		lines = append(lines, p)
	}
	if s := m.renderStatus(st); strings.TrimSpace(s) != "" {
		lines = append(lines, s)
	}
	lines = append(lines, subtleStyle.Render("space • ←/→ • enter • c • x • S • F • tab"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
