package workout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF7CCB"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666")).
			MarginTop(1)

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(1, 4)

	restStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#FDFF8C")).
			Padding(0, 2)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF7CCB")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FDFF8C"))

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF5F5F")).
			Foreground(lipgloss.Color("#FAFAFA")).
			Padding(1, 3).
			Width(60)
)

func clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch {
	case m.mode == modeAlert:
		content = m.renderAlert()
	case m.mode == modeFinished:
		content = m.renderCompletionCelebration()
	case m.compact:
		return m.compactView()
	default:
		content = m.fullView()
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(1).
		Render(content)
}

func (m Model) fullView() string {
	st := m.ctrl.State()
	exercises := m.ctrl.Exercises()
	workout := m.ctrl.Workout()

	header := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(workout.Name),
		subtleStyle.Render(fmt.Sprintf("%s · week %d · day %d",
			m.session.PlanName, m.session.Address.Week, m.session.Address.Day)),
	)

	state := "PAUSED"
	if st.IsRunning {
		state = "RUNNING"
	}
	timer := lipgloss.JoinVertical(lipgloss.Center,
		timerStyle.Render(clock(st.TotalElapsedSeconds)),
		subtleStyle.Render(fmt.Sprintf("%s · exercise %s", state, clock(st.CurrentExerciseElapsedSeconds))),
	)

	progressLine := lipgloss.JoinVertical(lipgloss.Center,
		m.progress.ViewAs(float64(st.Progress)/100),
		subtleStyle.Render(fmt.Sprintf("%d/%d exercises · %d%%",
			len(st.CompletedExerciseIndices), st.ExerciseCount, st.Progress)),
	)

	parts := []string{header, "", timer, "", progressLine, ""}

	if st.IsResting {
		parts = append(parts, restStyle.Render("REST "+clock(st.RestRemainingSeconds)), "")
	}

	if len(exercises) == 0 {
		parts = append(parts, subtleStyle.Render("This workout has no exercises."))
	} else {
		parts = append(parts,
			lipgloss.JoinHorizontal(lipgloss.Top,
				renderExerciseList(exercises, st.CurrentExerciseIndex),
				"    ",
				renderExerciseDetail(exercises[st.CurrentExerciseIndex], st.CurrentSetNumber),
			),
		)
	}

	if st.WorkoutNotes != "" {
		parts = append(parts, "", subtleStyle.Render("Workout notes: "+st.WorkoutNotes))
	}

	parts = append(parts, "", m.renderPrompt(), m.renderStatus(st), m.helpView())
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func renderExerciseList(exercises []session.ExerciseState, current int) string {
	var b strings.Builder
	for _, ex := range exercises {
		marker := "  "
		if ex.Index == current {
			marker = "▶ "
		}
		check := "○"
		if ex.Completed {
			check = "✓"
		}

		line := fmt.Sprintf("%s%s %d. %s", marker, check, ex.Index+1, ex.Exercise.Name)
		if target := ex.Exercise.TargetSets; target > 0 {
			line += fmt.Sprintf(" (%d/%d)", len(ex.Sets), target)
		} else if len(ex.Sets) > 0 {
			line += fmt.Sprintf(" (%d)", len(ex.Sets))
		}

		switch {
		case ex.Index == current:
			line = selectedStyle.Render(line)
		case ex.Completed:
			line = doneStyle.Render(line)
		default:
			line = subtleStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderExerciseDetail(ex session.ExerciseState, setNumber int) string {
	e := ex.Exercise
	lines := []string{titleStyle.Render(e.Name)}

	if target := formatTarget(e); target != "" {
		lines = append(lines, "Target: "+target)
	}
	lines = append(lines, fmt.Sprintf("Rest: %ds", session.RestDuration(e)))
	if e.Instructions != "" {
		lines = append(lines, subtleStyle.Width(40).Render(e.Instructions))
	}

	lines = append(lines, "", fmt.Sprintf("Set %d", setNumber))
	for _, s := range ex.Sets {
		lines = append(lines, doneStyle.Render("  "+formatSet(s)))
	}
	if ex.Notes != "" {
		lines = append(lines, "", subtleStyle.Render("Notes: "+ex.Notes))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatTarget(e models.Exercise) string {
	var parts []string
	if e.TargetSets > 0 {
		parts = append(parts, fmt.Sprintf("%d sets", e.TargetSets))
	}
	if e.TargetReps != "" {
		parts = append(parts, fmt.Sprintf("%s reps", e.TargetReps))
	}
	if e.TargetWeight != nil {
		parts = append(parts, fmt.Sprintf("@ %g", *e.TargetWeight))
	}
	return strings.Join(parts, " × ")
}

func formatSet(s models.SetRecord) string {
	if s.Weight == nil {
		return fmt.Sprintf("#%d  %d reps", s.SetNumber, s.Reps)
	}
	return fmt.Sprintf("#%d  %d reps @ %g", s.SetNumber, s.Reps, *s.Weight)
}

func (m Model) renderPrompt() string {
	switch m.mode {
	case modeReps, modeWeight, modeNotes, modeWorkoutNotes, modeAddExercise:
		return m.input.View()
	case modeConfirmLeave:
		return statusStyle.Render("Leave without saving? Unsaved sets will be lost. (y/n)")
	}
	return ""
}

func (m Model) renderStatus(st session.State) string {
	var flags []string
	if !st.SoundEnabled {
		flags = append(flags, "🔇")
	}
	if m.busy {
		flags = append(flags, "⏳")
	}
	if m.dirty {
		flags = append(flags, "unsaved")
	}
	line := m.status
	if len(flags) > 0 {
		line = strings.TrimSpace(line + "  " + strings.Join(flags, " "))
	}
	return statusStyle.Render(line)
}

func (m Model) renderAlert() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		alertStyle.Render(m.alert),
		helpStyle.Render("enter: dismiss"),
	)
}

func (m Model) renderCompletionCelebration() string {
	celebrationStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFD700")).
		Align(lipgloss.Center)

	s := m.summary
	lines := []string{
		"",
		"    ╔═══════════════════╗",
		"    ║ WORKOUT COMPLETE! ║",
		"    ╚═══════════════════╝",
		"",
		"          💪 🎉 💪",
		"",
		fmt.Sprintf("Duration: %d minutes", s.DurationMinutes),
		fmt.Sprintf("Exercises: %d/%d", s.CompletedExercises, s.TotalExercises),
		fmt.Sprintf("Sets: %d", s.TotalSets),
		"",
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		celebrationStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...)),
		statusStyle.Render(m.status),
		helpStyle.Render("enter/q: back to menu"),
	)
}

func (m Model) helpView() string {
	var helpText string
	switch m.mode {
	case modeReps, modeWeight, modeNotes, modeWorkoutNotes, modeAddExercise:
		helpText = "enter: confirm • esc: cancel"
	case modeConfirmLeave:
		helpText = "y: leave • n: stay"
	default:
		helpText = "space: start/pause • ←/→: exercise • enter: log set • c: complete • x: skip rest • r: rest\n" +
			"e: notes • w: workout notes • a: add exercise • m: sound • S: save • F: finish • tab: compact • q: menu"
	}
	return helpStyle.Render(helpText)
}
