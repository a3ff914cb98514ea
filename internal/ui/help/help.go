package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Model struct {
	width  int
	height int
	quit   bool
}

func New() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back):
			return m, tea.Quit
		case key.Matches(msg, keys.Quit):
			m.quit = true
			return m, tea.Quit
		}
	}

	return m, nil
}

type binding struct {
	keys string
	desc string
}

var sections = []struct {
	title    string
	bindings []binding
}{
	{"⏱️  Session", []binding{
		{"space / s", "Start or pause the workout clock"},
		{"enter", "Log a set: reps, then optional weight"},
		{"c", "Complete the current exercise and start its rest"},
		{"x", "Skip the running rest"},
		{"r", "Restart the rest countdown"},
		{"m", "Toggle the rest-finished sound"},
	}},
	{"🧭 Exercises", []binding{
		{"← / p", "Previous exercise"},
		{"→ / n", "Next exercise"},
		{"1-9", "Jump to an exercise"},
		{"e", "Edit notes for the current exercise"},
		{"w", "Edit notes for the whole workout"},
		{"a", "Add an exercise to this workout"},
	}},
	{"💾 Saving", []binding{
		{"S / ctrl+s", "Save progress to your plan"},
		{"F", "Finish the workout and submit the summary"},
		{"tab", "Switch between full and compact view"},
		{"q / esc", "Back to the plan browser"},
	}},
	{"📋 Menus", []binding{
		{"↑ / k", "Move up"},
		{"↓ / j", "Move down"},
		{"enter", "Select"},
		{"b / esc", "Go back"},
		{"ctrl+c", "Quit the application"},
	}},
}

func (m Model) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	containerStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(1)

	sectionTitleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		Bold(true).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	parts := []string{titleStyle.Render("🆘 Coachlix Help")}
	for _, s := range sections {
		lines := make([]string, 0, len(s.bindings))
		for _, b := range s.bindings {
			lines = append(lines, fmt.Sprintf("%s %s", keyStyle.Render(b.keys), descStyle.Render(b.desc)))
		}
		parts = append(parts, sectionTitleStyle.Render(s.title), strings.Join(lines, "\n"))
	}
	parts = append(parts,
		sectionTitleStyle.Render("ℹ️  Data"),
		descStyle.Render("Settings and workout history live in ~/.coachlix/.\n"+
			"Sets are kept in memory until you save or finish the workout."),
		footerStyle.Render("b/esc: back • ctrl+c: quit"),
	)

	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) ShouldQuit() bool {
	return m.quit
}

type keyMap struct {
	Back key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Back: key.NewBinding(
		key.WithKeys("b", "esc", "q"),
		key.WithHelp("b/esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
