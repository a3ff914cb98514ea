package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/storage"
)

const recentLimit = 10

type Model struct {
	storage       *storage.Storage
	exportDir     string
	weekStats     models.WeekStats
	recent        []models.HistoryEntry
	cursor        int
	width         int
	height        int
	exportMessage string
	quit          bool
}

type exportResultMsg struct {
	message string
}

type clearMessageMsg struct{}

// New loads the current week and the latest workouts. Reports are exported
// into exportDir.
func New(storage *storage.Storage, exportDir string) (Model, error) {
	m := Model{storage: storage, exportDir: exportDir}

	var err error
	m.weekStats, err = storage.CurrentWeekStats()
	if err != nil {
		return m, err
	}
	m.recent, err = storage.RecentHistory(recentLimit)
	if err != nil {
		return m, err
	}
	return m, nil
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
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.recent)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Export):
			return m, m.exportReport()
		case key.Matches(msg, keys.Back):
			return m, tea.Quit
		case key.Matches(msg, keys.Quit):
			m.quit = true
			return m, tea.Quit
		}

	case exportResultMsg:
		m.exportMessage = msg.message
		return m, tea.Tick(time.Second*3, func(t time.Time) tea.Msg {
			return clearMessageMsg{}
		})

	case clearMessageMsg:
		m.exportMessage = ""
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginTop(1)

	subtleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF7CCB")).
		Bold(true)

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		MarginTop(1)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	parts := []string{
		titleStyle.Render("📈 Training History"),
		sectionStyle.Render(fmt.Sprintf("This week (week %d, %d)", m.weekStats.Week, m.weekStats.Year)),
		fmt.Sprintf("%d workouts • %s • %d sets",
			m.weekStats.Workouts, formatMinutes(m.weekStats.TotalMinutes), m.weekStats.TotalSets),
		m.renderWeekChart(),
		sectionStyle.Render("Recent workouts"),
	}

	if len(m.recent) == 0 {
		parts = append(parts, subtleStyle.Render("No finished workouts yet."))
	}
	for i, e := range m.recent {
		line := fmt.Sprintf("%s  %-22s W%d D%d  %d/%d ex  %d sets  %s",
			e.Date, truncate(e.WorkoutName, 22), e.WeekNumber, e.DayNumber,
			e.Summary.CompletedExercises, e.Summary.TotalExercises,
			e.Summary.TotalSets, formatMinutes(e.Summary.DurationMinutes))
		if i == m.cursor {
			parts = append(parts, selectedStyle.Render("▶ "+line))
		} else {
			parts = append(parts, subtleStyle.Render("  "+line))
		}
	}

	if len(m.recent) > 0 {
		if notes := m.recent[m.cursor].Summary.Notes; notes != "" {
			parts = append(parts, subtleStyle.Render("Notes: "+notes))
		}
	}

	if m.exportMessage != "" {
		parts = append(parts, messageStyle.Render(m.exportMessage))
	}
	parts = append(parts, helpStyle.Render("↑/↓: browse • e: export report • b/esc: back • ctrl+c: quit"))

	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderWeekChart draws one bar per training day of the week.
func (m Model) renderWeekChart() string {
	if len(m.weekStats.DailyStats) == 0 {
		return ""
	}
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	maxMinutes := 1
	for _, d := range m.weekStats.DailyStats {
		maxMinutes = max(maxMinutes, d.TotalMinutes)
	}

	var b strings.Builder
	for _, d := range m.weekStats.DailyStats {
		date, _ := time.Parse("2006-01-02", d.Date)
		width := d.TotalMinutes * 30 / maxMinutes
		fmt.Fprintf(&b, "%-4s %s %s\n", date.Format("Mon"), barStyle.Render(strings.Repeat("█", width)), formatMinutes(d.TotalMinutes))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) exportReport() tea.Cmd {
	store, dir := m.storage, m.exportDir
	return func() tea.Msg {
		report, err := store.ExportReport()
		if err != nil {
			return exportResultMsg{message: fmt.Sprintf("Export failed: %v", err)}
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return exportResultMsg{message: fmt.Sprintf("Export failed: %v", err)}
		}

		filename := fmt.Sprintf("coachlix-report-%s.txt", time.Now().Format("2006-01-02-150405"))
		path := filepath.Join(dir, filename)
		if err := os.WriteFile(path, []byte(report), 0644); err != nil {
			return exportResultMsg{message: fmt.Sprintf("Export failed: %v", err)}
		}
		return exportResultMsg{message: "Report exported to " + path}
	}
}

func formatMinutes(total int) string {
	if h := total / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, total%60)
	}
	return fmt.Sprintf("%dm", total)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m Model) ShouldQuit() bool {
	return m.quit
}

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Export key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "esc", "q"),
		key.WithHelp("b/esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
