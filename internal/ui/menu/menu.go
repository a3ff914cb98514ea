package menu

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/storage"
)

type Action int

const (
	None Action = iota
	StartWorkout
	ViewHistory
	Settings
	Help
	Reload
	Exit
)

type stage int

const (
	stageWeeks stage = iota
	stageDays
	stageWorkouts
)

// Choice is what the user picked. Week, Day and WorkoutRef are set for
// StartWorkout only.
type Choice struct {
	Action     Action
	Week       int
	Day        int
	WorkoutRef string
}

type item struct {
	label  string
	action Action
	index  int // week/day/workout position for plan items
}

type Model struct {
	plan       *models.Plan
	planErr    error
	notice     string
	todayStats models.DayStats
	weekStats  models.WeekStats

	stage  stage
	week   *models.Week
	day    *models.Day
	items  []item
	cursor int

	choice     Choice
	shouldQuit bool
	width      int
	height     int
}

// New builds the browser over p. A nil plan with planErr shows the load
// failure and leaves only the non-plan entries.
func New(p *models.Plan, planErr error, history *storage.Storage) Model {
	m := Model{plan: p, planErr: planErr}

	today := time.Now().Format("2006-01-02")
	m.todayStats = models.DayStats{Date: today}
	if history != nil {
		if stats, err := history.GetDayStats(today); err == nil {
			m.todayStats = stats
		}
		if stats, err := history.CurrentWeekStats(); err == nil {
			m.weekStats = stats
		}
	}

	m.items = m.weekItems()
	return m
}

func (m Model) weekItems() []item {
	var items []item
	if m.plan != nil {
		for i, w := range m.plan.Weeks {
			label := fmt.Sprintf("🗓️  Week %d (%d days)", w.WeekNumber, len(w.Days))
			items = append(items, item{label: label, index: i})
		}
	}
	return append(items,
		item{label: "📈 History", action: ViewHistory},
		item{label: "⚙️  Settings", action: Settings},
		item{label: "❓ Help", action: Help},
		item{label: "🔄 Reload Plan", action: Reload},
		item{label: "👋 Exit", action: Exit},
	)
}

func (m Model) dayItems() []item {
	var items []item
	for i, d := range m.week.Days {
		label := fmt.Sprintf("Day %d", d.DayNumber)
		if d.Name != "" {
			label += " · " + d.Name
		}
		done := 0
		for _, w := range d.Workouts {
			if w.IsCompleted {
				done++
			}
		}
		label += fmt.Sprintf(" (%d/%d done)", done, len(d.Workouts))
		items = append(items, item{label: label, index: i})
	}
	return items
}

func (m Model) workoutItems() []item {
	var items []item
	for i, w := range m.day.Workouts {
		check := "○"
		if w.IsCompleted {
			check = "✓"
		}
		label := fmt.Sprintf("%s %s · %d exercises", check, w.Name, len(w.Exercises))
		if w.EstimatedDuration > 0 {
			label += fmt.Sprintf(" · ~%d min", w.EstimatedDuration)
		}
		if w.Intensity != "" {
			label += " · " + w.Intensity
		}
		items = append(items, item{label: label, action: StartWorkout, index: i})
	}
	return items
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
			} else if len(m.items) > 0 {
				m.cursor = len(m.items) - 1
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			} else {
				m.cursor = 0
			}

		case key.Matches(msg, keys.Enter):
			if len(m.items) == 0 {
				return m, nil
			}
			return m.selectItem(m.items[m.cursor])

		case key.Matches(msg, keys.Back):
			if m.stage == stageWeeks {
				m.choice = Choice{Action: Exit}
				m.shouldQuit = true
				return m, tea.Quit
			}
			m.goBack()

		case key.Matches(msg, keys.Quit):
			m.choice = Choice{Action: Exit}
			m.shouldQuit = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) selectItem(it item) (tea.Model, tea.Cmd) {
	switch m.stage {
	case stageWeeks:
		if it.action != None {
			m.choice = Choice{Action: it.action}
			m.shouldQuit = it.action == Exit
			return m, tea.Quit
		}
		m.week = &m.plan.Weeks[it.index]
		m.stage = stageDays
		m.items = m.dayItems()
	case stageDays:
		m.day = &m.week.Days[it.index]
		m.stage = stageWorkouts
		m.items = m.workoutItems()
	case stageWorkouts:
		w := m.day.Workouts[it.index]
		ref := w.Identifier()
		if ref == "" {
			ref = strconv.Itoa(it.index)
		}
		m.choice = Choice{
			Action:     StartWorkout,
			Week:       m.week.WeekNumber,
			Day:        m.day.DayNumber,
			WorkoutRef: ref,
		}
		return m, tea.Quit
	}
	m.cursor = 0
	return m, nil
}

func (m *Model) goBack() {
	switch m.stage {
	case stageWorkouts:
		m.stage = stageDays
		m.items = m.dayItems()
		m.cursor = indexOfDay(m.week, m.day)
		m.day = nil
	case stageDays:
		m.stage = stageWeeks
		m.items = m.weekItems()
		m.cursor = indexOfWeek(m.plan, m.week)
		m.week = nil
	}
}

func indexOfWeek(p *models.Plan, w *models.Week) int {
	for i := range p.Weeks {
		if &p.Weeks[i] == w {
			return i
		}
	}
	return 0
}

func indexOfDay(w *models.Week, d *models.Day) int {
	for i := range w.Days {
		if &w.Days[i] == d {
			return i
		}
	}
	return 0
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
		MarginBottom(1).
		Align(lipgloss.Center)

	statsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1).
		Align(lipgloss.Center)

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5F5F")).
		MarginBottom(1)

	menuStyle := lipgloss.NewStyle().
		Padding(1, 2).
		MarginTop(1)

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF7CCB")).
		Bold(true)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	dateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		MarginBottom(1).
		Align(lipgloss.Center)

	planName := "no plan loaded"
	if m.plan != nil {
		planName = m.plan.Name
	}

	parts := []string{
		titleStyle.Render("🏋️  Coachlix"),
		dateStyle.Render(time.Now().Format("Monday, January 2, 2006") + " · " + planName),
		statsStyle.Render(fmt.Sprintf(
			"Today: %d workouts | %d mins | This week: %d workouts, %d sets",
			m.todayStats.Workouts,
			m.todayStats.TotalMinutes,
			m.weekStats.Workouts,
			m.weekStats.TotalSets,
		)),
	}
	if m.planErr != nil {
		parts = append(parts, errorStyle.Render("Could not load plan: "+m.planErr.Error()))
	}
	if m.notice != "" {
		parts = append(parts, errorStyle.Render(m.notice))
	}
	if crumb := m.breadcrumb(); crumb != "" {
		parts = append(parts, normalStyle.Render(crumb))
	}

	var menu string
	for i, it := range m.items {
		cursor := "  "
		style := normalStyle
		if m.cursor == i {
			cursor = "▶ "
			style = selectedStyle
		}
		menu += style.Render(cursor+it.label) + "\n"
	}
	if len(m.items) == 0 {
		menu = normalStyle.Render("Nothing scheduled here.")
	}
	parts = append(parts, menuStyle.Render(menu), m.renderHelp())

	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

func (m Model) breadcrumb() string {
	switch m.stage {
	case stageDays:
		return fmt.Sprintf("Week %d", m.week.WeekNumber)
	case stageWorkouts:
		return fmt.Sprintf("Week %d › Day %d", m.week.WeekNumber, m.day.DayNumber)
	}
	return ""
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(1)

	if m.stage == stageWeeks {
		return helpStyle.Render("↑/↓: navigate • enter: select • q: quit")
	}
	return helpStyle.Render("↑/↓: navigate • enter: select • esc/b: back • ctrl+c: quit")
}

// WithNotice shows a one-off message above the menu, such as why a workout
// could not be opened.
func (m Model) WithNotice(notice string) Model {
	m.notice = notice
	return m
}

func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

func (m Model) GetChoice() Choice {
	return m.choice
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
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
	Enter: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "b", "q"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
