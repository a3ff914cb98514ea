package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/coachlix/internal/config"
	"github.com/adibhanna/coachlix/internal/storage"
)

const (
	fieldBaseURL = iota
	fieldToken
	fieldPlanID
	fieldSound
	fieldCompact
	fieldCount
)

type Model struct {
	path         string
	config       config.Config
	storage      *storage.Storage
	inputs       []textinput.Model
	focusIndex   int
	saved        bool
	reset        bool
	confirmReset bool
	errorMsg     string
	quit         bool
	width        int
	height       int
}

// New edits a copy of cfg. Save writes it to path; the caller picks the
// result up through Config.
func New(cfg *config.Config, path string, history *storage.Storage) Model {
	inputs := make([]textinput.Model, fieldCount)

	inputs[fieldBaseURL] = textinput.New()
	inputs[fieldBaseURL].Placeholder = config.DefaultBaseURL
	inputs[fieldBaseURL].SetValue(cfg.API.BaseURL)
	inputs[fieldBaseURL].CharLimit = 200
	inputs[fieldBaseURL].Width = 40
	inputs[fieldBaseURL].Focus()

	inputs[fieldToken] = textinput.New()
	inputs[fieldToken].Placeholder = "bearer token"
	inputs[fieldToken].SetValue(cfg.API.Token)
	inputs[fieldToken].CharLimit = 200
	inputs[fieldToken].Width = 40
	inputs[fieldToken].EchoMode = textinput.EchoPassword

	inputs[fieldPlanID] = textinput.New()
	inputs[fieldPlanID].Placeholder = "plan id"
	inputs[fieldPlanID].SetValue(cfg.Session.PlanID)
	inputs[fieldPlanID].CharLimit = 100
	inputs[fieldPlanID].Width = 40

	inputs[fieldSound] = textinput.New()
	inputs[fieldSound].Placeholder = "y"
	inputs[fieldSound].SetValue(yesNo(cfg.Session.SoundEnabled))
	inputs[fieldSound].CharLimit = 1
	inputs[fieldSound].Width = 5

	inputs[fieldCompact] = textinput.New()
	inputs[fieldCompact].Placeholder = "n"
	inputs[fieldCompact].SetValue(yesNo(cfg.Session.Compact))
	inputs[fieldCompact].CharLimit = 1
	inputs[fieldCompact].Width = 5

	return Model{
		path:    path,
		config:  *cfg,
		storage: history,
		inputs:  inputs,
	}
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func parseYesNo(field, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y":
		return true, nil
	case "n":
		return false, nil
	}
	return false, fmt.Errorf("%s must be y or n", field)
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Down):
			m.focusIndex++
			if m.focusIndex > len(m.inputs)-1 {
				m.focusIndex = 0
			}
			return m.updateFocus(), nil

		case key.Matches(msg, keys.ShiftTab), key.Matches(msg, keys.Up):
			m.focusIndex--
			if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs) - 1
			}
			return m.updateFocus(), nil

		case key.Matches(msg, keys.Save):
			if err := m.saveConfig(); err != nil {
				m.errorMsg = err.Error()
				m.saved = false
				return m, nil
			}
			m.saved = true
			m.errorMsg = ""
			return m, tea.Quit

		case key.Matches(msg, keys.Reset):
			if !m.confirmReset {
				m.confirmReset = true
				return m, nil
			}
			m.confirmReset = false
			if err := m.storage.ResetAllData(); err != nil {
				m.errorMsg = err.Error()
				return m, nil
			}
			m.reset = true
			return m, nil

		case key.Matches(msg, keys.Back):
			if m.confirmReset {
				m.confirmReset = false
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, keys.Quit):
			m.quit = true
			return m, tea.Quit
		}
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

func (m *Model) updateFocus() tea.Model {
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		oldValue := m.inputs[i].Value()
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
		if m.inputs[i].Value() != oldValue {
			m.errorMsg = ""
			m.reset = false
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) saveConfig() error {
	cfg := m.config

	cfg.API.BaseURL = strings.TrimSpace(m.inputs[fieldBaseURL].Value())
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("API URL is required")
	}
	cfg.API.Token = strings.TrimSpace(m.inputs[fieldToken].Value())
	cfg.Session.PlanID = strings.TrimSpace(m.inputs[fieldPlanID].Value())

	var err error
	if cfg.Session.SoundEnabled, err = parseYesNo("sound", m.inputs[fieldSound].Value()); err != nil {
		return err
	}
	if cfg.Session.Compact, err = parseYesNo("compact view", m.inputs[fieldCompact].Value()); err != nil {
		return err
	}

	if err := config.Save(m.path, &cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(2).
		Align(lipgloss.Center)

	formStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		MarginTop(1).
		MarginBottom(1)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C"))

	inputStyle := lipgloss.NewStyle().
		MarginBottom(1)

	successStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		Bold(true).
		MarginTop(1)

	labels := [fieldCount]string{
		"Plan API URL:",
		"API Token:",
		"Plan ID:",
		"Rest-over sound (y/n):",
		"Compact workout view (y/n):",
	}

	var form string
	for i, label := range labels {
		form += labelStyle.Render(label) + "\n"
		form += inputStyle.Render(m.inputs[i].View()) + "\n"
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		titleStyle.Render("⚙️  Settings"),
		formStyle.Render(form),
		m.renderHelp(),
	)

	if m.saved {
		content += "\n" + successStyle.Render("✅ Settings saved to "+m.path)
	}

	if m.reset {
		content += "\n" + successStyle.Render("🔄 Workout history cleared")
	}

	if m.confirmReset {
		warningStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginTop(1)
		content += "\n" + warningStyle.Render("⚠️  WARNING: This deletes the local workout history!")
	}

	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginTop(1)
		content += "\n" + errorStyle.Render("❌ "+m.errorMsg)
	}

	return containerStyle.Render(content)
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(1)

	if m.confirmReset {
		return helpStyle.Render("⚠️  Press ctrl+r again to confirm • esc: cancel")
	}

	return helpStyle.Render("tab/↓: next field • shift+tab/↑: previous • ctrl+s: save • ctrl+r: clear history • esc: back • ctrl+c: quit")
}

// Config returns the last saved configuration.
func (m Model) Config() config.Config {
	return m.config
}

func (m Model) Saved() bool {
	return m.saved
}

func (m Model) ShouldQuit() bool {
	return m.quit
}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding
	Save     key.Binding
	Reset    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous field"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next field"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "clear history"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
