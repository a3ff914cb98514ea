package workout

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/persistence"
	"github.com/adibhanna/coachlix/internal/session"
	"github.com/adibhanna/coachlix/internal/storage"
)

const requestTimeout = 30 * time.Second

type mode int

const (
	modeNormal mode = iota
	modeReps
	modeWeight
	modeNotes
	modeWorkoutNotes
	modeAddExercise
	modeConfirmLeave
	modeAlert
	modeFinished
)

type savedMsg struct {
	result persistence.SaveResult
	edits  int // edit count when the save started
	err    error
}

type addedMsg struct {
	name string
	err  error
}

type finishedMsg struct {
	summary    models.WorkoutSummary
	err        error
	historyErr error
}

type Params struct {
	Adapter *persistence.Adapter
	Session *persistence.Session
	History *storage.Storage // optional
	Compact bool
	Log     logrus.FieldLogger
	Now     func() time.Time
}

type Model struct {
	adapter *persistence.Adapter
	session *persistence.Session
	ctrl    *session.Controller
	history *storage.Storage
	log     logrus.FieldLogger
	now     func() time.Time

	mode        mode
	compact     bool
	ticker      ticker
	busy        bool
	dirty       bool
	edits       int
	status      string
	alert       string
	pendingReps string
	input       textinput.Model
	progress    progress.Model

	summary    *models.WorkoutSummary
	exitToMenu bool
	quitting   bool
	width      int
	height     int
}

func New(p Params) Model {
	prog := progress.New(progress.WithScaledGradient("#FF7CCB", "#FDFF8C"))
	prog.Width = 60

	ti := textinput.New()
	ti.Width = 30

	if p.Log == nil {
		p.Log = logrus.StandardLogger()
	}
	if p.Now == nil {
		p.Now = time.Now
	}

	return Model{
		adapter:  p.Adapter,
		session:  p.Session,
		ctrl:     p.Session.Controller,
		history:  p.History,
		log:      p.Log,
		now:      p.Now,
		compact:  p.Compact,
		input:    ti,
		progress: prog,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 80)
		return m, nil

	case tickMsg:
		if !m.ticker.accept(msg) {
			return m, nil
		}
		if res := m.ctrl.Tick(); res.RestFinished {
			m.status = "Rest over. Next set!"
		}
		if m.ctrl.NeedsTicks() {
			return m, m.ticker.next()
		}
		m.ticker.release()
		return m, nil

	case savedMsg:
		m.busy = false
		if msg.err != nil {
			m.showAlert(fmt.Sprintf("Saving progress failed (%d of %d exercises saved).\n\n%v",
				msg.result.Sent, msg.result.Sent+msg.result.Failed, msg.err))
			return m, nil
		}
		m.status = fmt.Sprintf("Progress saved (%d exercises)", msg.result.Sent)
		if msg.edits == m.edits {
			m.dirty = false
		} else {
			m.status += ", newer changes unsaved"
		}
		return m, nil

	case addedMsg:
		m.busy = false
		if msg.err != nil {
			m.showAlert(fmt.Sprintf("Could not add %q to the workout.\n\n%v", msg.name, msg.err))
			return m, nil
		}
		m.status = fmt.Sprintf("Added %s", msg.name)
		return m, nil

	case finishedMsg:
		m.busy = false
		if msg.err != nil {
			m.showAlert(fmt.Sprintf("Could not finish the workout. The session is still open.\n\n%v", msg.err))
			return m, nil
		}
		m.ticker.release()
		m.summary = &msg.summary
		m.dirty = false
		m.mode = modeFinished
		if msg.historyErr != nil {
			m.status = "Workout saved, but the local history could not be updated"
		}
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.ticker.release()
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeReps, modeWeight, modeNotes, modeWorkoutNotes, modeAddExercise:
			return m.updateInput(msg)
		case modeConfirmLeave:
			switch {
			case key.Matches(msg, keys.Yes), key.Matches(msg, keys.Submit):
				return m.leave()
			case key.Matches(msg, keys.No):
				m.mode = modeNormal
			}
			return m, nil
		case modeAlert:
			if key.Matches(msg, keys.Submit) || key.Matches(msg, keys.Dismiss) {
				m.alert = ""
				m.mode = modeNormal
			}
			return m, nil
		case modeFinished:
			if key.Matches(msg, keys.Submit) || key.Matches(msg, keys.Back) {
				m.exitToMenu = true
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.status = ""

	switch {
	case key.Matches(msg, keys.Toggle):
		if m.ctrl.Toggle() {
			cmd = m.ticker.ensure()
		} else {
			m.syncTicker()
		}

	case key.Matches(msg, keys.Next):
		m.ctrl.Next()

	case key.Matches(msg, keys.Previous):
		m.ctrl.Previous()

	case key.Matches(msg, keys.Jump):
		if r := msg.Runes; len(r) == 1 {
			m.ctrl.JumpTo(int(r[0]-'1'))
		}

	case key.Matches(msg, keys.LogSet):
		if m.ctrl.State().ExerciseCount == 0 {
			return m, nil
		}
		m.pendingReps = ""
		return m, m.openInput(modeReps, "reps", "")

	case key.Matches(msg, keys.Complete):
		if m.ctrl.CompleteCurrent() {
			m.markDirty()
			if m.ctrl.IsWorkoutComplete() {
				m.status = "All exercises done. Press F to finish."
			}
			cmd = m.armForRest()
		}

	case key.Matches(msg, keys.SkipRest):
		m.ctrl.SkipRest()
		m.syncTicker()

	case key.Matches(msg, keys.ResetRest):
		if m.ctrl.State().ExerciseCount > 0 {
			m.ctrl.ResetRest()
			cmd = m.armForRest()
		}

	case key.Matches(msg, keys.Sound):
		on := !m.ctrl.State().SoundEnabled
		m.ctrl.SetSoundEnabled(on)
		if on {
			m.status = "Sound on"
		} else {
			m.status = "Sound off"
		}

	case key.Matches(msg, keys.Notes):
		st := m.ctrl.State()
		if st.ExerciseCount == 0 {
			return m, nil
		}
		ex := m.ctrl.Exercises()[st.CurrentExerciseIndex]
		return m, m.openInput(modeNotes, "notes", ex.Notes)

	case key.Matches(msg, keys.WorkoutNotes):
		return m, m.openInput(modeWorkoutNotes, "workout notes", m.ctrl.State().WorkoutNotes)

	case key.Matches(msg, keys.AddExercise):
		if m.busy {
			return m, nil
		}
		return m, m.openInput(modeAddExercise, "new exercise", "")

	case key.Matches(msg, keys.Save):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Saving..."
		return m, m.saveCmd()

	case key.Matches(msg, keys.Finish):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = "Finishing workout..."
		return m, m.finishCmd()

	case key.Matches(msg, keys.View):
		m.compact = !m.compact

	case key.Matches(msg, keys.Back):
		if m.dirty {
			m.mode = modeConfirmLeave
			return m, nil
		}
		return m.leave()
	}

	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Dismiss):
		m.input.Blur()
		m.mode = modeNormal
		return m, nil

	case key.Matches(msg, keys.Submit):
		value := strings.TrimSpace(m.input.Value())
		switch m.mode {
		case modeReps:
			if _, ok := session.ParseReps(value); !ok {
				m.status = "Enter a positive number of reps"
				return m, nil
			}
			m.pendingReps = value
			return m, m.openInput(modeWeight, "weight (optional)", "")
		case modeWeight:
			if m.ctrl.CompleteSet(m.pendingReps, value) {
				m.markDirty()
				st := m.ctrl.State()
				m.status = fmt.Sprintf("Set %d logged", st.CurrentSetNumber-1)
			}
		case modeNotes:
			m.ctrl.SetNotes(m.ctrl.State().CurrentExerciseIndex, value)
			m.markDirty()
		case modeWorkoutNotes:
			m.ctrl.SetWorkoutNotes(value)
			m.markDirty()
		case modeAddExercise:
			m.input.Blur()
			m.mode = modeNormal
			if value == "" {
				return m, nil
			}
			m.busy = true
			m.status = "Adding exercise..."
			return m, m.addCmd(value)
		}
		m.input.Blur()
		m.mode = modeNormal
		return m, nil
	}

	if !m.acceptsInput(msg) {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// acceptsInput keeps the numeric prompts numeric.
func (m Model) acceptsInput(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return true
	}
	for _, r := range msg.Runes {
		switch {
		case unicode.IsDigit(r):
		case m.mode == modeWeight && (r == '.' || r == ','):
		case m.mode == modeNotes || m.mode == modeWorkoutNotes || m.mode == modeAddExercise:
		default:
			return false
		}
	}
	return true
}

func (m *Model) openInput(md mode, prompt, value string) tea.Cmd {
	m.mode = md
	m.input.Reset()
	m.input.Prompt = prompt + ": "
	m.input.SetValue(value)
	switch md {
	case modeReps, modeWeight:
		m.input.CharLimit = 6
	case modeAddExercise:
		m.input.CharLimit = 80
	default:
		m.input.CharLimit = 500
	}
	m.input.CursorEnd()
	m.input.Focus()
	return textinput.Blink
}

func (m *Model) markDirty() {
	m.dirty = true
	m.edits++
}

func (m *Model) showAlert(text string) {
	m.alert = text
	m.mode = modeAlert
}

func (m *Model) armForRest() tea.Cmd {
	if m.ctrl.NeedsTicks() {
		return m.ticker.ensure()
	}
	return nil
}

// syncTicker stops the tick chain once nothing needs it.
func (m *Model) syncTicker() {
	if !m.ctrl.NeedsTicks() {
		m.ticker.release()
	}
}

func (m Model) leave() (tea.Model, tea.Cmd) {
	m.ticker.release()
	m.exitToMenu = true
	m.log.WithField("address", m.session.Address.String()).Info("session discarded")
	return m, tea.Quit
}

func (m Model) saveCmd() tea.Cmd {
	adapter, sess, edits := m.adapter, m.session, m.edits
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := adapter.SaveProgress(ctx, sess)
		return savedMsg{result: res, edits: edits, err: err}
	}
}

// addCmd appends a bare exercise with the default rest to the workout.
func (m Model) addCmd(name string) tea.Cmd {
	adapter, sess := m.adapter, m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := adapter.AddExercises(ctx, sess, []models.Exercise{{Name: name}})
		return addedMsg{name: name, err: err}
	}
}

func (m Model) finishCmd() tea.Cmd {
	adapter, sess, history, now, log := m.adapter, m.session, m.history, m.now, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		summary, err := adapter.CompleteWorkout(ctx, sess)
		if err != nil {
			return finishedMsg{summary: summary, err: err}
		}
		msg := finishedMsg{summary: summary}
		if history != nil {
			entry := storage.NewEntry(sess.Address, sess.Controller.Workout().Name, summary, now())
			if _, err := history.AppendHistory(entry); err != nil {
				log.WithError(err).Warn("appending workout history failed")
				msg.historyErr = err
			}
		}
		return msg
	}
}

func (m Model) ExitedToMenu() bool {
	return m.exitToMenu
}

// Quitting reports that the user asked to leave the application.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) Finished() bool {
	return m.summary != nil
}

func (m Model) Summary() *models.WorkoutSummary {
	return m.summary
}
