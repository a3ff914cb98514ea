package session

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/plan"
)

// State is a read-only snapshot of a running session.
type State struct {
	CurrentExerciseIndex          int
	CurrentSetNumber              int
	CompletedExerciseIndices      []int
	TotalElapsedSeconds           int
	CurrentExerciseElapsedSeconds int
	IsRunning                     bool
	IsResting                     bool
	RestRemainingSeconds          int
	SoundEnabled                  bool
	WorkoutNotes                  string
	ExerciseCount                 int
	Progress                      int
	WorkoutComplete               bool
}

// ExerciseState is an exercise together with its in-session data.
type ExerciseState struct {
	Index     int
	Exercise  models.Exercise
	Completed bool
	Sets      []models.SetRecord
	Notes     string
}

// ExerciseProgress is one pending per-exercise save.
type ExerciseProgress struct {
	Index  int
	Ref    plan.Ref
	Name   string
	Update models.ExerciseUpdate
}

// TickResult reports what a one-second tick changed.
type TickResult struct {
	ClockAdvanced bool
	RestFinished  bool
}

// Controller owns the state of one workout session. Mutations come from
// user actions and from Tick; all methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	workout      models.Workout
	clock        Clock
	cursor       *Cursor
	ledger       *SetLedger
	tracker      *CompletionTracker
	rest         *RestScheduler
	setNumber    int
	notes        map[int]string
	workoutNotes string

	cue          Cue
	soundEnabled bool
	now          func() time.Time
	log          logrus.FieldLogger
}

type Option func(*Controller)

func WithCue(cue Cue) Option {
	return func(c *Controller) { c.cue = cue }
}

func WithSoundEnabled(enabled bool) Option {
	return func(c *Controller) { c.soundEnabled = enabled }
}

func WithNow(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Controller) { c.log = log }
}

// New builds a session for workout. Sets, completion flags and notes that a
// previous save left on the exercises are carried into the session.
func New(workout models.Workout, opts ...Option) *Controller {
	c := &Controller{
		workout:      workout,
		setNumber:    1,
		notes:        make(map[int]string),
		cue:          Bell{},
		soundEnabled: true,
		now:          time.Now,
		log:          logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.workout.Exercises = append([]models.Exercise(nil), workout.Exercises...)
	c.cursor = NewCursor(len(c.workout.Exercises))
	c.ledger = NewSetLedger(c.now)
	c.tracker = NewCompletionTracker(len(c.workout.Exercises))
	c.rest = NewRestScheduler(c.cue, c.soundEnabled, c.log)

	for i, ex := range c.workout.Exercises {
		c.ledger.restore(i, ex.CompletedSets)
		if ex.IsCompleted {
			c.tracker.Complete(i)
		}
		if ex.Notes != "" {
			c.notes[i] = ex.Notes
		}
	}

	return c
}

func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock.Start()
}

func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock.Pause()
}

// Toggle flips between running and paused and returns the new running state.
func (c *Controller) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clock.Running() {
		c.clock.Pause()
	} else {
		c.clock.Start()
	}
	return c.clock.Running()
}

// Tick advances the session by one second. The clock only moves while
// running; a rest countdown moves regardless.
func (c *Controller) Tick() TickResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return TickResult{
		ClockAdvanced: c.clock.Tick(),
		RestFinished:  c.rest.Tick(),
	}
}

// NeedsTicks reports whether anything would change on the next Tick.
func (c *Controller) NeedsTicks() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clock.Running() || c.rest.Resting()
}

func (c *Controller) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moved(c.cursor.Next())
}

func (c *Controller) Previous() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moved(c.cursor.Previous())
}

// JumpTo selects an exercise directly; out-of-range indices are ignored.
func (c *Controller) JumpTo(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moved(c.cursor.JumpTo(i))
}

func (c *Controller) moved(ok bool) bool {
	if ok {
		c.clock.ResetExercise()
		c.setNumber = 1
	}
	return ok
}

// RecordSet appends a set to exercise i. It is a no-op unless reps > 0 and
// i is a valid exercise.
func (c *Controller) RecordSet(i, reps int, weight *float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recordSet(i, reps, weight)
}

func (c *Controller) recordSet(i, reps int, weight *float64) bool {
	if i < 0 || i >= len(c.workout.Exercises) {
		return false
	}
	rec, ok := c.ledger.Record(i, reps, weight)
	if !ok {
		return false
	}
	c.setNumber++
	c.log.WithFields(logrus.Fields{
		"exercise": c.workout.Exercises[i].Name,
		"set":      rec.SetNumber,
		"reps":     rec.Reps,
	}).Debug("set recorded")
	return true
}

// CompleteSet records a set on the current exercise from raw input text.
func (c *Controller) CompleteSet(repsInput, weightInput string) bool {
	reps, ok := ParseReps(repsInput)
	if !ok {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recordSet(c.cursor.Index(), reps, ParseWeight(weightInput))
}

// CompleteExercise marks exercise i done. When i is not the last exercise it
// starts the rest period for i and moves the cursor to i+1. Completing an
// exercise twice changes nothing.
func (c *Controller) CompleteExercise(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tracker.Complete(i) {
		return false
	}
	c.workout.Exercises[i].IsCompleted = true

	if i < len(c.workout.Exercises)-1 {
		c.rest.Start(RestDuration(c.workout.Exercises[i]))
		if c.cursor.Index() != i+1 {
			c.cursor.index = i + 1
			c.clock.ResetExercise()
			c.setNumber = 1
		}
	}
	return true
}

func (c *Controller) CompleteCurrent() bool {
	c.mu.Lock()
	i := c.cursor.Index()
	c.mu.Unlock()
	return c.CompleteExercise(i)
}

func (c *Controller) SkipRest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rest.Skip()
}

// ResetRest restarts the rest countdown from the current exercise's rest time.
func (c *Controller) ResetRest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.workout.Exercises) == 0 {
		c.rest.Start(DefaultRestSeconds)
		return
	}
	c.rest.Start(RestDuration(c.workout.Exercises[c.cursor.Index()]))
}

func (c *Controller) SetSoundEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rest.SetSoundEnabled(enabled)
}

func (c *Controller) SetNotes(i int, notes string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.workout.Exercises) {
		return
	}
	if notes == "" {
		delete(c.notes, i)
		return
	}
	c.notes[i] = notes
}

func (c *Controller) SetWorkoutNotes(notes string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.workoutNotes = notes
}

// Append adds exercises to the end of the workout.
func (c *Controller) Append(exercises ...models.Exercise) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.workout.Exercises = append(c.workout.Exercises, exercises...)
	c.cursor.Grow(len(exercises))
	c.tracker.grow(len(exercises))
}

func (c *Controller) SetsFor(i int) []models.SetRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.SetsFor(i)
}

func (c *Controller) Progress() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.Progress()
}

func (c *Controller) IsWorkoutComplete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracker.IsWorkoutComplete()
}

func (c *Controller) Workout() models.Workout {
	c.mu.Lock()
	defer c.mu.Unlock()
	w := c.workout
	w.Exercises = append([]models.Exercise(nil), c.workout.Exercises...)
	return w
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		CurrentExerciseIndex:          c.cursor.Index(),
		CurrentSetNumber:              c.setNumber,
		CompletedExerciseIndices:      c.tracker.Indices(),
		TotalElapsedSeconds:           c.clock.Total(),
		CurrentExerciseElapsedSeconds: c.clock.ExerciseElapsed(),
		IsRunning:                     c.clock.Running(),
		IsResting:                     c.rest.Resting(),
		RestRemainingSeconds:          c.rest.Remaining(),
		SoundEnabled:                  c.rest.SoundEnabled(),
		WorkoutNotes:                  c.workoutNotes,
		ExerciseCount:                 len(c.workout.Exercises),
		Progress:                      c.tracker.Progress(),
		WorkoutComplete:               c.tracker.IsWorkoutComplete(),
	}
}

func (c *Controller) Exercises() []ExerciseState {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ExerciseState, len(c.workout.Exercises))
	for i, ex := range c.workout.Exercises {
		out[i] = ExerciseState{
			Index:     i,
			Exercise:  ex,
			Completed: c.tracker.IsCompleted(i),
			Sets:      c.ledger.SetsFor(i),
			Notes:     c.notes[i],
		}
	}
	return out
}

// PendingProgress lists the exercises that have something to save: sets,
// a completion flag or notes.
func (c *Controller) PendingProgress() []ExerciseProgress {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []ExerciseProgress
	for i, ex := range c.workout.Exercises {
		sets := c.ledger.SetsFor(i)
		completed := c.tracker.IsCompleted(i)
		notes := c.notes[i]
		if len(sets) == 0 && !completed && notes == "" {
			continue
		}
		out = append(out, ExerciseProgress{
			Index: i,
			Ref:   plan.RefFor(ex.Identifier(), i),
			Name:  ex.Name,
			Update: models.ExerciseUpdate{
				CompletedSets: sets,
				IsCompleted:   completed,
				Notes:         notes,
			},
		})
	}
	return out
}

// Summary builds the finish-workout payload.
func (c *Controller) Summary() models.WorkoutSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	summary := models.WorkoutSummary{
		DurationMinutes:    c.clock.Minutes(),
		TotalExercises:     len(c.workout.Exercises),
		CompletedExercises: c.tracker.Count(),
		TotalSets:          c.ledger.Total(),
		PerExercise:        make([]models.ExerciseSummary, 0, len(c.workout.Exercises)),
		Notes:              c.workoutNotes,
		AverageIntensity:   c.workout.Intensity,
	}
	for i, ex := range c.workout.Exercises {
		sets := c.ledger.SetsFor(i)
		summary.PerExercise = append(summary.PerExercise, models.ExerciseSummary{
			Name:          ex.Name,
			CompletedSets: len(sets),
			Sets:          sets,
			IsCompleted:   c.tracker.IsCompleted(i),
			Notes:         c.notes[i],
		})
	}
	return summary
}
