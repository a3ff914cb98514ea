package session_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/session"
)

type cueCounter struct {
	plays int
	err   error
}

func (c *cueCounter) Play() error {
	c.plays++
	return c.err
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
}

func threeExerciseWorkout() models.Workout {
	return models.Workout{
		Name:      "Upper A",
		Intensity: "moderate",
		Exercises: []models.Exercise{
			{ID: "ex-bench", Name: "Bench press", TargetSets: 1, TargetReps: "10", RestTime: 90},
			{Name: "Row", TargetSets: 1, TargetReps: "10"},
			{ID: "ex-curl", Name: "Curl", TargetSets: 1, TargetReps: "10", RestTime: 45},
		},
	}
}

func newController(t *testing.T, w models.Workout) (*session.Controller, *cueCounter) {
	t.Helper()
	cue := &cueCounter{}
	return session.New(w, session.WithCue(cue), session.WithNow(fixedNow)), cue
}

func TestController_CursorStaysInRange(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())
	rng := rand.New(rand.NewSource(7))

	for range 500 {
		switch rng.Intn(3) {
		case 0:
			c.Next()
		case 1:
			c.Previous()
		case 2:
			c.JumpTo(rng.Intn(7) - 2)
		}
		idx := c.State().CurrentExerciseIndex
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 3)
	}
}

func TestController_NavigationNoOpsAtBounds(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())
	c.Start()
	for range 5 {
		c.Tick()
	}
	require.True(t, c.RecordSet(0, 8, nil))

	before := c.State()
	assert.False(t, c.Previous())
	assert.Equal(t, before, c.State())

	require.True(t, c.JumpTo(2))
	c.Tick()
	atLast := c.State()
	assert.False(t, c.Next())
	assert.Equal(t, atLast, c.State())
}

func TestController_MoveResetsExerciseTimerAndSetNumber(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())
	c.Start()
	for range 30 {
		c.Tick()
	}
	require.True(t, c.RecordSet(0, 10, nil))
	require.Equal(t, 2, c.State().CurrentSetNumber)

	require.True(t, c.Next())
	st := c.State()
	assert.Equal(t, 1, st.CurrentExerciseIndex)
	assert.Equal(t, 0, st.CurrentExerciseElapsedSeconds)
	assert.Equal(t, 1, st.CurrentSetNumber)
	assert.Equal(t, 30, st.TotalElapsedSeconds)
}

func TestController_JumpToOutOfRangeIgnored(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())
	require.True(t, c.JumpTo(1))
	before := c.State()

	assert.False(t, c.JumpTo(3))
	assert.False(t, c.JumpTo(-1))
	assert.False(t, c.JumpTo(1))
	assert.Equal(t, before, c.State())
}

func TestController_SetNumbering(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())
	w := 62.5

	for n := 1; n <= 5; n++ {
		require.True(t, c.RecordSet(0, 8+n, &w))
	}

	sets := c.SetsFor(0)
	require.Len(t, sets, 5)
	for i, s := range sets {
		assert.Equal(t, i+1, s.SetNumber)
		assert.Equal(t, 9+i, s.Reps)
		require.NotNil(t, s.Weight)
		assert.Equal(t, 62.5, *s.Weight)
		assert.Equal(t, fixedNow(), s.Timestamp)
	}
	assert.Equal(t, 6, c.State().CurrentSetNumber)
}

func TestController_SetsForReturnsCopy(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())
	require.True(t, c.RecordSet(0, 10, nil))

	sets := c.SetsFor(0)
	sets[0].Reps = 999
	assert.Equal(t, 10, c.SetsFor(0)[0].Reps)
}

func TestController_RepsGate(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())

	for _, reps := range []string{"", "   ", "0", "-3", "ten", "8.5"} {
		assert.False(t, c.CompleteSet(reps, "40"), "reps %q", reps)
	}
	assert.False(t, c.RecordSet(0, 0, nil))
	assert.False(t, c.RecordSet(0, -1, nil))
	assert.False(t, c.RecordSet(7, 10, nil))

	assert.Empty(t, c.SetsFor(0))
	assert.Equal(t, 1, c.State().CurrentSetNumber)

	assert.True(t, c.CompleteSet(" 12 ", ""))
	sets := c.SetsFor(0)
	require.Len(t, sets, 1)
	assert.Nil(t, sets[0].Weight)
}

func TestController_CompleteExerciseIdempotent(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())

	require.True(t, c.CompleteExercise(1))
	once := c.State()

	assert.False(t, c.CompleteExercise(1))
	twice := c.State()

	assert.Equal(t, once.CompletedExerciseIndices, twice.CompletedExerciseIndices)
	assert.Equal(t, once.Progress, twice.Progress)
	assert.Equal(t, 33, twice.Progress)
}

func TestController_RestCoupling(t *testing.T) {
	w := threeExerciseWorkout()

	c, _ := newController(t, w)
	require.True(t, c.CompleteExercise(0))
	st := c.State()
	assert.True(t, st.IsResting)
	assert.Equal(t, 90, st.RestRemainingSeconds)
	assert.Equal(t, 1, st.CurrentExerciseIndex)

	c.SkipRest()
	require.True(t, c.CompleteExercise(1))
	st = c.State()
	assert.True(t, st.IsResting)
	assert.Equal(t, session.DefaultRestSeconds, st.RestRemainingSeconds)
	assert.Equal(t, 2, st.CurrentExerciseIndex)

	c.SkipRest()
	require.True(t, c.CompleteExercise(2))
	st = c.State()
	assert.False(t, st.IsResting)
	assert.Equal(t, 2, st.CurrentExerciseIndex)
}

func TestController_CompleteFromOtherExerciseAdvancesToNext(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())
	require.True(t, c.JumpTo(2))

	require.True(t, c.CompleteExercise(0))
	assert.Equal(t, 1, c.State().CurrentExerciseIndex)
}

func TestController_RestCountdownPlaysCueOnce(t *testing.T) {
	w := threeExerciseWorkout()
	w.Exercises[0].RestTime = 3
	c, cue := newController(t, w)

	require.True(t, c.CompleteExercise(0))
	assert.False(t, c.Tick().RestFinished)
	assert.False(t, c.Tick().RestFinished)
	assert.True(t, c.Tick().RestFinished)

	st := c.State()
	assert.False(t, st.IsResting)
	assert.Equal(t, 0, st.RestRemainingSeconds)
	assert.Equal(t, 1, cue.plays)

	assert.False(t, c.Tick().RestFinished)
	assert.Equal(t, 1, cue.plays)
}

func TestController_RestRunsWhileClockPaused(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())
	require.True(t, c.CompleteExercise(0))

	res := c.Tick()
	assert.False(t, res.ClockAdvanced)
	st := c.State()
	assert.Equal(t, 89, st.RestRemainingSeconds)
	assert.Equal(t, 0, st.TotalElapsedSeconds)
}

func TestController_SkipRestNoCue(t *testing.T) {
	c, cue := newController(t, threeExerciseWorkout())
	require.True(t, c.CompleteExercise(0))
	c.SkipRest()

	assert.False(t, c.State().IsResting)
	assert.False(t, c.Tick().RestFinished)
	assert.Zero(t, cue.plays)
}

func TestController_SoundDisabledSuppressesCue(t *testing.T) {
	w := threeExerciseWorkout()
	w.Exercises[0].RestTime = 1
	cue := &cueCounter{}
	c := session.New(w, session.WithCue(cue), session.WithSoundEnabled(false))

	require.True(t, c.CompleteExercise(0))
	assert.True(t, c.Tick().RestFinished)
	assert.Zero(t, cue.plays)
}

func TestController_CueFailureIsSwallowed(t *testing.T) {
	w := threeExerciseWorkout()
	w.Exercises[0].RestTime = 1
	cue := &cueCounter{err: errors.New("no audio device")}
	c := session.New(w, session.WithCue(cue))

	require.True(t, c.CompleteExercise(0))
	assert.True(t, c.Tick().RestFinished)
	assert.Equal(t, 1, cue.plays)
	assert.False(t, c.State().IsResting)
}

func TestController_ResetRestUsesCurrentExercise(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())
	require.True(t, c.CompleteExercise(1))
	require.Equal(t, 2, c.State().CurrentExerciseIndex)

	for range 10 {
		c.Tick()
	}
	c.ResetRest()
	st := c.State()
	assert.True(t, st.IsResting)
	assert.Equal(t, 45, st.RestRemainingSeconds)
}

func TestController_ZeroRestTimeUsesDefault(t *testing.T) {
	w := threeExerciseWorkout()
	w.Exercises[0].RestTime = 0
	c, _ := newController(t, w)

	require.True(t, c.CompleteExercise(0))
	assert.Equal(t, session.DefaultRestSeconds, c.State().RestRemainingSeconds)
}

func TestController_ClockPauseResume(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())

	c.Start()
	for range 65 {
		c.Tick()
	}
	c.Pause()
	assert.Equal(t, 65, c.State().TotalElapsedSeconds)

	for range 20 {
		c.Tick()
	}
	assert.Equal(t, 65, c.State().TotalElapsedSeconds)

	c.Start()
	for range 5 {
		c.Tick()
	}
	st := c.State()
	assert.Equal(t, 70, st.TotalElapsedSeconds)
	assert.Equal(t, 70, st.CurrentExerciseElapsedSeconds)
	assert.Equal(t, 1, c.Summary().DurationMinutes)
}

func TestController_Toggle(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())
	assert.True(t, c.Toggle())
	assert.True(t, c.NeedsTicks())
	assert.False(t, c.Toggle())
	assert.False(t, c.NeedsTicks())
}

func TestController_FullWorkout(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())
	c.Start()

	rests := 0
	for i := range 3 {
		require.Equal(t, i, c.State().CurrentExerciseIndex)
		require.True(t, c.CompleteSet("10", ""))
		require.True(t, c.CompleteExercise(i))
		if c.State().IsResting {
			rests++
			c.SkipRest()
		}
	}

	assert.Equal(t, 100, c.Progress())
	assert.True(t, c.IsWorkoutComplete())
	assert.Equal(t, 2, rests)

	summary := c.Summary()
	assert.Equal(t, 3, summary.TotalSets)
	assert.Equal(t, 3, summary.CompletedExercises)
	assert.Equal(t, 3, summary.TotalExercises)
	assert.Equal(t, "moderate", summary.AverageIntensity)
	require.Len(t, summary.PerExercise, 3)
	assert.Equal(t, 1, summary.PerExercise[2].CompletedSets)
}

func TestController_FinishEarlyAllowed(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())
	require.True(t, c.CompleteExercise(0))

	assert.False(t, c.IsWorkoutComplete())
	summary := c.Summary()
	assert.Equal(t, 1, summary.CompletedExercises)
	assert.Zero(t, summary.TotalSets)
}

func TestController_EmptyWorkout(t *testing.T) {
	c, _ := newController(t, models.Workout{Name: "Empty"})

	assert.Equal(t, 0, c.Progress())
	assert.False(t, c.Next())
	assert.False(t, c.CompleteExercise(0))
	assert.False(t, c.CompleteSet("10", ""))

	c.ResetRest()
	assert.Equal(t, session.DefaultRestSeconds, c.State().RestRemainingSeconds)

	c.Append(models.Exercise{Name: "Push-up"}, models.Exercise{Name: "Squat"})
	assert.Equal(t, 2, c.State().ExerciseCount)
	assert.True(t, c.Next())
	assert.True(t, c.CompleteExercise(0))
	assert.Equal(t, 50, c.Progress())
}

func TestController_RestoresSavedProgress(t *testing.T) {
	w := threeExerciseWorkout()
	w.Exercises[0].CompletedSets = []models.SetRecord{
		{SetNumber: 1, Reps: 10},
		{SetNumber: 1, Reps: 9},
	}
	w.Exercises[0].IsCompleted = true
	w.Exercises[1].Notes = "left shoulder tight"
	c, _ := newController(t, w)

	sets := c.SetsFor(0)
	require.Len(t, sets, 2)
	assert.Equal(t, 2, sets[1].SetNumber)
	assert.Equal(t, 33, c.Progress())

	require.True(t, c.RecordSet(0, 8, nil))
	assert.Equal(t, 3, c.SetsFor(0)[2].SetNumber)

	exercises := c.Exercises()
	assert.True(t, exercises[0].Completed)
	assert.Equal(t, "left shoulder tight", exercises[1].Notes)
}

func TestController_PendingProgress(t *testing.T) {
	c, _ := newController(t, threeExerciseWorkout())
	assert.Empty(t, c.PendingProgress())

	require.True(t, c.RecordSet(0, 10, nil))
	c.SetNotes(1, "use straps")
	require.True(t, c.CompleteExercise(2))

	pending := c.PendingProgress()
	require.Len(t, pending, 3)

	assert.Equal(t, "ex-bench", pending[0].Ref.PathSegment())
	assert.Len(t, pending[0].Update.CompletedSets, 1)
	assert.False(t, pending[0].Update.IsCompleted)

	assert.Equal(t, "index/1", pending[1].Ref.PathSegment())
	assert.Equal(t, "use straps", pending[1].Update.Notes)

	assert.Equal(t, "ex-curl", pending[2].Ref.PathSegment())
	assert.True(t, pending[2].Update.IsCompleted)

	c.SetNotes(1, "")
	assert.Len(t, c.PendingProgress(), 2)
}
