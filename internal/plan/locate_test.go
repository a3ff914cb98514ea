package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/plan"
)

func testPlan() *models.Plan {
	return &models.Plan{
		ID:   "plan-1",
		Name: "Strength block",
		Weeks: []models.Week{
			{
				WeekNumber: 1,
				Days: []models.Day{
					{
						DayNumber: 1,
						Workouts: []models.Workout{
							{ID: "64f0a1", Name: "Push"},
							{AltID: "64f0a2", Name: "Pull"},
							{Name: "Legs"},
						},
					},
				},
			},
			{WeekNumber: 2},
		},
	}
}

func TestLocate_NumericStringUsesIndex(t *testing.T) {
	p := testPlan()
	// an id equal to "2" must not win over position 2
	p.Weeks[0].Days[0].Workouts[0].ID = "2"

	w, ref, err := plan.Locate(p, 1, 1, "2")
	require.NoError(t, err)
	assert.Equal(t, "Legs", w.Name)
	i, ok := ref.Index()
	assert.True(t, ok)
	assert.Equal(t, 2, i)
}

func TestLocate_ByIdentifier(t *testing.T) {
	p := testPlan()

	w, ref, err := plan.Locate(p, 1, 1, "64f0a1")
	require.NoError(t, err)
	assert.Equal(t, "Push", w.Name)
	assert.False(t, ref.IsIndex())

	w, _, err = plan.Locate(p, 1, 1, "64f0a2")
	require.NoError(t, err)
	assert.Equal(t, "Pull", w.Name)
}

func TestLocate_OutOfRangeIndexFallsBackToID(t *testing.T) {
	p := testPlan()
	p.Weeks[0].Days[0].Workouts[1].AltID = "7"

	w, ref, err := plan.Locate(p, 1, 1, "7")
	require.NoError(t, err)
	assert.Equal(t, "Pull", w.Name)
	id, ok := ref.ID()
	assert.True(t, ok)
	assert.Equal(t, "7", id)
}

func TestLocate_NotFound(t *testing.T) {
	p := testPlan()

	_, _, err := plan.Locate(p, 3, 1, "0")
	assert.ErrorIs(t, err, plan.ErrNotFound)

	_, _, err = plan.Locate(p, 1, 5, "0")
	assert.ErrorIs(t, err, plan.ErrNotFound)

	// week 2 exists but has no days
	_, _, err = plan.Locate(p, 2, 1, "0")
	assert.ErrorIs(t, err, plan.ErrNotFound)

	_, _, err = plan.Locate(p, 1, 1, "missing")
	assert.ErrorIs(t, err, plan.ErrNotFound)

	_, _, err = plan.Locate(p, 1, 1, "3")
	assert.ErrorIs(t, err, plan.ErrNotFound)
}

func TestResolveAddress(t *testing.T) {
	p := testPlan()

	w, err := plan.ResolveAddress(p, plan.WorkoutAddress{PlanID: "plan-1", Week: 1, Day: 1, Workout: plan.IndexRef(1)})
	require.NoError(t, err)
	assert.Equal(t, "Pull", w.Name)

	w, err = plan.ResolveAddress(p, plan.WorkoutAddress{PlanID: "plan-1", Week: 1, Day: 1, Workout: plan.IDRef("64f0a1")})
	require.NoError(t, err)
	assert.Equal(t, "Push", w.Name)

	_, err = plan.ResolveAddress(p, plan.WorkoutAddress{Week: 1, Day: 1, Workout: plan.IndexRef(9)})
	assert.ErrorIs(t, err, plan.ErrNotFound)
}

func TestResolveExercise(t *testing.T) {
	w := &models.Workout{Exercises: []models.Exercise{
		{ID: "ex-a", Name: "Bench"},
		{Name: "Dips"},
	}}

	ex, err := plan.ResolveExercise(w, plan.IDRef("ex-a"))
	require.NoError(t, err)
	assert.Equal(t, "Bench", ex.Name)

	ex, err = plan.ResolveExercise(w, plan.IndexRef(1))
	require.NoError(t, err)
	assert.Equal(t, "Dips", ex.Name)

	_, err = plan.ResolveExercise(w, plan.IndexRef(-1))
	assert.ErrorIs(t, err, plan.ErrNotFound)
}
