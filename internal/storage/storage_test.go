package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/plan"
)

func newTestStorage(t *testing.T, now time.Time) *Storage {
	t.Helper()
	s, err := NewAt(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	s.now = func() time.Time { return now }
	return s
}

func entryAt(name string, at time.Time, minutes, sets int) models.HistoryEntry {
	addr := plan.WorkoutAddress{PlanID: "p1", Week: 2, Day: 3, Workout: plan.IndexRef(0)}
	return NewEntry(addr, name, models.WorkoutSummary{
		DurationMinutes:    minutes,
		TotalExercises:     4,
		CompletedExercises: 3,
		TotalSets:          sets,
	}, at)
}

func TestNewEntry(t *testing.T) {
	at := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)
	e := entryAt("Push", at, 40, 12)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "p1", e.PlanID)
	assert.Equal(t, 2, e.WeekNumber)
	assert.Equal(t, 3, e.DayNumber)
	assert.Equal(t, "2026-03-04", e.Date)
	assert.Equal(t, "2026-03", e.Month)
	assert.Equal(t, 2026, e.Year)
	assert.Equal(t, 10, e.Week)
}

func TestEmptyHistory(t *testing.T) {
	s := newTestStorage(t, time.Now())
	entries, err := s.GetHistory()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAppendAndRecent(t *testing.T) {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	s := newTestStorage(t, base)

	for i, name := range []string{"Push", "Pull", "Legs"} {
		_, err := s.AppendHistory(entryAt(name, base.Add(time.Duration(i)*24*time.Hour), 30, 10))
		require.NoError(t, err)
	}

	noID := entryAt("Extra", base.Add(-time.Hour), 5, 1)
	noID.ID = ""
	stored, err := s.AppendHistory(noID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)

	recent, err := s.RecentHistory(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Legs", recent[0].WorkoutName)
	assert.Equal(t, "Pull", recent[1].WorkoutName)

	all, err := s.RecentHistory(-1)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "Extra", all[3].WorkoutName)
}

func TestStats(t *testing.T) {
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	s := newTestStorage(t, monday)

	_, err := s.AppendHistory(entryAt("Push", monday, 30, 10))
	require.NoError(t, err)
	_, err = s.AppendHistory(entryAt("Core", monday.Add(2*time.Hour), 15, 6))
	require.NoError(t, err)
	_, err = s.AppendHistory(entryAt("Pull", monday.Add(48*time.Hour), 45, 14))
	require.NoError(t, err)
	_, err = s.AppendHistory(entryAt("Old", monday.AddDate(0, 0, -14), 60, 20))
	require.NoError(t, err)

	day, err := s.GetDayStats("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, 2, day.Workouts)
	assert.Equal(t, 45, day.TotalMinutes)
	assert.Equal(t, 16, day.TotalSets)

	week, err := s.CurrentWeekStats()
	require.NoError(t, err)
	assert.Equal(t, 3, week.Workouts)
	assert.Equal(t, 90, week.TotalMinutes)
	require.Len(t, week.DailyStats, 2)
	assert.Equal(t, "2026-03-02", week.DailyStats[0].Date)
	assert.Equal(t, "2026-03-04", week.DailyStats[1].Date)

	report, err := s.ExportReport()
	require.NoError(t, err)
	assert.Contains(t, report, "Workouts: 4")
	assert.Contains(t, report, "Training Time: 2h 30m")
	assert.Contains(t, report, "CURRENT WEEK (Week 10, 2026)")
	assert.Contains(t, report, "Wednesday: 1 workouts, 14 sets (45m)")
}

func TestCorruptHistory(t *testing.T) {
	s := newTestStorage(t, time.Now())
	require.NoError(t, os.WriteFile(s.historyFile(), []byte("{not json"), 0644))

	_, err := s.GetHistory()
	assert.Error(t, err)
	_, err = s.AppendHistory(entryAt("Push", time.Now(), 1, 1))
	assert.Error(t, err)
}

func TestResetAllData(t *testing.T) {
	s := newTestStorage(t, time.Now())
	require.NoError(t, s.ResetAllData())

	_, err := s.AppendHistory(entryAt("Push", time.Now(), 1, 1))
	require.NoError(t, err)
	require.NoError(t, s.ResetAllData())

	entries, err := s.GetHistory()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
