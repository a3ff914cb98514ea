package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/plan"
	"github.com/adibhanna/coachlix/internal/storage"
)

func TestHistoryViewAndExport(t *testing.T) {
	store, err := storage.NewAt(t.TempDir())
	require.NoError(t, err)

	addr := plan.WorkoutAddress{PlanID: "p", Week: 1, Day: 2, Workout: plan.IndexRef(0)}
	_, err = store.AppendHistory(storage.NewEntry(addr, "Legs", models.WorkoutSummary{
		DurationMinutes: 75, TotalExercises: 5, CompletedExercises: 4, TotalSets: 18, Notes: "heavy day",
	}, time.Now()))
	require.NoError(t, err)

	exportDir := filepath.Join(t.TempDir(), "reports")
	m, err := New(store, exportDir)
	require.NoError(t, err)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "Legs")
	assert.Contains(t, view, "1h 15m")
	assert.Contains(t, view, "Notes: heavy day")
	assert.Contains(t, view, "1 workouts")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	m = next.(Model)
	require.NotNil(t, cmd)
	next, _ = m.Update(cmd())
	m = next.(Model)
	require.True(t, strings.HasPrefix(m.exportMessage, "Report exported to "), m.exportMessage)

	path := strings.TrimPrefix(m.exportMessage, "Report exported to ")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Legs")
}

func TestEmptyHistory(t *testing.T) {
	store, err := storage.NewAt(t.TempDir())
	require.NoError(t, err)

	m, err := New(store, t.TempDir())
	require.NoError(t, err)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Contains(t, next.(Model).View(), "No finished workouts yet.")

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, next.(Model).ShouldQuit())
}
