package session

import (
	"strconv"
	"strings"
	"time"

	"github.com/adibhanna/coachlix/internal/models"
)

// SetLedger is the append-only log of completed sets, keyed by exercise index.
type SetLedger struct {
	sets map[int][]models.SetRecord
	now  func() time.Time
}

func NewSetLedger(now func() time.Time) *SetLedger {
	if now == nil {
		now = time.Now
	}
	return &SetLedger{
		sets: make(map[int][]models.SetRecord),
		now:  now,
	}
}

// Record appends a set. Reps must be positive; anything else is dropped.
func (l *SetLedger) Record(exercise, reps int, weight *float64) (models.SetRecord, bool) {
	if reps <= 0 {
		return models.SetRecord{}, false
	}
	if weight != nil {
		w := *weight
		weight = &w
	}
	rec := models.SetRecord{
		SetNumber: len(l.sets[exercise]) + 1,
		Reps:      reps,
		Weight:    weight,
		Timestamp: l.now().UTC(),
	}
	l.sets[exercise] = append(l.sets[exercise], rec)
	return rec, true
}

// restore seeds previously saved sets, renumbering them in order.
func (l *SetLedger) restore(exercise int, sets []models.SetRecord) {
	for _, s := range sets {
		s.SetNumber = len(l.sets[exercise]) + 1
		l.sets[exercise] = append(l.sets[exercise], s)
	}
}

// SetsFor returns a copy of the sets recorded for exercise.
func (l *SetLedger) SetsFor(exercise int) []models.SetRecord {
	sets := l.sets[exercise]
	out := make([]models.SetRecord, len(sets))
	copy(out, sets)
	return out
}

func (l *SetLedger) Count(exercise int) int {
	return len(l.sets[exercise])
}

func (l *SetLedger) Total() int {
	total := 0
	for _, sets := range l.sets {
		total += len(sets)
	}
	return total
}

// ParseReps converts raw reps input. Empty, non-numeric, zero and negative
// values are rejected.
func ParseReps(input string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ParseWeight converts raw weight input. Weight is optional, so empty or
// unparseable input yields nil.
func ParseWeight(input string) *float64 {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	w, err := strconv.ParseFloat(strings.ReplaceAll(input, ",", "."), 64)
	if err != nil || w < 0 {
		return nil
	}
	return &w
}
