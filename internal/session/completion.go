package session

import (
	"math"
	"sort"
)

// CompletionTracker is the set of completed exercise indices.
type CompletionTracker struct {
	total int
	done  map[int]struct{}
}

func NewCompletionTracker(total int) *CompletionTracker {
	return &CompletionTracker{
		total: total,
		done:  make(map[int]struct{}),
	}
}

// Complete marks i done and reports whether it was newly completed.
func (t *CompletionTracker) Complete(i int) bool {
	if i < 0 || i >= t.total {
		return false
	}
	if _, ok := t.done[i]; ok {
		return false
	}
	t.done[i] = struct{}{}
	return true
}

func (t *CompletionTracker) IsCompleted(i int) bool {
	_, ok := t.done[i]
	return ok
}

func (t *CompletionTracker) Count() int { return len(t.done) }

func (t *CompletionTracker) Total() int { return t.total }

// Progress is the rounded completion percentage, 0 for an empty workout.
func (t *CompletionTracker) Progress() int {
	if t.total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(len(t.done)) / float64(t.total)))
}

func (t *CompletionTracker) IsWorkoutComplete() bool {
	return len(t.done) == t.total
}

func (t *CompletionTracker) Indices() []int {
	out := make([]int, 0, len(t.done))
	for i := range t.done {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (t *CompletionTracker) grow(n int) {
	if n > 0 {
		t.total += n
	}
}
