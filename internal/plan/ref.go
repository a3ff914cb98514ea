package plan

import (
	"fmt"
	"net/url"
	"strconv"
)

// Ref addresses a workout or exercise inside a plan document either by its
// array position or by its stored identifier.
type Ref struct {
	index   int
	id      string
	byIndex bool
}

func IndexRef(i int) Ref {
	return Ref{index: i, byIndex: true}
}

func IDRef(id string) Ref {
	return Ref{id: id}
}

// ParseRef treats any non-negative integer string as a positional reference
// and everything else as an identifier.
func ParseRef(s string) Ref {
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return IndexRef(n)
	}
	return IDRef(s)
}

// RefFor picks the reference for an element at position i with the given
// stored id. Elements without an id are addressed positionally; a stored id
// is always an id, even when it looks like a number.
func RefFor(id string, i int) Ref {
	if id == "" {
		return IndexRef(i)
	}
	return IDRef(id)
}

func (r Ref) IsIndex() bool { return r.byIndex }

func (r Ref) Index() (int, bool) { return r.index, r.byIndex }

func (r Ref) ID() (string, bool) { return r.id, !r.byIndex }

// PathSegment renders the reference as a URL path segment:
// "index/{n}" for positional refs, the escaped id otherwise.
func (r Ref) PathSegment() string {
	if r.byIndex {
		return "index/" + strconv.Itoa(r.index)
	}
	return url.PathEscape(r.id)
}

func (r Ref) String() string {
	if r.byIndex {
		return fmt.Sprintf("#%d", r.index)
	}
	return r.id
}

// WorkoutAddress is the compound key of a workout inside a plan.
type WorkoutAddress struct {
	PlanID  string
	Week    int
	Day     int
	Workout Ref
}

func (a WorkoutAddress) String() string {
	return fmt.Sprintf("plan %s week %d day %d workout %s", a.PlanID, a.Week, a.Day, a.Workout)
}

// ExerciseAddress extends a WorkoutAddress down to one exercise.
type ExerciseAddress struct {
	WorkoutAddress
	Exercise Ref
}

func (a WorkoutAddress) ExerciseAt(ref Ref) ExerciseAddress {
	return ExerciseAddress{WorkoutAddress: a, Exercise: ref}
}
