package plan

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/adibhanna/coachlix/internal/models"
)

// ErrNotFound is matched by every lookup failure in a plan document.
var ErrNotFound = errors.New("not found")

// FindWeek returns a pointer into p so callers may mutate the document in place.
func FindWeek(p *models.Plan, weekNumber int) (*models.Week, error) {
	for i := range p.Weeks {
		if p.Weeks[i].WeekNumber == weekNumber {
			return &p.Weeks[i], nil
		}
	}
	return nil, fmt.Errorf("week %d: %w", weekNumber, ErrNotFound)
}

func FindDay(p *models.Plan, weekNumber, dayNumber int) (*models.Day, error) {
	week, err := FindWeek(p, weekNumber)
	if err != nil {
		return nil, err
	}
	for i := range week.Days {
		if week.Days[i].DayNumber == dayNumber {
			return &week.Days[i], nil
		}
	}
	return nil, fmt.Errorf("week %d day %d: %w", weekNumber, dayNumber, ErrNotFound)
}

// Locate resolves a caller-supplied workout id within (week, day).
// Lookup order:
//  1. workoutID parses as an integer in range: array position
//  2. _id / id equality
//  3. string equality with an array position
//
// The returned Ref records how the workout was found and is the one to use
// when writing back.
func Locate(p *models.Plan, weekNumber, dayNumber int, workoutID string) (*models.Workout, Ref, error) {
	day, err := FindDay(p, weekNumber, dayNumber)
	if err != nil {
		return nil, Ref{}, err
	}

	if n, err := strconv.Atoi(workoutID); err == nil && n >= 0 && n < len(day.Workouts) {
		return &day.Workouts[n], IndexRef(n), nil
	}

	if workoutID != "" {
		for i := range day.Workouts {
			w := &day.Workouts[i]
			if w.ID == workoutID || w.AltID == workoutID {
				return w, IDRef(workoutID), nil
			}
		}
	}

	for i := range day.Workouts {
		if strconv.Itoa(i) == workoutID {
			return &day.Workouts[i], IndexRef(i), nil
		}
	}

	return nil, Ref{}, fmt.Errorf("week %d day %d workout %q: %w", weekNumber, dayNumber, workoutID, ErrNotFound)
}

// ResolveWorkout finds the workout a Ref points at within day.
func ResolveWorkout(day *models.Day, ref Ref) (*models.Workout, error) {
	if i, ok := ref.Index(); ok {
		if i < 0 || i >= len(day.Workouts) {
			return nil, fmt.Errorf("workout %s: %w", ref, ErrNotFound)
		}
		return &day.Workouts[i], nil
	}
	id, _ := ref.ID()
	for i := range day.Workouts {
		if day.Workouts[i].ID == id || day.Workouts[i].AltID == id {
			return &day.Workouts[i], nil
		}
	}
	return nil, fmt.Errorf("workout %s: %w", ref, ErrNotFound)
}

func ResolveExercise(w *models.Workout, ref Ref) (*models.Exercise, error) {
	if i, ok := ref.Index(); ok {
		if i < 0 || i >= len(w.Exercises) {
			return nil, fmt.Errorf("exercise %s: %w", ref, ErrNotFound)
		}
		return &w.Exercises[i], nil
	}
	id, _ := ref.ID()
	for i := range w.Exercises {
		if w.Exercises[i].ID == id || w.Exercises[i].AltID == id {
			return &w.Exercises[i], nil
		}
	}
	return nil, fmt.Errorf("exercise %s: %w", ref, ErrNotFound)
}

// ResolveAddress walks p down to the workout addressed by a.
func ResolveAddress(p *models.Plan, a WorkoutAddress) (*models.Workout, error) {
	day, err := FindDay(p, a.Week, a.Day)
	if err != nil {
		return nil, err
	}
	return ResolveWorkout(day, a.Workout)
}
