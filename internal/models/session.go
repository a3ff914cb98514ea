package models

import (
	"time"
)

// SetRecord is one completed set. SetNumber is its 1-based position within the exercise.
type SetRecord struct {
	SetNumber int       `json:"setNumber"`
	Reps      int       `json:"reps"`
	Weight    *float64  `json:"weight"`
	Timestamp time.Time `json:"timestamp"`
}

// ExerciseUpdate is the body of a per-exercise progress save.
type ExerciseUpdate struct {
	CompletedSets []SetRecord `json:"completedSets"`
	IsCompleted   bool        `json:"isCompleted"`
	Notes         string      `json:"notes"`
}

type ExerciseSummary struct {
	Name          string      `json:"name"`
	CompletedSets int         `json:"completedSets"`
	Sets          []SetRecord `json:"sets"`
	IsCompleted   bool        `json:"isCompleted"`
	Notes         string      `json:"notes,omitempty"`
}

// WorkoutSummary is submitted once when a workout is finished.
type WorkoutSummary struct {
	DurationMinutes    int               `json:"durationMinutes"`
	TotalExercises     int               `json:"totalExercises"`
	CompletedExercises int               `json:"completedExercises"`
	TotalSets          int               `json:"totalSets"`
	PerExercise        []ExerciseSummary `json:"perExercise"`
	Notes              string            `json:"notes,omitempty"`
	AverageIntensity   string            `json:"averageIntensity,omitempty"`
}

// HistoryEntry is a finished workout kept in the local journal.
type HistoryEntry struct {
	ID          string         `json:"id"`
	PlanID      string         `json:"plan_id"`
	WeekNumber  int            `json:"week_number"` // plan week
	DayNumber   int            `json:"day_number"`  // plan day
	WorkoutName string         `json:"workout_name"`
	CompletedAt time.Time      `json:"completed_at"`
	Date        string         `json:"date"`  // YYYY-MM-DD format
	Week        int            `json:"week"`  // ISO week of the year
	Month       string         `json:"month"` // YYYY-MM format
	Year        int            `json:"year"`
	Summary     WorkoutSummary `json:"summary"`
}

type DayStats struct {
	Date         string         `json:"date"`
	Workouts     int            `json:"workouts"`
	TotalMinutes int            `json:"total_minutes"`
	TotalSets    int            `json:"total_sets"`
	Entries      []HistoryEntry `json:"entries"`
}

type WeekStats struct {
	Week         int        `json:"week"`
	Year         int        `json:"year"`
	Workouts     int        `json:"workouts"`
	TotalMinutes int        `json:"total_minutes"`
	TotalSets    int        `json:"total_sets"`
	DailyStats   []DayStats `json:"daily_stats"`
}
