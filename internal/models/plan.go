package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Plan is the remote workout-plan document: weeks -> days -> workouts -> exercises.
type Plan struct {
	ID    string `json:"_id,omitempty"`
	AltID string `json:"id,omitempty"`
	Name  string `json:"name"`
	Weeks []Week `json:"weeks"`
}

type Week struct {
	WeekNumber int   `json:"weekNumber"`
	Days       []Day `json:"days"`
}

type Day struct {
	DayNumber int       `json:"dayNumber"`
	Name      string    `json:"name,omitempty"`
	Workouts  []Workout `json:"workouts"`
}

type Workout struct {
	ID                string          `json:"_id,omitempty"`
	AltID             string          `json:"id,omitempty"`
	Name              string          `json:"name"`
	Exercises         []Exercise      `json:"exercises"`
	EstimatedDuration int             `json:"estimatedDuration,omitempty"` // in minutes
	Intensity         string          `json:"intensity,omitempty"`
	IsCompleted       bool            `json:"isCompleted,omitempty"`
	CompletedAt       *time.Time      `json:"completedAt,omitempty"`
	Summary           *WorkoutSummary `json:"summary,omitempty"`
}

type Exercise struct {
	ID           string    `json:"_id,omitempty"`
	AltID        string    `json:"id,omitempty"`
	Name         string    `json:"name"`
	Instructions string    `json:"instructions,omitempty"`
	TargetSets   int       `json:"targetSets,omitempty"`
	TargetReps   RepTarget `json:"targetReps,omitempty"`
	TargetWeight *float64  `json:"targetWeight,omitempty"`
	RestTime     int       `json:"restTime,omitempty"` // in seconds, 0 means unset

	// Session data written back by "Save Progress".
	CompletedSets []SetRecord `json:"completedSets,omitempty"`
	IsCompleted   bool        `json:"isCompleted,omitempty"`
	Notes         string      `json:"notes,omitempty"`
}

// Identifier returns the stored _id, falling back to id.
func (w Workout) Identifier() string {
	if w.ID != "" {
		return w.ID
	}
	return w.AltID
}

func (e Exercise) Identifier() string {
	if e.ID != "" {
		return e.ID
	}
	return e.AltID
}

func (p Plan) Identifier() string {
	if p.ID != "" {
		return p.ID
	}
	return p.AltID
}

// RepTarget holds a rep goal that plans store either as a number (10) or a range ("8-12").
type RepTarget string

func (r *RepTarget) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*r = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*r = RepTarget(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = RepTarget(n.String())
	return nil
}

// MarshalJSON writes whole-number targets back as JSON numbers.
func (r RepTarget) MarshalJSON() ([]byte, error) {
	if n, ok := r.Int(); ok && strconv.Itoa(n) == string(r) {
		return []byte(string(r)), nil
	}
	return json.Marshal(string(r))
}

// Int returns the target as a whole number when it is one.
func (r RepTarget) Int() (int, bool) {
	n, err := strconv.Atoi(string(r))
	if err != nil {
		return 0, false
	}
	return n, true
}
