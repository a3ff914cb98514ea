package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/plan"
	"github.com/adibhanna/coachlix/internal/session"
)

// ErrRemoteWrite wraps every failed save or complete call.
var ErrRemoteWrite = errors.New("remote write failed")

// PlanService is the remote plan-document API.
type PlanService interface {
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)
	UpdateExercise(ctx context.Context, addr plan.ExerciseAddress, update models.ExerciseUpdate) error
	CompleteWorkout(ctx context.Context, addr plan.WorkoutAddress, summary models.WorkoutSummary) error
	AddExercises(ctx context.Context, addr plan.WorkoutAddress, exercises []models.Exercise) ([]models.Exercise, error)
}

// Session is a loaded workout and the controller driving it.
type Session struct {
	Address    plan.WorkoutAddress
	PlanName   string
	Controller *session.Controller
}

// SaveResult reports how many per-exercise updates went through.
type SaveResult struct {
	Sent   int
	Failed int
}

// Adapter moves session state between the controller and the remote plan.
type Adapter struct {
	svc  PlanService
	opts []session.Option
	log  logrus.FieldLogger
}

// New creates an Adapter. opts are applied to every controller it builds.
func New(svc PlanService, log logrus.FieldLogger, opts ...session.Option) *Adapter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Adapter{svc: svc, opts: opts, log: log}
}

// Plan fetches a plan document.
func (a *Adapter) Plan(ctx context.Context, planID string) (*models.Plan, error) {
	p, err := a.svc.GetPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("loading plan %s: %w", planID, err)
	}
	return p, nil
}

// LoadSession fetches the plan and builds a session for the addressed
// workout. Lookup failures match plan.ErrNotFound.
func (a *Adapter) LoadSession(ctx context.Context, planID string, week, day int, workoutID string) (*Session, error) {
	p, err := a.Plan(ctx, planID)
	if err != nil {
		return nil, err
	}

	workout, ref, err := plan.Locate(p, week, day, workoutID)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	addr := plan.WorkoutAddress{PlanID: planID, Week: week, Day: day, Workout: ref}
	a.log.WithFields(logrus.Fields{
		"address":   addr.String(),
		"workout":   workout.Name,
		"exercises": len(workout.Exercises),
	}).Info("session loaded")

	return &Session{
		Address:    addr,
		PlanName:   p.Name,
		Controller: session.New(*workout, a.opts...),
	}, nil
}

// SaveProgress sends one update per exercise that has sets, a completion
// flag or notes. Every update is attempted; failures do not stop the rest
// and never roll back local state.
func (a *Adapter) SaveProgress(ctx context.Context, s *Session) (SaveResult, error) {
	var (
		result SaveResult
		errs   error
	)
	for _, p := range s.Controller.PendingProgress() {
		addr := s.Address.ExerciseAt(p.Ref)
		if err := a.svc.UpdateExercise(ctx, addr, p.Update); err != nil {
			result.Failed++
			a.log.WithError(err).WithField("exercise", p.Name).Warn("saving exercise progress failed")
			errs = multierr.Append(errs, fmt.Errorf("exercise %q: %w", p.Name, err))
			continue
		}
		result.Sent++
	}

	if errs != nil {
		return result, fmt.Errorf("%w: saving progress (%d of %d failed): %w", ErrRemoteWrite, result.Failed, result.Sent+result.Failed, errs)
	}
	a.log.WithField("exercises", result.Sent).Info("progress saved")
	return result, nil
}

// CompleteWorkout submits the session summary. On error the session stays
// usable so the caller can retry.
func (a *Adapter) CompleteWorkout(ctx context.Context, s *Session) (models.WorkoutSummary, error) {
	summary := s.Controller.Summary()
	if err := a.svc.CompleteWorkout(ctx, s.Address, summary); err != nil {
		return summary, fmt.Errorf("%w: completing workout: %w", ErrRemoteWrite, err)
	}
	a.log.WithFields(logrus.Fields{
		"address":   s.Address.String(),
		"minutes":   summary.DurationMinutes,
		"completed": summary.CompletedExercises,
		"sets":      summary.TotalSets,
	}).Info("workout completed")
	return summary, nil
}

// AddExercises stores new exercises on the remote workout and appends the
// stored versions to the running session.
func (a *Adapter) AddExercises(ctx context.Context, s *Session, exercises []models.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	added, err := a.svc.AddExercises(ctx, s.Address, exercises)
	if err != nil {
		return fmt.Errorf("%w: adding exercises: %w", ErrRemoteWrite, err)
	}
	s.Controller.Append(added...)
	return nil
}
