package planserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/plan"
)

type addExercisesBody struct {
	Exercises []models.Exercise `json:"exercises"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	planID, err := planIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := s.store.Get(r.Context(), planID)
	if err != nil {
		s.writeStoreError(w, "get plan", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePutPlan(w http.ResponseWriter, r *http.Request) {
	var p models.Plan
	err := json.NewDecoder(r.Body).Decode(&p)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if p.ID, err = planIDParam(r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := s.store.Put(r.Context(), &p)
	s.metrics.write("put_plan", err)
	if err != nil {
		s.writeStoreError(w, "put plan", err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	addr, err := workoutAddress(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	exRef, err := refParam(r, "exerciseIndex", "exerciseID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var update models.ExerciseUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	err = s.store.UpdateExercise(r.Context(), addr.ExerciseAt(exRef), update)
	s.metrics.write("update_exercise", err)
	if err != nil {
		s.writeStoreError(w, "update exercise", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	addr, err := workoutAddress(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var summary models.WorkoutSummary
	if err := json.NewDecoder(r.Body).Decode(&summary); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	err = s.store.CompleteWorkout(r.Context(), addr, summary)
	s.metrics.write("complete_workout", err)
	if err != nil {
		s.writeStoreError(w, "complete workout", err)
		return
	}
	s.log.WithField("address", addr.String()).Info("workout completed")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAddExercises(w http.ResponseWriter, r *http.Request) {
	addr, err := workoutAddress(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body addExercisesBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if len(body.Exercises) == 0 {
		writeError(w, http.StatusBadRequest, "exercises must not be empty")
		return
	}

	added, err := s.store.AddExercises(r.Context(), addr, body.Exercises)
	s.metrics.write("add_exercises", err)
	if err != nil {
		s.writeStoreError(w, "add exercises", err)
		return
	}
	writeJSON(w, http.StatusCreated, addExercisesBody{Exercises: added})
}

func workoutAddress(r *http.Request) (plan.WorkoutAddress, error) {
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		return plan.WorkoutAddress{}, fmt.Errorf("week must be a number")
	}
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		return plan.WorkoutAddress{}, fmt.Errorf("day must be a number")
	}
	ref, err := refParam(r, "workoutIndex", "workoutID")
	if err != nil {
		return plan.WorkoutAddress{}, err
	}
	planID, err := planIDParam(r)
	if err != nil {
		return plan.WorkoutAddress{}, err
	}
	return plan.WorkoutAddress{
		PlanID:  planID,
		Week:    week,
		Day:     day,
		Workout: ref,
	}, nil
}

// planIDParam returns the unescaped plan id; chi matches on the raw path
// when it holds escapes.
func planIDParam(r *http.Request) (string, error) {
	id, err := url.PathUnescape(chi.URLParam(r, "planID"))
	if err != nil || id == "" {
		return "", fmt.Errorf("invalid planID")
	}
	return id, nil
}

// refParam reads an "index/{n}" or "{id}" path segment. Ids are taken
// literally, even when numeric.
func refParam(r *http.Request, indexKey, idKey string) (plan.Ref, error) {
	if raw := chi.URLParam(r, indexKey); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return plan.Ref{}, fmt.Errorf("%s must be a non-negative number", indexKey)
		}
		return plan.IndexRef(n), nil
	}
	id, err := url.PathUnescape(chi.URLParam(r, idKey))
	if err != nil || id == "" {
		return plan.Ref{}, fmt.Errorf("invalid %s", idKey)
	}
	return plan.IDRef(id), nil
}

func (s *Server) writeStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, plan.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.log.WithError(err).Errorf("%s failed", op)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
