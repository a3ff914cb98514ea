package planstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/plan"
)

// Store keeps plan documents as JSON rows in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the plan database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening plan db: %w", err)
	}
	// document rewrites are serialized on one connection
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS plans (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		document   TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating plans table: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Get loads a plan document. A missing plan matches plan.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*models.Plan, error) {
	return get(ctx, s.db, id)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func get(ctx context.Context, q queryer, id string) (*models.Plan, error) {
	var doc string
	err := q.QueryRowContext(ctx, `SELECT document FROM plans WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan %s: %w", id, plan.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading plan %s: %w", id, err)
	}

	var p models.Plan
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decoding plan %s: %w", id, err)
	}
	return &p, nil
}

// Put inserts or replaces a plan. A plan without an id gets a new one.
func (s *Store) Put(ctx context.Context, p *models.Plan) (*models.Plan, error) {
	if p.Identifier() == "" {
		p.ID = uuid.New().String()
	}
	if err := put(ctx, s.db, p); err != nil {
		return nil, err
	}
	return p, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func put(ctx context.Context, e execer, p *models.Plan) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding plan %s: %w", p.Identifier(), err)
	}
	_, err = e.ExecContext(ctx,
		`INSERT OR REPLACE INTO plans (id, name, document, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
		p.Identifier(), p.Name, string(doc),
	)
	if err != nil {
		return fmt.Errorf("writing plan %s: %w", p.Identifier(), err)
	}
	return nil
}

// mutate runs fn on the addressed workout inside a transaction and stores
// the document when fn succeeds.
func (s *Store) mutate(ctx context.Context, addr plan.WorkoutAddress, fn func(w *models.Workout) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	p, err := get(ctx, tx, addr.PlanID)
	if err != nil {
		return err
	}
	w, err := plan.ResolveAddress(p, addr)
	if err != nil {
		return fmt.Errorf("plan %s: %w", addr.PlanID, err)
	}
	if err := fn(w); err != nil {
		return err
	}
	if err := put(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateExercise replaces the session data of one exercise.
func (s *Store) UpdateExercise(ctx context.Context, addr plan.ExerciseAddress, update models.ExerciseUpdate) error {
	return s.mutate(ctx, addr.WorkoutAddress, func(w *models.Workout) error {
		ex, err := plan.ResolveExercise(w, addr.Exercise)
		if err != nil {
			return err
		}
		ex.CompletedSets = update.CompletedSets
		ex.IsCompleted = update.IsCompleted
		ex.Notes = update.Notes
		return nil
	})
}

// CompleteWorkout marks the workout done and stores its summary.
func (s *Store) CompleteWorkout(ctx context.Context, addr plan.WorkoutAddress, summary models.WorkoutSummary) error {
	return s.mutate(ctx, addr, func(w *models.Workout) error {
		at := s.now().UTC()
		w.IsCompleted = true
		w.CompletedAt = &at
		w.Summary = &summary
		return nil
	})
}

// AddExercises appends exercises to a workout, assigning ids to those that
// have none, and returns them as stored.
func (s *Store) AddExercises(ctx context.Context, addr plan.WorkoutAddress, exercises []models.Exercise) ([]models.Exercise, error) {
	added := make([]models.Exercise, len(exercises))
	copy(added, exercises)
	for i := range added {
		if added[i].Identifier() == "" {
			added[i].ID = uuid.New().String()
		}
	}

	err := s.mutate(ctx, addr, func(w *models.Workout) error {
		w.Exercises = append(w.Exercises, added...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}
