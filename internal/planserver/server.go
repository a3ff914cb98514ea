package planserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/plan"
)

// Store is the plan-document storage the server exposes.
type Store interface {
	Get(ctx context.Context, id string) (*models.Plan, error)
	Put(ctx context.Context, p *models.Plan) (*models.Plan, error)
	UpdateExercise(ctx context.Context, addr plan.ExerciseAddress, update models.ExerciseUpdate) error
	CompleteWorkout(ctx context.Context, addr plan.WorkoutAddress, summary models.WorkoutSummary) error
	AddExercises(ctx context.Context, addr plan.WorkoutAddress, exercises []models.Exercise) ([]models.Exercise, error)
	Ping(ctx context.Context) error
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    Store
	log      logrus.FieldLogger
	token    string
	metrics  *Metrics
	gatherer prometheus.Gatherer
	router   chi.Router
}

// New creates a Server with all routes configured. Metrics are served from
// gatherer on /metrics.
func New(store Store, token string, metrics *Metrics, gatherer prometheus.Gatherer, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{
		store:    store,
		log:      log,
		token:    token,
		metrics:  metrics,
		gatherer: gatherer,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(RequestMetrics(s.metrics))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	s.router.Route("/api/plans/{planID}", func(r chi.Router) {
		r.Use(BearerAuth(s.token))
		r.Get("/", s.handleGetPlan)
		r.Put("/", s.handlePutPlan)

		r.Route("/weeks/{week}/days/{day}/workouts", func(r chi.Router) {
			r.Route("/index/{workoutIndex}", s.workoutRoutes)
			r.Route("/{workoutID}", s.workoutRoutes)
		})
	})
}

func (s *Server) workoutRoutes(r chi.Router) {
	r.Post("/complete", s.handleCompleteWorkout)
	r.Post("/exercises", s.handleAddExercises)
	r.Put("/exercises/index/{exerciseIndex}", s.handleUpdateExercise)
	r.Put("/exercises/{exerciseID}", s.handleUpdateExercise)
}
