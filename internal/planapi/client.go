package planapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/plan"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("planapi: %s %s returned %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Is lets a 404 match plan.ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == plan.ErrNotFound && e.Code == http.StatusNotFound
}

// Client calls the plan-document REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewClient creates a Client for baseURL. token is sent as a bearer token
// when non-empty.
func NewClient(baseURL, token string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func PlanPath(planID string) string {
	return "/plans/" + url.PathEscape(planID)
}

func WorkoutPath(a plan.WorkoutAddress) string {
	return fmt.Sprintf("%s/weeks/%d/days/%d/workouts/%s", PlanPath(a.PlanID), a.Week, a.Day, a.Workout.PathSegment())
}

func ExercisePath(a plan.ExerciseAddress) string {
	return WorkoutPath(a.WorkoutAddress) + "/exercises/" + a.Exercise.PathSegment()
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("planapi: marshal %s body: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("planapi: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("planapi: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("planapi: read body: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("plan api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("planapi: decode %s: %w", path, err)
	}
	return nil
}

// GetPlan fetches the full plan document.
func (c *Client) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	if planID == "" {
		return nil, errors.New("planapi: empty plan id")
	}
	var p models.Plan
	if err := c.do(ctx, http.MethodGet, PlanPath(planID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateExercise saves one exercise's session data.
func (c *Client) UpdateExercise(ctx context.Context, addr plan.ExerciseAddress, update models.ExerciseUpdate) error {
	return c.do(ctx, http.MethodPut, ExercisePath(addr), update, nil)
}

// CompleteWorkout submits the session summary and ends the workout server-side.
func (c *Client) CompleteWorkout(ctx context.Context, addr plan.WorkoutAddress, summary models.WorkoutSummary) error {
	return c.do(ctx, http.MethodPost, WorkoutPath(addr)+"/complete", summary, nil)
}

type addExercisesRequest struct {
	Exercises []models.Exercise `json:"exercises"`
}

type addExercisesResponse struct {
	Exercises []models.Exercise `json:"exercises"`
}

// AddExercises appends exercises to a workout and returns them as stored,
// with any server-assigned ids. If the server returns no body the input is
// echoed back.
func (c *Client) AddExercises(ctx context.Context, addr plan.WorkoutAddress, exercises []models.Exercise) ([]models.Exercise, error) {
	var resp addExercisesResponse
	if err := c.do(ctx, http.MethodPost, WorkoutPath(addr)+"/exercises", addExercisesRequest{Exercises: exercises}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Exercises) == 0 {
		return exercises, nil
	}
	return resp.Exercises, nil
}
