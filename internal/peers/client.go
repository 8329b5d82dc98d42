package peers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client issues synchronous GET calls to the sibling Workout and Goals
// services. Base URLs are injected at construction so tests can point the
// client at fake peers.
type Client struct {
	workoutBaseURL string
	goalsBaseURL   string
	httpClient     *http.Client
	logger         *zap.Logger
}

// NewClient creates a peer client with the given base URLs
func NewClient(workoutBaseURL, goalsBaseURL string, logger *zap.Logger) *Client {
	return &Client{
		workoutBaseURL: workoutBaseURL,
		goalsBaseURL:   goalsBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// CallError describes a failed downstream call. Exactly one of the two
// failure kinds applies: a transport failure (no response was received) or an
// application failure (the peer responded with a non-success status).
type CallError struct {
	Transport bool
	Status    int
	Body      string
	Cause     error
}

func (e *CallError) Error() string {
	if e.Transport {
		return fmt.Sprintf("transport failure: %v", e.Cause)
	}
	return fmt.Sprintf("peer returned status %d: %s", e.Status, e.Body)
}

func (e *CallError) Unwrap() error {
	return e.Cause
}

// FetchWorkouts retrieves the workouts for a user from the Workout service
func (c *Client) FetchWorkouts(ctx context.Context, userID int64) (json.RawMessage, error) {
	return c.fetch(ctx, c.workoutBaseURL, "/workouts", userID)
}

// FetchGoals retrieves the goals for a user from the Goals service. The
// response shape is an external contract and is never decoded.
func (c *Client) FetchGoals(ctx context.Context, userID int64) (json.RawMessage, error) {
	return c.fetch(ctx, c.goalsBaseURL, "/goals", userID)
}

func (c *Client) fetch(ctx context.Context, baseURL, path string, userID int64) (json.RawMessage, error) {
	url := fmt.Sprintf("%s%s?user_id=%d", baseURL, path, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &CallError{Transport: true, Cause: err}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Peer call failed before a response was received",
			zap.String("url", url),
			zap.Error(err))
		return nil, &CallError{Transport: true, Cause: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &CallError{Transport: true, Cause: err}
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("Peer responded with an error status",
			zap.String("url", url),
			zap.Int("status", res.StatusCode))
		return nil, &CallError{Status: res.StatusCode, Body: string(body)}
	}

	return json.RawMessage(body), nil
}
