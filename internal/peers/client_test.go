package peers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetchWorkoutsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/workouts", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("user_id"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id":7}]`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "http://127.0.0.1:1", zap.NewNop())

	body, err := client.FetchWorkouts(context.Background(), 42)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":7}]`, string(body))
}

func TestFetchGoalsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/goals", r.URL.Path)
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := NewClient("http://127.0.0.1:1", srv.URL, zap.NewNop())

	body, err := client.FetchGoals(context.Background(), 1)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body))
}

func TestApplicationFailureEmbedsPeerBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workout service on fire", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, zap.NewNop())

	_, err := client.FetchWorkouts(context.Background(), 1)
	require.Error(t, err)

	var callErr *CallError
	require.True(t, errors.As(err, &callErr))
	assert.False(t, callErr.Transport)
	assert.Equal(t, http.StatusInternalServerError, callErr.Status)
	assert.Contains(t, callErr.Body, "workout service on fire")
}

func TestTransportFailure(t *testing.T) {
	// Nothing listens on this address
	client := NewClient("http://127.0.0.1:1", "http://127.0.0.1:1", zap.NewNop())

	_, err := client.FetchWorkouts(context.Background(), 1)
	require.Error(t, err)

	var callErr *CallError
	require.True(t, errors.As(err, &callErr))
	assert.True(t, callErr.Transport)
	assert.Error(t, callErr.Cause)
}
