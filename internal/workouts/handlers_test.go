package workouts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handlers := NewHandlers(NewService(NewInMemoryStore()), zap.NewNop())
	router := gin.New()
	handlers.RegisterRoutes(router)
	return router
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		buf, _ := json.Marshal(body)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func runPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":             "Run",
		"date":             "2024-01-01",
		"duration_minutes": 30,
		"intensity":        "medium",
		"workout_type":     "cardio",
		"user_id":          1,
	}
}

func TestCreateWorkoutAssignsID(t *testing.T) {
	router := newTestRouter(t)

	rr := performJSON(router, http.MethodPost, "/api/workouts", runPayload())
	require.Equal(t, http.StatusCreated, rr.Code)

	var created Workout
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "Run", created.Name)
	assert.Equal(t, "2024-01-01", created.Date)
	assert.Equal(t, 30, created.DurationMinutes)
	assert.Equal(t, "medium", created.Intensity)
	assert.Equal(t, "cardio", created.WorkoutType)
	assert.Nil(t, created.CaloriesBurned)
}

func TestPatchChangesOnlySuppliedFields(t *testing.T) {
	router := newTestRouter(t)

	rr := performJSON(router, http.MethodPost, "/api/workouts", runPayload())
	require.Equal(t, http.StatusCreated, rr.Code)
	var created Workout
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))

	rr = performJSON(router, http.MethodPatch, "/api/workouts/1", map[string]interface{}{
		"duration_minutes": 45,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var updated Workout
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&updated))
	assert.Equal(t, 45, updated.DurationMinutes)

	// All other fields identical to creation
	created.DurationMinutes = 45
	assert.Equal(t, created, updated)
}

func TestWorkoutTypeDefaultsToOther(t *testing.T) {
	router := newTestRouter(t)

	payload := runPayload()
	delete(payload, "workout_type")
	rr := performJSON(router, http.MethodPost, "/api/workouts", payload)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created Workout
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.Equal(t, WorkoutTypeOther, created.WorkoutType)
}

func TestListWorkoutsFiltersByUser(t *testing.T) {
	router := newTestRouter(t)

	for _, userID := range []int{1, 2, 1} {
		payload := runPayload()
		payload["user_id"] = userID
		rr := performJSON(router, http.MethodPost, "/api/workouts", payload)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := performJSON(router, http.MethodGet, "/api/workouts?user_id=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var page []Workout
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&page))
	require.Len(t, page, 2)
	assert.Equal(t, int64(1), page[0].ID)
	assert.Equal(t, int64(3), page[1].ID)
}

func TestReplaceKeepsCaloriesBurned(t *testing.T) {
	router := newTestRouter(t)

	rr := performJSON(router, http.MethodPost, "/api/workouts", runPayload())
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = performJSON(router, http.MethodPatch, "/api/workouts/1", map[string]interface{}{
		"calories_burned": 250,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	replacement := runPayload()
	replacement["name"] = "Evening Run"
	rr = performJSON(router, http.MethodPut, "/api/workouts/1", replacement)
	require.Equal(t, http.StatusOK, rr.Code)

	var replaced Workout
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&replaced))
	assert.Equal(t, "Evening Run", replaced.Name)
	require.NotNil(t, replaced.CaloriesBurned)
	assert.Equal(t, 250, *replaced.CaloriesBurned)
}

func TestCreateWorkoutRejectsUnknownIntensity(t *testing.T) {
	router := newTestRouter(t)

	payload := runPayload()
	payload["intensity"] = "extreme"
	rr := performJSON(router, http.MethodPost, "/api/workouts", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestCreateWorkoutRejectsOutOfRangeDuration(t *testing.T) {
	router := newTestRouter(t)

	payload := runPayload()
	payload["duration_minutes"] = 601
	rr := performJSON(router, http.MethodPost, "/api/workouts", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestDeleteWorkoutIsNotIdempotent(t *testing.T) {
	router := newTestRouter(t)

	rr := performJSON(router, http.MethodPost, "/api/workouts", runPayload())
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = performJSON(router, http.MethodDelete, "/api/workouts/1", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = performJSON(router, http.MethodDelete, "/api/workouts/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetMissingWorkout(t *testing.T) {
	router := newTestRouter(t)

	rr := performJSON(router, http.MethodGet, "/api/workouts/5", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "Workout not found", body["detail"])
}
