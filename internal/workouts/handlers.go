package workouts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fittrack/fittrack/internal/apierrors"
)

// Handlers provides HTTP handlers for workout operations
type Handlers struct {
	service WorkoutService
	logger  *zap.Logger
}

// NewHandlers creates new workout handlers
func NewHandlers(service WorkoutService, logger *zap.Logger) *Handlers {
	return &Handlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers all workout-related routes
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		workouts := api.Group("/workouts")
		{
			workouts.POST("", h.CreateWorkout)
			workouts.GET("", h.ListWorkouts)
			workouts.GET("/:workoutId", h.GetWorkout)
			workouts.PUT("/:workoutId", h.ReplaceWorkout)
			workouts.PATCH("/:workoutId", h.UpdateWorkout)
			workouts.DELETE("/:workoutId", h.DeleteWorkout)
		}
	}
}

func workoutIDParam(c *gin.Context) (int64, bool) {
	workoutID, err := strconv.ParseInt(c.Param("workoutId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "workout id must be an integer"})
		return 0, false
	}
	return workoutID, true
}

func (h *Handlers) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	workout, err := h.service.CreateWorkout(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create workout", zap.Int64("user_id", req.UserID), zap.Error(err))
		apierrors.Render(c, err)
		return
	}

	c.JSON(http.StatusCreated, workout)
}

func (h *Handlers) ListWorkouts(c *gin.Context) {
	limit := DefaultListLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil {
			offset = parsed
		}
	}

	var userID *int64
	if userIDStr := c.Query("user_id"); userIDStr != "" {
		parsed, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "user_id must be an integer"})
			return
		}
		userID = &parsed
	}

	workoutList, err := h.service.ListWorkouts(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list workouts", zap.Error(err))
		apierrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, workoutList)
}

func (h *Handlers) GetWorkout(c *gin.Context) {
	workoutID, ok := workoutIDParam(c)
	if !ok {
		return
	}

	workout, err := h.service.GetWorkout(c.Request.Context(), workoutID)
	if err != nil {
		apierrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, workout)
}

func (h *Handlers) ReplaceWorkout(c *gin.Context) {
	workoutID, ok := workoutIDParam(c)
	if !ok {
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	workout, err := h.service.ReplaceWorkout(c.Request.Context(), workoutID, &req)
	if err != nil {
		h.logger.Error("Failed to replace workout", zap.Int64("workout_id", workoutID), zap.Error(err))
		apierrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, workout)
}

func (h *Handlers) UpdateWorkout(c *gin.Context) {
	workoutID, ok := workoutIDParam(c)
	if !ok {
		return
	}

	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	workout, err := h.service.UpdateWorkout(c.Request.Context(), workoutID, &req)
	if err != nil {
		h.logger.Error("Failed to update workout", zap.Int64("workout_id", workoutID), zap.Error(err))
		apierrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, workout)
}

func (h *Handlers) DeleteWorkout(c *gin.Context) {
	workoutID, ok := workoutIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteWorkout(c.Request.Context(), workoutID); err != nil {
		apierrors.Render(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
