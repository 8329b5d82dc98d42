package users

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fittrack/fittrack/internal/apierrors"
	"github.com/fittrack/fittrack/internal/observability"
	"github.com/fittrack/fittrack/internal/peers"
)

// Handlers provides HTTP handlers for user operations, including the proxy
// and aggregation endpoints that call the Workout and Goals services.
type Handlers struct {
	service UserService
	peers   *peers.Client
	logger  *zap.Logger
}

// NewHandlers creates new user handlers
func NewHandlers(service UserService, peersClient *peers.Client, logger *zap.Logger) *Handlers {
	return &Handlers{
		service: service,
		peers:   peersClient,
		logger:  logger,
	}
}

// RegisterRoutes registers all user-related routes
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", h.CreateUser)
			users.GET("", h.ListUsers)
			users.GET("/:userId", h.GetUser)
			users.PUT("/:userId", h.ReplaceUser)
			users.PATCH("/:userId", h.UpdateUser)
			users.DELETE("/:userId", h.DeleteUser)
		}

		proxy := api.Group("/proxy")
		{
			proxy.GET("/workouts/:userId", h.ProxyWorkouts)
			proxy.GET("/goals/:userId", h.ProxyGoals)
		}

		api.GET("/user-summary/:userId", h.UserSummary)
	}
}

func userIDParam(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "user_id must be an integer"})
		return 0, false
	}
	return userID, true
}

func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		apierrors.Render(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handlers) ListUsers(c *gin.Context) {
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

	userList, err := h.service.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
		apierrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, userList)
}

func (h *Handlers) GetUser(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		apierrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handlers) ReplaceUser(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	user, err := h.service.ReplaceUser(c.Request.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Failed to replace user", zap.Int64("user_id", userID), zap.Error(err))
		apierrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handlers) UpdateUser(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Failed to update user", zap.Int64("user_id", userID), zap.Error(err))
		apierrors.Render(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handlers) DeleteUser(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), userID); err != nil {
		apierrors.Render(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ProxyWorkouts validates the user exists locally, calls the Workout service
// and returns its response unmodified.
func (h *Handlers) ProxyWorkouts(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if _, err := h.service.GetUser(ctx, userID); err != nil {
		apierrors.Render(c, err)
		return
	}

	workouts, err := h.peers.FetchWorkouts(ctx, userID)
	if err != nil {
		apierrors.Render(c, classifyPeerError(err, "workout",
			"Error contacting workout service", "Workout service error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":     "user_service",
		"workouts": workouts,
	})
}

// ProxyGoals validates the user exists locally, calls the Goals service and
// returns its response unmodified.
func (h *Handlers) ProxyGoals(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if _, err := h.service.GetUser(ctx, userID); err != nil {
		apierrors.Render(c, err)
		return
	}

	goals, err := h.peers.FetchGoals(ctx, userID)
	if err != nil {
		apierrors.Render(c, classifyPeerError(err, "goals",
			"Error contacting goals service", "Goals service error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":  "user_service",
		"goals": goals,
	})
}

// UserSummary verifies the user exists, calls the Workout and Goals services
// sequentially, and assembles one combined payload. If either downstream call
// fails the whole aggregation fails; no partial result is returned.
func (h *Handlers) UserSummary(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	requestID := uuid.New().String()
	ctx := c.Request.Context()

	user, err := h.service.GetUser(ctx, userID)
	if err != nil {
		apierrors.Render(c, err)
		return
	}

	workouts, err := h.peers.FetchWorkouts(ctx, userID)
	if err != nil {
		h.logger.Warn("User summary aggregation failed on workout service",
			zap.String("request_id", requestID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		apierrors.Render(c, classifyPeerError(err, "workout",
			"Error contacting downstream services", "Downstream service failed"))
		return
	}

	goals, err := h.peers.FetchGoals(ctx, userID)
	if err != nil {
		h.logger.Warn("User summary aggregation failed on goals service",
			zap.String("request_id", requestID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		apierrors.Render(c, classifyPeerError(err, "goals",
			"Error contacting downstream services", "Downstream service failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"workouts": workouts,
		"goals":    goals,
	})
}

// classifyPeerError maps a peer call failure to a BadGateway error. Transport
// failures embed the underlying transport error, application failures embed
// the peer's response body verbatim.
func classifyPeerError(err error, peer, transportMsg, appMsg string) error {
	var callErr *peers.CallError
	if errors.As(err, &callErr) {
		if callErr.Transport {
			observability.RecordDownstreamFailure(peer, "transport")
			return apierrors.BadGateway(fmt.Sprintf("%s: %v", transportMsg, callErr.Cause), callErr)
		}
		observability.RecordDownstreamFailure(peer, "application")
		return apierrors.BadGateway(fmt.Sprintf("%s: %s", appMsg, callErr.Body), callErr)
	}
	return apierrors.BadGateway(err.Error(), err)
}
