package workouts

import (
	"context"
)

const (
	// DefaultListLimit is used when the caller does not supply a limit
	DefaultListLimit = 10
	// MaxListLimit is the maximum page size; larger limits are clamped
	MaxListLimit = 100
)

// ServiceImpl implements the WorkoutService interface
type ServiceImpl struct {
	store WorkoutStore
}

// NewService creates a new workout service instance
func NewService(store WorkoutStore) *ServiceImpl {
	return &ServiceImpl{
		store: store,
	}
}

// CreateWorkout creates a new workout, defaulting the workout type when the
// payload leaves it empty.
func (s *ServiceImpl) CreateWorkout(ctx context.Context, req *CreateWorkoutRequest) (*Workout, error) {
	if req.WorkoutType == "" {
		req.WorkoutType = WorkoutTypeOther
	}
	return s.store.CreateWorkout(ctx, req)
}

// ListWorkouts returns a page of workouts ordered by id ascending, optionally
// filtered by user_id.
func (s *ServiceImpl) ListWorkouts(ctx context.Context, userID *int64, limit, offset int) ([]Workout, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListWorkouts(ctx, userID, limit, offset)
}

// GetWorkout retrieves a workout by id
func (s *ServiceImpl) GetWorkout(ctx context.Context, workoutID int64) (*Workout, error) {
	return s.store.GetWorkout(ctx, workoutID)
}

// ReplaceWorkout overwrites every mutable field of an existing workout
func (s *ServiceImpl) ReplaceWorkout(ctx context.Context, workoutID int64, req *CreateWorkoutRequest) (*Workout, error) {
	if req.WorkoutType == "" {
		req.WorkoutType = WorkoutTypeOther
	}
	return s.store.ReplaceWorkout(ctx, workoutID, req)
}

// UpdateWorkout applies only the fields present in the request
func (s *ServiceImpl) UpdateWorkout(ctx context.Context, workoutID int64, req *UpdateWorkoutRequest) (*Workout, error) {
	return s.store.UpdateWorkout(ctx, workoutID, req)
}

// DeleteWorkout deletes a workout by id
func (s *ServiceImpl) DeleteWorkout(ctx context.Context, workoutID int64) error {
	return s.store.DeleteWorkout(ctx, workoutID)
}
