package workouts

import (
	"context"
)

// WorkoutStore defines the interface for workout storage operations
type WorkoutStore interface {
	CreateWorkout(ctx context.Context, req *CreateWorkoutRequest) (*Workout, error)
	ListWorkouts(ctx context.Context, userID *int64, limit, offset int) ([]Workout, error)
	GetWorkout(ctx context.Context, workoutID int64) (*Workout, error)
	ReplaceWorkout(ctx context.Context, workoutID int64, req *CreateWorkoutRequest) (*Workout, error)
	UpdateWorkout(ctx context.Context, workoutID int64, req *UpdateWorkoutRequest) (*Workout, error)
	DeleteWorkout(ctx context.Context, workoutID int64) error
}

// WorkoutService defines the interface for workout service operations
type WorkoutService interface {
	WorkoutStore
}
