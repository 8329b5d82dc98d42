package workouts

// Workout intensity levels
const (
	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"
)

// WorkoutTypeOther is the default workout type when none is supplied
const WorkoutTypeOther = "other"

// Workout represents one logged training session belonging to a user. The
// user reference is established at the edge and not re-verified against the
// Users service.
type Workout struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"user_id"`
	Name            string  `json:"name"`
	Date            string  `json:"date"`
	DurationMinutes int     `json:"duration_minutes"`
	Intensity       string  `json:"intensity"`
	WorkoutType     string  `json:"workout_type"`
	Notes           *string `json:"notes"`
	CaloriesBurned  *int    `json:"calories_burned"`
}

// CreateWorkoutRequest is the payload for creating a workout. The same shape
// is used for full replacement (PUT); calories_burned is not part of it and
// stays untouched on replace.
type CreateWorkoutRequest struct {
	UserID          int64   `json:"user_id" binding:"required"`
	Name            string  `json:"name" binding:"required,min=1,max=100"`
	Date            string  `json:"date" binding:"required,datetime=2006-01-02"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gte=1,lte=600"`
	Intensity       string  `json:"intensity" binding:"required,oneof=low medium high"`
	WorkoutType     string  `json:"workout_type" binding:"omitempty,oneof=cardio strength mobility mixed other"`
	Notes           *string `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateWorkoutRequest is the payload for partial update. Only fields present
// in the request body are applied; a nil pointer means "leave unchanged".
type UpdateWorkoutRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=100"`
	Date            *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,gte=1,lte=600"`
	Intensity       *string `json:"intensity" binding:"omitempty,oneof=low medium high"`
	WorkoutType     *string `json:"workout_type" binding:"omitempty,oneof=cardio strength mobility mixed other"`
	Notes           *string `json:"notes" binding:"omitempty,max=1000"`
	CaloriesBurned  *int    `json:"calories_burned" binding:"omitempty,gte=0,lte=10000"`
}
