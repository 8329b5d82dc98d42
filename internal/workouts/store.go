package workouts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/fittrack/fittrack/internal/apierrors"
	"github.com/fittrack/fittrack/internal/storage"
)

// WorkoutSchema represents the workouts table schema in PostgreSQL
type WorkoutSchema struct {
	bun.BaseModel `bun:"table:workouts,alias:w"`

	ID              int64   `bun:"id,pk,autoincrement" json:"id"`
	UserID          int64   `bun:"user_id,notnull" json:"user_id"`
	Name            string  `bun:"name,notnull" json:"name"`
	Date            string  `bun:"date,notnull" json:"date"`
	DurationMinutes int     `bun:"duration_minutes,notnull" json:"duration_minutes"`
	Intensity       string  `bun:"intensity,notnull" json:"intensity"`
	WorkoutType     string  `bun:"workout_type,notnull" json:"workout_type"`
	Notes           *string `bun:"notes" json:"notes,omitempty"`
	CaloriesBurned  *int    `bun:"calories_burned" json:"calories_burned,omitempty"`
}

// PostgresStore implements the WorkoutStore interface with PostgreSQL storage
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new workout store instance
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// CreateWorkout persists a new workout. The identity is assigned by the
// database; the user reference is not checked against the Users service.
func (s *PostgresStore) CreateWorkout(ctx context.Context, req *CreateWorkoutRequest) (*Workout, error) {
	schema := &WorkoutSchema{
		UserID:          req.UserID,
		Name:            req.Name,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		WorkoutType:     req.WorkoutType,
		Notes:           req.Notes,
	}

	err := storage.RunWrite(ctx, s.db, "Workout creation failed", func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(schema).
			Returning("*").
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return schemaToWorkout(schema), nil
}

// ListWorkouts returns workouts ordered by id ascending, optionally filtered
// by user_id, sliced by offset/limit.
func (s *PostgresStore) ListWorkouts(ctx context.Context, userID *int64, limit, offset int) ([]Workout, error) {
	var schemas []WorkoutSchema

	query := s.db.NewSelect().
		Model(&schemas).
		OrderExpr("id ASC")

	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	err := query.Limit(limit).Offset(offset).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	result := make([]Workout, len(schemas))
	for i := range schemas {
		result[i] = *schemaToWorkout(&schemas[i])
	}
	return result, nil
}

// GetWorkout retrieves a workout by id
func (s *PostgresStore) GetWorkout(ctx context.Context, workoutID int64) (*Workout, error) {
	var schema WorkoutSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("id = ?", workoutID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.NotFound("Workout not found")
		}
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}

	return schemaToWorkout(&schema), nil
}

// ReplaceWorkout overwrites every mutable field of an existing workout.
// calories_burned is not part of the replace payload and keeps its value.
func (s *PostgresStore) ReplaceWorkout(ctx context.Context, workoutID int64, req *CreateWorkoutRequest) (*Workout, error) {
	var schema WorkoutSchema

	err := storage.RunWrite(ctx, s.db, "Workout update failed", func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&schema).
			Where("id = ?", workoutID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apierrors.NotFound("Workout not found")
			}
			return fmt.Errorf("failed to get workout: %w", err)
		}

		schema.UserID = req.UserID
		schema.Name = req.Name
		schema.Date = req.Date
		schema.DurationMinutes = req.DurationMinutes
		schema.Intensity = req.Intensity
		schema.WorkoutType = req.WorkoutType
		schema.Notes = req.Notes

		_, err = tx.NewUpdate().
			Model(&schema).
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return schemaToWorkout(&schema), nil
}

// UpdateWorkout applies only the fields present in the request
func (s *PostgresStore) UpdateWorkout(ctx context.Context, workoutID int64, req *UpdateWorkoutRequest) (*Workout, error) {
	var schema WorkoutSchema

	err := storage.RunWrite(ctx, s.db, "Workout update failed", func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&schema).
			Where("id = ?", workoutID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apierrors.NotFound("Workout not found")
			}
			return fmt.Errorf("failed to get workout: %w", err)
		}

		applyWorkoutUpdate(&schema, req)

		_, err = tx.NewUpdate().
			Model(&schema).
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return schemaToWorkout(&schema), nil
}

// DeleteWorkout removes a workout. Deleting the same id twice yields NotFound
// on the second call.
func (s *PostgresStore) DeleteWorkout(ctx context.Context, workoutID int64) error {
	res, err := s.db.NewDelete().
		Model((*WorkoutSchema)(nil)).
		Where("id = ?", workoutID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apierrors.NotFound("Workout not found")
	}

	return nil
}

func applyWorkoutUpdate(schema *WorkoutSchema, req *UpdateWorkoutRequest) {
	if req.Name != nil {
		schema.Name = *req.Name
	}
	if req.Date != nil {
		schema.Date = *req.Date
	}
	if req.DurationMinutes != nil {
		schema.DurationMinutes = *req.DurationMinutes
	}
	if req.Intensity != nil {
		schema.Intensity = *req.Intensity
	}
	if req.WorkoutType != nil {
		schema.WorkoutType = *req.WorkoutType
	}
	if req.Notes != nil {
		schema.Notes = req.Notes
	}
	if req.CaloriesBurned != nil {
		schema.CaloriesBurned = req.CaloriesBurned
	}
}

func schemaToWorkout(schema *WorkoutSchema) *Workout {
	return &Workout{
		ID:              schema.ID,
		UserID:          schema.UserID,
		Name:            schema.Name,
		Date:            schema.Date,
		DurationMinutes: schema.DurationMinutes,
		Intensity:       schema.Intensity,
		WorkoutType:     schema.WorkoutType,
		Notes:           schema.Notes,
		CaloriesBurned:  schema.CaloriesBurned,
	}
}
