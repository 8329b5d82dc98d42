package workouts

import (
	"context"
	"sort"
	"sync"

	"github.com/fittrack/fittrack/internal/apierrors"
)

// InMemoryStore is a map-backed WorkoutStore with the same observable
// behavior as the Postgres store. Used in tests and local development without
// a database.
type InMemoryStore struct {
	mu       sync.Mutex
	nextID   int64
	workouts map[int64]Workout
}

// NewInMemoryStore creates an empty in-memory workout store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		nextID:   1,
		workouts: make(map[int64]Workout),
	}
}

func (s *InMemoryStore) CreateWorkout(ctx context.Context, req *CreateWorkoutRequest) (*Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workout := Workout{
		ID:              s.nextID,
		UserID:          req.UserID,
		Name:            req.Name,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		WorkoutType:     req.WorkoutType,
		Notes:           req.Notes,
	}
	s.workouts[workout.ID] = workout
	s.nextID++

	return &workout, nil
}

func (s *InMemoryStore) ListWorkouts(ctx context.Context, userID *int64, limit, offset int) ([]Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.workouts))
	for id, w := range s.workouts {
		if userID != nil && w.UserID != *userID {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]Workout, 0, limit)
	for i := offset; i < len(ids) && len(result) < limit; i++ {
		result = append(result, s.workouts[ids[i]])
	}
	return result, nil
}

func (s *InMemoryStore) GetWorkout(ctx context.Context, workoutID int64) (*Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workout, ok := s.workouts[workoutID]
	if !ok {
		return nil, apierrors.NotFound("Workout not found")
	}
	return &workout, nil
}

func (s *InMemoryStore) ReplaceWorkout(ctx context.Context, workoutID int64, req *CreateWorkoutRequest) (*Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.workouts[workoutID]
	if !ok {
		return nil, apierrors.NotFound("Workout not found")
	}

	workout := Workout{
		ID:              workoutID,
		UserID:          req.UserID,
		Name:            req.Name,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		WorkoutType:     req.WorkoutType,
		Notes:           req.Notes,
		CaloriesBurned:  existing.CaloriesBurned,
	}
	s.workouts[workoutID] = workout
	return &workout, nil
}

func (s *InMemoryStore) UpdateWorkout(ctx context.Context, workoutID int64, req *UpdateWorkoutRequest) (*Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workout, ok := s.workouts[workoutID]
	if !ok {
		return nil, apierrors.NotFound("Workout not found")
	}

	if req.Name != nil {
		workout.Name = *req.Name
	}
	if req.Date != nil {
		workout.Date = *req.Date
	}
	if req.DurationMinutes != nil {
		workout.DurationMinutes = *req.DurationMinutes
	}
	if req.Intensity != nil {
		workout.Intensity = *req.Intensity
	}
	if req.WorkoutType != nil {
		workout.WorkoutType = *req.WorkoutType
	}
	if req.Notes != nil {
		workout.Notes = req.Notes
	}
	if req.CaloriesBurned != nil {
		workout.CaloriesBurned = req.CaloriesBurned
	}

	s.workouts[workoutID] = workout
	return &workout, nil
}

func (s *InMemoryStore) DeleteWorkout(ctx context.Context, workoutID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workouts[workoutID]; !ok {
		return apierrors.NotFound("Workout not found")
	}
	delete(s.workouts, workoutID)
	return nil
}
