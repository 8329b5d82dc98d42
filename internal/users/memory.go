package users

import (
	"context"
	"sort"
	"sync"

	"github.com/fittrack/fittrack/internal/apierrors"
)

// InMemoryStore is a map-backed UserStore with the same observable behavior
// as the Postgres store. Used in tests and local development without a
// database.
type InMemoryStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]User
}

// NewInMemoryStore creates an empty in-memory user store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		nextID: 1,
		users:  make(map[int64]User),
	}
}

func (s *InMemoryStore) emailInUse(email string, exceptID int64) bool {
	for id, u := range s.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func (s *InMemoryStore) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailInUse(req.Email, 0) {
		return nil, apierrors.Conflict("User already exists")
	}

	user := User{
		UserID: s.nextID,
		Name:   req.Name,
		Email:  req.Email,
		Age:    req.Age,
		Gender: req.Gender,
	}
	s.users[user.UserID] = user
	s.nextID++

	return &user, nil
}

func (s *InMemoryStore) ListUsers(ctx context.Context, limit, offset int) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]User, 0, limit)
	for i := offset; i < len(ids) && len(result) < limit; i++ {
		result = append(result, s.users[ids[i]])
	}
	return result, nil
}

func (s *InMemoryStore) GetUser(ctx context.Context, userID int64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, apierrors.NotFound("User not found")
	}
	return &user, nil
}

func (s *InMemoryStore) ReplaceUser(ctx context.Context, userID int64, req *CreateUserRequest) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, apierrors.NotFound("User not found")
	}
	if s.emailInUse(req.Email, userID) {
		return nil, apierrors.Conflict("User update failed")
	}

	user := User{
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
		Age:    req.Age,
		Gender: req.Gender,
	}
	s.users[userID] = user
	return &user, nil
}

func (s *InMemoryStore) UpdateUser(ctx context.Context, userID int64, req *UpdateUserRequest) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, apierrors.NotFound("User not found")
	}

	if req.Email != nil && s.emailInUse(*req.Email, userID) {
		return nil, apierrors.Conflict("User update failed")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}

	s.users[userID] = user
	return &user, nil
}

func (s *InMemoryStore) DeleteUser(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return apierrors.NotFound("User not found")
	}
	delete(s.users, userID)
	return nil
}
