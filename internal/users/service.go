package users

import (
	"context"
)

const (
	// DefaultListLimit is used when the caller does not supply a limit
	DefaultListLimit = 10
	// MaxListLimit is the maximum page size; larger limits are clamped
	MaxListLimit = 100
)

// ServiceImpl implements the UserService interface
type ServiceImpl struct {
	store UserStore
}

// NewService creates a new user service instance
func NewService(store UserStore) *ServiceImpl {
	return &ServiceImpl{
		store: store,
	}
}

// CreateUser creates a new user
func (s *ServiceImpl) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	return s.store.CreateUser(ctx, req)
}

// ListUsers returns a page of users ordered by user_id ascending
func (s *ServiceImpl) ListUsers(ctx context.Context, limit, offset int) ([]User, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListUsers(ctx, limit, offset)
}

// GetUser retrieves a user by id
func (s *ServiceImpl) GetUser(ctx context.Context, userID int64) (*User, error) {
	return s.store.GetUser(ctx, userID)
}

// ReplaceUser overwrites every mutable field of an existing user
func (s *ServiceImpl) ReplaceUser(ctx context.Context, userID int64, req *CreateUserRequest) (*User, error) {
	return s.store.ReplaceUser(ctx, userID, req)
}

// UpdateUser applies only the fields present in the request
func (s *ServiceImpl) UpdateUser(ctx context.Context, userID int64, req *UpdateUserRequest) (*User, error) {
	return s.store.UpdateUser(ctx, userID, req)
}

// DeleteUser deletes a user by id
func (s *ServiceImpl) DeleteUser(ctx context.Context, userID int64) error {
	return s.store.DeleteUser(ctx, userID)
}
