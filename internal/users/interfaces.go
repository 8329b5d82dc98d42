package users

import (
	"context"
)

// UserStore defines the interface for user storage operations
type UserStore interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]User, error)
	GetUser(ctx context.Context, userID int64) (*User, error)
	ReplaceUser(ctx context.Context, userID int64, req *CreateUserRequest) (*User, error)
	UpdateUser(ctx context.Context, userID int64, req *UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// UserService defines the interface for user service operations
type UserService interface {
	UserStore
}
