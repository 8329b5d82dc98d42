package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/fittrack/fittrack/internal/apierrors"
	"github.com/fittrack/fittrack/internal/storage"
)

// UserSchema represents the users table schema in PostgreSQL
type UserSchema struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UserID int64  `bun:"user_id,pk,autoincrement" json:"user_id"`
	Name   string `bun:"name,notnull" json:"name"`
	Email  string `bun:"email,notnull,unique" json:"email"`
	Age    int    `bun:"age,notnull" json:"age"`
	Gender string `bun:"gender,notnull" json:"gender"`
}

// PostgresStore implements the UserStore interface with PostgreSQL storage
type PostgresStore struct {
	db *bun.DB
}

// NewPostgresStore creates a new user store instance
func NewPostgresStore(db *bun.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// CreateUser persists a new user. The identity is assigned by the database.
func (s *PostgresStore) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	schema := &UserSchema{
		Name:   req.Name,
		Email:  req.Email,
		Age:    req.Age,
		Gender: req.Gender,
	}

	err := storage.RunWrite(ctx, s.db, "User already exists", func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(schema).
			Returning("*").
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return schemaToUser(schema), nil
}

// ListUsers returns users ordered by user_id ascending, sliced by offset/limit
func (s *PostgresStore) ListUsers(ctx context.Context, limit, offset int) ([]User, error) {
	var schemas []UserSchema
	err := s.db.NewSelect().
		Model(&schemas).
		OrderExpr("user_id ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := make([]User, len(schemas))
	for i := range schemas {
		result[i] = *schemaToUser(&schemas[i])
	}
	return result, nil
}

// GetUser retrieves a user by id
func (s *PostgresStore) GetUser(ctx context.Context, userID int64) (*User, error) {
	var schema UserSchema
	err := s.db.NewSelect().
		Model(&schema).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.NotFound("User not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return schemaToUser(&schema), nil
}

// ReplaceUser overwrites every mutable field of an existing user
func (s *PostgresStore) ReplaceUser(ctx context.Context, userID int64, req *CreateUserRequest) (*User, error) {
	schema := &UserSchema{
		UserID: userID,
		Name:   req.Name,
		Email:  req.Email,
		Age:    req.Age,
		Gender: req.Gender,
	}

	err := storage.RunWrite(ctx, s.db, "User update failed", func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(schema).
			Column("name", "email", "age", "gender").
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}

		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return apierrors.NotFound("User not found")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return schemaToUser(schema), nil
}

// UpdateUser applies only the fields present in the request
func (s *PostgresStore) UpdateUser(ctx context.Context, userID int64, req *UpdateUserRequest) (*User, error) {
	var schema UserSchema

	err := storage.RunWrite(ctx, s.db, "User update failed", func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&schema).
			Where("user_id = ?", userID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apierrors.NotFound("User not found")
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		if req.Name != nil {
			schema.Name = *req.Name
		}
		if req.Email != nil {
			schema.Email = *req.Email
		}
		if req.Age != nil {
			schema.Age = *req.Age
		}
		if req.Gender != nil {
			schema.Gender = *req.Gender
		}

		_, err = tx.NewUpdate().
			Model(&schema).
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return schemaToUser(&schema), nil
}

// DeleteUser removes a user. Deletion is immediate and irreversible; deleting
// the same id twice yields NotFound on the second call.
func (s *PostgresStore) DeleteUser(ctx context.Context, userID int64) error {
	res, err := s.db.NewDelete().
		Model((*UserSchema)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apierrors.NotFound("User not found")
	}

	return nil
}

func schemaToUser(schema *UserSchema) *User {
	return &User{
		UserID: schema.UserID,
		Name:   schema.Name,
		Email:  schema.Email,
		Age:    schema.Age,
		Gender: schema.Gender,
	}
}
