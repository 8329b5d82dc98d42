package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack/internal/apierrors"
	"github.com/fittrack/fittrack/internal/config"
	"github.com/fittrack/fittrack/internal/storage"
)

// TestPostgresStoreIntegration exercises the real store against a local
// Postgres. Skips when the database is not reachable (CI/local development
// flexibility).
func TestPostgresStoreIntegration(t *testing.T) {
	config.LoadDefault()
	config.ApplyEnvOverrides()

	db, err := storage.Connect(config.Postgres().DSN(), 4)
	if err != nil {
		t.Skipf("Postgres not available, skipping integration test: %v", err)
		return
	}
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, storage.CreateTables(ctx, db, (*UserSchema)(nil)))

	store := NewPostgresStore(db)

	email := fmt.Sprintf("it-%s@example.com", uuid.NewString())
	created, err := store.CreateUser(ctx, &CreateUserRequest{
		Name:   "Integration",
		Email:  email,
		Age:    30,
		Gender: "other",
	})
	require.NoError(t, err)
	require.NotZero(t, created.UserID)

	t.Cleanup(func() {
		_ = store.DeleteUser(ctx, created.UserID)
	})

	t.Run("DuplicateEmailConflict", func(t *testing.T) {
		_, err := store.CreateUser(ctx, &CreateUserRequest{
			Name:   "Duplicate",
			Email:  email,
			Age:    31,
			Gender: "other",
		})
		require.Error(t, err)
		assert.True(t, apierrors.IsConflict(err))
	})

	t.Run("GetAfterCreate", func(t *testing.T) {
		fetched, err := store.GetUser(ctx, created.UserID)
		require.NoError(t, err)
		assert.Equal(t, created, fetched)
	})

	t.Run("PartialUpdateKeepsOtherFields", func(t *testing.T) {
		newAge := 33
		updated, err := store.UpdateUser(ctx, created.UserID, &UpdateUserRequest{Age: &newAge})
		require.NoError(t, err)
		assert.Equal(t, 33, updated.Age)
		assert.Equal(t, email, updated.Email)
		assert.Equal(t, "Integration", updated.Name)
	})

	t.Run("DeleteTwice", func(t *testing.T) {
		require.NoError(t, store.DeleteUser(ctx, created.UserID))
		err := store.DeleteUser(ctx, created.UserID)
		assert.True(t, apierrors.IsNotFound(err))
	})
}
