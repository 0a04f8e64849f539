package test_utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/recipebook/pkg/user"
	"github.com/stretchr/testify/require"
)

// TestUser returns an in-memory user, not stored anywhere.
func TestUser(id int) user.User {
	return user.User{
		Id:          id,
		Uid:         uuid.NewString(),
		Username:    "test_user_" + uuid.NewString()[:8],
		DisplayName: "Test User",
	}
}

// TestUserContext returns a context carrying TestUser(id), as the X-User-Id middleware would.
func TestUserContext(id int) context.Context {
	return user.WithUser(context.Background(), TestUser(id))
}

// CreateTestUser stores a new user and returns a context carrying it.
func CreateTestUser(t *testing.T, db *pgxpool.Pool) (context.Context, user.User) {
	t.Helper()
	ctx := context.Background()
	created, err := user.NewUserRepo(db).CreateUser(ctx, TestUser(0))
	require.NoError(t, err)
	return user.WithUser(ctx, created), created
}
