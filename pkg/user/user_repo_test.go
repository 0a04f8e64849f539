package user_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/recipebook/internal/test_utils"
	"github.com/klokku/recipebook/pkg/user"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	code := m.Run()
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (*pgxpool.Pool, *user.UserRepoImpl) {
	db := openDb()
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(context.Background())
		require.NoError(t, err)
	})
	return db, user.NewUserRepo(db)
}

func TestUserRepoImpl_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and reads back", func(t *testing.T) {
		_, repo := setupTestRepository(t)
		toCreate := test_utils.TestUser(0)

		created, err := repo.CreateUser(ctx, toCreate)

		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.False(t, created.CreatedAt.IsZero())
		byId, err := repo.GetUser(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, toCreate.Username, byId.Username)
		byUid, err := repo.GetUserByUid(ctx, toCreate.Uid)
		require.NoError(t, err)
		assert.Equal(t, created.Id, byUid.Id)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, repo := setupTestRepository(t)
		first := test_utils.TestUser(0)
		_, err := repo.CreateUser(ctx, first)
		require.NoError(t, err)
		second := test_utils.TestUser(0)
		second.Username = first.Username

		_, err = repo.CreateUser(ctx, second)

		require.ErrorIs(t, err, user.ErrUsernameTaken)
		available, err := repo.IsUsernameAvailable(ctx, first.Username)
		require.NoError(t, err)
		assert.False(t, available)
	})
}

func TestUserRepoImpl_DeleteUser(t *testing.T) {
	ctx := context.Background()
	db, repo := setupTestRepository(t)
	_, created := test_utils.CreateTestUser(t, db)
	_, err := db.Exec(ctx, `INSERT INTO recipe_state (user_id) VALUES ($1)`, created.Id)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteUser(ctx, created.Id))

	_, err = repo.GetUser(ctx, created.Id)
	require.ErrorIs(t, err, user.ErrUserNotFound)
	var remaining int
	require.NoError(t, db.QueryRow(ctx, `SELECT count(*) FROM recipe_state WHERE user_id = $1`, created.Id).Scan(&remaining))
	assert.Zero(t, remaining)
	require.ErrorIs(t, repo.DeleteUser(ctx, created.Id), user.ErrUserNotFound)
}

func TestUserRepoImpl_GetAllUsers(t *testing.T) {
	ctx := context.Background()
	db, repo := setupTestRepository(t)
	_, first := test_utils.CreateTestUser(t, db)
	_, second := test_utils.CreateTestUser(t, db)

	users, err := repo.GetAllUsers(ctx)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first.Id, users[0].Id)
	assert.Equal(t, second.Id, users[1].Id)
}
