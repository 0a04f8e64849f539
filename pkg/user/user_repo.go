package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const uniqueViolation = "23505"

const userColumns = `id, uid, username, display_name, created_at`

type Repo interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	// DeleteUser removes the user together with their favorites and weekly plan.
	DeleteUser(ctx context.Context, id int) error
	GetAllUsers(ctx context.Context) ([]User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type UserRepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func scanUser(row pgx.CollectableRow) (User, error) {
	var user User
	err := row.Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName, &user.CreatedAt)
	return user, err
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (User, error) {
	rows, _ := u.db.Query(ctx,
		`INSERT INTO app_user (uid, username, display_name) VALUES ($1, $2, $3) RETURNING `+userColumns,
		user.Uid, user.Username, user.DisplayName)
	created, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrUsernameTaken
		}
		log.Errorf("failed to create user: %v", err)
		return User{}, err
	}
	return created, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.getOne(ctx, `SELECT `+userColumns+` FROM app_user WHERE id = $1`, id)
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.getOne(ctx, `SELECT `+userColumns+` FROM app_user WHERE uid = $1`, uid)
}

func (u *UserRepoImpl) getOne(ctx context.Context, query string, arg any) (User, error) {
	rows, _ := u.db.Query(ctx, query, arg)
	user, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("user %v not found", arg)
		return User{}, ErrUserNotFound
	}
	if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, id int) error {
	result, err := u.db.Exec(ctx, `DELETE FROM app_user WHERE id = $1`, id)
	if err != nil {
		log.Errorf("failed to delete user %d: %v", id, err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (u *UserRepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	rows, _ := u.db.Query(ctx, `SELECT `+userColumns+` FROM app_user ORDER BY id`)
	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		log.Errorf("failed to get users: %v", err)
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

func (u *UserRepoImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	var available bool
	err := u.db.QueryRow(ctx, `SELECT NOT EXISTS (SELECT 1 FROM app_user WHERE username = $1)`, username).Scan(&available)
	if err != nil {
		log.Errorf("failed to check username availability: %v", err)
		return false, err
	}
	return available, nil
}
