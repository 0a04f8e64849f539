package favorites

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/recipebook/internal/database"
)

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	// GetFavorites returns the user's favorites, empty when nothing was stored yet.
	// Inside a transaction the user's state row is locked until commit.
	GetFavorites(ctx context.Context, userId int) (Favorites, error)
	StoreFavorites(ctx context.Context, userId int, favorites Favorites) error
}

type repositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepo(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) queryer() database.Queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	return database.InTransaction(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&repositoryImpl{db: r.db, tx: tx})
	})
}

func (r *repositoryImpl) GetFavorites(ctx context.Context, userId int) (Favorites, error) {
	var favorites Favorites
	if _, err := database.LoadState(ctx, r.queryer(), userId, database.FavoritesColumn, r.tx != nil, &favorites); err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = Favorites{}
	}
	return favorites, nil
}

func (r *repositoryImpl) StoreFavorites(ctx context.Context, userId int, favorites Favorites) error {
	if favorites == nil {
		favorites = Favorites{}
	}
	return database.StoreState(ctx, r.queryer(), userId, database.FavoritesColumn, favorites)
}
