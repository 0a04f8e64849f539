package weekly_plan

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/recipebook/internal/database"
)

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	// GetPlan returns the user's plan, or an empty plan when nothing was stored yet.
	// Inside a transaction the user's state row is locked until commit.
	GetPlan(ctx context.Context, userId int) (WeeklyPlan, error)
	StorePlan(ctx context.Context, userId int, plan WeeklyPlan) error
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

func (r *repositoryImpl) GetPlan(ctx context.Context, userId int) (WeeklyPlan, error) {
	plan := NewWeeklyPlan()
	if _, err := database.LoadState(ctx, r.queryer(), userId, database.WeeklyPlanColumn, r.tx != nil, &plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *repositoryImpl) StorePlan(ctx context.Context, userId int, plan WeeklyPlan) error {
	return database.StoreState(ctx, r.queryer(), userId, database.WeeklyPlanColumn, plan)
}
