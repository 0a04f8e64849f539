package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// StateColumn is one JSONB column of the per-user recipe_state row.
type StateColumn string

const (
	FavoritesColumn  StateColumn = "favorites"
	WeeklyPlanColumn StateColumn = "weekly_plan"
)

// LoadState decodes the user's column into out and reports whether a row existed.
// With lock set the row is created when missing and locked until the surrounding
// transaction ends, so q must then be a pgx.Tx.
func LoadState(ctx context.Context, q Queryer, userId int, column StateColumn, lock bool, out any) (bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM recipe_state WHERE user_id = $1`, column)
	if lock {
		_, err := q.Exec(ctx, `INSERT INTO recipe_state (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userId)
		if err != nil {
			return false, fmt.Errorf("could not initialise recipe state: %w", err)
		}
		query += ` FOR UPDATE`
	}

	var data []byte
	err := q.QueryRow(ctx, query, userId).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not load %s: %w", column, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("could not decode %s: %w", column, err)
	}
	return true, nil
}

// StoreState replaces the user's column with value encoded as JSON.
func StoreState(ctx context.Context, q Queryer, userId int, column StateColumn, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", column, err)
	}
	query := fmt.Sprintf(`INSERT INTO recipe_state (user_id, %[1]s, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET %[1]s = EXCLUDED.%[1]s, updated_at = now()`, column)
	if _, err := q.Exec(ctx, query, userId, string(data)); err != nil {
		return fmt.Errorf("could not store %s: %w", column, err)
	}
	return nil
}
