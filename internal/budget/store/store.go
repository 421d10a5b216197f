package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dsilveira/tally/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectWindowColumns = `
	id, category_id, amount, start_date, end_date, created_at, updated_at
`

func (s *Store) CreateWindow(ctx context.Context, w *budget.Window) error {
	query := `
		INSERT INTO budget_windows (category_id, amount, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		w.CategoryID,
		w.Amount,
		w.StartDate,
		w.EndDate,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating budget window: %w", err)
	}

	return nil
}

func (s *Store) GetWindow(ctx context.Context, id uuid.UUID) (*budget.Window, error) {
	query := `SELECT ` + selectWindowColumns + ` FROM budget_windows WHERE id = $1`

	var w budget.Window

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.CategoryID, &w.Amount, &w.StartDate, &w.EndDate, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget window: %w", err)
	}

	return &w, nil
}

func (s *Store) ListWindows(ctx context.Context, filter budget.ListFilter) ([]budget.Window, error) {
	query := `SELECT ` + selectWindowColumns + ` FROM budget_windows`

	var args []any

	if filter.CategoryID != nil {
		query += " WHERE category_id = $1"

		args = append(args, *filter.CategoryID)
	}

	query += " ORDER BY start_date ASC, category_id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing budget windows: %w", err)
	}
	defer rows.Close()

	var windows []budget.Window

	for rows.Next() {
		var w budget.Window

		if err := rows.Scan(
			&w.ID, &w.CategoryID, &w.Amount, &w.StartDate, &w.EndDate, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning budget window: %w", err)
		}

		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget window rows: %w", err)
	}

	return windows, nil
}

func (s *Store) UpdateWindow(ctx context.Context, w *budget.Window) error {
	query := `
		UPDATE budget_windows
		SET category_id = $1, amount = $2, start_date = $3, end_date = $4, updated_at = NOW()
		WHERE id = $5
	`

	res, err := s.db.ExecContext(ctx, query,
		w.CategoryID,
		w.Amount,
		w.StartDate,
		w.EndDate,
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating budget window: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return budget.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteWindow(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM budget_windows WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting budget window: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return budget.ErrNotFound
	}

	return nil
}
