package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dsilveira/tally/internal/ledger"
	"github.com/dsilveira/tally/internal/split"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.total, t.direction, t.description, t.category_id, t.payer_id,
	t.policy, t.date, t.created_at, t.updated_at, t.deleted_at
`

func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var tx ledger.Transaction

	var directionStr, policyStr string

	if err := s.Scan(
		&tx.ID, &tx.Total, &directionStr, &tx.Description, &tx.CategoryID, &tx.Payer,
		&policyStr, &tx.Date, &tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt,
	); err != nil {
		return nil, err
	}

	tx.Direction = ledger.Direction(directionStr)
	tx.Policy = split.Policy(policyStr)

	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *ledger.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO transactions (total, direction, description, category_id, payer_id, policy, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		tx.Total,
		tx.Direction,
		tx.Description,
		tx.CategoryID,
		tx.Payer,
		tx.Policy,
		tx.Date,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	if err := insertLegs(ctx, dbTx, tx); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func insertLegs(ctx context.Context, dbTx *sql.Tx, tx *ledger.Transaction) error {
	query := `
		INSERT INTO legs (transaction_id, participant_id, amount, direction, category_id, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	for i := range tx.Legs {
		tx.Legs[i].TransactionID = tx.ID

		err := dbTx.QueryRowContext(ctx, query,
			tx.ID,
			tx.Legs[i].Participant,
			tx.Legs[i].Amount,
			tx.Legs[i].Direction,
			tx.Legs[i].CategoryID,
			tx.Legs[i].Date,
		).Scan(&tx.Legs[i].ID)
		if err != nil {
			return fmt.Errorf("creating leg: %w", err)
		}
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1 AND t.deleted_at IS NULL`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	legs, err := s.legsForTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	tx.Legs = legs

	return tx, nil
}

func (s *Store) legsForTransaction(ctx context.Context, id uuid.UUID) ([]ledger.Leg, error) {
	query := `
		SELECT l.id, l.transaction_id, l.participant_id, l.amount, l.direction, l.category_id, l.date
		FROM legs l
		WHERE l.transaction_id = $1
		ORDER BY l.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("listing legs: %w", err)
	}
	defer rows.Close()

	return scanLegs(rows)
}

func scanLegs(rows *sql.Rows) ([]ledger.Leg, error) {
	var legs []ledger.Leg

	for rows.Next() {
		var leg ledger.Leg

		var directionStr string

		if err := rows.Scan(
			&leg.ID, &leg.TransactionID, &leg.Participant, &leg.Amount,
			&directionStr, &leg.CategoryID, &leg.Date,
		); err != nil {
			return nil, fmt.Errorf("scanning leg: %w", err)
		}

		leg.Direction = ledger.Direction(directionStr)
		legs = append(legs, leg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating leg rows: %w", err)
	}

	return legs, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Direction != nil {
		query += fmt.Sprintf(" AND t.direction = $%d", argIdx)

		args = append(args, *filter.Direction)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND t.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY t.date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

// ReplaceTransaction rewrites the transaction row and its legs atomically.
// The old legs are removed rather than edited: a leg row is immutable.
func (s *Store) ReplaceTransaction(ctx context.Context, tx *ledger.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE transactions
		SET total = $1, direction = $2, description = $3, category_id = $4,
		    payer_id = $5, policy = $6, date = $7, updated_at = NOW()
		WHERE id = $8 AND deleted_at IS NULL
	`

	res, err := dbTx.ExecContext(ctx, query,
		tx.Total,
		tx.Direction,
		tx.Description,
		tx.CategoryID,
		tx.Payer,
		tx.Policy,
		tx.Date,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrNotFound
	}

	if _, err := dbTx.ExecContext(ctx, "DELETE FROM legs WHERE transaction_id = $1", tx.ID); err != nil {
		return fmt.Errorf("clearing legs: %w", err)
	}

	if err := insertLegs(ctx, dbTx, tx); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE transactions
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ledger.ErrNotFound
	}

	return nil
}

// ListLegs returns legs of live transactions only; the join enforces the
// soft-delete filter so callers never aggregate deleted spending.
func (s *Store) ListLegs(ctx context.Context, filter ledger.LegFilter) ([]ledger.Leg, error) {
	query := `
		SELECT l.id, l.transaction_id, l.participant_id, l.amount, l.direction, l.category_id, l.date
		FROM legs l
		JOIN transactions t ON t.id = l.transaction_id
		WHERE t.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Participant != nil {
		query += fmt.Sprintf(" AND l.participant_id = $%d", argIdx)

		args = append(args, *filter.Participant)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND l.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND l.date >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND l.date <= $%d", argIdx)

		args = append(args, *filter.To)
		argIdx++
	}

	query += " ORDER BY l.date ASC, l.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing legs: %w", err)
	}
	defer rows.Close()

	return scanLegs(rows)
}
