package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindCategory returns the category of the longest pattern contained in
// the description, newest mapping winning ties. Longer patterns are more
// specific, so "CONTINENTE BOM DIA" beats "CONTINENTE".
func (s *Store) FindCategory(ctx context.Context, description string) (uuid.UUID, bool, error) {
	query := `
		SELECT category_id
		FROM category_mappings
		WHERE $1 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var categoryID uuid.UUID

	err := s.db.QueryRowContext(ctx, query, description).Scan(&categoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, false, nil
		}

		return uuid.Nil, false, fmt.Errorf("finding category mapping: %w", err)
	}

	return categoryID, true, nil
}

func (s *Store) CreateMapping(ctx context.Context, pattern string, categoryID uuid.UUID) error {
	query := `
		INSERT INTO category_mappings (pattern, category_id, created_at)
		VALUES ($1, $2, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, pattern, categoryID)
	if err != nil {
		return fmt.Errorf("creating category mapping: %w", err)
	}

	return nil
}
