// Package category learns which category a statement description belongs
// to. Mappings are substring patterns: once "CONTINENTE" maps to the
// groceries category, every future import line containing it gets the
// suggestion for free.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	FindCategory(ctx context.Context, description string) (uuid.UUID, bool, error)
	CreateMapping(ctx context.Context, pattern string, categoryID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category mapped to the given description. The bool
// is false when nothing matches; that is not an error.
func (s *Service) Suggest(ctx context.Context, description string) (uuid.UUID, bool, error) {
	return s.repo.FindCategory(ctx, description)
}

// Learn remembers that descriptions containing pattern belong to the
// given category.
func (s *Service) Learn(ctx context.Context, pattern string, categoryID uuid.UUID) error {
	if pattern == "" {
		return fmt.Errorf("mapping pattern is required")
	}

	if categoryID == uuid.Nil {
		return fmt.Errorf("mapping category id is required")
	}

	return s.repo.CreateMapping(ctx, pattern, categoryID)
}
