package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateWindow(ctx context.Context, w *Window) error
	GetWindow(ctx context.Context, id uuid.UUID) (*Window, error)
	ListWindows(ctx context.Context, filter ListFilter) ([]Window, error)
	UpdateWindow(ctx context.Context, w *Window) error
	DeleteWindow(ctx context.Context, id uuid.UUID) error
}

type ListFilter struct {
	CategoryID *uuid.UUID
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, w Window) (*Window, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("validating budget window: %w", err)
	}

	if err := s.repo.CreateWindow(ctx, &w); err != nil {
		return nil, err
	}

	return &w, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Window, error) {
	return s.repo.GetWindow(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Window, error) {
	return s.repo.ListWindows(ctx, filter)
}

func (s *Service) Update(ctx context.Context, w Window) (*Window, error) {
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("validating budget window: %w", err)
	}

	if err := s.repo.UpdateWindow(ctx, &w); err != nil {
		return nil, err
	}

	return &w, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteWindow(ctx, id)
}
