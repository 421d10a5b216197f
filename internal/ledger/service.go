package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dsilveira/tally/internal/money"
	"github.com/dsilveira/tally/internal/split"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ReplaceTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	ListLegs(ctx context.Context, filter LegFilter) ([]Leg, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Total        money.Money
	Direction    Direction
	Description  string
	CategoryID   uuid.UUID
	Payer        uuid.UUID
	Policy       split.Policy
	Date         time.Time
	Participants []split.ParticipantInput
}

type ListFilter struct {
	Direction  *Direction
	CategoryID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// LegFilter narrows leg queries. Soft-deleted transactions are always
// excluded, so the reporting engine only ever sees live legs.
type LegFilter struct {
	Participant *uuid.UUID
	CategoryID  *uuid.UUID
	From        *time.Time
	To          *time.Time
}

// Create allocates the total across the participants and persists the
// transaction together with the resulting legs.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx, err := buildTransaction(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// Update re-runs the allocation with the new parameters and replaces the
// stored legs. Legs are never edited in place.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams) (*Transaction, error) {
	if _, err := s.repo.GetTransaction(ctx, id); err != nil {
		return nil, err
	}

	tx, err := buildTransaction(params)
	if err != nil {
		return nil, err
	}

	tx.ID = id
	for i := range tx.Legs {
		tx.Legs[i].TransactionID = id
	}

	if err := s.repo.ReplaceTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, id)
}

// Legs returns the live legs matching the filter, ready for aggregation.
func (s *Service) Legs(ctx context.Context, filter LegFilter) ([]Leg, error) {
	return s.repo.ListLegs(ctx, filter)
}

func buildTransaction(params CreateParams) (*Transaction, error) {
	if params.Direction != DirectionIncome && params.Direction != DirectionExpense {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, params.Direction)
	}

	if params.Date.IsZero() {
		return nil, fmt.Errorf("transaction date is required")
	}

	alloc, err := split.Allocate(params.Total, params.Policy, params.Payer, params.Participants)
	if err != nil {
		return nil, fmt.Errorf("allocating split: %w", err)
	}

	tx := &Transaction{
		Total:       params.Total,
		Direction:   params.Direction,
		Description: params.Description,
		CategoryID:  params.CategoryID,
		Payer:       params.Payer,
		Policy:      params.Policy,
		Date:        params.Date,
	}

	tx.Legs = make([]Leg, 0, len(alloc.Shares))
	for _, share := range alloc.Shares {
		tx.Legs = append(tx.Legs, Leg{
			Participant: share.Participant,
			Amount:      share.Amount,
			Direction:   params.Direction,
			CategoryID:  params.CategoryID,
			Date:        params.Date,
		})
	}

	return tx, nil
}
