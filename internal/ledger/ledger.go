package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dsilveira/tally/internal/money"
	"github.com/dsilveira/tally/internal/split"
)

// Direction marks whether money flowed in or out.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

var (
	ErrNotFound         = errors.New("transaction not found")
	ErrInvalidDirection = errors.New("invalid direction")
)

// Transaction is a shared expense or income entry. Its legs are written
// once from the split allocation and never mutated afterwards; deleting a
// transaction soft-deletes it together with its legs.
type Transaction struct {
	ID          uuid.UUID
	Total       money.Money
	Direction   Direction
	Description string
	CategoryID  uuid.UUID
	Payer       uuid.UUID
	Policy      split.Policy
	Date        time.Time
	Legs        []Leg
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// Leg is one participant's share of a transaction. Legs are the unit the
// reporting engine consumes.
type Leg struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	Participant   uuid.UUID
	Amount        money.Money
	Direction     Direction
	CategoryID    uuid.UUID
	Date          time.Time
}
