package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/dsilveira/tally/internal/ledger"
	"github.com/dsilveira/tally/internal/split"
)

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	Total       int64            `json:"total"`
	Direction   ledger.Direction `json:"direction"`
	Description string           `json:"description"`
	CategoryID  uuid.UUID        `json:"category_id"`
	PayerID     uuid.UUID        `json:"payer_id"`
	Policy      split.Policy     `json:"policy"`
	Date        string           `json:"date"`
	Legs        []legResponse    `json:"legs"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

type legResponse struct {
	ID            uuid.UUID        `json:"id"`
	ParticipantID uuid.UUID        `json:"participant_id"`
	Amount        int64            `json:"amount"`
	Direction     ledger.Direction `json:"direction"`
	CategoryID    uuid.UUID        `json:"category_id"`
	Date          string           `json:"date"`
}

func toResponse(tx *ledger.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          tx.ID,
		Total:       int64(tx.Total),
		Direction:   tx.Direction,
		Description: tx.Description,
		CategoryID:  tx.CategoryID,
		PayerID:     tx.Payer,
		Policy:      tx.Policy,
		Date:        tx.Date.Format(time.DateOnly),
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}

	resp.Legs = make([]legResponse, 0, len(tx.Legs))
	for _, leg := range tx.Legs {
		resp.Legs = append(resp.Legs, legResponse{
			ID:            leg.ID,
			ParticipantID: leg.Participant,
			Amount:        int64(leg.Amount),
			Direction:     leg.Direction,
			CategoryID:    leg.CategoryID,
			Date:          leg.Date.Format(time.DateOnly),
		})
	}

	return resp
}

func toResponseList(txs []*ledger.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
