package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dsilveira/tally/internal/ledger"
	"github.com/dsilveira/tally/internal/money"
	"github.com/dsilveira/tally/internal/split"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// participantDTO carries one participant's split input. Percent is a
// decimal string ("33.33") converted to basis points at this boundary so
// the core never sees floating point.
type participantDTO struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Amount        *int64    `json:"amount,omitempty"`
	Percent       *string   `json:"percent,omitempty"`
	Shares        *int64    `json:"shares,omitempty"`
}

type createTransactionRequest struct {
	Total        int64            `json:"total"`
	Direction    ledger.Direction `json:"direction"`
	Description  string           `json:"description"`
	CategoryID   uuid.UUID        `json:"category_id"`
	PayerID      uuid.UUID        `json:"payer_id"`
	Policy       split.Policy     `json:"policy"`
	Date         string           `json:"date"`
	Participants []participantDTO `json:"participants"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params, err := toCreateParams(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ledger.ListFilter{}

	if s := r.URL.Query().Get("direction"); s != "" {
		d := ledger.Direction(s)
		filter.Direction = &d
	}

	if s := r.URL.Query().Get("category_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.CategoryID = &id
		}
	}

	if s := r.URL.Query().Get("from"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("to"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTransactionRequest struct {
	Total        *int64            `json:"total,omitempty"`
	Direction    *ledger.Direction `json:"direction,omitempty"`
	Description  *string           `json:"description,omitempty"`
	CategoryID   *uuid.UUID        `json:"category_id,omitempty"`
	Policy       *split.Policy     `json:"policy,omitempty"`
	Date         *string           `json:"date,omitempty"`
	Participants []participantDTO  `json:"participants,omitempty"`
}

// update overlays the request onto the stored transaction and re-runs the
// allocation; legs are always replaced, never edited in place. Changing
// the policy requires resupplying the participants, since leg amounts
// alone cannot be mapped back to percent or share inputs.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	params, err := mergeParams(tx, req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(updated)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCreateParams(req createTransactionRequest) (ledger.CreateParams, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return ledger.CreateParams{}, errors.New("date must be a calendar date (YYYY-MM-DD)")
	}

	participants, err := toParticipantInputs(req.Participants)
	if err != nil {
		return ledger.CreateParams{}, err
	}

	return ledger.CreateParams{
		Total:        money.Money(req.Total),
		Direction:    req.Direction,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		Payer:        req.PayerID,
		Policy:       req.Policy,
		Date:         date,
		Participants: participants,
	}, nil
}

func toParticipantInputs(dtos []participantDTO) ([]split.ParticipantInput, error) {
	inputs := make([]split.ParticipantInput, 0, len(dtos))

	for _, dto := range dtos {
		input := split.ParticipantInput{
			ID:     dto.ParticipantID,
			Shares: dto.Shares,
		}

		if dto.Amount != nil {
			amount := money.Money(*dto.Amount)
			input.Amount = &amount
		}

		if dto.Percent != nil {
			bp, err := parsePercentBP(*dto.Percent)
			if err != nil {
				return nil, err
			}

			input.PercentBP = &bp
		}

		inputs = append(inputs, input)
	}

	return inputs, nil
}

// parsePercentBP converts a decimal percent string to basis points:
// "60" -> 6000, "33.33" -> 3333. The scale-2 money parser does exactly
// this conversion.
func parsePercentBP(s string) (int64, error) {
	v, err := money.ParseDecimal(s)
	if err != nil {
		return 0, errors.New("percent must be a decimal string")
	}

	return int64(v), nil
}

func mergeParams(tx *ledger.Transaction, req updateTransactionRequest) (ledger.CreateParams, error) {
	params := ledger.CreateParams{
		Total:       tx.Total,
		Direction:   tx.Direction,
		Description: tx.Description,
		CategoryID:  tx.CategoryID,
		Payer:       tx.Payer,
		Policy:      tx.Policy,
		Date:        tx.Date,
	}

	if req.Total != nil {
		params.Total = money.Money(*req.Total)
	}

	if req.Direction != nil {
		params.Direction = *req.Direction
	}

	if req.Description != nil {
		params.Description = *req.Description
	}

	if req.CategoryID != nil {
		params.CategoryID = *req.CategoryID
	}

	if req.Policy != nil {
		params.Policy = *req.Policy
	}

	if req.Date != nil {
		date, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			return ledger.CreateParams{}, errors.New("date must be a calendar date (YYYY-MM-DD)")
		}

		params.Date = date
	}

	switch {
	case req.Participants != nil:
		participants, err := toParticipantInputs(req.Participants)
		if err != nil {
			return ledger.CreateParams{}, err
		}

		params.Participants = participants
	case req.Policy != nil && *req.Policy != tx.Policy:
		return ledger.CreateParams{}, errors.New("changing the policy requires participants")
	case tx.Policy == split.PolicyEqual:
		// An equal split only needs the participant ids, so it survives
		// a total change and redistributes.
		params.Participants = participantIDsFromLegs(tx)
	default:
		// Percent and share inputs cannot be recovered from leg amounts,
		// so the stored legs are pinned as fixed amounts and any total
		// delta lands on the payer's inferred share.
		params.Policy = split.PolicyAmount
		params.Participants = participantAmountsFromLegs(tx)
	}

	return params, nil
}

func participantIDsFromLegs(tx *ledger.Transaction) []split.ParticipantInput {
	var inputs []split.ParticipantInput

	for _, leg := range tx.Legs {
		if leg.Participant == tx.Payer {
			continue
		}

		inputs = append(inputs, split.ParticipantInput{ID: leg.Participant})
	}

	return inputs
}

func participantAmountsFromLegs(tx *ledger.Transaction) []split.ParticipantInput {
	var inputs []split.ParticipantInput

	for _, leg := range tx.Legs {
		if leg.Participant == tx.Payer {
			continue
		}

		amount := leg.Amount
		inputs = append(inputs, split.ParticipantInput{ID: leg.Participant, Amount: &amount})
	}

	return inputs
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, split.ErrInvalidSplit),
		errors.Is(err, split.ErrZeroShares),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidDirection):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
