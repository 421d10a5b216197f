package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dsilveira/tally/internal/budget"
	"github.com/dsilveira/tally/internal/money"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type windowRequest struct {
	CategoryID uuid.UUID `json:"category_id"`
	Amount     int64     `json:"amount"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
}

type windowResponse struct {
	ID         uuid.UUID  `json:"id"`
	CategoryID uuid.UUID  `json:"category_id"`
	Amount     int64      `json:"amount"`
	StartDate  string     `json:"start_date"`
	EndDate    string     `json:"end_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func toResponse(w *budget.Window) windowResponse {
	return windowResponse{
		ID:         w.ID,
		CategoryID: w.CategoryID,
		Amount:     int64(w.Amount),
		StartDate:  w.StartDate.Format(time.DateOnly),
		EndDate:    w.EndDate.Format(time.DateOnly),
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req windowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	window, err := toWindow(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.Create(r.Context(), window)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(created)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter budget.ListFilter

	if s := r.URL.Query().Get("category_id"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			filter.CategoryID = &id
		}
	}

	windows, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]windowResponse, 0, len(windows))
	for i := range windows {
		resp = append(resp, toResponse(&windows[i]))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	window, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(window)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateWindowRequest struct {
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Amount     *int64     `json:"amount,omitempty"`
	StartDate  *string    `json:"start_date,omitempty"`
	EndDate    *string    `json:"end_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	window, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if req.CategoryID != nil {
		window.CategoryID = *req.CategoryID
	}

	if req.Amount != nil {
		window.Amount = money.Money(*req.Amount)
	}

	if req.StartDate != nil {
		start, err := time.Parse(time.DateOnly, *req.StartDate)
		if err != nil {
			http.Error(w, "start_date must be a calendar date (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}

		window.StartDate = start
	}

	if req.EndDate != nil {
		end, err := time.Parse(time.DateOnly, *req.EndDate)
		if err != nil {
			http.Error(w, "end_date must be a calendar date (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}

		window.EndDate = end
	}

	updated, err := h.svc.Update(r.Context(), *window)
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
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toWindow(req windowRequest) (budget.Window, error) {
	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		return budget.Window{}, errors.New("start_date must be a calendar date (YYYY-MM-DD)")
	}

	end, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		return budget.Window{}, errors.New("end_date must be a calendar date (YYYY-MM-DD)")
	}

	return budget.Window{
		CategoryID: req.CategoryID,
		Amount:     money.Money(req.Amount),
		StartDate:  start,
		EndDate:    end,
	}, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, budget.ErrNotFound):
		http.Error(w, "budget window not found", http.StatusNotFound)
	case errors.Is(err, budget.ErrInvalidWindow), errors.Is(err, money.ErrInvalidAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
