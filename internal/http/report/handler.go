package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dsilveira/tally/internal/budget"
	"github.com/dsilveira/tally/internal/ledger"
	"github.com/dsilveira/tally/internal/report"
)

type Handler struct {
	ledgerSvc *ledger.Service
	budgetSvc *budget.Service
}

func NewHandler(ledgerSvc *ledger.Service, budgetSvc *budget.Service) *Handler {
	return &Handler{ledgerSvc: ledgerSvc, budgetSvc: budgetSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/categories", h.categories)
	r.Get("/trend", h.trend)
	r.Get("/budgets", h.budgets)
}

// reportQuery is the shared query surface of the report endpoints:
// an optional date window plus participant and category narrowing.
type reportQuery struct {
	window     report.Window
	legFilter  ledger.LegFilter
	categories []uuid.UUID
}

func parseQuery(r *http.Request) (reportQuery, error) {
	var q reportQuery

	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return q, errors.New("from must be a calendar date (YYYY-MM-DD)")
		}

		q.window.From = &t
		q.legFilter.From = &t
	}

	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return q, errors.New("to must be a calendar date (YYYY-MM-DD)")
		}

		q.window.To = &t
		q.legFilter.To = &t
	}

	if s := r.URL.Query().Get("participant_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return q, errors.New("participant_id must be a uuid")
		}

		q.legFilter.Participant = &id
	}

	if s := r.URL.Query().Get("category_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return q, errors.New("category_id must be a uuid")
		}

		q.legFilter.CategoryID = &id
		q.categories = []uuid.UUID{id}
	}

	return q, nil
}

type summaryResponse struct {
	TotalIncome  int64   `json:"total_income"`
	TotalExpense int64   `json:"total_expense"`
	NetSavings   int64   `json:"net_savings"`
	SavingsRate  float64 `json:"savings_rate"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	legs, err := h.ledgerSvc.Legs(r.Context(), q.legFilter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s, err := report.Summarize(legs, q.window)
	if err != nil {
		writeReportError(w, err)
		return
	}

	writeJSON(w, summaryResponse{
		TotalIncome:  int64(s.TotalIncome),
		TotalExpense: int64(s.TotalExpense),
		NetSavings:   int64(s.NetSavings),
		SavingsRate:  s.SavingsRate,
	})
}

type categoryTotalResponse struct {
	CategoryID uuid.UUID `json:"category_id"`
	Amount     int64     `json:"amount"`
	Percent    float64   `json:"percent"`
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	legs, err := h.ledgerSvc.Legs(r.Context(), q.legFilter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	totals, err := report.BreakdownByCategory(legs, q.window, q.categories)
	if err != nil {
		writeReportError(w, err)
		return
	}

	resp := make([]categoryTotalResponse, 0, len(totals))
	for _, ct := range totals {
		resp = append(resp, categoryTotalResponse{
			CategoryID: ct.CategoryID,
			Amount:     int64(ct.Amount),
			Percent:    ct.Percent,
		})
	}

	writeJSON(w, resp)
}

type monthBucketResponse struct {
	Year       int              `json:"year"`
	Month      int              `json:"month"`
	Total      int64            `json:"total"`
	ByCategory map[string]int64 `json:"by_category"`
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	legs, err := h.ledgerSvc.Legs(r.Context(), q.legFilter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	buckets, err := report.MonthlyTrend(legs, q.window, q.categories)
	if err != nil {
		writeReportError(w, err)
		return
	}

	resp := make([]monthBucketResponse, 0, len(buckets))

	for _, b := range buckets {
		byCategory := make(map[string]int64, len(b.ByCategory))
		for id, amount := range b.ByCategory {
			byCategory[id.String()] = int64(amount)
		}

		resp = append(resp, monthBucketResponse{
			Year:       b.Year,
			Month:      int(b.Month),
			Total:      int64(b.Total),
			ByCategory: byCategory,
		})
	}

	writeJSON(w, resp)
}

type budgetStatusResponse struct {
	BudgetID       uuid.UUID             `json:"budget_id"`
	CategoryID     uuid.UUID             `json:"category_id"`
	Budgeted       int64                 `json:"budgeted"`
	Spent          int64                 `json:"spent"`
	PercentUsed    float64               `json:"percent_used"`
	Classification report.Classification `json:"classification"`
}

func (h *Handler) budgets(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var windowFilter budget.ListFilter
	windowFilter.CategoryID = q.legFilter.CategoryID

	windows, err := h.budgetSvc.List(r.Context(), windowFilter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	legs, err := h.ledgerSvc.Legs(r.Context(), q.legFilter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	statuses, err := report.BudgetStatus(windows, legs)
	if err != nil {
		writeReportError(w, err)
		return
	}

	resp := make([]budgetStatusResponse, 0, len(statuses))
	for _, st := range statuses {
		resp = append(resp, budgetStatusResponse{
			BudgetID:       st.BudgetID,
			CategoryID:     st.CategoryID,
			Budgeted:       int64(st.Budgeted),
			Spent:          int64(st.Spent),
			PercentUsed:    st.PercentUsed,
			Classification: st.Classification,
		})
	}

	writeJSON(w, resp)
}

func writeReportError(w http.ResponseWriter, err error) {
	if errors.Is(err, report.ErrInvalidWindow) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
