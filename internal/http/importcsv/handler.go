package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dsilveira/tally/internal/category"
	"github.com/dsilveira/tally/internal/importer"
	"github.com/dsilveira/tally/internal/ledger"
	"github.com/dsilveira/tally/internal/money"
	"github.com/dsilveira/tally/internal/split"
)

// maxUploadSize bounds statement uploads; a year of statements is well
// under a megabyte.
const maxUploadSize = 10 << 20

type Handler struct {
	parser      *importer.Parser
	ledgerSvc   *ledger.Service
	categorySvc *category.Service
}

func NewHandler(parser *importer.Parser, ledgerSvc *ledger.Service, categorySvc *category.Service) *Handler {
	return &Handler{
		parser:      parser,
		ledgerSvc:   ledgerSvc,
		categorySvc: categorySvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

// draftDTO is one parsed statement row, pre-categorized where a mapping
// matched. Drafts go back to the client for review; nothing is persisted
// until the confirm call.
type draftDTO struct {
	Total       int64            `json:"total"`
	Direction   ledger.Direction `json:"direction"`
	Description string           `json:"description"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	PayerID     uuid.UUID        `json:"payer_id"`
	Date        string           `json:"date"`
}

type importResponse struct {
	Parsed int        `json:"parsed"`
	Drafts []draftDTO `json:"drafts"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	payerID, err := uuid.Parse(r.FormValue("payer_id"))
	if err != nil {
		http.Error(w, "payer_id field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file, payerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	drafts := make([]draftDTO, 0, len(params))

	for _, p := range params {
		draft := draftDTO{
			Total:       int64(p.Total),
			Direction:   p.Direction,
			Description: p.Description,
			PayerID:     p.Payer,
			Date:        p.Date.Format(time.DateOnly),
		}

		if id, ok, err := h.categorySvc.Suggest(r.Context(), p.Description); err == nil && ok {
			draft.CategoryID = &id
		}

		drafts = append(drafts, draft)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(importResponse{
		Parsed: len(drafts),
		Drafts: drafts,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type confirmRequest struct {
	Drafts []draftDTO `json:"drafts"`
}

type confirmResponse struct {
	Created int         `json:"created"`
	IDs     []uuid.UUID `json:"ids"`
}

// confirmImport persists reviewed drafts as payer-only equal splits. The
// client shares individual entries afterwards through the transactions
// PATCH endpoint.
func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.Drafts))

	for i, draft := range req.Drafts {
		date, err := time.Parse(time.DateOnly, draft.Date)
		if err != nil {
			http.Error(w, "draft date must be a calendar date (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}

		params := ledger.CreateParams{
			Total:       money.Money(draft.Total),
			Direction:   draft.Direction,
			Description: draft.Description,
			Payer:       draft.PayerID,
			Policy:      split.PolicyEqual,
			Date:        date,
		}

		if draft.CategoryID != nil {
			params.CategoryID = *draft.CategoryID
		}

		tx, err := h.ledgerSvc.Create(r.Context(), params)
		if err != nil {
			slog.Error("failed to create imported transaction", "row", i, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)

			return
		}

		ids = append(ids, tx.ID)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(confirmResponse{
		Created: len(ids),
		IDs:     ids,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
