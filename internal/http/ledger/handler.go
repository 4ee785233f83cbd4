package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frotaops/fleetledger/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/payables", h.listPayables)
	r.Get("/receivables", h.listReceivables)
	r.Get("/summary", h.summary)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/settle", h.settle)
}

type createEntryRequest struct {
	Direction         ledger.Direction `json:"direction"`
	CategoryID        uuid.UUID        `json:"category_id"`
	PartyID           uuid.UUID        `json:"party_id"`
	Amount            decimal.Decimal  `json:"amount"`
	TotalInstallments int              `json:"total_installments"`
	AccrualDate       string           `json:"accrual_date"`
	DueDate           string           `json:"due_date"`
	DocumentNumber    string           `json:"document_number"`
	Origin            ledger.Origin    `json:"origin"`
	OriginID          *uuid.UUID       `json:"origin_id"`
	Note              string           `json:"note"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	accrual, err := time.Parse(time.DateOnly, req.AccrualDate)
	if err != nil {
		http.Error(w, "invalid accrual_date", http.StatusBadRequest)
		return
	}

	due, err := time.Parse(time.DateOnly, req.DueDate)
	if err != nil {
		http.Error(w, "invalid due_date", http.StatusBadRequest)
		return
	}

	entries, err := h.svc.Create(r.Context(), ledger.CreateParams{
		Direction:         req.Direction,
		CategoryID:        req.CategoryID,
		PartyID:           req.PartyID,
		TotalAmount:       req.Amount,
		TotalInstallments: req.TotalInstallments,
		AccrualDate:       accrual,
		DueDate:           due,
		DocumentNumber:    req.DocumentNumber,
		Origin:            req.Origin,
		OriginID:          req.OriginID,
		Note:              req.Note,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponseList(entries, time.Now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listPayables(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, ledger.DirectionPayable)
}

func (h *Handler) listReceivables(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, ledger.DirectionReceivable)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, direction ledger.Direction) {
	filter, err := FilterFromQuery(r, direction)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(entries, time.Now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	direction := ledger.Direction(r.URL.Query().Get("direction"))
	if !direction.Valid() {
		http.Error(w, "direction must be payable or receivable", http.StatusBadRequest)
		return
	}

	filter, err := FilterFromQuery(r, direction)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sum, err := h.svc.Summarize(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaryResponse(sum)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	entry, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(entry, time.Now())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateEntryRequest struct {
	CategoryID     *uuid.UUID       `json:"category_id,omitempty"`
	PartyID        *uuid.UUID       `json:"party_id,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	AccrualDate    *string          `json:"accrual_date,omitempty"`
	DueDate        *string          `json:"due_date,omitempty"`
	DocumentNumber *string          `json:"document_number,omitempty"`
	Note           *string          `json:"note,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.CategoryID != nil {
		entry.CategoryID = *req.CategoryID
	}

	if req.PartyID != nil {
		entry.PartyID = *req.PartyID
	}

	if req.Amount != nil {
		entry.TotalAmount = *req.Amount
	}

	if req.AccrualDate != nil {
		accrual, err := time.Parse(time.DateOnly, *req.AccrualDate)
		if err != nil {
			http.Error(w, "invalid accrual_date", http.StatusBadRequest)
			return
		}

		entry.AccrualDate = accrual
	}

	if req.DueDate != nil {
		due, err := time.Parse(time.DateOnly, *req.DueDate)
		if err != nil {
			http.Error(w, "invalid due_date", http.StatusBadRequest)
			return
		}

		entry.DueDate = due
	}

	if req.DocumentNumber != nil {
		entry.DocumentNumber = *req.DocumentNumber
	}

	if req.Note != nil {
		entry.Note = *req.Note
	}

	if err := h.svc.Update(r.Context(), entry); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(entry, time.Now())); err != nil {
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
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type settleRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Date            string          `json:"date"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	CreateResidual  bool            `json:"create_residual"`
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req settleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var date time.Time

	if req.Date != "" {
		date, err = time.Parse(time.DateOnly, req.Date)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
	}

	result, err := h.svc.Settle(r.Context(), id, ledger.SettleParams{
		Amount:          req.Amount,
		Date:            date,
		PaymentMethodID: req.PaymentMethodID,
		CreateResidual:  req.CreateResidual,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSettleResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// FilterFromQuery parses the listing filters shared by the entry listing,
// summary and export endpoints, so every surface accepts the same query
// parameters.
func FilterFromQuery(r *http.Request, direction ledger.Direction) (ledger.ListFilter, error) {
	filter := ledger.ListFilter{Direction: &direction}

	q := r.URL.Query()

	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, errors.New("invalid start_date")
		}

		filter.StartDate = &t
	}

	if s := q.Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return filter, errors.New("invalid end_date")
		}

		filter.EndDate = &t
	}

	// month/year is the shorthand the screens use for "this month's bills".
	if m, y := q.Get("month"), q.Get("year"); m != "" && y != "" {
		start, err := time.Parse("2006-1", y+"-"+m)
		if err != nil {
			return filter, errors.New("invalid month/year")
		}

		end := start.AddDate(0, 1, -1)
		filter.StartDate = &start
		filter.EndDate = &end
	}

	if s := q.Get("category_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return filter, errors.New("invalid category_id")
		}

		filter.CategoryID = &id
	}

	if s := q.Get("party_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return filter, errors.New("invalid party_id")
		}

		filter.PartyID = &id
	}

	if s := q.Get("status"); s != "" {
		status := ledger.Status(s)
		if status != ledger.StatusOpen && status != ledger.StatusOverdue && status != ledger.StatusSettled {
			return filter, errors.New("status must be open, overdue or settled")
		}

		filter.Status = &status
	}

	return filter, nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ledger.ErrAlreadySettled):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidInstallmentCount),
		errors.Is(err, ledger.ErrMissingPaymentMethod),
		errors.Is(err, ledger.ErrMissingOrigin):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ledger.ErrInvalidPaymentAmount),
		errors.Is(err, ledger.ErrCategoryMismatch):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
