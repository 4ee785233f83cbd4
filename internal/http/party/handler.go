package party

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/frotaops/fleetledger/internal/ledger"
	"github.com/frotaops/fleetledger/internal/party"
)

type Handler struct {
	svc *party.Service
}

func NewHandler(svc *party.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type partyResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Kind      party.Kind `json:"kind"`
	Document  string     `json:"document,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	City      string     `json:"city,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(p *party.Party) partyResponse {
	return partyResponse{
		ID:        p.ID,
		Name:      p.Name,
		Kind:      p.Kind,
		Document:  p.Document,
		Phone:     p.Phone,
		City:      p.City,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type createPartyRequest struct {
	Name     string     `json:"name"`
	Kind     party.Kind `json:"kind"`
	Document string     `json:"document"`
	Phone    string     `json:"phone"`
	City     string     `json:"city"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Create(r.Context(), party.CreateParams{
		Name:     req.Name,
		Kind:     req.Kind,
		Document: req.Document,
		Phone:    req.Phone,
		City:     req.City,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// list supports either ?kind= or ?direction=; direction resolves to the
// party kinds that can appear on entries of that direction.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		parties []*party.Party
		err     error
	)

	if d := r.URL.Query().Get("direction"); d != "" {
		direction := ledger.Direction(d)
		if !direction.Valid() {
			http.Error(w, "direction must be payable or receivable", http.StatusBadRequest)
			return
		}

		parties, err = h.svc.ListForDirection(r.Context(), direction)
	} else {
		parties, err = h.svc.List(r.Context(), party.Kind(r.URL.Query().Get("kind")))
	}

	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]partyResponse, len(parties))
	for i, p := range parties {
		resp[i] = toResponse(p)
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

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updatePartyRequest struct {
	Name     *string     `json:"name,omitempty"`
	Kind     *party.Kind `json:"kind,omitempty"`
	Document *string     `json:"document,omitempty"`
	Phone    *string     `json:"phone,omitempty"`
	City     *string     `json:"city,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updatePartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}

	if req.Kind != nil {
		p.Kind = *req.Kind
	}

	if req.Document != nil {
		p.Document = *req.Document
	}

	if req.Phone != nil {
		p.Phone = *req.Phone
	}

	if req.City != nil {
		p.City = *req.City
	}

	if err := h.svc.Update(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
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

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, party.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, party.ErrInvalidKind):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
