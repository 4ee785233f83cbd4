package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/frotaops/fleetledger/internal/export"
	ledgerHandler "github.com/frotaops/fleetledger/internal/http/ledger"
	"github.com/frotaops/fleetledger/internal/ledger"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	direction := ledger.Direction(r.URL.Query().Get("direction"))
	if !direction.Valid() {
		http.Error(w, "direction must be payable or receivable", http.StatusBadRequest)
		return
	}

	// Same filters as the listing endpoints.
	filter, err := ledgerHandler.FilterFromQuery(r, direction)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filename := fmt.Sprintf("%s-%s.csv", direction, time.Now().Format(time.DateOnly))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.svc.Export(r.Context(), filter, w); err != nil {
		// Headers may already be out; all we can do is log.
		slog.Error("failed to export entries", "error", err)
	}
}
