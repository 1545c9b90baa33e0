package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/energyinsights/backend/internal/domain"
)

// LookupService defines what the lookup handler requires from the service
// layer. It is declared locally so the handler package does not depend on
// the concrete service implementation.
type LookupService interface {
	Lookup(ctx context.Context, query string) domain.LookupResult
}

// LookupHandler serves the benchmark search endpoint.
type LookupHandler struct {
	lookup LookupService
	logger *slog.Logger
}

// NewLookupHandler creates a LookupHandler with the given service and logger.
func NewLookupHandler(lookup LookupService, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{
		lookup: lookup,
		logger: logger,
	}
}

// Lookup returns the benchmarks matching the q parameter, each with a fresh
// synthetic snapshot. An absent or empty q returns the whole catalog.
// GET /api/oil/lookup?q=brent
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	result := h.lookup.Lookup(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, result)
}
