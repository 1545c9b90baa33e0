package handler

import (
	"context"
	"net/http"

	"github.com/energyinsights/backend/internal/diag"
)

// DiagService defines what the diagnostic handler requires from the probe.
type DiagService interface {
	Check(ctx context.Context) diag.Report
}

// DiagHandler serves the dependency diagnostic endpoint.
type DiagHandler struct {
	probe DiagService
}

// NewDiagHandler creates a DiagHandler with the given probe.
func NewDiagHandler(probe DiagService) *DiagHandler {
	return &DiagHandler{probe: probe}
}

// Check reports whether the optional database and cache dependencies are
// configured and reachable. It always answers 200 with a full report.
// GET /test
func (h *DiagHandler) Check(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.probe.Check(r.Context()))
}
