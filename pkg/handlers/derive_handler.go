package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/services"
)

// DeriveHandler handles bulk derivation runs and portfolio summaries.
type DeriveHandler struct {
	orc     *services.Orchestrator
	summary *services.SummaryService
	logger  *zap.Logger
}

// NewDeriveHandler creates a new derive handler.
func NewDeriveHandler(orc *services.Orchestrator, summary *services.SummaryService, logger *zap.Logger) *DeriveHandler {
	return &DeriveHandler{orc: orc, summary: summary, logger: logger}
}

// RegisterRoutes registers the derivation and summary routes on the
// given mux.
func (h *DeriveHandler) RegisterRoutes(mux *http.ServeMux, tenant TenantMiddleware) {
	mux.HandleFunc("POST /api/derive/all", tenant(h.DeriveAll))
	mux.HandleFunc("POST /api/capability/derive-all", tenant(h.DeriveCapabilityAll))
	mux.HandleFunc("POST /api/value/derive-all", tenant(h.DeriveValueAll))
	mux.HandleFunc("GET /api/tom/phase-summary", tenant(h.PhaseSummary))
	mux.HandleFunc("GET /api/capability/portfolio-summary", tenant(h.CapabilitySummary))
	mux.HandleFunc("GET /api/value/portfolio-summary", tenant(h.ValueSummary))
}

// decodeOptions reads DeriveAllOptions from the body. An empty body is
// fine, it just means no overwrite.
func (h *DeriveHandler) decodeOptions(w http.ResponseWriter, r *http.Request) (services.DeriveAllOptions, bool) {
	var opts services.DeriveAllOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && err != io.EOF {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return opts, false
	}
	return opts, true
}

// DeriveAll handles POST /api/derive/all
func (h *DeriveHandler) DeriveAll(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.decodeOptions(w, r)
	if !ok {
		return
	}

	result, err := h.orc.DeriveAll(r.Context(), opts)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("bulk derivation complete",
		zap.Int("total", result.Total),
		zap.Int("tom_derived", result.TOMDerived),
		zap.Int("errors", len(result.Errors)))

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeriveCapabilityAll handles POST /api/capability/derive-all
func (h *DeriveHandler) DeriveCapabilityAll(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.decodeOptions(w, r)
	if !ok {
		return
	}

	result, err := h.orc.DeriveCapabilityAll(r.Context(), opts.OverwriteCapability)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeriveValueAll handles POST /api/value/derive-all
func (h *DeriveHandler) DeriveValueAll(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.decodeOptions(w, r)
	if !ok {
		return
	}

	result, err := h.orc.DeriveValueAll(r.Context(), opts.OverwriteValue)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// scopeParam normalizes the ?scope= query parameter.
func scopeParam(r *http.Request) string {
	if r.URL.Query().Get("scope") == services.ScopeAll {
		return services.ScopeAll
	}
	return services.ScopeDashboard
}

// PhaseSummary handles GET /api/tom/phase-summary
func (h *DeriveHandler) PhaseSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summary.PhaseSummary(r.Context(), scopeParam(r))
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: summary}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CapabilitySummary handles GET /api/capability/portfolio-summary
func (h *DeriveHandler) CapabilitySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summary.CapabilitySummary(r.Context(), scopeParam(r))
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: summary}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ValueSummary handles GET /api/value/portfolio-summary
func (h *DeriveHandler) ValueSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summary.ValueSummary(r.Context(), scopeParam(r))
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: summary}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
