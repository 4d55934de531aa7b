package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/services"
)

// AuditTrailResponse for GET /api/governance/{uid}/audit
type AuditTrailResponse struct {
	Entries []*models.GovernanceAuditEntry `json:"entries"`
	Total   int                            `json:"total"`
}

// GovernanceHandler handles gate decisions and the audit trail.
type GovernanceHandler struct {
	orc    *services.Orchestrator
	audit  services.GovernanceAuditService
	logger *zap.Logger
}

// NewGovernanceHandler creates a new governance handler.
func NewGovernanceHandler(orc *services.Orchestrator, audit services.GovernanceAuditService, logger *zap.Logger) *GovernanceHandler {
	return &GovernanceHandler{orc: orc, audit: audit, logger: logger}
}

// RegisterRoutes registers the governance handler's routes on the
// given mux.
func (h *GovernanceHandler) RegisterRoutes(mux *http.ServeMux, tenant TenantMiddleware) {
	mux.HandleFunc("PATCH /api/governance/{uid}/operating-model", tenant(h.gateHandler(models.GateOperatingModel)))
	mux.HandleFunc("PATCH /api/governance/{uid}/intake", tenant(h.gateHandler(models.GateIntake)))
	mux.HandleFunc("PATCH /api/governance/{uid}/rai", tenant(h.gateHandler(models.GateRAI)))
	mux.HandleFunc("GET /api/governance/{uid}/audit", tenant(h.AuditTrail))
}

// gateHandler returns the PATCH handler for a single gate. The gate is
// fixed by the route, everything else comes from the body.
func (h *GovernanceHandler) gateHandler(gate models.GateType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := ParseUseCaseID(w, r, h.logger)
		if !ok {
			return
		}

		var input services.GateDecisionInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}

		uc, err := h.orc.ApplyGateDecision(r.Context(), id, gate, input)
		if err != nil {
			WriteServiceError(w, err, h.logger)
			return
		}

		h.logger.Info("gate decision applied",
			zap.String("use_case_id", id.String()),
			zap.String("gate", string(gate)),
			zap.String("decision", string(input.Decision)))

		if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: uc}); err != nil {
			h.logger.Error("Failed to write response", zap.Error(err))
		}
	}
}

// AuditTrail handles GET /api/governance/{uid}/audit
func (h *GovernanceHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseUseCaseID(w, r, h.logger)
	if !ok {
		return
	}

	entries, err := h.audit.Trail(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	response := AuditTrailResponse{Entries: entries, Total: len(entries)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
