package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/services"
)

// EngagementListResponse for GET /api/engagements
type EngagementListResponse struct {
	Engagements []*models.Engagement `json:"engagements"`
	Total       int                  `json:"total"`
}

// EngagementHandler handles engagement HTTP requests.
type EngagementHandler struct {
	engagements services.EngagementService
	logger      *zap.Logger
}

// NewEngagementHandler creates a new engagement handler.
func NewEngagementHandler(engagements services.EngagementService, logger *zap.Logger) *EngagementHandler {
	return &EngagementHandler{engagements: engagements, logger: logger}
}

// RegisterRoutes registers the engagement routes on the given mux.
func (h *EngagementHandler) RegisterRoutes(mux *http.ServeMux, tenant TenantMiddleware) {
	mux.HandleFunc("GET /api/engagements", tenant(h.List))
	mux.HandleFunc("POST /api/engagements", tenant(h.Create))
	mux.HandleFunc("PUT /api/engagements/{eid}", tenant(h.Update))
}

// List handles GET /api/engagements
func (h *EngagementHandler) List(w http.ResponseWriter, r *http.Request) {
	engagements, err := h.engagements.List(r.Context())
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	response := EngagementListResponse{Engagements: engagements, Total: len(engagements)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/engagements
func (h *EngagementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var eng models.Engagement
	if err := json.NewDecoder(r.Body).Decode(&eng); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := h.engagements.Create(r.Context(), &eng); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("engagement created",
		zap.String("engagement_id", eng.ID.String()),
		zap.String("name", eng.Name))

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: eng}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/engagements/{eid}. Preset or phase-graph
// changes on a locked engagement are rejected with 409.
func (h *EngagementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseEngagementID(w, r, h.logger)
	if !ok {
		return
	}

	var patch services.EngagementPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	eng, err := h.engagements.Update(r.Context(), id, &patch)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: eng}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
