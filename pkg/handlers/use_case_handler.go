package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/services"
)

// TenantMiddleware wraps a handler with tenant (client) scoping.
type TenantMiddleware func(http.HandlerFunc) http.HandlerFunc

// UseCaseListResponse for GET /api/use-cases
type UseCaseListResponse struct {
	UseCases []*models.UseCase `json:"use_cases"`
	Total    int               `json:"total"`
}

// UseCaseHandler handles use-case HTTP requests.
type UseCaseHandler struct {
	orc    *services.Orchestrator
	logger *zap.Logger
}

// NewUseCaseHandler creates a new use-case handler.
func NewUseCaseHandler(orc *services.Orchestrator, logger *zap.Logger) *UseCaseHandler {
	return &UseCaseHandler{orc: orc, logger: logger}
}

// RegisterRoutes registers the use-case handler's routes on the given
// mux.
func (h *UseCaseHandler) RegisterRoutes(mux *http.ServeMux, tenant TenantMiddleware) {
	mux.HandleFunc("POST /api/use-cases", tenant(h.Create))
	mux.HandleFunc("GET /api/use-cases", tenant(h.List))
	mux.HandleFunc("GET /api/use-cases/{uid}", tenant(h.Get))
	mux.HandleFunc("PUT /api/use-cases/{uid}", tenant(h.Update))
}

// Create handles POST /api/use-cases
func (h *UseCaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateUseCaseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	uc, err := h.orc.CreateUseCase(r.Context(), &input)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("use case created",
		zap.String("use_case_id", uc.ID.String()),
		zap.String("meaningful_id", uc.MeaningfulID))

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: uc}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// List handles GET /api/use-cases
func (h *UseCaseHandler) List(w http.ResponseWriter, r *http.Request) {
	useCases, err := h.orc.ListUseCases(r.Context())
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	response := UseCaseListResponse{UseCases: useCases, Total: len(useCases)}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/use-cases/{uid}
func (h *UseCaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseUseCaseID(w, r, h.logger)
	if !ok {
		return
	}

	uc, err := h.orc.GetUseCase(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: uc}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/use-cases/{uid}. Governance checks run
// before the update is applied; an activation to a gated status with
// missing gates is rejected with 403 and the missing-gate detail.
func (h *UseCaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ParseUseCaseID(w, r, h.logger)
	if !ok {
		return
	}

	var patch services.UseCasePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	uc, err := h.orc.UpdateUseCase(r.Context(), id, &patch)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: uc}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
