package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/services"
)

// MetadataPutResponse for PUT /api/metadata
type MetadataPutResponse struct {
	Config *models.MetadataConfig      `json:"config"`
	Result *services.MetadataPutResult `json:"result"`
}

// MetadataHandler handles the per-client metadata config.
type MetadataHandler struct {
	metadata services.MetadataService
	logger   *zap.Logger
}

// NewMetadataHandler creates a new metadata handler.
func NewMetadataHandler(metadata services.MetadataService, logger *zap.Logger) *MetadataHandler {
	return &MetadataHandler{metadata: metadata, logger: logger}
}

// RegisterRoutes registers the metadata routes on the given mux.
func (h *MetadataHandler) RegisterRoutes(mux *http.ServeMux, tenant TenantMiddleware) {
	mux.HandleFunc("GET /api/metadata", tenant(h.Get))
	mux.HandleFunc("PUT /api/metadata", tenant(h.Put))
}

// Get handles GET /api/metadata
func (h *MetadataHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.metadata.Get(r.Context())
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: cfg}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Put handles PUT /api/metadata. The write always lands; validation
// issues come back alongside the recalculation counts.
func (h *MetadataHandler) Put(w http.ResponseWriter, r *http.Request) {
	var cfg models.MetadataConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	result, err := h.metadata.Put(r.Context(), &cfg)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	response := MetadataPutResponse{Config: &cfg, Result: result}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
