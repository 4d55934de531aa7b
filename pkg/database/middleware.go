package database

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientIDHeader carries the tenant for a request. Requests without it
// fall back to the configured default client.
const ClientIDHeader = "X-Client-ID"

// WithClientContext creates middleware that resolves the tenant and
// sets up a client-scoped DB connection for the request. The connection
// is cleaned up after the handler returns.
func WithClientContext(db *DB, defaultClientID uuid.UUID, logger *zap.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			clientID := defaultClientID
			if header := r.Header.Get(ClientIDHeader); header != "" {
				parsed, err := uuid.Parse(header)
				if err != nil {
					writeError(w, http.StatusBadRequest, "invalid_client_id", "Invalid client ID format")
					return
				}
				clientID = parsed
			}
			if clientID == uuid.Nil {
				logger.Error("No client context available for request")
				writeError(w, http.StatusInternalServerError, "internal_error", "Missing client context")
				return
			}

			scope, err := db.WithClient(r.Context(), clientID)
			if err != nil {
				logger.Error("Failed to acquire client connection",
					zap.String("client_id", clientID.String()),
					zap.Error(err))
				writeError(w, http.StatusInternalServerError, "database_error", "Database connection error")
				return
			}
			defer scope.Close()

			ctx := SetTenantScope(r.Context(), scope)
			ctx = SetClientID(ctx, clientID)
			next(w, r.WithContext(ctx))
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}
