package database

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// TenantScopeKey is the context key for the client-scoped database
	// connection.
	TenantScopeKey contextKey = "tenantScope"

	// ClientIDKey is the context key for the resolved client id.
	ClientIDKey contextKey = "clientID"
)

// GetTenantScope retrieves the client-scoped database connection from
// context. Returns nil and false if not present.
func GetTenantScope(ctx context.Context) (*TenantScope, bool) {
	scope, ok := ctx.Value(TenantScopeKey).(*TenantScope)
	return scope, ok
}

// SetTenantScope stores the client-scoped database connection in
// context.
func SetTenantScope(ctx context.Context, scope *TenantScope) context.Context {
	return context.WithValue(ctx, TenantScopeKey, scope)
}

// GetClientID retrieves the resolved client id from context.
func GetClientID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ClientIDKey).(uuid.UUID)
	return id, ok
}

// SetClientID stores the resolved client id in context.
func SetClientID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ClientIDKey, id)
}
