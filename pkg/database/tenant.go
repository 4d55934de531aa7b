package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TenantScope wraps a connection with client context and ensures
// cleanup. The connection has app.current_client_id set for RLS policy
// evaluation.
type TenantScope struct {
	Conn *pgxpool.Conn
}

// Close resets the client context and releases the connection to the
// pool. This MUST be called to prevent client context from leaking to
// the next request.
func (s *TenantScope) Close() {
	if s.Conn == nil {
		return
	}
	_, _ = s.Conn.Exec(context.Background(), "RESET app.current_client_id")
	s.Conn.Release()
}

// WithClient acquires a connection and sets the client context for RLS.
// The returned TenantScope MUST be closed with defer scope.Close().
func (db *DB) WithClient(ctx context.Context, clientID uuid.UUID) (*TenantScope, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	_, err = conn.Exec(ctx, "SELECT set_config('app.current_client_id', $1, false)", clientID.String())
	if err != nil {
		conn.Release()
		return nil, err
	}

	return &TenantScope{Conn: conn}, nil
}
