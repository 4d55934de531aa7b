package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/apperrors"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/database"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

// MetadataRepository provides access to the per-client configuration
// singleton. The row is read fresh on every request rather than cached,
// so weight/threshold changes take effect immediately.
type MetadataRepository interface {
	// Get returns the client's metadata config, or
	// apperrors.ErrNotFound when none has been stored yet.
	Get(ctx context.Context) (*models.MetadataConfig, error)

	// Upsert stores the config, replacing any existing row.
	Upsert(ctx context.Context, cfg *models.MetadataConfig) error
}

type metadataRepository struct{}

// NewMetadataRepository creates a MetadataRepository.
func NewMetadataRepository() MetadataRepository {
	return &metadataRepository{}
}

var _ MetadataRepository = (*metadataRepository)(nil)

func (r *metadataRepository) Get(ctx context.Context) (*models.MetadataConfig, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	var data []byte
	var updatedAt time.Time
	err := scope.Conn.QueryRow(ctx, `
		SELECT config, updated_at FROM portfolio_metadata_config
		WHERE client_id = current_setting('app.current_client_id')::uuid`,
	).Scan(&data, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata config: %w", err)
	}

	cfg := &models.MetadataConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata config: %w", err)
	}
	cfg.UpdatedAt = updatedAt
	return cfg, nil
}

func (r *metadataRepository) Upsert(ctx context.Context, cfg *models.MetadataConfig) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	cfg.UpdatedAt = time.Now()
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata config: %w", err)
	}

	_, err = scope.Conn.Exec(ctx, `
		INSERT INTO portfolio_metadata_config (client_id, config, updated_at)
		VALUES (current_setting('app.current_client_id')::uuid, $1, $2)
		ON CONFLICT (client_id) DO UPDATE SET config = $1, updated_at = $2`,
		data, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert metadata config: %w", err)
	}
	return nil
}
