package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/apperrors"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/database"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

// EngagementRepository provides data access for engagements.
type EngagementRepository interface {
	Create(ctx context.Context, eng *models.Engagement) error
	Update(ctx context.Context, eng *models.Engagement) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Engagement, error)

	// GetDefault returns the default engagement for the tenant, used
	// when a use case is created without an explicit engagement.
	GetDefault(ctx context.Context) (*models.Engagement, error)

	List(ctx context.Context) ([]*models.Engagement, error)
}

type engagementRepository struct{}

// NewEngagementRepository creates an EngagementRepository.
func NewEngagementRepository() EngagementRepository {
	return &engagementRepository{}
}

var _ EngagementRepository = (*engagementRepository)(nil)

const engagementColumns = `
	id, client_id, name, tom_preset_id, tom_phases_json, locked, is_default,
	created_at, updated_at`

func (r *engagementRepository) Create(ctx context.Context, eng *models.Engagement) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	if eng.ID == uuid.Nil {
		eng.ID = uuid.New()
	}
	if eng.ClientID == uuid.Nil {
		if clientID, ok := database.GetClientID(ctx); ok {
			eng.ClientID = clientID
		}
	}
	now := time.Now()
	eng.CreatedAt = now
	eng.UpdatedAt = now

	_, err := scope.Conn.Exec(ctx, `
		INSERT INTO portfolio_engagements (`+engagementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		eng.ID, eng.ClientID, eng.Name, eng.TOMPresetID, eng.TOMPhasesJSON,
		eng.Locked, eng.IsDefault, eng.CreatedAt, eng.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	return nil
}

func (r *engagementRepository) Update(ctx context.Context, eng *models.Engagement) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	eng.UpdatedAt = time.Now()

	tag, err := scope.Conn.Exec(ctx, `
		UPDATE portfolio_engagements SET
			name = $2, tom_preset_id = $3, tom_phases_json = $4, locked = $5,
			is_default = $6, updated_at = $7
		WHERE id = $1`,
		eng.ID, eng.Name, eng.TOMPresetID, eng.TOMPhasesJSON, eng.Locked,
		eng.IsDefault, eng.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update engagement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *engagementRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Engagement, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	row := scope.Conn.QueryRow(ctx,
		`SELECT `+engagementColumns+` FROM portfolio_engagements WHERE id = $1`, id)
	return scanEngagement(row)
}

func (r *engagementRepository) GetDefault(ctx context.Context) (*models.Engagement, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	row := scope.Conn.QueryRow(ctx,
		`SELECT `+engagementColumns+` FROM portfolio_engagements WHERE is_default ORDER BY created_at LIMIT 1`)
	return scanEngagement(row)
}

func (r *engagementRepository) List(ctx context.Context) ([]*models.Engagement, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	rows, err := scope.Conn.Query(ctx,
		`SELECT `+engagementColumns+` FROM portfolio_engagements ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query engagements: %w", err)
	}
	defer rows.Close()

	var result []*models.Engagement
	for rows.Next() {
		eng, err := scanEngagement(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, eng)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating engagements: %w", err)
	}
	return result, nil
}

func scanEngagement(row pgx.Row) (*models.Engagement, error) {
	eng := &models.Engagement{}
	err := row.Scan(
		&eng.ID, &eng.ClientID, &eng.Name, &eng.TOMPresetID, &eng.TOMPhasesJSON,
		&eng.Locked, &eng.IsDefault, &eng.CreatedAt, &eng.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan engagement: %w", err)
	}
	return eng, nil
}
