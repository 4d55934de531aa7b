// Package repositories provides pgx-backed data access. All queries run
// on the tenant-scoped connection carried in the request context.
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/apperrors"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/database"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

// UseCaseRepository provides data access for use cases.
type UseCaseRepository interface {
	Create(ctx context.Context, uc *models.UseCase) error
	Update(ctx context.Context, uc *models.UseCase) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.UseCase, error)
	List(ctx context.Context) ([]*models.UseCase, error)
	ListByEngagement(ctx context.Context, engagementID uuid.UUID) ([]*models.UseCase, error)

	// NextSequence returns the next meaningful-id sequence number for a
	// category.
	NextSequence(ctx context.Context, category string) (int, error)
}

type useCaseRepository struct{}

// NewUseCaseRepository creates a UseCaseRepository.
func NewUseCaseRepository() UseCaseRepository {
	return &useCaseRepository{}
}

var _ UseCaseRepository = (*useCaseRepository)(nil)

const useCaseColumns = `
	id, engagement_id, meaningful_id, title, description, category, t_shirt_size,
	use_case_status, deployment_status, tom_phase, tom_phase_override,
	phase_matched_by, phase_entered_at, impact_score, effort_score, quadrant,
	business_value, feasibility, manual_scores, governance, classification,
	library_source, library_tier, extensions, capability_transition,
	value_realization, created_at, updated_at`

func (r *useCaseRepository) Create(ctx context.Context, uc *models.UseCase) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	if uc.ID == uuid.Nil {
		uc.ID = uuid.New()
	}
	now := time.Now()
	uc.CreatedAt = now
	uc.UpdatedAt = now

	cols, err := marshalUseCaseJSON(uc)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO portfolio_use_cases (` + useCaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`

	_, err = scope.Conn.Exec(ctx, query,
		uc.ID, uc.EngagementID, uc.MeaningfulID, uc.Title, uc.Description,
		uc.Category, uc.TShirtSize, uc.UseCaseStatus, uc.DeploymentStatus,
		uc.TOMPhase, uc.TOMPhaseOverride, uc.PhaseMatchedBy, uc.PhaseEnteredAt,
		uc.ImpactScore, uc.EffortScore, uc.Quadrant,
		cols.businessValue, cols.feasibility, cols.manual, cols.governance,
		cols.classification, uc.LibrarySource, uc.LibraryTier, cols.extensions,
		cols.capability, cols.value, uc.CreatedAt, uc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create use case: %w", err)
	}
	return nil
}

func (r *useCaseRepository) Update(ctx context.Context, uc *models.UseCase) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	uc.UpdatedAt = time.Now()

	cols, err := marshalUseCaseJSON(uc)
	if err != nil {
		return err
	}

	query := `
		UPDATE portfolio_use_cases SET
			engagement_id = $2, meaningful_id = $3, title = $4, description = $5,
			category = $6, t_shirt_size = $7, use_case_status = $8,
			deployment_status = $9, tom_phase = $10, tom_phase_override = $11,
			phase_matched_by = $12, phase_entered_at = $13, impact_score = $14,
			effort_score = $15, quadrant = $16, business_value = $17,
			feasibility = $18, manual_scores = $19, governance = $20,
			classification = $21, library_source = $22, library_tier = $23,
			extensions = $24, capability_transition = $25, value_realization = $26,
			updated_at = $27
		WHERE id = $1`

	tag, err := scope.Conn.Exec(ctx, query,
		uc.ID, uc.EngagementID, uc.MeaningfulID, uc.Title, uc.Description,
		uc.Category, uc.TShirtSize, uc.UseCaseStatus, uc.DeploymentStatus,
		uc.TOMPhase, uc.TOMPhaseOverride, uc.PhaseMatchedBy, uc.PhaseEnteredAt,
		uc.ImpactScore, uc.EffortScore, uc.Quadrant,
		cols.businessValue, cols.feasibility, cols.manual, cols.governance,
		cols.classification, uc.LibrarySource, uc.LibraryTier, cols.extensions,
		cols.capability, cols.value, uc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update use case: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *useCaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.UseCase, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	row := scope.Conn.QueryRow(ctx,
		`SELECT `+useCaseColumns+` FROM portfolio_use_cases WHERE id = $1`, id)

	uc, err := scanUseCase(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get use case: %w", err)
	}
	return uc, nil
}

func (r *useCaseRepository) List(ctx context.Context) ([]*models.UseCase, error) {
	return r.list(ctx, `SELECT `+useCaseColumns+` FROM portfolio_use_cases ORDER BY created_at`)
}

func (r *useCaseRepository) ListByEngagement(ctx context.Context, engagementID uuid.UUID) ([]*models.UseCase, error) {
	return r.list(ctx,
		`SELECT `+useCaseColumns+` FROM portfolio_use_cases WHERE engagement_id = $1 ORDER BY created_at`,
		engagementID)
}

func (r *useCaseRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.UseCase, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	rows, err := scope.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query use cases: %w", err)
	}
	defer rows.Close()

	var result []*models.UseCase
	for rows.Next() {
		uc, err := scanUseCase(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, uc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating use cases: %w", err)
	}
	return result, nil
}

func (r *useCaseRepository) NextSequence(ctx context.Context, category string) (int, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no tenant scope in context")
	}

	var next int
	err := scope.Conn.QueryRow(ctx,
		`SELECT COUNT(*) + 1 FROM portfolio_use_cases WHERE category = $1`,
		category).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next sequence: %w", err)
	}
	return next, nil
}

// jsonColumns holds the marshalled JSONB columns for a use case row.
type jsonColumns struct {
	businessValue  []byte
	feasibility    []byte
	manual         []byte
	governance     []byte
	classification []byte
	extensions     []byte
	capability     []byte
	value          []byte
}

func marshalUseCaseJSON(uc *models.UseCase) (*jsonColumns, error) {
	cols := &jsonColumns{}
	var err error
	if cols.businessValue, err = json.Marshal(uc.BusinessValue); err != nil {
		return nil, fmt.Errorf("failed to marshal business value: %w", err)
	}
	if cols.feasibility, err = json.Marshal(uc.Feasibility); err != nil {
		return nil, fmt.Errorf("failed to marshal feasibility: %w", err)
	}
	if cols.governance, err = json.Marshal(uc.Governance); err != nil {
		return nil, fmt.Errorf("failed to marshal governance: %w", err)
	}
	if cols.classification, err = json.Marshal(uc.Classification); err != nil {
		return nil, fmt.Errorf("failed to marshal classification: %w", err)
	}
	if uc.Manual != nil {
		if cols.manual, err = json.Marshal(uc.Manual); err != nil {
			return nil, fmt.Errorf("failed to marshal manual scores: %w", err)
		}
	}
	if uc.Extensions != nil {
		if cols.extensions, err = json.Marshal(uc.Extensions); err != nil {
			return nil, fmt.Errorf("failed to marshal extensions: %w", err)
		}
	}
	if uc.CapabilityTransition != nil {
		if cols.capability, err = json.Marshal(uc.CapabilityTransition); err != nil {
			return nil, fmt.Errorf("failed to marshal capability transition: %w", err)
		}
	}
	if uc.ValueRealization != nil {
		if cols.value, err = json.Marshal(uc.ValueRealization); err != nil {
			return nil, fmt.Errorf("failed to marshal value realization: %w", err)
		}
	}
	return cols, nil
}

func scanUseCase(row pgx.Row) (*models.UseCase, error) {
	uc := &models.UseCase{}
	var businessValue, feasibility, governance, classification []byte
	var manual, extensions, capability, value []byte

	err := row.Scan(
		&uc.ID, &uc.EngagementID, &uc.MeaningfulID, &uc.Title, &uc.Description,
		&uc.Category, &uc.TShirtSize, &uc.UseCaseStatus, &uc.DeploymentStatus,
		&uc.TOMPhase, &uc.TOMPhaseOverride, &uc.PhaseMatchedBy, &uc.PhaseEnteredAt,
		&uc.ImpactScore, &uc.EffortScore, &uc.Quadrant,
		&businessValue, &feasibility, &manual, &governance, &classification,
		&uc.LibrarySource, &uc.LibraryTier, &extensions, &capability, &value,
		&uc.CreatedAt, &uc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalInto(businessValue, &uc.BusinessValue); err != nil {
		return nil, err
	}
	if err := unmarshalInto(feasibility, &uc.Feasibility); err != nil {
		return nil, err
	}
	if err := unmarshalInto(governance, &uc.Governance); err != nil {
		return nil, err
	}
	if err := unmarshalInto(classification, &uc.Classification); err != nil {
		return nil, err
	}
	if len(manual) > 0 {
		uc.Manual = &models.ManualScores{}
		if err := unmarshalInto(manual, uc.Manual); err != nil {
			return nil, err
		}
	}
	if len(extensions) > 0 {
		uc.Extensions = &models.LibraryExtensions{}
		if err := unmarshalInto(extensions, uc.Extensions); err != nil {
			return nil, err
		}
	}
	if len(capability) > 0 {
		uc.CapabilityTransition = &models.CapabilityTransition{}
		if err := unmarshalInto(capability, uc.CapabilityTransition); err != nil {
			return nil, err
		}
	}
	if len(value) > 0 {
		uc.ValueRealization = &models.ValueRealization{}
		if err := unmarshalInto(value, uc.ValueRealization); err != nil {
			return nil, err
		}
	}

	return uc, nil
}

func unmarshalInto(data []byte, dst interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal use case column: %w", err)
	}
	return nil
}
