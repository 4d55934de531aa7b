package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/database"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

// GovernanceAuditRepository provides access to the append-only
// governance audit log. Entries are only ever inserted.
type GovernanceAuditRepository interface {
	Create(ctx context.Context, entry *models.GovernanceAuditEntry) error
	GetByUseCase(ctx context.Context, useCaseID uuid.UUID) ([]*models.GovernanceAuditEntry, error)
}

type governanceAuditRepository struct{}

// NewGovernanceAuditRepository creates a GovernanceAuditRepository.
func NewGovernanceAuditRepository() GovernanceAuditRepository {
	return &governanceAuditRepository{}
}

var _ GovernanceAuditRepository = (*governanceAuditRepository)(nil)

func (r *governanceAuditRepository) Create(ctx context.Context, entry *models.GovernanceAuditEntry) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()

	_, err := scope.Conn.Exec(ctx, `
		INSERT INTO portfolio_governance_audit_log (
			id, use_case_id, gate, action, actor, previous_status, new_status,
			phase_at_decision, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, entry.UseCaseID, entry.Gate, entry.Action, entry.Actor,
		entry.PreviousStatus, entry.NewStatus, entry.PhaseAtDecision,
		entry.Notes, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create governance audit entry: %w", err)
	}
	return nil
}

func (r *governanceAuditRepository) GetByUseCase(ctx context.Context, useCaseID uuid.UUID) ([]*models.GovernanceAuditEntry, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	rows, err := scope.Conn.Query(ctx, `
		SELECT id, use_case_id, gate, action, actor, previous_status, new_status,
			phase_at_decision, notes, created_at
		FROM portfolio_governance_audit_log
		WHERE use_case_id = $1
		ORDER BY created_at DESC`, useCaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query governance audit log: %w", err)
	}
	defer rows.Close()

	var entries []*models.GovernanceAuditEntry
	for rows.Next() {
		entry := &models.GovernanceAuditEntry{}
		if err := rows.Scan(
			&entry.ID, &entry.UseCaseID, &entry.Gate, &entry.Action, &entry.Actor,
			&entry.PreviousStatus, &entry.NewStatus, &entry.PhaseAtDecision,
			&entry.Notes, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan governance audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating governance audit entries: %w", err)
	}
	return entries, nil
}
