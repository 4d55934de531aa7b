package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/logging"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/repositories"
)

// GovernanceAuditService persists governance audit entries and serves
// the per-use-case trail. Entries are append-only; nothing here updates
// past records.
type GovernanceAuditService interface {
	GovernanceRecorder

	// Trail returns the audit entries for a use case, newest first.
	Trail(ctx context.Context, useCaseID uuid.UUID) ([]*models.GovernanceAuditEntry, error)
}

type governanceAuditService struct {
	repo   repositories.GovernanceAuditRepository
	logger *zap.Logger
}

// NewGovernanceAuditService creates a GovernanceAuditService.
func NewGovernanceAuditService(repo repositories.GovernanceAuditRepository, logger *zap.Logger) GovernanceAuditService {
	return &governanceAuditService{repo: repo, logger: logger}
}

func (s *governanceAuditService) Record(ctx context.Context, entry *models.GovernanceAuditEntry) error {
	entry.Notes = logging.SanitizeNote(entry.Notes)

	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to record governance audit entry: %w", err)
	}

	s.logger.Info("governance event",
		zap.String("use_case_id", entry.UseCaseID.String()),
		zap.String("gate", string(entry.Gate)),
		zap.String("action", entry.Action),
		zap.String("previous", entry.PreviousStatus),
		zap.String("new", entry.NewStatus),
	)
	return nil
}

func (s *governanceAuditService) Trail(ctx context.Context, useCaseID uuid.UUID) ([]*models.GovernanceAuditEntry, error) {
	return s.repo.GetByUseCase(ctx, useCaseID)
}
