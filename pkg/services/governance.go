package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/apperrors"
)

// GovernanceRecorder is the structured-event sink the governance engine
// appends audit entries through. The log is write-only from the
// engine's perspective.
type GovernanceRecorder interface {
	Record(ctx context.Context, entry *models.GovernanceAuditEntry) error
}

// GateDecisionInput carries one gate decision.
type GateDecisionInput struct {
	Decision     string `json:"decision"`
	Actor        string `json:"actor"`
	Notes        string `json:"notes,omitempty"`
	PriorityRank *int   `json:"priority_rank,omitempty"`
	RiskLevel    string `json:"risk_level,omitempty"`
}

// ActivationCheck is the structured result of an activation check. Not
// a boolean: callers render which gates are missing.
type ActivationCheck struct {
	Allowed      bool              `json:"allowed"`
	TargetStatus string            `json:"target_status"`
	MissingGates []models.GateType `json:"missing_gates,omitempty"`
}

// RegressionResult describes what a governance-regression check did.
type RegressionResult struct {
	Deactivated    bool              `json:"deactivated"`
	ForcedStatus   string            `json:"forced_status,omitempty"`
	RegressedGates []models.GateType `json:"regressed_gates,omitempty"`
	LegacyWarning  bool              `json:"legacy_warning,omitempty"`
}

// GateEngine enforces gate sequencing, activation gating and
// regression rules. Every decision and automatic correction is
// appended to the audit log through the injected recorder.
type GateEngine interface {
	// ApplyDecision records a gate decision on the use case. Gates must
	// be processed in operating-model -> intake -> rai order; a
	// violation returns apperrors.ErrGateSequence and appends no audit
	// entry.
	ApplyDecision(ctx context.Context, uc *models.UseCase, gate models.GateType, in GateDecisionInput) error

	// CheckActivation reports whether uc may move to targetStatus.
	// Non-active targets are always allowed.
	CheckActivation(uc *models.UseCase, targetStatus string) ActivationCheck

	// CheckPhaseEntry reports whether uc satisfies the entry gates of
	// the given phase. Used to veto manual phase overrides that would
	// jump a gate-guarded phase.
	CheckPhaseEntry(uc *models.UseCase, phase *models.TOMPhase) ActivationCheck

	// CheckRegression compares the previous gate state with the use
	// case's incoming state. A previously-passed gate that is no longer
	// passed on an active use case forces the status back to Backlog
	// and appends an AUTO_DEACTIVATION entry. An active use case that
	// has never been gated gets a one-time warning entry instead.
	CheckRegression(ctx context.Context, previous *models.Governance, uc *models.UseCase) (RegressionResult, error)
}

type gateEngine struct {
	recorder GovernanceRecorder
	now      func() time.Time
}

// NewGateEngine creates a GateEngine writing audit events through
// recorder.
func NewGateEngine(recorder GovernanceRecorder) GateEngine {
	return &gateEngine{recorder: recorder, now: time.Now}
}

func (e *gateEngine) ApplyDecision(ctx context.Context, uc *models.UseCase, gate models.GateType, in GateDecisionInput) error {
	if !models.DecisionAllowed(gate, in.Decision) {
		return fmt.Errorf("%w: decision %q is not valid for gate %s", apperrors.ErrValidation, in.Decision, gate)
	}

	// Sequence check: every earlier gate must already be satisfied.
	for _, earlier := range models.GateOrder {
		if earlier == gate {
			break
		}
		if !uc.Governance.Gate(earlier).Passed() {
			return fmt.Errorf("%w: %s gate requires %s to be approved first", apperrors.ErrGateSequence, gate, earlier)
		}
	}

	now := e.now()
	rec := &models.GateRecord{
		Decision:  in.Decision,
		Actor:     in.Actor,
		Notes:     in.Notes,
		DecidedAt: &now,
	}
	if gate == models.GateIntake && in.Decision == models.DecisionApproved {
		rec.PriorityRank = in.PriorityRank
	}
	if gate == models.GateRAI {
		rec.RiskLevel = in.RiskLevel
	}

	var prevDecision string
	if prev := uc.Governance.Gate(gate); prev != nil {
		prevDecision = prev.Decision
	}
	uc.Governance.SetGate(gate, rec)

	return e.recorder.Record(ctx, &models.GovernanceAuditEntry{
		UseCaseID:       uc.ID,
		Gate:            gate,
		Action:          models.AuditActionGateDecision,
		Actor:           in.Actor,
		PreviousStatus:  prevDecision,
		NewStatus:       in.Decision,
		PhaseAtDecision: uc.TOMPhase,
		Notes:           in.Notes,
	})
}

func (e *gateEngine) CheckActivation(uc *models.UseCase, targetStatus string) ActivationCheck {
	check := ActivationCheck{Allowed: true, TargetStatus: targetStatus}
	if !models.IsActiveStatus(targetStatus) {
		return check
	}

	if missing := uc.Governance.MissingFor(); len(missing) > 0 {
		check.Allowed = false
		check.MissingGates = missing
	}
	return check
}

func (e *gateEngine) CheckPhaseEntry(uc *models.UseCase, phase *models.TOMPhase) ActivationCheck {
	check := ActivationCheck{Allowed: true, TargetStatus: phase.ID}
	for _, gate := range phase.RequiredGates {
		if !uc.Governance.Gate(gate).Passed() {
			check.MissingGates = append(check.MissingGates, gate)
		}
	}
	check.Allowed = len(check.MissingGates) == 0
	return check
}

func (e *gateEngine) CheckRegression(ctx context.Context, previous *models.Governance, uc *models.UseCase) (RegressionResult, error) {
	var result RegressionResult
	if previous == nil || !models.IsActiveStatus(uc.UseCaseStatus) {
		return result, nil
	}

	for _, gate := range models.GateOrder {
		if previous.Gate(gate).Passed() && !uc.Governance.Gate(gate).Passed() {
			result.RegressedGates = append(result.RegressedGates, gate)
		}
	}

	if len(result.RegressedGates) > 0 {
		prevStatus := uc.UseCaseStatus
		uc.UseCaseStatus = models.StatusBacklog
		result.Deactivated = true
		result.ForcedStatus = models.StatusBacklog

		err := e.recorder.Record(ctx, &models.GovernanceAuditEntry{
			UseCaseID:       uc.ID,
			Gate:            result.RegressedGates[0],
			Action:          models.AuditActionAutoDeactivation,
			PreviousStatus:  prevStatus,
			NewStatus:       models.StatusBacklog,
			PhaseAtDecision: uc.TOMPhase,
			Notes:           fmt.Sprintf("governance regression on %s", gateList(result.RegressedGates)),
		})
		return result, err
	}

	// Legacy: active before gate tracking existed, still never gated.
	// Warn once, never force deactivation.
	if !previous.AnyDecided() && !uc.Governance.AnyDecided() {
		if uc.Governance.LegacyWarnedAt == nil {
			// A wholesale governance patch must not reset the marker.
			uc.Governance.LegacyWarnedAt = previous.LegacyWarnedAt
		}
		if uc.Governance.LegacyWarnedAt != nil {
			return result, nil
		}
		now := e.now()
		uc.Governance.LegacyWarnedAt = &now
		result.LegacyWarning = true
		err := e.recorder.Record(ctx, &models.GovernanceAuditEntry{
			UseCaseID:       uc.ID,
			Action:          models.AuditActionLegacyGateWarning,
			PreviousStatus:  uc.UseCaseStatus,
			NewStatus:       uc.UseCaseStatus,
			PhaseAtDecision: uc.TOMPhase,
			Notes:           "active use case predates governance tracking; gates now required",
		})
		return result, err
	}

	return result, nil
}

func gateList(gates []models.GateType) string {
	s := ""
	for i, g := range gates {
		if i > 0 {
			s += ", "
		}
		s += string(g)
	}
	return s
}
