package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/apperrors"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/repositories"
)

// ValidationError carries per-field friendly messages for a rejected
// input. Wraps apperrors.ErrValidation.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Issues, "; "))
}

func (e *ValidationError) Unwrap() error { return apperrors.ErrValidation }

// ActivationBlockedError is returned when a status change is vetoed by
// incomplete governance gates. Wraps apperrors.ErrActivationBlocked so
// the HTTP layer can map it, and carries the structured check so the
// caller can render which gates are missing.
type ActivationBlockedError struct {
	Check ActivationCheck
}

func (e *ActivationBlockedError) Error() string {
	return fmt.Sprintf("activation to %q blocked: missing gates %v", e.Check.TargetStatus, e.Check.MissingGates)
}

func (e *ActivationBlockedError) Unwrap() error { return apperrors.ErrActivationBlocked }

// CreateUseCaseInput is the validated payload for creating a use case.
type CreateUseCaseInput struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	TShirtSize   string     `json:"t_shirt_size"`
	EngagementID *uuid.UUID `json:"engagement_id"`

	BusinessValue models.BusinessValueLevers `json:"business_value"`
	Feasibility   models.FeasibilityLevers   `json:"feasibility"`

	UseCaseStatus    string `json:"use_case_status"`
	DeploymentStatus string `json:"deployment_status"`

	Classification models.Classification     `json:"classification"`
	LibrarySource  models.LibrarySource      `json:"library_source"`
	LibraryTier    string                    `json:"library_tier"`
	Extensions     *models.LibraryExtensions `json:"extensions"`
}

// UseCasePatch is a partial update; nil fields are untouched. The
// changed-field set drives which derivers rerun.
type UseCasePatch struct {
	Title            *string                     `json:"title"`
	Description      *string                     `json:"description"`
	Category         *string                     `json:"category"`
	TShirtSize       *string                     `json:"t_shirt_size"`
	BusinessValue    *models.BusinessValueLevers `json:"business_value"`
	Feasibility      *models.FeasibilityLevers   `json:"feasibility"`
	UseCaseStatus    *string                     `json:"use_case_status"`
	DeploymentStatus *string                     `json:"deployment_status"`
	TOMPhaseOverride *string                     `json:"tom_phase_override"`
	Manual           *models.ManualScores        `json:"manual"`
	Classification   *models.Classification      `json:"classification"`
	LibraryTier      *string                     `json:"library_tier"`
	Extensions       *models.LibraryExtensions   `json:"extensions"`
	Governance       *models.Governance          `json:"governance"`

	// User edits to derived sub-objects flip their derivation state to
	// user_edited so the orchestrator stops regenerating them.
	CapabilityTransition *models.CapabilityTransition `json:"capability_transition"`
	ValueRealization     *models.ValueRealization     `json:"value_realization"`

	// OverrideJustification permits a phase-regressing or gate-skipping
	// transition; it is recorded in the audit log.
	OverrideJustification string `json:"override_justification"`
}

// triggers captures which derivers a changed-field set requires.
type triggers struct {
	scores     bool
	phase      bool
	capability bool
	value      bool
}

// Orchestrator composes the derivation engines per use case. Mutations
// enter here; the governance engine is consulted first and can veto the
// mutation outright.
type Orchestrator struct {
	scoring    ScoringEngine
	phases     PhaseDeriver
	values     ValueEstimator
	capability CapabilityDeriver
	gates      GateEngine
	resolver   ConfigResolver
	recorder   GovernanceRecorder

	useCases    repositories.UseCaseRepository
	engagements repositories.EngagementRepository
	metadata    repositories.MetadataRepository

	defaults *models.MetadataConfig // seed used when no config row exists
	logger   *zap.Logger
	now      func() time.Time
}

// NewOrchestrator wires the derivation orchestrator.
func NewOrchestrator(
	scoring ScoringEngine,
	phases PhaseDeriver,
	values ValueEstimator,
	capability CapabilityDeriver,
	gates GateEngine,
	resolver ConfigResolver,
	recorder GovernanceRecorder,
	useCases repositories.UseCaseRepository,
	engagements repositories.EngagementRepository,
	metadata repositories.MetadataRepository,
	defaults *models.MetadataConfig,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		scoring:     scoring,
		phases:      phases,
		values:      values,
		capability:  capability,
		gates:       gates,
		resolver:    resolver,
		recorder:    recorder,
		useCases:    useCases,
		engagements: engagements,
		metadata:    metadata,
		defaults:    defaults,
		logger:      logger,
		now:         time.Now,
	}
}

// EffectiveConfig resolves the request's effective configuration:
// client metadata config (seed defaults when none stored) with the
// engagement's overrides layered on top.
func (o *Orchestrator) EffectiveConfig(ctx context.Context, eng *models.Engagement) (*ResolvedConfig, error) {
	meta, err := o.metadata.Get(ctx)
	if err != nil {
		if !errorsIsNotFound(err) {
			return nil, err
		}
		meta = o.defaults
	}
	return o.resolver.Resolve(meta, eng)
}

// CreateUseCase validates input, assigns a meaningful id, computes
// scores, derives phase/capability/value and persists the result.
// Derivation failures after validation do not fail the create; the use
// case is persisted with whatever was derived.
func (o *Orchestrator) CreateUseCase(ctx context.Context, in *CreateUseCaseInput) (*models.UseCase, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	eng, err := o.resolveEngagement(ctx, in.EngagementID)
	if err != nil {
		return nil, err
	}

	now := o.now()
	uc := &models.UseCase{
		ID:               uuid.New(),
		EngagementID:     eng.ID,
		Title:            in.Title,
		Description:      in.Description,
		Category:         in.Category,
		TShirtSize:       in.TShirtSize,
		BusinessValue:    in.BusinessValue,
		Feasibility:      in.Feasibility,
		UseCaseStatus:    in.UseCaseStatus,
		DeploymentStatus: in.DeploymentStatus,
		Classification:   in.Classification,
		LibrarySource:    in.LibrarySource,
		LibraryTier:      in.LibraryTier,
		Extensions:       in.Extensions,
	}
	if uc.UseCaseStatus == "" {
		uc.UseCaseStatus = models.StatusBacklog
	}
	if uc.LibraryTier == "" {
		uc.LibraryTier = models.TierActive
	}

	// A brand-new use case has no gate decisions, so creating straight
	// into an active status is always vetoed.
	if check := o.gates.CheckActivation(uc, uc.UseCaseStatus); !check.Allowed {
		return nil, &ActivationBlockedError{Check: check}
	}

	seq, err := o.useCases.NextSequence(ctx, uc.Category)
	if err != nil {
		return nil, err
	}
	uc.MeaningfulID = meaningfulID(uc.Category, seq)

	cfg, err := o.EffectiveConfig(ctx, eng)
	if err != nil {
		// Derivation config failure is recovered: the create itself
		// still succeeds, scores default to zero until the next derive.
		o.logger.Warn("skipping derivation on create: config resolution failed",
			zap.String("use_case_id", uc.ID.String()),
			zap.Error(err))
	} else {
		o.deriveScores(uc, cfg)
		o.derivePhase(uc, cfg, "", now)
		o.deriveCapability(uc, cfg, now)
		o.deriveValue(uc, cfg, now)
	}

	if err := o.useCases.Create(ctx, uc); err != nil {
		return nil, err
	}
	return uc, nil
}

// UpdateUseCase applies a partial update. The governance engine is
// consulted first: an activation to a gated status with missing gates
// vetoes the mutation; a regression on an active use case forces it
// back to Backlog with an audit entry. Re-derivation is driven by which
// fields changed.
func (o *Orchestrator) UpdateUseCase(ctx context.Context, id uuid.UUID, patch *UseCasePatch) (*models.UseCase, error) {
	uc, err := o.useCases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prevStatus := uc.UseCaseStatus
	prevPhase := uc.TOMPhase
	prevGovernance := uc.Governance

	trig := patchTriggers(patch)

	eng, err := o.engagements.GetByID(ctx, uc.EngagementID)
	if err != nil {
		return nil, err
	}
	cfg, err := o.EffectiveConfig(ctx, eng)
	if err != nil {
		return nil, err
	}

	// Governance vetoes run before any field is applied. The gate
	// checks see the incoming governance state, not the stored one.
	probe := *uc
	if patch.Governance != nil {
		probe.Governance = *patch.Governance
	}

	if patch.UseCaseStatus != nil && *patch.UseCaseStatus != prevStatus {
		check := o.gates.CheckActivation(&probe, *patch.UseCaseStatus)
		if !check.Allowed {
			if patch.OverrideJustification == "" {
				return nil, &ActivationBlockedError{Check: check}
			}
			// Explicit justification lets the transition through but is
			// always recorded.
			if err := o.recorder.Record(ctx, &models.GovernanceAuditEntry{
				UseCaseID:       uc.ID,
				Action:          models.AuditActionPhaseOverride,
				PreviousStatus:  prevStatus,
				NewStatus:       *patch.UseCaseStatus,
				PhaseAtDecision: uc.TOMPhase,
				Notes:           patch.OverrideJustification,
			}); err != nil {
				return nil, err
			}
		}
	}

	// A manual phase pin may not jump a gate-guarded phase silently:
	// missing entry gates require an explicit justification, which is
	// recorded in the audit log.
	if patch.TOMPhaseOverride != nil {
		target := *patch.TOMPhaseOverride
		if target != "" && target != uc.TOMPhaseOverride && target != uc.TOMPhase {
			if phase := cfg.Phase(target); phase != nil {
				check := o.gates.CheckPhaseEntry(&probe, phase)
				if !check.Allowed {
					if patch.OverrideJustification == "" {
						return nil, &ActivationBlockedError{Check: check}
					}
					if err := o.recorder.Record(ctx, &models.GovernanceAuditEntry{
						UseCaseID:       uc.ID,
						Gate:            check.MissingGates[0],
						Action:          models.AuditActionPhaseOverride,
						PreviousStatus:  prevPhase,
						NewStatus:       target,
						PhaseAtDecision: prevPhase,
						Notes:           patch.OverrideJustification,
					}); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	applyPatch(uc, patch, o.now())

	// Regression check: a previously-passed gate unset on an active use
	// case forces deactivation.
	if trig.phase || patch.Governance != nil {
		if _, err := o.gates.CheckRegression(ctx, &prevGovernance, uc); err != nil {
			return nil, err
		}
	}

	now := o.now()
	prevQuadrant := uc.Quadrant
	if trig.scores {
		o.deriveScores(uc, cfg)
	}
	if trig.phase || uc.UseCaseStatus != prevStatus {
		o.derivePhase(uc, cfg, prevPhase, now)
	}
	if trig.capability || uc.Quadrant != prevQuadrant || uc.TOMPhase != prevPhase {
		o.deriveCapability(uc, cfg, now)
	}
	if trig.value {
		o.deriveValue(uc, cfg, now)
	}

	if err := o.useCases.Update(ctx, uc); err != nil {
		return nil, err
	}
	return uc, nil
}

// ApplyGateDecision records a governance gate decision and reruns the
// phase/capability derivers, since gate completion can unlock a phase.
func (o *Orchestrator) ApplyGateDecision(ctx context.Context, id uuid.UUID, gate models.GateType, in GateDecisionInput) (*models.UseCase, error) {
	uc, err := o.useCases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prevGovernance := uc.Governance
	prevPhase := uc.TOMPhase

	if err := o.gates.ApplyDecision(ctx, uc, gate, in); err != nil {
		return nil, err
	}

	if _, err := o.gates.CheckRegression(ctx, &prevGovernance, uc); err != nil {
		return nil, err
	}

	eng, err := o.engagements.GetByID(ctx, uc.EngagementID)
	if err != nil {
		return nil, err
	}
	cfg, err := o.EffectiveConfig(ctx, eng)
	if err != nil {
		return nil, err
	}

	now := o.now()
	o.derivePhase(uc, cfg, prevPhase, now)
	if uc.TOMPhase != prevPhase {
		o.deriveCapability(uc, cfg, now)
	}

	if err := o.useCases.Update(ctx, uc); err != nil {
		return nil, err
	}
	return uc, nil
}

// GetUseCase returns a single use case.
func (o *Orchestrator) GetUseCase(ctx context.Context, id uuid.UUID) (*models.UseCase, error) {
	return o.useCases.GetByID(ctx, id)
}

// ListUseCases returns every use case in the tenant.
func (o *Orchestrator) ListUseCases(ctx context.Context) ([]*models.UseCase, error) {
	return o.useCases.List(ctx)
}

// deriveScores recomputes the cached scores and quadrant. Manual
// overrides are display-only and never replace the derived values.
func (o *Orchestrator) deriveScores(uc *models.UseCase, cfg *ResolvedConfig) {
	uc.ImpactScore = o.scoring.ImpactScore(uc.BusinessValue, cfg.Scoring.ImpactWeights)
	uc.EffortScore = o.scoring.EffortScore(uc.Feasibility, cfg.Scoring.EffortWeights)
	uc.Quadrant = o.scoring.Quadrant(uc.ImpactScore, uc.EffortScore, cfg.Scoring.QuadrantThreshold)
}

// derivePhase reruns the phase deriver; on a phase change it resets
// phaseEnteredAt and applies the new phase's entry defaults to unset
// fields only.
func (o *Orchestrator) derivePhase(uc *models.UseCase, cfg *ResolvedConfig, prevPhase string, now time.Time) bool {
	if !cfg.TOMEnabled {
		return false
	}
	result := o.phases.Derive(uc, cfg)
	uc.TOMPhase = result.PhaseID
	uc.PhaseMatchedBy = result.MatchedBy

	if uc.TOMPhase == prevPhase {
		return false
	}
	uc.PhaseEnteredAt = &now
	if phase := cfg.Phase(uc.TOMPhase); phase != nil {
		o.applyPhaseDefaults(uc, phase, now)
	}
	return true
}

// applyPhaseDefaults fills phase-entry defaults into fields the user
// has not already set. A user-supplied value is never overwritten.
func (o *Orchestrator) applyPhaseDefaults(uc *models.UseCase, phase *models.TOMPhase, now time.Time) {
	d := phase.EntryDefaults

	if d.DeploymentStatus != "" && uc.DeploymentStatus == "" {
		uc.DeploymentStatus = d.DeploymentStatus
	}

	if d.HexawareFTEs == nil && d.ClientFTEs == nil && d.TargetIndependencePct == nil {
		return
	}
	if uc.CapabilityTransition == nil {
		uc.CapabilityTransition = &models.CapabilityTransition{Derivation: models.AutoDerived(now)}
	}
	ct := uc.CapabilityTransition
	if d.HexawareFTEs != nil && ct.HexawareFTEs == nil {
		v := *d.HexawareFTEs
		ct.HexawareFTEs = &v
	}
	if d.ClientFTEs != nil && ct.ClientFTEs == nil {
		v := *d.ClientFTEs
		ct.ClientFTEs = &v
	}
	if d.TargetIndependencePct != nil && ct.TargetIndependencePct == nil {
		v := *d.TargetIndependencePct
		ct.TargetIndependencePct = &v
	}
}

// deriveCapability regenerates staffing defaults while the stored
// object is absent or auto-derived; user-edited objects are preserved.
func (o *Orchestrator) deriveCapability(uc *models.UseCase, cfg *ResolvedConfig, now time.Time) {
	if uc.CapabilityTransition != nil && !uc.CapabilityTransition.Derivation.CanAutoDerive() {
		return
	}
	uc.CapabilityTransition = o.capability.Derive(uc.TOMPhase, uc.TShirtSize, cfg.Capability, uc.CapabilityTransition, now)
}

// deriveValue regenerates KPI estimates while the stored object is
// absent or auto-derived; human-entered sub-objects survive the merge.
func (o *Orchestrator) deriveValue(uc *models.UseCase, cfg *ResolvedConfig, now time.Time) {
	if uc.ValueRealization != nil && !uc.ValueRealization.Derivation.CanAutoDerive() {
		return
	}
	readiness := ReadinessScores{
		DataReadiness:       uc.Feasibility.DataReadiness,
		TechnicalComplexity: uc.Feasibility.TechnicalComplexity,
		AdoptionReadiness:   uc.Feasibility.AdoptionReadiness,
	}
	uc.ValueRealization = o.values.Estimate(uc.Classification.Processes, readiness, cfg.KPILibrary, uc.ValueRealization, now)
}

func (o *Orchestrator) resolveEngagement(ctx context.Context, id *uuid.UUID) (*models.Engagement, error) {
	if id != nil {
		return o.engagements.GetByID(ctx, *id)
	}
	eng, err := o.engagements.GetDefault(ctx)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, &ValidationError{Issues: []string{"engagement_id is required: no default engagement configured"}}
		}
		return nil, err
	}
	return eng, nil
}

// patchTriggers derives the re-derivation set from the changed fields.
// Status, deployment-status or override changes recompute phase and
// capability; process-list or readiness-score changes recompute value;
// size changes recompute capability; lever changes recompute scores.
func patchTriggers(p *UseCasePatch) triggers {
	var t triggers
	if p.BusinessValue != nil || p.Feasibility != nil {
		t.scores = true
	}
	if p.Feasibility != nil || p.Classification != nil {
		t.value = true
	}
	if p.UseCaseStatus != nil || p.DeploymentStatus != nil || p.TOMPhaseOverride != nil || p.Governance != nil {
		t.phase = true
		t.capability = true
	}
	if p.TShirtSize != nil {
		t.capability = true
	}
	return t
}

func applyPatch(uc *models.UseCase, p *UseCasePatch, now time.Time) {
	if p.Title != nil {
		uc.Title = *p.Title
	}
	if p.Description != nil {
		uc.Description = *p.Description
	}
	if p.Category != nil {
		uc.Category = *p.Category
	}
	if p.TShirtSize != nil {
		uc.TShirtSize = *p.TShirtSize
	}
	if p.BusinessValue != nil {
		uc.BusinessValue = *p.BusinessValue
	}
	if p.Feasibility != nil {
		uc.Feasibility = *p.Feasibility
	}
	if p.UseCaseStatus != nil {
		uc.UseCaseStatus = *p.UseCaseStatus
	}
	if p.DeploymentStatus != nil {
		uc.DeploymentStatus = *p.DeploymentStatus
	}
	if p.TOMPhaseOverride != nil {
		uc.TOMPhaseOverride = *p.TOMPhaseOverride
	}
	if p.Manual != nil {
		uc.Manual = p.Manual
	}
	if p.Classification != nil {
		uc.Classification = *p.Classification
	}
	if p.LibraryTier != nil {
		uc.LibraryTier = *p.LibraryTier
	}
	if p.Extensions != nil {
		uc.Extensions = p.Extensions
	}
	if p.Governance != nil {
		uc.Governance = *p.Governance
	}
	if p.CapabilityTransition != nil {
		ct := *p.CapabilityTransition
		ct.Derivation = models.UserEdited(now)
		uc.CapabilityTransition = &ct
	}
	if p.ValueRealization != nil {
		vr := *p.ValueRealization
		vr.Derivation = models.UserEdited(now)
		uc.ValueRealization = &vr
	}
}

func validateCreate(in *CreateUseCaseInput) error {
	var issues []string
	if strings.TrimSpace(in.Title) == "" {
		issues = append(issues, "title is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		issues = append(issues, "category is required")
	}
	issues = append(issues, validateLevers("business_value", []int{
		in.BusinessValue.RevenueImpact, in.BusinessValue.CostSavings,
		in.BusinessValue.RiskReduction, in.BusinessValue.BrokerPartnerExperience,
		in.BusinessValue.StrategicFit,
	})...)
	issues = append(issues, validateLevers("feasibility", []int{
		in.Feasibility.DataReadiness, in.Feasibility.TechnicalComplexity,
		in.Feasibility.ChangeImpact, in.Feasibility.ModelRisk,
		in.Feasibility.AdoptionReadiness,
	})...)
	switch in.LibrarySource {
	case "", models.SourceRSAInternal, models.SourceIndustryStandard, models.SourceAIInventory:
	default:
		issues = append(issues, fmt.Sprintf("library_source %q is not recognised", in.LibrarySource))
	}
	if in.LibraryTier != "" && in.LibraryTier != models.TierActive && in.LibraryTier != models.TierReference {
		issues = append(issues, fmt.Sprintf("library_tier %q is not recognised", in.LibraryTier))
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// validateLevers accepts 0 (unscored) or 1-5.
func validateLevers(prefix string, levers []int) []string {
	var issues []string
	for _, v := range levers {
		if v < 0 || v > 5 {
			issues = append(issues, fmt.Sprintf("%s levers must be between 1 and 5", prefix))
			break
		}
	}
	return issues
}

// meaningfulID builds the human-readable category-scoped id, e.g.
// "UC-CLM-007" for the seventh claims use case.
func meaningfulID(category string, seq int) string {
	abbr := make([]rune, 0, 3)
	for _, r := range strings.ToUpper(category) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			abbr = append(abbr, r)
		}
		if len(abbr) == 3 {
			break
		}
	}
	if len(abbr) == 0 {
		abbr = []rune("GEN")
	}
	return fmt.Sprintf("UC-%s-%03d", string(abbr), seq)
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
