package services

import (
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

// How a phase was matched.
const (
	MatchedByManual          = "manual"
	MatchedByGovernanceEntry = "governance_entry"
	MatchedByDeployment      = "deployment"
	MatchedByStatus          = "status"
	MatchedByUnphased        = "unphased"
)

// PhaseUnphased is the bucket for use cases no phase rule matches, or
// that governance keeps out of their matched phase.
const PhaseUnphased = "unphased"

// PhaseResult is the outcome of a phase derivation.
type PhaseResult struct {
	PhaseID   string `json:"phase_id"`
	MatchedBy string `json:"matched_by"`
}

// PhaseDeriver maps a use case onto the resolved TOM phase graph.
type PhaseDeriver interface {
	// Derive resolves the phase for a use case. Resolution order:
	// manual override, governance entry gates, deployment-status rule,
	// use-case-status rule, unphased. A disabled TOM config returns the
	// use case's current phase unchanged.
	Derive(uc *models.UseCase, cfg *ResolvedConfig) PhaseResult
}

type phaseDeriver struct{}

// NewPhaseDeriver creates a PhaseDeriver.
func NewPhaseDeriver() PhaseDeriver {
	return &phaseDeriver{}
}

func (d *phaseDeriver) Derive(uc *models.UseCase, cfg *ResolvedConfig) PhaseResult {
	if !cfg.TOMEnabled {
		// No-op: leave whatever is cached on the entity.
		return PhaseResult{PhaseID: uc.TOMPhase, MatchedBy: uc.PhaseMatchedBy}
	}

	// 1. Manual pin wins when it names a real phase.
	if uc.TOMPhaseOverride != "" && cfg.Phase(uc.TOMPhaseOverride) != nil {
		return PhaseResult{PhaseID: uc.TOMPhaseOverride, MatchedBy: MatchedByManual}
	}

	matched, matchedBy := matchPhase(uc, cfg)
	if matched == nil {
		return PhaseResult{PhaseID: PhaseUnphased, MatchedBy: MatchedByUnphased}
	}

	// 2. A phase guarded by governance gates is unreachable until those
	// gates are satisfied; the use case is held in the pre-phase bucket.
	if len(matched.RequiredGates) > 0 && !gatesSatisfied(&uc.Governance, matched.RequiredGates) {
		return PhaseResult{PhaseID: PhaseUnphased, MatchedBy: MatchedByGovernanceEntry}
	}

	return PhaseResult{PhaseID: matched.ID, MatchedBy: matchedBy}
}

// matchPhase finds the first phase whose rules cover the use case.
// Deployment-status rules take precedence over use-case-status rules.
func matchPhase(uc *models.UseCase, cfg *ResolvedConfig) (*models.TOMPhase, string) {
	if uc.DeploymentStatus != "" {
		for i := range cfg.Phases {
			if containsString(cfg.Phases[i].DeploymentRules, uc.DeploymentStatus) {
				return &cfg.Phases[i], MatchedByDeployment
			}
		}
	}
	if uc.UseCaseStatus != "" {
		for i := range cfg.Phases {
			if containsString(cfg.Phases[i].StatusRules, uc.UseCaseStatus) {
				return &cfg.Phases[i], MatchedByStatus
			}
		}
	}
	return nil, ""
}

func gatesSatisfied(g *models.Governance, required []models.GateType) bool {
	for _, gate := range required {
		if !g.Gate(gate).Passed() {
			return false
		}
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
