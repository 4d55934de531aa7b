package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

func testPhaseConfig() *ResolvedConfig {
	return &ResolvedConfig{
		TOMEnabled: true,
		PresetID:   "standard",
		Phases: []models.TOMPhase{
			{
				ID:              "foundation",
				Name:            "Foundation",
				StatusRules:     []string{models.StatusBacklog, models.StatusScoping},
				DeploymentRules: []string{models.DeploymentNotStarted},
			},
			{
				ID:              "pilot",
				Name:            "Pilot",
				StatusRules:     []string{models.StatusInFlight, models.StatusPilot},
				DeploymentRules: []string{models.DeploymentInDev, models.DeploymentPiloting},
				RequiredGates:   []models.GateType{models.GateOperatingModel, models.GateIntake},
			},
			{
				ID:              "scale",
				Name:            "Scale",
				StatusRules:     []string{models.StatusProduction},
				DeploymentRules: []string{models.DeploymentDeployed},
				RequiredGates:   []models.GateType{models.GateOperatingModel, models.GateIntake, models.GateRAI},
			},
		},
	}
}

func approvedGate() *models.GateRecord {
	return &models.GateRecord{Decision: models.DecisionApproved}
}

func TestPhaseDeriver_ManualOverrideWins(t *testing.T) {
	deriver := NewPhaseDeriver()

	uc := &models.UseCase{
		UseCaseStatus:    models.StatusBacklog,
		TOMPhaseOverride: "scale",
	}

	result := deriver.Derive(uc, testPhaseConfig())
	assert.Equal(t, "scale", result.PhaseID)
	assert.Equal(t, MatchedByManual, result.MatchedBy)
}

func TestPhaseDeriver_InvalidOverrideIgnored(t *testing.T) {
	deriver := NewPhaseDeriver()

	uc := &models.UseCase{
		UseCaseStatus:    models.StatusBacklog,
		TOMPhaseOverride: "no-such-phase",
	}

	result := deriver.Derive(uc, testPhaseConfig())
	assert.Equal(t, "foundation", result.PhaseID)
	assert.Equal(t, MatchedByStatus, result.MatchedBy)
}

func TestPhaseDeriver_DeploymentRuleBeatsStatusRule(t *testing.T) {
	deriver := NewPhaseDeriver()

	// Status says foundation, deployment says pilot; deployment wins.
	uc := &models.UseCase{
		UseCaseStatus:    models.StatusBacklog,
		DeploymentStatus: models.DeploymentInDev,
		Governance: models.Governance{
			OperatingModel: approvedGate(),
			Intake:         approvedGate(),
		},
	}

	result := deriver.Derive(uc, testPhaseConfig())
	assert.Equal(t, "pilot", result.PhaseID)
	assert.Equal(t, MatchedByDeployment, result.MatchedBy)
}

func TestPhaseDeriver_GatedPhaseHeldUntilGatesPass(t *testing.T) {
	deriver := NewPhaseDeriver()

	uc := &models.UseCase{UseCaseStatus: models.StatusInFlight}

	result := deriver.Derive(uc, testPhaseConfig())
	assert.Equal(t, PhaseUnphased, result.PhaseID)
	assert.Equal(t, MatchedByGovernanceEntry, result.MatchedBy)

	uc.Governance = models.Governance{
		OperatingModel: approvedGate(),
		Intake:         approvedGate(),
	}
	result = deriver.Derive(uc, testPhaseConfig())
	assert.Equal(t, "pilot", result.PhaseID)
	assert.Equal(t, MatchedByStatus, result.MatchedBy)
}

func TestPhaseDeriver_ConditionalAndNotRequiredSatisfyGates(t *testing.T) {
	deriver := NewPhaseDeriver()

	uc := &models.UseCase{
		UseCaseStatus: models.StatusProduction,
		Governance: models.Governance{
			OperatingModel: &models.GateRecord{Decision: models.DecisionNotRequired},
			Intake:         approvedGate(),
			RAI:            &models.GateRecord{Decision: models.DecisionConditionallyApproved},
		},
	}

	result := deriver.Derive(uc, testPhaseConfig())
	assert.Equal(t, "scale", result.PhaseID)
}

func TestPhaseDeriver_NoMatchIsUnphased(t *testing.T) {
	deriver := NewPhaseDeriver()

	uc := &models.UseCase{UseCaseStatus: models.StatusRetired}

	result := deriver.Derive(uc, testPhaseConfig())
	assert.Equal(t, PhaseUnphased, result.PhaseID)
	assert.Equal(t, MatchedByUnphased, result.MatchedBy)
}

func TestPhaseDeriver_DisabledTOMLeavesPhaseUntouched(t *testing.T) {
	deriver := NewPhaseDeriver()

	cfg := testPhaseConfig()
	cfg.TOMEnabled = false
	uc := &models.UseCase{
		UseCaseStatus:  models.StatusBacklog,
		TOMPhase:       "pilot",
		PhaseMatchedBy: MatchedByStatus,
	}

	result := deriver.Derive(uc, cfg)
	assert.Equal(t, "pilot", result.PhaseID)
	assert.Equal(t, MatchedByStatus, result.MatchedBy)
}
