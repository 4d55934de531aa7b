package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

func evenImpactWeights() models.ScoringWeights {
	return models.ScoringWeights{
		RevenueImpact:           20,
		CostSavings:             20,
		RiskReduction:           20,
		BrokerPartnerExperience: 20,
		StrategicFit:            20,
	}
}

func evenEffortWeights() models.EffortWeights {
	return models.EffortWeights{
		DataReadiness:       20,
		TechnicalComplexity: 20,
		ChangeImpact:        20,
		ModelRisk:           20,
		AdoptionReadiness:   20,
	}
}

func TestScoringEngine_ImpactScore(t *testing.T) {
	engine := NewScoringEngine()

	tests := []struct {
		name     string
		levers   models.BusinessValueLevers
		weights  models.ScoringWeights
		expected float64
	}{
		{
			name: "all fives even weights",
			levers: models.BusinessValueLevers{
				RevenueImpact: 5, CostSavings: 5, RiskReduction: 5,
				BrokerPartnerExperience: 5, StrategicFit: 5,
			},
			weights:  evenImpactWeights(),
			expected: 5.0,
		},
		{
			name: "all ones even weights",
			levers: models.BusinessValueLevers{
				RevenueImpact: 1, CostSavings: 1, RiskReduction: 1,
				BrokerPartnerExperience: 1, StrategicFit: 1,
			},
			weights:  evenImpactWeights(),
			expected: 1.0,
		},
		{
			name: "skewed weights follow the heavy lever",
			levers: models.BusinessValueLevers{
				RevenueImpact: 5, CostSavings: 1, RiskReduction: 1,
				BrokerPartnerExperience: 1, StrategicFit: 1,
			},
			weights: models.ScoringWeights{
				RevenueImpact: 60, CostSavings: 10, RiskReduction: 10,
				BrokerPartnerExperience: 10, StrategicFit: 10,
			},
			expected: 3.4,
		},
		{
			name:     "unscored levers contribute nothing",
			levers:   models.BusinessValueLevers{RevenueImpact: 5},
			weights:  evenImpactWeights(),
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, engine.ImpactScore(tt.levers, tt.weights), 1e-9)
		})
	}
}

func TestScoringEngine_EffortScore_NotInverted(t *testing.T) {
	engine := NewScoringEngine()

	// Low feasibility inputs produce a low effort score; the levers are
	// weighted as-is, never flipped.
	levers := models.FeasibilityLevers{
		DataReadiness: 1, TechnicalComplexity: 1, ChangeImpact: 1,
		ModelRisk: 1, AdoptionReadiness: 1,
	}
	assert.InDelta(t, 1.0, engine.EffortScore(levers, evenEffortWeights()), 1e-9)

	levers = models.FeasibilityLevers{
		DataReadiness: 5, TechnicalComplexity: 5, ChangeImpact: 5,
		ModelRisk: 5, AdoptionReadiness: 5,
	}
	assert.InDelta(t, 5.0, engine.EffortScore(levers, evenEffortWeights()), 1e-9)
}

func TestScoringEngine_Quadrant(t *testing.T) {
	engine := NewScoringEngine()

	tests := []struct {
		name           string
		impact, effort float64
		threshold      float64
		expected       models.Quadrant
	}{
		{"high impact low effort", 5.0, 1.0, 3.0, models.QuadrantQuickWin},
		{"high impact high effort", 4.2, 4.8, 3.0, models.QuadrantStrategicBet},
		{"low impact low effort", 1.5, 2.0, 3.0, models.QuadrantExperimental},
		{"low impact high effort", 2.0, 4.0, 3.0, models.QuadrantWatchlist},
		{"both exactly at threshold", 3.0, 3.0, 3.0, models.QuadrantQuickWin},
		{"impact at threshold effort above", 3.0, 3.1, 3.0, models.QuadrantStrategicBet},
		{"impact below effort at threshold", 2.9, 3.0, 3.0, models.QuadrantExperimental},
		{"custom threshold", 3.5, 3.5, 4.0, models.QuadrantExperimental},
		{"zero threshold falls back to default", 3.0, 3.0, 0, models.QuadrantQuickWin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.Quadrant(tt.impact, tt.effort, tt.threshold))
		})
	}
}

func TestScoringEngine_Deterministic(t *testing.T) {
	engine := NewScoringEngine()
	levers := models.BusinessValueLevers{
		RevenueImpact: 4, CostSavings: 3, RiskReduction: 5,
		BrokerPartnerExperience: 2, StrategicFit: 4,
	}

	first := engine.ImpactScore(levers, evenImpactWeights())
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, engine.ImpactScore(levers, evenImpactWeights()))
	}
}
