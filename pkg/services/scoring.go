// Package services contains the derivation and governance engines for
// the use-case portfolio.
package services

import (
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

// ScoringEngine computes weighted impact/effort scores and quadrant
// placement from the ten Likert levers. All methods are pure.
type ScoringEngine interface {
	// ImpactScore returns the weighted business-value score.
	ImpactScore(levers models.BusinessValueLevers, weights models.ScoringWeights) float64

	// EffortScore returns the weighted feasibility score. Feasibility
	// levers are not inverted before weighting.
	EffortScore(levers models.FeasibilityLevers, weights models.EffortWeights) float64

	// Quadrant classifies an impact/effort pair against the threshold.
	// Both comparisons are inclusive at the threshold.
	Quadrant(impact, effort, threshold float64) models.Quadrant
}

type scoringEngine struct{}

// NewScoringEngine creates a ScoringEngine.
func NewScoringEngine() ScoringEngine {
	return &scoringEngine{}
}

// ImpactScore computes sum(lever * weight) / 100 over the five
// business-value levers. An unscored lever (zero value) contributes
// nothing.
func (s *scoringEngine) ImpactScore(l models.BusinessValueLevers, w models.ScoringWeights) float64 {
	total := float64(l.RevenueImpact)*w.RevenueImpact +
		float64(l.CostSavings)*w.CostSavings +
		float64(l.RiskReduction)*w.RiskReduction +
		float64(l.BrokerPartnerExperience)*w.BrokerPartnerExperience +
		float64(l.StrategicFit)*w.StrategicFit
	return total / 100
}

// EffortScore computes sum(lever * weight) / 100 over the five
// feasibility levers.
func (s *scoringEngine) EffortScore(l models.FeasibilityLevers, w models.EffortWeights) float64 {
	total := float64(l.DataReadiness)*w.DataReadiness +
		float64(l.TechnicalComplexity)*w.TechnicalComplexity +
		float64(l.ChangeImpact)*w.ChangeImpact +
		float64(l.ModelRisk)*w.ModelRisk +
		float64(l.AdoptionReadiness)*w.AdoptionReadiness
	return total / 100
}

// Quadrant places a score pair. At threshold=3.0: impact >= 3 and
// effort <= 3 is a quick win; high impact with high effort is a
// strategic bet; low impact with low effort is experimental; the rest
// is watchlist.
func (s *scoringEngine) Quadrant(impact, effort, threshold float64) models.Quadrant {
	if threshold == 0 {
		threshold = models.DefaultThreshold
	}
	switch {
	case impact >= threshold && effort <= threshold:
		return models.QuadrantQuickWin
	case impact >= threshold:
		return models.QuadrantStrategicBet
	case effort <= threshold:
		return models.QuadrantExperimental
	default:
		return models.QuadrantWatchlist
	}
}
