package services

import (
	"math"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

// ReadinessScores are the feasibility inputs the maturity rules
// evaluate.
type ReadinessScores struct {
	DataReadiness       int `json:"data_readiness"`
	TechnicalComplexity int `json:"technical_complexity"`
	AdoptionReadiness   int `json:"adoption_readiness"`
}

// ValueEstimator projects annual value from the KPI library.
type ValueEstimator interface {
	// Estimate produces KPI estimates and the aggregate envelope for
	// every library KPI whose applicable processes intersect the use
	// case's processes. Human-owned sub-objects from existing are
	// carried over unchanged.
	Estimate(processes []string, readiness ReadinessScores, library []models.KPIDefinition, existing *models.ValueRealization, now time.Time) *models.ValueRealization

	// ROI returns (cumulativeValue - totalInvestment) / totalInvestment
	// as a percentage. Zero investment yields zero.
	ROI(cumulativeValue, totalInvestment float64) float64

	// BreakevenMonth returns the smallest month m such that
	// m * monthlyValue >= totalInvestment, or 0 when monthlyValue is
	// not positive.
	BreakevenMonth(totalInvestment, monthlyValue float64) int
}

type valueEstimator struct{}

// NewValueEstimator creates a ValueEstimator.
func NewValueEstimator() ValueEstimator {
	return &valueEstimator{}
}

func (e *valueEstimator) Estimate(processes []string, readiness ReadinessScores, library []models.KPIDefinition, existing *models.ValueRealization, now time.Time) *models.ValueRealization {
	result := &models.ValueRealization{
		Derivation: models.AutoDerived(now),
	}

	// Shallow merge: everything human-entered survives re-derivation.
	if existing != nil {
		result.Investment = existing.Investment
		result.SelectedKPIs = existing.SelectedKPIs
		result.CalculatedMetrics = existing.CalculatedMetrics
		result.Tracking = existing.Tracking
	}

	var totalMin, totalMax float64
	for i := range library {
		kpi := &library[i]
		if !intersects(kpi.ApplicableProcesses, processes) {
			continue
		}

		rule := firstMatchingRule(kpi.MaturityRules, readiness)
		if rule == nil {
			continue
		}

		rng, ok := kpi.ValueRanges[rule.Level]
		if !ok {
			continue
		}

		mid := rng.Midpoint()
		if kpi.BenchmarkFactor > 0 && intersects(kpi.BenchmarkProcesses, processes) {
			mid = mid * kpi.BenchmarkFactor
		}

		result.KPIEstimates = append(result.KPIEstimates, models.KPIEstimate{
			KPIID:                   kpi.ID,
			KPIName:                 kpi.Name,
			MaturityLevel:           rule.Level,
			ExpectedRange:           rng,
			Confidence:              rule.Confidence,
			EstimatedAnnualValueGBP: mid,
		})
		totalMin += rng.MinGBP
		totalMax += rng.MaxGBP
	}

	if len(result.KPIEstimates) > 0 {
		result.TotalEstimatedValue = &models.ValueRange{MinGBP: totalMin, MaxGBP: totalMax}
	}

	return result
}

func (e *valueEstimator) ROI(cumulativeValue, totalInvestment float64) float64 {
	if totalInvestment <= 0 {
		return 0
	}
	return (cumulativeValue - totalInvestment) / totalInvestment * 100
}

func (e *valueEstimator) BreakevenMonth(totalInvestment, monthlyValue float64) int {
	if monthlyValue <= 0 {
		return 0
	}
	return int(math.Ceil(totalInvestment / monthlyValue))
}

// firstMatchingRule evaluates rules in declaration order; the first rule
// whose conditions all hold wins.
func firstMatchingRule(rules []models.MaturityRule, readiness ReadinessScores) *models.MaturityRule {
	for i := range rules {
		if ruleMatches(&rules[i], readiness) {
			return &rules[i]
		}
	}
	return nil
}

func ruleMatches(rule *models.MaturityRule, readiness ReadinessScores) bool {
	for _, cond := range rule.Conditions {
		if !conditionHolds(cond, readiness) {
			return false
		}
	}
	return true
}

func conditionHolds(cond models.MaturityCondition, readiness ReadinessScores) bool {
	var actual float64
	switch cond.Metric {
	case "data_readiness":
		actual = float64(readiness.DataReadiness)
	case "technical_complexity":
		actual = float64(readiness.TechnicalComplexity)
	case "adoption_readiness":
		actual = float64(readiness.AdoptionReadiness)
	default:
		return false
	}

	switch cond.Op {
	case "gte":
		return actual >= cond.Value
	case "lte":
		return actual <= cond.Value
	case "gt":
		return actual > cond.Value
	case "lt":
		return actual < cond.Value
	case "eq":
		return actual == cond.Value
	}
	return false
}

func intersects(a, b []string) bool {
	for _, v := range a {
		if containsString(b, v) {
			return true
		}
	}
	return false
}
