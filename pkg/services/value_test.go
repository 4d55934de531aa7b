package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

func testKPILibrary() []models.KPIDefinition {
	return []models.KPIDefinition{
		{
			ID:                  "claims-cycle-time",
			Name:                "Claims cycle-time reduction",
			ApplicableProcesses: []string{"Claims"},
			MaturityRules: []models.MaturityRule{
				{
					Level:      "advanced",
					Confidence: "high",
					Conditions: []models.MaturityCondition{
						{Metric: "data_readiness", Op: "gte", Value: 4},
						{Metric: "technical_complexity", Op: "lte", Value: 2},
					},
				},
				{
					Level:      "emerging",
					Confidence: "low",
					Conditions: []models.MaturityCondition{
						{Metric: "data_readiness", Op: "gte", Value: 1},
					},
				},
			},
			ValueRanges: map[string]models.ValueRange{
				"advanced": {MinGBP: 400000, MaxGBP: 900000},
				"emerging": {MinGBP: 25000, MaxGBP: 150000},
			},
			BenchmarkProcesses: []string{"Claims"},
			BenchmarkFactor:    1.2,
		},
		{
			ID:                  "underwriting-throughput",
			Name:                "Underwriting throughput uplift",
			ApplicableProcesses: []string{"Underwriting"},
			MaturityRules: []models.MaturityRule{
				{
					Level:      "established",
					Confidence: "medium",
					Conditions: []models.MaturityCondition{
						{Metric: "data_readiness", Op: "gte", Value: 3},
					},
				},
			},
			ValueRanges: map[string]models.ValueRange{
				"established": {MinGBP: 200000, MaxGBP: 600000},
			},
		},
	}
}

func TestValueEstimator_Estimate_ProcessIntersection(t *testing.T) {
	estimator := NewValueEstimator()
	now := time.Now()

	vr := estimator.Estimate([]string{"Underwriting"}, ReadinessScores{DataReadiness: 4}, testKPILibrary(), nil, now)

	require.Len(t, vr.KPIEstimates, 1)
	assert.Equal(t, "underwriting-throughput", vr.KPIEstimates[0].KPIID)
	assert.Equal(t, "established", vr.KPIEstimates[0].MaturityLevel)
	require.NotNil(t, vr.TotalEstimatedValue)
	assert.Equal(t, 200000.0, vr.TotalEstimatedValue.MinGBP)
	assert.Equal(t, 600000.0, vr.TotalEstimatedValue.MaxGBP)
	assert.Equal(t, models.DerivationAutoDerive, vr.Derivation.State)
}

func TestValueEstimator_Estimate_FirstMatchingRuleWins(t *testing.T) {
	estimator := NewValueEstimator()

	// Both the advanced and emerging rules match; declaration order wins.
	vr := estimator.Estimate([]string{"Claims"},
		ReadinessScores{DataReadiness: 5, TechnicalComplexity: 1},
		testKPILibrary(), nil, time.Now())

	require.Len(t, vr.KPIEstimates, 1)
	assert.Equal(t, "advanced", vr.KPIEstimates[0].MaturityLevel)
	assert.Equal(t, "high", vr.KPIEstimates[0].Confidence)
}

func TestValueEstimator_Estimate_BenchmarkFactorScalesMidpoint(t *testing.T) {
	estimator := NewValueEstimator()

	vr := estimator.Estimate([]string{"Claims"},
		ReadinessScores{DataReadiness: 5, TechnicalComplexity: 1},
		testKPILibrary(), nil, time.Now())

	require.Len(t, vr.KPIEstimates, 1)
	// Midpoint 650000 scaled by the 1.2 benchmark factor. The range
	// itself is not scaled.
	assert.InDelta(t, 780000.0, vr.KPIEstimates[0].EstimatedAnnualValueGBP, 1e-6)
	assert.Equal(t, 400000.0, vr.KPIEstimates[0].ExpectedRange.MinGBP)
}

func TestValueEstimator_Estimate_NoMatchingProcess(t *testing.T) {
	estimator := NewValueEstimator()

	vr := estimator.Estimate([]string{"Finance"}, ReadinessScores{DataReadiness: 5}, testKPILibrary(), nil, time.Now())

	assert.Empty(t, vr.KPIEstimates)
	assert.Nil(t, vr.TotalEstimatedValue)
}

func TestValueEstimator_Estimate_PreservesHumanFields(t *testing.T) {
	estimator := NewValueEstimator()

	existing := &models.ValueRealization{
		Investment:        &models.Investment{InitialInvestmentGBP: 50000, MonthlyOngoingCostGBP: 2000},
		SelectedKPIs:      []string{"claims-cycle-time"},
		CalculatedMetrics: map[string]float64{"roi": 42},
		Tracking:          map[string]interface{}{"owner": "ops"},
	}

	vr := estimator.Estimate([]string{"Claims"}, ReadinessScores{DataReadiness: 2}, testKPILibrary(), existing, time.Now())

	assert.Equal(t, existing.Investment, vr.Investment)
	assert.Equal(t, existing.SelectedKPIs, vr.SelectedKPIs)
	assert.Equal(t, existing.CalculatedMetrics, vr.CalculatedMetrics)
	assert.Equal(t, existing.Tracking, vr.Tracking)
	require.Len(t, vr.KPIEstimates, 1)
	assert.Equal(t, "emerging", vr.KPIEstimates[0].MaturityLevel)
}

func TestValueEstimator_ROI(t *testing.T) {
	estimator := NewValueEstimator()

	assert.InDelta(t, 100.0, estimator.ROI(200000, 100000), 1e-9)
	assert.InDelta(t, -50.0, estimator.ROI(50000, 100000), 1e-9)
	assert.Equal(t, 0.0, estimator.ROI(200000, 0))
	assert.Equal(t, 0.0, estimator.ROI(200000, -1))
}

func TestValueEstimator_BreakevenMonth(t *testing.T) {
	estimator := NewValueEstimator()

	assert.Equal(t, 10, estimator.BreakevenMonth(100000, 10000))
	assert.Equal(t, 11, estimator.BreakevenMonth(100001, 10000))
	assert.Equal(t, 0, estimator.BreakevenMonth(100000, 0))
}

func TestInvestment_Total(t *testing.T) {
	inv := models.Investment{InitialInvestmentGBP: 50000, MonthlyOngoingCostGBP: 2000}
	assert.Equal(t, 74000.0, inv.Total())
}
