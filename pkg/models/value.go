package models

// ValueRange is a min/max annual value envelope in GBP.
type ValueRange struct {
	MinGBP float64 `json:"min_gbp"`
	MaxGBP float64 `json:"max_gbp"`
}

// Midpoint returns the middle of the range.
func (r ValueRange) Midpoint() float64 {
	return (r.MinGBP + r.MaxGBP) / 2
}

// KPIEstimate is a per-KPI value projection produced by the estimator.
type KPIEstimate struct {
	KPIID                   string     `json:"kpi_id"`
	KPIName                 string     `json:"kpi_name"`
	MaturityLevel           string     `json:"maturity_level"`
	ExpectedRange           ValueRange `json:"expected_range"`
	Confidence              string     `json:"confidence"`
	EstimatedAnnualValueGBP float64    `json:"estimated_annual_value_gbp"`
}

// Investment holds the human-entered investment figures. Never derived.
type Investment struct {
	InitialInvestmentGBP  float64 `json:"initial_investment_gbp"`
	MonthlyOngoingCostGBP float64 `json:"monthly_ongoing_cost_gbp"`
}

// Total returns the first-year investment: initial plus twelve months
// of ongoing cost.
func (i Investment) Total() float64 {
	return i.InitialInvestmentGBP + 12*i.MonthlyOngoingCostGBP
}

// ValueRealization holds KPI-based value projections for a use case.
// KPIEstimates and TotalEstimatedValue are derived; Investment,
// SelectedKPIs, CalculatedMetrics and Tracking are human-owned and
// preserved across re-derivation.
type ValueRealization struct {
	Derivation Derivation `json:"derivation"`

	KPIEstimates        []KPIEstimate `json:"kpi_estimates,omitempty"`
	TotalEstimatedValue *ValueRange   `json:"total_estimated_value,omitempty"`

	Investment        *Investment            `json:"investment,omitempty"`
	SelectedKPIs      []string               `json:"selected_kpis,omitempty"`
	CalculatedMetrics map[string]float64     `json:"calculated_metrics,omitempty"`
	Tracking          map[string]interface{} `json:"tracking,omitempty"`
}
