package models

import "time"

// ScoringWeights maps the five levers of one axis to percentage weights.
// Entries should sum to 100; this is not enforced here (caller
// responsibility), the metadata handler reports a validation issue on
// write but accepts the config.
type ScoringWeights struct {
	// Impact axis
	RevenueImpact           float64 `json:"revenue_impact" yaml:"revenue_impact"`
	CostSavings             float64 `json:"cost_savings" yaml:"cost_savings"`
	RiskReduction           float64 `json:"risk_reduction" yaml:"risk_reduction"`
	BrokerPartnerExperience float64 `json:"broker_partner_experience" yaml:"broker_partner_experience"`
	StrategicFit            float64 `json:"strategic_fit" yaml:"strategic_fit"`
}

// EffortWeights maps the five feasibility levers to percentage weights.
type EffortWeights struct {
	DataReadiness       float64 `json:"data_readiness" yaml:"data_readiness"`
	TechnicalComplexity float64 `json:"technical_complexity" yaml:"technical_complexity"`
	ChangeImpact        float64 `json:"change_impact" yaml:"change_impact"`
	ModelRisk           float64 `json:"model_risk" yaml:"model_risk"`
	AdoptionReadiness   float64 `json:"adoption_readiness" yaml:"adoption_readiness"`
}

// ScoringConfig holds the weighted-scoring inputs.
type ScoringConfig struct {
	ImpactWeights     ScoringWeights `json:"impact_weights" yaml:"impact_weights"`
	EffortWeights     EffortWeights  `json:"effort_weights" yaml:"effort_weights"`
	QuadrantThreshold float64        `json:"quadrant_threshold" yaml:"quadrant_threshold"`
}

// PhaseEntryDefaults are applied to unset fields when a use case enters
// a phase. Nil pointers mean "no default for this field".
type PhaseEntryDefaults struct {
	HexawareFTEs          *float64 `json:"hexaware_ftes,omitempty" yaml:"hexaware_ftes,omitempty"`
	ClientFTEs            *float64 `json:"client_ftes,omitempty" yaml:"client_ftes,omitempty"`
	TargetIndependencePct *int     `json:"target_independence_pct,omitempty" yaml:"target_independence_pct,omitempty"`
	DeploymentStatus      string   `json:"deployment_status,omitempty" yaml:"deployment_status,omitempty"`
}

// TOMPhase is one stage in a preset's phase graph, with the matching
// rules that map use cases into it.
type TOMPhase struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`

	// StatusRules / DeploymentRules list the useCaseStatus and
	// deploymentStatus values that place a use case in this phase.
	// Deployment rules win over status rules.
	StatusRules     []string `json:"status_rules,omitempty" yaml:"status_rules,omitempty"`
	DeploymentRules []string `json:"deployment_rules,omitempty" yaml:"deployment_rules,omitempty"`

	// RequiredGates, when non-empty, makes the phase reachable only
	// after those governance gates are satisfied.
	RequiredGates []GateType `json:"required_gates,omitempty" yaml:"required_gates,omitempty"`

	EntryDefaults PhaseEntryDefaults `json:"entry_defaults,omitempty" yaml:"entry_defaults,omitempty"`
}

// TOMPreset is a named phase graph (e.g. Foundation -> Pilot -> Scale ->
// SteadyState, or a custom client-defined list).
type TOMPreset struct {
	ID     string     `json:"id" yaml:"id"`
	Name   string     `json:"name" yaml:"name"`
	Phases []TOMPhase `json:"phases" yaml:"phases"`
}

// TOMConfig holds the operating-model configuration.
type TOMConfig struct {
	Enabled        bool        `json:"enabled" yaml:"enabled"`
	ActivePresetID string      `json:"active_preset_id" yaml:"active_preset_id"`
	Presets        []TOMPreset `json:"presets" yaml:"presets"`
}

// Preset returns the preset with the given id, or nil.
func (c *TOMConfig) Preset(id string) *TOMPreset {
	for i := range c.Presets {
		if c.Presets[i].ID == id {
			return &c.Presets[i]
		}
	}
	return nil
}

// MaturityCondition is one comparison over a readiness score.
// Metric is one of data_readiness, technical_complexity,
// adoption_readiness; Op is one of gte, lte, gt, lt, eq.
type MaturityCondition struct {
	Metric string  `json:"metric" yaml:"metric"`
	Op     string  `json:"op" yaml:"op"`
	Value  float64 `json:"value" yaml:"value"`
}

// MaturityRule names a maturity level reached when all its conditions
// hold. Rules are evaluated in declaration order; first match wins.
type MaturityRule struct {
	Level      string              `json:"level" yaml:"level"`
	Confidence string              `json:"confidence" yaml:"confidence"`
	Conditions []MaturityCondition `json:"conditions" yaml:"conditions"`
}

// KPIDefinition is one entry in the value-realization KPI library.
type KPIDefinition struct {
	ID                  string                `json:"id" yaml:"id"`
	Name                string                `json:"name" yaml:"name"`
	ApplicableProcesses []string              `json:"applicable_processes" yaml:"applicable_processes"`
	MaturityRules       []MaturityRule        `json:"maturity_rules" yaml:"maturity_rules"`
	ValueRanges         map[string]ValueRange `json:"value_ranges" yaml:"value_ranges"` // keyed by maturity level

	// BenchmarkProcesses scale the midpoint by BenchmarkFactor when the
	// use case touches one of them.
	BenchmarkProcesses []string `json:"benchmark_processes,omitempty" yaml:"benchmark_processes,omitempty"`
	BenchmarkFactor    float64  `json:"benchmark_factor,omitempty" yaml:"benchmark_factor,omitempty"`
}

// CapabilityDefaults are per-phase staffing defaults.
type CapabilityDefaults struct {
	HexawareFTEs          float64 `json:"hexaware_ftes" yaml:"hexaware_ftes"`
	ClientFTEs            float64 `json:"client_ftes" yaml:"client_ftes"`
	IndependenceFTEs      float64 `json:"independence_ftes" yaml:"independence_ftes"`
	TargetIndependencePct int     `json:"target_independence_pct" yaml:"target_independence_pct"`
}

// CapabilityConfig keys staffing defaults by phase id, with optional
// t-shirt-size multipliers applied to the FTE figures.
type CapabilityConfig struct {
	PhaseDefaults   map[string]CapabilityDefaults `json:"phase_defaults" yaml:"phase_defaults"`
	SizeMultipliers map[string]float64            `json:"size_multipliers,omitempty" yaml:"size_multipliers,omitempty"`
}

// Taxonomy is a list-valued classification dimension with custom sort
// order.
type Taxonomy struct {
	Name   string   `json:"name" yaml:"name"`
	Values []string `json:"values" yaml:"values"`
}

// MetadataConfig is the per-client configuration singleton.
type MetadataConfig struct {
	Scoring    ScoringConfig    `json:"scoring" yaml:"scoring"`
	TOM        TOMConfig        `json:"tom" yaml:"tom"`
	KPILibrary []KPIDefinition  `json:"kpi_library" yaml:"kpi_library"`
	Capability CapabilityConfig `json:"capability" yaml:"capability"`
	Taxonomies []Taxonomy       `json:"taxonomies" yaml:"taxonomies"`

	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

// DefaultThreshold is the quadrant threshold used when none is
// configured.
const DefaultThreshold = 3.0
