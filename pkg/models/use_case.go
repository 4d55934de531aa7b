// Package models contains domain types for the use-case portfolio engine.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Use-case lifecycle statuses. The set is open (clients add their own),
// but these are the statuses the governance rules key off.
const (
	StatusBacklog    = "Backlog"
	StatusScoping    = "Scoping"
	StatusInFlight   = "In Flight"
	StatusPilot      = "Pilot"
	StatusProduction = "Production"
	StatusOnHold     = "On Hold"
	StatusRetired    = "Retired"
)

// Deployment statuses.
const (
	DeploymentNotStarted = "Not Started"
	DeploymentInDev      = "In Development"
	DeploymentPiloting   = "Piloting"
	DeploymentDeployed   = "Deployed"
	DeploymentScaled     = "Scaled"
)

// activeStatuses are the statuses that require governance gates to be
// satisfied before a use case may enter them.
var activeStatuses = map[string]bool{
	StatusInFlight:   true,
	StatusPilot:      true,
	StatusProduction: true,
}

// IsActiveStatus reports whether status is a gated "active" bucket.
func IsActiveStatus(status string) bool {
	return activeStatuses[status]
}

// Quadrant classifies a use case by impact vs effort.
type Quadrant string

const (
	QuadrantQuickWin     Quadrant = "QuickWin"
	QuadrantStrategicBet Quadrant = "StrategicBet"
	QuadrantExperimental Quadrant = "Experimental"
	QuadrantWatchlist    Quadrant = "Watchlist"
)

// BusinessValueLevers are the five 1-5 impact inputs. A zero value means
// the lever was not scored and contributes nothing.
type BusinessValueLevers struct {
	RevenueImpact           int `json:"revenue_impact"`
	CostSavings             int `json:"cost_savings"`
	RiskReduction           int `json:"risk_reduction"`
	BrokerPartnerExperience int `json:"broker_partner_experience"`
	StrategicFit            int `json:"strategic_fit"`
}

// FeasibilityLevers are the five 1-5 effort inputs.
type FeasibilityLevers struct {
	DataReadiness       int `json:"data_readiness"`
	TechnicalComplexity int `json:"technical_complexity"`
	ChangeImpact        int `json:"change_impact"`
	ModelRisk           int `json:"model_risk"`
	AdoptionReadiness   int `json:"adoption_readiness"`
}

// ManualScores holds user-pinned score overrides. When present they
// supersede the derived scores for display but never replace them.
type ManualScores struct {
	ImpactScore    *float64  `json:"impact_score,omitempty"`
	EffortScore    *float64  `json:"effort_score,omitempty"`
	Quadrant       *Quadrant `json:"quadrant,omitempty"`
	OverrideReason string    `json:"override_reason,omitempty"`
}

// Classification holds the multi-valued taxonomy assignments.
type Classification struct {
	Processes       []string `json:"processes"`
	LinesOfBusiness []string `json:"lines_of_business"`
	Segments        []string `json:"segments"`
	Geographies     []string `json:"geographies"`
	UseCaseTypes    []string `json:"use_case_types"`
}

// UseCase is the central portfolio entity.
type UseCase struct {
	ID           uuid.UUID `json:"id"`
	MeaningfulID string    `json:"meaningful_id"`
	EngagementID uuid.UUID `json:"engagement_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category"`
	TShirtSize   string    `json:"t_shirt_size,omitempty"` // S, M, L, XL

	BusinessValue BusinessValueLevers `json:"business_value"`
	Feasibility   FeasibilityLevers   `json:"feasibility"`

	ImpactScore float64       `json:"impact_score"`
	EffortScore float64       `json:"effort_score"`
	Quadrant    Quadrant      `json:"quadrant"`
	Manual      *ManualScores `json:"manual,omitempty"`

	UseCaseStatus    string     `json:"use_case_status"`
	DeploymentStatus string     `json:"deployment_status"`
	TOMPhase         string     `json:"tom_phase,omitempty"`
	TOMPhaseOverride string     `json:"tom_phase_override,omitempty"`
	PhaseMatchedBy   string     `json:"phase_matched_by,omitempty"`
	PhaseEnteredAt   *time.Time `json:"phase_entered_at,omitempty"`

	Governance Governance `json:"governance"`

	Classification Classification `json:"classification"`
	LibrarySource  LibrarySource  `json:"library_source"`
	LibraryTier    string         `json:"library_tier"` // active | reference
	Extensions     *LibraryExtensions `json:"extensions,omitempty"`

	CapabilityTransition *CapabilityTransition `json:"capability_transition,omitempty"`
	ValueRealization     *ValueRealization     `json:"value_realization,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayImpact returns the manual impact override when set, otherwise
// the derived score.
func (u *UseCase) DisplayImpact() float64 {
	if u.Manual != nil && u.Manual.ImpactScore != nil {
		return *u.Manual.ImpactScore
	}
	return u.ImpactScore
}

// DisplayEffort returns the manual effort override when set, otherwise
// the derived score.
func (u *UseCase) DisplayEffort() float64 {
	if u.Manual != nil && u.Manual.EffortScore != nil {
		return *u.Manual.EffortScore
	}
	return u.EffortScore
}

// DisplayQuadrant returns the manual quadrant override when set,
// otherwise the derived quadrant.
func (u *UseCase) DisplayQuadrant() Quadrant {
	if u.Manual != nil && u.Manual.Quadrant != nil {
		return *u.Manual.Quadrant
	}
	return u.Quadrant
}
