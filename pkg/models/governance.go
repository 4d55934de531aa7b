package models

import "time"

// GateType identifies one of the three governance gates. Gates are
// processed in declaration order: operating model, then intake, then RAI.
type GateType string

const (
	GateOperatingModel GateType = "operating_model"
	GateIntake         GateType = "intake"
	GateRAI            GateType = "rai"
)

// GateOrder is the mandatory processing sequence.
var GateOrder = []GateType{GateOperatingModel, GateIntake, GateRAI}

// Gate decisions. Not every decision is legal for every gate; see
// AllowedDecisions.
const (
	DecisionNotSubmitted          = "not_submitted"
	DecisionPending               = "pending"
	DecisionApproved              = "approved"
	DecisionConditionallyApproved = "conditionally_approved"
	DecisionRejected              = "rejected"
	DecisionDeferred              = "deferred"
	DecisionNotRequired           = "not_required"
)

// allowedDecisions maps each gate to its legal terminal decisions.
var allowedDecisions = map[GateType][]string{
	GateOperatingModel: {DecisionApproved, DecisionRejected, DecisionNotRequired},
	GateIntake:         {DecisionApproved, DecisionRejected, DecisionDeferred},
	GateRAI:            {DecisionApproved, DecisionConditionallyApproved, DecisionRejected},
}

// DecisionAllowed reports whether decision is legal for the given gate.
func DecisionAllowed(gate GateType, decision string) bool {
	for _, d := range allowedDecisions[gate] {
		if d == decision {
			return true
		}
	}
	return false
}

// GateRecord captures a single gate's current decision.
type GateRecord struct {
	Decision     string     `json:"decision"`
	Actor        string     `json:"actor,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	PriorityRank *int       `json:"priority_rank,omitempty"` // intake approvals only
	RiskLevel    string     `json:"risk_level,omitempty"`    // rai approvals only
}

// Passed reports whether the record counts as a satisfied gate.
// Conditionally-approved and not-required both satisfy sequencing and
// activation checks.
func (g *GateRecord) Passed() bool {
	if g == nil {
		return false
	}
	switch g.Decision {
	case DecisionApproved, DecisionConditionallyApproved, DecisionNotRequired:
		return true
	}
	return false
}

// Decided reports whether any decision has ever been recorded.
func (g *GateRecord) Decided() bool {
	return g != nil && g.Decision != "" && g.Decision != DecisionNotSubmitted
}

// Governance holds the three gate records for a use case.
type Governance struct {
	OperatingModel *GateRecord `json:"operating_model,omitempty"`
	Intake         *GateRecord `json:"intake,omitempty"`
	RAI            *GateRecord `json:"rai,omitempty"`

	// LegacyWarnedAt marks that the one-time legacy gate warning has
	// been written to the audit log for this use case.
	LegacyWarnedAt *time.Time `json:"legacy_warned_at,omitempty"`
}

// Gate returns the record for the given gate type.
func (g *Governance) Gate(t GateType) *GateRecord {
	switch t {
	case GateOperatingModel:
		return g.OperatingModel
	case GateIntake:
		return g.Intake
	case GateRAI:
		return g.RAI
	}
	return nil
}

// SetGate replaces the record for the given gate type.
func (g *Governance) SetGate(t GateType, rec *GateRecord) {
	switch t {
	case GateOperatingModel:
		g.OperatingModel = rec
	case GateIntake:
		g.Intake = rec
	case GateRAI:
		g.RAI = rec
	}
}

// AllPassed reports whether every gate is satisfied.
func (g *Governance) AllPassed() bool {
	return g.OperatingModel.Passed() && g.Intake.Passed() && g.RAI.Passed()
}

// AnyDecided reports whether gate tracking has ever touched this use
// case. Used for legacy detection: an active use case with no decisions
// predates governance tracking.
func (g *Governance) AnyDecided() bool {
	return g.OperatingModel.Decided() || g.Intake.Decided() || g.RAI.Decided()
}

// MissingFor returns the gates not yet satisfied, in sequence order.
func (g *Governance) MissingFor() []GateType {
	var missing []GateType
	for _, gate := range GateOrder {
		if !g.Gate(gate).Passed() {
			missing = append(missing, gate)
		}
	}
	return missing
}
