package models

import (
	"time"

	"github.com/google/uuid"
)

// Governance audit actions.
const (
	AuditActionGateDecision      = "GATE_DECISION"
	AuditActionAutoDeactivation  = "AUTO_DEACTIVATION"
	AuditActionActivationBlocked = "ACTIVATION_BLOCKED"
	AuditActionPhaseOverride     = "PHASE_OVERRIDE"
	AuditActionLegacyGateWarning = "LEGACY_GATE_WARNING"
)

// GovernanceAuditEntry is an immutable record of a gate decision or an
// automatic governance action. Entries are only ever inserted, keyed by
// use case id.
type GovernanceAuditEntry struct {
	ID        uuid.UUID `json:"id"`
	UseCaseID uuid.UUID `json:"use_case_id"`

	Gate   GateType `json:"gate,omitempty"` // empty for non-gate actions
	Action string   `json:"action"`
	Actor  string   `json:"actor,omitempty"` // empty for system actions

	PreviousStatus  string `json:"previous_status,omitempty"`
	NewStatus       string `json:"new_status,omitempty"`
	PhaseAtDecision string `json:"phase_at_decision,omitempty"`
	Notes           string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
