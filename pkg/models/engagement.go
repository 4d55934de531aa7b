package models

import (
	"time"

	"github.com/google/uuid"
)

// Engagement scopes a portfolio of use cases to a client workstream.
type Engagement struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`

	TOMPresetID string `json:"tom_preset_id,omitempty"`

	// TOMPhasesJSON, when set, replaces the preset's phase graph
	// wholesale for this engagement.
	TOMPhasesJSON string `json:"tom_phases_json,omitempty"`

	// Locked prevents further preset/phase-graph changes.
	Locked bool `json:"locked"`

	// IsDefault marks the engagement used when a use case is created
	// without an explicit engagement.
	IsDefault bool `json:"is_default"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
