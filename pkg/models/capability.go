package models

// IndependencePoint is one dated entry in a use case's independence
// history. Entries are appended only when the percentage changes.
type IndependencePoint struct {
	Date string `json:"date"` // YYYY-MM-DD
	Pct  int    `json:"pct"`
}

// CapabilityTransition holds staffing and independence projections for a
// use case in its current phase.
type CapabilityTransition struct {
	Derivation Derivation `json:"derivation"`

	HexawareFTEs     *float64 `json:"hexaware_ftes,omitempty"`
	ClientFTEs       *float64 `json:"client_ftes,omitempty"`
	IndependenceFTEs *float64 `json:"independence_ftes,omitempty"`

	TargetIndependencePct  *int `json:"target_independence_pct,omitempty"`
	CurrentIndependencePct *int `json:"current_independence_pct,omitempty"`

	IndependenceHistory []IndependencePoint `json:"independence_history,omitempty"`
}

// LastIndependence returns the most recent history entry, or nil when
// none exists.
func (c *CapabilityTransition) LastIndependence() *IndependencePoint {
	if c == nil || len(c.IndependenceHistory) == 0 {
		return nil
	}
	return &c.IndependenceHistory[len(c.IndependenceHistory)-1]
}
