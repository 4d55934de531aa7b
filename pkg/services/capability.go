package services

import (
	"math"
	"time"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

// CapabilityDeriver produces staffing/independence defaults for a use
// case's phase and maintains the independence history.
type CapabilityDeriver interface {
	// Derive computes phase-keyed staffing defaults, scaled by t-shirt
	// size where a multiplier is configured. Human-owned history from
	// existing is carried over; a fresh current-independence figure is
	// appended to it when the percentage changed.
	Derive(phaseID string, size string, cfg models.CapabilityConfig, existing *models.CapabilityTransition, now time.Time) *models.CapabilityTransition

	// IndependenceFromStaffing returns round(client/(client+hexaware))
	// as a percentage, or 0 when no FTEs are staffed.
	IndependenceFromStaffing(clientFTEs, hexawareFTEs float64) int

	// AppendIndependence records pct in the history only if it differs
	// from the last recorded entry. Returns true when an entry was
	// appended.
	AppendIndependence(ct *models.CapabilityTransition, pct int, now time.Time) bool
}

type capabilityDeriver struct{}

// NewCapabilityDeriver creates a CapabilityDeriver.
func NewCapabilityDeriver() CapabilityDeriver {
	return &capabilityDeriver{}
}

func (d *capabilityDeriver) Derive(phaseID string, size string, cfg models.CapabilityConfig, existing *models.CapabilityTransition, now time.Time) *models.CapabilityTransition {
	result := &models.CapabilityTransition{
		Derivation: models.AutoDerived(now),
	}
	if existing != nil {
		result.IndependenceHistory = existing.IndependenceHistory
	}

	defaults, ok := cfg.PhaseDefaults[phaseID]
	if !ok {
		return result
	}

	scale := 1.0
	if m, ok := cfg.SizeMultipliers[size]; ok && m > 0 {
		scale = m
	}

	hexaware := defaults.HexawareFTEs * scale
	client := defaults.ClientFTEs * scale
	independence := defaults.IndependenceFTEs * scale
	target := defaults.TargetIndependencePct

	result.HexawareFTEs = &hexaware
	result.ClientFTEs = &client
	result.IndependenceFTEs = &independence
	result.TargetIndependencePct = &target

	current := d.IndependenceFromStaffing(client, hexaware)
	result.CurrentIndependencePct = &current
	d.AppendIndependence(result, current, now)

	return result
}

func (d *capabilityDeriver) IndependenceFromStaffing(clientFTEs, hexawareFTEs float64) int {
	total := clientFTEs + hexawareFTEs
	if total <= 0 {
		return 0
	}
	return int(math.Round(clientFTEs / total * 100))
}

func (d *capabilityDeriver) AppendIndependence(ct *models.CapabilityTransition, pct int, now time.Time) bool {
	if last := ct.LastIndependence(); last != nil && last.Pct == pct {
		return false
	}
	ct.IndependenceHistory = append(ct.IndependenceHistory, models.IndependencePoint{
		Date: now.Format("2006-01-02"),
		Pct:  pct,
	})
	return true
}
