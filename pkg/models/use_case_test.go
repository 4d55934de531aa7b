package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsActiveStatus(t *testing.T) {
	assert.True(t, IsActiveStatus(StatusInFlight))
	assert.True(t, IsActiveStatus(StatusPilot))
	assert.True(t, IsActiveStatus(StatusProduction))
	assert.False(t, IsActiveStatus(StatusBacklog))
	assert.False(t, IsActiveStatus(StatusScoping))
	assert.False(t, IsActiveStatus(StatusOnHold))
	assert.False(t, IsActiveStatus(StatusRetired))
	assert.False(t, IsActiveStatus(""))
}

func TestUseCase_DisplayAccessors(t *testing.T) {
	uc := &UseCase{
		ImpactScore: 3.2,
		EffortScore: 2.1,
		Quadrant:    QuadrantQuickWin,
	}

	// No overrides: derived values pass through.
	assert.Equal(t, 3.2, uc.DisplayImpact())
	assert.Equal(t, 2.1, uc.DisplayEffort())
	assert.Equal(t, QuadrantQuickWin, uc.DisplayQuadrant())

	impact := 4.5
	quadrant := QuadrantStrategicBet
	uc.Manual = &ManualScores{
		ImpactScore:    &impact,
		Quadrant:       &quadrant,
		OverrideReason: "board-agreed positioning",
	}

	// Overrides win for display, but the derived fields are untouched.
	assert.Equal(t, 4.5, uc.DisplayImpact())
	assert.Equal(t, 2.1, uc.DisplayEffort())
	assert.Equal(t, QuadrantStrategicBet, uc.DisplayQuadrant())
	assert.Equal(t, 3.2, uc.ImpactScore)
	assert.Equal(t, QuadrantQuickWin, uc.Quadrant)
}

func TestDerivation_CanAutoDerive(t *testing.T) {
	assert.True(t, Derivation{}.CanAutoDerive())
	assert.True(t, Derivation{State: DerivationAutoDerive}.CanAutoDerive())
	assert.False(t, Derivation{State: DerivationUserEdited}.CanAutoDerive())
}

func TestValueRange_Midpoint(t *testing.T) {
	assert.Equal(t, 650000.0, ValueRange{MinGBP: 400000, MaxGBP: 900000}.Midpoint())
	assert.Equal(t, 0.0, ValueRange{}.Midpoint())
}

func TestCapabilityTransition_LastIndependence(t *testing.T) {
	ct := &CapabilityTransition{}
	assert.Nil(t, ct.LastIndependence())

	ct.IndependenceHistory = []IndependencePoint{
		{Date: "2026-01-01", Pct: 10},
		{Date: "2026-02-01", Pct: 25},
	}
	last := ct.LastIndependence()
	assert.Equal(t, 25, last.Pct)
}
