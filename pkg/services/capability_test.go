package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

func testCapabilityConfig() models.CapabilityConfig {
	return models.CapabilityConfig{
		PhaseDefaults: map[string]models.CapabilityDefaults{
			"pilot": {
				HexawareFTEs:          3.0,
				ClientFTEs:            1.0,
				IndependenceFTEs:      0.5,
				TargetIndependencePct: 25,
			},
		},
		SizeMultipliers: map[string]float64{
			"S": 0.5, "M": 1.0, "L": 1.5, "XL": 2.0,
		},
	}
}

func TestCapabilityDeriver_Derive_PhaseDefaults(t *testing.T) {
	deriver := NewCapabilityDeriver()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	ct := deriver.Derive("pilot", "M", testCapabilityConfig(), nil, now)

	require.NotNil(t, ct.HexawareFTEs)
	assert.Equal(t, 3.0, *ct.HexawareFTEs)
	assert.Equal(t, 1.0, *ct.ClientFTEs)
	assert.Equal(t, 0.5, *ct.IndependenceFTEs)
	assert.Equal(t, 25, *ct.TargetIndependencePct)
	// 1 / (1+3) = 25%
	assert.Equal(t, 25, *ct.CurrentIndependencePct)
	require.Len(t, ct.IndependenceHistory, 1)
	assert.Equal(t, "2026-03-01", ct.IndependenceHistory[0].Date)
	assert.Equal(t, models.DerivationAutoDerive, ct.Derivation.State)
}

func TestCapabilityDeriver_Derive_SizeMultiplier(t *testing.T) {
	deriver := NewCapabilityDeriver()

	ct := deriver.Derive("pilot", "XL", testCapabilityConfig(), nil, time.Now())

	require.NotNil(t, ct.HexawareFTEs)
	assert.Equal(t, 6.0, *ct.HexawareFTEs)
	assert.Equal(t, 2.0, *ct.ClientFTEs)
	// Target percentage is not scaled by size.
	assert.Equal(t, 25, *ct.TargetIndependencePct)
}

func TestCapabilityDeriver_Derive_UnknownPhaseYieldsNoDefaults(t *testing.T) {
	deriver := NewCapabilityDeriver()

	ct := deriver.Derive("unphased", "M", testCapabilityConfig(), nil, time.Now())

	assert.Nil(t, ct.HexawareFTEs)
	assert.Nil(t, ct.ClientFTEs)
	assert.Empty(t, ct.IndependenceHistory)
}

func TestCapabilityDeriver_Derive_CarriesHistoryForward(t *testing.T) {
	deriver := NewCapabilityDeriver()
	existing := &models.CapabilityTransition{
		IndependenceHistory: []models.IndependencePoint{
			{Date: "2026-01-15", Pct: 10},
		},
	}

	ct := deriver.Derive("pilot", "M", testCapabilityConfig(), existing, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, ct.IndependenceHistory, 2)
	assert.Equal(t, 10, ct.IndependenceHistory[0].Pct)
	assert.Equal(t, 25, ct.IndependenceHistory[1].Pct)
}

func TestCapabilityDeriver_IndependenceFromStaffing(t *testing.T) {
	deriver := NewCapabilityDeriver()

	tests := []struct {
		name             string
		client, hexaware float64
		expected         int
	}{
		{"quarter client", 1.0, 3.0, 25},
		{"all client", 4.0, 0, 100},
		{"all hexaware", 0, 4.0, 0},
		{"nobody staffed", 0, 0, 0},
		{"rounded", 1.0, 2.0, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deriver.IndependenceFromStaffing(tt.client, tt.hexaware))
		})
	}
}

func TestCapabilityDeriver_AppendIndependence_Idempotent(t *testing.T) {
	deriver := NewCapabilityDeriver()
	ct := &models.CapabilityTransition{}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, deriver.AppendIndependence(ct, 25, now))
	// Same percentage again: no duplicate entry.
	assert.False(t, deriver.AppendIndependence(ct, 25, now.AddDate(0, 0, 1)))
	assert.Len(t, ct.IndependenceHistory, 1)

	assert.True(t, deriver.AppendIndependence(ct, 40, now.AddDate(0, 1, 0)))
	assert.Len(t, ct.IndependenceHistory, 2)
	assert.Equal(t, "2026-04-01", ct.IndependenceHistory[1].Date)
}
