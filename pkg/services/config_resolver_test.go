package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

func testMetadataConfig() *models.MetadataConfig {
	return &models.MetadataConfig{
		Scoring: models.ScoringConfig{
			ImpactWeights:     evenImpactWeights(),
			EffortWeights:     evenEffortWeights(),
			QuadrantThreshold: 3.0,
		},
		TOM: models.TOMConfig{
			Enabled:        true,
			ActivePresetID: "standard",
			Presets: []models.TOMPreset{
				{
					ID:   "standard",
					Name: "Standard",
					Phases: []models.TOMPhase{
						{ID: "foundation", Name: "Foundation"},
						{ID: "pilot", Name: "Pilot"},
					},
				},
				{
					ID:   "fast-track",
					Name: "Fast Track",
					Phases: []models.TOMPhase{
						{ID: "build", Name: "Build"},
						{ID: "run", Name: "Run"},
					},
				},
			},
		},
	}
}

func TestConfigResolver_Resolve_ActivePreset(t *testing.T) {
	resolver := NewConfigResolver()

	cfg, err := resolver.Resolve(testMetadataConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, "standard", cfg.PresetID)
	require.Len(t, cfg.Phases, 2)
	assert.Equal(t, "foundation", cfg.Phases[0].ID)
	assert.True(t, cfg.TOMEnabled)
}

func TestConfigResolver_Resolve_EngagementPresetWins(t *testing.T) {
	resolver := NewConfigResolver()

	eng := &models.Engagement{TOMPresetID: "fast-track"}
	cfg, err := resolver.Resolve(testMetadataConfig(), eng)
	require.NoError(t, err)

	assert.Equal(t, "fast-track", cfg.PresetID)
	require.Len(t, cfg.Phases, 2)
	assert.Equal(t, "build", cfg.Phases[0].ID)
}

func TestConfigResolver_Resolve_PhasesJSONReplacesGraphWholesale(t *testing.T) {
	resolver := NewConfigResolver()

	eng := &models.Engagement{
		TOMPresetID:   "standard",
		TOMPhasesJSON: `[{"id":"custom","name":"Custom","status_rules":["Backlog"]}]`,
	}
	cfg, err := resolver.Resolve(testMetadataConfig(), eng)
	require.NoError(t, err)

	require.Len(t, cfg.Phases, 1)
	assert.Equal(t, "custom", cfg.Phases[0].ID)
	assert.Equal(t, []string{"Backlog"}, cfg.Phases[0].StatusRules)
}

func TestConfigResolver_Resolve_InvalidPhasesJSON(t *testing.T) {
	resolver := NewConfigResolver()

	eng := &models.Engagement{TOMPhasesJSON: "{not json"}
	_, err := resolver.Resolve(testMetadataConfig(), eng)
	assert.Error(t, err)
}

func TestConfigResolver_Resolve_BaseConfigNeverMutated(t *testing.T) {
	resolver := NewConfigResolver()
	meta := testMetadataConfig()

	eng := &models.Engagement{
		TOMPresetID:   "fast-track",
		TOMPhasesJSON: `[{"id":"custom","name":"Custom"}]`,
	}
	_, err := resolver.Resolve(meta, eng)
	require.NoError(t, err)

	assert.Equal(t, "standard", meta.TOM.ActivePresetID)
	require.Len(t, meta.TOM.Presets[0].Phases, 2)
	assert.Equal(t, "foundation", meta.TOM.Presets[0].Phases[0].ID)
}

func TestConfigResolver_Resolve_ThresholdDefault(t *testing.T) {
	resolver := NewConfigResolver()
	meta := testMetadataConfig()
	meta.Scoring.QuadrantThreshold = 0

	cfg, err := resolver.Resolve(meta, nil)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultThreshold, cfg.Scoring.QuadrantThreshold)
}

func TestConfigResolver_Resolve_UnknownPresetFallsBackToFirst(t *testing.T) {
	resolver := NewConfigResolver()
	meta := testMetadataConfig()
	meta.TOM.ActivePresetID = "deleted-preset"

	cfg, err := resolver.Resolve(meta, nil)
	require.NoError(t, err)
	assert.Equal(t, "standard", cfg.PresetID)
	assert.Equal(t, "foundation", cfg.Phases[0].ID)
}

func TestConfigResolver_Resolve_NilMetadata(t *testing.T) {
	resolver := NewConfigResolver()
	_, err := resolver.Resolve(nil, nil)
	assert.Error(t, err)
}
