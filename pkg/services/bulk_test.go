package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

func TestOrchestrator_DeriveAll_SkipsPopulatedWithoutOverwrite(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	_, err := f.orc.CreateUseCase(ctx, validInput())
	require.NoError(t, err)
	_, err = f.orc.CreateUseCase(ctx, validInput())
	require.NoError(t, err)

	// Both use cases came out of create with populated value and
	// capability objects, so a non-overwrite run skips them all.
	result, err := f.orc.DeriveAll(ctx, DeriveAllOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.ValueSkipped)
	assert.Equal(t, 2, result.CapabilitySkipped)
	assert.Equal(t, 0, result.ValueDerived)
	assert.Empty(t, result.Errors)
}

func TestOrchestrator_DeriveAll_OverwriteRegenerates(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	_, err := f.orc.CreateUseCase(ctx, validInput())
	require.NoError(t, err)

	result, err := f.orc.DeriveAll(ctx, DeriveAllOptions{
		OverwriteValue:      true,
		OverwriteCapability: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.ValueDerived)
	assert.Equal(t, 1, result.CapabilityDerived)
	assert.Equal(t, 0, result.ValueSkipped)
}

func TestOrchestrator_DeriveAll_UserEditedNeverOverwritten(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	uc, err := f.orc.CreateUseCase(ctx, validInput())
	require.NoError(t, err)
	_, err = f.orc.UpdateUseCase(ctx, uc.ID, &UseCasePatch{
		ValueRealization: &models.ValueRealization{SelectedKPIs: []string{"manual"}},
	})
	require.NoError(t, err)

	// The overwrite flag bypasses the populated-check but never the
	// user-edited guard.
	result, err := f.orc.DeriveAll(ctx, DeriveAllOptions{OverwriteValue: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ValueSkipped)
	assert.Equal(t, 0, result.ValueDerived)

	stored, err := f.orc.GetUseCase(ctx, uc.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"manual"}, stored.ValueRealization.SelectedKPIs)
}

func TestOrchestrator_DeriveCapabilityAll_TouchesOnlyCapability(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	uc, err := f.orc.CreateUseCase(ctx, validInput())
	require.NoError(t, err)
	prevValueAt := uc.ValueRealization.Derivation.At

	result, err := f.orc.DeriveCapabilityAll(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CapabilityDerived)
	assert.Equal(t, 0, result.ValueDerived)
	assert.Equal(t, 0, result.ValueSkipped)

	stored, err := f.orc.GetUseCase(ctx, uc.ID)
	require.NoError(t, err)
	assert.Equal(t, prevValueAt, stored.ValueRealization.Derivation.At)
}

func TestOrchestrator_RecalculateScores(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	uc, err := f.orc.CreateUseCase(ctx, validInput())
	require.NoError(t, err)
	assert.InDelta(t, 4.0, uc.ImpactScore, 1e-9)

	count, errs, err := f.orc.RecalculateScores(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Empty(t, errs)

	stored, err := f.orc.GetUseCase(ctx, uc.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, stored.ImpactScore, 1e-9)
}
