package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

func newSummaryFixture(t *testing.T) (*testFixture, *SummaryService) {
	t.Helper()
	f := newTestFixture(t)
	return f, NewSummaryService(f.orc, nil, zap.NewNop())
}

func TestSummaryService_PhaseSummary(t *testing.T) {
	f, svc := newSummaryFixture(t)
	ctx := context.Background()

	_, err := f.orc.CreateUseCase(ctx, validInput())
	require.NoError(t, err)
	_, err = f.orc.CreateUseCase(ctx, validInput())
	require.NoError(t, err)

	summary, err := svc.PhaseSummary(ctx, ScopeAll)
	require.NoError(t, err)

	assert.True(t, summary.Enabled)
	assert.Equal(t, 2, summary.Summary["foundation"])
	assert.Len(t, summary.Phases, 2)
}

func TestSummaryService_PhaseSummary_DashboardScopeSkipsReferenceTier(t *testing.T) {
	f, svc := newSummaryFixture(t)
	ctx := context.Background()

	_, err := f.orc.CreateUseCase(ctx, validInput())
	require.NoError(t, err)

	reference := validInput()
	reference.LibraryTier = models.TierReference
	_, err = f.orc.CreateUseCase(ctx, reference)
	require.NoError(t, err)

	dashboard, err := svc.PhaseSummary(ctx, ScopeDashboard)
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.Summary["foundation"])

	all, err := svc.PhaseSummary(ctx, ScopeAll)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Summary["foundation"])
}

func TestSummaryService_CapabilitySummary(t *testing.T) {
	f, svc := newSummaryFixture(t)
	ctx := context.Background()

	_, err := f.orc.CreateUseCase(ctx, validInput())
	require.NoError(t, err)
	_, err = f.orc.CreateUseCase(ctx, validInput())
	require.NoError(t, err)

	summary, err := svc.CapabilitySummary(ctx, ScopeAll)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.UseCasesWithStaffing)
	// Foundation defaults: 2.0 hexaware, 0.5 client per use case.
	assert.InDelta(t, 4.0, summary.TotalHexawareFTEs, 1e-9)
	assert.InDelta(t, 1.0, summary.TotalClientFTEs, 1e-9)
	assert.Equal(t, 2, summary.ByPhase["foundation"])
	// 0.5 / 2.5 = 20% independence in every foundation use case.
	assert.InDelta(t, 20.0, summary.AvgCurrentIndepPct, 1e-9)
}

func TestSummaryService_ValueSummary(t *testing.T) {
	f, svc := newSummaryFixture(t)
	ctx := context.Background()

	_, err := f.orc.CreateUseCase(ctx, validInput())
	require.NoError(t, err)

	summary, err := svc.ValueSummary(ctx, ScopeAll)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.UseCasesWithValue)
	assert.Greater(t, summary.TotalEstimatedValue.MaxGBP, summary.TotalEstimatedValue.MinGBP)

	quadrant, ok := summary.ByQuadrant[string(models.QuadrantQuickWin)]
	require.True(t, ok)
	assert.Equal(t, summary.TotalEstimatedValue, quadrant)
}

func TestSummaryService_EmptyPortfolio(t *testing.T) {
	_, svc := newSummaryFixture(t)
	ctx := context.Background()

	capability, err := svc.CapabilitySummary(ctx, ScopeAll)
	require.NoError(t, err)
	assert.Equal(t, 0, capability.UseCasesWithStaffing)
	assert.Equal(t, 0.0, capability.AvgCurrentIndepPct)

	value, err := svc.ValueSummary(ctx, ScopeAll)
	require.NoError(t, err)
	assert.Equal(t, 0, value.UseCasesWithValue)
}
