package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/apperrors"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

func TestEngagementService_Create(t *testing.T) {
	repo := newMockEngagementRepo()
	svc := NewEngagementService(repo)

	eng := &models.Engagement{Name: "RSA UK Motor"}
	require.NoError(t, svc.Create(context.Background(), eng))
	assert.NotEqual(t, uuid.Nil, eng.ID)

	err := svc.Create(context.Background(), &models.Engagement{Name: "  "})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEngagementService_Create_InvalidPhasesJSON(t *testing.T) {
	repo := newMockEngagementRepo()
	svc := NewEngagementService(repo)

	err := svc.Create(context.Background(), &models.Engagement{
		Name:          "Custom",
		TOMPhasesJSON: `{"not":"a list"}`,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = svc.Create(context.Background(), &models.Engagement{
		Name:          "Custom",
		TOMPhasesJSON: `[]`,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEngagementService_Update_LockBlocksOperatingModelChanges(t *testing.T) {
	repo := newMockEngagementRepo()
	svc := NewEngagementService(repo)
	ctx := context.Background()

	eng := &models.Engagement{Name: "Locked", TOMPresetID: "standard", Locked: true}
	require.NoError(t, svc.Create(ctx, eng))

	_, err := svc.Update(ctx, eng.ID, &EngagementPatch{TOMPresetID: strPtr("fast-track")})
	assert.ErrorIs(t, err, apperrors.ErrEngagementLocked)

	_, err = svc.Update(ctx, eng.ID, &EngagementPatch{
		TOMPhasesJSON: strPtr(`[{"id":"x","name":"X"}]`),
	})
	assert.ErrorIs(t, err, apperrors.ErrEngagementLocked)

	// Name changes are fine on a locked engagement.
	updated, err := svc.Update(ctx, eng.ID, &EngagementPatch{Name: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	// Unlock, then the preset change goes through.
	_, err = svc.Update(ctx, eng.ID, &EngagementPatch{Locked: boolPtr(false)})
	require.NoError(t, err)
	updated, err = svc.Update(ctx, eng.ID, &EngagementPatch{TOMPresetID: strPtr("fast-track")})
	require.NoError(t, err)
	assert.Equal(t, "fast-track", updated.TOMPresetID)
}

func TestEngagementService_Update_NotFound(t *testing.T) {
	svc := NewEngagementService(newMockEngagementRepo())

	_, err := svc.Update(context.Background(), uuid.New(), &EngagementPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func boolPtr(v bool) *bool { return &v }
