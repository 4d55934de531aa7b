package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

// BulkError records a single use case's failure during a bulk run.
type BulkError struct {
	UseCaseID uuid.UUID `json:"use_case_id"`
	Error     string    `json:"error"`
}

// BulkDeriveResult aggregates a bulk derivation run. A failure for one
// use case never aborts the batch.
type BulkDeriveResult struct {
	Total             int         `json:"total"`
	TOMDerived        int         `json:"tom_derived"`
	ValueDerived      int         `json:"value_derived"`
	CapabilityDerived int         `json:"capability_derived"`
	ValueSkipped      int         `json:"value_skipped"`
	CapabilitySkipped int         `json:"capability_skipped"`
	Errors            []BulkError `json:"errors"`
}

// DeriveAllOptions controls which derived sub-objects a bulk run may
// overwrite. Overwrite flags only bypass the "already populated" skip;
// user-edited objects are never touched either way.
type DeriveAllOptions struct {
	OverwriteValue      bool `json:"overwrite_value"`
	OverwriteCapability bool `json:"overwrite_capability"`
}

// DeriveAll reruns phase, value and capability derivation for every use
// case, sequentially, collecting per-item errors.
func (o *Orchestrator) DeriveAll(ctx context.Context, opts DeriveAllOptions) (*BulkDeriveResult, error) {
	return o.bulkDerive(ctx, opts, true, true, true)
}

// DeriveCapabilityAll reruns only capability derivation.
func (o *Orchestrator) DeriveCapabilityAll(ctx context.Context, overwrite bool) (*BulkDeriveResult, error) {
	return o.bulkDerive(ctx, DeriveAllOptions{OverwriteCapability: overwrite}, false, false, true)
}

// DeriveValueAll reruns only value derivation.
func (o *Orchestrator) DeriveValueAll(ctx context.Context, overwrite bool) (*BulkDeriveResult, error) {
	return o.bulkDerive(ctx, DeriveAllOptions{OverwriteValue: overwrite}, false, true, false)
}

func (o *Orchestrator) bulkDerive(ctx context.Context, opts DeriveAllOptions, doPhase, doValue, doCapability bool) (*BulkDeriveResult, error) {
	useCases, err := o.useCases.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &BulkDeriveResult{Total: len(useCases), Errors: []BulkError{}}
	configs := map[uuid.UUID]*ResolvedConfig{}

	for _, uc := range useCases {
		if err := o.deriveOne(ctx, uc, opts, configs, doPhase, doValue, doCapability, result); err != nil {
			// Recovered locally: log, record, continue with siblings.
			o.logger.Warn("bulk derivation failed for use case",
				zap.String("use_case_id", uc.ID.String()),
				zap.Error(err))
			result.Errors = append(result.Errors, BulkError{UseCaseID: uc.ID, Error: err.Error()})
		}
	}
	return result, nil
}

func (o *Orchestrator) deriveOne(ctx context.Context, uc *models.UseCase, opts DeriveAllOptions, configs map[uuid.UUID]*ResolvedConfig, doPhase, doValue, doCapability bool, result *BulkDeriveResult) error {
	cfg, ok := configs[uc.EngagementID]
	if !ok {
		eng, err := o.engagements.GetByID(ctx, uc.EngagementID)
		if err != nil {
			return fmt.Errorf("failed to load engagement: %w", err)
		}
		cfg, err = o.EffectiveConfig(ctx, eng)
		if err != nil {
			return fmt.Errorf("failed to resolve config: %w", err)
		}
		configs[uc.EngagementID] = cfg
	}

	now := o.now()
	prevPhase := uc.TOMPhase

	if doPhase {
		if o.derivePhase(uc, cfg, prevPhase, now) {
			result.TOMDerived++
		}
	}

	if doValue {
		switch {
		case uc.ValueRealization != nil && !uc.ValueRealization.Derivation.CanAutoDerive():
			result.ValueSkipped++
		case !opts.OverwriteValue && uc.ValueRealization != nil && len(uc.ValueRealization.KPIEstimates) > 0:
			result.ValueSkipped++
		default:
			o.deriveValue(uc, cfg, now)
			result.ValueDerived++
		}
	}

	if doCapability {
		switch {
		case uc.CapabilityTransition != nil && !uc.CapabilityTransition.Derivation.CanAutoDerive():
			result.CapabilitySkipped++
		case !opts.OverwriteCapability && uc.CapabilityTransition != nil && uc.CapabilityTransition.HexawareFTEs != nil:
			result.CapabilitySkipped++
		default:
			o.deriveCapability(uc, cfg, now)
			result.CapabilityDerived++
		}
	}

	if err := o.useCases.Update(ctx, uc); err != nil {
		return fmt.Errorf("failed to persist derivation: %w", err)
	}
	return nil
}

// RecalculateScores recomputes impact/effort/quadrant for the whole
// portfolio. Called after the metadata config (weights, threshold) is
// written. Returns the number of use cases updated.
func (o *Orchestrator) RecalculateScores(ctx context.Context) (int, []BulkError, error) {
	useCases, err := o.useCases.List(ctx)
	if err != nil {
		return 0, nil, err
	}

	configs := map[uuid.UUID]*ResolvedConfig{}
	count := 0
	var errs []BulkError
	for _, uc := range useCases {
		cfg, ok := configs[uc.EngagementID]
		if !ok {
			eng, err := o.engagements.GetByID(ctx, uc.EngagementID)
			if err != nil {
				errs = append(errs, BulkError{UseCaseID: uc.ID, Error: err.Error()})
				continue
			}
			cfg, err = o.EffectiveConfig(ctx, eng)
			if err != nil {
				errs = append(errs, BulkError{UseCaseID: uc.ID, Error: err.Error()})
				continue
			}
			configs[uc.EngagementID] = cfg
		}

		o.deriveScores(uc, cfg)
		if err := o.useCases.Update(ctx, uc); err != nil {
			errs = append(errs, BulkError{UseCaseID: uc.ID, Error: err.Error()})
			continue
		}
		count++
	}
	return count, errs, nil
}
