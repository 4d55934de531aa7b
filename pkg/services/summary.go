package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/database"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
)

// Summary scopes.
const (
	ScopeDashboard = "dashboard"
	ScopeAll       = "all"
)

const summaryCacheTTL = 60 * time.Second

// PhaseSummary aggregates use-case counts per TOM phase.
type PhaseSummary struct {
	Enabled bool              `json:"enabled"`
	Summary map[string]int    `json:"summary"`
	Phases  []models.TOMPhase `json:"phases"`
}

// CapabilitySummary aggregates staffing projections across the
// portfolio.
type CapabilitySummary struct {
	TotalHexawareFTEs    float64        `json:"total_hexaware_ftes"`
	TotalClientFTEs      float64        `json:"total_client_ftes"`
	AvgCurrentIndepPct   float64        `json:"avg_current_independence_pct"`
	AvgTargetIndepPct    float64        `json:"avg_target_independence_pct"`
	UseCasesWithStaffing int            `json:"use_cases_with_staffing"`
	ByPhase              map[string]int `json:"by_phase"`
}

// ValueSummary aggregates value projections across the portfolio.
type ValueSummary struct {
	TotalEstimatedValue models.ValueRange            `json:"total_estimated_value"`
	UseCasesWithValue   int                          `json:"use_cases_with_value"`
	ByQuadrant          map[string]models.ValueRange `json:"by_quadrant"`
}

// SummaryService serves the dashboard aggregates. Results are cached
// briefly in redis when a client is configured; a nil cache disables
// caching.
type SummaryService struct {
	orc    *Orchestrator
	cache  *redis.Client
	logger *zap.Logger
}

// NewSummaryService creates a SummaryService.
func NewSummaryService(orc *Orchestrator, cache *redis.Client, logger *zap.Logger) *SummaryService {
	return &SummaryService{orc: orc, cache: cache, logger: logger}
}

// PhaseSummary returns per-phase counts. Scope "dashboard" counts only
// active-tier use cases; "all" counts everything.
func (s *SummaryService) PhaseSummary(ctx context.Context, scope string) (*PhaseSummary, error) {
	if cached, ok := s.fromCache(ctx, "phase", scope, &PhaseSummary{}); ok {
		return cached.(*PhaseSummary), nil
	}

	cfg, err := s.defaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	summary := &PhaseSummary{
		Enabled: cfg.TOMEnabled,
		Summary: map[string]int{},
		Phases:  cfg.Phases,
	}
	if !cfg.TOMEnabled {
		return summary, nil
	}

	useCases, err := s.orc.useCases.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, uc := range useCases {
		if scope == ScopeDashboard && uc.LibraryTier != models.TierActive {
			continue
		}
		phase := uc.TOMPhase
		if phase == "" {
			phase = PhaseUnphased
		}
		summary.Summary[phase]++
	}

	s.toCache(ctx, "phase", scope, summary)
	return summary, nil
}

// CapabilitySummary aggregates staffing projections.
func (s *SummaryService) CapabilitySummary(ctx context.Context, scope string) (*CapabilitySummary, error) {
	if cached, ok := s.fromCache(ctx, "capability", scope, &CapabilitySummary{}); ok {
		return cached.(*CapabilitySummary), nil
	}

	useCases, err := s.orc.useCases.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &CapabilitySummary{ByPhase: map[string]int{}}
	var currentSum, targetSum float64
	var currentN, targetN int
	for _, uc := range useCases {
		if scope == ScopeDashboard && uc.LibraryTier != models.TierActive {
			continue
		}
		ct := uc.CapabilityTransition
		if ct == nil {
			continue
		}
		summary.UseCasesWithStaffing++
		if uc.TOMPhase != "" {
			summary.ByPhase[uc.TOMPhase]++
		}
		if ct.HexawareFTEs != nil {
			summary.TotalHexawareFTEs += *ct.HexawareFTEs
		}
		if ct.ClientFTEs != nil {
			summary.TotalClientFTEs += *ct.ClientFTEs
		}
		if ct.CurrentIndependencePct != nil {
			currentSum += float64(*ct.CurrentIndependencePct)
			currentN++
		}
		if ct.TargetIndependencePct != nil {
			targetSum += float64(*ct.TargetIndependencePct)
			targetN++
		}
	}
	if currentN > 0 {
		summary.AvgCurrentIndepPct = currentSum / float64(currentN)
	}
	if targetN > 0 {
		summary.AvgTargetIndepPct = targetSum / float64(targetN)
	}

	s.toCache(ctx, "capability", scope, summary)
	return summary, nil
}

// ValueSummary aggregates value projections.
func (s *SummaryService) ValueSummary(ctx context.Context, scope string) (*ValueSummary, error) {
	if cached, ok := s.fromCache(ctx, "value", scope, &ValueSummary{}); ok {
		return cached.(*ValueSummary), nil
	}

	useCases, err := s.orc.useCases.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ValueSummary{ByQuadrant: map[string]models.ValueRange{}}
	for _, uc := range useCases {
		if scope == ScopeDashboard && uc.LibraryTier != models.TierActive {
			continue
		}
		vr := uc.ValueRealization
		if vr == nil || vr.TotalEstimatedValue == nil {
			continue
		}
		summary.UseCasesWithValue++
		summary.TotalEstimatedValue.MinGBP += vr.TotalEstimatedValue.MinGBP
		summary.TotalEstimatedValue.MaxGBP += vr.TotalEstimatedValue.MaxGBP

		q := string(uc.DisplayQuadrant())
		agg := summary.ByQuadrant[q]
		agg.MinGBP += vr.TotalEstimatedValue.MinGBP
		agg.MaxGBP += vr.TotalEstimatedValue.MaxGBP
		summary.ByQuadrant[q] = agg
	}

	s.toCache(ctx, "value", scope, summary)
	return summary, nil
}

func (s *SummaryService) defaultConfig(ctx context.Context) (*ResolvedConfig, error) {
	eng, err := s.orc.engagements.GetDefault(ctx)
	if err != nil && !errorsIsNotFound(err) {
		return nil, err
	}
	return s.orc.EffectiveConfig(ctx, eng)
}

func (s *SummaryService) cacheKey(ctx context.Context, kind, scope string) (string, bool) {
	clientID, ok := database.GetClientID(ctx)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("portfolio:summary:%s:%s:%s", clientID, kind, scope), true
}

func (s *SummaryService) fromCache(ctx context.Context, kind, scope string, dst interface{}) (interface{}, bool) {
	if s.cache == nil {
		return nil, false
	}
	key, ok := s.cacheKey(ctx, kind, scope)
	if !ok {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Debug("summary cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, false
	}
	return dst, true
}

func (s *SummaryService) toCache(ctx context.Context, kind, scope string, v interface{}) {
	if s.cache == nil {
		return
	}
	key, ok := s.cacheKey(ctx, kind, scope)
	if !ok {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, summaryCacheTTL).Err(); err != nil {
		s.logger.Debug("summary cache write failed", zap.String("key", key), zap.Error(err))
	}
}
