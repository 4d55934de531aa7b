package services

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/models"
	"github.com/mukundan316-cell/UseCaseFramework-sub002/pkg/repositories"
)

// MetadataPutResult reports what a metadata write did.
type MetadataPutResult struct {
	Issues       []string    `json:"issues,omitempty"`
	Recalculated int         `json:"recalculated"`
	Errors       []BulkError `json:"errors,omitempty"`
}

// MetadataService serves and stores the per-client metadata config.
// Writes trigger a full-portfolio score recalculation, since weight or
// threshold changes invalidate every cached score.
type MetadataService interface {
	Get(ctx context.Context) (*models.MetadataConfig, error)
	Put(ctx context.Context, cfg *models.MetadataConfig) (*MetadataPutResult, error)
}

type metadataService struct {
	repo     repositories.MetadataRepository
	orc      *Orchestrator
	defaults *models.MetadataConfig
	logger   *zap.Logger
}

// NewMetadataService creates a MetadataService.
func NewMetadataService(repo repositories.MetadataRepository, orc *Orchestrator, defaults *models.MetadataConfig, logger *zap.Logger) MetadataService {
	return &metadataService{repo: repo, orc: orc, defaults: defaults, logger: logger}
}

// Get returns the stored config, or the seed defaults when the client
// has never written one.
func (s *metadataService) Get(ctx context.Context) (*models.MetadataConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if errorsIsNotFound(err) {
			return s.defaults, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Put validates and stores the config, then recalculates all portfolio
// scores. Validation problems (weights not summing to 100) are reported
// as issues but do not reject the write; historical configs keep
// loading.
func (s *metadataService) Put(ctx context.Context, cfg *models.MetadataConfig) (*MetadataPutResult, error) {
	result := &MetadataPutResult{Issues: ValidateMetadataConfig(cfg)}

	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}

	count, errs, err := s.orc.RecalculateScores(ctx)
	if err != nil {
		return nil, fmt.Errorf("config stored but recalculation failed: %w", err)
	}
	result.Recalculated = count
	result.Errors = errs

	s.logger.Info("metadata config updated",
		zap.Int("recalculated", count),
		zap.Int("issues", len(result.Issues)))
	return result, nil
}

// ValidateMetadataConfig reports advisory issues with a config.
func ValidateMetadataConfig(cfg *models.MetadataConfig) []string {
	var issues []string

	iw := cfg.Scoring.ImpactWeights
	if sum := iw.RevenueImpact + iw.CostSavings + iw.RiskReduction + iw.BrokerPartnerExperience + iw.StrategicFit; sum != 100 {
		issues = append(issues, fmt.Sprintf("impact weights sum to %.0f, expected 100", sum))
	}
	ew := cfg.Scoring.EffortWeights
	if sum := ew.DataReadiness + ew.TechnicalComplexity + ew.ChangeImpact + ew.ModelRisk + ew.AdoptionReadiness; sum != 100 {
		issues = append(issues, fmt.Sprintf("effort weights sum to %.0f, expected 100", sum))
	}
	if cfg.Scoring.QuadrantThreshold < 1 || cfg.Scoring.QuadrantThreshold > 5 {
		issues = append(issues, fmt.Sprintf("quadrant threshold %.1f is outside the 1-5 score range", cfg.Scoring.QuadrantThreshold))
	}

	if cfg.TOM.Enabled {
		if cfg.TOM.Preset(cfg.TOM.ActivePresetID) == nil && len(cfg.TOM.Presets) == 0 {
			issues = append(issues, "tom is enabled but no presets are defined")
		}
		seen := map[string]bool{}
		for _, preset := range cfg.TOM.Presets {
			for _, phase := range preset.Phases {
				key := preset.ID + "/" + phase.ID
				if seen[key] {
					issues = append(issues, fmt.Sprintf("duplicate phase id %q in preset %q", phase.ID, preset.ID))
				}
				seen[key] = true
			}
		}
	}

	for _, kpi := range cfg.KPILibrary {
		for _, rule := range kpi.MaturityRules {
			if _, ok := kpi.ValueRanges[rule.Level]; !ok {
				issues = append(issues, fmt.Sprintf("kpi %q has no value range for maturity level %q", kpi.ID, rule.Level))
			}
		}
	}

	return issues
}

// LoadMetadataDefaults reads the YAML seed used when a client has no
// stored config.
func LoadMetadataDefaults(path string) (*models.MetadataConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata defaults: %w", err)
	}
	cfg := &models.MetadataConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse metadata defaults: %w", err)
	}
	return cfg, nil
}
