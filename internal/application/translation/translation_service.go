package translation

import (
	"context"

	"github.com/storelaunch/backend/internal/domain/shared"
	"github.com/storelaunch/backend/internal/domain/translation"
	"github.com/storelaunch/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Service translates Korean cooking instructions
type Service struct {
	translator *translation.RuleTranslator
	refiner    translation.Refiner
	metrics    *telemetry.LaunchMetrics
	logger     *zap.Logger
}

// NewService creates a translation service. refiner may be nil.
func NewService(refiner translation.Refiner, metrics *telemetry.LaunchMetrics, logger *zap.Logger) *Service {
	return &Service{
		translator: translation.NewRuleTranslator(),
		refiner:    refiner,
		metrics:    metrics,
		logger:     logger,
	}
}

// Translate runs the rule-based pass and, when a refiner is configured,
// polishes the result. Refiner failures fall back to the rule-based text.
func (s *Service) Translate(ctx context.Context, text string) (*translation.Result, error) {
	if translation.IsEmpty(text) {
		return nil, shared.InvalidInput("Text is required")
	}

	result := s.translator.Translate(text)
	if result.Provider == "" {
		s.metrics.Translated(ctx, "passthrough")
		return &result, nil
	}

	if s.refiner != nil {
		refined, err := s.refiner.Refine(ctx, result.Step2)
		if err != nil {
			s.logger.Warn("Translation refine failed, using rule-based result", zap.Error(err))
		} else {
			result.FinalTranslation = refined
			result.UsedAI = true
			result.Provider = translation.ProviderRefined
		}
	}

	s.metrics.Translated(ctx, result.Provider)
	return &result, nil
}
