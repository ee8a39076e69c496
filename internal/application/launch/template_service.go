package launch

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/launch"
	"github.com/storelaunch/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TemplateService manages launch templates
type TemplateService struct {
	templates launch.TemplateRepository
	logger    *zap.Logger
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templates launch.TemplateRepository, logger *zap.Logger) *TemplateService {
	return &TemplateService{templates: templates, logger: logger}
}

// List returns every launch template with its tasks
func (s *TemplateService) List(ctx context.Context) ([]*launch.LaunchTemplate, error) {
	return s.templates.FindAll(ctx)
}

// Get returns one template
func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*launch.LaunchTemplate, error) {
	return findTemplate(ctx, s.templates, id)
}

// Create stores a template with its task definitions
func (s *TemplateService) Create(ctx context.Context, name, country string, tasks []launch.TemplateTaskInput) (*launch.LaunchTemplate, error) {
	tpl, err := launch.NewLaunchTemplate(name, country, tasks)
	if err != nil {
		s.logger.Warn("Launch template rejected", zap.Error(err))
		return nil, err
	}
	if err := s.templates.Create(ctx, tpl); err != nil {
		return nil, err
	}
	s.logger.Info("Launch template created",
		zap.String("template_id", tpl.ID.String()),
		zap.Int("tasks", len(tpl.Tasks)),
	)
	return tpl, nil
}

func findTemplate(ctx context.Context, repo launch.TemplateRepository, id uuid.UUID) (*launch.LaunchTemplate, error) {
	tpl, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Template not found")
		}
		return nil, err
	}
	return tpl, nil
}
