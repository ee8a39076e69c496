package launch

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/audit"
	"github.com/storelaunch/backend/internal/domain/launch"
	"github.com/storelaunch/backend/internal/domain/pricing"
	"github.com/storelaunch/backend/internal/domain/shared"
	"github.com/storelaunch/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CreateStoreInput carries a new store and its optional first open date
type CreateStoreInput struct {
	launch.StoreInput
	PlannedOpenDate *time.Time
	OpenDateReason  string
	CreatedBy       uuid.UUID
}

// PlannedDateInput appends a planned open date
type PlannedDateInput struct {
	StoreID   uuid.UUID
	Date      time.Time
	Reason    string
	Policy    string
	ChangedBy uuid.UUID
}

// PlannedDateResult reports the new date and the tasks it moved
type PlannedDateResult struct {
	PlannedOpenDate *launch.PlannedOpenDate
	DeltaDays       int
	ShiftedTasks    []*launch.Task
}

// StoreService manages stores, their planned open dates and audit trail
type StoreService struct {
	stores    launch.StoreRepository
	tasks     launch.TaskRepository
	countries pricing.CountryRepository
	audits    audit.Repository
	publisher shared.EventPublisher
	metrics   *telemetry.LaunchMetrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewStoreService creates a new StoreService
func NewStoreService(
	stores launch.StoreRepository,
	tasks launch.TaskRepository,
	countries pricing.CountryRepository,
	audits audit.Repository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *StoreService {
	return &StoreService{
		stores:    stores,
		tasks:     tasks,
		countries: countries,
		audits:    audits,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// SetMetrics attaches business counters
func (s *StoreService) SetMetrics(m *telemetry.LaunchMetrics) {
	s.metrics = m
}

// List returns stores newest first with their current planned date
func (s *StoreService) List(ctx context.Context) ([]*launch.Store, error) {
	return s.stores.FindAll(ctx)
}

// Get returns one store
func (s *StoreService) Get(ctx context.Context, id uuid.UUID) (*launch.Store, error) {
	return findStore(ctx, s.stores, id)
}

// Create stores a new store. The timezone falls back to the country's.
func (s *StoreService) Create(ctx context.Context, in CreateStoreInput) (*launch.Store, error) {
	store, err := launch.NewStore(in.StoreInput, s.countryTimezone(ctx, in.Country), in.CreatedBy)
	if err != nil {
		s.logger.Warn("Store rejected", zap.Error(err))
		return nil, err
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, err
	}

	if in.PlannedOpenDate != nil {
		reason := in.OpenDateReason
		if reason == "" {
			reason = launch.InitialDateReason
		}
		p := launch.NewPlannedOpenDate(store.ID, *in.PlannedOpenDate, reason, in.CreatedBy)
		if err := s.stores.AddPlannedOpenDate(ctx, p); err != nil {
			return nil, err
		}
		store.PlannedOpenDate = p
	}

	s.publish(ctx, store)
	s.logger.Info("Store created",
		zap.String("store_id", store.ID.String()),
		zap.String("country", store.Country),
	)
	return store, nil
}

func (s *StoreService) countryTimezone(ctx context.Context, code string) string {
	if code == "" {
		return ""
	}
	c, err := s.countries.FindByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Country lookup failed", zap.String("code", code), zap.Error(err))
		}
		return ""
	}
	return c.Timezone
}

// Update overwrites the editable fields of a store
func (s *StoreService) Update(ctx context.Context, id uuid.UUID, in launch.StoreInput, actor uuid.UUID) (*launch.Store, error) {
	store, err := findStore(ctx, s.stores, id)
	if err != nil {
		return nil, err
	}
	if err := store.Update(in, actor); err != nil {
		s.logger.Warn("Store update rejected", zap.Error(err))
		return nil, err
	}
	if err := s.stores.Update(ctx, store); err != nil {
		return nil, err
	}
	s.publish(ctx, store)
	s.logger.Info("Store updated", zap.String("store_id", id.String()))
	return store, nil
}

// Delete removes a store and everything attached to it except its audit logs
func (s *StoreService) Delete(ctx context.Context, id, actor uuid.UUID) error {
	store, err := findStore(ctx, s.stores, id)
	if err != nil {
		return err
	}
	store.MarkDeleted(actor)
	if err := s.stores.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, store)
	s.logger.Info("Store deleted", zap.String("store_id", id.String()))
	return nil
}

// AddPlannedOpenDate appends a planned date and shifts the store's tasks
// by the difference to the previous date.
func (s *StoreService) AddPlannedOpenDate(ctx context.Context, in PlannedDateInput) (*PlannedDateResult, error) {
	if in.Date.IsZero() {
		return nil, shared.InvalidInput("Date is required")
	}
	policy, err := launch.ParsePolicy(in.Policy, launch.PolicyCascadeAll)
	if err != nil {
		return nil, err
	}
	store, err := findStore(ctx, s.stores, in.StoreID)
	if err != nil {
		return nil, err
	}

	p := launch.NewPlannedOpenDate(store.ID, in.Date, in.Reason, in.ChangedBy)
	if err := s.stores.AddPlannedOpenDate(ctx, p); err != nil {
		return nil, err
	}
	result := &PlannedDateResult{PlannedOpenDate: p}
	if store.PlannedOpenDate == nil {
		return result, nil
	}

	result.DeltaDays = launch.DaysBetween(store.PlannedOpenDate.Date, p.Date)
	if result.DeltaDays == 0 {
		return result, nil
	}
	tasks, err := s.tasks.FindByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	result.ShiftedTasks = launch.ShiftForOpenDate(tasks, result.DeltaDays, policy, s.now())
	if len(result.ShiftedTasks) > 0 {
		if err := s.tasks.SaveAll(ctx, result.ShiftedTasks); err != nil {
			return nil, err
		}
	}
	s.metrics.TasksRescheduled(ctx, string(policy), len(result.ShiftedTasks))
	s.logger.Info("Planned open date changed",
		zap.String("store_id", store.ID.String()),
		zap.String("date", p.Date.Format(launch.DateLayout)),
		zap.Int("delta_days", result.DeltaDays),
		zap.Int("shifted_tasks", len(result.ShiftedTasks)),
	)
	return result, nil
}

// PlannedOpenDates returns the date history, newest first
func (s *StoreService) PlannedOpenDates(ctx context.Context, id uuid.UUID) ([]*launch.PlannedOpenDate, error) {
	if _, err := findStore(ctx, s.stores, id); err != nil {
		return nil, err
	}
	return s.stores.ListPlannedOpenDates(ctx, id)
}

// AuditLogs returns the audit trail of a store, newest first
func (s *StoreService) AuditLogs(ctx context.Context, id uuid.UUID) ([]*audit.Log, error) {
	if _, err := findStore(ctx, s.stores, id); err != nil {
		return nil, err
	}
	return s.audits.FindByEntity(ctx, launch.AggregateTypeStore, id)
}

func (s *StoreService) publish(ctx context.Context, store *launch.Store) {
	if err := s.publisher.Publish(ctx, store.GetDomainEvents()...); err != nil {
		s.logger.Error("Failed to publish store events", zap.String("store_id", store.ID.String()), zap.Error(err))
	}
	store.ClearDomainEvents()
}

func findStore(ctx context.Context, repo launch.StoreRepository, id uuid.UUID) (*launch.Store, error) {
	store, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Store not found")
		}
		return nil, err
	}
	return store, nil
}
