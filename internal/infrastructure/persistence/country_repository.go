package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/pricing"
	"github.com/storelaunch/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCountryRepository implements pricing.CountryRepository using GORM
type GormCountryRepository struct {
	db *gorm.DB
}

// NewGormCountryRepository creates a new GormCountryRepository
func NewGormCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

// FindAll returns countries ordered by code
func (r *GormCountryRepository) FindAll(ctx context.Context) ([]*pricing.Country, error) {
	var rows []models.CountryModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*pricing.Country, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// FindByID finds a country by ID
func (r *GormCountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.Country, error) {
	var model models.CountryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByCode finds a country by its ISO code
func (r *GormCountryRepository) FindByCode(ctx context.Context, code string) (*pricing.Country, error) {
	var model models.CountryModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Upsert inserts the country or refreshes name, currency and timezone of the
// row with the same code
func (r *GormCountryRepository) Upsert(ctx context.Context, country *pricing.Country) error {
	model := models.CountryModelFromDomain(country)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "currency", "timezone", "updated_at"}),
	}).Create(model).Error
}
