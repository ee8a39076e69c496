package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/pricing"
	"github.com/storelaunch/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormVendorRepository implements pricing.VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// Create creates a new vendor
func (r *GormVendorRepository) Create(ctx context.Context, v *pricing.Vendor) error {
	return r.db.WithContext(ctx).Create(models.VendorModelFromDomain(v)).Error
}

// Update updates an existing vendor
func (r *GormVendorRepository) Update(ctx context.Context, v *pricing.Vendor) error {
	return updateColumns(ctx, r.db, models.VendorModelFromDomain(v))
}

// Delete deletes a vendor by ID
func (r *GormVendorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.VendorModel{}, id)
}

// FindByID finds a vendor by ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists vendors by name, narrowed by country and category
func (r *GormVendorRepository) FindAll(ctx context.Context, filter pricing.VendorFilter) ([]*pricing.Vendor, error) {
	query := r.db.WithContext(ctx).Model(&models.VendorModel{})
	if filter.Country != "" {
		query = query.Where("country = ?", strings.ToUpper(filter.Country))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var rows []models.VendorModel
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*pricing.Vendor, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}
