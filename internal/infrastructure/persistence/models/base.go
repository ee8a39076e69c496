package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel provides common persistence fields for aggregate roots.
// It extends BaseModel with version for optimistic locking.
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// ToAggregateRoot converts AggregateModel to domain BaseAggregateRoot
func (m *AggregateModel) ToAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: m.BaseModel.ToDomain(),
		Version:    m.Version,
	}
}

// All returns every persistence model, in dependency order, for AutoMigrate
func All() []any {
	return []any{
		&UserModel{},
		&PasswordResetTokenModel{},
		&AuditLogModel{},
		&CountryModel{},
		&IngredientMasterModel{},
		&IngredientTemplateModel{},
		&IngredientTemplateItemModel{},
		&PriceHistoryModel{},
		&VendorModel{},
		&ManualGroupModel{},
		&MenuManualModel{},
		&ManualIngredientModel{},
		&ManualCostVersionModel{},
		&ManualCostLineModel{},
		&StoreModel{},
		&PlannedOpenDateModel{},
		&LaunchTemplateModel{},
		&TemplateTaskModel{},
		&TaskModel{},
		&TaskCommentModel{},
		&TaskChecklistItemModel{},
		&StoreFileModel{},
		&InventoryGroupModel{},
		&InventoryPeriodModel{},
		&InventoryItemModel{},
		&PosMenuLinkModel{},
		&PeriodSalesModel{},
	}
}
