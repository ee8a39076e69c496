package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/identity"
	"github.com/storelaunch/backend/internal/domain/shared"
	"github.com/storelaunch/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	return updateColumns(ctx, r.db, models.UserModelFromDomain(user))
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by normalized email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	if email == "" {
		return nil, shared.ErrNotFound
	}
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every user ordered by email
func (r *GormUserRepository) FindAll(ctx context.Context) ([]*identity.User, error) {
	var rows []models.UserModel
	if err := r.db.WithContext(ctx).Order("email ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]*identity.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToDomain()
	}
	return users, nil
}

// GormResetTokenRepository implements ResetTokenRepository using GORM
type GormResetTokenRepository struct {
	db *gorm.DB
}

// NewGormResetTokenRepository creates a new GormResetTokenRepository
func NewGormResetTokenRepository(db *gorm.DB) *GormResetTokenRepository {
	return &GormResetTokenRepository{db: db}
}

// Create stores a reset token
func (r *GormResetTokenRepository) Create(ctx context.Context, token *identity.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(models.PasswordResetTokenModelFromDomain(token)).Error
}

// FindByToken looks a token up by its secret value
func (r *GormResetTokenRepository) FindByToken(ctx context.Context, token string) (*identity.PasswordResetToken, error) {
	var model models.PasswordResetTokenModel
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Delete removes a token by ID
func (r *GormResetTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PasswordResetTokenModel{}, "id = ?", id).Error
}

// DeleteByUserID removes every token issued to a user
func (r *GormResetTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.PasswordResetTokenModel{}, "user_id = ?", userID).Error
}

// DeleteExpired removes tokens that expired before the given instant
func (r *GormResetTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.PasswordResetTokenModel{}, "expires_at < ?", before)
	return result.RowsAffected, result.Error
}
