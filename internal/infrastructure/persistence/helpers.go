package persistence

import (
	"context"
	"errors"

	"github.com/storelaunch/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// translateError maps GORM sentinel errors to domain errors
func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}

// updateColumns writes every column of model, including zero values, and
// reports ErrNotFound when no row matched the primary key. Associations are
// left untouched.
func updateColumns(ctx context.Context, db *gorm.DB, model any) error {
	result := db.WithContext(ctx).Model(model).Select("*").Omit(clause.Associations).Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// deleteByID removes one row and reports ErrNotFound when nothing matched
func deleteByID(ctx context.Context, db *gorm.DB, model any, id any) error {
	result := db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// likePattern wraps q for a case-insensitive contains match
func likePattern(q string) string {
	return "%" + q + "%"
}
