package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Email        string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	Name         string        `gorm:"type:varchar(200)"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'VIEWER'"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Name:              m.Name,
		Role:              m.Role,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Name = u.Name
	m.Role = u.Role
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// PasswordResetTokenModel is the persistence model for reset tokens
type PasswordResetTokenModel struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index"`
	Token     string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}

// ToDomain converts the persistence model to a domain token
func (m *PasswordResetTokenModel) ToDomain() *identity.PasswordResetToken {
	return &identity.PasswordResetToken{
		ID:        m.ID,
		UserID:    m.UserID,
		Token:     m.Token,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

// PasswordResetTokenModelFromDomain creates a persistence model from a domain token
func PasswordResetTokenModelFromDomain(t *identity.PasswordResetToken) *PasswordResetTokenModel {
	return &PasswordResetTokenModel{
		ID:        t.ID,
		UserID:    t.UserID,
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt,
		CreatedAt: t.CreatedAt,
	}
}
