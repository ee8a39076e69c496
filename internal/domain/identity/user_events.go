package identity

import (
	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/shared"
)

// AggregateTypeUser is the aggregate type for users
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserCreated       = "UserCreated"
	EventTypeUserPasswordReset = "UserPasswordReset"
)

// UserCreatedEvent is published when a user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID),
		Email:           user.Email,
		Role:            user.Role,
	}
}

// UserPasswordResetEvent is published after a password reset and is audited
type UserPasswordResetEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserPasswordResetEvent creates a new UserPasswordResetEvent
func NewUserPasswordResetEvent(user *User) *UserPasswordResetEvent {
	return &UserPasswordResetEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserPasswordReset, AggregateTypeUser, user.ID),
		Email:           user.Email,
	}
}

func (e *UserPasswordResetEvent) AuditAction() string { return "PASSWORD_RESET" }
func (e *UserPasswordResetEvent) Actor() uuid.UUID    { return e.AggID }
func (e *UserPasswordResetEvent) Before() any         { return nil }
func (e *UserPasswordResetEvent) After() any          { return map[string]string{"email": e.Email} }
