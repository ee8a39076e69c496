package launch

import (
	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/shared"
)

// Aggregate types audited by the launch module
const (
	AggregateTypeStore = "Store"
	AggregateTypeTask  = "Task"
)

// Event types
const (
	EventTypeStoreCreated = "StoreCreated"
	EventTypeStoreUpdated = "StoreUpdated"
	EventTypeStoreDeleted = "StoreDeleted"
	EventTypeTaskUpdated  = "TaskUpdated"
)

// auditFields implements the audit part of shared.AuditableEvent
type auditFields struct {
	Action  string    `json:"action"`
	ActorID uuid.UUID `json:"actor_id"`
	Prev    any       `json:"before,omitempty"`
	Next    any       `json:"after,omitempty"`
}

func (a *auditFields) AuditAction() string { return a.Action }
func (a *auditFields) Actor() uuid.UUID    { return a.ActorID }
func (a *auditFields) Before() any         { return a.Prev }
func (a *auditFields) After() any          { return a.Next }

// StoreCreatedEvent is published when a store is created
type StoreCreatedEvent struct {
	shared.BaseDomainEvent
	auditFields
}

// NewStoreCreatedEvent creates a new StoreCreatedEvent
func NewStoreCreatedEvent(s *Store, actor uuid.UUID) *StoreCreatedEvent {
	return &StoreCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreCreated, AggregateTypeStore, s.ID),
		auditFields:     auditFields{Action: "CREATE", ActorID: actor, Next: s.Snapshot()},
	}
}

// StoreUpdatedEvent is published when store fields change
type StoreUpdatedEvent struct {
	shared.BaseDomainEvent
	auditFields
}

// NewStoreUpdatedEvent creates a new StoreUpdatedEvent
func NewStoreUpdatedEvent(s *Store, actor uuid.UUID, before StoreSnapshot) *StoreUpdatedEvent {
	return &StoreUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreUpdated, AggregateTypeStore, s.ID),
		auditFields:     auditFields{Action: "UPDATE", ActorID: actor, Prev: before, Next: s.Snapshot()},
	}
}

// StoreDeletedEvent is published when a store is deleted
type StoreDeletedEvent struct {
	shared.BaseDomainEvent
	auditFields
}

// NewStoreDeletedEvent creates a new StoreDeletedEvent
func NewStoreDeletedEvent(s *Store, actor uuid.UUID) *StoreDeletedEvent {
	return &StoreDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreDeleted, AggregateTypeStore, s.ID),
		auditFields:     auditFields{Action: "DELETE", ActorID: actor, Prev: s.Snapshot()},
	}
}

// TaskUpdatedEvent is published when a task is edited
type TaskUpdatedEvent struct {
	shared.BaseDomainEvent
	auditFields
}

// NewTaskUpdatedEvent creates a new TaskUpdatedEvent
func NewTaskUpdatedEvent(t *Task, actor uuid.UUID, before TaskSnapshot) *TaskUpdatedEvent {
	return &TaskUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTaskUpdated, AggregateTypeTask, t.ID),
		auditFields:     auditFields{Action: "UPDATE", ActorID: actor, Prev: before, Next: t.Snapshot()},
	}
}
