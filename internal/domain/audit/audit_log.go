package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Log is an immutable record of a change to an entity
type Log struct {
	ID         uuid.UUID
	EntityType string
	EntityID   uuid.UUID
	Action     string
	ChangedBy  *uuid.UUID
	BeforeJSON string
	AfterJSON  string
	CreatedAt  time.Time
}

// NewLog builds an audit record. before and after are marshalled to JSON;
// nil snapshots produce an empty string.
func NewLog(entityType string, entityID uuid.UUID, action string, changedBy uuid.UUID, before, after any) (*Log, error) {
	b, err := snapshot(before)
	if err != nil {
		return nil, err
	}
	a, err := snapshot(after)
	if err != nil {
		return nil, err
	}
	l := &Log{
		ID:         uuid.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		BeforeJSON: b,
		AfterJSON:  a,
		CreatedAt:  time.Now(),
	}
	if changedBy != uuid.Nil {
		l.ChangedBy = &changedBy
	}
	return l, nil
}

func snapshot(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Repository persists audit logs
type Repository interface {
	Create(ctx context.Context, log *Log) error
	// FindByEntity returns logs for one entity, newest first
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]*Log, error)
}
