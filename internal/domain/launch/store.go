package launch

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storelaunch/backend/internal/domain/shared"
)

// StoreStatus is the lifecycle state of a store launch
type StoreStatus string

const (
	StoreStatusPlanning   StoreStatus = "PLANNING"
	StoreStatusInProgress StoreStatus = "IN_PROGRESS"
	StoreStatusOpened     StoreStatus = "OPENED"
	StoreStatusCancelled  StoreStatus = "CANCELLED"
)

// DefaultTimezone applies when neither the request nor the country has one
const DefaultTimezone = "UTC"

// IsValid reports whether s is a known status
func (s StoreStatus) IsValid() bool {
	switch s {
	case StoreStatusPlanning, StoreStatusInProgress, StoreStatusOpened, StoreStatusCancelled:
		return true
	}
	return false
}

// Store is a restaurant being launched
type Store struct {
	shared.BaseAggregateRoot
	TempName     string
	OfficialName string
	Country      string
	City         string
	Address      string
	Timezone     string
	StorePhone   string
	StoreEmail   string
	OwnerName    string
	OwnerPhone   string
	OwnerEmail   string
	OwnerAddress string
	Status       StoreStatus
	CreatedBy    *uuid.UUID

	// PlannedOpenDate is the latest planned date, loaded by the repository
	PlannedOpenDate *PlannedOpenDate
}

// StoreInput carries the editable store fields
type StoreInput struct {
	TempName     string
	OfficialName string
	Country      string
	City         string
	Address      string
	Timezone     string
	StorePhone   string
	StoreEmail   string
	OwnerName    string
	OwnerPhone   string
	OwnerEmail   string
	OwnerAddress string
	Status       StoreStatus
}

// StoreSnapshot is the audited JSON form of a store
type StoreSnapshot struct {
	ID           uuid.UUID   `json:"id"`
	TempName     string      `json:"tempName,omitempty"`
	OfficialName string      `json:"officialName,omitempty"`
	Country      string      `json:"country"`
	City         string      `json:"city,omitempty"`
	Address      string      `json:"address,omitempty"`
	Timezone     string      `json:"timezone"`
	StorePhone   string      `json:"storePhone,omitempty"`
	StoreEmail   string      `json:"storeEmail,omitempty"`
	OwnerName    string      `json:"ownerName,omitempty"`
	OwnerPhone   string      `json:"ownerPhone,omitempty"`
	OwnerEmail   string      `json:"ownerEmail,omitempty"`
	OwnerAddress string      `json:"ownerAddress,omitempty"`
	Status       StoreStatus `json:"status"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// NewStore creates a store. The country is required; the timezone falls
// back to countryTimezone and then to UTC.
func NewStore(in StoreInput, countryTimezone string, createdBy uuid.UUID) (*Store, error) {
	if strings.TrimSpace(in.Country) == "" {
		return nil, shared.InvalidInput("Country is required")
	}
	if in.Status == "" {
		in.Status = StoreStatusPlanning
	}
	if strings.TrimSpace(in.Timezone) == "" {
		in.Timezone = countryTimezone
	}
	if strings.TrimSpace(in.Timezone) == "" {
		in.Timezone = DefaultTimezone
	}

	s := &Store{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if createdBy != uuid.Nil {
		s.CreatedBy = &createdBy
	}
	if err := s.apply(in); err != nil {
		return nil, err
	}
	s.AddDomainEvent(NewStoreCreatedEvent(s, createdBy))
	return s, nil
}

// Update overwrites the editable fields and records the change
func (s *Store) Update(in StoreInput, actor uuid.UUID) error {
	before := s.Snapshot()
	if in.Status == "" {
		in.Status = s.Status
	}
	if strings.TrimSpace(in.Country) == "" {
		in.Country = s.Country
	}
	if strings.TrimSpace(in.Timezone) == "" {
		in.Timezone = s.Timezone
	}
	if err := s.apply(in); err != nil {
		return err
	}
	s.IncrementVersion()
	s.AddDomainEvent(NewStoreUpdatedEvent(s, actor, before))
	return nil
}

// MarkDeleted records the deletion of the store
func (s *Store) MarkDeleted(actor uuid.UUID) {
	s.AddDomainEvent(NewStoreDeletedEvent(s, actor))
}

func (s *Store) apply(in StoreInput) error {
	if !in.Status.IsValid() {
		return shared.InvalidInput("Invalid store status: " + string(in.Status))
	}
	s.TempName = strings.TrimSpace(in.TempName)
	s.OfficialName = strings.TrimSpace(in.OfficialName)
	s.Country = strings.ToUpper(strings.TrimSpace(in.Country))
	s.City = strings.TrimSpace(in.City)
	s.Address = strings.TrimSpace(in.Address)
	s.Timezone = strings.TrimSpace(in.Timezone)
	s.StorePhone = strings.TrimSpace(in.StorePhone)
	s.StoreEmail = strings.TrimSpace(in.StoreEmail)
	s.OwnerName = strings.TrimSpace(in.OwnerName)
	s.OwnerPhone = strings.TrimSpace(in.OwnerPhone)
	s.OwnerEmail = strings.TrimSpace(in.OwnerEmail)
	s.OwnerAddress = strings.TrimSpace(in.OwnerAddress)
	s.Status = in.Status
	s.Touch()
	return nil
}

// Snapshot returns the audited view of the store
func (s *Store) Snapshot() StoreSnapshot {
	return StoreSnapshot{
		ID:           s.ID,
		TempName:     s.TempName,
		OfficialName: s.OfficialName,
		Country:      s.Country,
		City:         s.City,
		Address:      s.Address,
		Timezone:     s.Timezone,
		StorePhone:   s.StorePhone,
		StoreEmail:   s.StoreEmail,
		OwnerName:    s.OwnerName,
		OwnerPhone:   s.OwnerPhone,
		OwnerEmail:   s.OwnerEmail,
		OwnerAddress: s.OwnerAddress,
		Status:       s.Status,
		UpdatedAt:    s.UpdatedAt,
	}
}

// PlannedOpenDate is one entry of a store's append-only open date history
type PlannedOpenDate struct {
	ID        uuid.UUID
	StoreID   uuid.UUID
	Date      time.Time
	Reason    string
	ChangedBy *uuid.UUID
	CreatedAt time.Time
}

// InitialDateReason is used when a store is created with a date and no reason
const InitialDateReason = "Initial planned date"

// NewPlannedOpenDate creates a history entry
func NewPlannedOpenDate(storeID uuid.UUID, date time.Time, reason string, changedBy uuid.UUID) *PlannedOpenDate {
	p := &PlannedOpenDate{
		ID:        uuid.New(),
		StoreID:   storeID,
		Date:      DateOnly(date),
		Reason:    strings.TrimSpace(reason),
		CreatedAt: time.Now(),
	}
	if changedBy != uuid.Nil {
		p.ChangedBy = &changedBy
	}
	return p
}
