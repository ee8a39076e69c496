package pricing

import (
	"strings"

	"github.com/storelaunch/backend/internal/domain/shared"
)

// Vendor is a supplier of ingredients or equipment
type Vendor struct {
	shared.BaseEntity
	Name     string
	Category string
	Country  string
	City     string
	Address  string
	Phone    string
	Email    string
	Website  string
	Notes    string
	IsActive bool
}

// VendorInput carries the editable vendor fields
type VendorInput struct {
	Name     string
	Category string
	Country  string
	City     string
	Address  string
	Phone    string
	Email    string
	Website  string
	Notes    string
	IsActive *bool
}

// NewVendor creates an active vendor
func NewVendor(in VendorInput) (*Vendor, error) {
	v := &Vendor{BaseEntity: shared.NewBaseEntity(), IsActive: true}
	if err := v.Apply(in); err != nil {
		return nil, err
	}
	return v, nil
}

// Apply overwrites the vendor fields
func (v *Vendor) Apply(in VendorInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.InvalidInput("Vendor name is required")
	}
	v.Name = name
	v.Category = strings.TrimSpace(in.Category)
	v.Country = strings.ToUpper(strings.TrimSpace(in.Country))
	v.City = strings.TrimSpace(in.City)
	v.Address = strings.TrimSpace(in.Address)
	v.Phone = strings.TrimSpace(in.Phone)
	v.Email = strings.ToLower(strings.TrimSpace(in.Email))
	v.Website = strings.TrimSpace(in.Website)
	v.Notes = in.Notes
	if in.IsActive != nil {
		v.IsActive = *in.IsActive
	}
	v.Touch()
	return nil
}
