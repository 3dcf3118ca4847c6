package partner

import (
	"strings"

	"github.com/gestio/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusArchived CustomerStatus = "archived"
)

// IsValid checks if the status is a valid CustomerStatus
func (s CustomerStatus) IsValid() bool {
	return s == CustomerStatusActive || s == CustomerStatusArchived
}

// Customer represents a customer in the partner context.
// It is the aggregate root for customer-related operations.
type Customer struct {
	shared.BaseAggregateRoot
	Code        string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string         `gorm:"type:varchar(200);not null"`
	Status      CustomerStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	ContactName string         `gorm:"type:varchar(100)"`
	Phone       string         `gorm:"type:varchar(50);index"`
	Email       string         `gorm:"type:varchar(200);index"`
	Address     string         `gorm:"type:text"`
	TaxID       string         `gorm:"type:varchar(50)"`
	Notes       string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new active customer
func NewCustomer(code, name string) (*Customer, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            CustomerStatusActive,
	}, nil
}

// UpdateInfo updates the customer's descriptive fields
func (c *Customer) UpdateInfo(name, contactName, phone, email, address, taxID, notes string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	c.Name = name
	c.ContactName = contactName
	c.Phone = phone
	c.Email = strings.ToLower(email)
	c.Address = address
	c.TaxID = taxID
	c.Notes = notes
	return nil
}

// Archive marks the customer as archived. Archived customers stay queryable
// but cannot be attached to new documents or payments.
func (c *Customer) Archive() error {
	if c.Status == CustomerStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Customer is already archived")
	}
	c.Status = CustomerStatusArchived
	return nil
}

// Restore re-activates an archived customer
func (c *Customer) Restore() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}
	c.Status = CustomerStatusActive
	return nil
}

// IsActive returns true if the customer can be referenced by new documents
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

func validatePartnerCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Code cannot exceed 50 characters")
	}
	return nil
}

func validatePartnerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
