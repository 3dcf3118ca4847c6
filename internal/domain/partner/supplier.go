package partner

import (
	"strings"

	"github.com/gestio/backend/internal/domain/shared"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusArchived SupplierStatus = "archived"
)

// IsValid checks if the status is a valid SupplierStatus
func (s SupplierStatus) IsValid() bool {
	return s == SupplierStatusActive || s == SupplierStatusArchived
}

// Supplier represents a supplier in the partner context.
// It is the aggregate root for supplier-related operations.
type Supplier struct {
	shared.BaseAggregateRoot
	Code        string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string         `gorm:"type:varchar(200);not null"`
	Status      SupplierStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	ContactName string         `gorm:"type:varchar(100)"`
	Phone       string         `gorm:"type:varchar(50);index"`
	Email       string         `gorm:"type:varchar(200);index"`
	Address     string         `gorm:"type:text"`
	TaxID       string         `gorm:"type:varchar(50)"`
	BankName    string         `gorm:"type:varchar(200)"`
	BankAccount string         `gorm:"type:varchar(100)"`
	Notes       string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new active supplier
func NewSupplier(code, name string) (*Supplier, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            SupplierStatusActive,
	}, nil
}

// UpdateInfo updates the supplier's descriptive fields
func (s *Supplier) UpdateInfo(name, contactName, phone, email, address, taxID, bankName, bankAccount, notes string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	s.Name = name
	s.ContactName = contactName
	s.Phone = phone
	s.Email = strings.ToLower(email)
	s.Address = address
	s.TaxID = taxID
	s.BankName = bankName
	s.BankAccount = bankAccount
	s.Notes = notes
	return nil
}

// Archive marks the supplier as archived
func (s *Supplier) Archive() error {
	if s.Status == SupplierStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Supplier is already archived")
	}
	s.Status = SupplierStatusArchived
	return nil
}

// Restore re-activates an archived supplier
func (s *Supplier) Restore() error {
	if s.Status == SupplierStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Supplier is already active")
	}
	s.Status = SupplierStatusActive
	return nil
}

// IsActive returns true if the supplier can be referenced by new documents
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}
