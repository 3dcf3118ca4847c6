package trade

import (
	"time"

	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of a sales or purchase order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// SalesOrder is an order placed by a customer. Payments may link to it for
// traceability; linking has no balance effect on the order itself.
type SalesOrder struct {
	shared.BaseAggregateRoot
	Number     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CurrencyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderDate  time.Time       `gorm:"type:date;not null"`
	Total      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new draft sales order
func NewSalesOrder(number string, customerID, currencyID uuid.UUID, orderDate time.Time, total decimal.Decimal) (*SalesOrder, error) {
	if err := validateOrderInputs(number, customerID, currencyID, total); err != nil {
		return nil, err
	}
	return &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerID:        customerID,
		CurrencyID:        currencyID,
		OrderDate:         orderDate,
		Total:             total,
		Status:            OrderStatusDraft,
	}, nil
}

// PurchaseOrder is an order placed with a supplier
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	Number     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CurrencyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderDate  time.Time       `gorm:"type:date;not null"`
	Total      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new draft purchase order
func NewPurchaseOrder(number string, supplierID, currencyID uuid.UUID, orderDate time.Time, total decimal.Decimal) (*PurchaseOrder, error) {
	if err := validateOrderInputs(number, supplierID, currencyID, total); err != nil {
		return nil, err
	}
	return &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		SupplierID:        supplierID,
		CurrencyID:        currencyID,
		OrderDate:         orderDate,
		Total:             total,
		Status:            OrderStatusDraft,
	}, nil
}

// Confirm moves a draft sales order to confirmed
func (o *SalesOrder) Confirm() error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be confirmed")
	}
	o.Status = OrderStatusConfirmed
	return nil
}

// Complete moves a confirmed sales order to completed
func (o *SalesOrder) Complete() error {
	if o.Status != OrderStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Only confirmed orders can be completed")
	}
	o.Status = OrderStatusCompleted
	return nil
}

// Cancel cancels a sales order that has not completed
func (o *SalesOrder) Cancel() error {
	if o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Order can no longer be cancelled")
	}
	o.Status = OrderStatusCancelled
	return nil
}

// Confirm moves a draft purchase order to confirmed
func (o *PurchaseOrder) Confirm() error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be confirmed")
	}
	o.Status = OrderStatusConfirmed
	return nil
}

// Complete moves a confirmed purchase order to completed
func (o *PurchaseOrder) Complete() error {
	if o.Status != OrderStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Only confirmed orders can be completed")
	}
	o.Status = OrderStatusCompleted
	return nil
}

// Cancel cancels a purchase order that has not completed
func (o *PurchaseOrder) Cancel() error {
	if o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Order can no longer be cancelled")
	}
	o.Status = OrderStatusCancelled
	return nil
}

func validateOrderInputs(number string, partyID, currencyID uuid.UUID, total decimal.Decimal) error {
	if number == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Order number cannot be empty")
	}
	if partyID == uuid.Nil {
		return shared.NewDomainError("INVALID_PARTY", "Party ID cannot be empty")
	}
	if currencyID == uuid.Nil {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency ID cannot be empty")
	}
	if total.IsNegative() {
		return shared.NewDomainError("INVALID_TOTAL", "Order total cannot be negative")
	}
	return nil
}
