package trade

import (
	"time"

	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle state of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "DRAFT"
	QuoteStatusSent     QuoteStatus = "SENT"
	QuoteStatusAccepted QuoteStatus = "ACCEPTED"
	QuoteStatusRejected QuoteStatus = "REJECTED"
	QuoteStatusExpired  QuoteStatus = "EXPIRED"
)

// IsValid checks if the status is a valid QuoteStatus
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
		return true
	}
	return false
}

// Quote is a price offer issued to a customer
type Quote struct {
	shared.BaseAggregateRoot
	Number     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CurrencyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	IssueDate  time.Time       `gorm:"type:date;not null"`
	ValidUntil *time.Time      `gorm:"type:date"`
	Total      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status     QuoteStatus     `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Quote) TableName() string {
	return "quotes"
}

// NewQuote creates a new draft quote
func NewQuote(number string, customerID, currencyID uuid.UUID, issueDate time.Time, total decimal.Decimal) (*Quote, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Quote number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if currencyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency ID cannot be empty")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Quote total cannot be negative")
	}
	return &Quote{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerID:        customerID,
		CurrencyID:        currencyID,
		IssueDate:         issueDate,
		Total:             total,
		Status:            QuoteStatusDraft,
	}, nil
}

// Send marks a draft quote as sent to the customer
func (q *Quote) Send() error {
	if q.Status != QuoteStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft quotes can be sent")
	}
	q.Status = QuoteStatusSent
	return nil
}

// Accept marks a sent quote as accepted
func (q *Quote) Accept() error {
	if q.Status != QuoteStatusSent {
		return shared.NewDomainError("INVALID_STATE", "Only sent quotes can be accepted")
	}
	q.Status = QuoteStatusAccepted
	return nil
}

// Reject marks a sent quote as rejected
func (q *Quote) Reject() error {
	if q.Status != QuoteStatusSent {
		return shared.NewDomainError("INVALID_STATE", "Only sent quotes can be rejected")
	}
	q.Status = QuoteStatusRejected
	return nil
}

// Expire marks a draft or sent quote as expired
func (q *Quote) Expire() error {
	if q.Status != QuoteStatusDraft && q.Status != QuoteStatusSent {
		return shared.NewDomainError("INVALID_STATE", "Only draft or sent quotes can expire")
	}
	q.Status = QuoteStatusExpired
	return nil
}
