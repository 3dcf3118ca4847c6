package finance

import (
	"time"

	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionStatus represents the lifecycle state of a cash register session
type SessionStatus string

const (
	SessionStatusOpen   SessionStatus = "OPEN"
	SessionStatusClosed SessionStatus = "CLOSED"
)

// IsValid checks if the status is a valid SessionStatus
func (s SessionStatus) IsValid() bool {
	return s == SessionStatusOpen || s == SessionStatusClosed
}

// CashRegisterSession is a working period of a cash register.
// Only an OPEN session accepts payments; the owning register carries the
// running balance.
type CashRegisterSession struct {
	shared.BaseAggregateRoot
	RegisterID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Register       *CashRegister    `gorm:"foreignKey:RegisterID"`
	OpenedByUserID uuid.UUID        `gorm:"type:uuid;not null"`
	ClosedByUserID *uuid.UUID       `gorm:"type:uuid"`
	OpeningAmount  decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	ClosingAmount  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Status         SessionStatus    `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	OpenedAt       time.Time        `gorm:"not null"`
	ClosedAt       *time.Time
	Notes          string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CashRegisterSession) TableName() string {
	return "cash_register_sessions"
}

// OpenCashRegisterSession opens a new session on a register
func OpenCashRegisterSession(registerID, openedBy uuid.UUID, openingAmount decimal.Decimal) (*CashRegisterSession, error) {
	if registerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REGISTER", "Register ID cannot be empty")
	}
	if openedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Opening user ID cannot be empty")
	}
	if openingAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Opening amount cannot be negative")
	}
	return &CashRegisterSession{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RegisterID:        registerID,
		OpenedByUserID:    openedBy,
		OpeningAmount:     openingAmount,
		Status:            SessionStatusOpen,
		OpenedAt:          time.Now(),
	}, nil
}

// IsOpen returns true if the session still accepts payments
func (s *CashRegisterSession) IsOpen() bool {
	return s.Status == SessionStatusOpen
}

// Close closes the session with the counted closing amount
func (s *CashRegisterSession) Close(closedBy uuid.UUID, closingAmount decimal.Decimal, notes string) error {
	if s.Status != SessionStatusOpen {
		return shared.NewDomainError("SESSION_NOT_OPEN", "Session is already closed")
	}
	if closedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Closing user ID cannot be empty")
	}
	if closingAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Closing amount cannot be negative")
	}
	now := time.Now()
	s.Status = SessionStatusClosed
	s.ClosedByUserID = &closedBy
	s.ClosingAmount = &closingAmount
	s.ClosedAt = &now
	if notes != "" {
		s.Notes = notes
	}
	return nil
}
