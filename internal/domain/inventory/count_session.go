package inventory

import (
	"time"

	"github.com/gestio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CountStatus represents the lifecycle state of an inventory count session
type CountStatus string

const (
	CountStatusDraft      CountStatus = "DRAFT"
	CountStatusInProgress CountStatus = "IN_PROGRESS"
	CountStatusCompleted  CountStatus = "COMPLETED"
	CountStatusCancelled  CountStatus = "CANCELLED"
)

// IsValid checks if the status is a valid CountStatus
func (s CountStatus) IsValid() bool {
	switch s {
	case CountStatusDraft, CountStatusInProgress, CountStatusCompleted, CountStatusCancelled:
		return true
	}
	return false
}

// CountLine is one product line inside a count session
type CountLine struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key"`
	CountSessionID uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProductLabel   string           `gorm:"type:varchar(200);not null"`
	ExpectedQty    decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	CountedQty     *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Remark         string           `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (CountLine) TableName() string {
	return "inventory_count_lines"
}

// Difference returns countedQty - expectedQty, zero while uncounted
func (l *CountLine) Difference() decimal.Decimal {
	if l.CountedQty == nil {
		return decimal.Zero
	}
	return l.CountedQty.Sub(l.ExpectedQty)
}

// CountSession is an inventory counting session: a snapshot of expected
// stock levels that staff count and reconcile against.
type CountSession struct {
	shared.BaseAggregateRoot
	Number          string      `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status          CountStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	CountDate       time.Time   `gorm:"type:date;not null"`
	CreatedByUserID uuid.UUID   `gorm:"type:uuid;not null"`
	Lines           []CountLine `gorm:"foreignKey:CountSessionID;references:ID"`
	Notes           string      `gorm:"type:text"`
	CompletedAt     *time.Time
	CancelledAt     *time.Time
}

// TableName returns the table name for GORM
func (CountSession) TableName() string {
	return "inventory_count_sessions"
}

// NewCountSession creates a new draft count session
func NewCountSession(number string, countDate time.Time, createdBy uuid.UUID) (*CountSession, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Count number cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Creating user ID cannot be empty")
	}
	return &CountSession{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Status:            CountStatusDraft,
		CountDate:         countDate,
		CreatedByUserID:   createdBy,
		Lines:             make([]CountLine, 0),
	}, nil
}

// AddLine adds a product line while the session is still a draft
func (cs *CountSession) AddLine(productLabel string, expectedQty decimal.Decimal) error {
	if cs.Status != CountStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to draft counts")
	}
	if productLabel == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product label cannot be empty")
	}
	cs.Lines = append(cs.Lines, CountLine{
		ID:             uuid.New(),
		CountSessionID: cs.ID,
		ProductLabel:   productLabel,
		ExpectedQty:    expectedQty,
	})
	return nil
}

// Start moves a draft session with at least one line into counting
func (cs *CountSession) Start() error {
	if cs.Status != CountStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft counts can be started")
	}
	if len(cs.Lines) == 0 {
		return shared.NewDomainError("EMPTY_COUNT", "Count session has no lines")
	}
	cs.Status = CountStatusInProgress
	return nil
}

// RecordCount records the counted quantity of a line
func (cs *CountSession) RecordCount(lineID uuid.UUID, countedQty decimal.Decimal, remark string) error {
	if cs.Status != CountStatusInProgress {
		return shared.NewDomainError("INVALID_STATE", "Counts can only be recorded while in progress")
	}
	if countedQty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Counted quantity cannot be negative")
	}
	for i := range cs.Lines {
		if cs.Lines[i].ID == lineID {
			qty := countedQty
			cs.Lines[i].CountedQty = &qty
			cs.Lines[i].Remark = remark
			return nil
		}
	}
	return shared.ErrNotFound
}

// Complete finishes the session once every line has been counted
func (cs *CountSession) Complete() error {
	if cs.Status != CountStatusInProgress {
		return shared.NewDomainError("INVALID_STATE", "Only in-progress counts can be completed")
	}
	for i := range cs.Lines {
		if cs.Lines[i].CountedQty == nil {
			return shared.NewDomainError("INCOMPLETE_COUNT", "All lines must be counted before completion")
		}
	}
	now := time.Now()
	cs.Status = CountStatusCompleted
	cs.CompletedAt = &now
	return nil
}

// Cancel abandons a draft or in-progress session
func (cs *CountSession) Cancel() error {
	if cs.Status == CountStatusCompleted || cs.Status == CountStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Completed or cancelled counts cannot be cancelled")
	}
	now := time.Now()
	cs.Status = CountStatusCancelled
	cs.CancelledAt = &now
	return nil
}
