package handler

import (
	"time"

	"github.com/gestio/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyResponse is the HTTP view of a currency
type CurrencyResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol,omitempty"`
	DecimalPlaces int       `json:"decimal_places"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToCurrencyResponse converts a domain currency to its HTTP view
func ToCurrencyResponse(c *finance.Currency) CurrencyResponse {
	return CurrencyResponse{
		ID:            c.ID,
		Code:          c.Code,
		Name:          c.Name,
		Symbol:        c.Symbol,
		DecimalPlaces: c.DecimalPlaces,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// PaymentMethodResponse is the HTTP view of a payment method
type PaymentMethodResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPaymentMethodResponse converts a domain payment method to its HTTP view
func ToPaymentMethodResponse(m *finance.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Kind:      string(m.Kind),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BankAccountResponse is the HTTP view of a bank account
type BankAccountResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	AccountNumber string          `json:"account_number"`
	CurrencyID    uuid.UUID       `json:"currency_id"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"is_active"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToBankAccountResponse converts a domain bank account to its HTTP view
func ToBankAccountResponse(a *finance.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:            a.ID,
		Name:          a.Name,
		AccountNumber: a.AccountNumber,
		CurrencyID:    a.CurrencyID,
		Balance:       a.Balance,
		IsActive:      a.IsActive,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// CashRegisterResponse is the HTTP view of a cash register
type CashRegisterResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	CurrencyID uuid.UUID       `json:"currency_id"`
	Balance    decimal.Decimal `json:"balance"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToCashRegisterResponse converts a domain cash register to its HTTP view
func ToCashRegisterResponse(r *finance.CashRegister) CashRegisterResponse {
	return CashRegisterResponse{
		ID:         r.ID,
		Name:       r.Name,
		CurrencyID: r.CurrencyID,
		Balance:    r.Balance,
		IsActive:   r.IsActive,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// CashSessionResponse is the HTTP view of a cash register session
type CashSessionResponse struct {
	ID             uuid.UUID        `json:"id"`
	RegisterID     uuid.UUID        `json:"register_id"`
	OpenedByUserID uuid.UUID        `json:"opened_by_user_id"`
	ClosedByUserID *uuid.UUID       `json:"closed_by_user_id,omitempty"`
	OpeningAmount  decimal.Decimal  `json:"opening_amount"`
	ClosingAmount  *decimal.Decimal `json:"closing_amount,omitempty"`
	Status         string           `json:"status"`
	OpenedAt       time.Time        `json:"opened_at"`
	ClosedAt       *time.Time       `json:"closed_at,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// ToCashSessionResponse converts a domain session to its HTTP view
func ToCashSessionResponse(s *finance.CashRegisterSession) CashSessionResponse {
	return CashSessionResponse{
		ID:             s.ID,
		RegisterID:     s.RegisterID,
		OpenedByUserID: s.OpenedByUserID,
		ClosedByUserID: s.ClosedByUserID,
		OpeningAmount:  s.OpeningAmount,
		ClosingAmount:  s.ClosingAmount,
		Status:         string(s.Status),
		OpenedAt:       s.OpenedAt,
		ClosedAt:       s.ClosedAt,
		Notes:          s.Notes,
	}
}

// CashTransactionResponse is the HTTP view of a register ledger entry
type CashTransactionResponse struct {
	ID           uuid.UUID       `json:"id"`
	SessionID    uuid.UUID       `json:"session_id"`
	RegisterID   uuid.UUID       `json:"register_id"`
	PaymentID    *uuid.UUID      `json:"payment_id,omitempty"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToCashTransactionResponse converts a domain ledger entry to its HTTP view
func ToCashTransactionResponse(t *finance.CashRegisterTransaction) CashTransactionResponse {
	return CashTransactionResponse{
		ID:           t.ID,
		SessionID:    t.SessionID,
		RegisterID:   t.RegisterID,
		PaymentID:    t.PaymentID,
		Kind:         string(t.Kind),
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		Description:  t.Description,
		CreatedAt:    t.CreatedAt,
	}
}
