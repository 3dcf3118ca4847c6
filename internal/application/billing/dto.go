package billing

import (
	"time"

	"github.com/gestio/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerInvoiceRequest carries the fields for creating a customer invoice
type CreateCustomerInvoiceRequest struct {
	Number     string          `json:"number"`
	CustomerID uuid.UUID       `json:"customer_id"`
	CurrencyID uuid.UUID       `json:"currency_id"`
	IssueDate  time.Time       `json:"issue_date"`
	DueDate    *time.Time      `json:"due_date"`
	Total      decimal.Decimal `json:"total"`
	Notes      string          `json:"notes"`
}

// CreateSupplierInvoiceRequest carries the fields for creating a supplier invoice
type CreateSupplierInvoiceRequest struct {
	Number     string          `json:"number"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	CurrencyID uuid.UUID       `json:"currency_id"`
	IssueDate  time.Time       `json:"issue_date"`
	DueDate    *time.Time      `json:"due_date"`
	Total      decimal.Decimal `json:"total"`
	Notes      string          `json:"notes"`
}

// CustomerInvoiceResponse is the application-level view of a customer invoice
type CustomerInvoiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	Number          string          `json:"number"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	CurrencyID      uuid.UUID       `json:"currency_id"`
	IssueDate       time.Time       `json:"issue_date"`
	DueDate         *time.Time      `json:"due_date"`
	Total           decimal.Decimal `json:"total"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	AmountRemaining decimal.Decimal `json:"amount_remaining"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToCustomerInvoiceResponse converts a customer invoice to its response form
func ToCustomerInvoiceResponse(i *billing.CustomerInvoice) CustomerInvoiceResponse {
	return CustomerInvoiceResponse{
		ID:              i.ID,
		Number:          i.Number,
		CustomerID:      i.CustomerID,
		CurrencyID:      i.CurrencyID,
		IssueDate:       i.IssueDate,
		DueDate:         i.DueDate,
		Total:           i.Total,
		AmountPaid:      i.AmountPaid,
		AmountRemaining: i.AmountRemaining(),
		Status:          string(i.Status),
		Notes:           i.Notes,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

// SupplierInvoiceResponse is the application-level view of a supplier invoice
type SupplierInvoiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	Number          string          `json:"number"`
	SupplierID      uuid.UUID       `json:"supplier_id"`
	CurrencyID      uuid.UUID       `json:"currency_id"`
	IssueDate       time.Time       `json:"issue_date"`
	DueDate         *time.Time      `json:"due_date"`
	Total           decimal.Decimal `json:"total"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	AmountRemaining decimal.Decimal `json:"amount_remaining"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToSupplierInvoiceResponse converts a supplier invoice to its response form
func ToSupplierInvoiceResponse(i *billing.SupplierInvoice) SupplierInvoiceResponse {
	return SupplierInvoiceResponse{
		ID:              i.ID,
		Number:          i.Number,
		SupplierID:      i.SupplierID,
		CurrencyID:      i.CurrencyID,
		IssueDate:       i.IssueDate,
		DueDate:         i.DueDate,
		Total:           i.Total,
		AmountPaid:      i.AmountPaid,
		AmountRemaining: i.AmountRemaining(),
		Status:          string(i.Status),
		Notes:           i.Notes,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}
