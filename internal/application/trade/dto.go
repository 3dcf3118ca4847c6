package trade

import (
	"time"

	"github.com/gestio/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateQuoteRequest carries the fields for creating a quote
type CreateQuoteRequest struct {
	Number     string          `json:"number"`
	CustomerID uuid.UUID       `json:"customer_id"`
	CurrencyID uuid.UUID       `json:"currency_id"`
	IssueDate  time.Time       `json:"issue_date"`
	ValidUntil *time.Time      `json:"valid_until"`
	Total      decimal.Decimal `json:"total"`
	Notes      string          `json:"notes"`
}

// QuoteResponse is the application-level view of a quote
type QuoteResponse struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	CustomerID uuid.UUID       `json:"customer_id"`
	CurrencyID uuid.UUID       `json:"currency_id"`
	IssueDate  time.Time       `json:"issue_date"`
	ValidUntil *time.Time      `json:"valid_until"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToQuoteResponse converts a quote to its response form
func ToQuoteResponse(q *trade.Quote) QuoteResponse {
	return QuoteResponse{
		ID:         q.ID,
		Number:     q.Number,
		CustomerID: q.CustomerID,
		CurrencyID: q.CurrencyID,
		IssueDate:  q.IssueDate,
		ValidUntil: q.ValidUntil,
		Total:      q.Total,
		Status:     string(q.Status),
		Notes:      q.Notes,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

// CreateSalesOrderRequest carries the fields for creating a sales order
type CreateSalesOrderRequest struct {
	Number     string          `json:"number"`
	CustomerID uuid.UUID       `json:"customer_id"`
	CurrencyID uuid.UUID       `json:"currency_id"`
	OrderDate  time.Time       `json:"order_date"`
	Total      decimal.Decimal `json:"total"`
	Notes      string          `json:"notes"`
}

// SalesOrderResponse is the application-level view of a sales order
type SalesOrderResponse struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	CustomerID uuid.UUID       `json:"customer_id"`
	CurrencyID uuid.UUID       `json:"currency_id"`
	OrderDate  time.Time       `json:"order_date"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToSalesOrderResponse converts a sales order to its response form
func ToSalesOrderResponse(o *trade.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		ID:         o.ID,
		Number:     o.Number,
		CustomerID: o.CustomerID,
		CurrencyID: o.CurrencyID,
		OrderDate:  o.OrderDate,
		Total:      o.Total,
		Status:     string(o.Status),
		Notes:      o.Notes,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// CreatePurchaseOrderRequest carries the fields for creating a purchase order
type CreatePurchaseOrderRequest struct {
	Number     string          `json:"number"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	CurrencyID uuid.UUID       `json:"currency_id"`
	OrderDate  time.Time       `json:"order_date"`
	Total      decimal.Decimal `json:"total"`
	Notes      string          `json:"notes"`
}

// PurchaseOrderResponse is the application-level view of a purchase order
type PurchaseOrderResponse struct {
	ID         uuid.UUID       `json:"id"`
	Number     string          `json:"number"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	CurrencyID uuid.UUID       `json:"currency_id"`
	OrderDate  time.Time       `json:"order_date"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToPurchaseOrderResponse converts a purchase order to its response form
func ToPurchaseOrderResponse(o *trade.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:         o.ID,
		Number:     o.Number,
		SupplierID: o.SupplierID,
		CurrencyID: o.CurrencyID,
		OrderDate:  o.OrderDate,
		Total:      o.Total,
		Status:     string(o.Status),
		Notes:      o.Notes,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
