package handler

import (
	"time"

	financeapp "github.com/gestio/backend/internal/application/finance"
	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles payment recording and reversal endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *financeapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *financeapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RecordPaymentRequest represents a request to record a payment
// @Description Request body for recording a payment
type RecordPaymentRequest struct {
	Date            string `json:"date" binding:"required,datetime=2006-01-02" example:"2025-06-08"`
	Amount          string `json:"amount" binding:"required" example:"150.00"`
	CurrencyID      string `json:"currency_id" binding:"required,uuid"`
	PaymentMethodID string `json:"payment_method_id" binding:"required,uuid"`
	Direction       string `json:"direction" binding:"required,oneof=INBOUND OUTBOUND" example:"INBOUND"`

	CustomerID *string `json:"customer_id" binding:"omitempty,uuid"`
	SupplierID *string `json:"supplier_id" binding:"omitempty,uuid"`

	CustomerInvoiceID *string `json:"customer_invoice_id" binding:"omitempty,uuid"`
	SupplierInvoiceID *string `json:"supplier_invoice_id" binding:"omitempty,uuid"`
	SalesOrderID      *string `json:"sales_order_id" binding:"omitempty,uuid"`
	PurchaseOrderID   *string `json:"purchase_order_id" binding:"omitempty,uuid"`

	BankAccountID         *string `json:"bank_account_id" binding:"omitempty,uuid"`
	CashRegisterSessionID *string `json:"cash_register_session_id" binding:"omitempty,uuid"`

	ReferenceNumber string `json:"reference_number" binding:"max=100"`
	Notes           string `json:"notes"`
}

// CurrencySummaryResponse is the resolved one-line view of a currency
type CurrencySummaryResponse struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

// PaymentMethodSummaryResponse is the resolved one-line view of a payment method
type PaymentMethodSummaryResponse struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
}

// CounterpartySummaryResponse is the resolved view of the customer or supplier
type CounterpartySummaryResponse struct {
	Kind string    `json:"kind"`
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// DocumentSummaryResponse is the resolved view of the settled invoice or order
type DocumentSummaryResponse struct {
	Kind   string    `json:"kind"`
	ID     uuid.UUID `json:"id"`
	Number string    `json:"number"`
}

// AccountSummaryResponse is the resolved view of the settling account
type AccountSummaryResponse struct {
	Kind string    `json:"kind"`
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// PaymentResponse is the HTTP view of a payment. Single-payment reads and the
// record/reverse outcomes carry the resolved relation summaries next to the
// raw foreign keys; list items stay flat.
// @Description Payment record
type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	Date            string          `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyID      uuid.UUID       `json:"currency_id"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id"`
	Direction       string          `json:"direction"`

	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	SupplierID *uuid.UUID `json:"supplier_id,omitempty"`

	CustomerInvoiceID *uuid.UUID `json:"customer_invoice_id,omitempty"`
	SupplierInvoiceID *uuid.UUID `json:"supplier_invoice_id,omitempty"`
	SalesOrderID      *uuid.UUID `json:"sales_order_id,omitempty"`
	PurchaseOrderID   *uuid.UUID `json:"purchase_order_id,omitempty"`

	BankAccountID         *uuid.UUID `json:"bank_account_id,omitempty"`
	CashRegisterSessionID *uuid.UUID `json:"cash_register_session_id,omitempty"`

	Currency      *CurrencySummaryResponse      `json:"currency,omitempty"`
	PaymentMethod *PaymentMethodSummaryResponse `json:"payment_method,omitempty"`
	Counterparty  *CounterpartySummaryResponse  `json:"counterparty,omitempty"`
	Document      *DocumentSummaryResponse      `json:"document,omitempty"`
	Account       *AccountSummaryResponse       `json:"account,omitempty"`

	ReferenceNumber  string     `json:"reference_number,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	RecordedByUserID uuid.UUID  `json:"recorded_by_user_id"`
	ReversedAt       *time.Time `json:"reversed_at,omitempty"`
	ReversedByUserID *uuid.UUID `json:"reversed_by_user_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// RecordPaymentResponse wraps the outcome of recording a payment
// @Description Payment recording outcome
type RecordPaymentResponse struct {
	Payment        PaymentResponse `json:"payment"`
	AccountBalance decimal.Decimal `json:"account_balance"`
	Duplicate      bool            `json:"duplicate"`
}

// ReversePaymentResponse wraps the outcome of reversing a payment
// @Description Payment reversal outcome
type ReversePaymentResponse struct {
	Payment        PaymentResponse `json:"payment"`
	AccountBalance decimal.Decimal `json:"account_balance"`
}

// ToPaymentResponse converts a domain payment to its HTTP view
func ToPaymentResponse(p *finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                    p.ID,
		Date:                  p.Date.Format("2006-01-02"),
		Amount:                p.Amount,
		CurrencyID:            p.CurrencyID,
		PaymentMethodID:       p.PaymentMethodID,
		Direction:             string(p.Direction),
		CustomerID:            p.CustomerID,
		SupplierID:            p.SupplierID,
		CustomerInvoiceID:     p.CustomerInvoiceID,
		SupplierInvoiceID:     p.SupplierInvoiceID,
		SalesOrderID:          p.SalesOrderID,
		PurchaseOrderID:       p.PurchaseOrderID,
		BankAccountID:         p.BankAccountID,
		CashRegisterSessionID: p.CashRegisterSessionID,
		ReferenceNumber:       p.ReferenceNumber,
		Notes:                 p.Notes,
		RecordedByUserID:      p.RecordedByUserID,
		ReversedAt:            p.ReversedAt,
		ReversedByUserID:      p.ReversedByUserID,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

// ToPaymentDetailsResponse converts a payment with its resolved summaries
func ToPaymentDetailsResponse(d *financeapp.PaymentDetails) PaymentResponse {
	resp := ToPaymentResponse(d.Payment)
	resp.Currency = &CurrencySummaryResponse{
		ID:   d.Currency.ID,
		Code: d.Currency.Code,
		Name: d.Currency.Name,
	}
	resp.PaymentMethod = &PaymentMethodSummaryResponse{
		ID:   d.PaymentMethod.ID,
		Code: d.PaymentMethod.Code,
		Name: d.PaymentMethod.Name,
	}
	if d.Counterparty != nil {
		resp.Counterparty = &CounterpartySummaryResponse{
			Kind: string(d.Counterparty.Kind),
			ID:   d.Counterparty.ID,
			Name: d.Counterparty.Name,
		}
	}
	if d.Document != nil {
		resp.Document = &DocumentSummaryResponse{
			Kind:   string(d.Document.Kind),
			ID:     d.Document.ID,
			Number: d.Document.Number,
		}
	}
	resp.Account = &AccountSummaryResponse{
		Kind: string(d.Account.Kind),
		ID:   d.Account.ID,
		Name: d.Account.Name,
	}
	return resp
}

// Record godoc
// @ID           recordPayment
// @Summary      Record a payment
// @Description  Validate and record a payment, applying it to the linked document and settlement account atomically
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for safe retries"
// @Param        request body RecordPaymentRequest true "Payment recording request"
// @Success      201 {object} APIResponse[RecordPaymentResponse]
// @Success      200 {object} APIResponse[RecordPaymentResponse] "Replayed idempotent request"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq, err := h.toAppRequest(req, userID)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	appReq.IdempotencyKey = c.GetHeader("Idempotency-Key")

	result, err := h.paymentService.Record(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	resp := RecordPaymentResponse{
		Payment:        ToPaymentDetailsResponse(result.Payment),
		AccountBalance: result.AccountBalance,
		Duplicate:      result.Duplicate,
	}
	if result.Duplicate {
		h.Success(c, resp)
		return
	}
	h.Created(c, resp)
}

// toAppRequest converts the HTTP request into the application request,
// resolving the flat union fields into typed references.
func (h *PaymentHandler) toAppRequest(req RecordPaymentRequest, userID uuid.UUID) (financeapp.RecordPaymentRequest, error) {
	var appReq financeapp.RecordPaymentRequest

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return appReq, err
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return appReq, err
	}
	currencyID, err := uuid.Parse(req.CurrencyID)
	if err != nil {
		return appReq, err
	}
	methodID, err := uuid.Parse(req.PaymentMethodID)
	if err != nil {
		return appReq, err
	}

	counterparty, err := resolveCounterparty(req.CustomerID, req.SupplierID)
	if err != nil {
		return appReq, err
	}
	document, err := resolveDocument(req.CustomerInvoiceID, req.SupplierInvoiceID, req.SalesOrderID, req.PurchaseOrderID)
	if err != nil {
		return appReq, err
	}
	account, err := resolveAccount(req.BankAccountID, req.CashRegisterSessionID)
	if err != nil {
		return appReq, err
	}

	return financeapp.RecordPaymentRequest{
		Date:            date,
		Amount:          amount,
		CurrencyID:      currencyID,
		PaymentMethodID: methodID,
		Direction:       finance.PaymentDirection(req.Direction),
		Counterparty:    counterparty,
		Document:        document,
		Account:         account,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		RecordedBy:      userID,
	}, nil
}

// Reverse godoc
// @ID           reversePayment
// @Summary      Reverse a payment
// @Description  Reverse a recorded payment, restoring the linked document and settlement account. A payment can be reversed at most once.
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[ReversePaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id}/reverse [post]
func (h *PaymentHandler) Reverse(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	result, err := h.paymentService.Reverse(c.Request.Context(), paymentID, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ReversePaymentResponse{
		Payment:        ToPaymentDetailsResponse(result.Payment),
		AccountBalance: result.AccountBalance,
	})
}

// GetByID godoc
// @ID           getPaymentById
// @Summary      Get payment by ID
// @Description  Retrieve a payment by its ID with its resolved relation summaries, reversed or not
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID format")
		return
	}

	details, err := h.paymentService.Get(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ToPaymentDetailsResponse(details))
}

// ListPaymentsRequest represents query parameters for listing payments
type ListPaymentsRequest struct {
	Page            int    `form:"page" binding:"omitempty,min=1"`
	PageSize        int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy         string `form:"order_by"`
	OrderDir        string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Direction       string `form:"direction" binding:"omitempty,oneof=INBOUND OUTBOUND"`
	CustomerID      string `form:"customer_id" binding:"omitempty,uuid"`
	SupplierID      string `form:"supplier_id" binding:"omitempty,uuid"`
	CurrencyID      string `form:"currency_id" binding:"omitempty,uuid"`
	FromDate        string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate          string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
	IncludeReversed bool   `form:"include_reversed"`
}

// List godoc
// @ID           listPayments
// @Summary      List payments
// @Description  Retrieve a paginated list of payments with optional filtering. Reversed payments are excluded unless include_reversed is set.
// @Tags         payments
// @Produce      json
// @Param        direction query string false "Payment direction" Enums(INBOUND, OUTBOUND)
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        supplier_id query string false "Supplier ID" format(uuid)
// @Param        currency_id query string false "Currency ID" format(uuid)
// @Param        from_date query string false "Earliest payment date (inclusive)" format(date)
// @Param        to_date query string false "Latest payment date (inclusive)" format(date)
// @Param        include_reversed query bool false "Include reversed payments" default(false)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]PaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var req ListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	filter, err := toPaymentFilter(req)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]PaymentResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToPaymentResponse(&page.Items[i]))
	}
	h.SuccessWithMeta(c, items, page.Total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers all payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.Record)
		payments.GET("", h.List)
		payments.GET("/:id", h.GetByID)
		payments.POST("/:id/reverse", h.Reverse)
	}
}

func toPaymentFilter(req ListPaymentsRequest) (finance.PaymentFilter, error) {
	filter := finance.PaymentFilter{IncludeReversed: req.IncludeReversed}
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.OrderBy = req.OrderBy
	filter.OrderDir = req.OrderDir

	if req.Direction != "" {
		d := finance.PaymentDirection(req.Direction)
		filter.Direction = &d
	}
	if req.CustomerID != "" {
		id, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return filter, err
		}
		filter.CustomerID = &id
	}
	if req.SupplierID != "" {
		id, err := uuid.Parse(req.SupplierID)
		if err != nil {
			return filter, err
		}
		filter.SupplierID = &id
	}
	if req.CurrencyID != "" {
		id, err := uuid.Parse(req.CurrencyID)
		if err != nil {
			return filter, err
		}
		filter.CurrencyID = &id
	}
	if req.FromDate != "" {
		t, err := time.Parse("2006-01-02", req.FromDate)
		if err != nil {
			return filter, err
		}
		filter.FromDate = &t
	}
	if req.ToDate != "" {
		t, err := time.Parse("2006-01-02", req.ToDate)
		if err != nil {
			return filter, err
		}
		filter.ToDate = &t
	}
	return filter, nil
}
