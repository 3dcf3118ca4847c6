package handler

import (
	"time"

	billingapp "github.com/gestio/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceHandler handles customer and supplier invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	customerInvoiceService *billingapp.CustomerInvoiceService
	supplierInvoiceService *billingapp.SupplierInvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(
	customerInvoiceService *billingapp.CustomerInvoiceService,
	supplierInvoiceService *billingapp.SupplierInvoiceService,
) *InvoiceHandler {
	return &InvoiceHandler{
		customerInvoiceService: customerInvoiceService,
		supplierInvoiceService: supplierInvoiceService,
	}
}

// CreateInvoiceRequest represents a request to create an invoice
// @Description Request body for creating an invoice (customer or supplier)
type CreateInvoiceRequest struct {
	Number string `json:"number" binding:"required,min=1,max=50" example:"INV-2025-0001"`
	// PartyID names the customer on customer invoices and the supplier on
	// supplier invoices.
	PartyID    string  `json:"party_id" binding:"required,uuid"`
	CurrencyID string  `json:"currency_id" binding:"required,uuid"`
	IssueDate  string  `json:"issue_date" binding:"required,datetime=2006-01-02" example:"2025-06-01"`
	DueDate    *string `json:"due_date" binding:"omitempty,datetime=2006-01-02" example:"2025-06-30"`
	Total      string  `json:"total" binding:"required" example:"1200.00"`
	Notes      string  `json:"notes"`
}

type parsedInvoiceRequest struct {
	number     string
	partyID    uuid.UUID
	currencyID uuid.UUID
	issueDate  time.Time
	dueDate    *time.Time
	total      decimal.Decimal
	notes      string
}

func (r CreateInvoiceRequest) parse() (parsedInvoiceRequest, error) {
	var out parsedInvoiceRequest

	partyID, err := uuid.Parse(r.PartyID)
	if err != nil {
		return out, err
	}
	currencyID, err := uuid.Parse(r.CurrencyID)
	if err != nil {
		return out, err
	}
	issueDate, err := time.Parse("2006-01-02", r.IssueDate)
	if err != nil {
		return out, err
	}
	var dueDate *time.Time
	if r.DueDate != nil {
		t, err := time.Parse("2006-01-02", *r.DueDate)
		if err != nil {
			return out, err
		}
		dueDate = &t
	}
	total, err := decimal.NewFromString(r.Total)
	if err != nil {
		return out, err
	}

	return parsedInvoiceRequest{
		number:     r.Number,
		partyID:    partyID,
		currencyID: currencyID,
		issueDate:  issueDate,
		dueDate:    dueDate,
		total:      total,
		notes:      r.Notes,
	}, nil
}

// CreateCustomerInvoice godoc
// @ID           createCustomerInvoice
// @Summary      Create a customer invoice
// @Tags         customer-invoices
// @Accept       json
// @Produce      json
// @Param        request body CreateInvoiceRequest true "Invoice creation request"
// @Success      201 {object} APIResponse[billingapp.CustomerInvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customer-invoices [post]
func (h *InvoiceHandler) CreateCustomerInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	parsed, err := req.parse()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.customerInvoiceService.Create(c.Request.Context(), billingapp.CreateCustomerInvoiceRequest{
		Number:     parsed.number,
		CustomerID: parsed.partyID,
		CurrencyID: parsed.currencyID,
		IssueDate:  parsed.issueDate,
		DueDate:    parsed.dueDate,
		Total:      parsed.total,
		Notes:      parsed.notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetCustomerInvoice godoc
// @ID           getCustomerInvoiceById
// @Summary      Get customer invoice by ID
// @Tags         customer-invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[billingapp.CustomerInvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customer-invoices/{id} [get]
func (h *InvoiceHandler) GetCustomerInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.customerInvoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// VoidCustomerInvoice godoc
// @ID           voidCustomerInvoice
// @Summary      Void a customer invoice
// @Description  Voided invoices stop accepting payments. Voiding requires no recorded payments.
// @Tags         customer-invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[billingapp.CustomerInvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customer-invoices/{id}/void [post]
func (h *InvoiceHandler) VoidCustomerInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.customerInvoiceService.Void(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// CancelCustomerInvoice godoc
// @ID           cancelCustomerInvoice
// @Summary      Cancel a customer invoice
// @Tags         customer-invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[billingapp.CustomerInvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /customer-invoices/{id}/cancel [post]
func (h *InvoiceHandler) CancelCustomerInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.customerInvoiceService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// ListCustomerInvoices godoc
// @ID           listCustomerInvoices
// @Summary      List customer invoices
// @Tags         customer-invoices
// @Produce      json
// @Param        search query string false "Search term (number)"
// @Param        status query string false "Invoice status" Enums(UNPAID, PARTIALLY_PAID, PAID, VOID, CANCELLED)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]billingapp.CustomerInvoiceResponse]
// @Security     BearerAuth
// @Router       /customer-invoices [get]
func (h *InvoiceHandler) ListCustomerInvoices(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.customerInvoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// CreateSupplierInvoice godoc
// @ID           createSupplierInvoice
// @Summary      Create a supplier invoice
// @Tags         supplier-invoices
// @Accept       json
// @Produce      json
// @Param        request body CreateInvoiceRequest true "Invoice creation request"
// @Success      201 {object} APIResponse[billingapp.SupplierInvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /supplier-invoices [post]
func (h *InvoiceHandler) CreateSupplierInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	parsed, err := req.parse()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.supplierInvoiceService.Create(c.Request.Context(), billingapp.CreateSupplierInvoiceRequest{
		Number:     parsed.number,
		SupplierID: parsed.partyID,
		CurrencyID: parsed.currencyID,
		IssueDate:  parsed.issueDate,
		DueDate:    parsed.dueDate,
		Total:      parsed.total,
		Notes:      parsed.notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// GetSupplierInvoice godoc
// @ID           getSupplierInvoiceById
// @Summary      Get supplier invoice by ID
// @Tags         supplier-invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[billingapp.SupplierInvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /supplier-invoices/{id} [get]
func (h *InvoiceHandler) GetSupplierInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.supplierInvoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// VoidSupplierInvoice godoc
// @ID           voidSupplierInvoice
// @Summary      Void a supplier invoice
// @Tags         supplier-invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[billingapp.SupplierInvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /supplier-invoices/{id}/void [post]
func (h *InvoiceHandler) VoidSupplierInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.supplierInvoiceService.Void(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// CancelSupplierInvoice godoc
// @ID           cancelSupplierInvoice
// @Summary      Cancel a supplier invoice
// @Tags         supplier-invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[billingapp.SupplierInvoiceResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /supplier-invoices/{id}/cancel [post]
func (h *InvoiceHandler) CancelSupplierInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.supplierInvoiceService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// ListSupplierInvoices godoc
// @ID           listSupplierInvoices
// @Summary      List supplier invoices
// @Tags         supplier-invoices
// @Produce      json
// @Param        search query string false "Search term (number)"
// @Param        status query string false "Invoice status" Enums(UNPAID, PARTIALLY_PAID, PAID, VOID, CANCELLED)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]billingapp.SupplierInvoiceResponse]
// @Security     BearerAuth
// @Router       /supplier-invoices [get]
func (h *InvoiceHandler) ListSupplierInvoices(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.supplierInvoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers all invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customerInvoices := rg.Group("/customer-invoices")
	{
		customerInvoices.POST("", h.CreateCustomerInvoice)
		customerInvoices.GET("", h.ListCustomerInvoices)
		customerInvoices.GET("/:id", h.GetCustomerInvoice)
		customerInvoices.POST("/:id/void", h.VoidCustomerInvoice)
		customerInvoices.POST("/:id/cancel", h.CancelCustomerInvoice)
	}

	supplierInvoices := rg.Group("/supplier-invoices")
	{
		supplierInvoices.POST("", h.CreateSupplierInvoice)
		supplierInvoices.GET("", h.ListSupplierInvoices)
		supplierInvoices.GET("/:id", h.GetSupplierInvoice)
		supplierInvoices.POST("/:id/void", h.VoidSupplierInvoice)
		supplierInvoices.POST("/:id/cancel", h.CancelSupplierInvoice)
	}
}
