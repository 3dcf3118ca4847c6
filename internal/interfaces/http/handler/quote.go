package handler

import (
	"context"
	"time"

	tradeapp "github.com/gestio/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteHandler handles quote endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService *tradeapp.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *tradeapp.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// CreateQuoteRequest represents a request to create a quote
// @Description Request body for creating a quote
type CreateQuoteRequest struct {
	Number     string  `json:"number" binding:"required,min=1,max=50" example:"QT-2025-0001"`
	CustomerID string  `json:"customer_id" binding:"required,uuid"`
	CurrencyID string  `json:"currency_id" binding:"required,uuid"`
	IssueDate  string  `json:"issue_date" binding:"required,datetime=2006-01-02" example:"2025-06-01"`
	ValidUntil *string `json:"valid_until" binding:"omitempty,datetime=2006-01-02" example:"2025-06-15"`
	Total      string  `json:"total" binding:"required" example:"4500.00"`
	Notes      string  `json:"notes"`
}

// Create godoc
// @ID           createQuote
// @Summary      Create a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        request body CreateQuoteRequest true "Quote creation request"
// @Success      201 {object} APIResponse[tradeapp.QuoteResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}
	currencyID, err := uuid.Parse(req.CurrencyID)
	if err != nil {
		h.BadRequest(c, "Invalid currency ID format")
		return
	}
	issueDate, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		h.BadRequest(c, "Invalid issue date")
		return
	}
	var validUntil *time.Time
	if req.ValidUntil != nil {
		t, err := time.Parse("2006-01-02", *req.ValidUntil)
		if err != nil {
			h.BadRequest(c, "Invalid valid-until date")
			return
		}
		validUntil = &t
	}
	total, err := decimal.NewFromString(req.Total)
	if err != nil {
		h.BadRequest(c, "Invalid total")
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), tradeapp.CreateQuoteRequest{
		Number:     req.Number,
		CustomerID: customerID,
		CurrencyID: currencyID,
		IssueDate:  issueDate,
		ValidUntil: validUntil,
		Total:      total,
		Notes:      req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, quote)
}

// GetByID godoc
// @ID           getQuoteById
// @Summary      Get quote by ID
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.QuoteResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quote ID format")
		return
	}

	quote, err := h.quoteService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quote)
}

// Send godoc
// @ID           sendQuote
// @Summary      Mark a quote as sent
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.QuoteResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id}/send [post]
func (h *QuoteHandler) Send(c *gin.Context) {
	h.transition(c, h.quoteService.Send)
}

// Accept godoc
// @ID           acceptQuote
// @Summary      Accept a quote
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.QuoteResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id}/accept [post]
func (h *QuoteHandler) Accept(c *gin.Context) {
	h.transition(c, h.quoteService.Accept)
}

// Reject godoc
// @ID           rejectQuote
// @Summary      Reject a quote
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.QuoteResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id}/reject [post]
func (h *QuoteHandler) Reject(c *gin.Context) {
	h.transition(c, h.quoteService.Reject)
}

// Expire godoc
// @ID           expireQuote
// @Summary      Expire a quote
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.QuoteResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /quotes/{id}/expire [post]
func (h *QuoteHandler) Expire(c *gin.Context) {
	h.transition(c, h.quoteService.Expire)
}

func (h *QuoteHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*tradeapp.QuoteResponse, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid quote ID format")
		return
	}

	quote, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quote)
}

// List godoc
// @ID           listQuotes
// @Summary      List quotes
// @Tags         quotes
// @Produce      json
// @Param        search query string false "Search term (number)"
// @Param        status query string false "Quote status" Enums(DRAFT, SENT, ACCEPTED, REJECTED, EXPIRED)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]tradeapp.QuoteResponse]
// @Security     BearerAuth
// @Router       /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.quoteService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers all quote routes
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	{
		quotes.POST("", h.Create)
		quotes.GET("", h.List)
		quotes.GET("/:id", h.GetByID)
		quotes.POST("/:id/send", h.Send)
		quotes.POST("/:id/accept", h.Accept)
		quotes.POST("/:id/reject", h.Reject)
		quotes.POST("/:id/expire", h.Expire)
	}
}
