package handler

import (
	"context"
	"time"

	tradeapp "github.com/gestio/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderHandler handles sales order and purchase order endpoints
type OrderHandler struct {
	BaseHandler
	salesOrderService    *tradeapp.SalesOrderService
	purchaseOrderService *tradeapp.PurchaseOrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(
	salesOrderService *tradeapp.SalesOrderService,
	purchaseOrderService *tradeapp.PurchaseOrderService,
) *OrderHandler {
	return &OrderHandler{
		salesOrderService:    salesOrderService,
		purchaseOrderService: purchaseOrderService,
	}
}

// CreateOrderRequest represents a request to create an order
// @Description Request body for creating an order (sales or purchase)
type CreateOrderRequest struct {
	Number string `json:"number" binding:"required,min=1,max=50" example:"SO-2025-0001"`
	// PartyID names the customer on sales orders and the supplier on
	// purchase orders.
	PartyID    string `json:"party_id" binding:"required,uuid"`
	CurrencyID string `json:"currency_id" binding:"required,uuid"`
	OrderDate  string `json:"order_date" binding:"required,datetime=2006-01-02" example:"2025-06-01"`
	Total      string `json:"total" binding:"required" example:"7800.00"`
	Notes      string `json:"notes"`
}

type parsedOrderRequest struct {
	number     string
	partyID    uuid.UUID
	currencyID uuid.UUID
	orderDate  time.Time
	total      decimal.Decimal
	notes      string
}

func (r CreateOrderRequest) parse() (parsedOrderRequest, error) {
	var out parsedOrderRequest

	partyID, err := uuid.Parse(r.PartyID)
	if err != nil {
		return out, err
	}
	currencyID, err := uuid.Parse(r.CurrencyID)
	if err != nil {
		return out, err
	}
	orderDate, err := time.Parse("2006-01-02", r.OrderDate)
	if err != nil {
		return out, err
	}
	total, err := decimal.NewFromString(r.Total)
	if err != nil {
		return out, err
	}

	return parsedOrderRequest{
		number:     r.Number,
		partyID:    partyID,
		currencyID: currencyID,
		orderDate:  orderDate,
		total:      total,
		notes:      r.Notes,
	}, nil
}

// CreateSalesOrder godoc
// @ID           createSalesOrder
// @Summary      Create a sales order
// @Tags         sales-orders
// @Accept       json
// @Produce      json
// @Param        request body CreateOrderRequest true "Order creation request"
// @Success      201 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales-orders [post]
func (h *OrderHandler) CreateSalesOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	parsed, err := req.parse()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.salesOrderService.Create(c.Request.Context(), tradeapp.CreateSalesOrderRequest{
		Number:     parsed.number,
		CustomerID: parsed.partyID,
		CurrencyID: parsed.currencyID,
		OrderDate:  parsed.orderDate,
		Total:      parsed.total,
		Notes:      parsed.notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

// GetSalesOrder godoc
// @ID           getSalesOrderById
// @Summary      Get sales order by ID
// @Tags         sales-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales-orders/{id} [get]
func (h *OrderHandler) GetSalesOrder(c *gin.Context) {
	h.salesTransition(c, h.salesOrderService.GetByID)
}

// ConfirmSalesOrder godoc
// @ID           confirmSalesOrder
// @Summary      Confirm a sales order
// @Tags         sales-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales-orders/{id}/confirm [post]
func (h *OrderHandler) ConfirmSalesOrder(c *gin.Context) {
	h.salesTransition(c, h.salesOrderService.Confirm)
}

// CompleteSalesOrder godoc
// @ID           completeSalesOrder
// @Summary      Complete a sales order
// @Tags         sales-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales-orders/{id}/complete [post]
func (h *OrderHandler) CompleteSalesOrder(c *gin.Context) {
	h.salesTransition(c, h.salesOrderService.Complete)
}

// CancelSalesOrder godoc
// @ID           cancelSalesOrder
// @Summary      Cancel a sales order
// @Tags         sales-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.SalesOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /sales-orders/{id}/cancel [post]
func (h *OrderHandler) CancelSalesOrder(c *gin.Context) {
	h.salesTransition(c, h.salesOrderService.Cancel)
}

// ListSalesOrders godoc
// @ID           listSalesOrders
// @Summary      List sales orders
// @Tags         sales-orders
// @Produce      json
// @Param        search query string false "Search term (number)"
// @Param        status query string false "Order status" Enums(DRAFT, CONFIRMED, COMPLETED, CANCELLED)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]tradeapp.SalesOrderResponse]
// @Security     BearerAuth
// @Router       /sales-orders [get]
func (h *OrderHandler) ListSalesOrders(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.salesOrderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

func (h *OrderHandler) salesTransition(c *gin.Context, fn func(context.Context, uuid.UUID) (*tradeapp.SalesOrderResponse, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// CreatePurchaseOrder godoc
// @ID           createPurchaseOrder
// @Summary      Create a purchase order
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        request body CreateOrderRequest true "Order creation request"
// @Success      201 {object} APIResponse[tradeapp.PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders [post]
func (h *OrderHandler) CreatePurchaseOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	parsed, err := req.parse()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.purchaseOrderService.Create(c.Request.Context(), tradeapp.CreatePurchaseOrderRequest{
		Number:     parsed.number,
		SupplierID: parsed.partyID,
		CurrencyID: parsed.currencyID,
		OrderDate:  parsed.orderDate,
		Total:      parsed.total,
		Notes:      parsed.notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

// GetPurchaseOrder godoc
// @ID           getPurchaseOrderById
// @Summary      Get purchase order by ID
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.PurchaseOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id} [get]
func (h *OrderHandler) GetPurchaseOrder(c *gin.Context) {
	h.purchaseTransition(c, h.purchaseOrderService.GetByID)
}

// ConfirmPurchaseOrder godoc
// @ID           confirmPurchaseOrder
// @Summary      Confirm a purchase order
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.PurchaseOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/confirm [post]
func (h *OrderHandler) ConfirmPurchaseOrder(c *gin.Context) {
	h.purchaseTransition(c, h.purchaseOrderService.Confirm)
}

// CompletePurchaseOrder godoc
// @ID           completePurchaseOrder
// @Summary      Complete a purchase order
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.PurchaseOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/complete [post]
func (h *OrderHandler) CompletePurchaseOrder(c *gin.Context) {
	h.purchaseTransition(c, h.purchaseOrderService.Complete)
}

// CancelPurchaseOrder godoc
// @ID           cancelPurchaseOrder
// @Summary      Cancel a purchase order
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[tradeapp.PurchaseOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/cancel [post]
func (h *OrderHandler) CancelPurchaseOrder(c *gin.Context) {
	h.purchaseTransition(c, h.purchaseOrderService.Cancel)
}

// ListPurchaseOrders godoc
// @ID           listPurchaseOrders
// @Summary      List purchase orders
// @Tags         purchase-orders
// @Produce      json
// @Param        search query string false "Search term (number)"
// @Param        status query string false "Order status" Enums(DRAFT, CONFIRMED, COMPLETED, CANCELLED)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]tradeapp.PurchaseOrderResponse]
// @Security     BearerAuth
// @Router       /purchase-orders [get]
func (h *OrderHandler) ListPurchaseOrders(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.purchaseOrderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, filter.Page, filter.PageSize)
}

func (h *OrderHandler) purchaseTransition(c *gin.Context, fn func(context.Context, uuid.UUID) (*tradeapp.PurchaseOrderResponse, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	salesOrders := rg.Group("/sales-orders")
	{
		salesOrders.POST("", h.CreateSalesOrder)
		salesOrders.GET("", h.ListSalesOrders)
		salesOrders.GET("/:id", h.GetSalesOrder)
		salesOrders.POST("/:id/confirm", h.ConfirmSalesOrder)
		salesOrders.POST("/:id/complete", h.CompleteSalesOrder)
		salesOrders.POST("/:id/cancel", h.CancelSalesOrder)
	}

	purchaseOrders := rg.Group("/purchase-orders")
	{
		purchaseOrders.POST("", h.CreatePurchaseOrder)
		purchaseOrders.GET("", h.ListPurchaseOrders)
		purchaseOrders.GET("/:id", h.GetPurchaseOrder)
		purchaseOrders.POST("/:id/confirm", h.ConfirmPurchaseOrder)
		purchaseOrders.POST("/:id/complete", h.CompletePurchaseOrder)
		purchaseOrders.POST("/:id/cancel", h.CancelPurchaseOrder)
	}
}
