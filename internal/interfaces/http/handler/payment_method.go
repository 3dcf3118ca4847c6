package handler

import (
	financeapp "github.com/gestio/backend/internal/application/finance"
	"github.com/gestio/backend/internal/domain/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentMethodHandler handles payment method reference data endpoints
type PaymentMethodHandler struct {
	BaseHandler
	methodService *financeapp.PaymentMethodService
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler
func NewPaymentMethodHandler(methodService *financeapp.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{methodService: methodService}
}

// CreatePaymentMethodRequest represents a request to create a payment method
// @Description Request body for creating a payment method
type CreatePaymentMethodRequest struct {
	Code string `json:"code" binding:"required,min=1,max=50" example:"BANK_TRANSFER"`
	Name string `json:"name" binding:"required,min=1,max=100" example:"Bank transfer"`
	Kind string `json:"kind" binding:"omitempty,oneof=CASH TRANSFER CARD CHECK OTHER" example:"TRANSFER"`
}

// Create godoc
// @ID           createPaymentMethod
// @Summary      Create a payment method
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        request body CreatePaymentMethodRequest true "Payment method creation request"
// @Success      201 {object} APIResponse[PaymentMethodResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payment-methods [post]
func (h *PaymentMethodHandler) Create(c *gin.Context) {
	var req CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	method, err := h.methodService.Create(c.Request.Context(), financeapp.CreatePaymentMethodRequest{
		Code: req.Code,
		Name: req.Name,
		Kind: finance.PaymentMethodKind(req.Kind),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, ToPaymentMethodResponse(method))
}

// GetByID godoc
// @ID           getPaymentMethodById
// @Summary      Get payment method by ID
// @Tags         payment-methods
// @Produce      json
// @Param        id path string true "Payment method ID" format(uuid)
// @Success      200 {object} APIResponse[PaymentMethodResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payment-methods/{id} [get]
func (h *PaymentMethodHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID format")
		return
	}

	method, err := h.methodService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ToPaymentMethodResponse(method))
}

// Activate godoc
// @ID           activatePaymentMethod
// @Summary      Activate a payment method
// @Tags         payment-methods
// @Produce      json
// @Param        id path string true "Payment method ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payment-methods/{id}/activate [post]
func (h *PaymentMethodHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID format")
		return
	}

	if err := h.methodService.Activate(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate godoc
// @ID           deactivatePaymentMethod
// @Summary      Deactivate a payment method
// @Tags         payment-methods
// @Produce      json
// @Param        id path string true "Payment method ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payment-methods/{id}/deactivate [post]
func (h *PaymentMethodHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID format")
		return
	}

	if err := h.methodService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// List godoc
// @ID           listPaymentMethods
// @Summary      List payment methods
// @Tags         payment-methods
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        search query string false "Search term (code, name)"
// @Success      200 {object} APIResponse[[]PaymentMethodResponse]
// @Security     BearerAuth
// @Router       /payment-methods [get]
func (h *PaymentMethodHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.methodService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]PaymentMethodResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToPaymentMethodResponse(&page.Items[i]))
	}
	h.SuccessWithMeta(c, items, page.Total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers all payment method routes
func (h *PaymentMethodHandler) RegisterRoutes(rg *gin.RouterGroup) {
	methods := rg.Group("/payment-methods")
	{
		methods.POST("", h.Create)
		methods.GET("", h.List)
		methods.GET("/:id", h.GetByID)
		methods.POST("/:id/activate", h.Activate)
		methods.POST("/:id/deactivate", h.Deactivate)
	}
}
