package handler

import (
	financeapp "github.com/gestio/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CurrencyHandler handles currency reference data endpoints
type CurrencyHandler struct {
	BaseHandler
	currencyService *financeapp.CurrencyService
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(currencyService *financeapp.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencyService: currencyService}
}

// CreateCurrencyRequest represents a request to create a currency
// @Description Request body for creating a currency
type CreateCurrencyRequest struct {
	Code          string `json:"code" binding:"required,len=3" example:"EUR"`
	Name          string `json:"name" binding:"required,min=1,max=100" example:"Euro"`
	Symbol        string `json:"symbol" binding:"max=10" example:"€"`
	DecimalPlaces int    `json:"decimal_places" binding:"min=0,max=4" example:"2"`
}

// UpdateCurrencyRequest represents a request to update a currency
// @Description Request body for updating a currency
type UpdateCurrencyRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100" example:"Euro"`
	Symbol        string `json:"symbol" binding:"max=10" example:"€"`
	DecimalPlaces int    `json:"decimal_places" binding:"min=0,max=4" example:"2"`
}

// Create godoc
// @ID           createCurrency
// @Summary      Create a currency
// @Tags         currencies
// @Accept       json
// @Produce      json
// @Param        request body CreateCurrencyRequest true "Currency creation request"
// @Success      201 {object} APIResponse[CurrencyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /currencies [post]
func (h *CurrencyHandler) Create(c *gin.Context) {
	var req CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	currency, err := h.currencyService.Create(c.Request.Context(), financeapp.CreateCurrencyRequest{
		Code:          req.Code,
		Name:          req.Name,
		Symbol:        req.Symbol,
		DecimalPlaces: req.DecimalPlaces,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, ToCurrencyResponse(currency))
}

// GetByID godoc
// @ID           getCurrencyById
// @Summary      Get currency by ID
// @Tags         currencies
// @Produce      json
// @Param        id path string true "Currency ID" format(uuid)
// @Success      200 {object} APIResponse[CurrencyResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /currencies/{id} [get]
func (h *CurrencyHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid currency ID format")
		return
	}

	currency, err := h.currencyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ToCurrencyResponse(currency))
}

// Update godoc
// @ID           updateCurrency
// @Summary      Update a currency
// @Tags         currencies
// @Accept       json
// @Produce      json
// @Param        id path string true "Currency ID" format(uuid)
// @Param        request body UpdateCurrencyRequest true "Currency update request"
// @Success      200 {object} APIResponse[CurrencyResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /currencies/{id} [put]
func (h *CurrencyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid currency ID format")
		return
	}

	var req UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	currency, err := h.currencyService.Update(c.Request.Context(), id, financeapp.UpdateCurrencyRequest{
		Name:          req.Name,
		Symbol:        req.Symbol,
		DecimalPlaces: req.DecimalPlaces,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ToCurrencyResponse(currency))
}

// Activate godoc
// @ID           activateCurrency
// @Summary      Activate a currency
// @Tags         currencies
// @Produce      json
// @Param        id path string true "Currency ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /currencies/{id}/activate [post]
func (h *CurrencyHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid currency ID format")
		return
	}

	if err := h.currencyService.Activate(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate godoc
// @ID           deactivateCurrency
// @Summary      Deactivate a currency
// @Description  Deactivated currencies are rejected on new payments but stay valid on historical rows
// @Tags         currencies
// @Produce      json
// @Param        id path string true "Currency ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /currencies/{id}/deactivate [post]
func (h *CurrencyHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid currency ID format")
		return
	}

	if err := h.currencyService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// List godoc
// @ID           listCurrencies
// @Summary      List currencies
// @Tags         currencies
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        search query string false "Search term (code, name)"
// @Success      200 {object} APIResponse[[]CurrencyResponse]
// @Security     BearerAuth
// @Router       /currencies [get]
func (h *CurrencyHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.currencyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]CurrencyResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToCurrencyResponse(&page.Items[i]))
	}
	h.SuccessWithMeta(c, items, page.Total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers all currency routes
func (h *CurrencyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.Create)
		currencies.GET("", h.List)
		currencies.GET("/:id", h.GetByID)
		currencies.PUT("/:id", h.Update)
		currencies.POST("/:id/activate", h.Activate)
		currencies.POST("/:id/deactivate", h.Deactivate)
	}
}
