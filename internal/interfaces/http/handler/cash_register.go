package handler

import (
	financeapp "github.com/gestio/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashRegisterHandler handles cash register and session endpoints
type CashRegisterHandler struct {
	BaseHandler
	registerService *financeapp.CashRegisterService
}

// NewCashRegisterHandler creates a new CashRegisterHandler
func NewCashRegisterHandler(registerService *financeapp.CashRegisterService) *CashRegisterHandler {
	return &CashRegisterHandler{registerService: registerService}
}

// CreateCashRegisterRequest represents a request to create a cash register
// @Description Request body for creating a cash register
type CreateCashRegisterRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100" example:"Front desk"`
	CurrencyID string `json:"currency_id" binding:"required,uuid"`
}

// OpenSessionRequest represents a request to open a register session
// @Description Request body for opening a register session
type OpenSessionRequest struct {
	OpeningAmount string `json:"opening_amount" binding:"required" example:"200.00"`
}

// CloseSessionRequest represents a request to close a register session
// @Description Request body for closing a register session
type CloseSessionRequest struct {
	ClosingAmount string `json:"closing_amount" binding:"required" example:"850.00"`
	Notes         string `json:"notes"`
}

// Create godoc
// @ID           createCashRegister
// @Summary      Create a cash register
// @Tags         cash-registers
// @Accept       json
// @Produce      json
// @Param        request body CreateCashRegisterRequest true "Cash register creation request"
// @Success      201 {object} APIResponse[CashRegisterResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cash-registers [post]
func (h *CashRegisterHandler) Create(c *gin.Context) {
	var req CreateCashRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	currencyID, err := uuid.Parse(req.CurrencyID)
	if err != nil {
		h.BadRequest(c, "Invalid currency ID format")
		return
	}

	register, err := h.registerService.Create(c.Request.Context(), financeapp.CreateCashRegisterRequest{
		Name:       req.Name,
		CurrencyID: currencyID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, ToCashRegisterResponse(register))
}

// GetByID godoc
// @ID           getCashRegisterById
// @Summary      Get cash register by ID
// @Tags         cash-registers
// @Produce      json
// @Param        id path string true "Cash register ID" format(uuid)
// @Success      200 {object} APIResponse[CashRegisterResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cash-registers/{id} [get]
func (h *CashRegisterHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cash register ID format")
		return
	}

	register, err := h.registerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ToCashRegisterResponse(register))
}

// List godoc
// @ID           listCashRegisters
// @Summary      List cash registers
// @Tags         cash-registers
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]CashRegisterResponse]
// @Security     BearerAuth
// @Router       /cash-registers [get]
func (h *CashRegisterHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.registerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]CashRegisterResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToCashRegisterResponse(&page.Items[i]))
	}
	h.SuccessWithMeta(c, items, page.Total, filter.Page, filter.PageSize)
}

// OpenSession godoc
// @ID           openCashSession
// @Summary      Open a register session
// @Description  Open a session on a register. A register can hold at most one open session.
// @Tags         cash-registers
// @Accept       json
// @Produce      json
// @Param        id path string true "Cash register ID" format(uuid)
// @Param        request body OpenSessionRequest true "Session opening request"
// @Success      201 {object} APIResponse[CashSessionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cash-registers/{id}/sessions [post]
func (h *CashRegisterHandler) OpenSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	registerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cash register ID format")
		return
	}

	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	openingAmount, err := decimal.NewFromString(req.OpeningAmount)
	if err != nil {
		h.BadRequest(c, "Invalid opening amount")
		return
	}

	session, err := h.registerService.OpenSession(c.Request.Context(), financeapp.OpenSessionRequest{
		RegisterID:    registerID,
		OpenedBy:      userID,
		OpeningAmount: openingAmount,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, ToCashSessionResponse(session))
}

// ListSessions godoc
// @ID           listCashSessions
// @Summary      List register sessions
// @Tags         cash-registers
// @Produce      json
// @Param        id path string true "Cash register ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]CashSessionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cash-registers/{id}/sessions [get]
func (h *CashRegisterHandler) ListSessions(c *gin.Context) {
	registerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid cash register ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sessions, err := h.registerService.ListSessions(c.Request.Context(), registerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]CashSessionResponse, 0, len(sessions))
	for i := range sessions {
		items = append(items, ToCashSessionResponse(&sessions[i]))
	}
	h.Success(c, items)
}

// GetSession godoc
// @ID           getCashSessionById
// @Summary      Get register session by ID
// @Tags         cash-sessions
// @Produce      json
// @Param        id path string true "Session ID" format(uuid)
// @Success      200 {object} APIResponse[CashSessionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cash-sessions/{id} [get]
func (h *CashRegisterHandler) GetSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	session, err := h.registerService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ToCashSessionResponse(session))
}

// CloseSession godoc
// @ID           closeCashSession
// @Summary      Close a register session
// @Description  Close an open session with the counted closing amount. Closed sessions stop accepting payments.
// @Tags         cash-sessions
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID" format(uuid)
// @Param        request body CloseSessionRequest true "Session closing request"
// @Success      200 {object} APIResponse[CashSessionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cash-sessions/{id}/close [post]
func (h *CashRegisterHandler) CloseSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	var req CloseSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	closingAmount, err := decimal.NewFromString(req.ClosingAmount)
	if err != nil {
		h.BadRequest(c, "Invalid closing amount")
		return
	}

	session, err := h.registerService.CloseSession(c.Request.Context(), financeapp.CloseSessionRequest{
		SessionID:     sessionID,
		ClosedBy:      userID,
		ClosingAmount: closingAmount,
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ToCashSessionResponse(session))
}

// ListSessionTransactions godoc
// @ID           listCashSessionTransactions
// @Summary      List session ledger entries
// @Description  Retrieve the register transactions recorded against a session
// @Tags         cash-sessions
// @Produce      json
// @Param        id path string true "Session ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]CashTransactionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /cash-sessions/{id}/transactions [get]
func (h *CashRegisterHandler) ListSessionTransactions(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	transactions, err := h.registerService.ListSessionTransactions(c.Request.Context(), sessionID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]CashTransactionResponse, 0, len(transactions))
	for i := range transactions {
		items = append(items, ToCashTransactionResponse(&transactions[i]))
	}
	h.Success(c, items)
}

// RegisterRoutes registers all cash register and session routes
func (h *CashRegisterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	registers := rg.Group("/cash-registers")
	{
		registers.POST("", h.Create)
		registers.GET("", h.List)
		registers.GET("/:id", h.GetByID)
		registers.POST("/:id/sessions", h.OpenSession)
		registers.GET("/:id/sessions", h.ListSessions)
	}

	sessions := rg.Group("/cash-sessions")
	{
		sessions.GET("/:id", h.GetSession)
		sessions.POST("/:id/close", h.CloseSession)
		sessions.GET("/:id/transactions", h.ListSessionTransactions)
	}
}
