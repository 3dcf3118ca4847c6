package handler

import (
	financeapp "github.com/gestio/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccountHandler handles bank account endpoints
type BankAccountHandler struct {
	BaseHandler
	accountService *financeapp.BankAccountService
}

// NewBankAccountHandler creates a new BankAccountHandler
func NewBankAccountHandler(accountService *financeapp.BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{accountService: accountService}
}

// CreateBankAccountRequest represents a request to create a bank account
// @Description Request body for creating a bank account
type CreateBankAccountRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=200" example:"Main operating account"`
	AccountNumber  string `json:"account_number" binding:"required,min=1,max=50" example:"DE89370400440532013000"`
	CurrencyID     string `json:"currency_id" binding:"required,uuid"`
	OpeningBalance string `json:"opening_balance" binding:"omitempty" example:"1000.00"`
	Notes          string `json:"notes"`
}

// Create godoc
// @ID           createBankAccount
// @Summary      Create a bank account
// @Description  Create a bank account with an opening balance. Afterwards the balance moves only through payments.
// @Tags         bank-accounts
// @Accept       json
// @Produce      json
// @Param        request body CreateBankAccountRequest true "Bank account creation request"
// @Success      201 {object} APIResponse[BankAccountResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bank-accounts [post]
func (h *BankAccountHandler) Create(c *gin.Context) {
	var req CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	currencyID, err := uuid.Parse(req.CurrencyID)
	if err != nil {
		h.BadRequest(c, "Invalid currency ID format")
		return
	}

	openingBalance := decimal.Zero
	if req.OpeningBalance != "" {
		openingBalance, err = decimal.NewFromString(req.OpeningBalance)
		if err != nil {
			h.BadRequest(c, "Invalid opening balance")
			return
		}
	}

	account, err := h.accountService.Create(c.Request.Context(), financeapp.CreateBankAccountRequest{
		Name:           req.Name,
		AccountNumber:  req.AccountNumber,
		CurrencyID:     currencyID,
		OpeningBalance: openingBalance,
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, ToBankAccountResponse(account))
}

// GetByID godoc
// @ID           getBankAccountById
// @Summary      Get bank account by ID
// @Tags         bank-accounts
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Success      200 {object} APIResponse[BankAccountResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bank-accounts/{id} [get]
func (h *BankAccountHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bank account ID format")
		return
	}

	account, err := h.accountService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ToBankAccountResponse(account))
}

// Activate godoc
// @ID           activateBankAccount
// @Summary      Activate a bank account
// @Tags         bank-accounts
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bank-accounts/{id}/activate [post]
func (h *BankAccountHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bank account ID format")
		return
	}

	if err := h.accountService.Activate(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate godoc
// @ID           deactivateBankAccount
// @Summary      Deactivate a bank account
// @Description  Deactivated accounts are rejected on new payments; existing rows keep their reference
// @Tags         bank-accounts
// @Produce      json
// @Param        id path string true "Bank account ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /bank-accounts/{id}/deactivate [post]
func (h *BankAccountHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bank account ID format")
		return
	}

	if err := h.accountService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// List godoc
// @ID           listBankAccounts
// @Summary      List bank accounts
// @Tags         bank-accounts
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        search query string false "Search term (name, account number)"
// @Success      200 {object} APIResponse[[]BankAccountResponse]
// @Security     BearerAuth
// @Router       /bank-accounts [get]
func (h *BankAccountHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.accountService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]BankAccountResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToBankAccountResponse(&page.Items[i]))
	}
	h.SuccessWithMeta(c, items, page.Total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers all bank account routes
func (h *BankAccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.Create)
		accounts.GET("", h.List)
		accounts.GET("/:id", h.GetByID)
		accounts.POST("/:id/activate", h.Activate)
		accounts.POST("/:id/deactivate", h.Deactivate)
	}
}
