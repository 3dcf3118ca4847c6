package handler

import (
	"context"
	"time"

	inventoryapp "github.com/gestio/backend/internal/application/inventory"
	"github.com/gestio/backend/internal/domain/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CountSessionHandler handles inventory count session endpoints
type CountSessionHandler struct {
	BaseHandler
	countService *inventoryapp.CountSessionService
}

// NewCountSessionHandler creates a new CountSessionHandler
func NewCountSessionHandler(countService *inventoryapp.CountSessionService) *CountSessionHandler {
	return &CountSessionHandler{countService: countService}
}

// CreateCountSessionRequest represents a request to create a count session
// @Description Request body for creating an inventory count session
type CreateCountSessionRequest struct {
	Number    string `json:"number" binding:"required,min=1,max=50" example:"CNT-2025-0001"`
	CountDate string `json:"count_date" binding:"required,datetime=2006-01-02" example:"2025-06-30"`
	Notes     string `json:"notes"`
}

// AddCountLineRequest represents a request to add an expected-quantity line
// @Description Request body for adding a line to a draft count session
type AddCountLineRequest struct {
	ProductLabel string `json:"product_label" binding:"required,min=1,max=200" example:"Blue widget, 10mm"`
	ExpectedQty  string `json:"expected_qty" binding:"required" example:"120"`
}

// RecordCountRequest represents a request to record one counted quantity
// @Description Request body for recording a counted quantity on a line
type RecordCountRequest struct {
	LineID     string `json:"line_id" binding:"required,uuid"`
	CountedQty string `json:"counted_qty" binding:"required" example:"117"`
	Remark     string `json:"remark" binding:"max=500"`
}

// CountLineResponse is the HTTP representation of a count line
type CountLineResponse struct {
	ID           uuid.UUID        `json:"id"`
	ProductLabel string           `json:"product_label"`
	ExpectedQty  decimal.Decimal  `json:"expected_qty"`
	CountedQty   *decimal.Decimal `json:"counted_qty,omitempty"`
	Difference   decimal.Decimal  `json:"difference"`
	Remark       string           `json:"remark,omitempty"`
}

// CountSessionResponse is the HTTP representation of a count session
type CountSessionResponse struct {
	ID              uuid.UUID           `json:"id"`
	Number          string              `json:"number"`
	Status          string              `json:"status"`
	CountDate       string              `json:"count_date"`
	CreatedByUserID uuid.UUID           `json:"created_by_user_id"`
	Lines           []CountLineResponse `json:"lines"`
	Notes           string              `json:"notes,omitempty"`
	CompletedAt     *time.Time          `json:"completed_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ToCountSessionResponse maps a count session aggregate to its HTTP representation
func ToCountSessionResponse(cs *inventory.CountSession) CountSessionResponse {
	lines := make([]CountLineResponse, 0, len(cs.Lines))
	for i := range cs.Lines {
		l := &cs.Lines[i]
		lines = append(lines, CountLineResponse{
			ID:           l.ID,
			ProductLabel: l.ProductLabel,
			ExpectedQty:  l.ExpectedQty,
			CountedQty:   l.CountedQty,
			Difference:   l.Difference(),
			Remark:       l.Remark,
		})
	}
	return CountSessionResponse{
		ID:              cs.ID,
		Number:          cs.Number,
		Status:          string(cs.Status),
		CountDate:       cs.CountDate.Format("2006-01-02"),
		CreatedByUserID: cs.CreatedByUserID,
		Lines:           lines,
		Notes:           cs.Notes,
		CompletedAt:     cs.CompletedAt,
		CancelledAt:     cs.CancelledAt,
		CreatedAt:       cs.CreatedAt,
		UpdatedAt:       cs.UpdatedAt,
	}
}

// Create godoc
// @ID           createCountSession
// @Summary      Create an inventory count session
// @Tags         inventory-counts
// @Accept       json
// @Produce      json
// @Param        request body CreateCountSessionRequest true "Count session creation request"
// @Success      201 {object} APIResponse[CountSessionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory-counts [post]
func (h *CountSessionHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req CreateCountSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	countDate, err := time.Parse("2006-01-02", req.CountDate)
	if err != nil {
		h.BadRequest(c, "Invalid count date")
		return
	}

	session, err := h.countService.Create(c.Request.Context(), inventoryapp.CreateCountSessionRequest{
		Number:    req.Number,
		CountDate: countDate,
		CreatedBy: userID,
		Notes:     req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, ToCountSessionResponse(session))
}

// GetByID godoc
// @ID           getCountSessionById
// @Summary      Get count session by ID
// @Tags         inventory-counts
// @Produce      json
// @Param        id path string true "Count session ID" format(uuid)
// @Success      200 {object} APIResponse[CountSessionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory-counts/{id} [get]
func (h *CountSessionHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid count session ID format")
		return
	}

	session, err := h.countService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ToCountSessionResponse(session))
}

// AddLine godoc
// @ID           addCountLine
// @Summary      Add a line to a draft count session
// @Tags         inventory-counts
// @Accept       json
// @Produce      json
// @Param        id path string true "Count session ID" format(uuid)
// @Param        request body AddCountLineRequest true "Line to add"
// @Success      200 {object} APIResponse[CountSessionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory-counts/{id}/lines [post]
func (h *CountSessionHandler) AddLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid count session ID format")
		return
	}

	var req AddCountLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expectedQty, err := decimal.NewFromString(req.ExpectedQty)
	if err != nil {
		h.BadRequest(c, "Invalid expected quantity")
		return
	}

	session, err := h.countService.AddLine(c.Request.Context(), id, inventoryapp.AddCountLineRequest{
		ProductLabel: req.ProductLabel,
		ExpectedQty:  expectedQty,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ToCountSessionResponse(session))
}

// Start godoc
// @ID           startCountSession
// @Summary      Start counting
// @Description  Move a draft session with at least one line into counting
// @Tags         inventory-counts
// @Produce      json
// @Param        id path string true "Count session ID" format(uuid)
// @Success      200 {object} APIResponse[CountSessionResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory-counts/{id}/start [post]
func (h *CountSessionHandler) Start(c *gin.Context) {
	h.transition(c, h.countService.Start)
}

// RecordCount godoc
// @ID           recordCount
// @Summary      Record a counted quantity
// @Tags         inventory-counts
// @Accept       json
// @Produce      json
// @Param        id path string true "Count session ID" format(uuid)
// @Param        request body RecordCountRequest true "Counted quantity"
// @Success      200 {object} APIResponse[CountSessionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory-counts/{id}/counts [post]
func (h *CountSessionHandler) RecordCount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid count session ID format")
		return
	}

	var req RecordCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lineID, err := uuid.Parse(req.LineID)
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}
	countedQty, err := decimal.NewFromString(req.CountedQty)
	if err != nil {
		h.BadRequest(c, "Invalid counted quantity")
		return
	}

	session, err := h.countService.RecordCount(c.Request.Context(), id, inventoryapp.RecordCountRequest{
		LineID:     lineID,
		CountedQty: countedQty,
		Remark:     req.Remark,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ToCountSessionResponse(session))
}

// Complete godoc
// @ID           completeCountSession
// @Summary      Complete a count session
// @Description  Close a session once every line has a counted quantity
// @Tags         inventory-counts
// @Produce      json
// @Param        id path string true "Count session ID" format(uuid)
// @Success      200 {object} APIResponse[CountSessionResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory-counts/{id}/complete [post]
func (h *CountSessionHandler) Complete(c *gin.Context) {
	h.transition(c, h.countService.Complete)
}

// Cancel godoc
// @ID           cancelCountSession
// @Summary      Cancel a count session
// @Tags         inventory-counts
// @Produce      json
// @Param        id path string true "Count session ID" format(uuid)
// @Success      200 {object} APIResponse[CountSessionResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory-counts/{id}/cancel [post]
func (h *CountSessionHandler) Cancel(c *gin.Context) {
	h.transition(c, h.countService.Cancel)
}

func (h *CountSessionHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*inventory.CountSession, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid count session ID format")
		return
	}

	session, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ToCountSessionResponse(session))
}

// List godoc
// @ID           listCountSessions
// @Summary      List count sessions
// @Tags         inventory-counts
// @Produce      json
// @Param        search query string false "Search term (number)"
// @Param        status query string false "Session status" Enums(DRAFT, IN_PROGRESS, COMPLETED, CANCELLED)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]CountSessionResponse]
// @Security     BearerAuth
// @Router       /inventory-counts [get]
func (h *CountSessionHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.countService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]CountSessionResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToCountSessionResponse(&page.Items[i]))
	}
	h.SuccessWithMeta(c, items, page.Total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers all inventory count routes
func (h *CountSessionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	counts := rg.Group("/inventory-counts")
	{
		counts.POST("", h.Create)
		counts.GET("", h.List)
		counts.GET("/:id", h.GetByID)
		counts.POST("/:id/lines", h.AddLine)
		counts.POST("/:id/start", h.Start)
		counts.POST("/:id/counts", h.RecordCount)
		counts.POST("/:id/complete", h.Complete)
		counts.POST("/:id/cancel", h.Cancel)
	}
}
