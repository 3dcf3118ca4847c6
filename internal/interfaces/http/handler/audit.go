package handler

import (
	"time"

	auditapp "github.com/gestio/backend/internal/application/audit"
	"github.com/gestio/backend/internal/domain/audit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLogHandler handles audit log endpoints
type AuditLogHandler struct {
	BaseHandler
	auditService *auditapp.Service
}

// NewAuditLogHandler creates a new AuditLogHandler
func NewAuditLogHandler(auditService *auditapp.Service) *AuditLogHandler {
	return &AuditLogHandler{auditService: auditService}
}

// AuditEntryResponse is the HTTP representation of an audit log entry
type AuditEntryResponse struct {
	ID         uuid.UUID     `json:"id"`
	Action     string        `json:"action"`
	EntityKind string        `json:"entity_kind"`
	EntityID   uuid.UUID     `json:"entity_id"`
	ActorID    uuid.UUID     `json:"actor_id"`
	Details    audit.Details `json:"details,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// ToAuditEntryResponse maps an audit entry to its HTTP representation
func ToAuditEntryResponse(e *audit.Entry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         e.ID,
		Action:     string(e.Action),
		EntityKind: e.EntityKind,
		EntityID:   e.EntityID,
		ActorID:    e.ActorID,
		Details:    e.Details,
		CreatedAt:  e.CreatedAt,
	}
}

// List godoc
// @ID           listAuditEntries
// @Summary      List audit log entries
// @Description  Retrieve the append-only audit trail, newest first
// @Tags         audit
// @Produce      json
// @Param        action query string false "Audit action" Enums(CREATE, UPDATE, DELETE, REVERSE)
// @Param        entity_kind query string false "Audited entity kind" example(payment)
// @Param        entity_id query string false "Audited entity ID" format(uuid)
// @Param        actor_id query string false "Acting user ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]AuditEntryResponse]
// @Security     BearerAuth
// @Router       /audit-logs [get]
func (h *AuditLogHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	for _, key := range []string{"action", "entity_kind", "entity_id", "actor_id"} {
		if v := c.Query(key); v != "" {
			filter.Filters[key] = v
		}
	}

	page, err := h.auditService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	items := make([]AuditEntryResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, ToAuditEntryResponse(&page.Items[i]))
	}
	h.SuccessWithMeta(c, items, page.Total, filter.Page, filter.PageSize)
}

// RegisterRoutes registers all audit log routes
func (h *AuditLogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/audit-logs", h.List)
}
