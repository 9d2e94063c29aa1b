package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"crm-admin.backend/internal/domain/entities"
	"crm-admin.backend/internal/interfaces/http/response"
	"crm-admin.backend/pkg/utils"
)

// TimeTrackingService records sales person sessions
type TimeTrackingService interface {
	Start(ctx context.Context, userID int64) (*entities.TimeTrackingRecord, error)
	End(ctx context.Context, userID int64) (*entities.TimeTrackingRecord, error)
	ListForUser(ctx context.Context, userID int64, p utils.PaginationParams) ([]*entities.TimeTrackingRecord, utils.PaginationMeta, error)
	ListAll(ctx context.Context, p utils.PaginationParams) ([]*entities.TimeTrackingRecord, utils.PaginationMeta, error)
}

// TimeTrackingHandler serves the time log endpoints
type TimeTrackingHandler struct {
	timeTracking TimeTrackingService
}

// NewTimeTrackingHandler creates a new time tracking handler
func NewTimeTrackingHandler(timeTracking TimeTrackingService) *TimeTrackingHandler {
	return &TimeTrackingHandler{timeTracking: timeTracking}
}

// Start opens a session for the caller
// POST /api/v1/sales-person/time-logs/start
func (h *TimeTrackingHandler) Start(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.timeTracking.Start(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, record)
}

// End closes the caller's open session
// POST /api/v1/sales-person/time-logs/end
func (h *TimeTrackingHandler) End(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.timeTracking.End(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, record)
}

// ListOwn lists the caller's sessions
// GET /api/v1/sales-person/time-logs
func (h *TimeTrackingHandler) ListOwn(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	p, err := paginationFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, meta, err := h.timeTracking.ListForUser(c.Request.Context(), user.ID, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, meta)
}

// ListAll lists every sales person's sessions
// GET /api/v1/admin/time-logs
func (h *TimeTrackingHandler) ListAll(c *gin.Context) {
	p, err := paginationFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, meta, err := h.timeTracking.ListAll(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, meta)
}
