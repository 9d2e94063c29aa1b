package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/interfaces/http/response"
	"crm-admin.backend/pkg/utils"
)

// SalesPersonService manages sales person profiles
type SalesPersonService interface {
	CreateProfile(ctx context.Context, input *entities.CreateSalesPersonProfileInput) (*entities.SalesPersonProfile, error)
	List(ctx context.Context, p utils.PaginationParams) ([]*entities.SalesPersonView, utils.PaginationMeta, error)
	ListBlocked(ctx context.Context, p utils.PaginationParams) ([]*entities.SalesPersonView, utils.PaginationMeta, error)
	Get(ctx context.Context, profileID int64) (*entities.SalesPersonView, error)
	SelfProfile(ctx context.Context, userID int64) (*entities.SalesPersonView, error)
	TeamMembers(ctx context.Context, userID int64, p utils.PaginationParams) ([]*entities.SalesPersonView, utils.PaginationMeta, error)
	Update(ctx context.Context, profileID int64, patch *entities.SalesPersonPatch) (*entities.SalesPersonView, error)
	ResetPassword(ctx context.Context, profileID int64) error
}

// SalesPersonRegistrar registers sales persons
type SalesPersonRegistrar interface {
	RegisterSalesPerson(ctx context.Context, input *entities.RegisterUserInput) (*entities.User, error)
}

// SalesPersonBlocker toggles the blocked flag of sales persons
type SalesPersonBlocker interface {
	BlockSalesPerson(ctx context.Context, profileID int64) error
	UnblockSalesPerson(ctx context.Context, profileID int64) error
}

// SalesPersonHandler serves sales person management and self service
type SalesPersonHandler struct {
	salesPersons SalesPersonService
	registration SalesPersonRegistrar
	blocks       SalesPersonBlocker
}

// NewSalesPersonHandler creates a new sales person handler
func NewSalesPersonHandler(salesPersons SalesPersonService, registration SalesPersonRegistrar, blocks SalesPersonBlocker) *SalesPersonHandler {
	return &SalesPersonHandler{
		salesPersons: salesPersons,
		registration: registration,
		blocks:       blocks,
	}
}

// Register creates a sales person user and mails the generated password
// POST /api/v1/admin/register
func (h *SalesPersonHandler) Register(c *gin.Context) {
	var input entities.RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.InvalidInput("Invalid request body"))
		return
	}

	user, err := h.registration.RegisterSalesPerson(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

// CreateProfile creates the profile of a registered sales person
// POST /api/v1/admin/sales-persons
func (h *SalesPersonHandler) CreateProfile(c *gin.Context) {
	var input entities.CreateSalesPersonProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.InvalidInput("Invalid request body"))
		return
	}
	if input.UserID <= 0 {
		response.Error(c, domainerrors.InvalidInput("users_id is required"))
		return
	}

	profile, err := h.salesPersons.CreateProfile(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, profile)
}

// List lists unblocked sales persons
// GET /api/v1/admin/sales-persons
func (h *SalesPersonHandler) List(c *gin.Context) {
	p, err := paginationFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, meta, err := h.salesPersons.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, meta)
}

// ListBlocked lists blocked sales persons
// GET /api/v1/admin/sales-persons/blocked
func (h *SalesPersonHandler) ListBlocked(c *gin.Context) {
	p, err := paginationFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, meta, err := h.salesPersons.ListBlocked(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, meta)
}

// Get returns one sales person
// GET /api/v1/admin/sales-persons/:id
func (h *SalesPersonHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.salesPersons.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Update patches a sales person
// PUT /api/v1/admin/sales-persons/:id
func (h *SalesPersonHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch entities.SalesPersonPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, domainerrors.InvalidInput("Invalid request body"))
		return
	}

	view, err := h.salesPersons.Update(c.Request.Context(), id, &patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// ResetPassword issues and mails a new password
// POST /api/v1/admin/sales-persons/:id/reset-password
func (h *SalesPersonHandler) ResetPassword(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.salesPersons.ResetPassword(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Password reset, new password sent by mail")
}

// Block blocks a sales person
// PUT /api/v1/admin/sales-persons/:id/block
func (h *SalesPersonHandler) Block(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.blocks.BlockSalesPerson(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Sales person blocked")
}

// Unblock unblocks a sales person
// PUT /api/v1/admin/sales-persons/:id/unblock
func (h *SalesPersonHandler) Unblock(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.blocks.UnblockSalesPerson(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Sales person unblocked")
}

// SelfProfile returns the caller's sales person profile
// GET /api/v1/sales-person/profile
func (h *SalesPersonHandler) SelfProfile(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.salesPersons.SelfProfile(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// TeamMembers lists every other sales person
// GET /api/v1/sales-person/team-members
func (h *SalesPersonHandler) TeamMembers(c *gin.Context) {
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
	items, meta, err := h.salesPersons.TeamMembers(c.Request.Context(), user.ID, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, meta)
}
