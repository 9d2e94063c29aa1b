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

// AdminService reads and updates admin profiles
type AdminService interface {
	List(ctx context.Context, p utils.PaginationParams) ([]*entities.AdminView, utils.PaginationMeta, error)
	ListBlocked(ctx context.Context, p utils.PaginationParams) ([]*entities.AdminView, utils.PaginationMeta, error)
	Get(ctx context.Context, profileID int64) (*entities.AdminView, error)
	SelfProfile(ctx context.Context, userID int64) (*entities.AdminView, error)
	Update(ctx context.Context, profileID int64, patch *entities.AdminProfilePatch) (*entities.AdminView, error)
}

// AdminRegistrar registers admins
type AdminRegistrar interface {
	RegisterAdmin(ctx context.Context, input *entities.RegisterAdminInput) (*entities.User, *entities.AdminProfile, error)
}

// AdminBlocker toggles the blocked flag of admins
type AdminBlocker interface {
	BlockAdmin(ctx context.Context, profileID int64) error
	UnblockAdmin(ctx context.Context, profileID int64) error
}

// AdminHandler serves admin management for super admins and the admin self profile
type AdminHandler struct {
	admins       AdminService
	registration AdminRegistrar
	blocks       AdminBlocker
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admins AdminService, registration AdminRegistrar, blocks AdminBlocker) *AdminHandler {
	return &AdminHandler{
		admins:       admins,
		registration: registration,
		blocks:       blocks,
	}
}

type registeredAdmin struct {
	User    *entities.User         `json:"user"`
	Profile *entities.AdminProfile `json:"profile"`
}

// RegisterAdmin creates an admin with its profile
// POST /api/v1/super-admin/admins
func (h *AdminHandler) RegisterAdmin(c *gin.Context) {
	var input entities.RegisterAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.InvalidInput("Invalid request body"))
		return
	}

	user, profile, err := h.registration.RegisterAdmin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, registeredAdmin{User: user, Profile: profile})
}

// ListAdmins lists unblocked admins
// GET /api/v1/super-admin/admins
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	h.list(c, h.admins.List)
}

// ListBlockedAdmins lists blocked admins
// GET /api/v1/super-admin/admins/blocked
func (h *AdminHandler) ListBlockedAdmins(c *gin.Context) {
	h.list(c, h.admins.ListBlocked)
}

func (h *AdminHandler) list(c *gin.Context, fetch func(context.Context, utils.PaginationParams) ([]*entities.AdminView, utils.PaginationMeta, error)) {
	p, err := paginationFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, meta, err := fetch(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, meta)
}

// GetAdmin returns one admin profile
// GET /api/v1/super-admin/admins/:admin_id
func (h *AdminHandler) GetAdmin(c *gin.Context) {
	id, err := parseIDParam(c, "admin_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.admins.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// UpdateAdmin patches an admin profile
// PUT /api/v1/super-admin/admins/:admin_id
func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	id, err := parseIDParam(c, "admin_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch entities.AdminProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, domainerrors.InvalidInput("Invalid request body"))
		return
	}

	view, err := h.admins.Update(c.Request.Context(), id, &patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// BlockAdmin blocks an admin
// PUT /api/v1/super-admin/admins/:admin_id/block
func (h *AdminHandler) BlockAdmin(c *gin.Context) {
	h.toggle(c, h.blocks.BlockAdmin, "Admin blocked")
}

// UnblockAdmin unblocks an admin
// PUT /api/v1/super-admin/admins/:admin_id/unblock
func (h *AdminHandler) UnblockAdmin(c *gin.Context) {
	h.toggle(c, h.blocks.UnblockAdmin, "Admin unblocked")
}

func (h *AdminHandler) toggle(c *gin.Context, apply func(context.Context, int64) error, done string) {
	id, err := parseIDParam(c, "admin_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := apply(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, done)
}

// SelfProfile returns the caller's admin profile
// GET /api/v1/admin/profile
func (h *AdminHandler) SelfProfile(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.admins.SelfProfile(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}
