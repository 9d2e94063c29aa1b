package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/interfaces/http/response"
	"crm-admin.backend/pkg/jwt"
)

// AuthService is the authentication surface used by AuthHandler
type AuthService interface {
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	Logout(ctx context.Context, user *entities.User) error
	RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase AuthService) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Login handles user login for the role given in the query
// POST /api/v1/user_email_login?role=N
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.InvalidInput("email and password are required"))
		return
	}

	role, err := strconv.ParseInt(c.Query("role"), 10, 64)
	if err != nil {
		response.Error(c, domainerrors.InvalidInput("role query parameter is required"))
		return
	}
	input.Role = entities.RoleID(role)

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, authResponse)
}

// Logout handles user logout
// POST /api/v1/user/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.authUsecase.Logout(c.Request.Context(), user); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Logged out successfully")
}

// RefreshToken issues a new token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.InvalidInput("refresh_token is required"))
		return
	}

	pair, err := h.authUsecase.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, pair)
}
