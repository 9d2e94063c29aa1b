package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"crm-admin.backend/internal/domain/entities"
	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/internal/interfaces/http/middleware"
	"crm-admin.backend/pkg/utils"
)

func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.InvalidInput("Invalid " + name)
	}
	return id, nil
}

func paginationFromQuery(c *gin.Context) (utils.PaginationParams, error) {
	var p utils.PaginationParams
	if err := c.ShouldBindQuery(&p); err != nil {
		return p, domainerrors.InvalidInput("skip and limit must be integers")
	}
	return utils.GetPaginationParams(p.Skip, p.Limit), nil
}

func currentUser(c *gin.Context) (*entities.User, error) {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return nil, domainerrors.Unauthenticated("Not authenticated")
	}
	return user, nil
}
