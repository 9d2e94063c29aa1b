package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleID(t *testing.T) {
	assert.True(t, RoleSuperAdmin.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleSalesPerson.IsValid())
	assert.False(t, RoleID(3).IsValid())
	assert.False(t, RoleID(0).IsValid())

	assert.Equal(t, "super_admin", RoleSuperAdmin.String())
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "sales_person", RoleSalesPerson.String())
	assert.Equal(t, "unknown", RoleID(4).String())
	assert.Equal(t, "Sales person", RoleSalesPerson.Description())
	assert.Empty(t, RoleID(9).Description())
}

func TestRoleIn(t *testing.T) {
	assert.True(t, RoleIn(RoleAdmin, RoleSuperAdmin, RoleAdmin))
	assert.False(t, RoleIn(RoleSalesPerson, RoleSuperAdmin, RoleAdmin))
	assert.False(t, RoleIn(RoleAdmin))
}
