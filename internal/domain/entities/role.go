package entities

import "time"

// RoleID is the closed set of role tiers
type RoleID int64

const (
	RoleSuperAdmin  RoleID = 1
	RoleAdmin       RoleID = 2
	RoleSalesPerson RoleID = 6
)

// AllRoles lists every known role in seed order
var AllRoles = []RoleID{RoleSuperAdmin, RoleAdmin, RoleSalesPerson}

// IsValid reports whether r is a known role
func (r RoleID) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleSalesPerson:
		return true
	}
	return false
}

func (r RoleID) String() string {
	switch r {
	case RoleSuperAdmin:
		return "super_admin"
	case RoleAdmin:
		return "admin"
	case RoleSalesPerson:
		return "sales_person"
	}
	return "unknown"
}

// Description is the seeded role description
func (r RoleID) Description() string {
	switch r {
	case RoleSuperAdmin:
		return "Super admin"
	case RoleAdmin:
		return "Admin"
	case RoleSalesPerson:
		return "Sales person"
	}
	return ""
}

// RoleIn reports whether r is one of roles
func RoleIn(r RoleID, roles ...RoleID) bool {
	for _, candidate := range roles {
		if candidate == r {
			return true
		}
	}
	return false
}

// Role is static reference data
type Role struct {
	ID          RoleID `json:"id"`
	Role        string `json:"role"`
	Description string `json:"description"`
}

// UserRole assigns one role to one user
type UserRole struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"users_id"`
	RoleID    RoleID    `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
}
