package domain

import "fmt"

// Role tags the side of the marketplace a connection or actor belongs to.
type Role string

// List of marketplace roles
const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "restaurant_owner"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
)

var allowedRoles = [...]Role{RoleCustomer, RoleOwner, RoleDriver, RoleAdmin}

// Valid checks if the Role is valid
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Identity is an authenticated actor.
type Identity struct {
	Role Role  `json:"role"`
	ID   int64 `json:"id"`
}

// Valid reports whether the identity has a known role and a positive id.
func (i Identity) Valid() bool {
	return i.Role.Valid() && i.ID > 0
}

func (i Identity) String() string {
	return fmt.Sprintf("%s:%d", i.Role, i.ID)
}
