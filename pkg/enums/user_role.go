package enums

import "fmt"

// UserRole controls which surfaces of the app an account can reach.
type UserRole string

const (
	UserRoleCustomer     UserRole = "customer"
	UserRoleKitchenStaff UserRole = "kitchen_staff"
	UserRoleAdmin        UserRole = "administrator"
)

var validUserRoles = []UserRole{
	UserRoleCustomer,
	UserRoleKitchenStaff,
	UserRoleAdmin,
}

// String implements fmt.Stringer.
func (u UserRole) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role may operate the kitchen display.
func (u UserRole) IsStaff() bool {
	return u == UserRoleKitchenStaff || u == UserRoleAdmin
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
