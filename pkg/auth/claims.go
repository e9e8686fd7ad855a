package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/brewdeck/brewdeck-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
// CustomerID identifies the device session and is always present; UserID is
// only set once the session is signed in to an account.
type AccessTokenPayload struct {
	CustomerID string
	UserID     *uuid.UUID
	Name       string
	Role       enums.UserRole
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	CustomerID string         `json:"customer_id"`
	UserID     *uuid.UUID     `json:"user_id,omitempty"`
	Name       string         `json:"name,omitempty"`
	Role       enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// IsStaff reports whether the claims carry a kitchen or admin role.
func (c *AccessTokenClaims) IsStaff() bool {
	return c.Role.IsStaff()
}
