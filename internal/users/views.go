package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

// UserView is the JSON shape accounts take on the wire.
type UserView struct {
	ID                   uuid.UUID        `json:"id"`
	Name                 string           `json:"name"`
	Role                 enums.UserRole   `json:"role"`
	Favourites           types.OrderItems `json:"favourites"`
	LoyaltyPoints        int              `json:"loyaltyPoints"`
	HasCompletedTutorial bool             `json:"hasCompletedTutorial"`
	CreatedAt            time.Time        `json:"createdAt"`
}

// NewView maps a stored account onto its wire shape.
func NewView(user models.User) UserView {
	view := UserView{
		ID:                   user.ID,
		Name:                 user.Name,
		Role:                 user.Role,
		Favourites:           user.Favourites,
		LoyaltyPoints:        user.LoyaltyPoints,
		HasCompletedTutorial: user.HasCompletedTutorial,
		CreatedAt:            user.CreatedAt,
	}
	if view.Favourites == nil {
		view.Favourites = types.OrderItems{}
	}
	return view
}

// NewViewList maps stored accounts onto their wire shape, preserving order.
func NewViewList(users []models.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, NewView(user))
	}
	return views
}
