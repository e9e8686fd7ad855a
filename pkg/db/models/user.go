package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

// User is a named account. Sign-in is by display name only; anonymous
// customers order without a row here.
type User struct {
	ID                   uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                 string           `gorm:"column:name;type:text;not null;uniqueIndex"`
	Role                 enums.UserRole   `gorm:"column:role;type:text;not null;default:'customer'"`
	Favourites           types.OrderItems `gorm:"column:favourites;type:jsonb;serializer:json"`
	LoyaltyPoints        int              `gorm:"column:loyalty_points;not null;default:0"`
	HasCompletedTutorial bool             `gorm:"column:has_completed_tutorial;not null;default:false"`
	CreatedAt            time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeSave keeps favourites a JSON array; the column rejects NULL.
func (u *User) BeforeSave(*gorm.DB) error {
	if u.Favourites == nil {
		u.Favourites = types.OrderItems{}
	}
	return nil
}
