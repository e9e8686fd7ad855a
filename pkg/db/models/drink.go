package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

// Drink is a menu catalog entry. Placed orders embed a snapshot copy, so a
// drink row may be edited or deleted without touching order history.
type Drink struct {
	ID             string           `gorm:"column:id;type:text;primaryKey"`
	Name           string           `gorm:"column:name;not null"`
	CategoryID     string           `gorm:"column:category_id;type:text;not null"`
	BasePrice      decimal.Decimal  `gorm:"column:base_price;type:numeric(10,2);not null"`
	BaseCost       decimal.Decimal  `gorm:"column:base_cost;type:numeric(10,2);not null"`
	ImageURL       string           `gorm:"column:image_url"`
	Description    string           `gorm:"column:description"`
	ModifierGroups types.StringList `gorm:"column:modifier_groups;type:jsonb;serializer:json"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeSave keeps modifier_groups a JSON array; the column rejects NULL.
func (d *Drink) BeforeSave(*gorm.DB) error {
	if d.ModifierGroups == nil {
		d.ModifierGroups = types.StringList{}
	}
	return nil
}

// Snapshot produces the immutable value-copy embedded into order lines.
func (d Drink) Snapshot() types.DrinkSnapshot {
	return types.DrinkSnapshot{
		ID:          d.ID,
		Name:        d.Name,
		CategoryID:  d.CategoryID,
		BasePrice:   d.BasePrice,
		BaseCost:    d.BaseCost,
		ImageURL:    d.ImageURL,
		Description: d.Description,
	}
}
