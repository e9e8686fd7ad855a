package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

// ModifierGroup is a named set of options a drink can reference, for example
// milk choices or syrup shots.
type ModifierGroup struct {
	ID        string                `gorm:"column:id;type:text;primaryKey"`
	Name      string                `gorm:"column:name;not null"`
	Options   types.ModifierOptions `gorm:"column:options;type:jsonb;serializer:json"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeSave keeps options a JSON array; the column rejects NULL.
func (g *ModifierGroup) BeforeSave(*gorm.DB) error {
	if g.Options == nil {
		g.Options = types.ModifierOptions{}
	}
	return nil
}
