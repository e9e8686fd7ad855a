package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

// Discount is a redeemable code. Percentage values are whole percents,
// fixed values are currency amounts.
type Discount struct {
	ID        string             `gorm:"column:id;type:text;primaryKey"`
	Code      string             `gorm:"column:code;type:text;not null;uniqueIndex"`
	Type      enums.DiscountType `gorm:"column:type;type:text;not null"`
	Value     decimal.Decimal    `gorm:"column:value;type:numeric(10,2);not null"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// Snapshot produces the value-copy stored on orders at apply time.
func (d Discount) Snapshot() types.DiscountSnapshot {
	return types.DiscountSnapshot{
		ID:    d.ID,
		Code:  d.Code,
		Type:  d.Type.String(),
		Value: d.Value,
	}
}
