package discounts

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
)

// DiscountView is the JSON shape discount codes take on the wire.
type DiscountView struct {
	ID        string             `json:"id"`
	Code      string             `json:"code"`
	Type      enums.DiscountType `json:"type"`
	Value     decimal.Decimal    `json:"value"`
	CreatedAt time.Time          `json:"createdAt"`
}

// NewView maps a stored discount onto its wire shape.
func NewView(discount models.Discount) DiscountView {
	return DiscountView{
		ID:        discount.ID,
		Code:      discount.Code,
		Type:      discount.Type,
		Value:     discount.Value,
		CreatedAt: discount.CreatedAt,
	}
}

// NewViewList maps stored discounts onto their wire shape, preserving order.
func NewViewList(discounts []models.Discount) []DiscountView {
	views := make([]DiscountView, 0, len(discounts))
	for _, discount := range discounts {
		views = append(views, NewView(discount))
	}
	return views
}
