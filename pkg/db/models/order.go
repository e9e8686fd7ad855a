package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

// Order is a placed ticket. Lines, pricing and any applied discount are
// embedded snapshots taken at placement time.
type Order struct {
	ID            uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName  string                  `gorm:"column:customer_name;not null"`
	CustomerID    *string                 `gorm:"column:customer_id;type:text"`
	Items         types.OrderItems        `gorm:"column:items;type:jsonb;serializer:json;not null"`
	Total         decimal.Decimal         `gorm:"column:total;type:numeric(10,2);not null"`
	TotalCost     decimal.Decimal         `gorm:"column:total_cost;type:numeric(10,2);not null"`
	Discount      *types.DiscountSnapshot `gorm:"column:discount;type:jsonb;serializer:json"`
	FinalTotal    decimal.Decimal         `gorm:"column:final_total;type:numeric(10,2);not null"`
	PaymentMethod enums.PaymentMethod     `gorm:"column:payment_method;type:text;not null"`
	Status        enums.OrderStatus       `gorm:"column:status;type:text;not null;default:'pending'"`
	PickupTime    *time.Time              `gorm:"column:pickup_time"`
	CompletedAt   *time.Time              `gorm:"column:completed_at"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
