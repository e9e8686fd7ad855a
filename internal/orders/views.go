package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

// OrderView is the JSON shape orders take on the wire. The REST responses
// and the SSE change feed share it.
type OrderView struct {
	ID            uuid.UUID               `json:"id"`
	CustomerName  string                  `json:"customerName"`
	CustomerID    string                  `json:"customerId,omitempty"`
	Items         types.OrderItems        `json:"items"`
	Total         decimal.Decimal         `json:"total"`
	Discount      *types.DiscountSnapshot `json:"discount,omitempty"`
	FinalTotal    decimal.Decimal         `json:"finalTotal"`
	PaymentMethod enums.PaymentMethod     `json:"paymentMethod"`
	Status        enums.OrderStatus       `json:"status"`
	PickupTime    *time.Time              `json:"pickupTime,omitempty"`
	CompletedAt   *time.Time              `json:"completedAt,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
}

// NewView maps a stored order onto its wire shape.
func NewView(order models.Order) OrderView {
	view := OrderView{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		Items:         order.Items,
		Total:         order.Total,
		Discount:      order.Discount,
		FinalTotal:    order.FinalTotal,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		PickupTime:    order.PickupTime,
		CompletedAt:   order.CompletedAt,
		CreatedAt:     order.CreatedAt,
	}
	if order.CustomerID != nil {
		view.CustomerID = *order.CustomerID
	}
	if view.Items == nil {
		view.Items = types.OrderItems{}
	}
	return view
}

// NewViewList maps stored orders onto their wire shape, preserving order.
func NewViewList(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, NewView(order))
	}
	return views
}
