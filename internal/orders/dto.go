package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
)

// PlaceOrderLine is one cart line as submitted at checkout. Selections map
// modifier group id to the chosen option id; pricing is resolved server-side
// from the live menu, never trusted from the client.
type PlaceOrderLine struct {
	DrinkID         string
	Quantity        int
	SelectedOptions map[string]string
	CustomName      string
}

// PlaceOrderInput carries everything needed to turn a cart into an order.
type PlaceOrderInput struct {
	CustomerName  string
	CustomerID    string
	AccountUserID *uuid.UUID
	Lines         []PlaceOrderLine
	PaymentMethod enums.PaymentMethod
	PickupTime    *time.Time
	DiscountCode  string
	ActorRole     enums.UserRole
}

// HistoryFilters narrows the paginated order listing.
type HistoryFilters struct {
	Status *enums.OrderStatus
	// Search matches customer name substrings, order id suffixes, and
	// drink names, case-insensitively.
	Search string
}

// OrderList is one page of orders plus the cursor for the next page.
type OrderList struct {
	Orders     []models.Order
	NextCursor *string
}
