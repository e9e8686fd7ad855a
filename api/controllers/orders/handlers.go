// Package orders exposes order placement and the customer- and staff-facing
// order reads and transitions.
package orders

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brewdeck/brewdeck-backend/api/middleware"
	"github.com/brewdeck/brewdeck-backend/api/responses"
	"github.com/brewdeck/brewdeck-backend/api/validators"
	internalorders "github.com/brewdeck/brewdeck-backend/internal/orders"
	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
	"github.com/brewdeck/brewdeck-backend/pkg/pagination"
)

type orderLineRequest struct {
	DrinkID         string            `json:"drinkId" validate:"required"`
	Quantity        int               `json:"quantity" validate:"required,min=1"`
	SelectedOptions map[string]string `json:"selectedOptions"`
	CustomName      string            `json:"customName"`
}

type placeOrderRequest struct {
	CustomerName  string             `json:"customerName" validate:"required"`
	Items         []orderLineRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string             `json:"paymentMethod" validate:"required"`
	PickupTime    *time.Time         `json:"pickupTime"`
	DiscountCode  string             `json:"discountCode"`
}

// OrderListView is one page of order history plus the next-page cursor.
type OrderListView struct {
	Orders     []internalorders.OrderView `json:"orders"`
	NextCursor *string                    `json:"nextCursor,omitempty"`
}

// Place creates an order from explicit lines. Pickup times in the future
// park the order as scheduled; everything else lands in the live queue.
func Place(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req placeOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := buildPlaceInput(r, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Place(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, internalorders.NewView(*order))
	}
}

// Get returns one order. Customers may only read their own.
func Get(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(r.Context()))
		if !role.IsStaff() {
			customerID := middleware.CustomerIDFromContext(r.Context())
			if order.CustomerID == nil || *order.CustomerID != customerID {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another customer"))
				return
			}
		}
		responses.WriteSuccess(w, internalorders.NewView(*order))
	}
}

// VerifyPayment confirms payment on a payment-required order and moves it
// into the live queue.
func VerifyPayment(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.VerifyPayment(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalorders.NewView(*order))
	}
}

// Complete marks an order done. Staff only.
func Complete(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return transition(svc.Complete, logg)
}

// Requeue puts a completed order back in the live queue. Staff only.
func Requeue(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return transition(svc.Requeue, logg)
}

// ToggleItem flips one line's completed flag; finishing every line
// completes the order. Staff only.
func ToggleItem(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}
		order, err := svc.ToggleItemCompletion(r.Context(), orderID, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalorders.NewView(*order))
	}
}

// Feed returns the most recent orders for the kitchen display. Staff only.
func Feed(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.Feed(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"orders": internalorders.NewViewList(orders)})
	}
}

// History returns a cursor-paginated order listing with optional status and
// free-text filters. Staff only.
func History(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		filters := internalorders.HistoryFilters{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status := enums.OrderStatus(raw)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status"))
				return
			}
			filters.Status = &status
		}

		list, err := svc.History(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, OrderListView{
			Orders:     internalorders.NewViewList(list.Orders),
			NextCursor: list.NextCursor,
		})
	}
}

func transition(op func(ctx context.Context, id uuid.UUID) (*models.Order, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := op(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalorders.NewView(*order))
	}
}

func buildPlaceInput(r *http.Request, req placeOrderRequest) (internalorders.PlaceOrderInput, error) {
	method := enums.PaymentMethod(strings.TrimSpace(req.PaymentMethod))
	if !method.IsValid() {
		return internalorders.PlaceOrderInput{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}

	input := internalorders.PlaceOrderInput{
		CustomerName:  req.CustomerName,
		CustomerID:    middleware.CustomerIDFromContext(r.Context()),
		Lines:         make([]internalorders.PlaceOrderLine, 0, len(req.Items)),
		PaymentMethod: method,
		PickupTime:    req.PickupTime,
		DiscountCode:  req.DiscountCode,
		ActorRole:     enums.UserRole(middleware.RoleFromContext(r.Context())),
	}
	if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
		if userID, err := uuid.Parse(raw); err == nil {
			input.AccountUserID = &userID
		}
	}
	for _, line := range req.Items {
		input.Lines = append(input.Lines, internalorders.PlaceOrderLine{
			DrinkID:         line.DrinkID,
			Quantity:        line.Quantity,
			SelectedOptions: line.SelectedOptions,
			CustomName:      line.CustomName,
		})
	}
	return input, nil
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "orderId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id")
	}
	return id, nil
}
