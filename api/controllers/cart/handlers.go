// Package cart exposes the per-session working cart and its checkout into a
// real order.
package cart

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brewdeck/brewdeck-backend/api/middleware"
	"github.com/brewdeck/brewdeck-backend/api/responses"
	"github.com/brewdeck/brewdeck-backend/api/validators"
	internalcart "github.com/brewdeck/brewdeck-backend/internal/cart"
	internalorders "github.com/brewdeck/brewdeck-backend/internal/orders"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

type lineRequest struct {
	DrinkID         string            `json:"drinkId" validate:"required"`
	Quantity        int               `json:"quantity" validate:"required,min=1"`
	SelectedOptions map[string]string `json:"selectedOptions"`
	CustomName      string            `json:"customName"`
}

type checkoutRequest struct {
	CustomerName  string     `json:"customerName" validate:"required"`
	PaymentMethod string     `json:"paymentMethod" validate:"required"`
	PickupTime    *time.Time `json:"pickupTime"`
	DiscountCode  string     `json:"discountCode"`
}

type cartView struct {
	Items types.OrderItems `json:"items"`
}

// Get returns the session's cart.
func Get(svc internalcart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := requireCustomerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.Get(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(items))
	}
}

// AddLine prices a drink configuration and appends it to the cart.
func AddLine(svc internalcart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := requireCustomerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req lineRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.AddLine(r.Context(), customerID, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartView(items))
	}
}

// UpdateLine reprices and replaces one cart line in place.
func UpdateLine(svc internalcart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := requireCustomerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lineID, err := parseLineID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req lineRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.UpdateLine(r.Context(), customerID, lineID, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(items))
	}
}

// RemoveLine drops one line from the cart.
func RemoveLine(svc internalcart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := requireCustomerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		lineID, err := parseLineID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.RemoveLine(r.Context(), customerID, lineID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(items))
	}
}

// Clear empties the cart.
func Clear(svc internalcart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := requireCustomerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Clear(r.Context(), customerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(nil))
	}
}

// Checkout turns the cart into an order. Lines are re-resolved against the
// live catalog; the cart's stored prices are display-only. The cart clears
// only after the order lands.
func Checkout(carts internalcart.Service, orders internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := requireCustomerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		method := enums.PaymentMethod(strings.TrimSpace(req.PaymentMethod))
		if !method.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method"))
			return
		}

		items, err := carts.Get(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(items) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
			return
		}

		input := internalorders.PlaceOrderInput{
			CustomerName:  req.CustomerName,
			CustomerID:    customerID,
			Lines:         linesFromItems(items),
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

		order, err := orders.Place(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := carts.Clear(r.Context(), customerID); err != nil {
			// The order exists; a stale cart is the lesser failure.
			logg.Error(r.Context(), "clear cart after checkout", err)
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, internalorders.NewView(*order))
	}
}

func (req lineRequest) toInput() internalcart.AddLineInput {
	return internalcart.AddLineInput{
		DrinkID:         req.DrinkID,
		Quantity:        req.Quantity,
		SelectedOptions: req.SelectedOptions,
		CustomName:      req.CustomName,
	}
}

func linesFromItems(items types.OrderItems) []internalorders.PlaceOrderLine {
	lines := make([]internalorders.PlaceOrderLine, 0, len(items))
	for _, item := range items {
		selected := make(map[string]string, len(item.SelectedModifiers))
		for groupID, sel := range item.SelectedModifiers {
			selected[groupID] = sel.OptionID
		}
		lines = append(lines, internalorders.PlaceOrderLine{
			DrinkID:         item.Drink.ID,
			Quantity:        item.Quantity,
			SelectedOptions: selected,
			CustomName:      item.CustomName,
		})
	}
	return lines
}

func newCartView(items types.OrderItems) cartView {
	if items == nil {
		items = types.OrderItems{}
	}
	return cartView{Items: items}
}

func requireCustomerID(r *http.Request) (string, error) {
	customerID := strings.TrimSpace(middleware.CustomerIDFromContext(r.Context()))
	if customerID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "session required")
	}
	return customerID, nil
}

func parseLineID(r *http.Request) (string, error) {
	lineID := strings.TrimSpace(chi.URLParam(r, "lineId"))
	if lineID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "line id is required")
	}
	return lineID, nil
}
