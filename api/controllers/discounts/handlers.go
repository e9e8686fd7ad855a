// Package discounts exposes the admin-managed discount codes and the
// customer-facing code lookup.
package discounts

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/brewdeck/brewdeck-backend/api/responses"
	"github.com/brewdeck/brewdeck-backend/api/validators"
	internaldiscounts "github.com/brewdeck/brewdeck-backend/internal/discounts"
	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

type discountRequest struct {
	ID    string          `json:"id"`
	Code  string          `json:"code" validate:"required"`
	Type  string          `json:"type" validate:"required"`
	Value decimal.Decimal `json:"value"`
}

type applyCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// List returns every discount code. Admin only.
func List(svc internaldiscounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discounts, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internaldiscounts.NewViewList(discounts))
	}
}

// Create adds a discount code. Admin only.
func Create(svc internaldiscounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req discountRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := req.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		discount, err := svc.Create(r.Context(), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, internaldiscounts.NewView(*discount))
	}
}

// Update rewrites a discount code in place. Admin only.
func Update(svc internaldiscounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "discountId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "discount id is required"))
			return
		}
		var req discountRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := req.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model.ID = id
		discount, err := svc.Update(r.Context(), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internaldiscounts.NewView(*discount))
	}
}

// Delete removes a discount code. Admin only.
func Delete(svc internaldiscounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "discountId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "discount id is required"))
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ApplyCode resolves a code to the snapshot an order would store, so the
// client can preview the discounted total before placing.
func ApplyCode(svc internaldiscounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req applyCodeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snapshot, err := svc.ApplyCode(r.Context(), req.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

func (req discountRequest) toModel() (models.Discount, error) {
	kind := enums.DiscountType(strings.TrimSpace(req.Type))
	if !kind.IsValid() {
		return models.Discount{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown discount type")
	}
	if req.Value.IsNegative() {
		return models.Discount{}, pkgerrors.New(pkgerrors.CodeValidation, "discount value must not be negative")
	}
	return models.Discount{
		ID:    strings.TrimSpace(req.ID),
		Code:  req.Code,
		Type:  kind,
		Value: req.Value,
	}, nil
}
