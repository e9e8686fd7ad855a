// Package menu exposes the catalog: the public snapshot read and the
// admin-side drink, category, and modifier group management.
package menu

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/brewdeck/brewdeck-backend/api/responses"
	"github.com/brewdeck/brewdeck-backend/api/validators"
	internalmenu "github.com/brewdeck/brewdeck-backend/internal/menu"
	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

type drinkRequest struct {
	ID             string           `json:"id"`
	Name           string           `json:"name" validate:"required"`
	CategoryID     string           `json:"categoryId" validate:"required"`
	BasePrice      decimal.Decimal  `json:"basePrice"`
	BaseCost       decimal.Decimal  `json:"baseCost"`
	ImageURL       string           `json:"imageUrl"`
	Description    string           `json:"description"`
	ModifierGroups types.StringList `json:"modifierGroups"`
}

type categoryRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
}

type modifierGroupRequest struct {
	ID      string                `json:"id"`
	Name    string                `json:"name" validate:"required"`
	Options types.ModifierOptions `json:"options" validate:"required,min=1"`
}

type snapshotRequest struct {
	Drinks         []drinkRequest         `json:"drinks"`
	Categories     []categoryRequest      `json:"categories"`
	ModifierGroups []modifierGroupRequest `json:"modifierGroups"`
}

// GetSnapshot returns the whole catalog in one payload.
func GetSnapshot(svc internalmenu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := svc.GetSnapshot(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalmenu.NewSnapshotView(*snapshot))
	}
}

// ReplaceSnapshot swaps the entire catalog atomically. Admin only.
func ReplaceSnapshot(svc internalmenu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req snapshotRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot := internalmenu.Snapshot{
			Drinks:         make([]models.Drink, 0, len(req.Drinks)),
			Categories:     make([]models.Category, 0, len(req.Categories)),
			ModifierGroups: make([]models.ModifierGroup, 0, len(req.ModifierGroups)),
		}
		for _, drink := range req.Drinks {
			snapshot.Drinks = append(snapshot.Drinks, drink.toModel())
		}
		for _, category := range req.Categories {
			snapshot.Categories = append(snapshot.Categories, category.toModel())
		}
		for _, group := range req.ModifierGroups {
			snapshot.ModifierGroups = append(snapshot.ModifierGroups, group.toModel())
		}

		if err := svc.ReplaceSnapshot(r.Context(), snapshot); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stored, err := svc.GetSnapshot(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalmenu.NewSnapshotView(*stored))
	}
}

// CreateDrink adds a drink to the catalog. Admin only.
func CreateDrink(svc internalmenu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req drinkRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		drink, err := svc.CreateDrink(r.Context(), req.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, internalmenu.NewDrinkView(*drink))
	}
}

// UpdateDrink rewrites a drink in place. Admin only.
func UpdateDrink(svc internalmenu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "drinkId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req drinkRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model := req.toModel()
		model.ID = id
		drink, err := svc.UpdateDrink(r.Context(), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalmenu.NewDrinkView(*drink))
	}
}

// DeleteDrink removes a drink. Admin only.
func DeleteDrink(svc internalmenu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "drinkId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteDrink(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CreateCategory adds a category. Admin only.
func CreateCategory(svc internalmenu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.CreateCategory(r.Context(), req.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, internalmenu.NewCategoryView(*category))
	}
}

// UpdateCategory renames a category. Admin only.
func UpdateCategory(svc internalmenu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req categoryRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model := req.toModel()
		model.ID = id
		category, err := svc.UpdateCategory(r.Context(), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalmenu.NewCategoryView(*category))
	}
}

// DeleteCategory removes a category; the service refuses while drinks still
// reference it. Admin only.
func DeleteCategory(svc internalmenu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// CreateModifierGroup adds a modifier group. Admin only.
func CreateModifierGroup(svc internalmenu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req modifierGroupRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		group, err := svc.CreateModifierGroup(r.Context(), req.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, internalmenu.NewModifierGroupView(*group))
	}
}

// UpdateModifierGroup rewrites a modifier group in place. Admin only.
func UpdateModifierGroup(svc internalmenu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "groupId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req modifierGroupRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model := req.toModel()
		model.ID = id
		group, err := svc.UpdateModifierGroup(r.Context(), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalmenu.NewModifierGroupView(*group))
	}
}

// DeleteModifierGroup removes a modifier group; the service refuses while
// drinks still reference it. Admin only.
func DeleteModifierGroup(svc internalmenu.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "groupId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteModifierGroup(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func (req drinkRequest) toModel() models.Drink {
	return models.Drink{
		ID:             strings.TrimSpace(req.ID),
		Name:           req.Name,
		CategoryID:     req.CategoryID,
		BasePrice:      req.BasePrice,
		BaseCost:       req.BaseCost,
		ImageURL:       req.ImageURL,
		Description:    req.Description,
		ModifierGroups: req.ModifierGroups,
	}
}

func (req categoryRequest) toModel() models.Category {
	return models.Category{
		ID:   strings.TrimSpace(req.ID),
		Name: req.Name,
	}
}

func (req modifierGroupRequest) toModel() models.ModifierGroup {
	return models.ModifierGroup{
		ID:      strings.TrimSpace(req.ID),
		Name:    req.Name,
		Options: req.Options,
	}
}

func pathID(r *http.Request, param string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, param))
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, param+" is required")
	}
	return id, nil
}
