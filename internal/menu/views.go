package menu

import (
	"github.com/shopspring/decimal"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

// CategoryView is the JSON shape of a menu category.
type CategoryView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ModifierGroupView is the JSON shape of a modifier group.
type ModifierGroupView struct {
	ID      string                `json:"id"`
	Name    string                `json:"name"`
	Options types.ModifierOptions `json:"options"`
}

// DrinkView is the JSON shape of a menu drink.
type DrinkView struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	CategoryID     string           `json:"categoryId"`
	BasePrice      decimal.Decimal  `json:"basePrice"`
	BaseCost       decimal.Decimal  `json:"baseCost"`
	ImageURL       string           `json:"imageUrl,omitempty"`
	Description    string           `json:"description,omitempty"`
	ModifierGroups types.StringList `json:"modifierGroups"`
}

// SnapshotView is the full catalog as a wire payload.
type SnapshotView struct {
	Drinks         []DrinkView         `json:"drinks"`
	Categories     []CategoryView      `json:"categories"`
	ModifierGroups []ModifierGroupView `json:"modifierGroups"`
}

// NewCategoryView maps a stored category onto its wire shape.
func NewCategoryView(category models.Category) CategoryView {
	return CategoryView{
		ID:   category.ID,
		Name: category.Name,
	}
}

// NewDrinkView maps a stored drink onto its wire shape.
func NewDrinkView(drink models.Drink) DrinkView {
	view := DrinkView{
		ID:             drink.ID,
		Name:           drink.Name,
		CategoryID:     drink.CategoryID,
		BasePrice:      drink.BasePrice,
		BaseCost:       drink.BaseCost,
		ImageURL:       drink.ImageURL,
		Description:    drink.Description,
		ModifierGroups: drink.ModifierGroups,
	}
	if view.ModifierGroups == nil {
		view.ModifierGroups = types.StringList{}
	}
	return view
}

// NewModifierGroupView maps a stored modifier group onto its wire shape.
func NewModifierGroupView(group models.ModifierGroup) ModifierGroupView {
	view := ModifierGroupView{ID: group.ID, Name: group.Name, Options: group.Options}
	if view.Options == nil {
		view.Options = types.ModifierOptions{}
	}
	return view
}

// NewSnapshotView maps a catalog snapshot onto its wire shape.
func NewSnapshotView(snapshot Snapshot) SnapshotView {
	view := SnapshotView{
		Drinks:         make([]DrinkView, 0, len(snapshot.Drinks)),
		Categories:     make([]CategoryView, 0, len(snapshot.Categories)),
		ModifierGroups: make([]ModifierGroupView, 0, len(snapshot.ModifierGroups)),
	}
	for _, drink := range snapshot.Drinks {
		view.Drinks = append(view.Drinks, NewDrinkView(drink))
	}
	for _, category := range snapshot.Categories {
		view.Categories = append(view.Categories, CategoryView{ID: category.ID, Name: category.Name})
	}
	for _, group := range snapshot.ModifierGroups {
		view.ModifierGroups = append(view.ModifierGroups, NewModifierGroupView(group))
	}
	return view
}
