package types

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DrinkSnapshot is the value-copy of a menu drink embedded in an order line.
// Orders keep the copy so later menu edits never rewrite history.
type DrinkSnapshot struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CategoryID  string          `json:"categoryId"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	BaseCost    decimal.Decimal `json:"baseCost"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ModifierSelection is the chosen option for one modifier group.
type ModifierSelection struct {
	OptionID string          `json:"optionId"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
}

// OrderItem is one line of a cart or a placed order. Once embedded in an
// order it is immutable apart from the kitchen completion flag.
type OrderItem struct {
	ID string `json:"id"`
	// Drink is a snapshot, not a live menu reference.
	Drink             DrinkSnapshot                `json:"drink"`
	Quantity          int                          `json:"quantity"`
	SelectedModifiers map[string]ModifierSelection `json:"selectedModifiers"`
	FinalPrice        decimal.Decimal              `json:"finalPrice"`
	CustomName        string                       `json:"customName,omitempty"`
	Completed         bool                         `json:"completed"`
}

// VariationKey returns the canonical key for this line's modifier
// combination: the selected option ids, sorted and joined.
func (i OrderItem) VariationKey() string {
	ids := make([]string, 0, len(i.SelectedModifiers))
	for _, sel := range i.SelectedModifiers {
		ids = append(ids, sel.OptionID)
	}
	sort.Strings(ids)
	key := ""
	for n, id := range ids {
		if n > 0 {
			key += "_"
		}
		key += id
	}
	return key
}

// OrderItems is the jsonb column holding an order's line snapshots.
type OrderItems []OrderItem

// TotalUnits sums the drink units across all lines.
func (items OrderItems) TotalUnits() int {
	units := 0
	for _, item := range items {
		units += item.Quantity
	}
	return units
}

// AllCompleted reports whether every line has been marked done in the kitchen.
func (items OrderItems) AllCompleted() bool {
	for _, item := range items {
		if !item.Completed {
			return false
		}
	}
	return len(items) > 0
}

// DiscountSnapshot is the value-copy of a discount stored on an order at the
// moment it was applied. Deleting the discount later leaves history intact.
type DiscountSnapshot struct {
	ID    string          `json:"id"`
	Code  string          `json:"code"`
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// StringList is a jsonb-backed ordered list of ids.
type StringList []string

// Contains reports whether the list holds the given id.
func (l StringList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with the given id removed.
func (l StringList) Without(id string) StringList {
	out := make(StringList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
