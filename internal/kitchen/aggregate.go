package kitchen

import (
	"sort"
	"strings"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

// Contributor is one order's share of an aggregated prep group.
type Contributor struct {
	OrderID      string
	CustomerName string
	Quantity     int
}

// ItemGroup is one (drink, modifier combination) prep line aggregated across
// every queued order.
type ItemGroup struct {
	DrinkID      string
	DrinkName    string
	VariationKey string
	Selections   []types.ModifierSelection
	Quantity     int
	Contributors []Contributor
}

// Variation is one modifier combination's share within a drink type group.
type Variation struct {
	VariationKey string
	Selections   []types.ModifierSelection
	Quantity     int
}

// TypeGroup aggregates a drink across all its modifier combinations.
type TypeGroup struct {
	DrinkID    string
	DrinkName  string
	Total      int
	Variations []Variation
}

// Filter returns the orders matching a free-text search term: customer name
// substring, order id suffix, or drink name substring, case-insensitively.
// An empty term matches everything.
func Filter(orders []models.Order, term string) []models.Order {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return orders
	}

	out := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if matches(order, term) {
			out = append(out, order)
		}
	}
	return out
}

func matches(order models.Order, term string) bool {
	if strings.Contains(strings.ToLower(order.CustomerName), term) {
		return true
	}
	if strings.HasSuffix(strings.ToLower(order.ID.String()), term) {
		return true
	}
	for _, item := range order.Items {
		if strings.Contains(strings.ToLower(item.Drink.Name), term) {
			return true
		}
	}
	return false
}

// GroupByItem builds the by-item prep view from the given orders. Callers
// pass the queued (pending) orders only; anything else never reaches the
// prep board.
func GroupByItem(orders []models.Order) []ItemGroup {
	type key struct {
		drinkID   string
		variation string
	}
	groups := map[key]*ItemGroup{}
	var insertion []key

	for _, order := range orders {
		for _, item := range order.Items {
			k := key{drinkID: item.Drink.ID, variation: item.VariationKey()}
			group, ok := groups[k]
			if !ok {
				group = &ItemGroup{
					DrinkID:      item.Drink.ID,
					DrinkName:    item.Drink.Name,
					VariationKey: k.variation,
					Selections:   sortedSelections(item.SelectedModifiers),
				}
				groups[k] = group
				insertion = append(insertion, k)
			}
			group.Quantity += item.Quantity
			group.Contributors = append(group.Contributors, Contributor{
				OrderID:      order.ID.String(),
				CustomerName: order.CustomerName,
				Quantity:     item.Quantity,
			})
		}
	}

	out := make([]ItemGroup, 0, len(groups))
	for _, k := range insertion {
		out = append(out, *groups[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Quantity > out[j].Quantity
	})
	return out
}

// GroupByType builds the by-drink view: total quantity per drink with a
// per-variation breakdown.
func GroupByType(orders []models.Order) []TypeGroup {
	groups := map[string]*TypeGroup{}
	variations := map[string]map[string]*Variation{}
	var drinkOrder []string

	for _, order := range orders {
		for _, item := range order.Items {
			drinkID := item.Drink.ID
			group, ok := groups[drinkID]
			if !ok {
				group = &TypeGroup{DrinkID: drinkID, DrinkName: item.Drink.Name}
				groups[drinkID] = group
				variations[drinkID] = map[string]*Variation{}
				drinkOrder = append(drinkOrder, drinkID)
			}
			group.Total += item.Quantity

			vk := item.VariationKey()
			variation, ok := variations[drinkID][vk]
			if !ok {
				variation = &Variation{
					VariationKey: vk,
					Selections:   sortedSelections(item.SelectedModifiers),
				}
				variations[drinkID][vk] = variation
			}
			variation.Quantity += item.Quantity
		}
	}

	out := make([]TypeGroup, 0, len(groups))
	for _, drinkID := range drinkOrder {
		group := *groups[drinkID]
		for _, variation := range variations[drinkID] {
			group.Variations = append(group.Variations, *variation)
		}
		sort.SliceStable(group.Variations, func(i, j int) bool {
			if group.Variations[i].Quantity != group.Variations[j].Quantity {
				return group.Variations[i].Quantity > group.Variations[j].Quantity
			}
			return group.Variations[i].VariationKey < group.Variations[j].VariationKey
		})
		out = append(out, group)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

func sortedSelections(selections map[string]types.ModifierSelection) []types.ModifierSelection {
	out := make([]types.ModifierSelection, 0, len(selections))
	for _, sel := range selections {
		out = append(out, sel)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].OptionID < out[j].OptionID
	})
	return out
}
