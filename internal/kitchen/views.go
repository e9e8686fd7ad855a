package kitchen

import (
	"github.com/brewdeck/brewdeck-backend/internal/orders"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

// ContributorView names one order's share of an aggregated prep line.
type ContributorView struct {
	OrderID      string `json:"orderId"`
	CustomerName string `json:"customerName"`
	Quantity     int    `json:"quantity"`
}

// ItemGroupView is one (drink, modifier combination) prep line on the wire.
type ItemGroupView struct {
	DrinkID      string                    `json:"drinkId"`
	DrinkName    string                    `json:"drinkName"`
	VariationKey string                    `json:"variationKey"`
	Selections   []types.ModifierSelection `json:"selections"`
	Quantity     int                       `json:"quantity"`
	Contributors []ContributorView         `json:"contributors"`
}

// VariationView is one modifier combination's share within a drink group.
type VariationView struct {
	VariationKey string                    `json:"variationKey"`
	Selections   []types.ModifierSelection `json:"selections"`
	Quantity     int                       `json:"quantity"`
}

// TypeGroupView is one drink's aggregate across the active queue.
type TypeGroupView struct {
	DrinkID    string          `json:"drinkId"`
	DrinkName  string          `json:"drinkName"`
	Total      int             `json:"total"`
	Variations []VariationView `json:"variations"`
}

// BoardView is the kitchen display payload.
type BoardView struct {
	Pending         []orders.OrderView `json:"pending"`
	ByItem          []ItemGroupView    `json:"byItem"`
	ByType          []TypeGroupView    `json:"byType"`
	PaymentRequired []orders.OrderView `json:"paymentRequired"`
	Scheduled       []orders.OrderView `json:"scheduled"`
	Completed       []orders.OrderView `json:"completed"`
}

// NewBoardView maps the board projections onto their wire shape.
func NewBoardView(board Board) BoardView {
	view := BoardView{
		Pending:         orders.NewViewList(board.Pending),
		ByItem:          make([]ItemGroupView, 0, len(board.ByItem)),
		ByType:          make([]TypeGroupView, 0, len(board.ByType)),
		PaymentRequired: orders.NewViewList(board.PaymentRequired),
		Scheduled:       orders.NewViewList(board.Scheduled),
		Completed:       orders.NewViewList(board.Completed),
	}
	for _, group := range board.ByItem {
		item := ItemGroupView{
			DrinkID:      group.DrinkID,
			DrinkName:    group.DrinkName,
			VariationKey: group.VariationKey,
			Selections:   group.Selections,
			Quantity:     group.Quantity,
			Contributors: make([]ContributorView, 0, len(group.Contributors)),
		}
		if item.Selections == nil {
			item.Selections = []types.ModifierSelection{}
		}
		for _, c := range group.Contributors {
			item.Contributors = append(item.Contributors, ContributorView(c))
		}
		view.ByItem = append(view.ByItem, item)
	}
	for _, group := range board.ByType {
		drink := TypeGroupView{
			DrinkID:    group.DrinkID,
			DrinkName:  group.DrinkName,
			Total:      group.Total,
			Variations: make([]VariationView, 0, len(group.Variations)),
		}
		for _, variation := range group.Variations {
			v := VariationView{
				VariationKey: variation.VariationKey,
				Selections:   variation.Selections,
				Quantity:     variation.Quantity,
			}
			if v.Selections == nil {
				v.Selections = []types.ModifierSelection{}
			}
			drink.Variations = append(drink.Variations, v)
		}
		view.ByType = append(view.ByType, drink)
	}
	return view
}
