package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewdeck/brewdeck-backend/pkg/enums"
)

// DrinkSalesView is one entry of the top-sellers list.
type DrinkSalesView struct {
	DrinkID   string          `json:"drinkId"`
	DrinkName string          `json:"drinkName"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// SummaryView is the JSON shape the sales summary takes on the wire.
type SummaryView struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	OrdersPlaced    int                       `json:"ordersPlaced"`
	OrdersCompleted int                       `json:"ordersCompleted"`
	StatusCounts    map[enums.OrderStatus]int `json:"statusCounts"`

	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Profit  decimal.Decimal `json:"profit"`

	AvgCompletionSeconds float64 `json:"avgCompletionSeconds"`

	TopDrinks []DrinkSalesView `json:"topDrinks"`
}

// NewSummaryView maps a computed summary onto its wire shape.
func NewSummaryView(summary Summary) SummaryView {
	view := SummaryView{
		From:                 summary.From,
		To:                   summary.To,
		OrdersPlaced:         summary.OrdersPlaced,
		OrdersCompleted:      summary.OrdersCompleted,
		StatusCounts:         summary.StatusCounts,
		Revenue:              summary.Revenue,
		Cost:                 summary.Cost,
		Profit:               summary.Profit,
		AvgCompletionSeconds: summary.AvgCompletion.Seconds(),
		TopDrinks:            make([]DrinkSalesView, 0, len(summary.TopDrinks)),
	}
	if view.StatusCounts == nil {
		view.StatusCounts = map[enums.OrderStatus]int{}
	}
	for _, sales := range summary.TopDrinks {
		view.TopDrinks = append(view.TopDrinks, DrinkSalesView(sales))
	}
	return view
}
