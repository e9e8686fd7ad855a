package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

var hundred = decimal.NewFromInt(100)

// UnitPrice returns the price of one unit: base price plus every selected
// modifier option.
func UnitPrice(drink types.DrinkSnapshot, selections map[string]types.ModifierSelection) decimal.Decimal {
	price := drink.BasePrice
	for _, sel := range selections {
		price = price.Add(sel.Price)
	}
	return price
}

// UnitCost mirrors UnitPrice on the cost side.
func UnitCost(drink types.DrinkSnapshot, selections map[string]types.ModifierSelection) decimal.Decimal {
	cost := drink.BaseCost
	for _, sel := range selections {
		cost = cost.Add(sel.Cost)
	}
	return cost
}

// LineTotal returns quantity times the unit price for a line.
func LineTotal(item types.OrderItem) decimal.Decimal {
	return UnitPrice(item.Drink, item.SelectedModifiers).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// LineCost returns quantity times the unit cost for a line.
func LineCost(item types.OrderItem) decimal.Decimal {
	return UnitCost(item.Drink, item.SelectedModifiers).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Subtotal sums the line totals of a cart.
func Subtotal(items types.OrderItems) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item))
	}
	return total
}

// TotalCost sums the line costs of a cart. Discounts never touch cost.
func TotalCost(items types.OrderItems) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineCost(item))
	}
	return total
}

// CheapestUnitPrice returns the lowest unit price across the cart. Ties break
// toward the earliest line.
func CheapestUnitPrice(items types.OrderItems) decimal.Decimal {
	cheapest := decimal.Zero
	found := false
	for _, item := range items {
		unit := UnitPrice(item.Drink, item.SelectedModifiers)
		if !found || unit.LessThan(cheapest) {
			cheapest = unit
			found = true
		}
	}
	return cheapest
}

// Quote is the complete pricing breakdown for a cart at checkout.
type Quote struct {
	Subtotal        decimal.Decimal
	TotalCost       decimal.Decimal
	LoyaltyDeducted decimal.Decimal
	FinalTotal      decimal.Decimal
}

// Compute prices a cart. The loyalty reward removes exactly one unit of the
// cheapest line and is applied before any discount code. The result is
// clamped at zero.
func Compute(items types.OrderItems, discount *types.DiscountSnapshot, loyaltyReward bool) Quote {
	quote := Quote{
		Subtotal:  Subtotal(items),
		TotalCost: TotalCost(items),
	}

	total := quote.Subtotal
	if loyaltyReward && len(items) > 0 {
		quote.LoyaltyDeducted = CheapestUnitPrice(items)
		total = total.Sub(quote.LoyaltyDeducted)
	}

	if discount != nil {
		switch discount.Type {
		case "percentage":
			total = total.Mul(hundred.Sub(discount.Value)).Div(hundred)
		case "fixed":
			total = total.Sub(discount.Value)
		}
	}

	if total.IsNegative() {
		total = decimal.Zero
	}
	quote.FinalTotal = total.Round(2)
	return quote
}
