package types

import "github.com/shopspring/decimal"

// ModifierOption is one selectable option inside a modifier group, priced
// and costed per unit.
type ModifierOption struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Cost  decimal.Decimal `json:"cost"`
}

// ModifierOptions is the jsonb column holding a group's options.
type ModifierOptions []ModifierOption

// Find returns the option with the given id, if present.
func (opts ModifierOptions) Find(id string) (ModifierOption, bool) {
	for _, opt := range opts {
		if opt.ID == id {
			return opt, true
		}
	}
	return ModifierOption{}, false
}
