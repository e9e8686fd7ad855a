package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/internal/pricing"
	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

// store is the slice of the redis client a cart needs.
type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(identity string) string
}

// catalogReader resolves submitted ids into priced snapshots.
type catalogReader interface {
	GetDrink(ctx context.Context, id string) (*models.Drink, error)
	GetModifierGroup(ctx context.Context, id string) (*models.ModifierGroup, error)
}

// AddLineInput is a cart mutation as submitted by the client. Selections map
// modifier group id to option id.
type AddLineInput struct {
	DrinkID         string
	Quantity        int
	SelectedOptions map[string]string
	CustomName      string
}

// Service holds a customer's working cart between visits. Lines carry priced
// snapshots for display; checkout re-resolves everything server-side.
type Service interface {
	Get(ctx context.Context, customerID string) (types.OrderItems, error)
	AddLine(ctx context.Context, customerID string, input AddLineInput) (types.OrderItems, error)
	// UpdateLine replaces the identified line in place; it never appends a
	// duplicate.
	UpdateLine(ctx context.Context, customerID, lineID string, input AddLineInput) (types.OrderItems, error)
	RemoveLine(ctx context.Context, customerID, lineID string) (types.OrderItems, error)
	Clear(ctx context.Context, customerID string) error
}

type service struct {
	store   store
	catalog catalogReader
	ttl     time.Duration
}

// NewService builds the cart service.
func NewService(store store, catalog catalogReader, ttl time.Duration) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &service{store: store, catalog: catalog, ttl: ttl}, nil
}

func (s *service) Get(ctx context.Context, customerID string) (types.OrderItems, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	raw, err := s.store.Get(ctx, s.store.CartKey(customerID))
	if err != nil {
		if err == goredis.Nil {
			return types.OrderItems{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	var items types.OrderItems
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode cart")
	}
	return items, nil
}

func (s *service) AddLine(ctx context.Context, customerID string, input AddLineInput) (types.OrderItems, error) {
	items, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	item, err := s.resolveLine(ctx, input)
	if err != nil {
		return nil, err
	}
	items = append(items, *item)
	if err := s.save(ctx, customerID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) UpdateLine(ctx context.Context, customerID, lineID string, input AddLineInput) (types.OrderItems, error) {
	items, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range items {
		if items[i].ID == lineID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}

	item, err := s.resolveLine(ctx, input)
	if err != nil {
		return nil, err
	}
	item.ID = lineID
	items[index] = *item

	if err := s.save(ctx, customerID, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *service) RemoveLine(ctx context.Context, customerID, lineID string) (types.OrderItems, error) {
	items, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}

	out := make(types.OrderItems, 0, len(items))
	for _, item := range items {
		if item.ID != lineID {
			out = append(out, item)
		}
	}
	if len(out) == len(items) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}

	if err := s.save(ctx, customerID, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Clear(ctx context.Context, customerID string) error {
	if strings.TrimSpace(customerID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if err := s.store.Del(ctx, s.store.CartKey(customerID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) save(ctx context.Context, customerID string, items types.OrderItems) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, s.store.CartKey(customerID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (s *service) resolveLine(ctx context.Context, input AddLineInput) (*types.OrderItem, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	drink, err := s.catalog.GetDrink(ctx, input.DrinkID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown drink %q", input.DrinkID))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load drink")
	}

	selections := make(map[string]types.ModifierSelection, len(input.SelectedOptions))
	for groupID, optionID := range input.SelectedOptions {
		if !drink.ModifierGroups.Contains(groupID) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("modifier group %q does not apply to drink %q", groupID, input.DrinkID))
		}
		group, err := s.catalog.GetModifierGroup(ctx, groupID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown modifier group %q", groupID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load modifier group")
		}
		option, ok := group.Options.Find(optionID)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("unknown option %q in modifier group %q", optionID, groupID))
		}
		selections[groupID] = types.ModifierSelection{
			OptionID: option.ID,
			Name:     option.Name,
			Price:    option.Price,
			Cost:     option.Cost,
		}
	}

	item := &types.OrderItem{
		ID:                uuid.NewString(),
		Drink:             drink.Snapshot(),
		Quantity:          input.Quantity,
		SelectedModifiers: selections,
		CustomName:        strings.TrimSpace(input.CustomName),
	}
	item.FinalPrice = pricing.LineTotal(*item)
	return item, nil
}
