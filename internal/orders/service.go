package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/internal/loyalty"
	"github.com/brewdeck/brewdeck-backend/internal/pricing"
	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
	"github.com/brewdeck/brewdeck-backend/pkg/pagination"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

// catalogReader is the slice of the menu layer order placement needs to turn
// submitted line ids into priced snapshots.
type catalogReader interface {
	GetDrink(ctx context.Context, id string) (*models.Drink, error)
	GetModifierGroup(ctx context.Context, id string) (*models.ModifierGroup, error)
}

// codeResolver redeems a discount code into the snapshot stored on the order.
type codeResolver interface {
	ApplyCode(ctx context.Context, code string) (*types.DiscountSnapshot, error)
}

// loyaltyLedger is the slice of the loyalty service checkout needs.
type loyaltyLedger interface {
	EligibleForReward(ctx context.Context, identity loyalty.Identity, cartUnits int) (bool, error)
	RecordPurchase(ctx context.Context, identity loyalty.Identity, units int) (int, error)
}

type changeNotifier interface {
	OrdersChanged(ctx context.Context)
}

// Service owns the order lifecycle from checkout to the completed ticket.
type Service interface {
	Place(ctx context.Context, input PlaceOrderInput) (*models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	VerifyPayment(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Requeue(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ToggleItemCompletion(ctx context.Context, orderID uuid.UUID, itemID string) (*models.Order, error)

	// ActivateScheduled moves every scheduled order whose pickup time is
	// within the preparation lead into the kitchen queue. Safe to run
	// repeatedly; an already-activated order is no longer scheduled and
	// drops out of the scan.
	ActivateScheduled(ctx context.Context, now time.Time) (int, error)

	Feed(ctx context.Context) ([]models.Order, error)
	History(ctx context.Context, params pagination.Params, filters HistoryFilters) (*OrderList, error)
}

type service struct {
	repo      Repository
	catalog   catalogReader
	discounts codeResolver
	loyalty   loyaltyLedger
	notifier  changeNotifier
	logg      *logger.Logger

	preparationLead time.Duration
	feedLimit       int
}

// Params bundles the order service dependencies.
type Params struct {
	Repo      Repository
	Catalog   catalogReader
	Discounts codeResolver
	Loyalty   loyaltyLedger
	Notifier  changeNotifier
	Logger    *logger.Logger

	PreparationLead time.Duration
	FeedLimit       int
}

// NewService builds the order service.
func NewService(p Params) (Service, error) {
	if p.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if p.Catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if p.Discounts == nil {
		return nil, fmt.Errorf("discount resolver required")
	}
	if p.Loyalty == nil {
		return nil, fmt.Errorf("loyalty ledger required")
	}
	if p.Notifier == nil {
		return nil, fmt.Errorf("change notifier required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if p.PreparationLead <= 0 {
		return nil, fmt.Errorf("preparation lead must be positive")
	}
	if p.FeedLimit <= 0 {
		return nil, fmt.Errorf("feed limit must be positive")
	}
	return &service{
		repo:            p.Repo,
		catalog:         p.Catalog,
		discounts:       p.Discounts,
		loyalty:         p.Loyalty,
		notifier:        p.Notifier,
		logg:            p.Logger,
		preparationLead: p.PreparationLead,
		feedLimit:       p.FeedLimit,
	}, nil
}

func (s *service) Place(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	now := time.Now().UTC()

	input.CustomerName = strings.TrimSpace(input.CustomerName)
	if input.CustomerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order name required")
	}
	if strings.TrimSpace(input.CustomerID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.PaymentMethod))
	}
	if input.PickupTime != nil && !input.PickupTime.After(now) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pickup time must be in the future")
	}

	items, err := s.resolveLines(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	identity := s.identityFor(input)
	eligible, err := s.loyalty.EligibleForReward(ctx, identity, items.TotalUnits())
	if err != nil {
		return nil, err
	}

	var discount *types.DiscountSnapshot
	if strings.TrimSpace(input.DiscountCode) != "" {
		discount, err = s.discounts.ApplyCode(ctx, input.DiscountCode)
		if err != nil {
			return nil, err
		}
	}

	quote := pricing.Compute(items, discount, eligible)

	order := &models.Order{
		ID:            uuid.New(),
		CustomerName:  input.CustomerName,
		CustomerID:    &input.CustomerID,
		Items:         items,
		Total:         quote.Subtotal,
		TotalCost:     quote.TotalCost,
		Discount:      discount,
		FinalTotal:    quote.FinalTotal,
		PaymentMethod: input.PaymentMethod,
		Status:        initialStatus(input.ActorRole, input.PickupTime, now),
		PickupTime:    input.PickupTime,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	// The ticket already exists; missed points can be replayed, a failed
	// order cannot.
	if _, err := s.loyalty.RecordPurchase(ctx, identity, items.TotalUnits()); err != nil {
		s.logg.Error(ctx, "record loyalty purchase", err)
	}

	s.notifier.OrdersChanged(ctx)
	return order, nil
}

// initialStatus applies the trust rule at placement: staff orders skip
// payment verification, everyone else waits at the counter.
func initialStatus(role enums.UserRole, pickup *time.Time, now time.Time) enums.OrderStatus {
	if role == enums.UserRoleAdmin {
		if pickup != nil && pickup.After(now) {
			return enums.OrderStatusScheduled
		}
		return enums.OrderStatusPending
	}
	return enums.OrderStatusPaymentRequired
}

func (s *service) identityFor(input PlaceOrderInput) loyalty.Identity {
	if input.AccountUserID != nil {
		return loyalty.AccountIdentity(*input.AccountUserID)
	}
	return loyalty.GuestIdentity(input.CustomerName)
}

func (s *service) resolveLines(ctx context.Context, lines []PlaceOrderLine) (types.OrderItems, error) {
	items := make(types.OrderItems, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be at least 1")
		}
		drink, err := s.catalog.GetDrink(ctx, line.DrinkID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown drink %q", line.DrinkID))
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load drink")
		}

		selections := make(map[string]types.ModifierSelection, len(line.SelectedOptions))
		for groupID, optionID := range line.SelectedOptions {
			if !drink.ModifierGroups.Contains(groupID) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("modifier group %q does not apply to drink %q", groupID, line.DrinkID))
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

		item := types.OrderItem{
			ID:                uuid.NewString(),
			Drink:             drink.Snapshot(),
			Quantity:          line.Quantity,
			SelectedModifiers: selections,
			CustomName:        strings.TrimSpace(line.CustomName),
		}
		item.FinalPrice = pricing.LineTotal(item)
		items = append(items, item)
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// VerifyPayment releases a counter-verified order into the queue. The
// creation timestamp is reset so the kitchen wait timer starts at
// verification, not at placement.
func (s *service) VerifyPayment(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusPaymentRequired {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is not awaiting payment")
	}

	now := time.Now().UTC()
	next := enums.OrderStatusPending
	if order.PickupTime != nil && order.PickupTime.After(now) {
		next = enums.OrderStatusScheduled
	}
	updates := map[string]any{
		"status":     next,
		"created_at": now,
	}
	return s.applyUpdate(ctx, id, updates)
}

func (s *service) Complete(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only queued orders can be completed")
	}
	if !order.Items.AllCompleted() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "every item must be marked done first")
	}

	updates := map[string]any{
		"status":       enums.OrderStatusCompleted,
		"completed_at": time.Now().UTC(),
	}
	return s.applyUpdate(ctx, id, updates)
}

// Requeue reverses a completion. Item-level progress is kept; only the
// completion timestamp is cleared.
func (s *service) Requeue(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only completed orders can be re-queued")
	}

	updates := map[string]any{
		"status":       enums.OrderStatusPending,
		"completed_at": nil,
	}
	return s.applyUpdate(ctx, id, updates)
}

func (s *service) ToggleItemCompletion(ctx context.Context, orderID uuid.UUID, itemID string) (*models.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			order.Items[i].Completed = !order.Items[i].Completed
			found = true
			break
		}
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
	}

	updates := map[string]any{"items": order.Items}
	return s.applyUpdate(ctx, orderID, updates)
}

func (s *service) ActivateScheduled(ctx context.Context, now time.Time) (int, error) {
	scheduled, err := s.repo.ListByStatus(ctx, enums.OrderStatusScheduled)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list scheduled orders")
	}

	activated := 0
	var errs []error
	for _, order := range scheduled {
		if order.PickupTime != nil && order.PickupTime.Sub(now) > s.preparationLead {
			continue
		}
		err := s.repo.Update(ctx, order.ID, map[string]any{"status": enums.OrderStatusPending})
		if err != nil {
			// Raced with a concurrent activation or a delete; either way
			// the order is no longer ours to move.
			if err == gorm.ErrRecordNotFound {
				continue
			}
			errs = append(errs, fmt.Errorf("activate order %s: %w", order.ID, err))
			continue
		}
		activated++
	}

	if activated > 0 {
		s.notifier.OrdersChanged(ctx)
	}
	return activated, multierr.Combine(errs...)
}

func (s *service) Feed(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.ListRecent(ctx, s.feedLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recent orders")
	}
	return orders, nil
}

func (s *service) History(ctx context.Context, params pagination.Params, filters HistoryFilters) (*OrderList, error) {
	list, err := s.repo.ListHistory(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order history")
	}
	return list, nil
}

func (s *service) applyUpdate(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Order, error) {
	if err := s.repo.Update(ctx, id, updates); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.OrdersChanged(ctx)
	return order, nil
}
