package kitchen

import (
	"context"
	"fmt"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
)

// orderLister is the slice of the orders layer the display needs.
type orderLister interface {
	ListByStatus(ctx context.Context, status enums.OrderStatus) ([]models.Order, error)
}

// Board is everything the kitchen display renders in one fetch: the queue in
// all three projections plus the side lists, all filtered by the same term.
type Board struct {
	Pending         []models.Order
	ByItem          []ItemGroup
	ByType          []TypeGroup
	PaymentRequired []models.Order
	Scheduled       []models.Order
	Completed       []models.Order
}

// Service builds the kitchen display projections.
type Service interface {
	Board(ctx context.Context, search string) (*Board, error)
}

type service struct {
	orders orderLister
}

// NewService builds the kitchen display service.
func NewService(orders orderLister) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order lister required")
	}
	return &service{orders: orders}, nil
}

func (s *service) Board(ctx context.Context, search string) (*Board, error) {
	board := &Board{}

	pending, err := s.listFiltered(ctx, enums.OrderStatusPending, search)
	if err != nil {
		return nil, err
	}
	board.Pending = pending
	// Only the queue feeds the prep aggregations.
	board.ByItem = GroupByItem(pending)
	board.ByType = GroupByType(pending)

	if board.PaymentRequired, err = s.listFiltered(ctx, enums.OrderStatusPaymentRequired, search); err != nil {
		return nil, err
	}
	if board.Scheduled, err = s.listFiltered(ctx, enums.OrderStatusScheduled, search); err != nil {
		return nil, err
	}
	if board.Completed, err = s.listFiltered(ctx, enums.OrderStatusCompleted, search); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *service) listFiltered(ctx context.Context, status enums.OrderStatus, search string) ([]models.Order, error) {
	orders, err := s.orders.ListByStatus(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return Filter(orders, search), nil
}
