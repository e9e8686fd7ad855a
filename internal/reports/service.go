package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
)

// Repository reads order rows for reporting.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Order, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reports repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// DrinkSales is one drink's share of the period's completed orders.
type DrinkSales struct {
	DrinkID   string
	DrinkName string
	Units     int
	Revenue   decimal.Decimal
}

// Summary is the sales report for a date range. Money figures only count
// completed orders; the status counts cover everything placed in the range.
type Summary struct {
	From time.Time
	To   time.Time

	OrdersPlaced    int
	OrdersCompleted int
	StatusCounts    map[enums.OrderStatus]int

	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Profit  decimal.Decimal

	// AvgCompletion is the mean time from queueing to completion. Zero
	// when nothing completed in the range.
	AvgCompletion time.Duration

	TopDrinks []DrinkSales
}

// Service computes sales summaries for the admin dashboard.
type Service interface {
	Summarize(ctx context.Context, from, to time.Time) (*Summary, error)
}

type service struct {
	repo Repository
}

// NewService builds the reports service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Summarize(ctx context.Context, from, to time.Time) (*Summary, error) {
	if !to.After(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report range must end after it starts")
	}

	orders, err := s.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders for report")
	}

	summary := &Summary{
		From:         from,
		To:           to,
		OrdersPlaced: len(orders),
		StatusCounts: map[enums.OrderStatus]int{},
		Revenue:      decimal.Zero,
		Cost:         decimal.Zero,
	}

	sales := map[string]*DrinkSales{}
	var drinkOrder []string
	var totalCompletion time.Duration

	for _, order := range orders {
		summary.StatusCounts[order.Status]++
		if order.Status != enums.OrderStatusCompleted {
			continue
		}

		summary.OrdersCompleted++
		summary.Revenue = summary.Revenue.Add(order.FinalTotal)
		summary.Cost = summary.Cost.Add(order.TotalCost)
		if order.CompletedAt != nil {
			totalCompletion += order.CompletedAt.Sub(order.CreatedAt)
		}

		for _, item := range order.Items {
			entry, ok := sales[item.Drink.ID]
			if !ok {
				entry = &DrinkSales{
					DrinkID:   item.Drink.ID,
					DrinkName: item.Drink.Name,
					Revenue:   decimal.Zero,
				}
				sales[item.Drink.ID] = entry
				drinkOrder = append(drinkOrder, item.Drink.ID)
			}
			entry.Units += item.Quantity
			entry.Revenue = entry.Revenue.Add(item.FinalPrice)
		}
	}

	summary.Profit = summary.Revenue.Sub(summary.Cost)
	if summary.OrdersCompleted > 0 {
		summary.AvgCompletion = totalCompletion / time.Duration(summary.OrdersCompleted)
	}

	summary.TopDrinks = make([]DrinkSales, 0, len(sales))
	for _, drinkID := range drinkOrder {
		summary.TopDrinks = append(summary.TopDrinks, *sales[drinkID])
	}
	sort.SliceStable(summary.TopDrinks, func(i, j int) bool {
		return summary.TopDrinks[i].Units > summary.TopDrinks[j].Units
	})
	return summary, nil
}
