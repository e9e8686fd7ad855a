package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	"github.com/brewdeck/brewdeck-backend/pkg/pagination"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  customer_id TEXT,
  items TEXT NOT NULL,
  total NUMERIC NOT NULL,
  total_cost NUMERIC NOT NULL,
  discount TEXT,
  final_total NUMERIC NOT NULL,
  payment_method TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  pickup_time DATETIME,
  completed_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	return db
}

func testOrder(name string, status enums.OrderStatus, createdAt time.Time) *models.Order {
	customerID := "session-" + name
	return &models.Order{
		ID:           uuid.New(),
		CustomerName: name,
		CustomerID:   &customerID,
		Items: types.OrderItems{{
			ID: uuid.NewString(),
			Drink: types.DrinkSnapshot{
				ID: "drink-1", Name: "Latte", CategoryID: "cat-1",
				BasePrice: decimal.NewFromFloat(4.00),
				BaseCost:  decimal.NewFromFloat(1.20),
			},
			Quantity:   1,
			FinalPrice: decimal.NewFromFloat(4.00),
		}},
		Total:         decimal.NewFromFloat(4.00),
		TotalCost:     decimal.NewFromFloat(1.20),
		FinalTotal:    decimal.NewFromFloat(4.00),
		PaymentMethod: enums.PaymentMethodCard,
		Status:        status,
		CreatedAt:     createdAt,
	}
}

func TestRepositoryUpdateClearsWithExplicitNull(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := testOrder("Alex", enums.OrderStatusCompleted, time.Now().UTC())
	completedAt := time.Now().UTC()
	order.CompletedAt = &completedAt
	require.NoError(t, repo.Create(ctx, order))

	require.NoError(t, repo.Update(ctx, order.ID, map[string]any{
		"status":       enums.OrderStatusPending,
		"completed_at": nil,
	}))

	loaded, err := repo.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, loaded.Status)
	assert.Nil(t, loaded.CompletedAt)
	// Untouched columns survive a partial update.
	assert.Equal(t, "Alex", loaded.CustomerName)
	require.Len(t, loaded.Items, 1)
}

func TestRepositoryUpdateMissingOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	err := repo.Update(context.Background(), uuid.New(), map[string]any{"status": enums.OrderStatusPending})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, testOrder("Alex", enums.OrderStatusScheduled, now)))
	require.NoError(t, repo.Create(ctx, testOrder("Bea", enums.OrderStatusPending, now)))
	require.NoError(t, repo.Create(ctx, testOrder("Cal", enums.OrderStatusScheduled, now)))

	scheduled, err := repo.ListByStatus(ctx, enums.OrderStatusScheduled)
	require.NoError(t, err)
	assert.Len(t, scheduled, 2)
}

func TestRepositoryListHistoryPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		order := testOrder("Alex", enums.OrderStatusCompleted, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, order))
	}

	page1, err := repo.ListHistory(ctx, pagination.Params{Limit: 2}, HistoryFilters{})
	require.NoError(t, err)
	require.Len(t, page1.Orders, 2)
	require.NotNil(t, page1.NextCursor)
	// Newest first.
	assert.True(t, page1.Orders[0].CreatedAt.After(page1.Orders[1].CreatedAt))

	page2, err := repo.ListHistory(ctx, pagination.Params{Limit: 2, Cursor: *page1.NextCursor}, HistoryFilters{})
	require.NoError(t, err)
	require.Len(t, page2.Orders, 2)
	assert.True(t, page1.Orders[1].CreatedAt.After(page2.Orders[0].CreatedAt))

	page3, err := repo.ListHistory(ctx, pagination.Params{Limit: 2, Cursor: *page2.NextCursor}, HistoryFilters{})
	require.NoError(t, err)
	require.Len(t, page3.Orders, 1)
	assert.Nil(t, page3.NextCursor)
}

func TestRepositoryListHistorySearch(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	alex := testOrder("Alex", enums.OrderStatusCompleted, now)
	require.NoError(t, repo.Create(ctx, alex))
	bea := testOrder("Bea", enums.OrderStatusCompleted, now.Add(time.Second))
	bea.Items[0].Drink.Name = "Mocha"
	require.NoError(t, repo.Create(ctx, bea))

	// Customer name, case-insensitive.
	list, err := repo.ListHistory(ctx, pagination.Params{}, HistoryFilters{Search: "alex"})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, "Alex", list.Orders[0].CustomerName)

	// Drink name inside the embedded items.
	list, err = repo.ListHistory(ctx, pagination.Params{}, HistoryFilters{Search: "mocha"})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, "Bea", list.Orders[0].CustomerName)

	// Order id suffix.
	suffix := alex.ID.String()[24:]
	list, err = repo.ListHistory(ctx, pagination.Params{}, HistoryFilters{Search: suffix})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, alex.ID, list.Orders[0].ID)

	list, err = repo.ListHistory(ctx, pagination.Params{}, HistoryFilters{Search: "no-such-term"})
	require.NoError(t, err)
	assert.Empty(t, list.Orders)
}

func TestRepositoryListRecentCap(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Create(ctx, testOrder("Alex", enums.OrderStatusPending, base.Add(time.Duration(i)*time.Minute))))
	}

	recent, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, base.Add(3*time.Minute), recent[0].CreatedAt.UTC())
}
