package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	"github.com/brewdeck/brewdeck-backend/pkg/pagination"
)

// Repository defines persistence operations for the orders table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// Update writes only the named columns. A nil map value clears the
	// column to NULL; omitted columns are untouched.
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListByStatus(ctx context.Context, status enums.OrderStatus) ([]models.Order, error)
	ListRecent(ctx context.Context, limit int) ([]models.Order, error)
	ListHistory(ctx context.Context, params pagination.Params, filters HistoryFilters) (*OrderList, error)
}
