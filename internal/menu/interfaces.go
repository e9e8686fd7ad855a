package menu

import (
	"context"

	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
)

// Repository is the persistence surface for catalog entities.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListDrinks(ctx context.Context) ([]models.Drink, error)
	GetDrink(ctx context.Context, id string) (*models.Drink, error)
	CreateDrink(ctx context.Context, drink *models.Drink) error
	SaveDrink(ctx context.Context, drink *models.Drink) error
	DeleteDrink(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	SaveCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id string) error
	ReassignDrinks(ctx context.Context, fromCategoryID, toCategoryID string) error

	ListModifierGroups(ctx context.Context) ([]models.ModifierGroup, error)
	GetModifierGroup(ctx context.Context, id string) (*models.ModifierGroup, error)
	CreateModifierGroup(ctx context.Context, group *models.ModifierGroup) error
	SaveModifierGroup(ctx context.Context, group *models.ModifierGroup) error
	DeleteModifierGroup(ctx context.Context, id string) error

	CountDrinks(ctx context.Context) (int64, error)
	DeleteAllMenuEntities(ctx context.Context) error
}
