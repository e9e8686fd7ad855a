package menu

import (
	"context"

	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a menu repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListDrinks(ctx context.Context) ([]models.Drink, error) {
	var drinks []models.Drink
	err := r.db.WithContext(ctx).Order("name ASC").Find(&drinks).Error
	if err != nil {
		return nil, err
	}
	return drinks, nil
}

func (r *repository) GetDrink(ctx context.Context, id string) (*models.Drink, error) {
	var drink models.Drink
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&drink).Error; err != nil {
		return nil, err
	}
	return &drink, nil
}

func (r *repository) CreateDrink(ctx context.Context, drink *models.Drink) error {
	return r.db.WithContext(ctx).Create(drink).Error
}

func (r *repository) SaveDrink(ctx context.Context, drink *models.Drink) error {
	return r.db.WithContext(ctx).Save(drink).Error
}

func (r *repository) DeleteDrink(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Drink{}).Error
}

func (r *repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repository) SaveCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *repository) DeleteCategory(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}

func (r *repository) ReassignDrinks(ctx context.Context, fromCategoryID, toCategoryID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Drink{}).
		Where("category_id = ?", fromCategoryID).
		Update("category_id", toCategoryID).Error
}

func (r *repository) ListModifierGroups(ctx context.Context) ([]models.ModifierGroup, error) {
	var groups []models.ModifierGroup
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *repository) GetModifierGroup(ctx context.Context, id string) (*models.ModifierGroup, error) {
	var group models.ModifierGroup
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *repository) CreateModifierGroup(ctx context.Context, group *models.ModifierGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *repository) SaveModifierGroup(ctx context.Context, group *models.ModifierGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *repository) DeleteModifierGroup(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ModifierGroup{}).Error
}

func (r *repository) CountDrinks(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Drink{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) DeleteAllMenuEntities(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Drink{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.ModifierGroup{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("id <> ?", models.UncategorisedCategoryID).
		Delete(&models.Category{}).Error
}
