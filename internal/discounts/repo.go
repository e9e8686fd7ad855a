package discounts

import (
	"context"

	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
)

// Repository is the persistence surface for discount codes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	List(ctx context.Context) ([]models.Discount, error)
	Get(ctx context.Context, id string) (*models.Discount, error)
	GetByCode(ctx context.Context, code string) (*models.Discount, error)
	Create(ctx context.Context, discount *models.Discount) error
	Save(ctx context.Context, discount *models.Discount) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a discount repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context) ([]models.Discount, error) {
	var discounts []models.Discount
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

func (r *repository) Get(ctx context.Context, id string) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&discount).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

// GetByCode matches codes case-insensitively.
func (r *repository) GetByCode(ctx context.Context, code string) (*models.Discount, error) {
	var discount models.Discount
	if err := r.db.WithContext(ctx).Where("LOWER(code) = LOWER(?)", code).First(&discount).Error; err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *repository) Create(ctx context.Context, discount *models.Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *repository) Save(ctx context.Context, discount *models.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Discount{}).Error
}
