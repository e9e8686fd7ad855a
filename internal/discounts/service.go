package discounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/types"
)

var oneHundred = decimal.NewFromInt(100)

// Service owns discount codes: admin CRUD plus code redemption at checkout.
type Service interface {
	List(ctx context.Context) ([]models.Discount, error)
	Create(ctx context.Context, discount models.Discount) (*models.Discount, error)
	Update(ctx context.Context, discount models.Discount) (*models.Discount, error)
	Delete(ctx context.Context, id string) error

	// ApplyCode resolves a code to the snapshot stored on the order. The
	// match is case-insensitive.
	ApplyCode(ctx context.Context, code string) (*types.DiscountSnapshot, error)
}

type service struct {
	repo Repository
}

// NewService builds the discount service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("discount repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]models.Discount, error) {
	discounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list discounts")
	}
	return discounts, nil
}

func (s *service) Create(ctx context.Context, discount models.Discount) (*models.Discount, error) {
	discount.Code = strings.TrimSpace(discount.Code)
	if err := validateDiscount(discount); err != nil {
		return nil, err
	}
	if existing, err := s.repo.GetByCode(ctx, discount.Code); err == nil && existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "discount code already exists")
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check discount code")
	}
	if discount.ID == "" {
		discount.ID = "disc-" + uuid.NewString()
	}
	if err := s.repo.Create(ctx, &discount); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create discount")
	}
	return &discount, nil
}

func (s *service) Update(ctx context.Context, discount models.Discount) (*models.Discount, error) {
	if discount.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount id required")
	}
	discount.Code = strings.TrimSpace(discount.Code)
	if err := validateDiscount(discount); err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx, discount.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount")
	}
	if existing, err := s.repo.GetByCode(ctx, discount.Code); err == nil && existing != nil && existing.ID != discount.ID {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "discount code already exists")
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check discount code")
	}
	if err := s.repo.Save(ctx, &discount); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save discount")
	}
	return &discount, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete discount")
	}
	return nil
}

func (s *service) ApplyCode(ctx context.Context, code string) (*types.DiscountSnapshot, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code required")
	}
	discount, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invalid discount code")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up discount code")
	}
	snapshot := discount.Snapshot()
	return &snapshot, nil
}

func validateDiscount(discount models.Discount) error {
	if discount.Code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount code required")
	}
	if !discount.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid discount type %q", discount.Type))
	}
	if discount.Value.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount value must not be negative")
	}
	if discount.Type == enums.DiscountTypePercentage && discount.Value.GreaterThan(oneHundred) {
		return pkgerrors.New(pkgerrors.CodeValidation, "percentage discount cannot exceed 100")
	}
	return nil
}
