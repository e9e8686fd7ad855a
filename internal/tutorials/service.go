package tutorials

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
)

// Repository is the persistence surface for the guided-tour steps.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context) ([]models.TutorialStep, error)
	DeleteAll(ctx context.Context) error
	CreateAll(ctx context.Context, steps []models.TutorialStep) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a tutorials repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) List(ctx context.Context) ([]models.TutorialStep, error) {
	var steps []models.TutorialStep
	if err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.TutorialStep{}).Error
}

func (r *repository) CreateAll(ctx context.Context, steps []models.TutorialStep) error {
	if len(steps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&steps).Error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service reads and replaces the guided tour. The tour is edited as a whole
// script, so writes swap the full set.
type Service interface {
	List(ctx context.Context) ([]models.TutorialStep, error)
	Replace(ctx context.Context, steps []models.TutorialStep) ([]models.TutorialStep, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the tutorials service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tutorials repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context) ([]models.TutorialStep, error) {
	steps, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tutorial steps")
	}
	return steps, nil
}

func (s *service) Replace(ctx context.Context, steps []models.TutorialStep) ([]models.TutorialStep, error) {
	for i := range steps {
		if strings.TrimSpace(steps[i].Title) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "step title required")
		}
		if strings.TrimSpace(steps[i].Content) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "step content required")
		}
		if steps[i].ID == "" {
			steps[i].ID = "tut-step-" + uuid.NewString()
		}
		steps[i].SortOrder = i + 1
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteAll(ctx); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear tutorial steps")
		}
		if err := repo.CreateAll(ctx, steps); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write tutorial steps")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return steps, nil
}
