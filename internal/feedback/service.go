package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
)

// Repository is the persistence surface for customer feedback.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.Feedback) error
	List(ctx context.Context) ([]models.Feedback, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a feedback repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.Feedback) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) List(ctx context.Context) ([]models.Feedback, error) {
	var entries []models.Feedback
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Service collects anonymous star ratings with an optional comment.
type Service interface {
	Submit(ctx context.Context, rating int, message string) (*models.Feedback, error)
	List(ctx context.Context) ([]models.Feedback, error)
}

type service struct {
	repo Repository
}

// NewService builds the feedback service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("feedback repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Submit(ctx context.Context, rating int, message string) (*models.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	entry := &models.Feedback{
		ID:      uuid.New(),
		Rating:  rating,
		Message: strings.TrimSpace(message),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save feedback")
	}
	return entry, nil
}

func (s *service) List(ctx context.Context) ([]models.Feedback, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list feedback")
	}
	return entries, nil
}
