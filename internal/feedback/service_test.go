package feedback

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
)

type stubRepo struct {
	entries []models.Feedback
}

func (r *stubRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *stubRepo) Create(ctx context.Context, entry *models.Feedback) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubRepo) List(ctx context.Context) ([]models.Feedback, error) {
	return r.entries, nil
}

func TestSubmit(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	entry, err := svc.Submit(ctx, 5, "  lovely flat white  ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.Rating != 5 || entry.Message != "lovely flat white" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 stored entry, got %d", len(repo.entries))
	}

	// Message is optional, rating is not.
	if _, err := svc.Submit(ctx, 3, ""); err != nil {
		t.Fatalf("Submit without message: %v", err)
	}
	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(ctx, rating, "x")
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("rating %d should fail validation, got %v", rating, err)
		}
	}
}
