package tutorials

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	internaltutorials "github.com/brewdeck/brewdeck-backend/internal/tutorials"
	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

type stubTutorialsService struct {
	list    func(ctx context.Context) ([]models.TutorialStep, error)
	replace func(ctx context.Context, steps []models.TutorialStep) ([]models.TutorialStep, error)
}

func (s *stubTutorialsService) List(ctx context.Context) ([]models.TutorialStep, error) {
	return s.list(ctx)
}

func (s *stubTutorialsService) Replace(ctx context.Context, steps []models.TutorialStep) ([]models.TutorialStep, error) {
	return s.replace(ctx, steps)
}

var _ internaltutorials.Service = (*stubTutorialsService)(nil)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestList(t *testing.T) {
	svc := &stubTutorialsService{
		list: func(ctx context.Context) ([]models.TutorialStep, error) {
			return []models.TutorialStep{{ID: "welcome", Title: "Welcome", Content: "Order here", Target: "#menu"}}, nil
		},
	}

	resp := httptest.NewRecorder()
	List(svc, testLogger())(resp, httptest.NewRequest(http.MethodGet, "/api/v1/tutorials", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"id":"welcome"`) {
		t.Fatalf("expected step in response: %s", resp.Body.String())
	}
}

func TestReplace(t *testing.T) {
	var replaced []models.TutorialStep
	svc := &stubTutorialsService{
		replace: func(ctx context.Context, steps []models.TutorialStep) ([]models.TutorialStep, error) {
			replaced = steps
			return steps, nil
		},
	}

	body := `{"steps":[{"title":"Welcome","content":"Order here","target":"#menu","sortOrder":1}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/admin/v1/tutorials", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	Replace(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(replaced) != 1 || replaced[0].Title != "Welcome" || replaced[0].SortOrder != 1 {
		t.Fatalf("unexpected steps: %+v", replaced)
	}
}

func TestReplaceRejectsIncompleteStep(t *testing.T) {
	svc := &stubTutorialsService{}
	body := `{"steps":[{"title":"Welcome"}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/admin/v1/tutorials", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	Replace(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
