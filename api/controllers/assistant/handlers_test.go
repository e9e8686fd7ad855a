package assistant

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

type stubGenerator struct {
	reply string
	err   error

	lastPrompt string
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.reply, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestAsk(t *testing.T) {
	gen := &stubGenerator{reply: "try the cortado"}

	body := `{"prompt":"something short and strong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	Ask(gen, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if gen.lastPrompt != "something short and strong" {
		t.Fatalf("unexpected prompt: %q", gen.lastPrompt)
	}
	if !strings.Contains(resp.Body.String(), `"reply":"try the cortado"`) {
		t.Fatalf("expected reply in response: %s", resp.Body.String())
	}
}

func TestAskRequiresPrompt(t *testing.T) {
	gen := &stubGenerator{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	Ask(gen, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAskSurfacesDependencyFailures(t *testing.T) {
	gen := &stubGenerator{err: pkgerrors.New(pkgerrors.CodeDependency, "assistant request failed")}

	body := `{"prompt":"anything"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	Ask(gen, testLogger())(resp, req)

	if resp.Code == http.StatusOK {
		t.Fatal("expected error status")
	}
}
