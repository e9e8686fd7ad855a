package qrcode

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brewdeck/brewdeck-backend/pkg/config"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

var pngMagic = []byte{0x89, 0x50, 0x4e, 0x47}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestImage(t *testing.T) {
	cfg := config.QRConfig{PublicBaseURL: "https://order.brewdeck.app"}
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/qrcode", nil)
	resp := httptest.NewRecorder()
	Image(cfg, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), pngMagic) {
		t.Fatal("expected PNG payload")
	}
}

func TestImageRejectsBadSize(t *testing.T) {
	cfg := config.QRConfig{PublicBaseURL: "https://order.brewdeck.app"}
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/qrcode?size=12", nil)
	resp := httptest.NewRecorder()
	Image(cfg, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestImageRequiresConfiguredURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/qrcode", nil)
	resp := httptest.NewRecorder()
	Image(config.QRConfig{}, testLogger())(resp, req)

	if resp.Code == http.StatusOK {
		t.Fatal("expected error status")
	}
}
