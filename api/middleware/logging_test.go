package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

func TestLoggingRecordsHandlerStatus(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	var seen *statusRecorder
	handler := Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.(*statusRecorder)
		w.WriteHeader(http.StatusTeapot)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if resp.Code != http.StatusTeapot {
		t.Fatalf("expected 418 got %d", resp.Code)
	}
	if seen == nil || seen.status != http.StatusTeapot {
		t.Fatalf("expected recorder to capture 418, got %+v", seen)
	}
}

func TestStatusRecorderDefaultsToOKOnWrite(t *testing.T) {
	resp := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: resp}
	if _, err := rec.Write([]byte("ok")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if rec.status != http.StatusOK {
		t.Fatalf("expected implicit 200, got %d", rec.status)
	}
}

func TestStatusRecorderFlushPassesThrough(t *testing.T) {
	resp := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: resp}
	var f http.Flusher = rec
	f.Flush()
	if !resp.Flushed {
		t.Fatal("expected flush to reach the underlying writer")
	}
}
