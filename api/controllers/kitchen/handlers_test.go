package kitchen

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	internalkitchen "github.com/brewdeck/brewdeck-backend/internal/kitchen"
	"github.com/brewdeck/brewdeck-backend/internal/realtime"
	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

type stubBoardService struct {
	board func(ctx context.Context, search string) (*internalkitchen.Board, error)
}

func (s *stubBoardService) Board(ctx context.Context, search string) (*internalkitchen.Board, error) {
	return s.board(ctx, search)
}

type stubHub struct {
	events chan realtime.Event
	topics []string
}

func (s *stubHub) Subscribe(topics ...string) (<-chan realtime.Event, func()) {
	s.topics = topics
	return s.events, func() {}
}

type stubSnapshots struct {
	payloads map[string][]byte
}

func (s stubSnapshots) Snapshot(ctx context.Context, topic string) (realtime.Event, error) {
	payload, ok := s.payloads[topic]
	if !ok {
		return realtime.Event{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown topic")
	}
	return realtime.Event{Topic: topic, Payload: payload}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestBoardPassesSearchTerm(t *testing.T) {
	var gotSearch string
	svc := &stubBoardService{
		board: func(ctx context.Context, search string) (*internalkitchen.Board, error) {
			gotSearch = search
			return &internalkitchen.Board{Pending: []models.Order{}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/kitchen/board?search=alex", nil)
	resp := httptest.NewRecorder()
	Board(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotSearch != "alex" {
		t.Fatalf("unexpected search term: %q", gotSearch)
	}

	var envelope struct {
		Data internalkitchen.BoardView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Pending == nil || envelope.Data.ByItem == nil {
		t.Fatal("expected board sections to serialize as empty lists")
	}
}

func TestEventsStreamsInitialSnapshotsAndUpdates(t *testing.T) {
	hub := &stubHub{events: make(chan realtime.Event, 1)}
	hub.events <- realtime.Event{Topic: realtime.TopicOrders, Payload: []byte(`{"orders":[1]}`)}
	close(hub.events)

	snapshots := stubSnapshots{payloads: map[string][]byte{
		realtime.TopicOrders: []byte(`{"orders":[]}`),
		realtime.TopicMenu:   []byte(`{"drinks":[]}`),
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/kitchen/events", nil)
	resp := httptest.NewRecorder()
	Events(hub, snapshots, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("unexpected content type %q", got)
	}
	if len(hub.topics) != 2 {
		t.Fatalf("expected both topics subscribed, got %v", hub.topics)
	}

	body := resp.Body.String()
	frames := strings.Count(body, "event: ")
	if frames != 3 {
		t.Fatalf("expected 3 frames (2 initial + 1 update), got %d: %s", frames, body)
	}
	if !strings.Contains(body, "event: menu\ndata: {\"drinks\":[]}") {
		t.Fatalf("missing menu snapshot frame: %s", body)
	}
	if !strings.Contains(body, `{"orders":[1]}`) {
		t.Fatalf("missing broadcast frame: %s", body)
	}
}

func TestEventsKeepsStreamingWhenSnapshotFails(t *testing.T) {
	hub := &stubHub{events: make(chan realtime.Event, 1)}
	hub.events <- realtime.Event{Topic: realtime.TopicOrders, Payload: []byte(`{"orders":[1]}`)}
	close(hub.events)

	// Only the menu snapshot resolves; the orders one errors.
	snapshots := stubSnapshots{payloads: map[string][]byte{
		realtime.TopicMenu: []byte(`{"drinks":[]}`),
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/kitchen/events", nil)
	resp := httptest.NewRecorder()
	Events(hub, snapshots, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "event: menu\ndata: {\"drinks\":[]}") {
		t.Fatalf("missing surviving snapshot frame: %s", body)
	}
	if !strings.Contains(body, `{"orders":[1]}`) {
		t.Fatalf("missing broadcast frame after snapshot failure: %s", body)
	}
}

func TestEventsFiltersTopics(t *testing.T) {
	hub := &stubHub{events: make(chan realtime.Event)}
	close(hub.events)
	snapshots := stubSnapshots{payloads: map[string][]byte{
		realtime.TopicMenu: []byte(`{"drinks":[]}`),
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/kitchen/events?topics=menu", nil)
	resp := httptest.NewRecorder()
	Events(hub, snapshots, testLogger())(resp, req)

	if len(hub.topics) != 1 || hub.topics[0] != realtime.TopicMenu {
		t.Fatalf("expected menu-only subscription, got %v", hub.topics)
	}
}

func TestEventsRejectsUnknownTopic(t *testing.T) {
	hub := &stubHub{events: make(chan realtime.Event)}
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/kitchen/events?topics=weather", nil)
	resp := httptest.NewRecorder()
	Events(hub, stubSnapshots{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
