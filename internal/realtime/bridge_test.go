package realtime

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/brewdeck/brewdeck-backend/internal/menu"
	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	"github.com/brewdeck/brewdeck-backend/pkg/enums"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

type stubSubscriber struct{}

func (stubSubscriber) Subscribe(ctx context.Context, channels ...string) (*goredis.PubSub, error) {
	return nil, nil
}

func (stubSubscriber) EventsChannel(name string) string { return "bd:events:" + name }

type stubFeed struct {
	orders []models.Order
}

func (f *stubFeed) Feed(ctx context.Context) ([]models.Order, error) {
	return f.orders, nil
}

type stubMenu struct {
	snapshot menu.Snapshot
}

func (m *stubMenu) GetSnapshot(ctx context.Context) (*menu.Snapshot, error) {
	return &m.snapshot, nil
}

func newTestBridge(t *testing.T) *Bridge {
	t.Helper()
	feed := &stubFeed{orders: []models.Order{{
		ID:           uuid.New(),
		CustomerName: "Alex",
		Status:       enums.OrderStatusPending,
		Total:        decimal.NewFromFloat(4.00),
		FinalTotal:   decimal.NewFromFloat(4.00),
	}}}
	catalog := &stubMenu{snapshot: menu.Snapshot{
		Drinks:     []models.Drink{{ID: "drink-1", Name: "Latte", CategoryID: "cat-1"}},
		Categories: []models.Category{{ID: "cat-1", Name: "Coffee"}},
	}}
	bridge, err := NewBridge(BridgeParams{
		Client: stubSubscriber{},
		Hub:    NewHub(),
		Orders: feed,
		Menu:   catalog,
		Logger: logger.New(logger.Options{ServiceName: "test"}),
	})
	if err != nil {
		t.Fatalf("NewBridge: %v", err)
	}
	return bridge
}

func TestBridgeSnapshotOrders(t *testing.T) {
	bridge := newTestBridge(t)

	event, err := bridge.Snapshot(context.Background(), TopicOrders)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if event.Topic != TopicOrders {
		t.Fatalf("unexpected topic %q", event.Topic)
	}

	var payload struct {
		Orders []struct {
			CustomerName string `json:"customerName"`
			Status       string `json:"status"`
		} `json:"orders"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(payload.Orders) != 1 || payload.Orders[0].CustomerName != "Alex" {
		t.Fatalf("unexpected payload %s", event.Payload)
	}
	if payload.Orders[0].Status != string(enums.OrderStatusPending) {
		t.Fatalf("unexpected status %q", payload.Orders[0].Status)
	}
}

func TestBridgeSnapshotMenu(t *testing.T) {
	bridge := newTestBridge(t)

	event, err := bridge.Snapshot(context.Background(), TopicMenu)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	var payload struct {
		Drinks []struct {
			ID string `json:"id"`
		} `json:"drinks"`
		ModifierGroups []any `json:"modifierGroups"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(payload.Drinks) != 1 || payload.Drinks[0].ID != "drink-1" {
		t.Fatalf("unexpected payload %s", event.Payload)
	}
	if payload.ModifierGroups == nil {
		t.Fatal("expected empty modifier group list, got null")
	}
}

func TestBridgeSnapshotUnknownTopic(t *testing.T) {
	bridge := newTestBridge(t)

	_, err := bridge.Snapshot(context.Background(), "licenses")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTopicFromChannel(t *testing.T) {
	cases := map[string]string{
		"bd:events:orders": TopicOrders,
		"bd:events:menu":   TopicMenu,
		"bd:events:other":  "",
		"orders":           "",
	}
	for channel, want := range cases {
		if got := topicFromChannel(channel); got != want {
			t.Fatalf("topicFromChannel(%q) = %q, want %q", channel, got, want)
		}
	}
}
