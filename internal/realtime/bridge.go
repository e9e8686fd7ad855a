package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/brewdeck/brewdeck-backend/internal/menu"
	"github.com/brewdeck/brewdeck-backend/internal/orders"
	"github.com/brewdeck/brewdeck-backend/pkg/db/models"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

type ordersFeed interface {
	Feed(ctx context.Context) ([]models.Order, error)
}

type menuCatalog interface {
	GetSnapshot(ctx context.Context) (*menu.Snapshot, error)
}

type subscriberClient interface {
	Subscribe(ctx context.Context, channels ...string) (*goredis.PubSub, error)
	EventsChannel(name string) string
}

// BridgeParams configure the change-feed bridge.
type BridgeParams struct {
	Client subscriberClient
	Hub    *Hub
	Orders ordersFeed
	Menu   menuCatalog
	Logger *logger.Logger
}

// Bridge consumes Redis change announcements, reloads the affected snapshot,
// and broadcasts it through the hub. Running one bridge per API instance
// keeps every instance's SSE clients current regardless of which instance
// took the write.
type Bridge struct {
	client subscriberClient
	hub    *Hub
	orders ordersFeed
	menu   menuCatalog
	logg   *logger.Logger
}

// NewBridge builds a change-feed bridge.
func NewBridge(params BridgeParams) (*Bridge, error) {
	if params.Client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if params.Hub == nil {
		return nil, fmt.Errorf("hub required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders feed required")
	}
	if params.Menu == nil {
		return nil, fmt.Errorf("menu catalog required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Bridge{
		client: params.Client,
		hub:    params.Hub,
		orders: params.Orders,
		menu:   params.Menu,
		logg:   params.Logger,
	}, nil
}

// Snapshot builds the current frame for a topic. The SSE controller uses it
// for the initial payload on connect; Run uses it for every announcement.
func (b *Bridge) Snapshot(ctx context.Context, topic string) (Event, error) {
	switch topic {
	case TopicOrders:
		list, err := b.orders.Feed(ctx)
		if err != nil {
			return Event{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order feed")
		}
		payload, err := json.Marshal(map[string]any{"orders": orders.NewViewList(list)})
		if err != nil {
			return Event{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order feed")
		}
		return Event{Topic: TopicOrders, Payload: payload}, nil
	case TopicMenu:
		snapshot, err := b.menu.GetSnapshot(ctx)
		if err != nil {
			return Event{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu snapshot")
		}
		payload, err := json.Marshal(menu.NewSnapshotView(*snapshot))
		if err != nil {
			return Event{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode menu snapshot")
		}
		return Event{Topic: TopicMenu, Payload: payload}, nil
	default:
		return Event{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown feed topic %q", topic))
	}
}

// Run consumes the Redis change channels until the context is canceled.
func (b *Bridge) Run(ctx context.Context) error {
	sub, err := b.client.Subscribe(ctx,
		b.client.EventsChannel(TopicOrders),
		b.client.EventsChannel(TopicMenu),
	)
	if err != nil {
		return fmt.Errorf("subscribe change feed: %w", err)
	}
	defer sub.Close()

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logg.Info(ctx, "change-feed bridge context canceled")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			b.refresh(ctx, topicFromChannel(msg.Channel))
		}
	}
}

func (b *Bridge) refresh(ctx context.Context, topic string) {
	if topic == "" {
		return
	}
	event, err := b.Snapshot(ctx, topic)
	if err != nil {
		logCtx := b.logg.WithField(ctx, "topic", topic)
		b.logg.Error(logCtx, "failed to rebuild change-feed snapshot", err)
		return
	}
	b.hub.Broadcast(event)
}

// topicFromChannel strips the namespace prefix from a Redis channel name.
func topicFromChannel(channel string) string {
	idx := strings.LastIndex(channel, ":")
	if idx < 0 {
		return ""
	}
	switch topic := channel[idx+1:]; topic {
	case TopicOrders, TopicMenu:
		return topic
	default:
		return ""
	}
}
