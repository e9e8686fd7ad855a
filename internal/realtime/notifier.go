package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

type publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
	EventsChannel(name string) string
}

// Notifier announces store changes on the shared Redis change feed. Write
// paths call it after commit; the bridge turns each announcement into a
// fresh snapshot for connected clients.
type Notifier struct {
	client publisher
	logg   *logger.Logger
}

// NewNotifier builds a change-feed notifier.
func NewNotifier(client publisher, logg *logger.Logger) (*Notifier, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Notifier{client: client, logg: logg}, nil
}

// OrdersChanged announces a change to the order feed.
func (n *Notifier) OrdersChanged(ctx context.Context) {
	n.announce(ctx, TopicOrders)
}

// MenuChanged announces a change to the menu catalog.
func (n *Notifier) MenuChanged(ctx context.Context) {
	n.announce(ctx, TopicMenu)
}

func (n *Notifier) announce(ctx context.Context, topic string) {
	channel := n.client.EventsChannel(topic)
	payload := time.Now().UTC().Format(time.RFC3339Nano)
	if err := n.client.Publish(ctx, channel, payload); err != nil {
		logCtx := n.logg.WithField(ctx, "topic", topic)
		n.logg.Error(logCtx, "failed to publish change event", err)
	}
}
