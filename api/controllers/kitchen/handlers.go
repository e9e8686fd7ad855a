// Package kitchen exposes the staff display: the aggregated board read and
// the server-sent event stream that keeps it current.
package kitchen

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brewdeck/brewdeck-backend/api/responses"
	internalkitchen "github.com/brewdeck/brewdeck-backend/internal/kitchen"
	"github.com/brewdeck/brewdeck-backend/internal/realtime"
	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 25 * time.Second

type snapshotter interface {
	Snapshot(ctx context.Context, topic string) (realtime.Event, error)
}

type subscriber interface {
	Subscribe(topics ...string) (<-chan realtime.Event, func())
}

// Board returns the kitchen display projections, optionally narrowed by a
// free-text search term.
func Board(svc internalkitchen.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := svc.Board(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, internalkitchen.NewBoardView(*board))
	}
}

// Events streams order and menu snapshots as server-sent events. Each frame
// is a complete snapshot, so a client that misses frames only renders stale
// data until the next one; there is no delta to replay.
func Events(hub subscriber, snapshots snapshotter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
			return
		}

		topics, err := parseTopics(r.URL.Query().Get("topics"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		events, cancel := hub.Subscribe(topics...)
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)

		// Every stream opens with the current state of each topic.
		for _, topic := range topics {
			event, err := snapshots.Snapshot(r.Context(), topic)
			if err != nil {
				logg.Error(r.Context(), "initial snapshot failed", err)
				continue
			}
			writeEvent(w, event)
		}
		flusher.Flush()

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case event, open := <-events:
				if !open {
					return
				}
				writeEvent(w, event)
				flusher.Flush()
			case <-heartbeat.C:
				fmt.Fprint(w, ": keep-alive\n\n")
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, event realtime.Event) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Topic, event.Payload)
}

func parseTopics(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{realtime.TopicOrders, realtime.TopicMenu}, nil
	}
	var topics []string
	for _, topic := range strings.Split(raw, ",") {
		switch topic = strings.TrimSpace(topic); topic {
		case realtime.TopicOrders, realtime.TopicMenu:
			topics = append(topics, topic)
		default:
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown topic "+topic)
		}
	}
	return topics, nil
}
