package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

type stubActivator struct {
	activated int
	err       error
	calls     int
	lastNow   time.Time
}

func (a *stubActivator) ActivateScheduled(ctx context.Context, now time.Time) (int, error) {
	a.calls++
	a.lastNow = now
	return a.activated, a.err
}

func TestActivationJobRun(t *testing.T) {
	activator := &stubActivator{activated: 2}
	job, err := NewActivationJob(activator, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("NewActivationJob: %v", err)
	}
	if job.Name() != "scheduled-order-activation" {
		t.Fatalf("unexpected job name %q", job.Name())
	}

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if activator.calls != 1 {
		t.Fatalf("expected 1 activation call, got %d", activator.calls)
	}
	if activator.lastNow.IsZero() {
		t.Fatal("expected a wall-clock timestamp")
	}
}

func TestActivationJobPropagatesErrors(t *testing.T) {
	activator := &stubActivator{err: errors.New("db down")}
	job, err := NewActivationJob(activator, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("NewActivationJob: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
