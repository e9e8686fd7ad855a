package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/brewdeck/brewdeck-backend/pkg/logger"
)

type orderActivator interface {
	ActivateScheduled(ctx context.Context, now time.Time) (int, error)
}

// NewActivationJob builds the job that moves scheduled orders into the
// kitchen queue once their pickup time enters the preparation lead.
func NewActivationJob(service orderActivator, logg *logger.Logger) (Job, error) {
	if service == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &activationJob{service: service, logg: logg, now: time.Now}, nil
}

type activationJob struct {
	service orderActivator
	logg    *logger.Logger
	now     func() time.Time
}

func (j *activationJob) Name() string { return "scheduled-order-activation" }

func (j *activationJob) Run(ctx context.Context) error {
	activated, err := j.service.ActivateScheduled(ctx, j.now().UTC())
	if activated > 0 {
		logCtx := j.logg.WithField(ctx, "activated", activated)
		j.logg.Info(logCtx, "scheduled orders moved into the queue")
	}
	if err != nil {
		return fmt.Errorf("activate scheduled orders: %w", err)
	}
	return nil
}
