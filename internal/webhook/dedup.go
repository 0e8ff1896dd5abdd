package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"PayPalReconciler/pkg/metrics"
)

// ErrDeliveryInFlight means another worker holds the claim for this event.
// The provider will redeliver.
var ErrDeliveryInFlight = errors.New("webhook delivery already in flight")

type ClaimState int

const (
	ClaimAcquired ClaimState = iota
	ClaimInFlight
	ClaimCompleted
)

//go:generate mockgen -source dedup.go -destination mock_dedup.go -package webhook

// DeliveryStore records which provider event ids were processed.
type DeliveryStore interface {
	// Claim takes a lease on key unless it is held or completed.
	Claim(ctx context.Context, key string, lease time.Duration) (ClaimState, error)
	// Complete marks key done for ttl.
	Complete(ctx context.Context, key string, ttl time.Duration) error
	// Release drops a lease so a redelivery can claim it.
	Release(ctx context.Context, key string) error
}

// DeliveryGuard runs a dispatch at most once per provider event id.
// It is an optimisation; SetStatus idempotency holds without it.
type DeliveryGuard struct {
	store  DeliveryStore
	lease  time.Duration
	ttl    time.Duration
	logger *slog.Logger
}

func NewDeliveryGuard(store DeliveryStore, lease, ttl time.Duration, logger *slog.Logger) *DeliveryGuard {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeliveryGuard{
		store:  store,
		lease:  lease,
		ttl:    ttl,
		logger: logger,
	}
}

func deliveryKey(eventID string) string {
	return "paypal:webhook:" + eventID
}

func (g *DeliveryGuard) Run(ctx context.Context, event Event, dispatch func(context.Context, Event) error) error {
	if event.ID() == "" {
		return dispatch(ctx, event)
	}
	key := deliveryKey(event.ID())

	state, err := g.store.Claim(ctx, key, g.lease)
	if err != nil {
		// The store being down must not block deliveries.
		g.logger.WarnContext(ctx, "Delivery store unavailable, dispatching without guard",
			"key", key,
			slog.Any("error", err))
		return dispatch(ctx, event)
	}

	switch state {
	case ClaimCompleted:
		metrics.WebhookEventsTotal.WithLabelValues(event.EventType(), metrics.OutcomeDuplicate).Inc()
		g.logger.InfoContext(ctx, "Duplicate webhook delivery acknowledged",
			"event_type", event.EventType(),
			"paypal_event_id", event.ID())
		return nil
	case ClaimInFlight:
		return fmt.Errorf("%w: %s", ErrDeliveryInFlight, event.ID())
	}

	if err := dispatch(ctx, event); err != nil {
		if relErr := g.store.Release(ctx, key); relErr != nil {
			g.logger.WarnContext(ctx, "Failed to release delivery claim", "key", key, slog.Any("error", relErr))
		}
		return err
	}

	if err := g.store.Complete(ctx, key, g.ttl); err != nil {
		g.logger.WarnContext(ctx, "Failed to mark delivery completed", "key", key, slog.Any("error", err))
	}
	return nil
}
