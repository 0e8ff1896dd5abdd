package webhook

import (
	"context"
	"errors"
	"testing"

	"PayPalReconciler/pkg/correlation"
	"PayPalReconciler/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		EventCheckoutOrderApproved,
		EventCheckoutOrderCompleted,
		EventPaymentCaptureCompleted,
		EventPaymentCaptureDenied,
		EventPaymentCaptureRefunded,
	}, DefaultRegistry().EventTypes())
}

func TestRegistry_CopiesMapping(t *testing.T) {
	t.Parallel()

	mapping := map[string]HandlerFactory{"A": NewCheckoutOrderApprovedHandler}
	registry := NewRegistry(mapping)
	mapping["B"] = NewCheckoutOrderCompletedHandler

	_, ok := registry.Lookup("B")
	assert.False(t, ok)
}

func TestDispatcher_RoutesToRegisteredHandler(t *testing.T) {
	t.Parallel()

	var called []string
	mapping := map[string]HandlerFactory{}
	for _, eventType := range DefaultRegistry().EventTypes() {
		mapping[eventType] = func(Deps) Handler {
			return HandlerFunc(func(_ context.Context, event Event) error {
				called = append(called, eventType+"<-"+event.EventType())
				return nil
			})
		}
	}
	dispatcher := NewDispatcher(NewRegistry(mapping), quietDeps())

	for _, eventType := range DefaultRegistry().EventTypes() {
		// when
		err := dispatcher.Dispatch(context.Background(), NewEvent(nil, eventType))

		// then
		require.NoError(t, err)
	}
	for i, eventType := range DefaultRegistry().EventTypes() {
		assert.Equal(t, eventType+"<-"+eventType, called[i])
	}
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("should return handler not found for unknown type", func(t *testing.T) {
		// given
		dispatcher := NewDispatcher(DefaultRegistry(), quietDeps())
		before := testutil.ToFloat64(metrics.WebhookEventsTotal.WithLabelValues("unknown", metrics.OutcomeUnsupported))

		// when
		err := dispatcher.Dispatch(ctx, NewEvent(map[string]any{"id": "WH-1"}, "BILLING.SUBSCRIPTION.CREATED"))

		// then
		var notFound *HandlerNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "BILLING.SUBSCRIPTION.CREATED", notFound.EventType)
		assert.ErrorIs(t, err, ErrHandlerNotFound)
		assert.True(t, IsPermanent(err))
		assert.Equal(t, before+1, testutil.ToFloat64(metrics.WebhookEventsTotal.WithLabelValues("unknown", metrics.OutcomeUnsupported)))
	})

	t.Run("should swallow recoverable errors", func(t *testing.T) {
		// given
		dispatcher := NewDispatcher(NewRegistry(map[string]HandlerFactory{
			"TEST.RECOVERABLE": func(Deps) Handler {
				return HandlerFunc(func(context.Context, Event) error {
					return Recoverable("notify", errors.New("smtp down"))
				})
			},
		}), quietDeps())

		// when
		err := dispatcher.Dispatch(ctx, NewEvent(nil, "TEST.RECOVERABLE"))

		// then
		assert.NoError(t, err)
	})

	t.Run("should propagate other errors", func(t *testing.T) {
		// given
		wantErr := &OrderNotFoundError{TransactionID: "TXN1"}
		dispatcher := NewDispatcher(NewRegistry(map[string]HandlerFactory{
			"TEST.FAIL": func(Deps) Handler {
				return HandlerFunc(func(context.Context, Event) error { return wantErr })
			},
		}), quietDeps())

		// when
		err := dispatcher.Dispatch(ctx, NewEvent(nil, "TEST.FAIL"))

		// then
		assert.Same(t, wantErr, err)
	})

	t.Run("should put provider event id on context", func(t *testing.T) {
		// given
		var seen string
		dispatcher := NewDispatcher(NewRegistry(map[string]HandlerFactory{
			"TEST.CTX": func(Deps) Handler {
				return HandlerFunc(func(ctx context.Context, _ Event) error {
					seen = correlation.EventIDFromContext(ctx)
					return nil
				})
			},
		}), quietDeps())

		// when
		err := dispatcher.Dispatch(ctx, NewEvent(map[string]any{"id": "WH-42"}, "TEST.CTX"))

		// then
		require.NoError(t, err)
		assert.Equal(t, "WH-42", seen)
	})
}
