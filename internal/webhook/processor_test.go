package webhook

import (
	"context"
	"errors"
	"testing"
	"time"

	"PayPalReconciler/internal/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockPublisher captures the last published envelope for assertions.
type mockPublisher struct {
	lastEnvelope messaging.Envelope
	published    int
	publishErr   error
}

func (m *mockPublisher) Publish(_ context.Context, env messaging.Envelope) error {
	m.lastEnvelope = env
	m.published++
	return m.publishErr
}

func (m *mockPublisher) Close() error {
	return nil
}

type dispatchRecorder struct {
	calls int
	err   error
}

func (d *dispatchRecorder) Dispatch(context.Context, Event) error {
	d.calls++
	return d.err
}

func TestSyncProcessor_Process(t *testing.T) {
	t.Parallel()

	t.Run("should dispatch directly without guard", func(t *testing.T) {
		dispatcher := &dispatchRecorder{err: errors.New("boom")}

		err := NewSyncProcessor(dispatcher).Process(context.Background(), NewEvent(nil, "X"))

		assert.EqualError(t, err, "boom")
		assert.Equal(t, 1, dispatcher.calls)
	})
}

func TestAsyncProcessor_Process(t *testing.T) {
	t.Parallel()

	t.Run("should key envelope by related order id", func(t *testing.T) {
		// given
		pub := &mockPublisher{}
		processor := NewAsyncProcessor(pub, DefaultRegistry())
		event := loadEvent(t, "payment_capture_completed.json")

		// when
		err := processor.Process(context.Background(), event)

		// then
		require.NoError(t, err)
		assert.Equal(t, "5O190127TN364715T", pub.lastEnvelope.Key)
		assert.Equal(t, "WH-58D329510W468432D-8HN650336L201105X", pub.lastEnvelope.EventID)
		assert.Equal(t, EventPaymentCaptureCompleted, pub.lastEnvelope.Type)

		decoded, err := EventFromJSON(pub.lastEnvelope.Payload)
		require.NoError(t, err)
		assert.Equal(t, event.Resource().String("id"), decoded.Resource().String("id"))
	})

	t.Run("should key order events by resource id", func(t *testing.T) {
		pub := &mockPublisher{}

		err := NewAsyncProcessor(pub, DefaultRegistry()).Process(context.Background(), loadEvent(t, "checkout_order_approved.json"))

		require.NoError(t, err)
		assert.Equal(t, "5O190127TN364715T", pub.lastEnvelope.Key)
	})

	t.Run("should reject unknown type without publishing", func(t *testing.T) {
		pub := &mockPublisher{}

		err := NewAsyncProcessor(pub, DefaultRegistry()).Process(context.Background(), NewEvent(nil, "UNKNOWN.TYPE"))

		assert.ErrorIs(t, err, ErrHandlerNotFound)
		assert.Zero(t, pub.published)
	})

	t.Run("should return publish error", func(t *testing.T) {
		pub := &mockPublisher{publishErr: errors.New("broker down")}

		err := NewAsyncProcessor(pub, DefaultRegistry()).Process(context.Background(), loadEvent(t, "checkout_order_approved.json"))

		assert.EqualError(t, err, "broker down")
	})
}

func TestDeliveryGuard_Run(t *testing.T) {
	t.Parallel()

	const (
		lease = 2 * time.Minute
		ttl   = 72 * time.Hour
		key   = "paypal:webhook:WH-1"
	)
	ctx := context.Background()
	event := NewEvent(map[string]any{"id": "WH-1"}, EventPaymentCaptureCompleted)

	testCases := []struct {
		name          string
		mock          func(store *MockDeliveryStore)
		dispatchErr   error
		wantCalls     int
		expectedError error
	}{
		{
			name: "should dispatch and complete first delivery",
			mock: func(store *MockDeliveryStore) {
				store.EXPECT().Claim(ctx, key, lease).Return(ClaimAcquired, nil)
				store.EXPECT().Complete(ctx, key, ttl).Return(nil)
			},
			wantCalls: 1,
		},
		{
			name: "should acknowledge completed duplicate",
			mock: func(store *MockDeliveryStore) {
				store.EXPECT().Claim(ctx, key, lease).Return(ClaimCompleted, nil)
			},
			wantCalls: 0,
		},
		{
			name: "should reject in-flight duplicate",
			mock: func(store *MockDeliveryStore) {
				store.EXPECT().Claim(ctx, key, lease).Return(ClaimInFlight, nil)
			},
			wantCalls:     0,
			expectedError: ErrDeliveryInFlight,
		},
		{
			name: "should release claim when dispatch fails",
			mock: func(store *MockDeliveryStore) {
				store.EXPECT().Claim(ctx, key, lease).Return(ClaimAcquired, nil)
				store.EXPECT().Release(ctx, key).Return(nil)
			},
			dispatchErr:   ErrOrderNotFound,
			wantCalls:     1,
			expectedError: ErrOrderNotFound,
		},
		{
			name: "should dispatch when store is unavailable",
			mock: func(store *MockDeliveryStore) {
				store.EXPECT().Claim(ctx, key, lease).Return(ClaimAcquired, errors.New("dial tcp: connection refused"))
			},
			wantCalls: 1,
		},
		{
			name: "should not fail when completion cannot be stored",
			mock: func(store *MockDeliveryStore) {
				store.EXPECT().Claim(ctx, key, lease).Return(ClaimAcquired, nil)
				store.EXPECT().Complete(ctx, key, ttl).Return(errors.New("READONLY"))
			},
			wantCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// given
			store := NewMockDeliveryStore(gomock.NewController(t))
			tc.mock(store)
			dispatcher := &dispatchRecorder{err: tc.dispatchErr}
			processor := NewSyncProcessor(dispatcher, WithDeliveryGuard(NewDeliveryGuard(store, lease, ttl, quietDeps().Logger)))

			// when
			err := processor.Process(ctx, event)

			// then
			assert.Equal(t, tc.wantCalls, dispatcher.calls)
			if tc.expectedError == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectedError)
			}
		})
	}

	t.Run("should bypass guard for events without id", func(t *testing.T) {
		t.Parallel()

		store := NewMockDeliveryStore(gomock.NewController(t))
		dispatcher := &dispatchRecorder{}
		guard := NewDeliveryGuard(store, lease, ttl, nil)

		err := guard.Run(ctx, NewEvent(nil, EventPaymentCaptureCompleted), dispatcher.Dispatch)

		require.NoError(t, err)
		assert.Equal(t, 1, dispatcher.calls)
	})
}
