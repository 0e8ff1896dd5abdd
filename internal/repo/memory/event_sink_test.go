package memory

import (
	"context"
	"testing"
	"time"

	"PayPalReconciler/internal/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSink_CreateOrderEvent(t *testing.T) {
	ctx := context.Background()
	s := NewEventSink()
	event := order.NewOrderEvent{
		OrderID:         "order-1",
		Kind:            order.OrderEventStatusChanged,
		ProviderEventID: "WH-1",
		Data:            []byte(`{}`),
	}

	created, err := s.CreateOrderEvent(ctx, event)
	require.NoError(t, err)
	assert.NotEmpty(t, created.EventID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = s.CreateOrderEvent(ctx, event)
	assert.ErrorIs(t, err, order.ErrEventAlreadyStored)

	event.Kind = order.OrderEventRemediationChecked
	_, err = s.CreateOrderEvent(ctx, event)
	assert.NoError(t, err)
}

func TestEventSink_GetOrderEvents(t *testing.T) {
	ctx := context.Background()
	s := NewEventSink()
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	for i := range 5 {
		_, err := s.CreateOrderEvent(ctx, order.NewOrderEvent{
			OrderID:   "order-1",
			Kind:      order.OrderEventStatusChanged,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err := s.CreateOrderEvent(ctx, order.NewOrderEvent{OrderID: "order-2", Kind: order.OrderEventCaptureFailed, CreatedAt: base})
	require.NoError(t, err)

	t.Run("should page newest first", func(t *testing.T) {
		query := order.OrderEventQuery{OrderIDs: []string{"order-1"}, Limit: 2}
		var seen []time.Time
		for {
			page, err := s.GetOrderEvents(ctx, query)
			require.NoError(t, err)
			for _, item := range page.Items {
				seen = append(seen, item.CreatedAt)
			}
			if !page.HasMore {
				break
			}
			query.Cursor = page.NextCursor
		}

		require.Len(t, seen, 5)
		assert.Equal(t, base.Add(4*time.Minute), seen[0])
		assert.Equal(t, base, seen[4])
	})

	t.Run("should filter by kind and time", func(t *testing.T) {
		from := base.Add(time.Minute)
		to := base.Add(3 * time.Minute)

		page, err := s.GetOrderEvents(ctx, order.OrderEventQuery{
			Kinds:    []order.OrderEventKind{order.OrderEventStatusChanged},
			TimeFrom: &from,
			TimeTo:   &to,
			SortAsc:  true,
		})

		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, from, page.Items[0].CreatedAt)
	})

	t.Run("should reject malformed cursor", func(t *testing.T) {
		_, err := s.GetOrderEvents(ctx, order.OrderEventQuery{Cursor: "%%%"})

		assert.ErrorIs(t, err, order.ErrInvalidCursor)
	})
}
