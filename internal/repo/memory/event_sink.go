package memory

import (
	"context"
	"encoding/base64"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"PayPalReconciler/internal/domain/order"

	"github.com/google/uuid"
)

var _ order.EventSink = (*EventSink)(nil)

type EventSink struct {
	mu     sync.Mutex
	events []order.OrderEvent
	keys   map[eventKey]struct{}
}

type eventKey struct {
	orderID         string
	kind            order.OrderEventKind
	providerEventID string
}

func NewEventSink() *EventSink {
	return &EventSink{keys: map[eventKey]struct{}{}}
}

func (s *EventSink) CreateOrderEvent(_ context.Context, event order.NewOrderEvent) (*order.OrderEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ProviderEventID != "" {
		key := eventKey{orderID: event.OrderID, kind: event.Kind, providerEventID: event.ProviderEventID}
		if _, ok := s.keys[key]; ok {
			return nil, order.ErrEventAlreadyStored
		}
		s.keys[key] = struct{}{}
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	created := order.OrderEvent{EventID: uuid.New().String(), NewOrderEvent: event}
	s.events = append(s.events, created)
	return &created, nil
}

// GetOrderEvents pages by offset; the cursor is the base64 offset of the next item.
func (s *EventSink) GetOrderEvents(_ context.Context, query order.OrderEventQuery) (order.OrderEventPage, error) {
	query.Normalize()

	offset, err := decodeOffset(query.Cursor)
	if err != nil {
		return order.OrderEventPage{}, err
	}

	s.mu.Lock()
	matched := make([]order.OrderEvent, 0, len(s.events))
	for _, e := range s.events {
		if matches(e, query) {
			matched = append(matched, e)
		}
	}
	s.mu.Unlock()

	slices.SortStableFunc(matched, func(a, b order.OrderEvent) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if c == 0 {
			c = strings.Compare(a.EventID, b.EventID)
		}
		if !query.SortAsc {
			c = -c
		}
		return c
	})

	if offset > len(matched) {
		offset = len(matched)
	}
	end := min(offset+query.Limit, len(matched))

	page := order.OrderEventPage{
		Items:   matched[offset:end],
		HasMore: end < len(matched),
	}
	if page.HasMore {
		page.NextCursor = encodeOffset(end)
	}
	return page, nil
}

func matches(e order.OrderEvent, q order.OrderEventQuery) bool {
	if len(q.OrderIDs) > 0 && !slices.Contains(q.OrderIDs, e.OrderID) {
		return false
	}
	if len(q.Kinds) > 0 && !slices.Contains(q.Kinds, e.Kind) {
		return false
	}
	if q.TimeFrom != nil && e.CreatedAt.Before(*q.TimeFrom) {
		return false
	}
	if q.TimeTo != nil && !e.CreatedAt.Before(*q.TimeTo) {
		return false
	}
	return true
}

func encodeOffset(n int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(n)))
}

func decodeOffset(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", order.ErrInvalidCursor, err)
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad offset %q", order.ErrInvalidCursor, raw)
	}
	return n, nil
}
