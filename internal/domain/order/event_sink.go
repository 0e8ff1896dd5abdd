package order

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate mockgen -source event_sink.go -destination mock_event_sink.go -package order

type EventSink interface {
	// CreateOrderEvent returns ErrEventAlreadyStored when an event with the same
	// (order_id, kind, provider_event_id) exists.
	CreateOrderEvent(ctx context.Context, event NewOrderEvent) (*OrderEvent, error)
	GetOrderEvents(ctx context.Context, query OrderEventQuery) (OrderEventPage, error)
}

type OrderEvent struct {
	EventID string `json:"event_id"`
	NewOrderEvent
}

// NewOrderEvent carries derived fields only, never the raw provider payload.
type NewOrderEvent struct {
	OrderID         string          `json:"order_id"`
	Kind            OrderEventKind  `json:"kind"`
	ProviderEventID string          `json:"provider_event_id"`
	Data            json.RawMessage `json:"data"`
	CreatedAt       time.Time       `json:"created_at"`
}

type OrderEventKind string

const (
	OrderEventStatusChanged      OrderEventKind = "status_changed"
	OrderEventCaptureRequested   OrderEventKind = "capture_requested"
	OrderEventCaptureFailed      OrderEventKind = "capture_failed"
	OrderEventRemediationChecked OrderEventKind = "remediation_checked"
	OrderEventRemediationSkipped OrderEventKind = "remediation_skipped"
)

type OrderEventPage struct {
	Items      []OrderEvent `json:"items"`
	NextCursor string       `json:"next_cursor"`
	HasMore    bool         `json:"has_more"`
}

type OrderEventQuery struct {
	OrderIDs []string         `json:"order_ids" url:"order_ids" form:"order_ids,omitempty"`
	Kinds    []OrderEventKind `json:"kinds" url:"kinds" form:"kinds,omitempty"`

	TimeFrom *time.Time `json:"time_from,omitempty" url:"time_from,omitempty" form:"time_from,omitempty"`
	TimeTo   *time.Time `json:"time_to,omitempty" url:"time_to,omitempty" form:"time_to,omitempty"`

	Limit   int    `json:"limit" url:"limit" form:"limit"`
	Cursor  string `json:"cursor" url:"cursor" form:"cursor"`
	SortAsc bool   `json:"sort_asc" url:"sort_asc" form:"sort_asc"`
}

const (
	DefaultEventPageLimit = 10
	MaxEventPageLimit     = 1000
)

// Normalize clamps Limit into [1, MaxEventPageLimit].
func (q *OrderEventQuery) Normalize() {
	if q.Limit <= 0 {
		q.Limit = DefaultEventPageLimit
	}
	if q.Limit > MaxEventPageLimit {
		q.Limit = MaxEventPageLimit
	}
}

// NopEventSink discards events.
type NopEventSink struct{}

func (NopEventSink) CreateOrderEvent(_ context.Context, event NewOrderEvent) (*OrderEvent, error) {
	return &OrderEvent{NewOrderEvent: event}, nil
}

func (NopEventSink) GetOrderEvents(context.Context, OrderEventQuery) (OrderEventPage, error) {
	return OrderEventPage{Items: []OrderEvent{}}, nil
}
