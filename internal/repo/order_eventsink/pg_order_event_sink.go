package order_eventsink

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"PayPalReconciler/internal/domain/order"
	"PayPalReconciler/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PgOrderEventRepo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

var _ order.EventSink = (*PgOrderEventRepo)(nil)

func NewPgOrderEventRepo(db postgres.Executor, builder squirrel.StatementBuilderType) *PgOrderEventRepo {
	return &PgOrderEventRepo{
		db:      db,
		builder: builder,
	}
}

var eventColumns = []string{"id", "order_id", "kind", "provider_event_id", "data", "created_at"}

// CreateOrderEvent stores events without a provider id as NULL so they never
// collide on the (order_id, kind, provider_event_id) constraint.
func (r *PgOrderEventRepo) CreateOrderEvent(ctx context.Context, event order.NewOrderEvent) (*order.OrderEvent, error) {
	id := uuid.New().String()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	var providerEventID *string
	if event.ProviderEventID != "" {
		providerEventID = &event.ProviderEventID
	}

	query, args, err := r.builder.Insert("order_events").
		Columns(eventColumns...).
		Values(id, event.OrderID, event.Kind, providerEventID, event.Data, event.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if postgres.IsPgErrorUniqueViolation(err) {
		return nil, order.ErrEventAlreadyStored
	}
	if err != nil {
		return nil, fmt.Errorf("create order event: %w", err)
	}

	return &order.OrderEvent{
		EventID:       id,
		NewOrderEvent: event,
	}, nil
}

func (r *PgOrderEventRepo) GetOrderEvents(ctx context.Context, query order.OrderEventQuery) (order.OrderEventPage, error) {
	query.Normalize()

	sqlQuery, args, err := r.buildOrderEventPageQuery(query)
	if err != nil {
		return order.OrderEventPage{}, err
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return order.OrderEventPage{}, fmt.Errorf("query order events: %w", err)
	}
	defer rows.Close()

	items, err := parseOrderEventRows(rows)
	if err != nil {
		return order.OrderEventPage{}, fmt.Errorf("parse order events: %w", err)
	}

	hasMore := len(items) > query.Limit
	if hasMore {
		items = items[:query.Limit] // drop the probe row
	}

	var nextCursor string
	if hasMore {
		last := items[len(items)-1]
		nextCursor = encodeEventCursor(eventCursor{
			EventID:   last.EventID,
			CreatedAt: last.CreatedAt,
		})
	}

	return order.OrderEventPage{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

type eventCursor struct {
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

func encodeEventCursor(c eventCursor) string {
	b, _ := json.Marshal(c)
	return base64.StdEncoding.EncodeToString(b)
}

func decodeEventCursor(s string) (eventCursor, error) {
	var c eventCursor
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return c, fmt.Errorf("%w: %w", order.ErrInvalidCursor, err)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("%w: %w", order.ErrInvalidCursor, err)
	}
	return c, nil
}

// SELECT ... FROM order_events
// WHERE
//
//	order_id IN @OrderIDs
//	AND kind IN @Kinds
//	AND created_at >= @TimeFrom
//	AND created_at < @TimeTo
//	AND (created_at, id) < (@cursor.CreatedAt, @cursor.EventID)
//
// ORDER BY created_at DESC/ASC, id DESC/ASC
// LIMIT @Limit+1
func (r *PgOrderEventRepo) buildOrderEventPageQuery(q order.OrderEventQuery) (string, []any, error) {
	b := r.builder.Select(eventColumns...).
		From("order_events")

	if len(q.OrderIDs) > 0 {
		b = b.Where(squirrel.Eq{"order_id": q.OrderIDs})
	}

	if len(q.Kinds) > 0 {
		b = b.Where(squirrel.Eq{"kind": q.Kinds})
	}

	if q.TimeFrom != nil {
		b = b.Where("created_at >= ?", q.TimeFrom.UTC())
	}

	if q.TimeTo != nil {
		b = b.Where("created_at < ?", q.TimeTo.UTC())
	}

	if q.Cursor != "" {
		cursor, err := decodeEventCursor(q.Cursor)
		if err != nil {
			return "", nil, err
		}

		if q.SortAsc {
			b = b.Where("(created_at, id) > (?, ?)", cursor.CreatedAt.UTC(), cursor.EventID)
		} else {
			b = b.Where("(created_at, id) < (?, ?)", cursor.CreatedAt.UTC(), cursor.EventID)
		}
	}

	if q.SortAsc {
		b = b.OrderBy("created_at ASC", "id ASC")
	} else {
		b = b.OrderBy("created_at DESC", "id DESC")
	}

	sql, args, err := b.Limit(uint64(q.Limit + 1)).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build order event query: %w", err)
	}
	return sql, args, nil
}

func parseOrderEventRows(rows pgx.Rows) ([]order.OrderEvent, error) {
	events := []order.OrderEvent{}
	for rows.Next() {
		var (
			e               order.OrderEvent
			rawKind         string
			providerEventID *string
		)
		err := rows.Scan(&e.EventID, &e.OrderID, &rawKind, &providerEventID, &e.Data, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order event row: %w", err)
		}

		e.Kind = order.OrderEventKind(rawKind)
		if providerEventID != nil {
			e.ProviderEventID = *providerEventID
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order event rows: %w", err)
	}

	return events, nil
}
