package opensearch

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"PayPalReconciler/internal/domain/order"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go"
)

var _ order.EventSink = (*OrderEventSink)(nil)

// eventNamespace seeds deterministic document ids so a replayed provider
// event maps onto the same document.
var eventNamespace = uuid.MustParse("8c9c5f8e-3b0e-4f57-9a0e-6f1f3f5b2a10")

func NewClient(urls []string) (*opensearch.Client, error) {
	if len(urls) == 0 {
		return nil, errors.New("no OpenSearch addresses configured")
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: urls,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opensearch client: %w", err)
	}
	return client, nil
}

// OrderEventSink stores order audit events in one index.
type OrderEventSink struct {
	client *opensearch.Client
	index  string
}

func NewOrderEventSink(ctx context.Context, client *opensearch.Client, index string) (*OrderEventSink, error) {
	sink := &OrderEventSink{client: client, index: index}
	if err := sink.ensureIndex(ctx); err != nil {
		return nil, err
	}
	return sink, nil
}

func (s *OrderEventSink) ensureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("indices.exists: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body := map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"event_id":          map[string]any{"type": "keyword"},
				"order_id":          map[string]any{"type": "keyword"},
				"kind":              map[string]any{"type": "keyword"},
				"provider_event_id": map[string]any{"type": "keyword"},
				"created_at":        map[string]any{"type": "date"},
				"data":              map[string]any{"type": "object", "enabled": false},
			},
		},
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}

	cr, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(bytes.NewReader(buf)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("indices.create: %w", err)
	}
	defer cr.Body.Close()

	// Another replica may have created it between Exists and Create.
	if cr.IsError() && cr.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("indices.create error: %s", cr.String())
	}
	return nil
}

type orderEventDoc struct {
	EventID         string               `json:"event_id"`
	OrderID         string               `json:"order_id"`
	Kind            order.OrderEventKind `json:"kind"`
	ProviderEventID string               `json:"provider_event_id,omitempty"`
	Data            json.RawMessage      `json:"data,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

func documentID(ev order.NewOrderEvent) string {
	if ev.ProviderEventID == "" {
		return uuid.NewString()
	}
	key := ev.OrderID + "|" + string(ev.Kind) + "|" + ev.ProviderEventID
	return uuid.NewSHA1(eventNamespace, []byte(key)).String()
}

// CreateOrderEvent uses the create op type so a second write of the same
// (order_id, kind, provider_event_id) fails with a conflict.
func (s *OrderEventSink) CreateOrderEvent(ctx context.Context, ev order.NewOrderEvent) (*order.OrderEvent, error) {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	eventID := documentID(ev)

	payload, err := json.Marshal(orderEventDoc{
		EventID:         eventID,
		OrderID:         ev.OrderID,
		Kind:            ev.Kind,
		ProviderEventID: ev.ProviderEventID,
		Data:            ev.Data,
		CreatedAt:       ev.CreatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(payload),
		s.client.Index.WithDocumentID(eventID),
		s.client.Index.WithOpType("create"),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusConflict {
		return nil, order.ErrEventAlreadyStored
	}
	if res.IsError() {
		return nil, fmt.Errorf("index error: %s", res.String())
	}

	return &order.OrderEvent{EventID: eventID, NewOrderEvent: ev}, nil
}

type searchCursor struct {
	CreatedAt int64  `json:"t"`
	EventID   string `json:"id"`
}

func encodeCursor(c searchCursor) string {
	raw, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(s string) (searchCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return searchCursor{}, fmt.Errorf("%w: %w", order.ErrInvalidCursor, err)
	}
	var c searchCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return searchCursor{}, fmt.Errorf("%w: %w", order.ErrInvalidCursor, err)
	}
	return c, nil
}

func (s *OrderEventSink) searchBody(query order.OrderEventQuery) (map[string]any, error) {
	filters := make([]map[string]any, 0, 3)
	if len(query.OrderIDs) > 0 {
		filters = append(filters, map[string]any{"terms": map[string]any{"order_id": query.OrderIDs}})
	}
	if len(query.Kinds) > 0 {
		filters = append(filters, map[string]any{"terms": map[string]any{"kind": query.Kinds}})
	}
	if query.TimeFrom != nil || query.TimeTo != nil {
		rng := map[string]any{}
		if query.TimeFrom != nil {
			rng["gte"] = query.TimeFrom.UTC().Format(time.RFC3339Nano)
		}
		if query.TimeTo != nil {
			rng["lte"] = query.TimeTo.UTC().Format(time.RFC3339Nano)
		}
		filters = append(filters, map[string]any{"range": map[string]any{"created_at": rng}})
	}

	direction := "desc"
	if query.SortAsc {
		direction = "asc"
	}

	body := map[string]any{
		"size":  query.Limit + 1,
		"query": map[string]any{"bool": map[string]any{"filter": filters}},
		"sort": []map[string]any{
			{"created_at": map[string]any{"order": direction}},
			{"event_id": map[string]any{"order": direction}},
		},
	}

	if query.Cursor != "" {
		c, err := decodeCursor(query.Cursor)
		if err != nil {
			return nil, err
		}
		body["search_after"] = []any{c.CreatedAt, c.EventID}
	}
	return body, nil
}

func (s *OrderEventSink) GetOrderEvents(ctx context.Context, query order.OrderEventQuery) (order.OrderEventPage, error) {
	query.Normalize()

	body, err := s.searchBody(query)
	if err != nil {
		return order.OrderEventPage{}, err
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return order.OrderEventPage{}, fmt.Errorf("marshal search: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(raw)),
	)
	if err != nil {
		return order.OrderEventPage{}, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return order.OrderEventPage{}, fmt.Errorf("search error: %s", res.String())
	}

	var sr struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return order.OrderEventPage{}, fmt.Errorf("decode search: %w", err)
	}

	items := make([]order.OrderEvent, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		var doc orderEventDoc
		if err := json.Unmarshal(h.Source, &doc); err != nil {
			return order.OrderEventPage{}, fmt.Errorf("decode hit: %w", err)
		}
		if doc.EventID == "" {
			doc.EventID = h.ID
		}
		items = append(items, order.OrderEvent{
			EventID: doc.EventID,
			NewOrderEvent: order.NewOrderEvent{
				OrderID:         doc.OrderID,
				Kind:            doc.Kind,
				ProviderEventID: doc.ProviderEventID,
				Data:            doc.Data,
				CreatedAt:       doc.CreatedAt,
			},
		})
	}

	page := order.OrderEventPage{Items: items}
	if len(items) > query.Limit {
		page.Items = items[:query.Limit]
		page.HasMore = true
		last := page.Items[len(page.Items)-1]
		page.NextCursor = encodeCursor(searchCursor{
			CreatedAt: last.CreatedAt.UnixMilli(),
			EventID:   last.EventID,
		})
	}
	return page, nil
}
