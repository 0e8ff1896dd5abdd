package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Event is a single provider notification. It is immutable once built.
type Event struct {
	eventType string
	payload   map[string]any
}

// NewEvent wraps a copy of a decoded payload. No validation happens here;
// handlers validate the fields they need.
func NewEvent(payload map[string]any, eventType string) Event {
	return Event{eventType: eventType, payload: copyObject(payload)}
}

// EventFromJSON decodes a raw notification body. The event type is read from
// the top-level event_type field.
func EventFromJSON(body []byte) (Event, error) {
	var payload map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if payload == nil {
		return Event{}, fmt.Errorf("%w: body is not a JSON object", ErrMalformedEvent)
	}

	eventType, _ := payload["event_type"].(string)
	if eventType == "" {
		return Event{}, fmt.Errorf("%w: event_type is missing", ErrMalformedEvent)
	}

	return NewEvent(payload, eventType), nil
}

func (e Event) EventType() string {
	return e.eventType
}

// Payload returns a copy; changes to it do not affect the event.
func (e Event) Payload() map[string]any {
	return copyObject(e.payload)
}

// Resource returns a copy of the resource sub-object, or an empty Resource.
func (e Event) Resource() Resource {
	if r, ok := e.payload["resource"].(map[string]any); ok {
		return copyObject(r)
	}
	return Resource{}
}

// ID returns the provider event id (WH-...), "" when absent.
func (e Event) ID() string {
	id, _ := e.payload["id"].(string)
	return id
}

func (e Event) ResourceType() string {
	rt, _ := e.payload["resource_type"].(string)
	return rt
}

// HasResource reports whether the payload carries a resource object.
func (e Event) HasResource() bool {
	_, ok := e.payload["resource"].(map[string]any)
	return ok
}

// copyObject deep-copies decoded JSON: nested objects and arrays are cloned,
// scalars are immutable already.
func copyObject(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = copyValue(v)
	}
	return dst
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyObject(t)
	case Resource:
		return Resource(copyObject(t))
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
