package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidEnvelope = errors.New("invalid envelope")

// Envelope is the broker record for one buffered webhook delivery.
// EventID doubles as the correlation id on the consumer side.
type Envelope struct {
	EventID   string          `json:"event_id"`
	Key       string          `json:"key"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

type EnvelopeOption func(*Envelope)

// WithEventID replaces the generated id, e.g. with the provider's delivery id.
func WithEventID(id string) EnvelopeOption {
	return func(e *Envelope) {
		if id != "" {
			e.EventID = id
		}
	}
}

func NewEnvelope(key, msgType string, payload any, opts ...EnvelopeOption) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal payload: %w", err)
	}

	env := Envelope{
		EventID:   uuid.NewString(),
		Key:       key,
		Type:      msgType,
		Payload:   data,
		Timestamp: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&env)
	}
	return env, nil
}

// DecodeEnvelope parses a broker record value. Records without a type or
// payload wrap ErrInvalidEnvelope.
func DecodeEnvelope(value []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
	}
	if env.Type == "" || len(env.Payload) == 0 {
		return Envelope{}, fmt.Errorf("%w: missing type or payload", ErrInvalidEnvelope)
	}
	return env, nil
}

type Publisher interface {
	Publish(ctx context.Context, envelope Envelope) error
	Close() error
}

// MessageHandler processes a single record.
type MessageHandler func(ctx context.Context, key, value []byte) error

type Worker interface {
	Start(ctx context.Context, handler MessageHandler) error
	Close() error
}
