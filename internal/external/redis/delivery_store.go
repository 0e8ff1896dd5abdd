package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"PayPalReconciler/internal/webhook"

	"github.com/redis/go-redis/v9"
)

const (
	stateProcessing = "processing"
	stateDone       = "done"
)

// releaseScript deletes the key only while it still holds a lease, so a
// late Release cannot wipe a completed marker.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

var _ webhook.DeliveryStore = (*DeliveryStore)(nil)

// DeliveryStore keeps webhook delivery claims in Redis.
type DeliveryStore struct {
	client  redis.UniversalClient
	release *redis.Script
}

func NewDeliveryStore(client redis.UniversalClient) *DeliveryStore {
	return &DeliveryStore{
		client:  client,
		release: redis.NewScript(releaseScript),
	}
}

// NewClient parses a redis:// URL.
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (s *DeliveryStore) Claim(ctx context.Context, key string, lease time.Duration) (webhook.ClaimState, error) {
	ok, err := s.client.SetNX(ctx, key, stateProcessing, lease).Result()
	if err != nil {
		return webhook.ClaimAcquired, fmt.Errorf("claim %s: %w", key, err)
	}
	if ok {
		return webhook.ClaimAcquired, nil
	}

	state, err := s.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		// The lease expired between SETNX and GET.
		return webhook.ClaimInFlight, nil
	case err != nil:
		return webhook.ClaimAcquired, fmt.Errorf("read claim %s: %w", key, err)
	case state == stateDone:
		return webhook.ClaimCompleted, nil
	default:
		return webhook.ClaimInFlight, nil
	}
}

func (s *DeliveryStore) Complete(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, stateDone, ttl).Err(); err != nil {
		return fmt.Errorf("complete %s: %w", key, err)
	}
	return nil
}

func (s *DeliveryStore) Release(ctx context.Context, key string) error {
	if err := s.release.Run(ctx, s.client, []string{key}, stateProcessing).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}
