package stripewebhook

import (
	"context"
	"fmt"
	"time"
)

const idempotencyScope = "stripe-event"

type idempotencyStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	IdempotencyKey(scope, id string) string
}

// Guard suppresses duplicate webhook deliveries. Stripe retries events
// until acknowledged, so the same event id may arrive more than once.
type Guard struct {
	kv  idempotencyStore
	ttl time.Duration
}

// NewGuard builds a delivery guard with the given marker retention.
func NewGuard(kv idempotencyStore, ttl time.Duration) (*Guard, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Guard{kv: kv, ttl: ttl}, nil
}

// CheckAndMark claims the event id. It returns false when another delivery
// already claimed it.
func (g *Guard) CheckAndMark(ctx context.Context, eventID string) (bool, error) {
	if eventID == "" {
		return false, fmt.Errorf("event id required")
	}
	return g.kv.SetNX(ctx, g.kv.IdempotencyKey(idempotencyScope, eventID), "1", g.ttl)
}

// Release drops the claim so a retried delivery can reprocess the event
// after a handler failure.
func (g *Guard) Release(ctx context.Context, eventID string) error {
	return g.kv.Del(ctx, g.kv.IdempotencyKey(idempotencyScope, eventID))
}
