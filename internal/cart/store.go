package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jtbakery/storefront-backend/pkg/redis"
)

// kvStore is the slice of the redis client the snapshot store needs.
type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// SnapshotStore persists one cart State per session under a fixed key.
// Callers decide how to degrade on failure; the store just reports it.
type SnapshotStore struct {
	kv  kvStore
	ttl time.Duration
}

// NewSnapshotStore builds a snapshot store with the given retention TTL.
func NewSnapshotStore(kv kvStore, ttl time.Duration) (*SnapshotStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv store required")
	}
	return &SnapshotStore{kv: kv, ttl: ttl}, nil
}

// Load returns the stored snapshot, or (nil, nil) when none exists.
func (s *SnapshotStore) Load(ctx context.Context, sessionID string) (*State, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	if state.Items == nil {
		state.Items = []Item{}
	}
	if !ValidMethod(state.ShippingMethod) {
		state.ShippingMethod = MethodShipping
	}
	state.ResolveImages()
	return &state, nil
}

// Save serializes the whole state under the session's cart key.
func (s *SnapshotStore) Save(ctx context.Context, sessionID string, state *State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(sessionID), string(raw), s.ttl); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

// Delete removes the session's snapshot.
func (s *SnapshotStore) Delete(ctx context.Context, sessionID string) error {
	return s.kv.Del(ctx, s.kv.CartKey(sessionID))
}
