package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jtbakery/storefront-backend/pkg/redis"
)

type stubKV struct {
	values  map[string]string
	getErr  error
	setErr  error
	setOps  int
	lastKey string
}

func newStubKV() *stubKV {
	return &stubKV{values: map[string]string{}}
}

func (s *stubKV) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (s *stubKV) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.setOps++
	s.lastKey = key
	s.values[key] = value.(string)
	return nil
}

func (s *stubKV) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

func (s *stubKV) CartKey(sessionID string) string {
	return "jtb:cart:" + sessionID
}

func newTestService(t *testing.T, kv *stubKV) Service {
	t.Helper()
	store, err := NewSnapshotStore(kv, time.Hour)
	if err != nil {
		t.Fatalf("snapshot store: %v", err)
	}
	svc, err := NewService(store, flatFee, nil)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return svc
}

func TestServicePersistsOnEveryMutation(t *testing.T) {
	t.Parallel()

	kv := newStubKV()
	svc := newTestService(t, kv)
	ctx := context.Background()

	_, _, err := svc.AddItem(ctx, "s1", Item{ID: "a", Name: "A", Price: usd("2"), Qty: 1})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	svc.UpdateQty(ctx, "s1", "a", 4)
	svc.RemoveItem(ctx, "s1", "a")

	if kv.setOps != 3 {
		t.Fatalf("expected 3 snapshot writes, got %d", kv.setOps)
	}
	if kv.lastKey != "jtb:cart:s1" {
		t.Fatalf("snapshot stored under wrong key: %q", kv.lastKey)
	}
}

func TestServiceSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	kv := newStubKV()
	svc := newTestService(t, kv)
	ctx := context.Background()

	if _, _, err := svc.AddItem(ctx, "s1", Item{ID: "bev_latte", Name: "Latte", Price: usd("4.5"), Qty: 2}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, _, err := svc.SetShipping(ctx, "s1", Shipping{Method: MethodPickup, PickupLocationID: "me-tri-ha"}); err != nil {
		t.Fatalf("set shipping: %v", err)
	}

	// A second service over the same kv simulates a fresh process.
	reloaded := newTestService(t, kv)
	state, totals := reloaded.Get(ctx, "s1")

	if len(state.Items) != 1 || state.Items[0].ID != "bev_latte" || state.Items[0].Qty != 2 {
		t.Fatalf("round-trip lost items: %+v", state.Items)
	}
	if state.Items[0].Image == "" {
		t.Fatal("beverage image should be re-resolved on load")
	}
	if state.ShippingMethod != MethodPickup || state.PickupLocationID != "me-tri-ha" {
		t.Fatal("shipping fields lost in round-trip")
	}
	if !totals.ShippingFee.IsZero() {
		t.Fatal("pickup should carry no fee after reload")
	}
}

func TestServiceDegradesToEmptyOnLoadFailure(t *testing.T) {
	t.Parallel()

	kv := newStubKV()
	kv.getErr = errors.New("connection refused")
	svc := newTestService(t, kv)

	state, totals := svc.Get(context.Background(), "s1")
	if len(state.Items) != 0 {
		t.Fatal("expected empty cart on storage failure")
	}
	if !totals.Subtotal.IsZero() {
		t.Fatal("expected zero subtotal on storage failure")
	}
}

func TestServiceDegradesToEmptyOnCorruptSnapshot(t *testing.T) {
	t.Parallel()

	kv := newStubKV()
	kv.values["jtb:cart:s1"] = "{not json"
	svc := newTestService(t, kv)

	state, _ := svc.Get(context.Background(), "s1")
	if len(state.Items) != 0 {
		t.Fatal("corrupt snapshot should fall back to an empty cart")
	}
}

func TestServiceSaveFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	kv := newStubKV()
	kv.setErr = errors.New("readonly replica")
	svc := newTestService(t, kv)

	state, _, err := svc.AddItem(context.Background(), "s1", Item{ID: "a", Name: "A", Price: usd("1"), Qty: 1})
	if err != nil {
		t.Fatalf("save failure must not surface: %v", err)
	}
	if len(state.Items) != 1 {
		t.Fatal("in-memory mutation should still apply")
	}
}

func TestServiceValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubKV())
	ctx := context.Background()

	if _, _, err := svc.AddItem(ctx, "s1", Item{Name: "A", Qty: 1}); err == nil {
		t.Fatal("missing id should be rejected")
	}
	if _, _, err := svc.AddItem(ctx, "s1", Item{ID: "a", Name: "A", Qty: 0}); err == nil {
		t.Fatal("zero qty should be rejected")
	}
	if _, _, err := svc.SetShipping(ctx, "s1", Shipping{Method: "teleport"}); err == nil {
		t.Fatal("unknown method should be rejected")
	}
}
