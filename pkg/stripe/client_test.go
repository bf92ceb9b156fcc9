package stripe

import (
	"context"
	"testing"

	"github.com/jtbakery/storefront-backend/pkg/config"
)

func TestNewClientRejectsMissingKey(t *testing.T) {
	_, err := NewClient(context.Background(), config.StripeConfig{WebhookSecret: "whsec_x"}, nil)
	if err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestNewClientRejectsEnvKeyMismatch(t *testing.T) {
	cfg := config.StripeConfig{APIKey: "sk_live_123", WebhookSecret: "whsec_x", Env: "test"}
	if _, err := NewClient(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for live key in test env")
	}

	cfg = config.StripeConfig{APIKey: "sk_test_123", WebhookSecret: "whsec_x", Env: "live"}
	if _, err := NewClient(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for test key in live env")
	}
}

func TestNewClientAcceptsTestKey(t *testing.T) {
	cfg := config.StripeConfig{APIKey: "sk_test_123", WebhookSecret: "whsec_x"}
	c, err := NewClient(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Environment() != "test" {
		t.Fatalf("expected test env, got %q", c.Environment())
	}
	if c.SigningSecret() != "whsec_x" {
		t.Fatal("signing secret not retained")
	}
}

func TestNewClientRejectsUnknownEnv(t *testing.T) {
	cfg := config.StripeConfig{APIKey: "sk_test_123", WebhookSecret: "whsec_x", Env: "staging"}
	if _, err := NewClient(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown environment")
	}
}
