package payments

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

type stubStripeClient struct {
	intentParams   *stripe.PaymentIntentParams
	intent         *stripe.PaymentIntent
	intentErr      error
	checkoutParams *stripe.CheckoutSessionParams
	checkout       *stripe.CheckoutSession
	checkoutErr    error
	portalParams   *stripe.BillingPortalSessionParams
	portal         *stripe.BillingPortalSession
	portalErr      error
}

func (s *stubStripeClient) CreatePaymentIntent(_ context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	s.intentParams = params
	return s.intent, s.intentErr
}

func (s *stubStripeClient) CreateCheckoutSession(_ context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	s.checkoutParams = params
	return s.checkout, s.checkoutErr
}

func (s *stubStripeClient) CreatePortalSession(_ context.Context, params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error) {
	s.portalParams = params
	return s.portal, s.portalErr
}

func newTestService(t *testing.T, client *stubStripeClient) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
	svc, err := NewService(ServiceParams{
		Client:         client,
		DefaultPriceID: "price_default",
		SiteURL:        "https://jtbakery.example/",
		Logger:         logg,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateIntentReturnsClientSecret(t *testing.T) {
	t.Parallel()
	client := &stubStripeClient{intent: &stripe.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret"}}
	svc := newTestService(t, client)

	secret, err := svc.CreateIntent(context.Background(), 2550, "")
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if secret != "pi_1_secret" {
		t.Fatalf("secret = %q", secret)
	}
	if got := *client.intentParams.Amount; got != 2550 {
		t.Fatalf("amount = %d, want 2550", got)
	}
	if got := *client.intentParams.Currency; got != "usd" {
		t.Fatalf("currency = %q, want usd default", got)
	}
	if !*client.intentParams.AutomaticPaymentMethods.Enabled {
		t.Fatal("automatic payment methods should be enabled")
	}
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	t.Parallel()
	client := &stubStripeClient{}
	svc := newTestService(t, client)

	for _, amount := range []int64{0, -100} {
		if _, err := svc.CreateIntent(context.Background(), amount, "usd"); err == nil {
			t.Fatalf("expected error for amount %d", amount)
		}
	}
	if client.intentParams != nil {
		t.Fatal("provider should not be called for invalid amounts")
	}
}

func TestCreateIntentWrapsProviderError(t *testing.T) {
	t.Parallel()
	client := &stubStripeClient{intentErr: fmt.Errorf("stripe unavailable")}
	svc := newTestService(t, client)

	_, err := svc.CreateIntent(context.Background(), 100, "usd")
	if err == nil {
		t.Fatal("expected error")
	}
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("error = %v, want dependency code", err)
	}
}

func TestSubscriptionCheckoutBuildsSessionParams(t *testing.T) {
	t.Parallel()
	client := &stubStripeClient{checkout: &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/sess"}}
	svc := newTestService(t, client)

	sess, err := svc.CreateSubscriptionCheckout(context.Background(), SubscriptionCheckoutInput{Email: "june@example.com"})
	if err != nil {
		t.Fatalf("subscription checkout: %v", err)
	}
	if sess.ID != "cs_test_1" || sess.URL != "https://checkout.stripe.com/c/sess" {
		t.Fatalf("session = %+v", sess)
	}

	params := client.checkoutParams
	if got := *params.Mode; got != string(stripe.CheckoutSessionModeSubscription) {
		t.Fatalf("mode = %q", got)
	}
	if got := *params.LineItems[0].Price; got != "price_default" {
		t.Fatalf("price = %q, want fallback to default", got)
	}
	if got := *params.SuccessURL; got != "https://jtbakery.example/upgrade/success?session_id={CHECKOUT_SESSION_ID}" {
		t.Fatalf("success url = %q", got)
	}
	if got := *params.CancelURL; got != "https://jtbakery.example/upgrade/cancel" {
		t.Fatalf("cancel url = %q", got)
	}
	if got := params.Metadata["email"]; got != "june@example.com" {
		t.Fatalf("metadata email = %q", got)
	}
	if got := *params.PaymentMethodCollection; got != string(stripe.CheckoutSessionPaymentMethodCollectionAlways) {
		t.Fatalf("payment method collection = %q", got)
	}
	if !*params.AllowPromotionCodes || !*params.AutomaticTax.Enabled {
		t.Fatal("promotion codes and automatic tax should be enabled")
	}
	if got := *params.CustomerEmail; got != "june@example.com" {
		t.Fatalf("customer email = %q", got)
	}
	if params.Customer != nil {
		t.Fatal("customer id should be unset when only an email is known")
	}
}

func TestSubscriptionCheckoutPrefersCustomerID(t *testing.T) {
	t.Parallel()
	client := &stubStripeClient{checkout: &stripe.CheckoutSession{ID: "cs_test_2", URL: "https://checkout.stripe.com/c/sess"}}
	svc := newTestService(t, client)

	_, err := svc.CreateSubscriptionCheckout(context.Background(), SubscriptionCheckoutInput{
		CustomerID: "cus_123",
		Email:      "june@example.com",
		PriceID:    "price_custom",
	})
	if err != nil {
		t.Fatalf("subscription checkout: %v", err)
	}

	params := client.checkoutParams
	if got := *params.Customer; got != "cus_123" {
		t.Fatalf("customer = %q", got)
	}
	if params.CustomerEmail != nil {
		t.Fatal("customer email must be omitted when a customer id is set")
	}
	if got := *params.LineItems[0].Price; got != "price_custom" {
		t.Fatalf("price = %q, want explicit price", got)
	}
}

func TestPortalSessionRequiresCustomer(t *testing.T) {
	t.Parallel()
	client := &stubStripeClient{portal: &stripe.BillingPortalSession{URL: "https://billing.stripe.com/p/sess"}}
	svc := newTestService(t, client)

	if _, err := svc.CreatePortalSession(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty customer id")
	}

	url, err := svc.CreatePortalSession(context.Background(), "cus_123")
	if err != nil {
		t.Fatalf("portal session: %v", err)
	}
	if url != "https://billing.stripe.com/p/sess" {
		t.Fatalf("url = %q", url)
	}
	if got := *client.portalParams.ReturnURL; got != "https://jtbakery.example/account" {
		t.Fatalf("return url = %q", got)
	}
}
