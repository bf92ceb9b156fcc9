package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

// Service is the payment provider surface used by checkout and billing.
type Service interface {
	// CreateIntent opens a payment intent for the given amount in minor
	// units and returns its client secret.
	CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error)
	// CreateSubscriptionCheckout opens a hosted subscription checkout.
	CreateSubscriptionCheckout(ctx context.Context, input SubscriptionCheckoutInput) (*CheckoutSession, error)
	// CreatePortalSession opens a billing portal session for an existing
	// customer and returns its redirect URL.
	CreatePortalSession(ctx context.Context, customerID string) (string, error)
}

// SubscriptionCheckoutInput captures the data required to start a hosted checkout.
type SubscriptionCheckoutInput struct {
	CustomerID string
	Email      string
	PriceID    string
}

// CheckoutSession identifies a started hosted checkout.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ServiceParams groups dependencies for the payments service.
type ServiceParams struct {
	Client         StripePaymentClient
	DefaultPriceID string
	SiteURL        string
	Logger         *logger.Logger
}

type service struct {
	client  StripePaymentClient
	priceID string
	siteURL string
	logg    *logger.Logger
}

// NewService builds a payments service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Client == nil {
		return nil, fmt.Errorf("stripe client required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	siteURL := strings.TrimRight(strings.TrimSpace(params.SiteURL), "/")
	if siteURL == "" {
		return nil, fmt.Errorf("site url required")
	}
	return &service{
		client:  params.Client,
		priceID: strings.TrimSpace(params.DefaultPriceID),
		siteURL: siteURL,
		logg:    params.Logger,
	}, nil
}

func (s *service) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	if amountCents <= 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	currency = strings.TrimSpace(strings.ToLower(currency))
	if currency == "" {
		currency = "usd"
	}

	intent, err := s.client.CreatePaymentIntent(ctx, &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment intent")
	}
	if intent == nil || intent.ClientSecret == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "payment intent missing client secret")
	}

	s.logg.Info(s.logg.WithField(ctx, "intent_id", intent.ID), "payment intent created")
	return intent.ClientSecret, nil
}

func (s *service) CreateSubscriptionCheckout(ctx context.Context, input SubscriptionCheckoutInput) (*CheckoutSession, error) {
	priceID := strings.TrimSpace(input.PriceID)
	if priceID == "" {
		priceID = s.priceID
	}
	if priceID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price id is required")
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL:              stripe.String(s.siteURL + "/upgrade/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:               stripe.String(s.siteURL + "/upgrade/cancel"),
		AllowPromotionCodes:     stripe.Bool(true),
		AutomaticTax:            &stripe.CheckoutSessionAutomaticTaxParams{Enabled: stripe.Bool(true)},
		PaymentMethodCollection: stripe.String(string(stripe.CheckoutSessionPaymentMethodCollectionAlways)),
		Metadata:                map[string]string{"email": strings.TrimSpace(input.Email)},
	}
	// An existing customer id wins; Stripe rejects sessions carrying both.
	if customerID := strings.TrimSpace(input.CustomerID); customerID != "" {
		params.Customer = stripe.String(customerID)
	} else if email := strings.TrimSpace(input.Email); email != "" {
		params.CustomerEmail = stripe.String(email)
	}

	sess, err := s.client.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create checkout session")
	}
	if sess == nil || sess.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "checkout session missing id")
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (s *service) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}

	sess, err := s.client.CreatePortalSession(ctx, &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(s.siteURL + "/account"),
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create portal session")
	}
	if sess == nil || sess.URL == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "portal session missing redirect url")
	}
	return sess.URL, nil
}
