package stripewebhook

import (
	"context"
	"encoding/json"

	"github.com/stripe/stripe-go/v84"

	"github.com/jtbakery/storefront-backend/internal/accounts"
	pkgerrors "github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

// ServiceParams groups dependencies for the webhook service.
type ServiceParams struct {
	Accounts accounts.Service
	Guard    *Guard
	Logger   *logger.Logger
}

// Service applies billing events to local account state. Handlers are
// written to be retry-safe: Stripe redelivers until it sees a 2xx.
type Service struct {
	accounts accounts.Service
	guard    *Guard
	logg     *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Accounts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "account service required")
	}
	if params.Guard == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "idempotency guard required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	return &Service{
		accounts: params.Accounts,
		guard:    params.Guard,
		logg:     params.Logger,
	}, nil
}

// HandleEvent dispatches one verified event. Duplicate deliveries are
// acknowledged without side effects; on handler failure the claim is
// released so the redelivery can try again.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}

	fresh, err := s.guard.CheckAndMark(ctx, event.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim webhook event")
	}
	if !fresh {
		s.logg.Info(s.logg.WithField(ctx, "event_id", event.ID), "duplicate webhook delivery ignored")
		return nil
	}

	if err := s.dispatch(ctx, event); err != nil {
		if releaseErr := s.guard.Release(ctx, event.ID); releaseErr != nil {
			s.logg.Error(ctx, "release webhook claim", releaseErr)
		}
		return err
	}
	return nil
}

func (s *Service) dispatch(ctx context.Context, event *stripe.Event) error {
	ctx = s.logg.WithFields(ctx, map[string]any{
		"event_id":   event.ID,
		"event_type": string(event.Type),
	})

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		return s.handleCheckoutCompleted(ctx, event)

	case stripe.EventTypeInvoicePaymentFailed:
		customerID := event.GetObjectValue("customer")
		if customerID == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "customer id missing from invoice event")
		}
		s.logg.Info(ctx, "payment failed, dropping pro access")
		return s.accounts.SetProByCustomer(ctx, customerID, false)

	case stripe.EventTypeCustomerSubscriptionDeleted:
		sub, err := decodeSubscription(event)
		if err != nil {
			return err
		}
		s.logg.Info(ctx, "subscription deleted, dropping pro access")
		return s.accounts.SetProByCustomer(ctx, sub.Customer.ID, false)

	case stripe.EventTypeCustomerSubscriptionUpdated:
		sub, err := decodeSubscription(event)
		if err != nil {
			return err
		}
		return s.accounts.SetProByCustomer(ctx, sub.Customer.ID, subscriptionGrantsPro(sub.Status))

	default:
		// Unrecognized types are acknowledged so Stripe stops retrying.
		s.logg.Info(ctx, "webhook event type not handled")
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, event *stripe.Event) error {
	email := event.GetObjectValue("customer_details", "email")
	if email == "" {
		// Checkout sessions we open stamp the buyer's address in metadata.
		email = event.GetObjectValue("metadata", "email")
	}
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email missing from checkout session")
	}
	customerID := event.GetObjectValue("customer")

	account, err := s.accounts.ActivateFromCheckout(ctx, email, customerID)
	if err != nil {
		return err
	}
	s.logg.Info(s.logg.WithField(ctx, "account_id", account.ID.String()), "checkout completed, pro access granted")
	return nil
}

func decodeSubscription(event *stripe.Event) (*stripe.Subscription, error) {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode subscription event")
	}
	if sub.Customer == nil || sub.Customer.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id missing from subscription event")
	}
	return &sub, nil
}

func subscriptionGrantsPro(status stripe.SubscriptionStatus) bool {
	switch status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return true
	default:
		return false
	}
}
