package controllers

import (
	"net/http"

	"github.com/jtbakery/storefront-backend/api/responses"
	"github.com/jtbakery/storefront-backend/api/validators"
	"github.com/jtbakery/storefront-backend/internal/payments"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

// CreateIntentRequest asks for a payment token over an amount in cents.
type CreateIntentRequest struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency"`
}

// PaymentCreateIntent opens a payment intent and returns its client secret.
func PaymentCreateIntent(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload CreateIntentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		secret, err := svc.CreateIntent(r.Context(), payload.Amount, payload.Currency)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"clientSecret": secret})
	}
}

// SubscriptionCheckoutRequest starts a hosted subscription checkout.
type SubscriptionCheckoutRequest struct {
	PriceID    string `json:"priceId"`
	CustomerID string `json:"customerId"`
	Email      string `json:"email" validate:"omitempty,email"`
}

// PaymentSubscriptionCheckout opens a hosted checkout session.
func PaymentSubscriptionCheckout(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload SubscriptionCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.CreateSubscriptionCheckout(r.Context(), payments.SubscriptionCheckoutInput{
			PriceID:    payload.PriceID,
			CustomerID: payload.CustomerID,
			Email:      payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

// PortalRequest opens the billing portal for an existing customer.
type PortalRequest struct {
	CustomerID string `json:"customerId" validate:"required"`
}

// PaymentPortal returns a billing portal redirect URL.
func PaymentPortal(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload PortalRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		url, err := svc.CreatePortalSession(r.Context(), payload.CustomerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"url": url})
	}
}
