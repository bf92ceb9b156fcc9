package controllers

import (
	"net/http"

	"github.com/jtbakery/storefront-backend/api/middleware"
	"github.com/jtbakery/storefront-backend/api/responses"
	"github.com/jtbakery/storefront-backend/api/validators"
	"github.com/jtbakery/storefront-backend/internal/checkout"
	pkgerrors "github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

// CheckoutState returns the wizard view for the session.
func CheckoutState(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.State(r.Context(), sessionID))
	}
}

// CheckoutNext advances the wizard one step.
func CheckoutNext(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view, err := svc.Next(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CheckoutBack returns to the previous step.
func CheckoutBack(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.Back(r.Context(), sessionID))
	}
}

// GotoStepRequest names the target step for direct navigation.
type GotoStepRequest struct {
	Step string `json:"step" validate:"required"`
}

// CheckoutGoto jumps to an unlocked step.
func CheckoutGoto(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload GotoStepRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Goto(r.Context(), sessionID, checkout.Step(payload.Step))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func checkoutSessionID(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sessionID, nil
}
