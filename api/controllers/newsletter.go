package controllers

import (
	"net/http"

	"github.com/jtbakery/storefront-backend/api/responses"
	"github.com/jtbakery/storefront-backend/api/validators"
	"github.com/jtbakery/storefront-backend/internal/newsletter"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

// SubscribeRequest is a newsletter signup.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required"`
}

// NewsletterSubscribe records a signup and fires the owner notification.
func NewsletterSubscribe(svc newsletter.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload SubscribeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Subscribe(r.Context(), payload.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"ok": true})
	}
}
