package cart

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jtbakery/storefront-backend/api/middleware"
	"github.com/jtbakery/storefront-backend/api/responses"
	"github.com/jtbakery/storefront-backend/api/validators"
	cartsvc "github.com/jtbakery/storefront-backend/internal/cart"
	pkgerrors "github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

// Fetch returns the session's cart with derived totals.
func Fetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state, totals := svc.Get(r.Context(), sessionID)
		responses.WriteSuccess(w, newCartView(state, totals))
	}
}

// AddItem merges one line into the basket.
func AddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, totals, err := svc.AddItem(r.Context(), sessionID, payload.toItem())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(state, totals))
	}
}

// UpdateQty sets a line's quantity; zero or less drops the line.
func UpdateQty(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateQtyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, totals := svc.UpdateQty(r.Context(), sessionID, chi.URLParam(r, "itemID"), payload.Qty)
		responses.WriteSuccess(w, newCartView(state, totals))
	}
}

// RemoveItem drops a line. Unknown ids are a no-op success.
func RemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, totals := svc.RemoveItem(r.Context(), sessionID, chi.URLParam(r, "itemID"))
		responses.WriteSuccess(w, newCartView(state, totals))
	}
}

// SetContact replaces the buyer identity fields.
func SetContact(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ContactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, totals := svc.SetCustomer(r.Context(), sessionID, payload.toCustomer())
		responses.WriteSuccess(w, newCartView(state, totals))
	}
}

// SetShipping replaces the delivery fields.
func SetShipping(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ShippingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, totals, err := svc.SetShipping(r.Context(), sessionID, payload.toShipping())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartView(state, totals))
	}
}

// Clear empties the basket, keeping buyer fields.
func Clear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state, totals := svc.Clear(r.Context(), sessionID)
		responses.WriteSuccess(w, newCartView(state, totals))
	}
}

func sessionIDFromContext(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sessionID, nil
}
