package controllers

import (
	"net/http"

	"github.com/jtbakery/storefront-backend/api/responses"
	"github.com/jtbakery/storefront-backend/internal/accounts"
	pkgerrors "github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

// AccountLookup returns the billing state for an email, so the storefront
// can show pro status after a checkout.
func AccountLookup(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	type accountView struct {
		Email string `json:"email"`
		Pro   bool   `json:"pro"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if email == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "email query parameter is required"))
			return
		}

		account, err := svc.GetByEmail(r.Context(), email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, accountView{Email: account.Email, Pro: account.Pro})
	}
}
