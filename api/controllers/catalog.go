package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jtbakery/storefront-backend/api/responses"
	"github.com/jtbakery/storefront-backend/internal/catalog"
	pkgerrors "github.com/jtbakery/storefront-backend/pkg/errors"
	"github.com/jtbakery/storefront-backend/pkg/logger"
)

// CatalogMenu returns every menu category with its items.
func CatalogMenu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.MenuCategories())
	}
}

// CatalogCategory returns one category by slug.
func CatalogCategory(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		category := catalog.CategoryBySlug(slug)
		if category == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "category not found"))
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// CatalogBeverages returns the beverage list with cart-ready line ids.
func CatalogBeverages() http.HandlerFunc {
	type beverageView struct {
		catalog.Beverage
		CartID string `json:"cartId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		beverages := catalog.Beverages()
		views := make([]beverageView, 0, len(beverages))
		for _, b := range beverages {
			views = append(views, beverageView{Beverage: b, CartID: b.CartLineID()})
		}
		responses.WriteSuccess(w, views)
	}
}

// Locations returns the store location reference data.
func Locations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.Locations())
	}
}

// LocationByID returns one store location.
func LocationByID(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		location := catalog.LocationByID(id)
		if location == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "location not found"))
			return
		}
		responses.WriteSuccess(w, location)
	}
}
