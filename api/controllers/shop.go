package controllers

import (
	"net/http"

	"github.com/angelmondragon/museum-cart/api/responses"
	"github.com/angelmondragon/museum-cart/api/validators"
	"github.com/angelmondragon/museum-cart/api/views"
	"github.com/angelmondragon/museum-cart/internal/shop"
	"github.com/angelmondragon/museum-cart/pkg/logger"
)

type activationResponse struct {
	Badge   shop.Badge `json:"badge"`
	Ignored bool       `json:"ignored"`
}

// ShopFetch returns the shop view model.
func ShopFetch(svc shop.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vid, err := visitorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.Page(r.Context(), vid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// ShopAddItem activates a product control. Invalid attributes are not an
// error for the caller: the response carries ignored=true and the unchanged badge.
func ShopAddItem(svc shop.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vid, err := visitorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var attrs shop.ProductAttrs
		if err := validators.DecodeJSON(r, &attrs); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		badge, err := svc.Activate(r.Context(), vid, attrs)
		switch {
		case shop.IsIgnored(err):
			responses.WriteSuccess(w, activationResponse{Badge: badge, Ignored: true})
		case err != nil:
			responses.WriteError(r.Context(), logg, w, err)
		default:
			responses.WriteSuccess(w, activationResponse{Badge: badge})
		}
	}
}

// ShopPage renders the shop page.
func ShopPage(svc shop.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vid, err := visitorID(r)
		if err != nil {
			writePageError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.Page(r.Context(), vid)
		if err != nil {
			writePageError(r.Context(), logg, w, err)
			return
		}
		if err := renderer.Shop(w, page); err != nil {
			writePageError(r.Context(), logg, w, err)
		}
	}
}

// ShopAddItemForm handles the add-to-cart form and returns to the shop.
func ShopAddItemForm(svc shop.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vid, err := visitorID(r)
		if err != nil {
			writePageError(r.Context(), logg, w, err)
			return
		}
		attrs := shop.ProductAttrs{
			ID:        r.PostFormValue("id"),
			Name:      r.PostFormValue("name"),
			UnitPrice: r.PostFormValue("price"),
			ImageRef:  r.PostFormValue("image"),
		}
		if _, err := svc.Activate(r.Context(), vid, attrs); err != nil && !shop.IsIgnored(err) {
			writePageError(r.Context(), logg, w, err)
			return
		}
		redirect(w, r, "/shop")
	}
}
