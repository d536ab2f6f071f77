package controllers

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/museum-cart/api/responses"
	"github.com/angelmondragon/museum-cart/api/validators"
	"github.com/angelmondragon/museum-cart/api/views"
	"github.com/angelmondragon/museum-cart/internal/cartview"
	"github.com/angelmondragon/museum-cart/pkg/logger"
)

type memberRequest struct {
	Member *bool `json:"member" validate:"required"`
}

// discountRequest carries the one-discount answer. Anything other than M or V,
// including an empty answer, keeps the volume discount.
type discountRequest struct {
	Choice string `json:"choice" validate:"max=16"`
}

// cartAction is one cart page mutation; both the JSON and the form handlers
// run it and then present the re-rendered page.
type cartAction func(r *http.Request, vid string) (cartview.Page, error)

func jsonCartAction(logg *logger.Logger, action cartAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vid, err := visitorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := action(r, vid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func formCartAction(logg *logger.Logger, action cartAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vid, err := visitorID(r)
		if err != nil {
			writePageError(r.Context(), logg, w, err)
			return
		}
		if _, err := action(r, vid); err != nil {
			writePageError(r.Context(), logg, w, err)
			return
		}
		redirect(w, r, "/cart")
	}
}

// CartFetch returns the rendered cart view model.
func CartFetch(svc cartview.Service, logg *logger.Logger) http.HandlerFunc {
	return jsonCartAction(logg, func(r *http.Request, vid string) (cartview.Page, error) {
		return svc.Render(r.Context(), vid), nil
	})
}

func CartRemoveItem(svc cartview.Service, logg *logger.Logger) http.HandlerFunc {
	return jsonCartAction(logg, removeAction(svc))
}

func CartClear(svc cartview.Service, logg *logger.Logger) http.HandlerFunc {
	return jsonCartAction(logg, clearAction(svc))
}

func CartSetMember(svc cartview.Service, logg *logger.Logger) http.HandlerFunc {
	return jsonCartAction(logg, func(r *http.Request, vid string) (cartview.Page, error) {
		var req memberRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return cartview.Page{}, err
		}
		return svc.SetMember(r.Context(), vid, *req.Member)
	})
}

func CartSetDiscount(svc cartview.Service, logg *logger.Logger) http.HandlerFunc {
	return jsonCartAction(logg, func(r *http.Request, vid string) (cartview.Page, error) {
		var req discountRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return cartview.Page{}, err
		}
		return svc.SetDiscountChoice(r.Context(), vid, req.Choice)
	})
}

// CartPage renders the cart page.
func CartPage(svc cartview.Service, renderer *views.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vid, err := visitorID(r)
		if err != nil {
			writePageError(r.Context(), logg, w, err)
			return
		}
		if err := renderer.Cart(w, svc.Render(r.Context(), vid)); err != nil {
			writePageError(r.Context(), logg, w, err)
		}
	}
}

func CartRemoveItemForm(svc cartview.Service, logg *logger.Logger) http.HandlerFunc {
	return formCartAction(logg, removeAction(svc))
}

func CartClearForm(svc cartview.Service, logg *logger.Logger) http.HandlerFunc {
	return formCartAction(logg, clearAction(svc))
}

// CartMemberForm reads the member checkbox; an unchecked box is not submitted.
func CartMemberForm(svc cartview.Service, logg *logger.Logger) http.HandlerFunc {
	return formCartAction(logg, func(r *http.Request, vid string) (cartview.Page, error) {
		member := strings.EqualFold(r.PostFormValue("member"), "on") || strings.EqualFold(r.PostFormValue("member"), "true")
		return svc.SetMember(r.Context(), vid, member)
	})
}

func CartDiscountForm(svc cartview.Service, logg *logger.Logger) http.HandlerFunc {
	return formCartAction(logg, func(r *http.Request, vid string) (cartview.Page, error) {
		return svc.SetDiscountChoice(r.Context(), vid, r.PostFormValue("choice"))
	})
}

func removeAction(svc cartview.Service) cartAction {
	return func(r *http.Request, vid string) (cartview.Page, error) {
		return svc.Remove(r.Context(), vid, pathParam(r, "itemId"))
	}
}

func clearAction(svc cartview.Service) cartAction {
	return func(r *http.Request, vid string) (cartview.Page, error) {
		return svc.Clear(r.Context(), vid)
	}
}
