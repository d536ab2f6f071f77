package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/museum-cart/api/middleware"
	"github.com/angelmondragon/museum-cart/api/responses"
	pkgerrors "github.com/angelmondragon/museum-cart/pkg/errors"
	"github.com/angelmondragon/museum-cart/pkg/logger"
)

func visitorID(r *http.Request) (string, error) {
	id := middleware.VisitorIDFromContext(r.Context())
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "visitor context missing")
	}
	return id, nil
}

// writePageError answers a page request with a plain status page.
func writePageError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed, meta, msg := responses.Resolve(err)
	responses.LogError(ctx, logg, typed)
	http.Error(w, msg, meta.HTTPStatus)
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// pathParam returns a URL parameter in decoded form. chi routes on the raw
// path when the request carries escapes such as %2F, leaving the parameter
// escaped in that case only.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}
