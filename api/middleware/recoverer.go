package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/angelmondragon/museum-cart/api/responses"
	pkgerrors "github.com/angelmondragon/museum-cart/pkg/errors"
	"github.com/angelmondragon/museum-cart/pkg/logger"
)

// Recoverer turns handler panics into a 500. JSON API callers get the error
// envelope; page requests get a plain text body.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err := fmt.Errorf("panic: %v", rec)
				ctx := r.Context()
				if !strings.HasPrefix(r.URL.Path, "/api/") {
					if logg != nil {
						logg.Error(logg.WithField(ctx, "panic", rec), "panic.recovered", err)
					}
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
