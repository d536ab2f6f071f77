package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/museum-cart/pkg/config"
	"github.com/angelmondragon/museum-cart/pkg/logger"
)

const visitorCookieMaxAge = 365 * 24 * time.Hour

// Visitor resolves the visitor identity from its cookie, issuing a new one
// when the cookie is missing or not a uuid. Each visitor owns one cart slot.
func Visitor(cfg config.CartConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	name := cfg.CookieName
	if name == "" {
		name = "museum_cart_vid"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID := ""
			if c, err := r.Cookie(name); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					visitorID = id.String()
				}
			}
			if visitorID == "" {
				visitorID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     name,
					Value:    visitorID,
					Path:     "/",
					MaxAge:   int(visitorCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   cfg.CookieSecure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithVisitorID(r.Context(), visitorID)
			if logg != nil {
				ctx = logg.WithVisitorID(ctx, visitorID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
