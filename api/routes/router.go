package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/museum-cart/api/controllers"
	"github.com/angelmondragon/museum-cart/api/middleware"
	"github.com/angelmondragon/museum-cart/api/views"
	"github.com/angelmondragon/museum-cart/internal/cartview"
	"github.com/angelmondragon/museum-cart/internal/shop"
	"github.com/angelmondragon/museum-cart/pkg/config"
	"github.com/angelmondragon/museum-cart/pkg/logger"
)

// Dependencies are the services the router serves. Ready lists the probes
// pinged by /health/ready.
type Dependencies struct {
	Shop     shop.Service
	CartView cartview.Service
	Renderer *views.Renderer
	Ready    map[string]controllers.Pinger
	Gatherer prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, logg, deps.Ready))
	})
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Handle("/static/*", views.Static())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Visitor(cfg.Cart, logg))

		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/shop", http.StatusFound)
		})
		r.Get("/shop", controllers.ShopPage(deps.Shop, deps.Renderer, logg))
		r.Post("/shop/items", controllers.ShopAddItemForm(deps.Shop, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartPage(deps.CartView, deps.Renderer, logg))
			r.Post("/items/{itemId}/remove", controllers.CartRemoveItemForm(deps.CartView, logg))
			r.Post("/clear", controllers.CartClearForm(deps.CartView, logg))
			r.Post("/member", controllers.CartMemberForm(deps.CartView, logg))
			r.Post("/discount", controllers.CartDiscountForm(deps.CartView, logg))
		})

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(middleware.CORS(cfg.App.CORSOrigins))

			r.Get("/shop", controllers.ShopFetch(deps.Shop, logg))
			r.Post("/shop/items", controllers.ShopAddItem(deps.Shop, logg))

			r.Get("/cart", controllers.CartFetch(deps.CartView, logg))
			r.Delete("/cart", controllers.CartClear(deps.CartView, logg))
			r.Delete("/cart/items/{itemId}", controllers.CartRemoveItem(deps.CartView, logg))
			r.Put("/cart/member", controllers.CartSetMember(deps.CartView, logg))
			r.Put("/cart/discount", controllers.CartSetDiscount(deps.CartView, logg))
		})
	})

	return r
}
