package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sastaease/storefront-backend/api/controllers"
	cartcontrollers "github.com/sastaease/storefront-backend/api/controllers/cart"
	"github.com/sastaease/storefront-backend/api/middleware"
	"github.com/sastaease/storefront-backend/internal/cart"
	"github.com/sastaease/storefront-backend/internal/catalog"
	"github.com/sastaease/storefront-backend/internal/pages"
	"github.com/sastaease/storefront-backend/internal/session"
	"github.com/sastaease/storefront-backend/pkg/config"
	"github.com/sastaease/storefront-backend/pkg/logger"
	"github.com/sastaease/storefront-backend/pkg/metrics"
)

// RouterParams carries everything the router wires together.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	SessionReader  *session.Reader
	CatalogService catalog.Service
	CartService    cart.Service
	PagesService   pages.Service
	RequestMetrics *metrics.RequestMetrics
	Registry       *prometheus.Registry
	Pingers        []controllers.NamedPinger
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.Metrics(p.RequestMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.Pingers...))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ResolveSession(p.SessionReader, p.Logger))
		r.Use(middleware.Visitor(p.Logger))

		r.Get("/home", controllers.Home(p.CatalogService, p.PagesService, p.Logger))
		r.Get("/shop", controllers.ShopBrowse(p.CatalogService, p.Logger))
		r.Get("/products/{productId}", controllers.ProductDetail(p.CatalogService, p.Logger))
		r.Get("/pages/{slug}", controllers.StaticPage(p.PagesService, p.Logger))

		r.Get("/session", controllers.SessionCurrent(p.Logger))
		r.Post("/session/signout", controllers.SessionSignOut(p.SessionReader, p.Logger))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireSession(p.Logger))

			r.Get("/", cartcontrollers.CartFetch(p.CartService, p.Logger))
			r.Get("/count", cartcontrollers.CartCount(p.CartService, p.Logger))
			r.Post("/items", cartcontrollers.CartAddItem(p.CartService, p.Logger))
			r.Patch("/items/{itemId}", cartcontrollers.CartUpdateQuantity(p.CartService, p.Logger))
			r.Delete("/items/{itemId}", cartcontrollers.CartRemoveItem(p.CartService, p.Logger))
		})
	})

	return r
}
