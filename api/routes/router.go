package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

// Params wires the router's collaborators.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	Builder     *storefront.Builder
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
	Pingers     map[string]controllers.Pinger
}

func NewRouter(p Params) http.Handler {
	cfg, logg, builder := p.Config, p.Logger, p.Builder

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Pingers))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(p.Gatherer))

	r.Group(func(r chi.Router) {
		r.Use(middleware.VisitorSession(cfg.Session, logg))

		r.Get("/", controllers.HomePage(builder, logg))
		r.Get("/search", controllers.SearchPage(builder, logg))
		r.Get("/products/{productId}", controllers.ProductPage(builder, logg))
		r.Get("/cart", controllers.CartPage(builder, logg))

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/products", controllers.ProductList(builder, logg))
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(builder, logg))
				r.Post("/items", controllers.CartAddItem(builder, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateItem(builder, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(builder, logg))
			})
		})
	})

	return r
}
