package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mercantile-labs/wishlists-backend/api/controllers"
	"github.com/mercantile-labs/wishlists-backend/api/middleware"
	"github.com/mercantile-labs/wishlists-backend/internal/items"
	"github.com/mercantile-labs/wishlists-backend/internal/wishlists"
	"github.com/mercantile-labs/wishlists-backend/pkg/config"
	"github.com/mercantile-labs/wishlists-backend/pkg/logger"
)

// Deps collects everything the router wires into handlers.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        controllers.Pinger
	Redis     controllers.Pinger
	Wishlists wishlists.Service
	Items     items.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/wishlists", func(r chi.Router) {
		r.Use(middleware.Customer(cfg.JWT, cfg.Customer, logg))

		r.Get("/", controllers.WishlistList(deps.Wishlists, logg))
		r.Post("/", controllers.WishlistCreate(deps.Wishlists, logg))

		r.Route("/{wishlist_id}", func(r chi.Router) {
			r.Get("/", controllers.WishlistGet(deps.Wishlists, logg))
			r.Put("/", controllers.WishlistUpdate(deps.Wishlists, logg))
			r.Delete("/", controllers.WishlistDelete(deps.Wishlists, logg))

			r.Route("/items", func(r chi.Router) {
				r.Get("/", controllers.ItemList(deps.Items, logg))
				r.Post("/", controllers.ItemAdd(deps.Items, logg))
				r.Post("/renumber", controllers.ItemRenumber(deps.Items, logg))

				r.Route("/{product_id}", func(r chi.Router) {
					r.Get("/", controllers.ItemGet(deps.Items, logg))
					r.Put("/", controllers.ItemUpdate(deps.Items, logg))
					r.Patch("/", controllers.ItemMove(deps.Items, logg))
					r.Delete("/", controllers.ItemDelete(deps.Items, logg))
				})
			})
		})
	})

	return r
}
