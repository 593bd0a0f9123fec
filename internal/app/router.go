package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/noah-isme/toko-checkout/internal/cart"
	"github.com/noah-isme/toko-checkout/internal/catalog"
	"github.com/noah-isme/toko-checkout/internal/checkout"
	"github.com/noah-isme/toko-checkout/internal/health"
	"github.com/noah-isme/toko-checkout/internal/obs"
	"github.com/noah-isme/toko-checkout/internal/order"
	"github.com/noah-isme/toko-checkout/internal/pricing"
	"github.com/noah-isme/toko-checkout/internal/ratelimit"
	"github.com/noah-isme/toko-checkout/internal/receipt"
	"github.com/noah-isme/toko-checkout/internal/report"
)

// RouterOptions toggles the ambient middleware around the API routes.
type RouterOptions struct {
	HTTPMetrics    *obs.HTTPMetrics
	MetricsHandler http.Handler
	Tracing        bool
	CORSOrigins    []string
}

// Router mounts every API route.
func (a *App) Router(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if opts.Tracing {
		r.Use(obs.RouteSpanName)
	}
	if opts.HTTPMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: opts.HTTPMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: *a.Logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(opts.CORSOrigins),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Idempotent-Replayed", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if opts.MetricsHandler != nil {
		r.Handle("/metrics", opts.MetricsHandler)
	}

	healthHandler := health.Handler{}
	if a.Redis != nil {
		healthHandler.Checkers = map[string]health.Checker{"redis": health.RedisChecker{R: a.Redis}}
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	catalogHandler := &catalog.Handler{Catalog: a.Catalog}
	pricingHandler := &pricing.Handler{Engine: a.Engine}
	cartHandler := &cart.Handler{Store: a.Carts, Engine: a.Engine}
	checkoutHandler := &checkout.Handler{Svc: a.Checkout, Carts: a.Carts}
	orderHandler := &order.Handler{Svc: a.Orders}
	receiptHandler := &receipt.Handler{Orders: a.Orders}
	reportHandler := &report.Handler{Svc: a.Reports}
	limit := ratelimit.Handler{
		Limiter: a.Limiter,
		OnError: func(err error) { a.Logger.Error().Err(err).Msg("rate_limit_store_failed") },
	}

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/categories", catalogHandler.Categories)
		v.Get("/products", catalogHandler.Products)
		v.Get("/products/{sku}", catalogHandler.ProductDetail)

		v.Post("/pricing/quote", pricingHandler.Quote)

		v.Route("/carts", func(c chi.Router) {
			c.Post("/", cartHandler.Create)
			c.Get("/{id}", cartHandler.Get)
			c.Post("/{id}/items", cartHandler.AddItem)
			c.Patch("/{id}/items/{sku}", cartHandler.UpdateItem)
			c.Delete("/{id}/items/{sku}", cartHandler.RemoveItem)
		})

		v.With(limit.Middleware, a.Idem.Middleware).Post("/checkout", checkoutHandler.Checkout)

		v.Route("/orders", func(o chi.Router) {
			o.Get("/", orderHandler.List)
			o.Get("/{id}", orderHandler.Get)
			o.Get("/{id}/receipt", receiptHandler.Receipt)
			o.Group(func(g chi.Router) {
				g.Use(a.Idem.Middleware)
				g.Post("/{id}/pay", orderHandler.Pay)
				g.Post("/{id}/cancel", orderHandler.Cancel)
			})
		})

		v.Route("/reports", func(rp chi.Router) {
			rp.Get("/summary", reportHandler.Summary)
			rp.Get("/top-products", reportHandler.TopProducts)
		})
	})

	if opts.Tracing {
		return obs.Tracing(r, "toko-checkout")
	}
	return r
}

func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
