package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/foodgram-api/internal/auth"
	"github.com/noah-isme/foodgram-api/internal/cart"
	"github.com/noah-isme/foodgram-api/internal/common"
	"github.com/noah-isme/foodgram-api/internal/config"
	"github.com/noah-isme/foodgram-api/internal/favorites"
	"github.com/noah-isme/foodgram-api/internal/health"
	"github.com/noah-isme/foodgram-api/internal/obs"
	"github.com/noah-isme/foodgram-api/internal/ratelimit"
	"github.com/noah-isme/foodgram-api/internal/security"
	"github.com/noah-isme/foodgram-api/internal/shoppinglist"
	"github.com/noah-isme/foodgram-api/internal/store"
)

// deps are the collaborators the router is assembled from.
type deps struct {
	cfg      *config.Config
	logger   zerolog.Logger
	store    store.Store
	redis    redis.UniversalClient
	tokens   *auth.Service
	registry *prometheus.Registry
}

func newRouter(d deps) http.Handler {
	cfg := d.cfg

	var httpMetrics *obs.HTTPMetrics
	if cfg.Obs.MetricsEnabled && d.registry != nil {
		obs.MustRegisterDomainMetrics(cfg.Obs.MetricsNamespace, d.registry)
		httpMetrics = obs.NewHTTPMetrics(cfg.Obs.MetricsNamespace, obs.ParseBucketsCSV(cfg.Obs.MetricsBuckets), d.registry)
	}

	authMiddleware := auth.Middleware{Tokens: d.tokens}
	idem := common.Idem{R: d.redis, TTL: cfg.IdempotencyTTL}
	downloadLimit := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: d.redis, Prefix: "ratelimit:"},
		Config: ratelimit.Config{
			Key:    ratelimit.KeyByUser("download"),
			Window: cfg.DownloadRateWindow,
			Max:    cfg.DownloadRateLimit,
		},
		OnError: func(err error) {
			d.logger.Warn().Err(err).Msg("download rate limiter unavailable")
		},
	}

	cartHandler := &cart.Handler{Svc: &cart.Service{Store: d.store}, Logger: d.logger}
	favoritesHandler := &favorites.Handler{Svc: &favorites.Service{Store: d.store}, Logger: d.logger}
	listHandler := &shoppinglist.Handler{
		Svc:    &shoppinglist.Service{Lines: d.store, Setup: cfg.ShoppingList},
		Logger: d.logger,
	}
	healthHandler := health.Handler{Store: d.store, Redis: d.redis}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: d.logger}.Middleware)
	r.Use(security.CORS(cfg.CORSAllowedOrigins))
	r.Use(security.Headers{Enable: cfg.SecurityHeaders, EnableHSTS: cfg.AppEnv == "production"}.Middleware)

	if httpMetrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{Registry: d.registry}))
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/recipes", func(api chi.Router) {
		api.Use(authMiddleware.RequireAuth)
		api.Use(security.Headers{Enable: cfg.SecurityHeaders, NoStore: true}.Middleware)

		api.With(downloadLimit.Middleware).Get("/download_shopping_cart", listHandler.Download)

		api.Route("/{id}", func(recipe chi.Router) {
			recipe.With(idem.Middleware).Post("/shopping_cart", cartHandler.Add)
			recipe.Delete("/shopping_cart", cartHandler.Remove)
			recipe.With(idem.Middleware).Post("/favorite", favoritesHandler.Add)
			recipe.Delete("/favorite", favoritesHandler.Remove)
		})
	})

	return r
}
