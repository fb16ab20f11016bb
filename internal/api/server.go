package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/clutchrank/clutchrank/internal/api/handler"
	"github.com/clutchrank/clutchrank/internal/cache"
	"github.com/clutchrank/clutchrank/internal/config"
	"github.com/clutchrank/clutchrank/internal/db"
)

// NewRouter creates and configures the chi router with all middleware and
// routes.
func NewRouter(pool *db.Pool, appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, appCache, cfg, logger)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// Ranking surfaces: the rendered page and the raw snapshot it feeds on.
	r.Get("/ranking", h.RankingPage)
	r.Get("/ranking.json", h.GetRankings)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/rankings", h.GetRankings)
		r.Get("/teams", h.ListTeams)
		r.Get("/teams/{name}", h.GetTeam)
		r.Get("/matches", h.GetMatches)
	})

	return r
}
