package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"itinerary-optimizer-service/internal/api/handlers"
	"itinerary-optimizer-service/internal/ports"
)

// RouterConfig carries everything the API composition root needs.
type RouterConfig struct {
	Version        string
	Ref            ReferenceProvider
	Cache          ports.ResultCache
	Forecast       handlers.ForecastProvider
	AllowedOrigins []string
}

// ReferenceProvider joins the read port with the dataset size used by health.
type ReferenceProvider interface {
	ports.ReferenceData
	Len() int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	optimizeHandler := &handlers.OptimizeHandler{Ref: cfg.Ref, Cache: cfg.Cache}
	attractionHandler := &handlers.AttractionHandler{Ref: cfg.Ref}
	estimateHandler := &handlers.EstimateHandler{Ref: cfg.Ref, Cache: cfg.Cache}
	forecastHandler := &handlers.ForecastHandler{Provider: cfg.Forecast}
	healthHandler := &handlers.HealthHandler{Version: cfg.Version, Ref: cfg.Ref, Cache: cfg.Cache}
	cacheHandler := &handlers.CacheHandler{Cache: cfg.Cache}

	limiter := NewRateLimiter(60, time.Minute)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(limiter.Middleware)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Post("/optimize", optimizeHandler.Optimize)
		r.Get("/attractions", attractionHandler.List)
		r.Get("/attractions/{id}", attractionHandler.Get)
		r.Get("/traffic-estimate", estimateHandler.TrafficEstimate)
		r.Get("/weather-estimate", estimateHandler.WeatherEstimate)
		r.Get("/forecast/best-time", forecastHandler.BestTime)
		r.Get("/health", healthHandler.Health)
		r.Get("/cache/stats", cacheHandler.Stats)
		r.Post("/cache/clear", cacheHandler.Clear)
	})

	return r
}
