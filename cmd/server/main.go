package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"itinerary-optimizer-service/internal/adapters/cache"
	"itinerary-optimizer-service/internal/adapters/forecast"
	"itinerary-optimizer-service/internal/adapters/refdata"
	"itinerary-optimizer-service/internal/adapters/repositories"
	"itinerary-optimizer-service/internal/api"
	"itinerary-optimizer-service/internal/config"
	"itinerary-optimizer-service/internal/domain"
	"itinerary-optimizer-service/internal/ports"
)

const version = "1.0.0"

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, OpenWeather) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	dataDir := config.Get("DATA_DIR", "data/seeds")
	port := config.Get("PORT", "8080")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, dataDir); err != nil {
		log.Fatal(err)
	}

	store, err := buildReferenceData(db, dataDir)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Reference data ready attractions=%d", store.Len())

	routerCfg := api.RouterConfig{
		Version: version,
		Ref:     store,
		Cache:   buildResultCache(),
	}

	// Forecast endpoints stay disabled without an API key; everything else
	// runs on the baseline tables.
	if key := strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY")); key != "" {
		client, err := forecast.NewOpenWeatherClient(key)
		if err != nil {
			log.Fatal(err)
		}
		routerCfg.Forecast = client
	} else {
		log.Println("OPENWEATHER_API_KEY not set, forecast endpoints disabled")
	}

	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		routerCfg.AllowedOrigins = strings.Split(origins, ",")
	}

	router := api.NewRouter(routerCfg)

	// Optimization is CPU-bound and finishes in milliseconds even at the
	// 5040-ordering cap; timeouts only need to cover slow clients and the
	// forecast upstream.
	log.Printf("Server listening addr=:%s version=%s", port, version)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, dataDir string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	seedPath := filepath.Join(dataDir, "attractions.csv")
	if err := repositories.SeedFromCSV(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// buildReferenceData loads the baseline tables from CSV and the attraction
// catalog from the database, so catalog edits survive restarts without
// touching the seed files.
func buildReferenceData(db *sql.DB, dataDir string) (*refdata.Store, error) {
	dataset, err := refdata.LoadDataset(dataDir)
	if err != nil {
		return nil, fmt.Errorf("build reference data: %w", err)
	}

	repo := repositories.NewSqliteAttractionRepository(db)
	attractions, err := repo.ListAttractions(context.Background())
	if err != nil {
		return nil, fmt.Errorf("build reference data: %w", err)
	}

	dataset.Attractions = make([]domain.Attraction, 0, len(attractions))
	for _, a := range attractions {
		dataset.Attractions = append(dataset.Attractions, *a)
	}

	return refdata.New(dataset), nil
}

// buildResultCache prefers Redis and degrades to the nop cache, so a missing
// or unreachable Redis never blocks startup.
func buildResultCache() ports.ResultCache {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDRESS"))
	if addr == "" {
		log.Println("REDIS_ADDRESS not set, running uncached")
		return cache.NopResultCache{}
	}

	c, err := cache.NewRedisResultCache(addr, os.Getenv("REDIS_PASSWORD"))
	if err != nil {
		log.Printf("redis unavailable, running uncached: err=%v", err)
		return cache.NopResultCache{}
	}

	log.Printf("Result cache ready addr=%s", addr)
	return c
}
