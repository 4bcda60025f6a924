package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"itinerary-optimizer-service/internal/adapters/repositories"
	"itinerary-optimizer-service/internal/config"
	"itinerary-optimizer-service/internal/platform/db"
)

// dbtool initializes the attractions schema and imports the CSV seed.
// With DATABASE_URL set it targets Postgres, otherwise the local SQLite file.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	seedPath := filepath.Join(config.Get("DATA_DIR", "data/seeds"), "attractions.csv")

	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		seedPostgres(databaseURL, seedPath)
		return
	}
	seedSqlite(config.Get("DB_PATH", "data/app.db"), seedPath)
}

func seedPostgres(databaseURL, seedPath string) {
	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing postgres schema...")
	if err := repositories.InitPostgresSchema(context.Background(), conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding attractions...")
	if err := repositories.SeedPostgresFromCSV(conn, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func seedSqlite(dbPath, seedPath string) {
	conn, err := openSqlite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing sqlite schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding attractions...")
	if err := repositories.SeedFromCSV(conn, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func openSqlite(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", dbPath, err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", dbPath, err)
	}
	return conn, nil
}
