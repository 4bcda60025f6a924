package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"itinerary-optimizer-service/internal/adapters/refdata"
	"itinerary-optimizer-service/internal/domain"
	"itinerary-optimizer-service/internal/platform/obs"
)

// Postgres-backed implementation of the AttractionRepository port. Shares the
// row layout with the SQLite variant; only placeholders and DDL differ.
type SQLAttractionRepository struct{ DB *sql.DB }

func NewSQLAttractionRepository(db *sql.DB) *SQLAttractionRepository {
	return &SQLAttractionRepository{DB: db}
}

// Return all attractions stored in the database.
func (s *SQLAttractionRepository) ListAttractions(ctx context.Context) (_ []*domain.Attraction, err error) {
	defer obs.Time(ctx, "attractions.repo.ListAttractions")(&err)

	if s.DB == nil {
		return nil, errors.New("sql attraction repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, listAttractionsQuery)
	if err != nil {
		return nil, fmt.Errorf("list attractions: query attractions table: %w", err)
	}
	defer rows.Close()

	return scanAttractions(rows)
}

// Initialize the Postgres schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	query := `
	CREATE TABLE IF NOT EXISTS attractions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		name_es TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		category TEXT NOT NULL,
		zone TEXT NOT NULL DEFAULT '',
		average_visit_duration INTEGER NOT NULL,
		ideal_time_start INTEGER NOT NULL,
		ideal_time_end INTEGER NOT NULL,
		peak_hours TEXT NOT NULL DEFAULT '[]',
		heat_sensitive BOOLEAN NOT NULL DEFAULT FALSE,
		sunset_sensitive BOOLEAN NOT NULL DEFAULT FALSE,
		priority_score DOUBLE PRECISION NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		opening_hours TEXT NOT NULL DEFAULT '',
		fee TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_attractions_city ON attractions(city);
	`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("init postgres schema: %w", err)
	}
	return nil
}

// Populate a Postgres database with attraction data from a CSV seed file.
func SeedPostgresFromCSV(db *sql.DB, csvPath string) error {
	attractions, err := refdata.LoadAttractions(csvPath)
	if err != nil {
		return fmt.Errorf("seed attractions: %w", err)
	}
	return seed(db, attractions, "$")
}
