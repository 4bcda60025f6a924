package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"itinerary-optimizer-service/internal/adapters/refdata"
	"itinerary-optimizer-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createAttractionsQuery := `
	CREATE TABLE IF NOT EXISTS attractions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		name_es TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		category TEXT NOT NULL,
		zone TEXT NOT NULL DEFAULT '',
		average_visit_duration INTEGER NOT NULL,
		ideal_time_start INTEGER NOT NULL,
		ideal_time_end INTEGER NOT NULL,
		peak_hours TEXT NOT NULL DEFAULT '[]',
		heat_sensitive INTEGER NOT NULL DEFAULT 0,
		sunset_sensitive INTEGER NOT NULL DEFAULT 0,
		priority_score REAL NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		opening_hours TEXT NOT NULL DEFAULT '',
		fee TEXT NOT NULL DEFAULT ''
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_attractions_city
	ON attractions(city);
	`

	statements := []string{
		createAttractionsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with attraction data from a CSV seed file.
func SeedFromCSV(db *sql.DB, csvPath string) error {
	attractions, err := refdata.LoadAttractions(csvPath)
	if err != nil {
		return fmt.Errorf("seed attractions: %w", err)
	}
	return seed(db, attractions, "?")
}

func seed(db *sql.DB, attractions []domain.Attraction, placeholder string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed attractions: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := upsertQuery(placeholder)
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed attractions: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range attractions {
		peakHours, err := json.Marshal(a.PeakHours)
		if err != nil {
			return fmt.Errorf("seed attractions: encode peak hours for %s: %w", a.ID, err)
		}
		_, err = stmt.Exec(
			a.ID, a.Name, a.NameES, a.City, a.Latitude, a.Longitude,
			a.Category, a.Zone, a.AverageVisitDuration,
			a.IdealTimeStart, a.IdealTimeEnd, string(peakHours),
			a.HeatSensitive, a.SunsetSensitive, a.PriorityScore,
			a.Description, a.OpeningHours, a.Fee,
		)
		if err != nil {
			return fmt.Errorf("seed attractions: insert id=%s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed attractions: commit tx: %w", err)
	}

	return nil
}

func upsertQuery(placeholder string) string {
	if placeholder == "?" {
		return `
		INSERT OR REPLACE INTO attractions (
			id, name, name_es, city, latitude, longitude,
			category, zone, average_visit_duration,
			ideal_time_start, ideal_time_end, peak_hours,
			heat_sensitive, sunset_sensitive, priority_score,
			description, opening_hours, fee
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
		`
	}
	return `
	INSERT INTO attractions (
		id, name, name_es, city, latitude, longitude,
		category, zone, average_visit_duration,
		ideal_time_start, ideal_time_end, peak_hours,
		heat_sensitive, sunset_sensitive, priority_score,
		description, opening_hours, fee
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		name_es = EXCLUDED.name_es,
		city = EXCLUDED.city,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		category = EXCLUDED.category,
		zone = EXCLUDED.zone,
		average_visit_duration = EXCLUDED.average_visit_duration,
		ideal_time_start = EXCLUDED.ideal_time_start,
		ideal_time_end = EXCLUDED.ideal_time_end,
		peak_hours = EXCLUDED.peak_hours,
		heat_sensitive = EXCLUDED.heat_sensitive,
		sunset_sensitive = EXCLUDED.sunset_sensitive,
		priority_score = EXCLUDED.priority_score,
		description = EXCLUDED.description,
		opening_hours = EXCLUDED.opening_hours,
		fee = EXCLUDED.fee;
	`
}
