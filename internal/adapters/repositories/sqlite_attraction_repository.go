package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"itinerary-optimizer-service/internal/domain"
)

// SQLite-backed implementation of the AttractionRepository port.
type SqliteAttractionRepository struct{ DB *sql.DB }

func NewSqliteAttractionRepository(db *sql.DB) *SqliteAttractionRepository {
	return &SqliteAttractionRepository{DB: db}
}

// Return all attractions stored in the database.
func (s *SqliteAttractionRepository) ListAttractions(ctx context.Context) ([]*domain.Attraction, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite attraction repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, listAttractionsQuery)
	if err != nil {
		return nil, fmt.Errorf("list attractions: query attractions table: %w", err)
	}
	defer rows.Close()

	return scanAttractions(rows)
}

const listAttractionsQuery = `
SELECT
	id, name, name_es, city, latitude, longitude,
	category, zone, average_visit_duration,
	ideal_time_start, ideal_time_end, peak_hours,
	heat_sensitive, sunset_sensitive, priority_score,
	description, opening_hours, fee
FROM attractions
ORDER BY id;
`

func scanAttractions(rows *sql.Rows) ([]*domain.Attraction, error) {
	attractions := make([]*domain.Attraction, 0, 64)
	for rows.Next() {
		var a domain.Attraction
		var peakHours string
		err := rows.Scan(
			&a.ID, &a.Name, &a.NameES, &a.City, &a.Latitude, &a.Longitude,
			&a.Category, &a.Zone, &a.AverageVisitDuration,
			&a.IdealTimeStart, &a.IdealTimeEnd, &peakHours,
			&a.HeatSensitive, &a.SunsetSensitive, &a.PriorityScore,
			&a.Description, &a.OpeningHours, &a.Fee,
		)
		if err != nil {
			return nil, fmt.Errorf("list attractions: scan row: %w", err)
		}
		if peakHours != "" {
			if err := json.Unmarshal([]byte(peakHours), &a.PeakHours); err != nil {
				return nil, fmt.Errorf("list attractions: decode peak hours for %s: %w", a.ID, err)
			}
		}
		attractions = append(attractions, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attractions: row iteration: %w", err)
	}

	return attractions, nil
}
