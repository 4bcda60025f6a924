package dto

import "itinerary-optimizer-service/internal/domain"

// AttractionResponse is a single attraction entry.
type AttractionResponse struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	NameES               string  `json:"name_es"`
	City                 string  `json:"city"`
	Latitude             float64 `json:"latitude"`
	Longitude            float64 `json:"longitude"`
	Category             string  `json:"category"`
	Zone                 string  `json:"zone"`
	AverageVisitDuration int     `json:"average_visit_duration"`
	IdealTimeStart       int     `json:"ideal_time_start"`
	IdealTimeEnd         int     `json:"ideal_time_end"`
	PeakHours            []int   `json:"peak_hours"`
	HeatSensitive        bool    `json:"heat_sensitive"`
	SunsetSensitive      bool    `json:"sunset_sensitive"`
	PriorityScore        float64 `json:"priority_score"`
	Description          string  `json:"description,omitempty"`
	OpeningHours         string  `json:"opening_hours,omitempty"`
	Fee                  string  `json:"fee,omitempty"`
}

// ListAttractionsResponse is the GET /api/attractions output.
type ListAttractionsResponse struct {
	Success     bool                 `json:"success"`
	City        string               `json:"city"`
	Count       int                  `json:"count"`
	Attractions []AttractionResponse `json:"attractions"`
}

// AttractionDetailResponse is the GET /api/attractions/{id} output.
type AttractionDetailResponse struct {
	Success    bool               `json:"success"`
	Attraction AttractionResponse `json:"attraction"`
}

func FromAttraction(a *domain.Attraction) AttractionResponse {
	peakHours := a.PeakHours
	if peakHours == nil {
		peakHours = []int{}
	}

	return AttractionResponse{
		ID:                   a.ID,
		Name:                 a.Name,
		NameES:               a.NameES,
		City:                 a.City,
		Latitude:             a.Latitude,
		Longitude:            a.Longitude,
		Category:             a.Category,
		Zone:                 a.Zone,
		AverageVisitDuration: a.AverageVisitDuration,
		IdealTimeStart:       a.IdealTimeStart,
		IdealTimeEnd:         a.IdealTimeEnd,
		PeakHours:            peakHours,
		HeatSensitive:        a.HeatSensitive,
		SunsetSensitive:      a.SunsetSensitive,
		PriorityScore:        a.PriorityScore,
		Description:          a.Description,
		OpeningHours:         a.OpeningHours,
		Fee:                  a.Fee,
	}
}
