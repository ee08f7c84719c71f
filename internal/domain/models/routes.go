package models

import "time"

const (
	DefaultNumItineraries = 3
	MaxNumItineraries     = 10
)

type RouteSearchRequest struct {
	Origin            Coordinates `json:"origin"`
	Destination       Coordinates `json:"destination"`
	EarliestDeparture *time.Time  `json:"earliest_departure"`
	NumItineraries    *int        `json:"num_itineraries"`
	// Preferences, when present, replace the stored ones for this search.
	Preferences []string `json:"preferences"`
}

type RouteSearchResponse struct {
	Origin        Coordinates `json:"origin"`
	Destination   Coordinates `json:"destination"`
	Itineraries   []Itinerary `json:"itineraries"`
	SearchTime    time.Time   `json:"search_time"`
	AIDescription *string     `json:"ai_description"`
}
