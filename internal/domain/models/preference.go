package models

import "time"

// GlobalPreference is a free-text prompt applied to every search of a user.
type GlobalPreference struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"-"`
	Prompt    string     `json:"prompt"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// RoutePreference is a prompt bound to one origin/destination pair.
type RoutePreference struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"-"`
	Prompt        string     `json:"prompt"`
	FromLatitude  float64    `json:"from_latitude"`
	FromLongitude float64    `json:"from_longitude"`
	ToLatitude    float64    `json:"to_latitude"`
	ToLongitude   float64    `json:"to_longitude"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
}

func (p RoutePreference) From() Coordinates {
	return Coordinates{Latitude: p.FromLatitude, Longitude: p.FromLongitude}
}

func (p RoutePreference) To() Coordinates {
	return Coordinates{Latitude: p.ToLatitude, Longitude: p.ToLongitude}
}

type RoutePreferenceInput struct {
	Prompt        string  `json:"prompt"`
	FromLatitude  float64 `json:"from_latitude"`
	FromLongitude float64 `json:"from_longitude"`
	ToLatitude    float64 `json:"to_latitude"`
	ToLongitude   float64 `json:"to_longitude"`
}
