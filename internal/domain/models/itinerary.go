package models

import (
	"fmt"
	"time"
)

// TransportMode mirrors the mode names used by the routing API.
type TransportMode string

const (
	ModeWalk    TransportMode = "WALK"
	ModeBicycle TransportMode = "BICYCLE"
	ModeCar     TransportMode = "CAR"
	ModeBus     TransportMode = "BUS"
	ModeTram    TransportMode = "TRAM"
	ModeTrain   TransportMode = "TRAIN"
	ModeRail    TransportMode = "RAIL"
	ModeSubway  TransportMode = "SUBWAY"
	ModeFerry   TransportMode = "FERRY"
)

// IsWalk reports whether the leg is on foot; walking legs never carry a route.
func (m TransportMode) IsWalk() bool {
	return m == ModeWalk
}

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`
}

func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90 degrees")
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180 degrees")
	}
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%g, %g)", c.Latitude, c.Longitude)
}

// Place is a named stop or address.
type Place struct {
	Coordinates Coordinates `json:"coordinates"`
	Name        *string     `json:"name"`
}

// DisplayName returns the place name or "" when unknown.
func (p Place) DisplayName() string {
	if p.Name == nil {
		return ""
	}
	return *p.Name
}

type Route struct {
	ShortName   string  `json:"short_name"`
	LongName    string  `json:"long_name"`
	Description *string `json:"description"`
}

// Leg is one segment of a journey using a single transport mode.
type Leg struct {
	Mode      TransportMode `json:"mode"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Duration  int           `json:"duration"`
	Distance  float64       `json:"distance"`
	FromPlace Place         `json:"from_place"`
	ToPlace   Place         `json:"to_place"`
	Route     *Route        `json:"route"`
	AIInsight *string       `json:"ai_insight"`
}

// Itinerary is a complete journey from origin to destination.
// AIDescription is the whole-trip insight; each leg carries its own.
type Itinerary struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Duration      int       `json:"duration"`
	WalkDistance  float64   `json:"walk_distance"`
	WalkTime      int       `json:"walk_time"`
	Legs          []Leg     `json:"legs"`
	AIDescription *string   `json:"ai_description"`
}

// ClearInsights drops every AI annotation on the itinerary and its legs.
func (it *Itinerary) ClearInsights() {
	it.AIDescription = nil
	for i := range it.Legs {
		it.Legs[i].AIInsight = nil
	}
}
