package hsl

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"commuteai/internal/domain/models"
	"commuteai/internal/utils"
)

type planData struct {
	PlanConnection *struct {
		Edges []struct {
			Node planNode `json:"node"`
		} `json:"edges"`
	} `json:"planConnection"`
}

type planNode struct {
	Start        string    `json:"start"`
	End          string    `json:"end"`
	Duration     float64   `json:"duration"`
	WalkDistance float64   `json:"walkDistance"`
	WalkTime     float64   `json:"walkTime"`
	Legs         []planLeg `json:"legs"`
}

type scheduled struct {
	ScheduledTime string `json:"scheduledTime"`
}

type planPlace struct {
	Name *string `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type planRoute struct {
	ShortName *string `json:"shortName"`
	LongName  *string `json:"longName"`
	Desc      *string `json:"desc"`
}

type planLeg struct {
	Mode     string     `json:"mode"`
	Start    scheduled  `json:"start"`
	End      scheduled  `json:"end"`
	Duration float64    `json:"duration"`
	Distance float64    `json:"distance"`
	From     planPlace  `json:"from"`
	To       planPlace  `json:"to"`
	Route    *planRoute `json:"route"`
}

// parsePlan converts the planConnection payload. A missing planConnection
// yields an empty slice; malformed timestamps are an error.
func parsePlan(data json.RawMessage) ([]models.Itinerary, error) {
	if len(data) == 0 || string(data) == "null" {
		return []models.Itinerary{}, nil
	}
	var pd planData
	if err := json.Unmarshal(data, &pd); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	if pd.PlanConnection == nil {
		return []models.Itinerary{}, nil
	}

	out := make([]models.Itinerary, 0, len(pd.PlanConnection.Edges))
	for i, edge := range pd.PlanConnection.Edges {
		it, err := convertNode(edge.Node)
		if err != nil {
			return nil, fmt.Errorf("itinerary %d: %w", i, err)
		}
		out = append(out, it)
	}
	return out, nil
}

func convertNode(n planNode) (models.Itinerary, error) {
	start, err := parseTime(n.Start)
	if err != nil {
		return models.Itinerary{}, fmt.Errorf("start: %w", err)
	}
	end, err := parseTime(n.End)
	if err != nil {
		return models.Itinerary{}, fmt.Errorf("end: %w", err)
	}

	legs := make([]models.Leg, 0, len(n.Legs))
	for i, l := range n.Legs {
		leg, err := convertLeg(l)
		if err != nil {
			return models.Itinerary{}, fmt.Errorf("leg %d: %w", i, err)
		}
		legs = append(legs, leg)
	}

	return models.Itinerary{
		Start:        start,
		End:          end,
		Duration:     toInt(n.Duration),
		WalkDistance: n.WalkDistance,
		WalkTime:     toInt(n.WalkTime),
		Legs:         legs,
	}, nil
}

func convertLeg(l planLeg) (models.Leg, error) {
	if strings.TrimSpace(l.Mode) == "" {
		return models.Leg{}, errors.New("missing mode")
	}
	start, err := parseTime(l.Start.ScheduledTime)
	if err != nil {
		return models.Leg{}, fmt.Errorf("start: %w", err)
	}
	end, err := parseTime(l.End.ScheduledTime)
	if err != nil {
		return models.Leg{}, fmt.Errorf("end: %w", err)
	}

	leg := models.Leg{
		Mode:      models.TransportMode(strings.ToUpper(l.Mode)),
		Start:     start,
		End:       end,
		Duration:  toInt(l.Duration),
		Distance:  l.Distance,
		FromPlace: convertPlace(l.From),
		ToPlace:   convertPlace(l.To),
	}
	if l.Route != nil && !leg.Mode.IsWalk() {
		leg.Route = &models.Route{
			ShortName:   utils.Deref(l.Route.ShortName, ""),
			LongName:    utils.Deref(l.Route.LongName, ""),
			Description: l.Route.Desc,
		}
	}
	return leg, nil
}

func convertPlace(p planPlace) models.Place {
	return models.Place{
		Coordinates: models.Coordinates{Latitude: p.Lat, Longitude: p.Lon},
		Name:        p.Name,
	}
}

// parseTime accepts RFC3339 timestamps as well as epoch milliseconds encoded
// as strings, which older API versions returned.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if t, err := utils.ParseISO(s); err == nil {
		return t, nil
	}
	var ms int64
	if _, err := fmt.Sscanf(s, "%d", &ms); err == nil && fmt.Sprint(ms) == s {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func toInt(f float64) int {
	return int(math.Round(f))
}
