package models

// RouteInsightData is the route projection sent to the AI service.
type RouteInsightData struct {
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
}

// LegInsightData is the per-leg projection sent to the AI service.
// Route is serialized as null for walking legs.
type LegInsightData struct {
	Mode      string            `json:"mode"`
	Duration  int               `json:"duration"`
	Distance  float64           `json:"distance"`
	FromPlace string            `json:"from_place"`
	ToPlace   string            `json:"to_place"`
	Route     *RouteInsightData `json:"route"`
}

type ItineraryInsightRequest struct {
	Start           string           `json:"start"`
	End             string           `json:"end"`
	Duration        int              `json:"duration"`
	WalkDistance    float64          `json:"walk_distance"`
	WalkTime        int              `json:"walk_time"`
	Legs            []LegInsightData `json:"legs"`
	UserPreferences []string         `json:"user_preferences,omitempty"`
}

// ItineraryInsightResponse holds what the AI service returned.
// AIInsights is positional: entry i belongs to request leg i.
type ItineraryInsightResponse struct {
	AIInsight  *string   `json:"ai_insight"`
	AIInsights []*string `json:"ai_insights"`
}

// Empty reports whether the response carries no insight at all.
func (r ItineraryInsightResponse) Empty() bool {
	if r.AIInsight != nil {
		return false
	}
	for _, s := range r.AIInsights {
		if s != nil {
			return false
		}
	}
	return true
}

// ItineraryInsight is the insight part of one enriched itinerary.
// AIInsights has one entry per leg.
type ItineraryInsight struct {
	AIDescription *string   `json:"ai_description"`
	AIInsights    []*string `json:"ai_insights"`
}

// InsightOf collects the insights currently attached to it.
func InsightOf(it *Itinerary) ItineraryInsight {
	out := ItineraryInsight{AIDescription: it.AIDescription, AIInsights: make([]*string, len(it.Legs))}
	for i := range it.Legs {
		out.AIInsights[i] = it.Legs[i].AIInsight
	}
	return out
}

type ItinerariesInsightRequest struct {
	Itineraries     []Itinerary `json:"itineraries"`
	UserPreferences []string    `json:"user_preferences"`
}

type ItinerariesInsightResponse struct {
	ItineraryInsights []ItineraryInsight `json:"itinerary_insights"`
}
