package services

import (
	"context"
	"fmt"

	"commuteai/internal/clients/aiagents"
	"commuteai/internal/domain"
	"commuteai/internal/domain/models"
	"commuteai/internal/utils"
)

// InsightFetcher is the AI-agents call the composition depends on.
// *aiagents.Client satisfies it.
type InsightFetcher interface {
	GetItineraryInsight(ctx context.Context, req models.ItineraryInsightRequest) (models.ItineraryInsightResponse, error)
}

// Enrichment reports what one Enrich call did. Reason is set when the AI
// call was attempted but produced nothing usable. Empty marks a successful
// call whose response carried no insight at all.
type Enrichment struct {
	Applied bool
	Empty   bool
	Reason  aiagents.Reason
}

// InsightService attaches AI insights to itineraries.
//
// Enrich mutates the itinerary in place. The caller owns the itinerary for the
// duration of the call; nothing else may touch it concurrently. Independent
// itineraries may be enriched concurrently on the same service value.
type InsightService struct {
	Client    InsightFetcher
	RequestID string
}

// BuildInsightRequest projects an itinerary onto the AI request contract.
func BuildInsightRequest(it *models.Itinerary, prefs []string) (models.ItineraryInsightRequest, error) {
	if err := checkEnrichable(it); err != nil {
		return models.ItineraryInsightRequest{}, err
	}

	legs := make([]models.LegInsightData, len(it.Legs))
	for i, leg := range it.Legs {
		data := models.LegInsightData{
			Mode:      string(leg.Mode),
			Duration:  leg.Duration,
			Distance:  leg.Distance,
			FromPlace: leg.FromPlace.DisplayName(),
			ToPlace:   leg.ToPlace.DisplayName(),
		}
		if leg.Route != nil && !leg.Mode.IsWalk() {
			data.Route = &models.RouteInsightData{
				ShortName: leg.Route.ShortName,
				LongName:  leg.Route.LongName,
			}
		}
		legs[i] = data
	}

	return models.ItineraryInsightRequest{
		Start:           utils.FormatISO(it.Start),
		End:             utils.FormatISO(it.End),
		Duration:        it.Duration,
		WalkDistance:    it.WalkDistance,
		WalkTime:        it.WalkTime,
		Legs:            legs,
		UserPreferences: prefs,
	}, nil
}

func checkEnrichable(it *models.Itinerary) error {
	if it == nil {
		return domain.ValidationError{Field: "itinerary", Msg: "must not be nil"}
	}
	if len(it.Legs) == 0 {
		return domain.ValidationError{Field: "legs", Msg: "itinerary must have at least one leg"}
	}
	return nil
}

// Enrich calls the AI service once and writes the overall insight and the
// per-leg insights (by position) onto it.
//
// Only caller mistakes are returned as errors (nil itinerary, no legs, no
// client); in that case no call is made and it is left as is. Once the call is
// attempted all previous insights are cleared, so a failed call leaves every
// insight absent and a second call never accumulates onto the first.
func (s InsightService) Enrich(ctx context.Context, it *models.Itinerary, prefs []string) (Enrichment, error) {
	req, err := BuildInsightRequest(it, prefs)
	if err != nil {
		return Enrichment{}, err
	}
	if s.Client == nil {
		return Enrichment{}, domain.InternalError{Msg: "insight client not configured"}
	}

	legCount := len(it.Legs)
	it.ClearInsights()

	resp, err := s.Client.GetItineraryInsight(ctx, req)
	if err != nil {
		reason := aiagents.ReasonOf(err)
		utils.LogWarn(s.RequestID, "insight", "enrich", err,
			fmt.Sprintf("no insights applied reason=%s legs=%d", reason, legCount))
		return Enrichment{Reason: reason}, nil
	}

	applyInsights(it, legCount, resp)
	if resp.Empty() {
		utils.LogEvent(s.RequestID, "insight", "enrich",
			fmt.Sprintf("empty response legs=%d", legCount))
		return Enrichment{Applied: true, Empty: true}, nil
	}
	utils.LogEvent(s.RequestID, "insight", "enrich",
		fmt.Sprintf("insights applied legs=%d received=%d", legCount, len(resp.AIInsights)))
	return Enrichment{Applied: true}, nil
}

func applyInsights(it *models.Itinerary, legCount int, resp models.ItineraryInsightResponse) {
	it.AIDescription = copyString(resp.AIInsight)

	n := min(legCount, len(resp.AIInsights))
	for i := 0; i < n; i++ {
		it.Legs[i].AIInsight = copyString(resp.AIInsights[i])
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
