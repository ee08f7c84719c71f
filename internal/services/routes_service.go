package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"commuteai/internal/clients/hsl"
	"commuteai/internal/domain"
	"commuteai/internal/domain/models"
	"commuteai/internal/utils"

	"github.com/sourcegraph/conc/pool"
)

// RoutePlanner fetches itineraries from the routing API. *hsl.Client satisfies it.
type RoutePlanner interface {
	PlanItineraries(ctx context.Context, q hsl.PlanQuery) ([]models.Itinerary, error)
}

// ItineraryEnricher attaches insights to one itinerary. InsightService satisfies it.
type ItineraryEnricher interface {
	Enrich(ctx context.Context, it *models.Itinerary, prefs []string) (Enrichment, error)
}

// RoutesService searches routes and enriches every result.
type RoutesService struct {
	Planner     RoutePlanner
	Insights    ItineraryEnricher
	Concurrency int
	RequestID   string
	Now         func() time.Time
}

func (s RoutesService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// normalizeSearch validates req and fills defaults.
func normalizeSearch(req models.RouteSearchRequest, now time.Time) (hsl.PlanQuery, error) {
	if err := req.Origin.Validate(); err != nil {
		return hsl.PlanQuery{}, domain.ValidationError{Field: "origin", Msg: err.Error(), Err: err}
	}
	if err := req.Destination.Validate(); err != nil {
		return hsl.PlanQuery{}, domain.ValidationError{Field: "destination", Msg: err.Error(), Err: err}
	}

	first := models.DefaultNumItineraries
	if req.NumItineraries != nil {
		first = *req.NumItineraries
	}
	if first < 1 || first > models.MaxNumItineraries {
		return hsl.PlanQuery{}, domain.ValidationError{
			Field: "num_itineraries",
			Msg:   fmt.Sprintf("must be between 1 and %d", models.MaxNumItineraries),
		}
	}

	dep := now
	if req.EarliestDeparture != nil && !req.EarliestDeparture.IsZero() {
		dep = *req.EarliestDeparture
	}
	return hsl.PlanQuery{
		Origin:            req.Origin,
		Destination:       req.Destination,
		EarliestDeparture: dep,
		First:             first,
	}, nil
}

// Search queries the planner then enriches each itinerary concurrently.
// Planner failures are returned as *hsl.Error; enrichment never fails the search.
func (s RoutesService) Search(ctx context.Context, req models.RouteSearchRequest, prefs []string) (models.RouteSearchResponse, error) {
	if s.Planner == nil {
		return models.RouteSearchResponse{}, domain.InternalError{Msg: "routing client not configured"}
	}
	q, err := normalizeSearch(req, s.now())
	if err != nil {
		return models.RouteSearchResponse{}, err
	}

	utils.LogEvent(s.RequestID, "routes", "search",
		fmt.Sprintf("origin=%s destination=%s first=%d", q.Origin, q.Destination, q.First))

	itineraries, err := s.Planner.PlanItineraries(ctx, q)
	if err != nil {
		utils.LogWarn(s.RequestID, "routes", "search", err, "routing request failed")
		return models.RouteSearchResponse{}, err
	}
	if itineraries == nil {
		itineraries = []models.Itinerary{}
	}

	s.EnrichAll(ctx, itineraries, prefs)

	return models.RouteSearchResponse{
		Origin:      q.Origin,
		Destination: q.Destination,
		Itineraries: itineraries,
		SearchTime:  s.now(),
	}, nil
}

// EnrichAll enriches itineraries in place on a bounded pool and returns how
// many came back with insights. Itineraries without legs are skipped.
func (s RoutesService) EnrichAll(ctx context.Context, itineraries []models.Itinerary, prefs []string) int {
	if s.Insights == nil || len(itineraries) == 0 {
		return 0
	}
	workers := s.Concurrency
	if workers < 1 {
		workers = 1
	}

	var applied atomic.Int32
	p := pool.New().WithMaxGoroutines(workers)
	for i := range itineraries {
		it := &itineraries[i]
		if len(it.Legs) == 0 {
			continue
		}
		p.Go(func() {
			res, err := s.Insights.Enrich(ctx, it, prefs)
			if err != nil {
				utils.LogWarn(s.RequestID, "routes", "enrich", err, "itinerary skipped")
				return
			}
			if res.Applied && !res.Empty {
				applied.Add(1)
			}
		})
	}
	p.Wait()

	utils.LogEvent(s.RequestID, "routes", "enrich",
		fmt.Sprintf("itineraries=%d enriched=%d", len(itineraries), applied.Load()))
	return int(applied.Load())
}

// EnrichBatch validates a client-supplied batch, enriches it with EnrichAll
// and returns one insight entry per itinerary, in request order.
func (s RoutesService) EnrichBatch(ctx context.Context, itineraries []models.Itinerary, prefs []string) ([]models.ItineraryInsight, error) {
	if len(itineraries) == 0 {
		return nil, domain.ValidationError{Field: "itineraries", Msg: "must contain at least one itinerary"}
	}
	if len(itineraries) > models.MaxNumItineraries {
		return nil, domain.ValidationError{
			Field: "itineraries",
			Msg:   fmt.Sprintf("at most %d itineraries per request", models.MaxNumItineraries),
		}
	}
	for i := range itineraries {
		if err := checkEnrichable(&itineraries[i]); err != nil {
			return nil, domain.ValidationError{Field: fmt.Sprintf("itineraries[%d]", i), Msg: err.Error(), Err: err}
		}
	}
	if s.Insights == nil {
		return nil, domain.InternalError{Msg: "insight client not configured"}
	}

	s.EnrichAll(ctx, itineraries, prefs)

	out := make([]models.ItineraryInsight, len(itineraries))
	for i := range itineraries {
		out[i] = models.InsightOf(&itineraries[i])
	}
	return out, nil
}
