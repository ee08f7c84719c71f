// Package hsl queries the HSL (Digitransit) GraphQL routing API for public
// transport itineraries.
package hsl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"commuteai/internal/domain"
	"commuteai/internal/domain/models"
	"commuteai/internal/metrics"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
)

// planQuery fetches itineraries between two coordinates.
const planQuery = `
query GetItinerary(
    $originLat: CoordinateValue!
    $originLon: CoordinateValue!
    $destinationLat: CoordinateValue!
    $destinationLon: CoordinateValue!
    $first: Int
    $earliestDeparture: OffsetDateTime!
) {
    planConnection(
        origin: { location: { coordinate: { latitude: $originLat, longitude: $originLon } } }
        destination: { location: { coordinate: { latitude: $destinationLat, longitude: $destinationLon } } }
        first: $first
        dateTime: { earliestDeparture: $earliestDeparture }
    ) {
        edges {
            node {
                start
                end
                duration
                walkDistance
                walkTime
                legs {
                    mode
                    start { scheduledTime }
                    end { scheduledTime }
                    duration
                    distance
                    from { name lat lon }
                    to { name lat lon }
                    route { shortName longName desc }
                }
            }
        }
    }
}`

const healthQuery = `{ __typename }`

type Config struct {
	BaseURL         string
	SubscriptionKey string
	Timeout         time.Duration
	HTTPClient      *http.Client
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		endpoint:   buildEndpoint(cfg.BaseURL, cfg.SubscriptionKey),
		httpClient: hc,
	}
}

func buildEndpoint(base, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return base
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("digitransit-subscription-key", key)
	u.RawQuery = q.Encode()
	return u.String()
}

// PlanQuery is one itinerary search.
type PlanQuery struct {
	Origin            models.Coordinates
	Destination       models.Coordinates
	EarliestDeparture time.Time
	First             int
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// PlanItineraries runs the planConnection query. Errors are *Error values.
func (c *Client) PlanItineraries(ctx context.Context, q PlanQuery) ([]models.Itinerary, error) {
	dep := q.EarliestDeparture
	if dep.IsZero() {
		dep = time.Now().UTC()
	}
	vars := map[string]any{
		"originLat":         q.Origin.Latitude,
		"originLon":         q.Origin.Longitude,
		"destinationLat":    q.Destination.Latitude,
		"destinationLon":    q.Destination.Longitude,
		"first":             q.First,
		"earliestDeparture": dep.Format(time.RFC3339),
	}

	data, err := c.execute(ctx, graphQLRequest{Query: planQuery, Variables: vars})
	if err != nil {
		metrics.ObserveRoutingCall(string(KindOf(err)))
		return nil, err
	}

	itineraries, err := parsePlan(data)
	if err != nil {
		metrics.ObserveRoutingCall(string(KindData))
		return nil, &Error{Kind: KindData, Msg: "invalid response data", Err: err}
	}
	metrics.ObserveRoutingCall("ok")
	return itineraries, nil
}

func (c *Client) execute(ctx context.Context, body graphQLRequest) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &Error{Kind: KindOther, Msg: "encode query", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Kind: KindOther, Msg: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || isTimeout(err) {
			return nil, &Error{Kind: KindNetwork, Msg: "request timed out", Err: err}
		}
		return nil, &Error{Kind: KindNetwork, Msg: "network error", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Msg: "read response", Err: err}
	}

	var gql graphQLResponse
	decodeErr := json.Unmarshal(raw, &gql)
	if decodeErr == nil && len(gql.Errors) > 0 {
		msgs := make([]string, 0, len(gql.Errors))
		for _, e := range gql.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, &Error{Kind: KindAPI, Msg: "HSL API error: " + strings.Join(msgs, "; ")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindAPI, Msg: fmt.Sprintf("HSL API returned status code: %d", resp.StatusCode)}
	}
	if decodeErr != nil {
		return nil, &Error{Kind: KindData, Msg: "invalid response data", Err: decodeErr}
	}
	return gql.Data, nil
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	t, ok := err.(timeout)
	return ok && t.Timeout()
}

// HealthCheck sends a trivial query to the routing API.
func (c *Client) HealthCheck(ctx context.Context) domain.ServiceHealth {
	_, err := c.execute(ctx, graphQLRequest{Query: healthQuery})
	if err == nil {
		return domain.ServiceHealth{Healthy: true, Message: "HSL routing API is responding"}
	}
	if KindOf(err) == KindNetwork && strings.Contains(err.Error(), "timed out") {
		return domain.ServiceHealth{Healthy: false, Message: "HSL routing API request timed out"}
	}
	return domain.ServiceHealth{Healthy: false, Message: "HSL routing API check failed: " + err.Error()}
}
