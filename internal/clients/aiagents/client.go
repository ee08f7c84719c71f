// Package aiagents talks to the external AI-agents service that writes
// natural-language insights for itineraries.
package aiagents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"commuteai/internal/domain"
	"commuteai/internal/domain/models"
	"commuteai/internal/metrics"

	"github.com/tidwall/gjson"
)

const (
	insightPath    = "/api/v1/insight/itinerary"
	healthPath     = "/health"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is safe for concurrent use; it holds no per-call state.
type Client struct {
	baseURL    string
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
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: hc,
	}
}

// GetItineraryInsight issues exactly one POST to the insight endpoint.
//
// The returned response is always safe to apply. When the call fails (transport
// error, deadline, non-2xx, undecodable body) it is the empty response and the
// error is an *Error describing why. Fields missing from an otherwise valid body
// are simply absent.
func (c *Client) GetItineraryInsight(ctx context.Context, req models.ItineraryInsightRequest) (models.ItineraryInsightResponse, error) {
	var empty models.ItineraryInsightResponse
	start := time.Now()

	payload, err := json.Marshal(req)
	if err != nil {
		return empty, c.fail(&Error{Reason: ReasonEncode, Err: fmt.Errorf("marshal request: %w", err)}, start)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+insightPath, bytes.NewReader(payload))
	if err != nil {
		return empty, c.fail(&Error{Reason: ReasonTransport, Err: err}, start)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return empty, c.fail(&Error{Reason: classifyTransport(ctx, err), Err: err}, start)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return empty, c.fail(&Error{Reason: ReasonStatus, Status: resp.StatusCode}, start)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return empty, c.fail(&Error{Reason: classifyTransport(ctx, err), Err: err}, start)
	}

	out, err := decodeInsightResponse(body)
	if err != nil {
		return empty, c.fail(&Error{Reason: ReasonDecode, Status: resp.StatusCode, Err: err}, start)
	}

	metrics.ObserveInsightCall("ok", time.Since(start))
	return out, nil
}

func (c *Client) fail(err *Error, start time.Time) error {
	metrics.ObserveInsightCall(string(err.Reason), time.Since(start))
	return err
}

// decodeInsightResponse reads the body field by field so that a missing or
// mistyped field only blanks that field.
func decodeInsightResponse(body []byte) (models.ItineraryInsightResponse, error) {
	var out models.ItineraryInsightResponse
	if !gjson.ValidBytes(body) {
		return out, errors.New("response body is not valid JSON")
	}
	root := gjson.ParseBytes(body)

	overall := root.Get("ai_insight")
	if !overall.Exists() {
		overall = root.Get("ai_description")
	}
	out.AIInsight = stringOrNil(overall)

	if list := root.Get("ai_insights"); list.IsArray() {
		items := list.Array()
		out.AIInsights = make([]*string, len(items))
		for i, item := range items {
			out.AIInsights[i] = stringOrNil(item)
		}
	}
	return out, nil
}

func stringOrNil(v gjson.Result) *string {
	if v.Type != gjson.String {
		return nil
	}
	s := v.String()
	return &s
}

// HealthCheck probes GET /health and never returns an error.
func (c *Client) HealthCheck(ctx context.Context) domain.ServiceHealth {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return domain.ServiceHealth{Healthy: false, Message: "AI-agents API check failed: " + err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if classifyTransport(ctx, err) == ReasonTimeout {
			return domain.ServiceHealth{Healthy: false, Message: "AI-agents API request timed out"}
		}
		return domain.ServiceHealth{Healthy: false, Message: "AI-agents API check failed: " + err.Error()}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode == http.StatusOK {
		return domain.ServiceHealth{Healthy: true, Message: "AI-agents API is responding"}
	}
	return domain.ServiceHealth{
		Healthy: false,
		Message: fmt.Sprintf("AI-agents API returned status code: %d", resp.StatusCode),
	}
}
