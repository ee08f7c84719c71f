package aiagents

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"commuteai/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() models.ItineraryInsightRequest {
	return models.ItineraryInsightRequest{
		Start:        "2025-10-14T10:00:00Z",
		End:          "2025-10-14T10:45:00Z",
		Duration:     2700,
		WalkDistance: 500,
		WalkTime:     400,
		Legs: []models.LegInsightData{
			{Mode: "WALK", Duration: 600, Distance: 500, FromPlace: "Origin", ToPlace: "Bus Stop"},
			{
				Mode: "BUS", Duration: 2100, Distance: 15000, FromPlace: "Bus Stop", ToPlace: "Destination",
				Route: &models.RouteInsightData{ShortName: "550", LongName: "Helsinki - Espoo"},
			},
		},
	}
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", Timeout: 2 * time.Second})
}

func TestGetItineraryInsight_Success(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, insightPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ai_insight":"Short walk then an express bus.","ai_insights":["Walk to the stop.","Express bus."]}`))
	})

	resp, err := client.GetItineraryInsight(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.AIInsight)
	assert.Equal(t, "Short walk then an express bus.", *resp.AIInsight)
	require.Len(t, resp.AIInsights, 2)
	assert.Equal(t, "Walk to the stop.", *resp.AIInsights[0])
	assert.Equal(t, "Express bus.", *resp.AIInsights[1])

	assert.EqualValues(t, 2700, captured["duration"])
	assert.EqualValues(t, 500, captured["walk_distance"])
	assert.EqualValues(t, 400, captured["walk_time"])
	_, hasPrefs := captured["user_preferences"]
	assert.False(t, hasPrefs, "user_preferences must be omitted when not provided")

	legs := captured["legs"].([]any)
	require.Len(t, legs, 2)
	walk := legs[0].(map[string]any)
	assert.Equal(t, "WALK", walk["mode"])
	route, present := walk["route"]
	assert.True(t, present, "route key is always sent")
	assert.Nil(t, route, "walking leg route must be null")
	bus := legs[1].(map[string]any)
	assert.Equal(t, map[string]any{"short_name": "550", "long_name": "Helsinki - Espoo"}, bus["route"])
}

func TestGetItineraryInsight_SendsUserPreferences(t *testing.T) {
	var captured models.ItineraryInsightRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{}`))
	})

	req := sampleRequest()
	req.UserPreferences = []string{"avoid stairs", "prefer trams"}
	_, err := client.GetItineraryInsight(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"avoid stairs", "prefer trams"}, captured.UserPreferences)
}

func TestGetItineraryInsight_LegacyDescriptionField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ai_description":"legacy summary","ai_insights":[null,"b",42]}`))
	})

	resp, err := client.GetItineraryInsight(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.AIInsight)
	assert.Equal(t, "legacy summary", *resp.AIInsight)
	require.Len(t, resp.AIInsights, 3)
	assert.Nil(t, resp.AIInsights[0])
	assert.Equal(t, "b", *resp.AIInsights[1])
	assert.Nil(t, resp.AIInsights[2], "non-string entries are absent")
}

func TestGetItineraryInsight_NullOverallDoesNotFallBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ai_insight":null,"ai_description":"ignored"}`))
	})

	resp, err := client.GetItineraryInsight(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Nil(t, resp.AIInsight)
	assert.Nil(t, resp.AIInsights)
}

func TestGetItineraryInsight_MissingFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":true,"ai_insights":"not-a-list"}`))
	})

	resp, err := client.GetItineraryInsight(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.True(t, resp.Empty())
}

func TestGetItineraryInsight_Non2xx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"ai_insight":"should not be read"}`))
	})

	resp, err := client.GetItineraryInsight(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Equal(t, ReasonStatus, ReasonOf(err))
	assert.Contains(t, err.Error(), "500")
	assert.True(t, resp.Empty())
}

func TestGetItineraryInsight_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ai_insight": "unterminated`))
	})

	resp, err := client.GetItineraryInsight(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Equal(t, ReasonDecode, ReasonOf(err))
	assert.True(t, resp.Empty())
}

func TestGetItineraryInsight_UnencodableRequest(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	req := sampleRequest()
	req.WalkDistance = math.NaN()
	resp, err := client.GetItineraryInsight(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, ReasonEncode, ReasonOf(err))
	assert.NotEqual(t, ReasonDecode, ReasonOf(err))
	assert.True(t, resp.Empty())
	assert.Zero(t, calls.Load(), "nothing is sent when the request cannot be encoded")
}

func TestGetItineraryInsight_DeadlineExceeded(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	resp, err := client.GetItineraryInsight(ctx, sampleRequest())
	require.Error(t, err)
	assert.Equal(t, ReasonTimeout, ReasonOf(err))
	assert.True(t, resp.Empty())
}

func TestGetItineraryInsight_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(Config{BaseURL: url, Timeout: time.Second})
	resp, err := client.GetItineraryInsight(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Equal(t, ReasonTransport, ReasonOf(err))
	assert.True(t, resp.Empty())
}

func TestGetItineraryInsight_ExactlyOneCall(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.GetItineraryInsight(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load(), "no retries on failure")
}

func TestHealthCheck(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, healthPath, r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})
		h := client.HealthCheck(context.Background())
		assert.True(t, h.Healthy)
		assert.Contains(t, h.Message, "responding")
	})

	t.Run("bad status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		h := client.HealthCheck(context.Background())
		assert.False(t, h.Healthy)
		assert.Contains(t, h.Message, "503")
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		})
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		h := client.HealthCheck(ctx)
		assert.False(t, h.Healthy)
		assert.Contains(t, h.Message, "timed out")
	})
}
