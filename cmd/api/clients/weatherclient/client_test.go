package weatherclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"choo-choo/cmd/api/assistant"
)

func TestCurrentParsesReport(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		gotQuery = map[string]string{
			"q":     r.URL.Query().Get("q"),
			"units": r.URL.Query().Get("units"),
			"appid": r.URL.Query().Get("appid"),
		}
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "Paris",
			"sys": {"country": "FR"},
			"main": {"temp": 18.5, "feels_like": 17.9, "humidity": 64},
			"weather": [{"description": "light rain"}]
		}`))
	}))
	defer srv.Close()

	c := New("k-123", time.Second, WithBaseURL(srv.URL))
	w, err := c.Current(context.Background(), "paris")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"q": "paris", "units": "metric", "appid": "k-123"}, gotQuery)
	assert.Equal(t, &assistant.Weather{
		City:        "Paris",
		Country:     "FR",
		Temperature: 18.5,
		FeelsLike:   17.9,
		Description: "light rain",
		Humidity:    64,
	}, w)
}

func TestCurrentCityNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	_, err := New("k", time.Second, WithBaseURL(srv.URL)).Current(context.Background(), "atlantis")
	assert.ErrorIs(t, err, assistant.ErrUpstreamNotFound)
}

func TestCurrentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New("k", time.Second, WithBaseURL(srv.URL)).Current(context.Background(), "paris")
	var upErr *assistant.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
	assert.Equal(t, "weather", upErr.Service)
}

func TestCurrentTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := New("k", 20*time.Millisecond, WithBaseURL(srv.URL)).Current(context.Background(), "paris")
	var upErr *assistant.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Zero(t, upErr.StatusCode)
}

func TestCurrentWithoutKey(t *testing.T) {
	t.Setenv("WEATHER_API_KEY", "")
	c := NewFromEnv(time.Second)
	assert.False(t, c.Configured())
	_, err := c.Current(context.Background(), "paris")
	assert.ErrorIs(t, err, assistant.ErrNotConfigured)
}
