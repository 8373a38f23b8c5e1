package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCondition(t *testing.T) {
	tests := []struct {
		code  int
		label string
		icon  IconType
	}{
		{0, "Clear Sky", IconClear},
		{2, "Partly Cloudy", IconCloud},
		{46, "Foggy", IconCloud},
		{61, "Rainy", IconRain},
		{75, "Snow", IconSnow},
		{81, "Showers", IconRain},
		{96, "Thunderstorm", IconStorm},
		{9999, "Clear", IconClear},
		{-1, "Clear", IconClear},
	}

	for _, tt := range tests {
		label, icon := Condition(tt.code)
		assert.Equal(t, tt.label, label, "code %d", tt.code)
		assert.Equal(t, tt.icon, icon, "code %d", tt.code)
	}
}

func TestFetch(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/forecast", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"current_weather": {"temperature": 31.6, "weathercode": 2},
				"daily": {
					"time": ["2025-06-01", "2025-06-02", "2025-06-03", "2025-06-04"],
					"weathercode": [0, 61, 96, 3],
					"temperature_2m_max": [38.2, 35.1, 33.4, 36.0],
					"temperature_2m_min": [27.8, 26.3, 25.9, 26.1]
				}
			}`))
		}))
		defer server.Close()

		service := NewServiceWithBaseURL(server.URL, logger)
		data, err := service.Fetch(context.Background(), 26.92, 75.82)
		require.NoError(t, err)

		assert.Equal(t, 32, data.Current.Temperature)
		assert.Equal(t, 2, data.Current.WeatherCode)
		require.Len(t, data.Forecast, 3)
		assert.Equal(t, "2025-06-01", data.Forecast[0].Date)
		assert.Equal(t, 38, data.Forecast[0].MaxTemp)
		assert.Equal(t, 28, data.Forecast[0].MinTemp)
		assert.Equal(t, 61, data.Forecast[1].WeatherCode)
	})

	t.Run("MissingDailyData", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"current_weather": {"temperature": 30, "weathercode": 0}}`))
		}))
		defer server.Close()

		service := NewServiceWithBaseURL(server.URL, logger)
		_, err := service.Fetch(context.Background(), 26.92, 75.82)
		assert.Error(t, err)
	})

	t.Run("ProviderError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		service := NewServiceWithBaseURL(server.URL, logger)
		_, err := service.Fetch(context.Background(), 26.92, 75.82)
		assert.Error(t, err)
	})
}
