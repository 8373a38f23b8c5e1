package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.open-meteo.com"

// IconType is one of the five icon categories the UI knows how to draw.
type IconType string

const (
	IconClear IconType = "clear"
	IconCloud IconType = "cloud"
	IconRain  IconType = "rain"
	IconSnow  IconType = "snow"
	IconStorm IconType = "storm"
)

// Condition maps a WMO weather code to a label and icon category using
// fixed numeric-range rules. Unknown codes fall back to clear.
func Condition(code int) (label string, icon IconType) {
	switch {
	case code == 0:
		return "Clear Sky", IconClear
	case code >= 1 && code <= 3:
		return "Partly Cloudy", IconCloud
	case code >= 45 && code <= 48:
		return "Foggy", IconCloud
	case code >= 51 && code <= 67:
		return "Rainy", IconRain
	case code >= 71 && code <= 77:
		return "Snow", IconSnow
	case code >= 80 && code <= 82:
		return "Showers", IconRain
	case code >= 95 && code <= 99:
		return "Thunderstorm", IconStorm
	default:
		return "Clear", IconClear
	}
}

// CurrentWeather is the present conditions at a coordinate.
type CurrentWeather struct {
	Temperature int `json:"temperature"`
	WeatherCode int `json:"weatherCode"`
}

// ForecastDay is one day of the 3-day outlook.
type ForecastDay struct {
	Date        string `json:"date"`
	MaxTemp     int    `json:"maxTemp"`
	MinTemp     int    `json:"minTemp"`
	WeatherCode int    `json:"weatherCode"`
}

// Data bundles current conditions and the 3-day forecast.
type Data struct {
	Current  CurrentWeather `json:"current"`
	Forecast []ForecastDay  `json:"forecast"`
}

// Service fetches weather from open-meteo. It is a direct boundary call:
// one request, no retry, whatever timeout the client enforces.
type Service interface {
	Fetch(ctx context.Context, lat, lng float64) (*Data, error)
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	client  *http.Client
	baseURL string
	logger  *zap.Logger
}

func NewService(logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		logger:  logger,
	}
}

// NewServiceWithBaseURL is used by tests to point at a stub server.
func NewServiceWithBaseURL(baseURL string, logger *zap.Logger) *ServiceImpl {
	s := NewService(logger)
	s.baseURL = baseURL
	return s
}

type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
	Daily struct {
		Time           []string  `json:"time"`
		WeatherCode    []int     `json:"weathercode"`
		Temperature2mX []float64 `json:"temperature_2m_max"`
		Temperature2mN []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func (s *ServiceImpl) Fetch(ctx context.Context, lat, lng float64) (*Data, error) {
	url := fmt.Sprintf("%s/v1/forecast?latitude=%g&longitude=%g&daily=weathercode,temperature_2m_max,temperature_2m_min&current_weather=true&timezone=auto",
		s.baseURL, lat, lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("Weather fetch failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if len(payload.Daily.Time) == 0 {
		return nil, fmt.Errorf("weather response has no daily data")
	}

	data := &Data{
		Current: CurrentWeather{
			Temperature: int(math.Round(payload.CurrentWeather.Temperature)),
			WeatherCode: payload.CurrentWeather.WeatherCode,
		},
	}
	days := len(payload.Daily.Time)
	if days > 3 {
		days = 3
	}
	for i := 0; i < days; i++ {
		day := ForecastDay{Date: payload.Daily.Time[i]}
		if i < len(payload.Daily.Temperature2mX) {
			day.MaxTemp = int(math.Round(payload.Daily.Temperature2mX[i]))
		}
		if i < len(payload.Daily.Temperature2mN) {
			day.MinTemp = int(math.Round(payload.Daily.Temperature2mN[i]))
		}
		if i < len(payload.Daily.WeatherCode) {
			day.WeatherCode = payload.Daily.WeatherCode[i]
		}
		data.Forecast = append(data.Forecast, day)
	}
	return data, nil
}
