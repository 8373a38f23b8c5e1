package weather

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type currentView struct {
	Temperature int      `json:"temperature"`
	WeatherCode int      `json:"weatherCode"`
	Condition   string   `json:"condition"`
	Icon        IconType `json:"icon"`
}

type forecastView struct {
	Date        string   `json:"date"`
	MaxTemp     int      `json:"maxTemp"`
	MinTemp     int      `json:"minTemp"`
	WeatherCode int      `json:"weatherCode"`
	Condition   string   `json:"condition"`
	Icon        IconType `json:"icon"`
}

type weatherView struct {
	Current  currentView    `json:"current"`
	Forecast []forecastView `json:"forecast"`
}

// GetWeather handles GET /api/weather?lat=&lng=. A weather failure is
// non-fatal for the caller, but here it is still a plain error response;
// the client decides to hide the widget.
func (h *Handler) GetWeather(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must be valid coordinates"})
		return
	}

	data, err := h.service.Fetch(c.Request.Context(), lat, lng)
	if err != nil {
		h.logger.Warn("Weather lookup failed", zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "weather unavailable"})
		return
	}

	view := weatherView{Forecast: make([]forecastView, 0, len(data.Forecast))}
	label, icon := Condition(data.Current.WeatherCode)
	view.Current = currentView{
		Temperature: data.Current.Temperature,
		WeatherCode: data.Current.WeatherCode,
		Condition:   label,
		Icon:        icon,
	}
	for _, day := range data.Forecast {
		label, icon := Condition(day.WeatherCode)
		view.Forecast = append(view.Forecast, forecastView{
			Date:        day.Date,
			MaxTemp:     day.MaxTemp,
			MinTemp:     day.MinTemp,
			WeatherCode: day.WeatherCode,
			Condition:   label,
			Icon:        icon,
		})
	}

	c.JSON(http.StatusOK, view)
}
