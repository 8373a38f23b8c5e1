package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal       metric.Int64Counter
	HTTPRequestDuration     metric.Float64Histogram
	AuthRequestsTotal       metric.Int64Counter
	SearchRequestsTotal     metric.Int64Counter
	ItineraryRequestsTotal  metric.Int64Counter
	GenerationDuration      metric.Float64Histogram
	SharedTripsCreatedTotal metric.Int64Counter
	DBQueryDurationSeconds  metric.Float64Histogram
	DBQueryErrorsTotal      metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("yatra")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.AuthRequestsTotal, err = meter.Int64Counter(
			"auth_requests_total",
			metric.WithDescription("Total number of authentication requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create auth_requests_total: %v", err)
		}

		m.SearchRequestsTotal, err = meter.Int64Counter(
			"attraction_search_requests_total",
			metric.WithDescription("Total number of attraction search requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create attraction_search_requests_total: %v", err)
		}

		m.ItineraryRequestsTotal, err = meter.Int64Counter(
			"itinerary_requests_total",
			metric.WithDescription("Total number of itinerary generation requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_requests_total: %v", err)
		}

		m.GenerationDuration, err = meter.Float64Histogram(
			"generation_duration_seconds",
			metric.WithDescription("Duration of generative model calls in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create generation_duration_seconds: %v", err)
		}

		m.SharedTripsCreatedTotal, err = meter.Int64Counter(
			"shared_trips_created_total",
			metric.WithDescription("Total number of shared trip links created"),
			metric.WithUnit("{trip}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create shared_trips_created_total: %v", err)
		}

		m.DBQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		m.DBQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
