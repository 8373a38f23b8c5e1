package itinerary

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/ai"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service turns a selected set of attractions into a multi-day plan.
type Service interface {
	Generate(ctx context.Context, location string, selected []models.Attraction) (*models.Itinerary, error)
}

// ServiceImpl wraps the AI gateway in schema-constrained mode.
type ServiceImpl struct {
	gateway ai.Client
	logger  *zap.Logger
}

func NewService(gateway ai.Client, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{gateway: gateway, logger: logger}
}

// Generate builds the planning prompt from the enriched attraction data
// (real hours and coordinates) and validates the returned plan before
// handing it back.
func (s *ServiceImpl) Generate(ctx context.Context, location string, selected []models.Attraction) (*models.Itinerary, error) {
	l := s.logger.With(zap.String("method", "Generate"), zap.String("location", location))

	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: no attractions selected", models.ErrValidation)
	}

	ctx, span := otel.Tracer("ItineraryGenerator").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("location", location),
		attribute.Int("attractions.count", len(selected)),
	))
	defer span.End()

	responseText, err := s.gateway.GenerateStructured(ctx, buildItineraryPrompt(location, selected), itinerarySchema())
	if err != nil {
		l.Warn("Structured generation failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Structured generation failed")
		return nil, err
	}

	var plan models.Itinerary
	if err := ai.ExtractJSONObject(responseText, &plan); err != nil {
		l.Warn("Failed to parse itinerary object", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Parse failed")
		return nil, err
	}

	if err := validateItinerary(&plan); err != nil {
		l.Warn("Generated itinerary failed validation", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Validation failed")
		return nil, err
	}

	l.Info("Itinerary generated", zap.Int("days", len(plan.Days)))
	span.SetAttributes(attribute.Int("itinerary.days", len(plan.Days)))
	span.SetStatus(codes.Ok, "Itinerary generated")
	return &plan, nil
}

func buildItineraryPrompt(location string, selected []models.Attraction) string {
	var context strings.Builder
	for _, a := range selected {
		lat, lng := 0.0, 0.0
		if a.Coordinates != nil {
			lat, lng = a.Coordinates.Lat, a.Coordinates.Lng
		}
		fmt.Fprintf(&context, "%s (Hours: %s, Location: %g,%g)\n", a.Name, a.OpeningHours, lat, lng)
	}

	return fmt.Sprintf(`Create a logical, efficient travel itinerary for visiting these places in %s:
%s
Group visits by geographic proximity. Suggest generic lunch/dinner spots near attractions.

For every segment:
1. Provide coordinates.
2. Provide "travelEstimate" (e.g., "15 min drive") from previous location.
3. Fill in foodRecommendations, hiddenGems, insiderTips, transportation, safety, budget and addOns.

For every day, suggest 1-2 stays (hotel/hostel/resort/camp) near that day's area.

Return strictly JSON matching the schema.`, location, context.String())
}

// validateItinerary enforces the structural contract on a generated plan:
// day numbers unique and consecutive from 1, segments non-nil, every
// segment with coordinates and the required auxiliary fields.
func validateItinerary(plan *models.Itinerary) error {
	if plan.Title == "" || plan.Overview == "" {
		return fmt.Errorf("%w: itinerary missing title or overview", models.ErrParseFailed)
	}
	if len(plan.Days) == 0 {
		return fmt.Errorf("%w: itinerary has no days", models.ErrParseFailed)
	}

	for i, day := range plan.Days {
		if day.Day != i+1 {
			return fmt.Errorf("%w: day numbers must be consecutive from 1, got %d at position %d", models.ErrParseFailed, day.Day, i)
		}
		if day.Segments == nil {
			return fmt.Errorf("%w: day %d has nil segments", models.ErrParseFailed, day.Day)
		}
		for j, seg := range day.Segments {
			if err := validateSegment(day.Day, j, seg); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateSegment(day, idx int, seg models.ItinerarySegment) error {
	if seg.TimeOfDay == "" || seg.Title == "" || seg.Description == "" {
		return fmt.Errorf("%w: day %d segment %d missing timeOfDay/title/description", models.ErrParseFailed, day, idx)
	}
	if seg.Coordinates == nil {
		return fmt.Errorf("%w: day %d segment %d has no coordinates", models.ErrParseFailed, day, idx)
	}

	aux := map[string]string{
		"foodRecommendations": seg.FoodRecommendations,
		"hiddenGems":          seg.HiddenGems,
		"insiderTips":         seg.InsiderTips,
		"transportation":      seg.Transportation,
		"travelEstimate":      seg.TravelEstimate,
		"safety":              seg.Safety,
		"budget":              seg.Budget,
		"addOns":              seg.AddOns,
	}
	for _, field := range requiredSegmentFields {
		if aux[field] == "" {
			return fmt.Errorf("%w: day %d segment %d missing %s", models.ErrParseFailed, day, idx, field)
		}
	}
	return nil
}
