package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
)

// MockGateway is a mock implementation of the ai.Client interface
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GenerateGrounded(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) GenerateStructured(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	args := m.Called(ctx, prompt, schema)
	return args.String(0), args.Error(1)
}

func testSegment(title string) models.ItinerarySegment {
	return models.ItinerarySegment{
		TimeOfDay:           "Morning",
		Title:               title,
		Description:         "Visit and explore",
		Location:            "Old town",
		FoodRecommendations: "Lassiwala nearby",
		HiddenGems:          "Rooftop view around the corner",
		InsiderTips:         "Arrive before 9AM",
		Transportation:      "Auto rickshaw, ~Rs 50",
		TravelEstimate:      "15 min drive",
		Safety:              "Watch your belongings",
		Budget:              "Rs 200 entry",
		AddOns:              "Guided tour available",
		Coordinates:         &models.Coordinates{Lat: 26.92, Lng: 75.82},
	}
}

func testPlan() models.Itinerary {
	return models.Itinerary{
		Title:    "Jaipur in 2 days",
		Overview: "A compact royal-city circuit.",
		Days: []models.DayPlan{
			{Day: 1, Segments: []models.ItinerarySegment{testSegment("Hawa Mahal")},
				SuggestedStays: []models.Accommodation{{Name: "Pink City Inn", Type: "Hotel", Rating: 4.2, PriceRange: "Rs 2000-4000", Description: "Central"}}},
			{Day: 2, Segments: []models.ItinerarySegment{testSegment("Amber Fort")}},
		},
	}
}

func marshalPlan(t *testing.T, plan models.Itinerary) string {
	t.Helper()
	data, err := json.Marshal(plan)
	require.NoError(t, err)
	return string(data)
}

var selected = []models.Attraction{
	{ID: "hawa-mahal", Name: "Hawa Mahal", OpeningHours: "9AM-5PM", Coordinates: &models.Coordinates{Lat: 26.92, Lng: 75.82}},
	{ID: "amber-fort", Name: "Amber Fort", OpeningHours: "8AM-6PM", Coordinates: &models.Coordinates{Lat: 26.98, Lng: 75.85}},
}

func TestGenerate(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Success", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("GenerateStructured", mock.Anything, mock.Anything, mock.Anything).
			Return(marshalPlan(t, testPlan()), nil)

		service := NewService(gateway, logger)
		plan, err := service.Generate(context.Background(), "Jaipur", selected)

		require.NoError(t, err)
		assert.Equal(t, "Jaipur in 2 days", plan.Title)
		assert.Len(t, plan.Days, 2)
		for i, day := range plan.Days {
			assert.Equal(t, i+1, day.Day)
			for _, seg := range day.Segments {
				assert.NotNil(t, seg.Coordinates)
			}
		}
		gateway.AssertExpectations(t)
	})

	t.Run("EmptySelection", func(t *testing.T) {
		gateway := new(MockGateway)
		service := NewService(gateway, logger)

		_, err := service.Generate(context.Background(), "Jaipur", nil)
		assert.True(t, errors.Is(err, models.ErrValidation))
		gateway.AssertNotCalled(t, "GenerateStructured", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("GatewayError", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("GenerateStructured", mock.Anything, mock.Anything, mock.Anything).
			Return("", models.ErrGenerationFailed)

		service := NewService(gateway, logger)
		_, err := service.Generate(context.Background(), "Jaipur", selected)
		assert.True(t, errors.Is(err, models.ErrGenerationFailed))
	})

	t.Run("DayNumberGap", func(t *testing.T) {
		plan := testPlan()
		plan.Days[1].Day = 3

		gateway := new(MockGateway)
		gateway.On("GenerateStructured", mock.Anything, mock.Anything, mock.Anything).
			Return(marshalPlan(t, plan), nil)

		service := NewService(gateway, logger)
		_, err := service.Generate(context.Background(), "Jaipur", selected)
		assert.True(t, errors.Is(err, models.ErrParseFailed))
	})

	t.Run("SegmentWithoutCoordinates", func(t *testing.T) {
		plan := testPlan()
		plan.Days[0].Segments[0].Coordinates = nil

		gateway := new(MockGateway)
		gateway.On("GenerateStructured", mock.Anything, mock.Anything, mock.Anything).
			Return(marshalPlan(t, plan), nil)

		service := NewService(gateway, logger)
		_, err := service.Generate(context.Background(), "Jaipur", selected)
		assert.True(t, errors.Is(err, models.ErrParseFailed))
	})

	t.Run("SegmentMissingAuxiliaryField", func(t *testing.T) {
		plan := testPlan()
		plan.Days[0].Segments[0].Safety = ""

		gateway := new(MockGateway)
		gateway.On("GenerateStructured", mock.Anything, mock.Anything, mock.Anything).
			Return(marshalPlan(t, plan), nil)

		service := NewService(gateway, logger)
		_, err := service.Generate(context.Background(), "Jaipur", selected)
		assert.True(t, errors.Is(err, models.ErrParseFailed))
	})

	t.Run("EmptySegmentsAllowed", func(t *testing.T) {
		plan := testPlan()
		plan.Days[1].Segments = []models.ItinerarySegment{}

		gateway := new(MockGateway)
		gateway.On("GenerateStructured", mock.Anything, mock.Anything, mock.Anything).
			Return(marshalPlan(t, plan), nil)

		service := NewService(gateway, logger)
		got, err := service.Generate(context.Background(), "Jaipur", selected)
		require.NoError(t, err)
		assert.Empty(t, got.Days[1].Segments)
	})
}

func TestExportPDF(t *testing.T) {
	plan := testPlan()

	t.Run("WithoutShareLink", func(t *testing.T) {
		data, err := ExportPDF(&plan, "Jaipur", "")
		require.NoError(t, err)
		assert.True(t, len(data) > 0)
		assert.Equal(t, "%PDF", string(data[:4]))
	})

	t.Run("WithShareLink", func(t *testing.T) {
		data, err := ExportPDF(&plan, "Jaipur", "https://yatra.example.com/?trip=abc123def")
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(data[:4]))
	})
}
