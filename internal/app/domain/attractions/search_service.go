package attractions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/ai"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
)

const maxResults = 8

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service finds candidate attractions for a free-text location query.
type Service interface {
	Search(ctx context.Context, query string) ([]models.Attraction, error)
}

// ServiceImpl wraps the AI gateway in grounded mode and caches results
// per normalized query.
type ServiceImpl struct {
	gateway ai.Client
	cache   *cache.Cache
	logger  *zap.Logger
}

func NewService(gateway ai.Client, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		gateway: gateway,
		cache:   cache.New(10*time.Minute, 20*time.Minute),
		logger:  logger,
	}
}

// Search returns up to 8 attractions for the query. Any entry missing
// required fields fails the whole call; there is no partial-record
// recovery.
func (s *ServiceImpl) Search(ctx context.Context, query string) ([]models.Attraction, error) {
	l := s.logger.With(zap.String("method", "Search"), zap.String("query", query))

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", models.ErrValidation)
	}

	cacheKey := strings.ToLower(query)
	if cached, found := s.cache.Get(cacheKey); found {
		l.Debug("Returning cached attraction results")
		return cached.([]models.Attraction), nil
	}

	ctx, span := otel.Tracer("AttractionSearch").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("search.query", query),
	))
	defer span.End()

	responseText, err := s.gateway.GenerateGrounded(ctx, buildSearchPrompt(query))
	if err != nil {
		l.Warn("Grounded generation failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Grounded generation failed")
		return nil, err
	}

	var results []models.Attraction
	if err := ai.ExtractJSONArray(responseText, &results); err != nil {
		l.Warn("Failed to parse attraction array", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Parse failed")
		return nil, err
	}

	if err := validateResults(results); err != nil {
		l.Warn("Attraction results failed validation", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Validation failed")
		return nil, err
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	s.cache.Set(cacheKey, results, cache.DefaultExpiration)

	l.Info("Attraction search succeeded", zap.Int("count", len(results)))
	span.SetAttributes(attribute.Int("search.results", len(results)))
	span.SetStatus(codes.Ok, "Search succeeded")
	return results, nil
}

func buildSearchPrompt(query string) string {
	return fmt.Sprintf(`Fast search: Find %d top tourist attractions in %s.
Use Google Search to get real-time info.

For each attraction:
- Precise coordinates.
- Real rating (0-5).
- Actual opening hours.
- 1 concise user review.
- Source URL.

Return RAW JSON Array:
[
  {
    "id": "kebab-case-name",
    "name": "Name",
    "description": "Concise summary (max 15 words)",
    "category": "Category",
    "estimatedTime": "e.g. 2 hrs",
    "rating": 4.5,
    "openingHours": "9AM-5PM",
    "coordinates": { "lat": 12.34, "lng": 56.78 },
    "reviews": [{ "author": "Name", "comment": "Short text", "rating": 5 }],
    "sourceUrl": "https://..."
  }
]`, maxResults, query)
}

// validateResults enforces the result-set contract: at least one entry,
// every entry carries a non-empty id unique within the set, a name and a
// coordinate.
func validateResults(results []models.Attraction) error {
	if len(results) == 0 {
		return fmt.Errorf("%w: attraction array is empty", models.ErrParseFailed)
	}

	seen := make(map[string]struct{}, len(results))
	for i, a := range results {
		if a.ID == "" {
			return fmt.Errorf("%w: attraction %d has no id", models.ErrParseFailed, i)
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("%w: duplicate attraction id %q", models.ErrParseFailed, a.ID)
		}
		seen[a.ID] = struct{}{}
		if a.Name == "" {
			return fmt.Errorf("%w: attraction %q has no name", models.ErrParseFailed, a.ID)
		}
		if a.Coordinates == nil {
			return fmt.Errorf("%w: attraction %q has no coordinates", models.ErrParseFailed, a.ID)
		}
	}
	return nil
}
