package share

import (
	"context"
	"crypto/rand"
	"time"

	"go.uber.org/zap"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
)

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idLength   = 9
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service names persisted itineraries with short random identifiers and
// retrieves them again. Collisions are accepted as low-probability risk,
// not defended against.
type Service interface {
	Save(ctx context.Context, itinerary models.Itinerary, location string) (string, error)
	Load(ctx context.Context, id string) (*models.SharedTripRecord, error)
}

type ServiceImpl struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{repo: repo, logger: logger, now: time.Now}
}

// Save persists the itinerary under a fresh identifier and returns it.
func (s *ServiceImpl) Save(ctx context.Context, itinerary models.Itinerary, location string) (string, error) {
	record := &models.SharedTripRecord{
		ID:        newTripID(),
		Itinerary: itinerary,
		Location:  location,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.SaveRecord(ctx, record); err != nil {
		s.logger.Error("Failed to save shared trip", zap.Error(err))
		return "", err
	}

	s.logger.Info("Shared trip saved", zap.String("id", record.ID), zap.String("location", location))
	return record.ID, nil
}

// Load returns the stored record, or models.ErrNotFound when the
// identifier is unknown.
func (s *ServiceImpl) Load(ctx context.Context, id string) (*models.SharedTripRecord, error) {
	return s.repo.GetRecord(ctx, id)
}

func newTripID() string {
	buf := make([]byte, idLength)
	// rand.Read never fails on supported platforms
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf)
}
