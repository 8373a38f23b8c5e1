package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/observability/metrics"
)

// DBTX is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Ensure implementation satisfies the interface
var _ Repository = (*RepositoryImpl)(nil)

// Repository persists shared trip records. Insert and lookup only; shared
// trips are never updated or deleted.
type Repository interface {
	SaveRecord(ctx context.Context, record *models.SharedTripRecord) error
	GetRecord(ctx context.Context, id string) (*models.SharedTripRecord, error)
}

type RepositoryImpl struct {
	db     DBTX
	logger *zap.Logger
}

func NewRepository(db DBTX, logger *zap.Logger) *RepositoryImpl {
	return &RepositoryImpl{db: db, logger: logger}
}

func (r *RepositoryImpl) SaveRecord(ctx context.Context, record *models.SharedTripRecord) error {
	payload, err := json.Marshal(record.Itinerary)
	if err != nil {
		return fmt.Errorf("%w: failed to encode itinerary: %v", models.ErrPersistenceFailed, err)
	}

	start := time.Now()
	_, err = r.db.Exec(ctx,
		`INSERT INTO shared_trips (id, itinerary, location, created_at) VALUES ($1, $2, $3, $4)`,
		record.ID, payload, record.Location, record.CreatedAt)
	r.recordQuery(ctx, "insert_shared_trip", start, err)
	if err != nil {
		r.logger.Error("Failed to insert shared trip", zap.String("id", record.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", models.ErrPersistenceFailed, err)
	}
	return nil
}

func (r *RepositoryImpl) GetRecord(ctx context.Context, id string) (*models.SharedTripRecord, error) {
	record := &models.SharedTripRecord{ID: id}
	var payload []byte

	start := time.Now()
	err := r.db.QueryRow(ctx,
		`SELECT itinerary, location, created_at FROM shared_trips WHERE id = $1`,
		id).Scan(&payload, &record.Location, &record.CreatedAt)
	r.recordQuery(ctx, "get_shared_trip", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to query shared trip", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrPersistenceFailed, err)
	}

	if err := json.Unmarshal(payload, &record.Itinerary); err != nil {
		return nil, fmt.Errorf("%w: failed to decode itinerary: %v", models.ErrPersistenceFailed, err)
	}
	return record, nil
}

func (r *RepositoryImpl) recordQuery(ctx context.Context, query string, start time.Time, err error) {
	m := metrics.Get()
	m.DBQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("query", query)))
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		m.DBQueryErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("query", query)))
	}
}
