package trip

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/attractions"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/itinerary"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/share"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
)

// User-visible messages set when a pipeline step fails. The trip always
// reverts to the prior stable state alongside one of these.
const (
	msgSearchFailed   = "Failed to find attractions. Please check your connection or try a different city."
	msgGenerateFailed = "Failed to create itinerary. AI might be busy, please try again."
	msgSharedNotFound = "The shared trip could not be found."
	msgSharedFailed   = "Failed to load shared trip."
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service drives the trip state machine. All operations return the
// post-transition snapshot. Pipeline failures become user-visible
// messages, not errors; errors are reserved for rejected operations
// (busy, wrong state, invalid input).
type Service interface {
	SubmitQuery(ctx context.Context, t *Trip, query string) (Snapshot, error)
	ToggleAttraction(t *Trip, attractionID string) (Snapshot, error)
	Generate(ctx context.Context, t *Trip) (Snapshot, error)
	Reset(t *Trip) Snapshot
	LoadShared(ctx context.Context, t *Trip, id string) (Snapshot, error)
}

type ServiceImpl struct {
	search    attractions.Service
	generator itinerary.Service
	shares    share.Service
	logger    *zap.Logger
}

func NewService(search attractions.Service, generator itinerary.Service, shares share.Service, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		search:    search,
		generator: generator,
		shares:    shares,
		logger:    logger,
	}
}

// SubmitQuery runs Idle -> Searching -> Selecting. A blank query is a
// no-op: the trip stays Idle and no call goes out.
func (s *ServiceImpl) SubmitQuery(ctx context.Context, t *Trip, query string) (Snapshot, error) {
	query = strings.TrimSpace(query)

	t.mu.Lock()
	if query == "" {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap, nil
	}
	if t.busy {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap, models.ErrBusy
	}
	if t.state != StateIdle {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap, fmt.Errorf("%w: submit query from %s", models.ErrInvalidTransition, t.state)
	}
	t.state = StateSearching
	t.query = query
	t.message = ""
	t.busy = true
	epoch := t.epoch
	t.mu.Unlock()

	results, err := s.search.Search(ctx, query)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.epoch != epoch {
		// Trip was reset while the call was in flight; discard the result.
		s.logger.Debug("Discarding stale search result", zap.String("query", query))
		return t.snapshotLocked(), nil
	}
	t.busy = false
	if err != nil {
		s.logger.Warn("Attraction search failed", zap.String("query", query), zap.Error(err))
		t.state = StateIdle
		t.message = msgSearchFailed
		return t.snapshotLocked(), nil
	}
	t.results = results
	t.state = StateSelecting
	return t.snapshotLocked(), nil
}

// ToggleAttraction flips selection membership for one result. The state
// stays Selecting; toggling the same id twice restores the original set.
func (s *ServiceImpl) ToggleAttraction(t *Trip, attractionID string) (Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateSelecting {
		return t.snapshotLocked(), fmt.Errorf("%w: toggle from %s", models.ErrInvalidTransition, t.state)
	}

	known := false
	for _, a := range t.results {
		if a.ID == attractionID {
			known = true
			break
		}
	}
	if !known {
		return t.snapshotLocked(), fmt.Errorf("%w: attraction %q not in current results", models.ErrNotFound, attractionID)
	}

	if _, ok := t.selected[attractionID]; ok {
		delete(t.selected, attractionID)
	} else {
		t.selected[attractionID] = struct{}{}
	}
	return t.snapshotLocked(), nil
}

// Generate runs Selecting -> Planning -> ViewingPlan. It is disabled
// (rejected with ErrValidation) while the selection set is empty.
func (s *ServiceImpl) Generate(ctx context.Context, t *Trip) (Snapshot, error) {
	t.mu.Lock()
	if t.busy {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap, models.ErrBusy
	}
	if t.state != StateSelecting {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap, fmt.Errorf("%w: generate from %s", models.ErrInvalidTransition, t.state)
	}
	if len(t.selected) == 0 {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap, fmt.Errorf("%w: selection set is empty", models.ErrValidation)
	}
	t.state = StatePlanning
	t.message = ""
	t.busy = true
	epoch := t.epoch
	location := t.query
	selected := t.selectedAttractions()
	t.mu.Unlock()

	plan, err := s.generator.Generate(ctx, location, selected)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.epoch != epoch {
		s.logger.Debug("Discarding stale itinerary result", zap.String("location", location))
		return t.snapshotLocked(), nil
	}
	t.busy = false
	if err != nil {
		s.logger.Warn("Itinerary generation failed", zap.String("location", location), zap.Error(err))
		t.state = StateSelecting
		t.message = msgGenerateFailed
		return t.snapshotLocked(), nil
	}
	t.itinerary = plan
	t.state = StateViewingPlan
	return t.snapshotLocked(), nil
}

// Reset returns the trip to Idle, clearing query, results, selection,
// itinerary and error. Any in-flight result is discarded on arrival.
func (s *ServiceImpl) Reset(t *Trip) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
	return t.snapshotLocked()
}

// LoadShared jumps Idle -> ViewingPlan when the identifier is found in
// the share store. Not-found is a negative result, not an error: the trip
// stays Idle with a message set.
func (s *ServiceImpl) LoadShared(ctx context.Context, t *Trip, id string) (Snapshot, error) {
	t.mu.Lock()
	if t.busy {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap, models.ErrBusy
	}
	if t.state != StateIdle {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap, fmt.Errorf("%w: load shared trip from %s", models.ErrInvalidTransition, t.state)
	}
	t.busy = true
	epoch := t.epoch
	t.mu.Unlock()

	record, err := s.shares.Load(ctx, id)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.epoch != epoch {
		return t.snapshotLocked(), nil
	}
	t.busy = false
	switch {
	case err == nil:
		t.query = record.Location
		t.itinerary = &record.Itinerary
		t.message = ""
		t.state = StateViewingPlan
	case isNotFound(err):
		s.logger.Info("Shared trip not found", zap.String("id", id))
		t.message = msgSharedNotFound
	default:
		s.logger.Warn("Shared trip load failed", zap.String("id", id), zap.Error(err))
		t.message = msgSharedFailed
	}
	return t.snapshotLocked(), nil
}
