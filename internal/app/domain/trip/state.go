package trip

import (
	"sync"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
)

// State is the single linear flow driving which screen is shown and which
// gateway call is in flight.
type State string

const (
	StateIdle        State = "IDLE"
	StateSearching   State = "SEARCHING"
	StateSelecting   State = "SELECTING"
	StatePlanning    State = "PLANNING"
	StateViewingPlan State = "VIEWING_PLAN"
)

// Trip holds all planner state owned by one user session. A single
// outbound call may be in flight at a time (busy flag); a Reset during
// flight bumps the epoch so the eventual result is discarded instead of
// mutating state that has moved on.
type Trip struct {
	mu sync.Mutex

	state     State
	query     string
	results   []models.Attraction
	selected  map[string]struct{}
	itinerary *models.Itinerary
	message   string

	busy  bool
	epoch uint64
}

// NewTrip starts a trip in the Idle state with an empty selection.
func NewTrip() *Trip {
	return &Trip{
		state:    StateIdle,
		selected: make(map[string]struct{}),
	}
}

// Snapshot is an immutable view of a trip for rendering.
type Snapshot struct {
	State       State               `json:"state"`
	Query       string              `json:"query"`
	Results     []models.Attraction `json:"results"`
	SelectedIDs []string            `json:"selectedIds"`
	Itinerary   *models.Itinerary   `json:"itinerary,omitempty"`
	Message     string              `json:"message,omitempty"`
	CanGenerate bool                `json:"canGenerate"`
	Busy        bool                `json:"busy"`
}

// Snapshot returns a copy of the current trip state.
func (t *Trip) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Trip) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:       t.state,
		Query:       t.query,
		Results:     append([]models.Attraction(nil), t.results...),
		SelectedIDs: make([]string, 0, len(t.selected)),
		Itinerary:   t.itinerary,
		Message:     t.message,
		CanGenerate: t.state == StateSelecting && len(t.selected) > 0,
		Busy:        t.busy,
	}
	// Selection order follows result order so rendering is deterministic.
	for _, a := range t.results {
		if _, ok := t.selected[a.ID]; ok {
			snap.SelectedIDs = append(snap.SelectedIDs, a.ID)
		}
	}
	return snap
}

// selectedAttractions returns the selected subset in result order.
func (t *Trip) selectedAttractions() []models.Attraction {
	out := make([]models.Attraction, 0, len(t.selected))
	for _, a := range t.results {
		if _, ok := t.selected[a.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}

func (t *Trip) resetLocked() {
	t.state = StateIdle
	t.query = ""
	t.results = nil
	t.selected = make(map[string]struct{})
	t.itinerary = nil
	t.message = ""
	t.busy = false
	t.epoch++
}
