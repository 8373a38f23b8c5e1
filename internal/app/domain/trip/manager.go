package trip

import (
	"errors"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
)

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrNotFound)
}

// Manager keys live trips by session id. Trips expire after a period of
// inactivity; touching a trip slides its expiry.
type Manager struct {
	trips *cache.Cache
}

func NewManager() *Manager {
	return &Manager{trips: cache.New(2*time.Hour, 30*time.Minute)}
}

// Get returns the trip for the session, creating an Idle one on first use.
func (m *Manager) Get(sessionID string) *Trip {
	if cached, found := m.trips.Get(sessionID); found {
		t := cached.(*Trip)
		m.trips.Set(sessionID, t, cache.DefaultExpiration)
		return t
	}
	t := NewTrip()
	m.trips.Set(sessionID, t, cache.DefaultExpiration)
	return t
}

// Drop removes the session's trip, e.g. on logout.
func (m *Manager) Drop(sessionID string) {
	m.trips.Delete(sessionID)
}
