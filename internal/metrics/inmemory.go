package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	HTTPRequests     uint64
	RateLimited      uint64
	PlaceCacheHits   uint64
	PlaceCacheMisses uint64
	UsersRegistered  uint64
	LoginSuccesses   uint64
	LoginFailures    uint64
	PlacesCreated    uint64
	PlacesUpdated    uint64
	ReviewsCreated   uint64
	ListsCreated     uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	httpRequests     atomic.Uint64
	rateLimited      atomic.Uint64
	placeCacheHits   atomic.Uint64
	placeCacheMisses atomic.Uint64
	usersRegistered  atomic.Uint64
	loginSuccesses   atomic.Uint64
	loginFailures    atomic.Uint64
	placesCreated    atomic.Uint64
	placesUpdated    atomic.Uint64
	reviewsCreated   atomic.Uint64
	listsCreated     atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		HTTPRequests:     m.httpRequests.Load(),
		RateLimited:      m.rateLimited.Load(),
		PlaceCacheHits:   m.placeCacheHits.Load(),
		PlaceCacheMisses: m.placeCacheMisses.Load(),
		UsersRegistered:  m.usersRegistered.Load(),
		LoginSuccesses:   m.loginSuccesses.Load(),
		LoginFailures:    m.loginFailures.Load(),
		PlacesCreated:    m.placesCreated.Load(),
		PlacesUpdated:    m.placesUpdated.Load(),
		ReviewsCreated:   m.reviewsCreated.Load(),
		ListsCreated:     m.listsCreated.Load(),
	}
}

func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.Add(1)
}

func (m *InMemoryRecorder) IncRateLimited(scope string) { m.rateLimited.Add(1) }
func (m *InMemoryRecorder) IncPlaceCacheHit()           { m.placeCacheHits.Add(1) }
func (m *InMemoryRecorder) IncPlaceCacheMiss()          { m.placeCacheMisses.Add(1) }
func (m *InMemoryRecorder) IncUserRegistered()          { m.usersRegistered.Add(1) }
func (m *InMemoryRecorder) IncPlaceCreated()            { m.placesCreated.Add(1) }
func (m *InMemoryRecorder) IncPlaceUpdated()            { m.placesUpdated.Add(1) }
func (m *InMemoryRecorder) IncReviewCreated()           { m.reviewsCreated.Add(1) }
func (m *InMemoryRecorder) IncListCreated()             { m.listsCreated.Add(1) }

// IncLogin counts a login attempt by result.
func (m *InMemoryRecorder) IncLogin(result string) {
	if result == "success" {
		m.loginSuccesses.Add(1)
		return
	}
	m.loginFailures.Add(1)
}
