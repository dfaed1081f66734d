// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
type Recorder interface {
	// HTTP metrics
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
	IncRateLimited(scope string)

	// Place cache metrics
	IncPlaceCacheHit()
	IncPlaceCacheMiss()

	// Domain events
	IncUserRegistered()
	IncLogin(result string) // result: "success" or "failure"
	IncPlaceCreated()
	IncPlaceUpdated()
	IncReviewCreated()
	IncListCreated()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
