package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {}
func (n *NoopRecorder) IncRateLimited(scope string)                                                 {}
func (n *NoopRecorder) IncPlaceCacheHit()                                                           {}
func (n *NoopRecorder) IncPlaceCacheMiss()                                                          {}
func (n *NoopRecorder) IncUserRegistered()                                                          {}
func (n *NoopRecorder) IncLogin(result string)                                                      {}
func (n *NoopRecorder) IncPlaceCreated()                                                            {}
func (n *NoopRecorder) IncPlaceUpdated()                                                            {}
func (n *NoopRecorder) IncReviewCreated()                                                           {}
func (n *NoopRecorder) IncListCreated()                                                             {}
