package gamalytic

import (
	"sync"
	"time"
)

// breaker trips an endpoint after repeated consecutive failures so a dead
// upstream is skipped instead of hammered. Each endpoint trips independently.
type breaker struct {
	mu    sync.Mutex
	now   func() time.Time
	state map[string]*endpointState
}

type endpointState struct {
	failures  int
	openUntil time.Time
}

func newBreaker(now func() time.Time) *breaker {
	return &breaker{
		now:   now,
		state: make(map[string]*endpointState),
	}
}

// Allow reports whether a call to the endpoint may proceed. An open breaker
// closes again once its cooldown has elapsed.
func (b *breaker) Allow(endpoint string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, ok := b.state[endpoint]
	if !ok {
		return true
	}
	if st.openUntil.IsZero() {
		return true
	}
	if b.now().Before(st.openUntil) {
		return false
	}
	// Cooldown elapsed; allow a probe. One more failure reopens immediately.
	st.openUntil = time.Time{}
	st.failures = breakerThreshold - 1
	return true
}

func (b *breaker) RecordSuccess(endpoint string) {
	b.mu.Lock()
	delete(b.state, endpoint)
	b.mu.Unlock()
}

func (b *breaker) RecordFailure(endpoint string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	st, ok := b.state[endpoint]
	if !ok {
		st = &endpointState{}
		b.state[endpoint] = st
	}
	st.failures++
	if st.failures >= breakerThreshold {
		st.openUntil = b.now().Add(breakerCooldown)
	}
}
