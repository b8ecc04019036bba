package quota

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrQuotaExceeded is returned when a call cannot be admitted within the
// caller's deadline. It is a local decision, distinct from a provider
// signaling throttling over the wire.
var ErrQuotaExceeded = errors.New("quota exceeded")

// Policy is a fixed-window request budget.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Snapshot is a read-only view of one budget's state.
type Snapshot struct {
	WindowStart      time.Time     `json:"windowStart"`
	RequestsInWindow int           `json:"requestsInWindow"`
	Limit            int           `json:"limit"`
	Window           time.Duration `json:"window"`
	Queued           int           `json:"queued"`
}

type waiter struct {
	ch       chan struct{}
	admitted bool
}

type tracker struct {
	policy      Policy
	windowStart time.Time
	requests    int
	queue       []*waiter
}

// Scheduler gates outbound calls per budget key using fixed window counters.
// Budgets are independent; waiters within one budget wake in FIFO order.
// All state is guarded by a single mutex since admission is cheap.
type Scheduler struct {
	mu       sync.Mutex
	trackers map[string]*tracker
	now      func() time.Time
}

// NewScheduler constructs an empty scheduler. Budgets must be registered
// before Admit is called for their key.
func NewScheduler() *Scheduler {
	return &Scheduler{
		trackers: make(map[string]*tracker),
		now:      time.Now,
	}
}

// Register installs a budget for key. Re-registering replaces the policy but
// keeps the current window.
func (s *Scheduler) Register(key string, policy Policy) {
	if policy.Limit <= 0 {
		policy.Limit = 1
	}
	if policy.Window <= 0 {
		policy.Window = time.Second
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.trackers[key]; ok {
		t.policy = policy
		return
	}
	s.trackers[key] = &tracker{policy: policy, windowStart: s.now()}
}

// Admit blocks until the budget for key has capacity, then counts the call
// and returns. If the projected wait would outlast the context deadline it
// fails immediately with ErrQuotaExceeded instead of parking. Waiters are
// admitted in submission order.
func (s *Scheduler) Admit(ctx context.Context, key string) error {
	s.mu.Lock()
	t, ok := s.trackers[key]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("quota: no budget registered for %q", key)
	}

	s.refresh(t)
	if len(t.queue) == 0 && t.requests < t.policy.Limit {
		t.requests++
		s.mu.Unlock()
		return nil
	}

	// Projected admission time given our queue position; each window reset
	// drains at most Limit waiters ahead of us.
	position := len(t.queue)
	windowsAway := position/t.policy.Limit + 1
	wake := t.windowStart.Add(time.Duration(windowsAway) * t.policy.Window)
	if deadline, hasDeadline := ctx.Deadline(); hasDeadline && wake.After(deadline) {
		s.mu.Unlock()
		return fmt.Errorf("%w: next slot for %q at %s is past the caller deadline", ErrQuotaExceeded, key, wake.Format(time.RFC3339))
	}

	w := &waiter{ch: make(chan struct{})}
	t.queue = append(t.queue, w)
	wait := wake.Sub(s.now())
	s.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			if w.admitted {
				s.mu.Unlock()
				return nil
			}
			s.removeWaiter(t, w)
			s.mu.Unlock()
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w: deadline expired while queued for %q", ErrQuotaExceeded, key)
			}
			return ctx.Err()
		case <-w.ch:
			return nil
		case <-timer.C:
			s.mu.Lock()
			s.refresh(t)
			s.dispatch(t)
			if w.admitted {
				s.mu.Unlock()
				return nil
			}
			next := t.windowStart.Add(t.policy.Window).Sub(s.now())
			if next <= 0 {
				next = time.Millisecond
			}
			s.mu.Unlock()
			timer.Reset(next)
		}
	}
}

// Usage returns the current state of the budget for key.
func (s *Scheduler) Usage(key string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trackers[key]
	if !ok {
		return Snapshot{}, false
	}
	s.refresh(t)
	return Snapshot{
		WindowStart:      t.windowStart,
		RequestsInWindow: t.requests,
		Limit:            t.policy.Limit,
		Window:           t.policy.Window,
		Queued:           len(t.queue),
	}, true
}

// Keys returns every registered budget key.
func (s *Scheduler) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.trackers))
	for k := range s.trackers {
		keys = append(keys, k)
	}
	return keys
}

// refresh starts a new window when the current one has elapsed. Callers must
// hold the lock.
func (s *Scheduler) refresh(t *tracker) {
	if s.now().Sub(t.windowStart) >= t.policy.Window {
		t.windowStart = s.now()
		t.requests = 0
	}
}

// dispatch admits queued waiters from the head while capacity remains.
// Callers must hold the lock.
func (s *Scheduler) dispatch(t *tracker) {
	for len(t.queue) > 0 && t.requests < t.policy.Limit {
		w := t.queue[0]
		t.queue = t.queue[1:]
		t.requests++
		w.admitted = true
		close(w.ch)
	}
}

func (s *Scheduler) removeWaiter(t *tracker, w *waiter) {
	for i, queued := range t.queue {
		if queued == w {
			t.queue = append(t.queue[:i], t.queue[i+1:]...)
			return
		}
	}
}
