package circuitbreaker

import (
	"errors"
	"math"
	"sync"
	"time"
)

type State int

const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Cooling down, calls disallowed
	StateHalfOpen              // Cooldown elapsed, one probe expected
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF-OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrInvalidConfiguration is returned by New and NewRegistry when the
// failure threshold or the cooldown is zero.
var ErrInvalidConfiguration = errors.New("circuitbreaker: failure threshold and cooldown must be positive")

// Breaker guards a single unreliable dependency. Callers query
// IsOpen/IsHalfOpen before attempting the protected call and report the
// outcome afterwards with Success or Fail. Safe for concurrent use.
//
// Only CLOSED and OPEN are stored. HALF-OPEN is derived from the stored
// status and the clock: an open breaker whose retry time has passed is
// half-open. No timer is needed; any query sees the current effective
// state.
type Breaker struct {
	name             string
	failureThreshold uint8
	cooldown         time.Duration

	mutex        sync.Mutex
	status       State // StateClosed or StateOpen, never StateHalfOpen
	failureCount uint8
	retryAt      time.Time

	clock    Clock
	notifier Notifier
}

// New creates a Breaker for the named dependency. The breaker starts
// CLOSED and trips after threshold consecutive failures, staying open for
// cooldown before allowing a probe. Returns ErrInvalidConfiguration when
// threshold or cooldown is zero.
func New(name string, threshold uint8, cooldown time.Duration, opts ...Option) (*Breaker, error) {
	if threshold == 0 || cooldown <= 0 {
		return nil, ErrInvalidConfiguration
	}

	b := &Breaker{
		name:             name,
		failureThreshold: threshold,
		cooldown:         cooldown,
		status:           StateClosed,
		clock:            realClock{},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Name returns the dependency name the breaker was created with.
func (b *Breaker) Name() string {
	return b.name
}

// Success reports a successful invocation of the protected call.
// While half-open it closes the breaker and resets the failure count;
// in every other state it is a no-op. A success reported while still
// cooling down does not cut the cooldown short: the caller should not
// have attempted the call, and the breaker does not assume it obeyed.
func (b *Breaker) Success() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.currentState() != StateHalfOpen {
		return
	}

	b.status = StateClosed
	b.failureCount = 0

	if b.notifier != nil {
		b.notifier.Closed(b.name)
	}
}

// Fail reports a failed invocation of the protected call. The failure
// count always increments (saturating at 255). The breaker trips when it
// is closed and the count reaches the threshold, or immediately on the
// first failed probe while half-open. Tripping arms a fresh cooldown from
// now, never extending the previous retry time.
func (b *Breaker) Fail() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.failureCount < math.MaxUint8 {
		b.failureCount++
	}

	state := b.currentState()
	if state == StateHalfOpen || (state == StateClosed && b.failureCount >= b.failureThreshold) {
		b.trip()
	}
}

// State returns the current effective state.
func (b *Breaker) State() State {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.currentState()
}

// IsClosed reports whether the breaker is operating normally.
func (b *Breaker) IsClosed() bool {
	return b.State() == StateClosed
}

// IsOpen reports whether calls are currently disallowed.
func (b *Breaker) IsOpen() bool {
	return b.State() == StateOpen
}

// IsHalfOpen reports whether the cooldown has elapsed and a single probe
// call is expected.
func (b *Breaker) IsHalfOpen() bool {
	return b.State() == StateHalfOpen
}

// FailureCount returns the number of failures recorded since the breaker
// last closed. Meaningful only while the breaker is closed.
func (b *Breaker) FailureCount() uint8 {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.failureCount
}

// RetryAt returns the time at which an open breaker becomes half-open.
// Zero before the first trip.
func (b *Breaker) RetryAt() time.Time {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.retryAt
}

// currentState derives the effective state without mutating anything.
// Callers must hold b.mutex.
func (b *Breaker) currentState() State {
	if b.status == StateOpen && !b.clock.Now().Before(b.retryAt) {
		return StateHalfOpen
	}
	return b.status
}

// trip opens the breaker and arms the cooldown. Callers must hold b.mutex.
func (b *Breaker) trip() {
	b.status = StateOpen
	b.retryAt = b.clock.Now().Add(b.cooldown)

	if b.notifier != nil {
		b.notifier.Opened(b.name, b.retryAt)
	}
}
