package circuitbreaker

import (
	"sync"
	"time"
)

// Registry holds one breaker per dependency name, all sharing the same
// threshold, cooldown, and options. Breakers are created lazily on first
// lookup.
type Registry struct {
	mutex    sync.RWMutex
	breakers map[string]*Breaker

	threshold uint8
	cooldown  time.Duration
	opts      []Option
}

// NewRegistry creates a Registry whose breakers use the given threshold
// and cooldown. The configuration is validated once here, so GetBreaker
// never fails. Returns ErrInvalidConfiguration when threshold or cooldown
// is zero.
func NewRegistry(threshold uint8, cooldown time.Duration, opts ...Option) (*Registry, error) {
	if threshold == 0 || cooldown <= 0 {
		return nil, ErrInvalidConfiguration
	}

	return &Registry{
		breakers:  make(map[string]*Breaker),
		threshold: threshold,
		cooldown:  cooldown,
		opts:      opts,
	}, nil
}

// GetBreaker returns the breaker for the named dependency, creating it if
// it does not exist yet.
func (r *Registry) GetBreaker(name string) *Breaker {
	r.mutex.RLock()
	b, exists := r.breakers[name]
	r.mutex.RUnlock()

	if exists {
		return b
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	// Double-check: another goroutine may have created it
	if b, exists = r.breakers[name]; exists {
		return b
	}

	// Cannot fail: the registry validated threshold and cooldown.
	b, _ = New(name, r.threshold, r.cooldown, r.opts...)
	r.breakers[name] = b
	return b
}

// Reset discards every breaker; the next lookups start from fresh CLOSED
// breakers.
func (r *Registry) Reset() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.breakers = make(map[string]*Breaker)
}

// Stats returns the current effective state of every breaker.
func (r *Registry) Stats() map[string]State {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	stats := make(map[string]State, len(r.breakers))
	for name, b := range r.breakers {
		stats[name] = b.State()
	}
	return stats
}
