package circuitbreaker

import "time"

// Notifier receives state-change notifications. Opened fires on every
// trip with the time at which the breaker becomes eligible for a probe;
// Closed fires on every reset. Delivery is fire-and-forget: the breaker
// never fails an operation because an observer is unavailable, and a nil
// notifier disables emission entirely.
type Notifier interface {
	Opened(name string, retryAt time.Time)
	Closed(name string)
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithClock sets the time source. Useful for testing.
func WithClock(clock Clock) Option {
	return func(b *Breaker) {
		b.clock = clock
	}
}

// WithNotifier sets the observer for state-change notifications.
func WithNotifier(n Notifier) Option {
	return func(b *Breaker) {
		b.notifier = n
	}
}

type multiNotifier []Notifier

// MultiNotifier fans notifications out to every given sink, so logging,
// metrics, and event collection can all observe the same breaker.
func MultiNotifier(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}

func (m multiNotifier) Opened(name string, retryAt time.Time) {
	for _, n := range m {
		n.Opened(name, retryAt)
	}
}

func (m multiNotifier) Closed(name string) {
	for _, n := range m {
		n.Closed(name)
	}
}
