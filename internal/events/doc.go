// Package events collects circuit breaker state-change notifications.
//
// It uses a channel-based event pipeline to asynchronously track:
//   - Trip counts per dependency
//   - Reset counts per dependency
//   - Last trip time and the retry time armed by the trip
//
// The collector runs in a dedicated goroutine and processes events without
// blocking the breaker. Events are sent via a buffered channel with
// non-blocking semantics: delivery is best-effort and a full buffer drops
// events rather than stalling the caller.
//
// Example usage:
//
//	collector := events.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	cb, _ := circuitbreaker.New("payments", 5, 30*time.Second,
//		circuitbreaker.WithNotifier(collector))
//
//	// Later, expose collected counts
//	snapshot := collector.Snapshot()
//
// The package provides thread-safe storage using sync.RWMutex and supports
// graceful shutdown with event draining to prevent data loss.
package events
