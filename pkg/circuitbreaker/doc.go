// Package circuitbreaker implements the circuit breaker pattern for
// guarding calls to unreliable dependencies.
//
// A breaker tracks consecutive failures and temporarily suppresses
// further attempts once a threshold is reached. It has three states:
//
//   - CLOSED: Normal operation, calls are allowed
//   - OPEN: Too many failures, calls disallowed until the cooldown elapses
//   - HALF-OPEN: Cooldown elapsed, one probe call decides what happens next
//
// The breaker never invokes anything itself: callers query it before each
// attempt and report the outcome afterwards.
//
// Usage:
//
//	registry, err := circuitbreaker.NewRegistry(5, 30*time.Second)
//	cb := registry.GetBreaker("payments")
//	if !cb.IsOpen() {
//	    err := callPayments()
//	    if err != nil {
//	        cb.Fail()
//	    } else {
//	        cb.Success()
//	    }
//	}
package circuitbreaker
