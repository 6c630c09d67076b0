// Package probe implements the caller side of the circuit breaker
// contract. It periodically attempts each guarded dependency, querying
// the breaker before every attempt and reporting the outcome afterwards.
package probe
