package circuitbreaker

import "time"

// Clock supplies the current time. Breakers never read the system clock
// directly, so tests can simulate elapsed cooldowns instead of sleeping.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}
