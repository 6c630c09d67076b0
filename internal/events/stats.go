package events

import (
	"sync"
	"time"
)

type Stats struct {
	mutex       sync.RWMutex
	trips       map[string]int64
	resets      map[string]int64
	lastTripped map[string]time.Time
	retryAt     map[string]time.Time
	startTime   time.Time
}

type Snapshot struct {
	TotalTrips   int64                       `json:"total_trips"`
	Uptime       time.Duration               `json:"uptime"`
	Dependencies map[string]DependencyEvents `json:"dependencies"`
}

type DependencyEvents struct {
	Trips         int64     `json:"trips"`
	Resets        int64     `json:"resets"`
	LastTrippedAt time.Time `json:"last_tripped_at"`
	RetryAt       time.Time `json:"retry_at"`
}

func NewStats() *Stats {
	return &Stats{
		trips:       make(map[string]int64),
		resets:      make(map[string]int64),
		lastTripped: make(map[string]time.Time),
		retryAt:     make(map[string]time.Time),
		startTime:   time.Now(),
	}
}

func (s *Stats) RecordTrip(dependency string, retryAt, at time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.trips[dependency]++
	s.lastTripped[dependency] = at
	s.retryAt[dependency] = retryAt
}

func (s *Stats) RecordReset(dependency string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.resets[dependency]++
}

func (s *Stats) Snapshot() Snapshot {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	snap := Snapshot{
		Uptime:       time.Since(s.startTime),
		Dependencies: make(map[string]DependencyEvents),
	}

	// Collect all dependency names seen on either side
	allDependencies := make(map[string]bool)
	for dependency := range s.trips {
		allDependencies[dependency] = true
	}
	for dependency := range s.resets {
		allDependencies[dependency] = true
	}

	for dependency := range allDependencies {
		snap.TotalTrips += s.trips[dependency]

		snap.Dependencies[dependency] = DependencyEvents{
			Trips:         s.trips[dependency],
			Resets:        s.resets[dependency],
			LastTrippedAt: s.lastTripped[dependency],
			RetryAt:       s.retryAt[dependency],
		}
	}

	return snap
}
