package events

import (
	"context"
	"log/slog"
	"time"
)

type Type string

const (
	TypeOpened Type = "breaker_opened"
	TypeClosed Type = "breaker_closed"
)

type Event struct {
	Type       Type
	Dependency string
	RetryAt    time.Time
	Timestamp  time.Time
}

// Collector consumes breaker state-change notifications through a
// buffered channel. It implements circuitbreaker.Notifier, so it can be
// attached to a breaker or registry directly.
type Collector struct {
	eventCh chan Event
	stats   *Stats
	logger  *slog.Logger
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan Event, bufferSize),
		stats:   NewStats(),
		logger:  logger,
	}
}

// Opened enqueues a trip notification. The send never blocks: when the
// buffer is full the event is dropped, since delivery is best-effort and
// must not slow the breaker down.
func (c *Collector) Opened(name string, retryAt time.Time) {
	c.emit(Event{
		Type:       TypeOpened,
		Dependency: name,
		RetryAt:    retryAt,
		Timestamp:  time.Now(),
	})
}

// Closed enqueues a reset notification, with the same best-effort
// semantics as Opened.
func (c *Collector) Closed(name string) {
	c.emit(Event{
		Type:       TypeClosed,
		Dependency: name,
		Timestamp:  time.Now(),
	})
}

func (c *Collector) emit(event Event) {
	select {
	case c.eventCh <- event:
	default:
		c.logger.Debug("Event buffer full, dropping event",
			slog.String("type", string(event.Type)),
			slog.String("dependency", event.Dependency))
	}
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Event collector started")
	defer c.logger.Info("Event collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			// Drain remaining events before shutdown
			c.drain()
			return
		}
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) processEvent(event Event) {
	switch event.Type {
	case TypeOpened:
		c.stats.RecordTrip(event.Dependency, event.RetryAt, event.Timestamp)
		c.logger.Warn("Breaker opened",
			slog.String("dependency", event.Dependency),
			slog.Time("retry_at", event.RetryAt))

	case TypeClosed:
		c.stats.RecordReset(event.Dependency)
		c.logger.Info("Breaker closed",
			slog.String("dependency", event.Dependency))
	}
}

// Snapshot returns the event counts collected so far.
func (c *Collector) Snapshot() Snapshot {
	return c.stats.Snapshot()
}
