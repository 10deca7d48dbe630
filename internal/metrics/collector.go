package metrics

import (
	"context"
	"log/slog"
	"time"
)

type EventType string

const (
	EventListingServed EventType = "listing_served"
	EventFileServed    EventType = "file_served"
	EventNotFound      EventType = "not_found"
	EventReadFailed    EventType = "read_failed"
	EventInvalidUTF8   EventType = "invalid_utf8"
)

type MetricEvent struct {
	Type       EventType
	Timestamp  time.Time
	Path       string
	Duration   time.Duration
	StatusCode int
	Bytes      int64
}

type Collector struct {
	eventCh chan MetricEvent
	metrics *Metrics
	logger  *slog.Logger
}

func NewCollector(bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan MetricEvent, bufferSize),
		metrics: NewMetrics(),
		logger:  logger,
	}
}

func (c *Collector) EventChannel() chan<- MetricEvent {
	return c.eventCh
}

// Emit hands event to the collector without blocking. Events are dropped
// when the buffer is full.
func (c *Collector) Emit(event MetricEvent) bool {
	select {
	case c.eventCh <- event:
		return true
	default:
		return false
	}
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

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

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventListingServed, EventFileServed, EventNotFound, EventReadFailed, EventInvalidUTF8:
		c.metrics.RecordRequest(event.Type, event.Duration, event.StatusCode, event.Bytes)
	default:
		c.logger.Debug("Ignoring unknown metric event", slog.String("type", string(event.Type)))
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

func (c *Collector) Snapshot() Snapshot {
	return c.metrics.Snapshot()
}
