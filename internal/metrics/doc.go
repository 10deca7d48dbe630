// Package metrics collects request outcomes for the file server.
//
// Request handlers emit one event per request:
//   - listing_served, file_served for successful responses
//   - not_found, read_failed, invalid_utf8 for error responses
//
// Events travel over a buffered channel to a dedicated goroutine, so the
// request path never waits on bookkeeping. When the buffer is full the event
// is dropped. On shutdown the collector drains what is still queued.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger)
//	collector.Start(ctx)
//
//	collector.Emit(metrics.MetricEvent{
//		Type:       metrics.EventFileServed,
//		Path:       "notes.txt",
//		Duration:   2 * time.Millisecond,
//		StatusCode: 200,
//		Bytes:      5,
//	})
//
//	snapshot := collector.Snapshot()
//
// A snapshot carries per-outcome counts, the status code distribution, bytes
// served and latency percentiles (P50, P95, P99) over the last 1000 requests.
package metrics
