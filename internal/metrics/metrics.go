package metrics

import (
	"maps"
	"sort"
	"sync"
	"time"
)

const maxResponseSamples = 1000

type Metrics struct {
	mutex         sync.RWMutex
	outcomes      map[EventType]int64
	responseTimes []time.Duration
	statusCodes   map[int]int64
	bytesServed   int64
	startTime     time.Time
}

type Snapshot struct {
	TotalRequests int64               `json:"total_requests"`
	Uptime        time.Duration       `json:"uptime"`
	Outcomes      map[EventType]int64 `json:"outcomes"`
	StatusCodes   map[int]int64       `json:"status_codes"`
	BytesServed   int64               `json:"bytes_served"`
	AvgResponse   time.Duration       `json:"avg_response"`
	P50Response   time.Duration       `json:"p50_response"`
	P95Response   time.Duration       `json:"p95_response"`
	P99Response   time.Duration       `json:"p99_response"`
}

// RecordRequest stores the result of one served request.
func (m *Metrics) RecordRequest(outcome EventType, duration time.Duration, statusCode int, bytes int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.outcomes[outcome]++
	m.statusCodes[statusCode]++
	m.bytesServed += bytes

	m.responseTimes = append(m.responseTimes, duration)
	if len(m.responseTimes) > maxResponseSamples {
		m.responseTimes = m.responseTimes[1:]
	}
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Uptime:      time.Since(m.startTime),
		Outcomes:    maps.Clone(m.outcomes),
		StatusCodes: maps.Clone(m.statusCodes),
		BytesServed: m.bytesServed,
	}

	for _, count := range m.outcomes {
		snap.TotalRequests += count
	}

	if len(m.responseTimes) > 0 {
		sorted := make([]time.Duration, len(m.responseTimes))
		copy(sorted, m.responseTimes)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i] < sorted[j]
		})

		snap.AvgResponse = average(sorted)
		snap.P50Response = percentile(sorted, 0.50)
		snap.P95Response = percentile(sorted, 0.95)
		snap.P99Response = percentile(sorted, 0.99)
	}

	return snap
}

func NewMetrics() *Metrics {
	return &Metrics{
		outcomes:    make(map[EventType]int64),
		statusCodes: make(map[int]int64),
		startTime:   time.Now(),
	}
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
