package utils

import (
	"sync"
	"time"
)

// Tracks request metrics across the API
type MetricsCollector struct {
	mu           sync.RWMutex
	requestCount uint64
	errorCount   uint64

	// Maps operation name (route) to its accumulated latency
	operationTimes map[string]*operationLatency

	systemStartTime time.Time
}

type operationLatency struct {
	count int64
	total time.Duration
}

// OperationStats is the per-operation view returned by Snapshot.
type OperationStats struct {
	Count          int64   `json:"count"`
	AverageLatency float64 `json:"averageLatencyMs"`
}

// MetricsSnapshot is a point-in-time copy of the collector.
type MetricsSnapshot struct {
	Uptime       string                    `json:"uptime"`
	RequestCount uint64                    `json:"requestCount"`
	ErrorCount   uint64                    `json:"errorCount"`
	Operations   map[string]OperationStats `json:"operations"`
}

func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		operationTimes:  make(map[string]*operationLatency),
		systemStartTime: time.Now(),
	}
}

func (mc *MetricsCollector) IncrementRequests() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.requestCount++
}

func (mc *MetricsCollector) IncrementErrors() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.errorCount++
}

func (mc *MetricsCollector) AddOperationLatency(operationName string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	op, exists := mc.operationTimes[operationName]
	if !exists {
		op = &operationLatency{}
		mc.operationTimes[operationName] = op
	}
	op.count++
	op.total += duration
}

func (mc *MetricsCollector) Snapshot() MetricsSnapshot {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	ops := make(map[string]OperationStats, len(mc.operationTimes))
	for name, op := range mc.operationTimes {
		stats := OperationStats{Count: op.count}
		if op.count > 0 {
			avg := op.total / time.Duration(op.count)
			stats.AverageLatency = float64(avg) / float64(time.Millisecond)
		}
		ops[name] = stats
	}

	return MetricsSnapshot{
		Uptime:       time.Since(mc.systemStartTime).Round(time.Second).String(),
		RequestCount: mc.requestCount,
		ErrorCount:   mc.errorCount,
		Operations:   ops,
	}
}
