// cmd/detector/metrics.go
package main

import (
	"runtime"
	"sync"
	"time"
)

// Metrics holds process and application metrics
type Metrics struct {
	Timestamp      time.Time        `json:"timestamp"`
	MemoryUsageMB  float64          `json:"memory_usage_mb"`
	GoroutineCount int              `json:"goroutine_count"`
	UptimeSeconds  int64            `json:"uptime_seconds"`
	Counters       map[string]int64 `json:"counters"`
}

var (
	countersMutex sync.RWMutex
	counters      = make(map[string]int64)
	processStart  = time.Now()
)

// IncrementCounter bumps a named application counter
func IncrementCounter(name string) {
	AddCounter(name, 1)
}

// AddCounter adds delta to a named application counter
func AddCounter(name string, delta int64) {
	countersMutex.Lock()
	counters[name] += delta
	countersMutex.Unlock()
}

// CounterValue returns the current value of a named counter
func CounterValue(name string) int64 {
	countersMutex.RLock()
	defer countersMutex.RUnlock()
	return counters[name]
}

// counterSnapshot returns a copy of all counters
func counterSnapshot() map[string]int64 {
	countersMutex.RLock()
	defer countersMutex.RUnlock()

	out := make(map[string]int64, len(counters))
	for name, value := range counters {
		out[name] = value
	}
	return out
}

// collectMetrics gathers process and application metrics
func collectMetrics() *Metrics {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &Metrics{
		Timestamp:      time.Now(),
		MemoryUsageMB:  float64(memStats.Alloc) / 1024 / 1024,
		GoroutineCount: runtime.NumGoroutine(),
		UptimeSeconds:  int64(time.Since(processStart).Seconds()),
		Counters:       counterSnapshot(),
	}
}
