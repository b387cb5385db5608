// Package metrics provides in-memory runtime statistics collection.
package metrics

import (
	"math"
	"sync"
	"time"
)

// Operation names for the collector.
const (
	OpTurn        = "turn"
	OpLLMGenerate = "llm_generate"
	OpCalculation = "calculation"
)

// OperationMetrics holds aggregated timings for a single operation type.
type OperationMetrics struct {
	Count     int64
	Errors    int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count     int64   `json:"count"`
	Errors    int64   `json:"errors"`
	AvgTimeMs float64 `json:"avg_time_ms"`
	MinTimeMs int64   `json:"min_time_ms"`
	MaxTimeMs int64   `json:"max_time_ms"`
}

// Snapshot represents the full service statistics at a point in time.
type Snapshot struct {
	UptimeSeconds float64                      `json:"uptime_seconds"`
	Operations    map[string]OperationSnapshot `json:"operations"`
	ToolUsage     map[string]int64             `json:"tool_usage"`
}

// Collector aggregates in-memory runtime statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	ops       map[string]*OperationMetrics
	tools     map[string]int64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		ops:       make(map[string]*OperationMetrics),
		tools:     make(map[string]int64),
	}
}

// getOrCreate returns existing metrics or creates new ones for an operation.
// Caller must hold write lock.
func (c *Collector) getOrCreate(op string) *OperationMetrics {
	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.ops[op] = m
	}
	return m
}

// RecordTiming records a successful operation.
func (c *Collector) RecordTiming(op string, duration time.Duration) {
	c.record(op, duration, false)
}

// RecordError records a failed operation with its duration.
func (c *Collector) RecordError(op string, duration time.Duration) {
	c.record(op, duration, true)
}

func (c *Collector) record(op string, duration time.Duration, failed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(op)
	m.Count++
	m.TotalTime += duration
	if failed {
		m.Errors++
	}

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// RecordTool counts one use of a calculation tool.
func (c *Collector) RecordTool(kind string) {
	c.mu.Lock()
	c.tools[kind]++
	c.mu.Unlock()
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ops := make(map[string]OperationSnapshot, len(c.ops))
	for name, m := range c.ops {
		if m.Count == 0 {
			continue
		}
		ops[name] = OperationSnapshot{
			Count:     m.Count,
			Errors:    m.Errors,
			AvgTimeMs: float64(m.TotalTime.Milliseconds()) / float64(m.Count),
			MinTimeMs: m.MinTime.Milliseconds(),
			MaxTimeMs: m.MaxTime.Milliseconds(),
		}
	}

	tools := make(map[string]int64, len(c.tools))
	for k, v := range c.tools {
		tools[k] = v
	}

	return Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
		Operations:    ops,
		ToolUsage:     tools,
	}
}
