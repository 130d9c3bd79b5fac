package searcher

import "time"

// MoveMetrics describes the most recent FindBestMove call.
type MoveMetrics struct {
	StartTime time.Time
	Duration  time.Duration
	Nodes     int64
	Cutoffs   int64
	BestValue float64
}

// Collector accumulates statistics over one search.
type Collector interface {
	Start()
	AddNode()
	AddCutoff()
	Complete(bestValue float64) MoveMetrics
}

// metricsCollector counts every visited node and cutoff. The search runs on
// a single goroutine, so plain counters are enough.
type metricsCollector struct {
	startTime time.Time
	nodes     int64
	cutoffs   int64
}

func NewMetricsCollector() Collector {
	return &metricsCollector{}
}

func (c *metricsCollector) Start() {
	c.startTime = time.Now()
	c.nodes = 0
	c.cutoffs = 0
}

func (c *metricsCollector) AddNode() {
	c.nodes++
}

func (c *metricsCollector) AddCutoff() {
	c.cutoffs++
}

func (c *metricsCollector) Complete(bestValue float64) MoveMetrics {
	return MoveMetrics{
		StartTime: c.startTime,
		Duration:  time.Since(c.startTime),
		Nodes:     c.nodes,
		Cutoffs:   c.cutoffs,
		BestValue: bestValue,
	}
}

// noMetricsCollector keeps the hot path free of bookkeeping when metrics
// were not requested.
type noMetricsCollector struct{}

func NewNoMetricsCollector() Collector {
	return &noMetricsCollector{}
}

func (c *noMetricsCollector) Start()                       {}
func (c *noMetricsCollector) AddNode()                     {}
func (c *noMetricsCollector) AddCutoff()                   {}
func (c *noMetricsCollector) Complete(float64) MoveMetrics { return MoveMetrics{} }
