package collector

import (
	"log"
	"sync"
	"time"

	"lvm-segments-visualizer/internal/lvm"
	"lvm-segments-visualizer/internal/metrics"
	"lvm-segments-visualizer/pkg/types"
)

// Collector periodically re-reads the volume layout and publishes it as
// Prometheus metrics. The most recent parse result is kept for the HTTP
// handlers that render health and chart responses.
type Collector struct {
	metrics  *metrics.Metrics
	tool     *lvm.PVDisplayTool
	interval time.Duration

	mu        sync.RWMutex
	last      *types.ParseResult
	lastErr   error
	collected time.Time
}

// New creates a new collector
func New(m *metrics.Metrics, tool *lvm.PVDisplayTool, interval time.Duration) *Collector {
	return &Collector{
		metrics:  m,
		tool:     tool,
		interval: interval,
	}
}

// Start begins the collection loop. It blocks, so callers run it in a
// goroutine.
func (c *Collector) Start() {
	c.metrics.ExporterUp.Set(1)

	// Collect immediately on startup
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for range ticker.C {
		c.collect()
	}
}

// Last returns the most recent parse result, the time it was collected and
// the error of the most recent run. The result is nil until the first
// successful run; a stale result is kept when a later run fails.
func (c *Collector) Last() (*types.ParseResult, time.Time, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last, c.collected, c.lastErr
}

// collect runs pvdisplay, parses the report and updates all metrics
func (c *Collector) collect() {
	log.Println("Collecting LVM segment layout...")

	text, err := c.tool.Run()
	if err != nil {
		log.Printf("pvdisplay run failed: %v", err)
		c.store(nil, err)
		return
	}

	result, err := lvm.Parse(text)
	if err != nil {
		log.Printf("Report parse failed: %v", err)
		c.store(nil, err)
		return
	}

	c.updateMetrics(result)
	c.store(result, nil)

	log.Printf("Updated metrics for %d physical volumes", result.Len())
}

// store records the outcome of a collection run
func (c *Collector) store(result *types.ParseResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if result != nil || c.last == nil {
		c.last = result
	}
	c.lastErr = err
	c.collected = time.Now()
}

// updateMetrics publishes one parse result
func (c *Collector) updateMetrics(result *types.ParseResult) {
	c.metrics.Reset()

	for _, usage := range lvm.UsageTotals(result) {
		c.metrics.PVSizeMB.WithLabelValues(usage.Device, usage.Group).Set(usage.TotalMB)
		c.metrics.PVUsedMB.WithLabelValues(usage.Device, usage.Group).Set(usage.UsedMB)
		c.metrics.PVFreeMB.WithLabelValues(usage.Device, usage.Group).Set(usage.FreeMB)

		for name, allocatedMB := range usage.ByVolume {
			c.metrics.VolumeAllocatedMB.WithLabelValues(usage.Device, usage.Group, name).Set(allocatedMB)
		}
	}

	for _, pv := range result.Volumes() {
		c.metrics.PVSegments.WithLabelValues(pv.Device, pv.GroupName).Set(float64(len(pv.Segments)))
	}

	c.metrics.ParseSkippedLines.Set(float64(len(result.SkippedLines)))
}
