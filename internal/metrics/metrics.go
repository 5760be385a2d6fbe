package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	PVSizeMB          *prometheus.GaugeVec
	PVUsedMB          *prometheus.GaugeVec
	PVFreeMB          *prometheus.GaugeVec
	PVSegments        *prometheus.GaugeVec
	VolumeAllocatedMB *prometheus.GaugeVec
	ParseSkippedLines prometheus.Gauge
	ExporterUp        prometheus.Gauge
}

// New creates and registers all metrics
func New() *Metrics {
	m := &Metrics{
		PVSizeMB: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lvm_pv_size_megabytes",
				Help: "Total capacity of the physical volume in megabytes",
			},
			[]string{"device", "vg"},
		),
		PVUsedMB: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lvm_pv_used_megabytes",
				Help: "Allocated capacity of the physical volume in megabytes",
			},
			[]string{"device", "vg"},
		),
		PVFreeMB: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lvm_pv_free_megabytes",
				Help: "Unallocated capacity of the physical volume in megabytes",
			},
			[]string{"device", "vg"},
		),
		PVSegments: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lvm_pv_segments",
				Help: "Number of extent segments on the physical volume, free space included",
			},
			[]string{"device", "vg"},
		),
		VolumeAllocatedMB: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lvm_lv_allocated_megabytes",
				Help: "Megabytes allocated to the logical volume on the physical volume",
			},
			[]string{"device", "vg", "lv"},
		),
		ParseSkippedLines: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "lvm_report_skipped_lines",
				Help: "Unrecognized lines in the last pvdisplay report",
			},
		),
		ExporterUp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "lvm_segments_exporter_up",
				Help: "Whether the LVM segments exporter is up and running",
			},
		),
	}

	// Register all metrics
	prometheus.MustRegister(
		m.PVSizeMB,
		m.PVUsedMB,
		m.PVFreeMB,
		m.PVSegments,
		m.VolumeAllocatedMB,
		m.ParseSkippedLines,
		m.ExporterUp,
	)

	return m
}

// Reset clears all metrics
func (m *Metrics) Reset() {
	m.PVSizeMB.Reset()
	m.PVUsedMB.Reset()
	m.PVFreeMB.Reset()
	m.PVSegments.Reset()
	m.VolumeAllocatedMB.Reset()
}
