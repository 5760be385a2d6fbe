package health

import (
	"time"

	"lvm-segments-visualizer/internal/collector"
	"lvm-segments-visualizer/internal/lvm"
	"lvm-segments-visualizer/internal/system"
	"lvm-segments-visualizer/pkg/types"
)

const (
	serviceVersion = "1.0.0"
	serviceName    = "lvm-segments-visualizer"
)

// Service assembles the health payload from the collector's last run
type Service struct {
	collector *collector.Collector
	sysInfo   *system.SystemInfo
}

// New creates a new health service
func New(collector *collector.Collector, sysInfo *system.SystemInfo) *Service {
	return &Service{
		collector: collector,
		sysInfo:   sysInfo,
	}
}

// GetHealthData builds the current health information for the JSON response
func (s *Service) GetHealthData() *types.HealthResponse {
	result, _, lastErr := s.collector.Last()

	response := &types.HealthResponse{
		Status:    "ok",
		Service:   serviceName,
		Version:   serviceVersion,
		Timestamp: time.Now().Format(time.RFC3339),
		SystemInfo: types.SystemStatus{
			Platform:         string(s.sysInfo.Platform),
			OS:               s.sysInfo.OS,
			PVDisplaySupport: s.sysInfo.CanInspectVolumes(),
			PVDisplayVersion: s.sysInfo.PVDisplayVersion,
		},
	}

	if lastErr != nil {
		response.Status = "degraded"
		response.LastError = lastErr.Error()
	}
	if result == nil {
		return response
	}

	usages := lvm.UsageTotals(result)
	volumes := make([]types.DeviceHealth, len(usages))

	var summary types.LayoutSummary
	summary.PhysicalVolumes = result.Len()
	summary.LogicalVolumes = len(lvm.VolumeNames(result))
	summary.SkippedLines = len(result.SkippedLines)

	for i, usage := range usages {
		pv, _ := result.Volume(usage.Device)
		volumes[i] = types.DeviceHealth{
			Device:      usage.Device,
			VolumeGroup: usage.Group,
			TotalMB:     usage.TotalMB,
			UsedMB:      usage.UsedMB,
			FreeMB:      usage.FreeMB,
			UsedPercent: usage.UsedPercent(),
			Segments:    len(pv.Segments),
		}
		summary.TotalMB += usage.TotalMB
		summary.UsedMB += usage.UsedMB
		summary.FreeMB += usage.FreeMB
	}

	response.Summary = summary
	response.Volumes = volumes
	return response
}
