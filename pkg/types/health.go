package types

// HealthResponse is the /health/json payload
type HealthResponse struct {
	Status     string         `json:"status"`
	Service    string         `json:"service"`
	Version    string         `json:"version"`
	Timestamp  string         `json:"timestamp"`
	SystemInfo SystemStatus   `json:"system_info"`
	Summary    LayoutSummary  `json:"summary"`
	Volumes    []DeviceHealth `json:"physical_volumes"`
	LastError  string         `json:"last_error,omitempty"`
}

// SystemStatus describes the host the service runs on
type SystemStatus struct {
	Platform         string `json:"platform"`
	OS               string `json:"os"`
	PVDisplaySupport bool   `json:"pvdisplay_support"`
	PVDisplayVersion string `json:"pvdisplay_version,omitempty"`
}

// LayoutSummary aggregates the last parsed report
type LayoutSummary struct {
	PhysicalVolumes int     `json:"physical_volumes"`
	LogicalVolumes  int     `json:"logical_volumes"`
	TotalMB         float64 `json:"total_mb"`
	UsedMB          float64 `json:"used_mb"`
	FreeMB          float64 `json:"free_mb"`
	SkippedLines    int     `json:"skipped_lines"`
}

// DeviceHealth is the per-device slice of the health payload
type DeviceHealth struct {
	Device      string  `json:"device"`
	VolumeGroup string  `json:"volume_group"`
	TotalMB     float64 `json:"total_mb"`
	UsedMB      float64 `json:"used_mb"`
	FreeMB      float64 `json:"free_mb"`
	UsedPercent float64 `json:"used_percent"`
	Segments    int     `json:"segments"`
}
