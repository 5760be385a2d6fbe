package system

import (
	"log"
	"runtime"

	"lvm-segments-visualizer/internal/lvm"
)

// SystemInfo holds detected system information
type SystemInfo struct {
	OS               string
	Platform         Platform
	HasPVDisplay     bool
	PVDisplayVersion string
}

// Platform represents the detected platform type
type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformUnknown Platform = "unknown"
)

// CanInspectVolumes reports whether a live pvdisplay run can work here.
func (i *SystemInfo) CanInspectVolumes() bool {
	return i.Platform == PlatformLinux && i.HasPVDisplay
}

// Detector handles system detection
type Detector struct {
	info *SystemInfo
}

// New creates a new system detector
func New() *Detector {
	return &Detector{}
}

// Detect performs one-time system detection
func (d *Detector) Detect() *SystemInfo {
	if d.info != nil {
		return d.info
	}

	log.Println("Performing one-time system detection...")

	info := &SystemInfo{OS: runtime.GOOS}
	if info.OS == "linux" {
		info.Platform = PlatformLinux
	} else {
		info.Platform = PlatformUnknown
	}

	tool := lvm.NewPVDisplayTool("", false)
	info.HasPVDisplay = tool.IsAvailable()
	if info.HasPVDisplay {
		info.PVDisplayVersion = tool.GetVersion()
		log.Printf("Found pvdisplay: %s", info.PVDisplayVersion)
	} else {
		log.Println("pvdisplay not found; only report files can be analyzed")
	}

	d.info = info
	return info
}
