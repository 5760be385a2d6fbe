package types

import (
	"fmt"
	"sort"
)

// FreeSpaceName is the sentinel owner name for unallocated extents. Free
// segments are always synthesized from allocation gaps, never taken from the
// report text.
const FreeSpaceName = "FREE"

// ComponentRole tags a segment owner that is one component of a mirrored or
// RAID logical volume.
type ComponentRole string

const (
	RoleNone     ComponentRole = ""
	RoleData     ComponentRole = "data"
	RoleMetadata ComponentRole = "metadata"
)

// Owner identifies who occupies a segment: a logical volume (possibly a RAID
// component of one) or the free-space sentinel.
type Owner struct {
	// Name is the logical volume name. After RAID component resolution it is
	// the canonical name shared by all components of the same volume.
	Name string `json:"name"`
	// Role and Instance describe the component (data vs metadata replica and
	// its index). They are display metadata only, never part of the identity.
	Role     ComponentRole `json:"role,omitempty"`
	Instance int           `json:"instance,omitempty"`
}

// FreeOwner returns the sentinel owner for synthesized free segments.
func FreeOwner() Owner {
	return Owner{Name: FreeSpaceName}
}

// IsFree reports whether the owner is the free-space sentinel.
func (o Owner) IsFree() bool {
	return o.Name == FreeSpaceName
}

// DisplayName returns the owner name with its component role attached, e.g.
// "data [data#0]" for a RAID image. Plain volumes and free space return the
// bare name.
func (o Owner) DisplayName() string {
	if o.Role == RoleNone {
		return o.Name
	}
	return fmt.Sprintf("%s [%s#%d]", o.Name, o.Role, o.Instance)
}

// Segment is a contiguous run of extent units on one physical volume with a
// single owner. StartUnit and EndUnit are inclusive.
type Segment struct {
	StartUnit int64   `json:"start_unit"`
	EndUnit   int64   `json:"end_unit"`
	SizeMB    float64 `json:"size_mb"`
	Owner     Owner   `json:"owner"`
}

// Units returns the number of extent units the segment covers.
func (s Segment) Units() int64 {
	return s.EndUnit - s.StartUnit + 1
}

// PhysicalVolume is one storage device participating in the allocation
// scheme, with its ordered, non-overlapping segments.
type PhysicalVolume struct {
	Device      string    `json:"device"`
	GroupName   string    `json:"group_name"`
	TotalMB     float64   `json:"total_mb"`
	ExtentMB    float64   `json:"extent_mb"`
	ExtentCount int64     `json:"extent_count"`
	Segments    []Segment `json:"segments"`

	finalized bool
}

// AppendSegment adds a segment to the volume. Once the volume is finalized
// (free space synthesized) further appends are rejected.
func (pv *PhysicalVolume) AppendSegment(seg Segment) error {
	if pv.finalized {
		return fmt.Errorf("physical volume %s is finalized", pv.Device)
	}
	pv.Segments = append(pv.Segments, seg)
	return nil
}

// SortSegments orders segments by start unit.
func (pv *PhysicalVolume) SortSegments() {
	sort.Slice(pv.Segments, func(i, j int) bool {
		return pv.Segments[i].StartUnit < pv.Segments[j].StartUnit
	})
}

// Finalize marks the volume complete. After this the segment list is
// immutable.
func (pv *PhysicalVolume) Finalize() {
	pv.finalized = true
}

// IsFinalized reports whether free-space synthesis already ran on the volume.
func (pv *PhysicalVolume) IsFinalized() bool {
	return pv.finalized
}

// ParseResult maps device paths to their parsed physical volumes. Device
// iteration order is byte-wise alphabetical by path, which is the display
// order every consumer relies on.
type ParseResult struct {
	volumes map[string]*PhysicalVolume

	// SkippedLines collects report lines no classifier rule recognized.
	// They never abort a parse but are surfaced to the operator.
	SkippedLines []string `json:"skipped_lines,omitempty"`
}

// NewParseResult creates an empty parse result.
func NewParseResult() *ParseResult {
	return &ParseResult{volumes: make(map[string]*PhysicalVolume)}
}

// Add registers a physical volume under its device path.
func (r *ParseResult) Add(pv *PhysicalVolume) {
	r.volumes[pv.Device] = pv
}

// Volume returns the physical volume for a device path.
func (r *ParseResult) Volume(device string) (*PhysicalVolume, bool) {
	pv, ok := r.volumes[device]
	return pv, ok
}

// Devices returns all device paths in byte-wise alphabetical order.
func (r *ParseResult) Devices() []string {
	devices := make([]string, 0, len(r.volumes))
	for d := range r.volumes {
		devices = append(devices, d)
	}
	sort.Strings(devices)
	return devices
}

// Volumes returns the physical volumes in device order.
func (r *ParseResult) Volumes() []*PhysicalVolume {
	devices := r.Devices()
	pvs := make([]*PhysicalVolume, len(devices))
	for i, d := range devices {
		pvs[i] = r.volumes[d]
	}
	return pvs
}

// Len returns the number of physical volumes.
func (r *ParseResult) Len() int {
	return len(r.volumes)
}
