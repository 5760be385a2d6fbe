package lvm

import (
	"sort"

	"lvm-segments-visualizer/pkg/types"
)

// DeviceUsage is the per-device projection of a parse result: how much of the
// device each logical volume occupies and how much is free.
type DeviceUsage struct {
	Device   string
	Group    string
	TotalMB  float64
	UsedMB   float64
	FreeMB   float64
	ByVolume map[string]float64 // canonical volume name -> MB on this device
}

// UsedPercent returns the used share of the device capacity.
func (u DeviceUsage) UsedPercent() float64 {
	if u.TotalMB <= 0 {
		return 0
	}
	return u.UsedMB / u.TotalMB * 100
}

// DeviceSegment pairs a segment with the device it lives on, for linear
// layout consumers.
type DeviceSegment struct {
	Device  string
	Segment types.Segment
}

// UsageTotals computes per-device usage in device order. Pure function of the
// result; recomputed on every call.
func UsageTotals(r *types.ParseResult) []DeviceUsage {
	usages := make([]DeviceUsage, 0, r.Len())
	for _, pv := range r.Volumes() {
		u := DeviceUsage{
			Device:   pv.Device,
			Group:    pv.GroupName,
			TotalMB:  pv.TotalMB,
			ByVolume: make(map[string]float64),
		}
		for _, seg := range pv.Segments {
			if seg.Owner.IsFree() {
				u.FreeMB += seg.SizeMB
				continue
			}
			u.UsedMB += seg.SizeMB
			u.ByVolume[seg.Owner.Name] += seg.SizeMB
		}
		usages = append(usages, u)
	}
	return usages
}

// VolumeTotals sums allocated megabytes per canonical volume name across all
// devices. RAID data and metadata components of the same volume count
// together.
func VolumeTotals(r *types.ParseResult) map[string]float64 {
	totals := make(map[string]float64)
	for _, pv := range r.Volumes() {
		for _, seg := range pv.Segments {
			if seg.Owner.IsFree() {
				continue
			}
			totals[seg.Owner.Name] += seg.SizeMB
		}
	}
	return totals
}

// VolumeNames returns the canonical volume names appearing anywhere in the
// result, sorted, free space excluded.
func VolumeNames(r *types.ParseResult) []string {
	seen := make(map[string]bool)
	for _, pv := range r.Volumes() {
		for _, seg := range pv.Segments {
			if !seg.Owner.IsFree() {
				seen[seg.Owner.Name] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FlattenSegments returns every (device, segment) pair ordered by device path
// and then by start offset, the order linear layout consumers draw in.
func FlattenSegments(r *types.ParseResult) []DeviceSegment {
	var flat []DeviceSegment
	for _, pv := range r.Volumes() {
		for _, seg := range pv.Segments {
			flat = append(flat, DeviceSegment{Device: pv.Device, Segment: seg})
		}
	}
	return flat
}
