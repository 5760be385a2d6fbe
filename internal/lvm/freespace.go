package lvm

import (
	"fmt"
	"math"

	"lvm-segments-visualizer/pkg/types"
)

// SynthesizeFreeSpace computes the unit ranges not covered by any allocated
// segment and appends one free segment per maximal gap, including the gap
// before the first allocation and after the last. The volume is re-sorted
// defensively; overlapping ranges are an integrity error, not something to
// resolve quietly. On success the volume is finalized, so a second run (which
// would duplicate free segments) is rejected.
func SynthesizeFreeSpace(pv *types.PhysicalVolume) error {
	if pv.IsFinalized() {
		return &IntegrityError{Device: pv.Device, Reason: "free space already synthesized"}
	}

	pv.SortSegments()

	var free []types.Segment
	next := int64(0)
	for _, seg := range pv.Segments {
		if seg.StartUnit < next {
			return &IntegrityError{
				Device: pv.Device,
				Reason: fmt.Sprintf("allocated ranges overlap at unit %d (segment %d-%d owned by %s)",
					seg.StartUnit, seg.StartUnit, seg.EndUnit, seg.Owner.Name),
			}
		}
		if seg.EndUnit >= pv.ExtentCount {
			return &IntegrityError{
				Device: pv.Device,
				Reason: fmt.Sprintf("segment %d-%d exceeds extent count %d", seg.StartUnit, seg.EndUnit, pv.ExtentCount),
			}
		}
		if seg.StartUnit > next {
			free = append(free, freeSegment(pv, next, seg.StartUnit-1))
		}
		next = seg.EndUnit + 1
	}
	if next < pv.ExtentCount {
		free = append(free, freeSegment(pv, next, pv.ExtentCount-1))
	}

	for _, seg := range free {
		if err := pv.AppendSegment(seg); err != nil {
			return err
		}
	}
	pv.SortSegments()

	if err := reconcile(pv); err != nil {
		return err
	}

	pv.Finalize()
	return nil
}

func freeSegment(pv *types.PhysicalVolume, start, end int64) types.Segment {
	return types.Segment{
		StartUnit: start,
		EndUnit:   end,
		SizeMB:    float64(end-start+1) * pv.ExtentMB,
		Owner:     types.FreeOwner(),
	}
}

// reconcile checks that allocated plus free space adds up to the device
// capacity within tolerance.
func reconcile(pv *types.PhysicalVolume) error {
	var sum float64
	for _, seg := range pv.Segments {
		sum += seg.SizeMB
	}
	if pv.TotalMB > 0 && math.Abs(sum-pv.TotalMB) > CapacityToleranceMB(pv) {
		return &IntegrityError{
			Device: pv.Device,
			Reason: fmt.Sprintf("segments sum to %.2f MB, capacity is %.2f MB", sum, pv.TotalMB),
		}
	}
	return nil
}

// CapacityToleranceMB is the slack allowed between segment totals and the
// reported capacity. Reports round the capacity up to the raw device size,
// which can exceed the usable extents by a unit or two.
func CapacityToleranceMB(pv *types.PhysicalVolume) float64 {
	return math.Max(2*pv.ExtentMB, pv.TotalMB*0.001)
}
