package lvm

import (
	"fmt"
	"log"
	"math"

	"lvm-segments-visualizer/pkg/types"
)

// Parse runs the full pipeline over one report text: classify lines, build
// per-device records, resolve RAID component names, synthesize free space.
// The returned result is finalized and safe to share between consumers.
func Parse(text string) (*types.ParseResult, error) {
	result, err := BuildRecords(text)
	if err != nil {
		return nil, err
	}

	for _, pv := range result.Volumes() {
		ResolveRaidComponents(pv)
		if err := SynthesizeFreeSpace(pv); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// builder carries the device block currently being assembled. It replaces the
// implicit "current device" cursor with explicit state that is finalized both
// on the next header and at stream end, so the last device is never dropped.
type builder struct {
	result  *types.ParseResult
	current *types.PhysicalVolume
	rows    []Record
}

// BuildRecords consumes the classified line stream and produces one
// PhysicalVolume per device block, with allocated segments only. Owner names
// are taken verbatim from the rows; RAID resolution and free-space synthesis
// are separate passes.
func BuildRecords(text string) (*types.ParseResult, error) {
	c := NewClassifier(text)
	b := &builder{result: types.NewParseResult()}

	for {
		rec, ok := c.Next()
		if !ok {
			break
		}

		switch rec.Kind {
		case KindDeviceHeader:
			if err := b.finishDevice(); err != nil {
				return nil, err
			}
			b.current = &types.PhysicalVolume{Device: rec.Device, GroupName: rec.Group}

		case KindCapacity:
			if b.requireDevice(rec) {
				b.current.TotalMB = rec.SizeMB
			}

		case KindExtentUnit:
			if b.requireDevice(rec) {
				b.current.ExtentMB = rec.UnitMB
			}

		case KindExtentCount:
			if b.requireDevice(rec) {
				b.current.ExtentCount = rec.Extents
			}

		case KindAllocation:
			if b.current == nil {
				return nil, &StructuralError{Line: rec.Line, Reason: "allocation row before any device header"}
			}
			if rec.StartUnit > rec.EndUnit {
				return nil, &StructuralError{
					Device: b.current.Device,
					Line:   rec.Line,
					Reason: fmt.Sprintf("allocation row start %d > end %d", rec.StartUnit, rec.EndUnit),
				}
			}
			if rec.OwnerName == types.FreeSpaceName {
				// Free space is synthesized from allocation gaps, never
				// taken from the report.
				continue
			}
			b.rows = append(b.rows, rec)

		case KindNoise:
			// recognized, nothing to keep

		case KindUnrecognized:
			b.skip(rec, "")
		}
	}

	if err := b.finishDevice(); err != nil {
		return nil, err
	}
	return b.result, nil
}

// requireDevice reports whether a device block is open. A recognized field
// outside any block is counted as skipped rather than dropped silently.
func (b *builder) requireDevice(rec Record) bool {
	if b.current == nil {
		b.skip(rec, " (outside device block)")
		return false
	}
	return true
}

func (b *builder) skip(rec Record, note string) {
	b.result.SkippedLines = append(b.result.SkippedLines,
		fmt.Sprintf("line %d: %s%s", rec.LineNo, rec.Line, note))
}

// finishDevice converts the accumulated allocation rows into segments and
// registers the volume. Called on every new device header and once more at
// stream end.
func (b *builder) finishDevice() error {
	if b.current == nil {
		return nil
	}
	pv := b.current
	b.current = nil
	rows := b.rows
	b.rows = nil

	if pv.ExtentMB <= 0 {
		return &StructuralError{Device: pv.Device, Reason: "missing or zero extent unit size"}
	}
	if pv.ExtentCount == 0 {
		pv.ExtentCount = int64(math.Round(pv.TotalMB / pv.ExtentMB))
	}

	for _, row := range rows {
		seg := types.Segment{
			StartUnit: row.StartUnit,
			EndUnit:   row.EndUnit,
			Owner:     types.Owner{Name: row.OwnerName},
		}
		seg.SizeMB = float64(seg.Units()) * pv.ExtentMB

		// A row-reported size that disagrees with the derived one marks the
		// record suspect, not invalid.
		if row.RowSizeMB > 0 && math.Abs(row.RowSizeMB-seg.SizeMB) > rowSizeToleranceMB(pv) {
			log.Printf("Suspect allocation row on %s: reported %.2f MB, derived %.2f MB (units %d-%d)",
				pv.Device, row.RowSizeMB, seg.SizeMB, seg.StartUnit, seg.EndUnit)
		}

		if err := pv.AppendSegment(seg); err != nil {
			return err
		}
	}

	pv.SortSegments()
	b.result.Add(pv)
	return nil
}

// rowSizeToleranceMB absorbs the rounding slack of one allocation row.
func rowSizeToleranceMB(pv *types.PhysicalVolume) float64 {
	return pv.ExtentMB/2 + 0.5
}
