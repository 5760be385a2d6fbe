package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"lvm-segments-visualizer/internal/lvm"
	"lvm-segments-visualizer/pkg/types"
)

// Document is the machine-readable form of a parse result
type Document struct {
	ReportID        string         `json:"report_id"`
	GeneratedAt     string         `json:"generated_at"`
	PhysicalVolumes []DeviceReport `json:"physical_volumes"`
	LogicalVolumes  []VolumeReport `json:"logical_volumes"`
	Totals          TotalsReport   `json:"totals"`
	SkippedLines    []string       `json:"skipped_lines,omitempty"`
}

// DeviceReport is one physical volume with its full segment map
type DeviceReport struct {
	Device      string          `json:"device"`
	VolumeGroup string          `json:"volume_group"`
	TotalMB     float64         `json:"total_mb"`
	ExtentMB    float64         `json:"extent_mb"`
	ExtentCount int64           `json:"extent_count"`
	UsedMB      float64         `json:"used_mb"`
	FreeMB      float64         `json:"free_mb"`
	Segments    []SegmentReport `json:"segments"`
}

// SegmentReport is one extent run on a device
type SegmentReport struct {
	StartExtent int64   `json:"start_extent"`
	EndExtent   int64   `json:"end_extent"`
	SizeMB      float64 `json:"size_mb"`
	Owner       string  `json:"owner"`
	Role        string  `json:"role,omitempty"`
	Instance    int     `json:"instance,omitempty"`
	Free        bool    `json:"free,omitempty"`
}

// VolumeReport is the cross-device total for one logical volume
type VolumeReport struct {
	Name        string  `json:"name"`
	AllocatedMB float64 `json:"allocated_mb"`
}

// TotalsReport aggregates the whole report
type TotalsReport struct {
	TotalMB float64 `json:"total_mb"`
	UsedMB  float64 `json:"used_mb"`
	FreeMB  float64 `json:"free_mb"`
}

// Build converts a parse result into a Document
func Build(r *types.ParseResult) *Document {
	doc := &Document{
		ReportID:     uuid.New().String(),
		GeneratedAt:  time.Now().Format(time.RFC3339),
		SkippedLines: r.SkippedLines,
	}

	for _, usage := range lvm.UsageTotals(r) {
		pv, _ := r.Volume(usage.Device)
		dr := DeviceReport{
			Device:      pv.Device,
			VolumeGroup: pv.GroupName,
			TotalMB:     pv.TotalMB,
			ExtentMB:    pv.ExtentMB,
			ExtentCount: pv.ExtentCount,
			UsedMB:      usage.UsedMB,
			FreeMB:      usage.FreeMB,
			Segments:    make([]SegmentReport, 0, len(pv.Segments)),
		}
		for _, seg := range pv.Segments {
			sr := SegmentReport{
				StartExtent: seg.StartUnit,
				EndExtent:   seg.EndUnit,
				SizeMB:      seg.SizeMB,
				Owner:       seg.Owner.Name,
				Free:        seg.Owner.IsFree(),
			}
			switch seg.Owner.Role {
			case types.RoleData:
				sr.Role = "data"
				sr.Instance = seg.Owner.Instance
			case types.RoleMetadata:
				sr.Role = "metadata"
				sr.Instance = seg.Owner.Instance
			}
			dr.Segments = append(dr.Segments, sr)
		}
		doc.PhysicalVolumes = append(doc.PhysicalVolumes, dr)

		doc.Totals.TotalMB += usage.TotalMB
		doc.Totals.UsedMB += usage.UsedMB
		doc.Totals.FreeMB += usage.FreeMB
	}

	volumeTotals := lvm.VolumeTotals(r)
	for _, name := range lvm.VolumeNames(r) {
		doc.LogicalVolumes = append(doc.LogicalVolumes, VolumeReport{
			Name:        name,
			AllocatedMB: volumeTotals[name],
		})
	}

	return doc
}

// WriteJSON writes the indented JSON document for a parse result
func WriteJSON(w io.Writer, r *types.ParseResult) error {
	data, err := json.MarshalIndent(Build(r), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
