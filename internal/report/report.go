package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"

	"lvm-segments-visualizer/internal/lvm"
	"lvm-segments-visualizer/pkg/types"
)

// WriteSummary prints the text summary of a parse result: per-device usage
// with the logical volumes placed on it, then global totals.
func WriteSummary(w io.Writer, r *types.ParseResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, divider)
	fmt.Fprintln(w, "LVM CONFIGURATION SUMMARY")
	fmt.Fprintln(w, divider)

	var totalMB, usedMB, freeMB float64

	for _, usage := range lvm.UsageTotals(r) {
		fmt.Fprintf(w, "\n%s (VG: %s)\n", usage.Device, usage.Group)
		fmt.Fprintf(w, "   Total size:  %s\n", megabytes(usage.TotalMB))
		fmt.Fprintf(w, "   Used space:  %s\n", megabytes(usage.UsedMB))
		fmt.Fprintf(w, "   Free space:  %s\n", megabytes(usage.FreeMB))
		fmt.Fprintf(w, "   Usage:       %6.1f%%\n", usage.UsedPercent())

		if len(usage.ByVolume) > 0 {
			fmt.Fprintln(w, "   Logical Volumes:")
			names := make([]string, 0, len(usage.ByVolume))
			for name := range usage.ByVolume {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(w, "     - %-15s %s\n", name, megabytes(usage.ByVolume[name]))
			}
		}

		totalMB += usage.TotalMB
		usedMB += usage.UsedMB
		freeMB += usage.FreeMB
	}

	fmt.Fprintln(w, "\nGLOBAL TOTALS:")
	fmt.Fprintf(w, "   Total capacity: %s\n", megabytes(totalMB))
	fmt.Fprintf(w, "   Used space:     %s\n", megabytes(usedMB))
	fmt.Fprintf(w, "   Free space:     %s\n", megabytes(freeMB))
	if totalMB > 0 {
		fmt.Fprintf(w, "   Usage:          %6.1f%%\n", usedMB/totalMB*100)
	}

	if n := len(r.SkippedLines); n > 0 {
		fmt.Fprintf(w, "\n%d report line(s) were not recognized and were skipped.\n", n)
	}
}

const divider = "================================================================================"

// megabytes renders an MB value with its GB equivalent
func megabytes(mb float64) string {
	return fmt.Sprintf("%10s MB (%s GB)",
		humanize.CommafWithDigits(mb, 1),
		humanize.CommafWithDigits(mb/1024, 1))
}
