package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"

	"lvm-segments-visualizer/internal/lvm"
	"lvm-segments-visualizer/pkg/types"
)

// Render writes the HTML visualization of a parse result: a stacked usage
// overview per physical volume followed by the positional segment layout.
func Render(w io.Writer, r *types.ParseResult) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("LVM Segments - %s", uuid.New().String())

	page.AddCharts(
		overviewChart(r),
		layoutChart(r),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering charts: %w", err)
	}
	return nil
}

// WriteFile renders the visualization to an HTML file
func WriteFile(path string, r *types.ParseResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := Render(f, r); err != nil {
		return err
	}
	return f.Close()
}

// overviewChart builds a stacked bar of megabytes per logical volume on each
// device, free space as the last series.
func overviewChart(r *types.ParseResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Physical Volume Usage",
			Subtitle: "Megabytes per logical volume, free space last",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "MB"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
	)

	devices := r.Devices()
	names := lvm.VolumeNames(r)
	colors := assignColors(names)
	usageByDevice := make(map[string]lvm.DeviceUsage, len(devices))
	for _, usage := range lvm.UsageTotals(r) {
		usageByDevice[usage.Device] = usage
	}

	bar.SetXAxis(devices)
	for _, name := range names {
		data := make([]opts.BarData, len(devices))
		for i, device := range devices {
			data[i] = opts.BarData{Value: usageByDevice[device].ByVolume[name]}
		}
		bar.AddSeries(name, data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "usage"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: colors[name]}),
		)
	}

	freeData := make([]opts.BarData, len(devices))
	for i, device := range devices {
		freeData[i] = opts.BarData{Value: usageByDevice[device].FreeMB}
	}
	bar.AddSeries("Free Space", freeData,
		charts.WithBarChartOpts(opts.BarChart{Stack: "usage"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: freeColor}),
	)

	return bar
}

// layoutChart builds a horizontal bar per device where each stacked slice is
// one extent segment in physical order, colored by its owning volume.
func layoutChart(r *types.ParseResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Segment Layout",
			Subtitle: "Physical extent order, left to right",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
	)

	devices := r.Devices()
	colors := assignColors(lvm.VolumeNames(r))

	segments := make(map[string][]types.Segment, len(devices))
	maxSegments := 0
	for _, pv := range r.Volumes() {
		segments[pv.Device] = pv.Segments
		if len(pv.Segments) > maxSegments {
			maxSegments = len(pv.Segments)
		}
	}

	bar.SetXAxis(devices)
	for si := 0; si < maxSegments; si++ {
		data := make([]opts.BarData, len(devices))
		for di, device := range devices {
			segs := segments[device]
			if si >= len(segs) {
				data[di] = opts.BarData{Value: 0}
				continue
			}
			seg := segs[si]
			data[di] = opts.BarData{
				Name:      seg.Owner.DisplayName(),
				Value:     seg.SizeMB,
				ItemStyle: &opts.ItemStyle{Color: colors[seg.Owner.Name]},
			}
		}
		bar.AddSeries(fmt.Sprintf("segment %d", si+1), data,
			charts.WithBarChartOpts(opts.BarChart{Stack: "layout"}),
		)
	}
	bar.XYReversal()

	return bar
}
