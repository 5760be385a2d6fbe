package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lvm-segments-visualizer/internal/lvm"
	"lvm-segments-visualizer/pkg/types"
)

const sampleReport = `  --- Physical volume ---
  PV Name               /dev/sda1
  VG Name               vgdata
  PV Size               1000.00 MiB
  PE Size               4.00 MiB
  Total PE              250

  --- Physical Segments ---
  Physical extent 0 to 9:
    Logical volume	/dev/vgdata/data
    Logical extents	0 to 9
  Physical extent 10 to 19:
    Logical volume	/dev/vgdata/logs
    Logical extents	0 to 9
`

func TestRenderContainsChartData(t *testing.T) {
	result, err := lvm.Parse(sampleReport)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, result); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"/dev/sda1",
		"data",
		"logs",
		"Free Space",
		"Physical Volume Usage",
		"Segment Layout",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Rendered page missing %q", want)
		}
	}
}

func TestAssignColors(t *testing.T) {
	colors := assignColors([]string{"alpha", "beta"})

	if colors[types.FreeSpaceName] != freeColor {
		t.Errorf("Free space should be %s, got %s", freeColor, colors[types.FreeSpaceName])
	}
	if colors["alpha"] != palette[0] {
		t.Errorf("First volume should get the first palette color, got %s", colors["alpha"])
	}
	if colors["beta"] != palette[1] {
		t.Errorf("Second volume should get the second palette color, got %s", colors["beta"])
	}
	if colors["alpha"] == colors["beta"] {
		t.Error("Adjacent volumes must not share a color")
	}
}

func TestAssignColorsCyclesPalette(t *testing.T) {
	names := make([]string, len(palette)+1)
	for i := range names {
		names[i] = strings.Repeat("v", i+1)
	}

	colors := assignColors(names)
	if colors[names[len(palette)]] != palette[0] {
		t.Errorf("Palette should wrap around, got %s", colors[names[len(palette)]])
	}
}

func TestWriteFile(t *testing.T) {
	result, err := lvm.Parse(sampleReport)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "layout.html")
	if err := WriteFile(path, result); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading chart file failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected non-empty chart file")
	}
}
