package chart

import "lvm-segments-visualizer/pkg/types"

// palette cycles over logical volumes in sorted name order
var palette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
	"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
	"#F8C471", "#82E0AA", "#F1948A", "#85C1E9", "#D7BDE2",
}

// freeColor is the light gray reserved for unallocated space
const freeColor = "#E8E8E8"

// assignColors maps each canonical volume name to a stable color. Names must
// already be sorted; free space always gets freeColor.
func assignColors(names []string) map[string]string {
	colors := make(map[string]string, len(names)+1)
	colors[types.FreeSpaceName] = freeColor
	idx := 0
	for _, name := range names {
		if name == types.FreeSpaceName {
			continue
		}
		colors[name] = palette[idx%len(palette)]
		idx++
	}
	return colors
}
