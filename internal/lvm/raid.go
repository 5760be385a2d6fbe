package lvm

import (
	"regexp"
	"strconv"

	"lvm-segments-visualizer/pkg/types"
)

// LVM names RAID and mirror components by suffixing the volume name with a
// role marker and an instance index: "vol_rimage_0" and "vol_rmeta_0" for
// raid1, "vol_mimage_0" and "vol_mlog" for the older mirror target.
var (
	reRaidComponent = regexp.MustCompile(`^(.+?)_[rm](image|meta)_([0-9]+)$`)
	reMirrorLog     = regexp.MustCompile(`^(.+?)_mlog$`)
)

// ResolveRaidComponents rewrites every segment owner on a volume from its raw
// component name into a (canonical name, role) pair. Segment boundaries and
// device membership are untouched: components fragmented across devices or
// positions stay distinct segments and only share a display identity.
//
// The transform is idempotent; owners that already carry a role, free-space
// sentinels, and names outside the component convention pass through.
func ResolveRaidComponents(pv *types.PhysicalVolume) {
	for i := range pv.Segments {
		pv.Segments[i].Owner = resolveOwner(pv.Segments[i].Owner)
	}
}

func resolveOwner(o types.Owner) types.Owner {
	if o.Role != types.RoleNone || o.IsFree() {
		return o
	}

	if m := reRaidComponent.FindStringSubmatch(o.Name); m != nil {
		resolved := types.Owner{Name: m[1]}
		if m[2] == "image" {
			resolved.Role = types.RoleData
		} else {
			resolved.Role = types.RoleMetadata
		}
		resolved.Instance, _ = strconv.Atoi(m[3])
		return resolved
	}

	if m := reMirrorLog.FindStringSubmatch(o.Name); m != nil {
		return types.Owner{Name: m[1], Role: types.RoleMetadata}
	}

	return o
}
