package lvm

import (
	"testing"

	"lvm-segments-visualizer/pkg/types"
)

func TestResolveOwner(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		role     types.ComponentRole
		instance int
	}{
		{"raid data image", "vol-a_rimage_0", "vol-a", types.RoleData, 0},
		{"raid metadata", "vol-a_rmeta_0", "vol-a", types.RoleMetadata, 0},
		{"second image", "root_rimage_1", "root", types.RoleData, 1},
		{"mirror image", "home_mimage_2", "home", types.RoleData, 2},
		{"mirror log", "home_mlog", "home", types.RoleMetadata, 0},
		{"plain volume", "data", "data", types.RoleNone, 0},
		{"underscore but no role", "my_volume", "my_volume", types.RoleNone, 0},
		{"image without instance", "vol_rimage", "vol_rimage", types.RoleNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOwner(types.Owner{Name: tt.raw})
			if got.Name != tt.want {
				t.Errorf("Expected canonical name %s, got %s", tt.want, got.Name)
			}
			if got.Role != tt.role {
				t.Errorf("Expected role %q, got %q", tt.role, got.Role)
			}
			if got.Instance != tt.instance {
				t.Errorf("Expected instance %d, got %d", tt.instance, got.Instance)
			}
		})
	}
}

func TestResolveRaidComponentsIsIdempotent(t *testing.T) {
	pv := &types.PhysicalVolume{
		Device:      "/dev/sdb1",
		ExtentMB:    4,
		ExtentCount: 100,
		Segments: []types.Segment{
			{StartUnit: 0, EndUnit: 9, Owner: types.Owner{Name: "vol-a_rimage_0"}},
			{StartUnit: 10, EndUnit: 10, Owner: types.Owner{Name: "vol-a_rmeta_0"}},
			{StartUnit: 11, EndUnit: 20, Owner: types.Owner{Name: "plain"}},
		},
	}

	ResolveRaidComponents(pv)
	first := make([]types.Owner, len(pv.Segments))
	for i, seg := range pv.Segments {
		first[i] = seg.Owner
	}

	ResolveRaidComponents(pv)
	for i, seg := range pv.Segments {
		if seg.Owner != first[i] {
			t.Errorf("Segment %d: second resolution changed owner from %+v to %+v", i, first[i], seg.Owner)
		}
	}
}

func TestResolveRaidComponentsKeepsSegmentsDistinct(t *testing.T) {
	pv := &types.PhysicalVolume{
		Device:      "/dev/sdb1",
		ExtentMB:    4,
		ExtentCount: 100,
		Segments: []types.Segment{
			{StartUnit: 0, EndUnit: 9, SizeMB: 40, Owner: types.Owner{Name: "vol-a_rimage_0"}},
			{StartUnit: 10, EndUnit: 10, SizeMB: 4, Owner: types.Owner{Name: "vol-a_rmeta_0"}},
		},
	}

	ResolveRaidComponents(pv)

	if len(pv.Segments) != 2 {
		t.Fatalf("Resolution must never merge segments, got %d", len(pv.Segments))
	}
	if pv.Segments[0].Owner.Name != "vol-a" || pv.Segments[1].Owner.Name != "vol-a" {
		t.Errorf("Both components should share canonical name vol-a, got %s and %s",
			pv.Segments[0].Owner.Name, pv.Segments[1].Owner.Name)
	}
	if pv.Segments[0].Owner.Role == pv.Segments[1].Owner.Role {
		t.Error("Data and metadata components should keep distinct roles")
	}
	if pv.Segments[0].StartUnit != 0 || pv.Segments[1].StartUnit != 10 {
		t.Error("Resolution must not alter segment boundaries")
	}
}
