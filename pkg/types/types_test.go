package types

import "testing"

func TestOwnerDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		owner    Owner
		expected string
	}{
		{"plain volume", Owner{Name: "data"}, "data"},
		{"data component", Owner{Name: "vol", Role: RoleData, Instance: 0}, "vol [data#0]"},
		{"metadata component", Owner{Name: "vol", Role: RoleMetadata, Instance: 1}, "vol [metadata#1]"},
		{"free space", FreeOwner(), "FREE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.owner.DisplayName(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestOwnerIsFree(t *testing.T) {
	if !FreeOwner().IsFree() {
		t.Error("FreeOwner should be free")
	}
	if (Owner{Name: "data"}).IsFree() {
		t.Error("A named volume must not be free")
	}
}

func TestSegmentUnits(t *testing.T) {
	seg := Segment{StartUnit: 10, EndUnit: 19}
	if seg.Units() != 10 {
		t.Errorf("Expected 10 units, got %d", seg.Units())
	}

	single := Segment{StartUnit: 5, EndUnit: 5}
	if single.Units() != 1 {
		t.Errorf("A one-unit segment should count 1, got %d", single.Units())
	}
}

func TestAppendSegmentAfterFinalize(t *testing.T) {
	pv := &PhysicalVolume{Device: "/dev/sda1"}
	if err := pv.AppendSegment(Segment{StartUnit: 0, EndUnit: 9}); err != nil {
		t.Fatalf("Append before finalize failed: %v", err)
	}

	pv.Finalize()
	if !pv.IsFinalized() {
		t.Error("Volume should report finalized")
	}
	if err := pv.AppendSegment(Segment{StartUnit: 10, EndUnit: 19}); err == nil {
		t.Error("Append after finalize should fail")
	}
}

func TestParseResultDeviceOrder(t *testing.T) {
	r := NewParseResult()
	for _, d := range []string{"/dev/sdc1", "/dev/sda1", "/dev/sdb1"} {
		r.Add(&PhysicalVolume{Device: d})
	}

	devices := r.Devices()
	want := []string{"/dev/sda1", "/dev/sdb1", "/dev/sdc1"}
	for i, d := range want {
		if devices[i] != d {
			t.Errorf("Expected device %s at position %d, got %s", d, i, devices[i])
		}
	}

	volumes := r.Volumes()
	if len(volumes) != 3 || volumes[0].Device != "/dev/sda1" {
		t.Errorf("Volumes should follow device order, got %+v", volumes)
	}
	if _, ok := r.Volume("/dev/sdb1"); !ok {
		t.Error("Known device should be found")
	}
	if _, ok := r.Volume("/dev/sdz1"); ok {
		t.Error("Unknown device should not be found")
	}
}
