package lvm

import "fmt"

// StructuralError reports a report stream that violates the block structure:
// an allocation row outside any device block, or a row whose unit range is
// inverted. It aborts the parse of the report.
type StructuralError struct {
	Device string // empty when no device block is open yet
	Line   string
	Reason string
}

func (e *StructuralError) Error() string {
	msg := "structural error"
	if e.Device != "" {
		msg += " on " + e.Device
	}
	msg += ": " + e.Reason
	if e.Line != "" {
		msg += fmt.Sprintf(" (line %q)", e.Line)
	}
	return msg
}

// IntegrityError reports allocation data that is internally inconsistent:
// overlapping unit ranges, ranges beyond the device's extent count, or totals
// that do not reconcile with the device capacity.
type IntegrityError struct {
	Device string
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity error on %s: %s", e.Device, e.Reason)
}
