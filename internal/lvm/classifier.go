package lvm

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"lvm-segments-visualizer/pkg/types"
)

// RecordKind is the classification of one report record.
type RecordKind int

const (
	// KindDeviceHeader opens a new physical volume block.
	KindDeviceHeader RecordKind = iota
	// KindCapacity carries the device's total size in megabytes.
	KindCapacity
	// KindExtentUnit carries the size of one allocation unit in megabytes.
	KindExtentUnit
	// KindExtentCount carries the device's total extent count. pvdisplay
	// reserves a tail of the device as "not usable", so this counter beats
	// deriving the count from capacity / unit size.
	KindExtentCount
	// KindAllocation is one allocation row: a unit range plus its owner.
	KindAllocation
	// KindNoise is a recognized line that carries nothing the model needs
	// (block separators, UUIDs, allocatable flags, blank lines).
	KindNoise
	// KindUnrecognized is a line no rule matched. Skipped and counted,
	// never fatal.
	KindUnrecognized
)

// Record is the typed result of classifying one report record. A record
// usually spans one line; device headers and allocation rows also consume the
// continuation lines that belong to them.
type Record struct {
	Kind   RecordKind
	Line   string // leading line, trimmed, for diagnostics
	LineNo int    // 1-based

	// KindDeviceHeader
	Device string
	Group  string

	// KindCapacity / KindExtentUnit / KindExtentCount
	SizeMB  float64
	UnitMB  float64
	Extents int64

	// KindAllocation
	StartUnit int64
	EndUnit   int64
	OwnerName string
	RowSizeMB float64 // 0 when the row carries no size annotation
}

var (
	reDeviceHeader = regexp.MustCompile(`^PV Name\s+(\S+)`)
	reGroupName    = regexp.MustCompile(`^VG Name\s+(\S+)`)
	reCapacity     = regexp.MustCompile(`^PV Size\s+([0-9]+(?:\.[0-9]+)?)`)
	reExtentUnit   = regexp.MustCompile(`^PE Size\s+([0-9]+(?:\.[0-9]+)?)`)
	reExtentCount  = regexp.MustCompile(`^Total PE\s+([0-9]+)`)
	reAllocation   = regexp.MustCompile(`^Physical extent\s+([0-9]+)\s+to\s+([0-9]+)`)

	reOwnerVolume = regexp.MustCompile(`^Logical volume\s+(\S+)(?:\s+\(([0-9]+(?:\.[0-9]+)?)\s*Mi?B\))?`)
	reOwnerExtent = regexp.MustCompile(`^Logical extents\s+[0-9]+\s+to\s+[0-9]+`)

	// Recognized structure that carries nothing the model needs. Matching
	// these keeps the unrecognized count meaningful on real reports.
	noisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^---`),
		regexp.MustCompile(`^Allocatable\b`),
		regexp.MustCompile(`^PV UUID\b`),
		regexp.MustCompile(`^Free PE\b`),
		regexp.MustCompile(`^Allocated PE\b`),
		regexp.MustCompile(`^Cur LV\b`),
	}
)

// Classifier walks report text and yields one typed Record per call. Rules
// are evaluated in priority order against the leading line; a matching rule
// may consume the continuation lines that belong to it.
type Classifier struct {
	lines []string
	pos   int
}

// NewClassifier creates a classifier over a fully materialized report text.
func NewClassifier(text string) *Classifier {
	return &Classifier{lines: strings.Split(text, "\n")}
}

// Next returns the next classified record. The second return value is false
// once the text is exhausted.
func (c *Classifier) Next() (Record, bool) {
	if c.pos >= len(c.lines) {
		return Record{}, false
	}

	lineNo := c.pos + 1
	line := strings.TrimSpace(c.lines[c.pos])
	c.pos++

	rec := c.classify(line)
	rec.Line = line
	rec.LineNo = lineNo
	return rec, true
}

func (c *Classifier) classify(line string) Record {
	if line == "" {
		return Record{Kind: KindNoise}
	}

	if m := reDeviceHeader.FindStringSubmatch(line); m != nil {
		rec := Record{Kind: KindDeviceHeader, Device: m[1]}
		// The group name follows the device header on the next line.
		if next, ok := c.peek(); ok {
			if g := reGroupName.FindStringSubmatch(next); g != nil {
				rec.Group = g[1]
				c.consume()
			}
		}
		return rec
	}

	if m := reCapacity.FindStringSubmatch(line); m != nil {
		// Tolerates trailing annotations such as "/ not usable 2.00 MiB".
		return Record{Kind: KindCapacity, SizeMB: parseFloat(m[1])}
	}

	if m := reExtentUnit.FindStringSubmatch(line); m != nil {
		return Record{Kind: KindExtentUnit, UnitMB: parseFloat(m[1])}
	}

	if m := reExtentCount.FindStringSubmatch(line); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		return Record{Kind: KindExtentCount, Extents: n}
	}

	if m := reAllocation.FindStringSubmatch(line); m != nil {
		start, _ := strconv.ParseInt(m[1], 10, 64)
		end, _ := strconv.ParseInt(m[2], 10, 64)
		rec := Record{Kind: KindAllocation, StartUnit: start, EndUnit: end}
		rec.OwnerName, rec.RowSizeMB = c.consumeOwner()
		return rec
	}

	for _, re := range noisePatterns {
		if re.MatchString(line) {
			return Record{Kind: KindNoise}
		}
	}

	return Record{Kind: KindUnrecognized}
}

// consumeOwner reads the owner line that follows an allocation range and the
// optional "Logical extents" line after it.
func (c *Classifier) consumeOwner() (string, float64) {
	next, ok := c.peek()
	if !ok {
		return types.FreeSpaceName, 0
	}

	var owner string
	var rowSizeMB float64

	switch {
	case strings.Contains(next, types.FreeSpaceName):
		owner = types.FreeSpaceName
		c.consume()
	default:
		m := reOwnerVolume.FindStringSubmatch(next)
		if m == nil {
			// Allocation range with no usable owner line. Keep the range
			// visible rather than guessing.
			return "UNKNOWN", 0
		}
		owner = path.Base(m[1])
		if m[2] != "" {
			rowSizeMB = parseFloat(m[2])
		}
		c.consume()
	}

	if next, ok := c.peek(); ok && reOwnerExtent.MatchString(next) {
		c.consume()
	}

	return owner, rowSizeMB
}

// peek returns the next non-blank line without consuming it. Blank lines in
// between are consumed.
func (c *Classifier) peek() (string, bool) {
	for c.pos < len(c.lines) {
		line := strings.TrimSpace(c.lines[c.pos])
		if line != "" {
			return line, true
		}
		c.pos++
	}
	return "", false
}

func (c *Classifier) consume() {
	c.pos++
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
