package layout

import (
	"fmt"

	"github.com/bleviet/fpga-lib-sub002/regmap"
)

// SegmentKind discriminates field and gap segments.
type SegmentKind int

const (
	// SegmentField is a span owned by a field.
	SegmentField SegmentKind = iota

	// SegmentGap is a span of implicitly reserved bits no field claims.
	SegmentGap
)

// Segment is one span of a register word's partition: either a field's range
// (with the index of the field in the source list) or a gap.
type Segment struct {
	Kind       SegmentKind
	FieldIndex int // index into the source field list; -1 for gaps
	Range      regmap.BitRange
}

// IsGap reports whether the segment is reserved space.
func (s Segment) IsGap() bool { return s.Kind == SegmentGap }

func (s Segment) String() string {
	if s.IsGap() {
		return fmt.Sprintf("gap%s", s.Range)
	}
	return fmt.Sprintf("field#%d%s", s.FieldIndex, s.Range)
}

func fieldSegment(index int, r regmap.BitRange) Segment {
	return Segment{Kind: SegmentField, FieldIndex: index, Range: r}
}

func gapSegment(r regmap.BitRange) Segment {
	return Segment{Kind: SegmentGap, FieldIndex: -1, Range: r}
}

// SegmentAt returns the index of the segment containing bit, or -1.
func SegmentAt(segments []Segment, bit uint) int {
	for i, s := range segments {
		if s.Range.Contains(bit) {
			return i
		}
	}
	return -1
}
