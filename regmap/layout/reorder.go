package layout

import "github.com/bleviet/fpga-lib-sub002/regmap"

// FieldUpdate is one entry of a batch layout mutation: the field at
// FieldIndex (in the gesture-start field list) moves to NewRange.
type FieldUpdate struct {
	FieldIndex int
	NewRange   regmap.BitRange
}

// computeReorder relocates the dragged field relative to the other segments
// and returns the new range of every segment's span after repacking.
//
// The dragged field is removed from the segment list, the remaining segments
// are treated as one tightly packed coordinate space, and the cursor bit is
// mapped into that space to find the insertion target. A field target takes
// the dragged field before or after it depending on which half the cursor
// lands in (at or past the midpoint inserts on the MSB side); a gap target is
// split at the cursor's offset, dropping zero-width sub-gaps. The resulting
// list is then repacked from bit 0 upward, preserving every segment's width,
// so the total width of all fields is conserved.
func computeReorder(segments []Segment, draggedField int, cursor uint) []Segment {
	var dragged Segment
	remaining := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if !s.IsGap() && s.FieldIndex == draggedField {
			dragged = s
			continue
		}
		remaining = append(remaining, s)
	}

	// Cursor position in the packed space: the number of remaining bits
	// strictly above the cursor, counted from the MSB end.
	var pos uint
	for _, s := range remaining {
		if s.Range.LSB > cursor {
			pos += s.Range.Width()
		} else if s.Range.MSB > cursor {
			pos += s.Range.MSB - cursor
		}
	}

	// Locate the target segment containing the packed position.
	reordered := make([]Segment, 0, len(remaining)+2)
	var acc uint
	inserted := false
	for _, s := range remaining {
		w := s.Range.Width()
		if !inserted && pos < acc+w {
			off := pos - acc // offset from the target's MSB end
			switch {
			case s.IsGap():
				// Split the gap at the cursor offset; zero-width parts vanish.
				if off > 0 {
					reordered = append(reordered, gapSegment(regmap.BitRange{MSB: w - 1, LSB: w - off}))
				}
				reordered = append(reordered, dragged)
				if off < w {
					reordered = append(reordered, gapSegment(regmap.BitRange{MSB: w - off - 1, LSB: 0}))
				}
			case off < w-w/2:
				// MSB half: dragged lands above the target field.
				reordered = append(reordered, dragged, s)
			default:
				reordered = append(reordered, s, dragged)
			}
			inserted = true
			continue
		}
		acc += w
		reordered = append(reordered, s)
	}
	if !inserted {
		// Cursor mapped past every remaining bit: insert at the LSB end.
		reordered = append(reordered, dragged)
	}

	return repack(reordered)
}

// repack assigns consecutive bit ranges from bit 0 upward, walking the
// MSB-first segment list from its tail. Widths are preserved exactly.
func repack(segments []Segment) []Segment {
	out := make([]Segment, len(segments))
	var cur uint
	for i := len(segments) - 1; i >= 0; i-- {
		w := segments[i].Range.Width()
		out[i] = segments[i]
		out[i].Range = regmap.BitRange{MSB: cur + w - 1, LSB: cur}
		cur += w
	}
	return out
}
