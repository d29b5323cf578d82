package layout

import (
	"fmt"
	"sort"

	"github.com/bleviet/fpga-lib-sub002/regmap"
)

// BuildSegments partitions [0, widthBits) into an MSB-first, contiguous
// sequence of field and gap segments. The input field list may be sparse and
// in any order; it must already be non-overlapping (a Register guarantees
// this). Every bit of the word lands in exactly one segment.
func BuildSegments(fields []regmap.BitField, widthBits uint) ([]Segment, error) {
	if widthBits < 1 {
		return nil, fmt.Errorf("%w: zero-width word", ErrOutOfRange)
	}

	// Field indices sorted by MSB descending, the walk order.
	order := make([]int, len(fields))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return fields[order[a]].Range.MSB > fields[order[b]].Range.MSB
	})

	segments := make([]Segment, 0, 2*len(fields)+1)
	bit := int(widthBits) - 1
	next := 0
	for bit >= 0 {
		if next < len(order) {
			f := fields[order[next]]
			if int(f.Range.MSB) > bit {
				return nil, fmt.Errorf("layout: field %q %s overlaps or exceeds %d-bit word",
					f.Name, f.Range, widthBits)
			}
			if int(f.Range.MSB) == bit {
				segments = append(segments, fieldSegment(order[next], f.Range))
				bit = int(f.Range.LSB) - 1
				next++
				continue
			}
		}

		// Accumulate unowned bits down to the next field's MSB (or bit 0).
		gapLSB := 0
		if next < len(order) {
			gapLSB = int(fields[order[next]].Range.MSB) + 1
		}
		segments = append(segments, gapSegment(regmap.BitRange{MSB: uint(bit), LSB: uint(gapLSB)}))
		bit = gapLSB - 1
	}
	return segments, nil
}
