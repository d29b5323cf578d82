package layout

// findResizeBoundary computes the movable sandbox for resizing the field at
// segment index segIdx: the field's own range plus its immediately adjacent
// gaps. The upper limit stops one bit short of the nearest field above (or at
// widthBits-1); the lower limit stops one bit past the nearest field below
// (or at 0).
func findResizeBoundary(segments []Segment, segIdx int, widthBits uint) (minBit, maxBit uint) {
	maxBit = widthBits - 1
	if segIdx > 0 {
		above := segments[segIdx-1]
		if above.IsGap() {
			maxBit = above.Range.MSB
		} else {
			maxBit = above.Range.LSB - 1 // directly adjacent field, no room above
		}
	}

	minBit = 0
	if segIdx < len(segments)-1 {
		below := segments[segIdx+1]
		if below.IsGap() {
			minBit = below.Range.LSB
		} else {
			minBit = below.Range.MSB + 1
		}
	}

	return minBit, maxBit
}

// findGapBoundaries returns the full contiguous extent of the gap at segment
// index segIdx. BuildSegments emits maximal gaps, so the extent is the
// segment's own range.
func findGapBoundaries(segments []Segment, segIdx int) (minBit, maxBit uint) {
	return segments[segIdx].Range.LSB, segments[segIdx].Range.MSB
}
