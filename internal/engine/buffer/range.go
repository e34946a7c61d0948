package buffer

import "fmt"

// Range is a contiguous span of character offsets.
// It covers [Start, Start+Length). Range is an immutable value type.
type Range struct {
	Start  int
	Length int
}

// NewRange creates a range from a start offset and a length.
func NewRange(start, length int) Range {
	return Range{Start: start, Length: length}
}

// MakeRange creates a range covering the offsets between a and b.
// The arguments may be given in either order.
func MakeRange(a, b int) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Start: a, Length: b - a}
}

// End returns the exclusive end offset.
func (r Range) End() int {
	return r.Start + r.Length
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Length == 0
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End()
}

// Shift returns a new range moved by delta.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, Length: r.Length}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End())
}

// ClampOffset limits offset to [0, max].
func ClampOffset(offset, max int) int {
	if offset < 0 {
		return 0
	}
	if offset > max {
		return max
	}
	return offset
}
