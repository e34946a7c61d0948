package buffer

import "strings"

// Buffer is a gap buffer of runes.
// The runes before gapStart and from gapEnd onwards form the text; the
// slots in between are spare capacity for insertions.
//
// Buffer is not safe for concurrent use. It is owned by a single editor.
type Buffer struct {
	buf      []rune
	gapStart int
	gapEnd   int
	minGap   int
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{minGap: DefaultGap}
	for _, opt := range opts {
		opt(b)
	}
	b.buf = make([]rune, b.minGap)
	b.gapEnd = b.minGap
	return b
}

// NewFromString creates a buffer holding the decoded text.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.Reset(DecodeString(s))
	return b
}

// NewFromRunes creates a buffer holding a copy of text.
func NewFromRunes(text []rune, opts ...Option) *Buffer {
	b := New(opts...)
	b.Reset(text)
	return b
}

// Reset replaces the whole content of the buffer.
func (b *Buffer) Reset(text []rune) {
	size := len(text) + b.minGap
	b.buf = make([]rune, size)
	copy(b.buf, text)
	b.gapStart = len(text)
	b.gapEnd = size
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	return len(b.buf) - (b.gapEnd - b.gapStart)
}

// IsEmpty returns true if the buffer holds no characters.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// CharAt returns the character at offset i, or 0 if i is out of range.
func (b *Buffer) CharAt(i int) rune {
	if i < 0 || i >= b.Len() {
		return 0
	}
	if i < b.gapStart {
		return b.buf[i]
	}
	return b.buf[b.gapEnd+(i-b.gapStart)]
}

// Slice returns a copy of the characters in [start, end).
// The bounds are clamped to the buffer.
func (b *Buffer) Slice(start, end int) []rune {
	n := b.Len()
	start = ClampOffset(start, n)
	end = ClampOffset(end, n)
	if start >= end {
		return nil
	}
	out := make([]rune, 0, end-start)
	if start < b.gapStart {
		out = append(out, b.buf[start:min(end, b.gapStart)]...)
	}
	if end > b.gapStart {
		from := max(start, b.gapStart) - b.gapStart + b.gapEnd
		to := end - b.gapStart + b.gapEnd
		out = append(out, b.buf[from:to]...)
	}
	return out
}

// SliceRange returns a copy of the characters covered by r.
func (b *Buffer) SliceRange(r Range) []rune {
	return b.Slice(r.Start, r.End())
}

// Runes returns a copy of the whole buffer.
func (b *Buffer) Runes() []rune {
	return b.Slice(0, b.Len())
}

// Text returns the buffer content as a UTF-8 string.
func (b *Buffer) Text() string {
	var sb strings.Builder
	sb.Grow(b.Len())
	for _, r := range b.buf[:b.gapStart] {
		sb.WriteRune(r)
	}
	for _, r := range b.buf[b.gapEnd:] {
		sb.WriteRune(r)
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (b *Buffer) String() string {
	return b.Text()
}

// Insert splices text into the buffer at pos.
// pos is clamped to [0, Len()]. Returns the number of characters inserted.
func (b *Buffer) Insert(pos int, text []rune) int {
	if len(text) == 0 {
		return 0
	}
	pos = ClampOffset(pos, b.Len())
	b.moveGap(pos)
	b.ensureGap(len(text))
	copy(b.buf[b.gapStart:], text)
	b.gapStart += len(text)
	return len(text)
}

// Delete removes up to count characters starting at pos.
// The span is clamped to the buffer. Returns the removed characters.
func (b *Buffer) Delete(pos, count int) []rune {
	n := b.Len()
	if pos < 0 {
		count += pos
		pos = 0
	}
	if pos >= n || count <= 0 {
		return nil
	}
	if pos+count > n {
		count = n - pos
	}
	removed := b.Slice(pos, pos+count)
	b.moveGap(pos)
	b.gapEnd += count
	return removed
}

// moveGap moves the gap so that gapStart == pos.
func (b *Buffer) moveGap(pos int) {
	switch {
	case pos < b.gapStart:
		d := b.gapStart - pos
		copy(b.buf[b.gapEnd-d:b.gapEnd], b.buf[pos:b.gapStart])
		b.gapStart -= d
		b.gapEnd -= d
	case pos > b.gapStart:
		d := pos - b.gapStart
		copy(b.buf[b.gapStart:b.gapStart+d], b.buf[b.gapEnd:b.gapEnd+d])
		b.gapStart += d
		b.gapEnd += d
	}
}

// ensureGap grows the backing slice so the gap can hold n runes.
func (b *Buffer) ensureGap(n int) {
	gap := b.gapEnd - b.gapStart
	if gap >= n {
		return
	}
	newCap := len(b.buf)*2 + n - gap + b.minGap
	grown := make([]rune, newCap)
	copy(grown, b.buf[:b.gapStart])
	suffix := len(b.buf) - b.gapEnd
	copy(grown[newCap-suffix:], b.buf[b.gapEnd:])
	b.gapEnd = newCap - suffix
	b.buf = grown
}
