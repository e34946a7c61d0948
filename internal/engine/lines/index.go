package lines

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/dshills/textengine/internal/engine/buffer"
)

// Source is the read surface of the text the index partitions.
type Source interface {
	Len() int
	CharAt(i int) rune
	Slice(start, end int) []rune
}

// Measurer reports the display width of a run of text.
type Measurer interface {
	MeasureWidth(text string) float64
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(text string) float64

// MeasureWidth implements Measurer.
func (f MeasureFunc) MeasureWidth(text string) float64 {
	return f(text)
}

// runeCount measures one unit per character.
var runeCount = MeasureFunc(func(text string) float64 {
	return float64(utf8.RuneCountInString(text))
})

// Line is one row of the partition.
type Line struct {
	buffer.Range

	// Text is the display text: tabs expanded, trailing newline removed.
	Text string

	// Width is the measured width of Text.
	Width float64
}

// Option configures an Index.
type Option func(*Index)

// WithMeasurer sets the width measurer.
func WithMeasurer(m Measurer) Option {
	return func(x *Index) {
		if m != nil {
			x.measurer = m
		}
	}
}

// WithTabWidth sets the tab stop distance.
func WithTabWidth(width int) Option {
	return func(x *Index) {
		x.tabs = NewTabs(width)
	}
}

// Index is the incrementally maintained line partition of a buffer.
type Index struct {
	lines    []Line
	tabs     Tabs
	measurer Measurer
	maxWidth float64
}

// New creates an index for an empty buffer.
func New(opts ...Option) *Index {
	x := &Index{
		tabs:     NewTabs(DefaultTabWidth),
		measurer: runeCount,
	}
	for _, opt := range opts {
		opt(x)
	}
	x.lines = []Line{x.measure(emptySource{}, 0, 0)}
	x.maxWidth = x.lines[0].Width
	return x
}

// Rebuild re-partitions the whole buffer.
func (x *Index) Rebuild(src Source) {
	x.lines = x.partition(src, 0, src.Len(), true)
	x.rescanMax()
}

// Inserted updates the index after n characters were inserted at pos.
// src must already contain the insertion.
func (x *Index) Inserted(src Source, pos, n int) {
	if n <= 0 {
		return
	}
	li := x.Find(pos)
	old := x.lines[li]
	fresh := x.partition(src, old.Start, old.End()+n, li == len(x.lines)-1)
	x.splice(li, li+1, fresh, n)
}

// Deleted updates the index after n characters were deleted at pos.
// src must already reflect the deletion.
func (x *Index) Deleted(src Source, pos, n int) {
	if n <= 0 {
		return
	}
	first := x.Find(pos)
	last := x.Find(pos + n)
	start := x.lines[first].Start
	end := x.lines[last].End() - n
	fresh := x.partition(src, start, end, last == len(x.lines)-1)
	x.splice(first, last+1, fresh, -n)
}

// splice replaces lines[from:to] with fresh and shifts every later line by delta.
func (x *Index) splice(from, to int, fresh []Line, delta int) {
	shrunk := false
	for _, l := range x.lines[from:to] {
		if l.Width >= x.maxWidth {
			shrunk = true
		}
	}

	tail := x.lines[to:]
	for i := range tail {
		tail[i].Start += delta
	}

	out := make([]Line, 0, len(x.lines)-(to-from)+len(fresh))
	out = append(out, x.lines[:from]...)
	out = append(out, fresh...)
	out = append(out, tail...)
	x.lines = out

	freshMax := 0.0
	for _, l := range fresh {
		freshMax = max(freshMax, l.Width)
	}
	switch {
	case freshMax >= x.maxWidth:
		x.maxWidth = freshMax
	case shrunk:
		x.rescanMax()
	}
}

// partition splits [start, end) into lines. A trailing empty line is only
// produced when the span replaces the last line; otherwise the line after
// the span already starts at end.
func (x *Index) partition(src Source, start, end int, last bool) []Line {
	var out []Line
	s := start
	for i := start; i < end; i++ {
		if src.CharAt(i) == '\n' {
			out = append(out, x.measure(src, s, i+1))
			s = i + 1
		}
	}
	if s < end || last {
		out = append(out, x.measure(src, s, end))
	}
	return out
}

func (x *Index) measure(src Source, start, end int) Line {
	textEnd := end
	if textEnd > start && src.CharAt(textEnd-1) == '\n' {
		textEnd--
	}
	text := x.tabs.Expand(src.Slice(start, textEnd))
	return Line{
		Range: buffer.MakeRange(start, end),
		Text:  text,
		Width: x.measurer.MeasureWidth(text),
	}
}

func (x *Index) rescanMax() {
	x.maxWidth = 0
	for _, l := range x.lines {
		x.maxWidth = max(x.maxWidth, l.Width)
	}
}

// Count returns the number of lines. It is at least 1.
func (x *Index) Count() int {
	return len(x.lines)
}

// Line returns line i, clamped to the valid line numbers.
func (x *Index) Line(i int) Line {
	return x.lines[buffer.ClampOffset(i, len(x.lines)-1)]
}

// Lines returns a copy of all lines.
func (x *Index) Lines() []Line {
	out := make([]Line, len(x.lines))
	copy(out, x.lines)
	return out
}

// Find returns the number of the line containing pos.
// Positions at or past the buffer end map to the last line.
func (x *Index) Find(pos int) int {
	i := sort.Search(len(x.lines), func(i int) bool {
		return x.lines[i].End() > pos
	})
	if i == len(x.lines) {
		return len(x.lines) - 1
	}
	return i
}

// MaxWidth returns the width of the widest line.
func (x *Index) MaxWidth() float64 {
	return x.maxWidth
}

// TabWidth returns the tab stop distance.
func (x *Index) TabWidth() int {
	return x.tabs.Width()
}

// Tabs returns the tab expander used for display text.
func (x *Index) Tabs() Tabs {
	return x.tabs
}

// SetTabWidth changes the tab stop distance and re-measures every line.
func (x *Index) SetTabWidth(src Source, width int) {
	x.tabs = NewTabs(width)
	x.Rebuild(src)
}

// SetMeasurer replaces the measurer and re-measures every line.
func (x *Index) SetMeasurer(src Source, m Measurer) {
	if m == nil {
		m = runeCount
	}
	x.measurer = m
	x.Rebuild(src)
}

// Measurer returns the width measurer.
func (x *Index) Measurer() Measurer {
	return x.measurer
}

// Validate panics if the partition does not tile [0, length).
// A broken partition is a programming error in the index owner.
func (x *Index) Validate(length int) {
	if len(x.lines) == 0 {
		panic("lines: empty partition")
	}
	if x.lines[0].Start != 0 {
		panic(fmt.Sprintf("lines: first line starts at %d", x.lines[0].Start))
	}
	for i := 1; i < len(x.lines); i++ {
		if x.lines[i-1].End() != x.lines[i].Start {
			panic(fmt.Sprintf("lines: gap between line %d %v and line %d %v",
				i-1, x.lines[i-1].Range, i, x.lines[i].Range))
		}
	}
	if last := x.lines[len(x.lines)-1]; last.End() != length {
		panic(fmt.Sprintf("lines: last line %v outside buffer of length %d", last.Range, length))
	}
}

type emptySource struct{}

func (emptySource) Len() int              { return 0 }
func (emptySource) CharAt(int) rune       { return 0 }
func (emptySource) Slice(int, int) []rune { return nil }
