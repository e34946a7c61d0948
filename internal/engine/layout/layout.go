// Package layout breaks line display text into positioned spans.
//
// A line wider than the available width is either wrapped into several
// rows, truncated with an ellipsis, or clipped. Every span carries the
// rectangle it occupies; row k of a layout sits at FirstY + k*LineHeight.
package layout

import (
	"fmt"
	"strings"

	"github.com/dshills/textengine/internal/engine/lines"
	"github.com/dshills/textengine/internal/engine/word"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "…"

// Policy selects how overlong lines are laid out.
type Policy int

const (
	// Wrap breaks the line into several rows.
	Wrap Policy = iota
	// Truncate cuts the line and appends an ellipsis.
	Truncate
	// Clip keeps the line on one row and clips its rectangle.
	Clip
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Wrap:
		return "wrap"
	case Truncate:
		return "truncate"
	case Clip:
		return "clip"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a policy name into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wrap":
		return Wrap, nil
	case "truncate":
		return Truncate, nil
	case "clip":
		return Clip, nil
	}
	return Wrap, fmt.Errorf("unknown layout policy %q", s)
}

// Rect is an axis aligned rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Span is one laid out row of a line.
type Span struct {
	// Start and End are character offsets into the laid out text.
	Start, End int

	// Text is the text drawn for the span. For truncated spans it ends
	// with Ellipsis.
	Text string

	Rect Rect
}

// Options controls a layout pass.
type Options struct {
	// MaxWidth is the available width. Zero or less disables the policy.
	MaxWidth float64
	Policy   Policy

	X          float64
	FirstY     float64
	LineHeight float64
}

// Layout lays out text according to opts.
// It always returns at least one span.
func Layout(text string, opts Options, m lines.Measurer) []Span {
	runes := []rune(text)
	width := m.MeasureWidth(text)
	if opts.MaxWidth <= 0 || width <= opts.MaxWidth {
		return []Span{opts.span(0, 0, len(runes), text, width)}
	}

	switch opts.Policy {
	case Truncate:
		return []Span{truncate(runes, opts, m)}
	case Clip:
		return []Span{opts.span(0, 0, len(runes), text, opts.MaxWidth)}
	default:
		return wrap(runes, opts, m)
	}
}

func (o Options) span(row, start, end int, text string, width float64) Span {
	return Span{
		Start: start,
		End:   end,
		Text:  text,
		Rect: Rect{
			X:      o.X,
			Y:      o.FirstY + float64(row)*o.LineHeight,
			Width:  width,
			Height: o.LineHeight,
		},
	}
}

// wrap accumulates character widths and breaks after the last stop
// character before the overflow, or at the overflow when the row has none.
func wrap(runes []rune, opts Options, m lines.Measurer) []Span {
	var spans []Span
	for start := 0; start < len(runes); {
		end := start
		width := 0.0
		lastBreak := -1
		for end < len(runes) {
			w := m.MeasureWidth(string(runes[end]))
			if width+w > opts.MaxWidth && end > start {
				break
			}
			width += w
			if word.IsStop(runes[end]) {
				lastBreak = end + 1
			}
			end++
		}
		if end < len(runes) && lastBreak > start {
			end = lastBreak
		}
		text := string(runes[start:end])
		spans = append(spans, opts.span(len(spans), start, end, text, m.MeasureWidth(text)))
		start = end
	}
	return spans
}

// truncate keeps the longest prefix that fits together with the ellipsis.
func truncate(runes []rune, opts Options, m lines.Measurer) Span {
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.MeasureWidth(string(runes[:mid])+Ellipsis) <= opts.MaxWidth {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	text := string(runes[:lo]) + Ellipsis
	return opts.span(0, 0, len(runes), text, m.MeasureWidth(text))
}

// Row is a span positioned within a document.
type Row struct {
	// Line is the line number the span belongs to.
	Line int
	Span
}

// Document lays out every line of idx, stacking rows from opts.FirstY.
func Document(idx *lines.Index, opts Options, m lines.Measurer) []Row {
	var rows []Row
	for i, l := range idx.Lines() {
		o := opts
		o.FirstY = opts.FirstY + float64(len(rows))*opts.LineHeight
		for _, s := range Layout(l.Text, o, m) {
			rows = append(rows, Row{Line: i, Span: s})
		}
	}
	return rows
}
