// Package search finds occurrences of a needle in the editor buffer.
//
// Matching is either exact or case folded, and may be restricted to whole
// words. Directional searches wrap around the buffer boundary once and
// visit every candidate position at most once, so a search always
// terminates even when no candidate is acceptable.
package search

import (
	"golang.org/x/text/cases"

	"github.com/dshills/textengine/internal/engine/buffer"
	"github.com/dshills/textengine/internal/engine/word"
)

// Source is the character surface searched.
type Source interface {
	Len() int
	CharAt(i int) rune
}

// Options is a set of matching flags.
type Options uint8

const (
	// CaseSensitive compares characters exactly.
	CaseSensitive Options = 1 << iota
	// WholeWords only accepts matches bounded by stop characters.
	WholeWords
)

// Has reports whether all flags in o are set.
func (opts Options) Has(o Options) bool {
	return opts&o == o
}

// Finder holds a needle and its matching options.
// A Finder is not safe for concurrent use.
type Finder struct {
	needle []rune
	folded []string
	opts   Options
	caser  cases.Caser
}

// New creates a finder for needle.
func New(needle string, opts Options) *Finder {
	f := &Finder{opts: opts, caser: cases.Fold()}
	f.SetNeedle(needle)
	return f
}

// SetNeedle replaces the needle.
func (f *Finder) SetNeedle(needle string) {
	f.needle = buffer.DecodeString(needle)
	f.folded = make([]string, len(f.needle))
	for i, r := range f.needle {
		f.folded[i] = f.fold(r)
	}
}

// Needle returns the current needle.
func (f *Finder) Needle() string {
	return string(f.needle)
}

// IsEmpty returns true if there is no needle. An empty finder never matches.
func (f *Finder) IsEmpty() bool {
	return len(f.needle) == 0
}

// SetOptions replaces the matching options.
func (f *Finder) SetOptions(opts Options) {
	f.opts = opts
}

// Options returns the matching options.
func (f *Finder) Options() Options {
	return f.opts
}

// Find searches src for the next match.
//
// Forward searches start at from and move towards the buffer end;
// backward searches start with a match beginning at from and move towards
// the buffer start. A from outside the candidate positions starts at the
// far end of the buffer. Both directions wrap around once.
func (f *Finder) Find(src Source, forward bool, from int) (buffer.Range, bool) {
	n := len(f.needle)
	count := src.Len() - n + 1
	if n == 0 || count <= 0 {
		return buffer.Range{}, false
	}

	last := count - 1
	start := from
	switch {
	case forward && (start < 0 || start > last):
		start = 0
	case !forward && (start < 0 || start > last):
		start = last
	}

	for k := 0; k < count; k++ {
		var p int
		if forward {
			p = (start + k) % count
		} else {
			p = ((start-k)%count + count) % count
		}
		if f.MatchAt(src, p) {
			return buffer.NewRange(p, n), true
		}
	}
	return buffer.Range{}, false
}

// FindAll returns every non-overlapping match in buffer order.
func (f *Finder) FindAll(src Source) []buffer.Range {
	n := len(f.needle)
	if n == 0 {
		return nil
	}
	var out []buffer.Range
	for p := 0; p+n <= src.Len(); {
		if f.MatchAt(src, p) {
			out = append(out, buffer.NewRange(p, n))
			p += n
			continue
		}
		p++
	}
	return out
}

// MatchAt reports whether the needle matches src at pos under the
// current options.
func (f *Finder) MatchAt(src Source, pos int) bool {
	n := len(f.needle)
	if n == 0 || pos < 0 || pos+n > src.Len() {
		return false
	}
	for i := 0; i < n; i++ {
		if !f.equal(i, src.CharAt(pos+i)) {
			return false
		}
	}
	if f.opts.Has(WholeWords) {
		if pos > 0 && !word.IsStop(src.CharAt(pos-1)) {
			return false
		}
		if end := pos + n; end < src.Len() && !word.IsStop(src.CharAt(end)) {
			return false
		}
	}
	return true
}

// equal compares needle character i with r.
func (f *Finder) equal(i int, r rune) bool {
	nr := f.needle[i]
	if nr == r {
		return true
	}
	if f.opts.Has(CaseSensitive) {
		return false
	}
	if nr < 0x80 && r < 0x80 {
		return lowerASCII(nr) == lowerASCII(r)
	}
	return f.folded[i] == f.fold(r)
}

func (f *Finder) fold(r rune) string {
	if r < 0x80 {
		return string(lowerASCII(r))
	}
	return f.caser.String(string(r))
}

func lowerASCII(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}
