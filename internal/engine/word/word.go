// Package word classifies characters into word and stop characters and
// computes word motions, word selection and balanced delimiter pairs.
package word

import (
	"unicode"

	"github.com/dshills/textengine/internal/engine/buffer"
)

// Source is the character surface scanned for words.
type Source interface {
	Len() int
	CharAt(i int) rune
}

// IsStop reports whether r delimits words: punctuation, symbols,
// whitespace and control characters.
func IsStop(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r) || unicode.IsControl(r)
}

// Left returns the start of the run of same-class characters ending at pos.
// The class is taken from the character just before pos.
func Left(src Source, pos int) int {
	pos = buffer.ClampOffset(pos, src.Len())
	if pos == 0 {
		return 0
	}
	pos--
	stop := IsStop(src.CharAt(pos))
	for pos > 0 && IsStop(src.CharAt(pos-1)) == stop {
		pos--
	}
	return pos
}

// Right returns the end of the run of same-class characters starting at pos.
// The class is taken from the character at pos.
func Right(src Source, pos int) int {
	n := src.Len()
	pos = buffer.ClampOffset(pos, n)
	if pos >= n {
		return n
	}
	stop := IsStop(src.CharAt(pos))
	pos++
	for pos < n && IsStop(src.CharAt(pos)) == stop {
		pos++
	}
	return pos
}

// At returns the maximal run of word characters around pos.
// ok is false when pos is at the buffer end or on a stop character.
func At(src Source, pos int) (r buffer.Range, ok bool) {
	n := src.Len()
	if pos < 0 || pos >= n || IsStop(src.CharAt(pos)) {
		return buffer.Range{}, false
	}
	start := pos
	for start > 0 && !IsStop(src.CharAt(start-1)) {
		start--
	}
	end := pos + 1
	for end < n && !IsStop(src.CharAt(end)) {
		end++
	}
	return buffer.MakeRange(start, end), true
}

var pairs = []struct{ opening, closing rune }{
	{'(', ')'},
	{'[', ']'},
	{'{', '}'},
	{'<', '>'},
}

// PairFor returns the delimiter pair r belongs to. forward is true when r
// is the opening delimiter, so the match lies after it.
func PairFor(r rune) (opening, closing rune, forward, ok bool) {
	for _, p := range pairs {
		switch r {
		case p.opening:
			return p.opening, p.closing, true, true
		case p.closing:
			return p.opening, p.closing, false, true
		}
	}
	return 0, 0, false, false
}

// BalancedPair finds the delimiter matching the one at pos.
//
// Scanning forward from an opening delimiter selects through the match,
// delimiters included. Scanning backward from a closing delimiter selects
// only the enclosed text. ok is false when no match exists.
func BalancedPair(src Source, pos int, opening, closing rune, forward bool) (r buffer.Range, ok bool) {
	n := src.Len()
	if pos < 0 || pos >= n {
		return buffer.Range{}, false
	}
	if at := src.CharAt(pos); (forward && at != opening) || (!forward && at != closing) {
		return buffer.Range{}, false
	}
	depth := 0
	if forward {
		for i := pos; i < n; i++ {
			switch src.CharAt(i) {
			case opening:
				depth++
			case closing:
				depth--
			}
			if depth == 0 {
				return buffer.MakeRange(pos, i+1), true
			}
		}
		return buffer.Range{}, false
	}
	for i := pos; i >= 0; i-- {
		switch src.CharAt(i) {
		case closing:
			depth++
		case opening:
			depth--
		}
		if depth == 0 {
			return buffer.MakeRange(i+1, pos), true
		}
	}
	return buffer.Range{}, false
}

// Pair selects the balanced pair for the delimiter at pos, if any.
func Pair(src Source, pos int) (buffer.Range, bool) {
	opening, closing, forward, ok := PairFor(src.CharAt(pos))
	if !ok {
		return buffer.Range{}, false
	}
	return BalancedPair(src, pos, opening, closing, forward)
}
