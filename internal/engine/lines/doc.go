// Package lines maintains the line partition of a text buffer.
//
// An Index splits the buffer into contiguous lines. Each line's range
// includes its terminating newline, so the ranges tile the buffer without
// gaps:
//
//	"Hello\nWorld"  ->  [0,6) "Hello", [6,11) "World"
//	"Hello\n"       ->  [0,6) "Hello", [6,6) ""
//	""              ->  [0,0) ""
//
// After every buffer mutation the owner reports the edit with Inserted or
// Deleted. Only the lines touching the edit are re-partitioned and
// re-measured; the starts of all later lines shift by the edit length.
//
// Each line caches its display text (tabs expanded, newline removed) and
// the width reported by a Measurer. The document's maximum width is kept
// incrementally and rescanned only when the widest line shrinks.
package lines
