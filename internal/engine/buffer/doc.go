// Package buffer provides the character storage of the editing engine.
//
// A Buffer holds the document as a sequence of runes in a gap buffer. Every
// position is a character offset, so random access is O(1) and edits near
// the previous edit point are O(1) amortized.
//
// Positions handed to the buffer are never rejected. They are clamped into
// [0, Len()] and an edit that covers nothing degrades to a no-op:
//
//	buf := buffer.NewFromString("Hello World")
//	buf.Insert(5, []rune(","))     // "Hello, World"
//	buf.Delete(0, 7)               // "World"
//	buf.Delete(100, 3)             // no-op, returns nil
//
// The package also converts between the buffer's rune representation and
// the plain text formats exposed to hosts. Malformed UTF-8 or UTF-16 input
// is dropped rather than reported:
//
//	runes := buffer.DecodeString("caf\xc3\xa9\xff") // "café"
//	utf16, _ := buffer.EncodeUTF16(runes)
package buffer
