// Package edit implements cursor, selection and editing behaviour
// independent of any concrete text storage.
//
// A Machine drives a Host: the host owns the text and its row layout, the
// machine owns the edit state and decides which primitive mutations a
// command or typed character turns into. Navigation, mouse location and
// vertical motion with a preferred x position are all computed through the
// Host's row and character width queries.
package edit

import "github.com/dshills/textengine/internal/engine/buffer"

// Row describes one laid out row of text.
type Row struct {
	// Chars is the number of characters in the row, including a
	// terminating newline.
	Chars int

	// X0 and X1 are the horizontal extent of the row's text.
	X0, X1 float64

	// Height is the vertical advance to the next row.
	Height float64
}

// Host is the storage and layout the machine edits.
type Host interface {
	Len() int
	CharAt(i int) rune

	// InsertChars inserts text at pos and returns the number inserted.
	InsertChars(pos int, text []rune) int
	// DeleteChars deletes count characters at pos and returns them.
	DeleteChars(pos, count int) []rune

	// LayoutRow returns the row starting at start.
	LayoutRow(start int) Row
	// CharWidth returns the width of character i of the row starting at rowStart.
	CharWidth(rowStart, i int) float64

	MoveWordLeft(pos int) int
	MoveWordRight(pos int) int
}

// Grouper is implemented by hosts whose mutations are recorded for undo.
// Edits made between BeginGroup and EndGroup undo as one step.
type Grouper interface {
	BeginGroup()
	EndGroup()
}

// State is the cursor and selection of an editor.
// SelectStart and SelectEnd may be in either order.
type State struct {
	Cursor      int
	SelectStart int
	SelectEnd   int

	// PreferredX is the goal column kept across vertical motion.
	PreferredX    float64
	HasPreferredX bool

	// Overwrite replaces the character under the cursor when typing.
	Overwrite bool
}

// Selection returns the selected range in ascending order.
func (s State) Selection() buffer.Range {
	return buffer.MakeRange(s.SelectStart, s.SelectEnd)
}

// HasSelection returns true if the selection is not empty.
func (s State) HasSelection() bool {
	return s.SelectStart != s.SelectEnd
}
