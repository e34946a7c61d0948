package history

import (
	"time"

	"github.com/dshills/textengine/internal/engine/buffer"
)

// Source is the read surface used to capture text before it is deleted.
type Source interface {
	Len() int
	Slice(start, end int) []rune
}

// Target receives the mutations performed during undo and redo.
type Target interface {
	InsertChars(pos int, text []rune) int
	DeleteChars(pos, count int) []rune
}

// Record is a reversible diff.
// Applying it deletes DeletedLength characters at Position, then inserts
// Inserted. Exactly one of the two is meaningful.
type Record struct {
	Position      int
	DeletedLength int
	Inserted      []rune
}

// InsertRecord creates a record that inserts text at pos.
func InsertRecord(pos int, text []rune) Record {
	return Record{Position: pos, Inserted: text}
}

// DeleteRecord creates a record that deletes count characters at pos.
func DeleteRecord(pos, count int) Record {
	return Record{Position: pos, DeletedLength: count}
}

// IsInsert returns true if this record inserts text.
func (r Record) IsInsert() bool {
	return r.DeletedLength == 0 && len(r.Inserted) > 0
}

// IsDelete returns true if this record deletes text.
func (r Record) IsDelete() bool {
	return r.DeletedLength > 0
}

// IsNoop returns true if applying this record changes nothing.
func (r Record) IsNoop() bool {
	return r.DeletedLength == 0 && len(r.Inserted) == 0
}

// Delta returns the change in document length caused by applying the record.
func (r Record) Delta() int {
	if r.IsDelete() {
		return -r.DeletedLength
	}
	return len(r.Inserted)
}

// Range returns the span the record operates on in the current document.
func (r Record) Range() buffer.Range {
	return buffer.NewRange(r.Position, r.DeletedLength)
}

// Apply performs the record on t and returns its inverse along with the
// cursor position the edit leaves behind.
func (r Record) Apply(t Target) (inverse Record, cursor int) {
	switch {
	case r.IsDelete():
		removed := t.DeleteChars(r.Position, r.DeletedLength)
		return InsertRecord(r.Position, removed), r.Position
	case r.IsInsert():
		n := t.InsertChars(r.Position, r.Inserted)
		return DeleteRecord(r.Position, n), r.Position + n
	}
	return r, r.Position
}

// Group is the set of records undone or redone together.
type Group struct {
	// Timestamp is the time of the most recent record in the group.
	Timestamp time.Time
	Records   []Record
}

// Delta returns the total change in document length.
func (g *Group) Delta() int {
	total := 0
	for _, r := range g.Records {
		total += r.Delta()
	}
	return total
}

// GroupInfo provides read-only info about a group.
type GroupInfo struct {
	Timestamp time.Time
	Records   int
	Delta     int
}

func (g *Group) info() GroupInfo {
	return GroupInfo{
		Timestamp: g.Timestamp,
		Records:   len(g.Records),
		Delta:     g.Delta(),
	}
}
