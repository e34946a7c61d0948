package buffer

import (
	"strings"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := New()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.Text() != "" {
		t.Errorf("expected empty text, got %q", b.Text())
	}
}

func TestNewBufferFromString(t *testing.T) {
	text := "Hello, 世界!"
	b := NewFromString(text)

	if b.Text() != text {
		t.Errorf("expected %q, got %q", text, b.Text())
	}
	if b.Len() != 10 {
		t.Errorf("expected length 10, got %d", b.Len())
	}
	if b.CharAt(7) != '世' {
		t.Errorf("CharAt(7) = %q, want '世'", b.CharAt(7))
	}
}

func TestBufferCharAtOutOfRange(t *testing.T) {
	b := NewFromString("abc")

	for _, i := range []int{-1, 3, 100} {
		if got := b.CharAt(i); got != 0 {
			t.Errorf("CharAt(%d) = %q, want 0", i, got)
		}
	}
}

func TestBufferInsert(t *testing.T) {
	tests := []struct {
		name  string
		start string
		pos   int
		text  string
		want  string
		count int
	}{
		{"middle", "Hello World", 5, ",", "Hello, World", 1},
		{"start", "World", 0, "Hello ", "Hello World", 6},
		{"end", "Hello", 5, " World", "Hello World", 6},
		{"empty buffer", "", 0, "abc", "abc", 3},
		{"negative clamps to start", "bc", -4, "a", "abc", 1},
		{"past end clamps to end", "ab", 99, "c", "abc", 1},
		{"empty text", "abc", 1, "", "abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.start)
			n := b.Insert(tt.pos, []rune(tt.text))
			if n != tt.count {
				t.Errorf("Insert returned %d, want %d", n, tt.count)
			}
			if b.Text() != tt.want {
				t.Errorf("Text() = %q, want %q", b.Text(), tt.want)
			}
		})
	}
}

func TestBufferDelete(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		pos     int
		count   int
		want    string
		removed string
	}{
		{"middle", "Hello, World", 5, 1, "Hello World", ","},
		{"start", "Hello World", 0, 6, "World", "Hello "},
		{"end", "Hello World", 5, 6, "Hello", " World"},
		{"overlong clamps", "Hello", 3, 50, "Hel", "lo"},
		{"at end is no-op", "Hello", 5, 1, "Hello", ""},
		{"negative start clamps", "Hello", -2, 3, "llo", "He"},
		{"zero count", "Hello", 1, 0, "Hello", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.start)
			removed := b.Delete(tt.pos, tt.count)
			if string(removed) != tt.removed {
				t.Errorf("Delete returned %q, want %q", string(removed), tt.removed)
			}
			if b.Text() != tt.want {
				t.Errorf("Text() = %q, want %q", b.Text(), tt.want)
			}
		})
	}
}

func TestBufferInsertDeleteRoundTrip(t *testing.T) {
	original := "the quick brown fox\njumps over\tthe lazy dog"
	b := NewFromString(original, WithGap(2))

	for pos := 0; pos <= b.Len(); pos += 3 {
		text := []rune("→inserted\n")
		b.Insert(pos, text)
		b.Delete(pos, len(text))
		if b.Text() != original {
			t.Fatalf("round trip at %d: got %q", pos, b.Text())
		}
	}
}

func TestBufferGrowth(t *testing.T) {
	b := New(WithGap(1))
	var want strings.Builder

	for i := 0; i < 500; i++ {
		r := rune('a' + i%26)
		b.Insert(b.Len()/2, []rune{r})
		s := []rune(want.String())
		mid := len(s) / 2
		want.Reset()
		want.WriteString(string(s[:mid]) + string(r) + string(s[mid:]))
	}

	if b.Text() != want.String() {
		t.Error("content diverged after repeated growth")
	}
	if b.Len() != 500 {
		t.Errorf("Len() = %d, want 500", b.Len())
	}
}

func TestBufferSlice(t *testing.T) {
	b := NewFromString("Hello World")
	// Park the gap in the middle so slices straddle it.
	b.Insert(6, []rune("big "))
	b.Delete(6, 4)

	tests := []struct {
		start, end int
		want       string
	}{
		{0, 5, "Hello"},
		{6, 11, "World"},
		{3, 8, "lo Wo"},
		{-3, 2, "He"},
		{9, 99, "ld"},
		{7, 7, ""},
		{8, 2, ""},
	}

	for _, tt := range tests {
		got := string(b.Slice(tt.start, tt.end))
		if got != tt.want {
			t.Errorf("Slice(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}

	if got := string(b.SliceRange(NewRange(6, 5))); got != "World" {
		t.Errorf("SliceRange = %q, want %q", got, "World")
	}
}

func TestBufferRunesIsCopy(t *testing.T) {
	b := NewFromString("abc")
	r := b.Runes()
	r[0] = 'z'

	if b.Text() != "abc" {
		t.Errorf("mutating Runes() changed the buffer: %q", b.Text())
	}
}

func TestBufferReset(t *testing.T) {
	b := NewFromString("old text")
	b.Reset([]rune("new"))

	if b.Text() != "new" {
		t.Errorf("Text() = %q, want %q", b.Text(), "new")
	}
	b.Insert(3, []rune("er"))
	if b.Text() != "newer" {
		t.Errorf("Text() = %q, want %q", b.Text(), "newer")
	}
}

func TestRange(t *testing.T) {
	r := MakeRange(8, 3)

	if r.Start != 3 || r.Length != 5 {
		t.Errorf("MakeRange(8, 3) = %v, want [3,8)", r)
	}
	if r.End() != 8 {
		t.Errorf("End() = %d, want 8", r.End())
	}
	if !r.Contains(3) || r.Contains(8) {
		t.Error("Contains should be half-open")
	}
	if r.String() != "[3,8)" {
		t.Errorf("String() = %q", r.String())
	}
	if !NewRange(4, 0).IsEmpty() {
		t.Error("zero-length range should be empty")
	}
	if got := r.Shift(-3); got != NewRange(0, 5) {
		t.Errorf("Shift = %v", got)
	}
}
