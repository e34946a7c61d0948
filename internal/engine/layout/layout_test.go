package layout

import (
	"testing"
	"unicode/utf8"

	"github.com/dshills/textengine/internal/engine/buffer"
	"github.com/dshills/textengine/internal/engine/lines"
)

// unit measures every character as one unit wide.
var unit = lines.MeasureFunc(func(s string) float64 {
	return float64(utf8.RuneCountInString(s))
})

func texts(spans []Span) []string {
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = s.Text
	}
	return out
}

func TestLayoutFits(t *testing.T) {
	spans := Layout("short", Options{MaxWidth: 10, LineHeight: 12}, unit)

	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Text != "short" || spans[0].Rect.Width != 5 {
		t.Errorf("span = %+v", spans[0])
	}
}

func TestLayoutEmpty(t *testing.T) {
	spans := Layout("", Options{MaxWidth: 10}, unit)
	if len(spans) != 1 || spans[0].Text != "" {
		t.Errorf("spans = %+v, want one empty span", spans)
	}
}

func TestWrapAtStopCharacters(t *testing.T) {
	opts := Options{MaxWidth: 10, Policy: Wrap, FirstY: 100, LineHeight: 12, X: 5}
	spans := Layout("the quick brown fox jumps", opts, unit)

	want := []string{"the quick ", "brown fox ", "jumps"}
	got := texts(spans)
	if len(got) != len(want) {
		t.Fatalf("spans = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d = %q, want %q", i, got[i], want[i])
		}
	}

	for k, s := range spans {
		if wantY := 100 + float64(k)*12; s.Rect.Y != wantY {
			t.Errorf("span %d Y = %v, want %v", k, s.Rect.Y, wantY)
		}
		if s.Rect.X != 5 || s.Rect.Height != 12 {
			t.Errorf("span %d rect = %+v", k, s.Rect)
		}
	}
	if spans[1].Start != 10 || spans[1].End != 20 {
		t.Errorf("span 1 covers [%d,%d), want [10,20)", spans[1].Start, spans[1].End)
	}
}

func TestWrapHardBreak(t *testing.T) {
	spans := Layout("abcdefghijkl", Options{MaxWidth: 5, Policy: Wrap}, unit)

	want := []string{"abcde", "fghij", "kl"}
	got := texts(spans)
	if len(got) != len(want) {
		t.Fatalf("spans = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWrapAtLeastOneCharacterPerRow(t *testing.T) {
	wide := lines.MeasureFunc(func(s string) float64 {
		return 10 * float64(utf8.RuneCountInString(s))
	})
	spans := Layout("abc", Options{MaxWidth: 4, Policy: Wrap}, wide)

	if len(spans) != 3 {
		t.Fatalf("got %d spans, want 3: %q", len(spans), texts(spans))
	}
}

func TestWrapCoversWholeText(t *testing.T) {
	text := "Lorem ipsum, dolor sit-amet; consectetur adipiscing elit."
	for width := 1.0; width <= 20; width++ {
		spans := Layout(text, Options{MaxWidth: width, Policy: Wrap}, unit)
		next := 0
		joined := ""
		for _, s := range spans {
			if s.Start != next {
				t.Fatalf("width %v: span starts at %d, want %d", width, s.Start, next)
			}
			if s.End <= s.Start {
				t.Fatalf("width %v: empty span", width)
			}
			next = s.End
			joined += s.Text
		}
		if joined != text {
			t.Fatalf("width %v: joined %q", width, joined)
		}
	}
}

func TestTruncate(t *testing.T) {
	spans := Layout("Hello, World", Options{MaxWidth: 8, Policy: Truncate}, unit)

	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Text != "Hello, "+Ellipsis {
		t.Errorf("text = %q", spans[0].Text)
	}
	if spans[0].Rect.Width > 8 {
		t.Errorf("width %v exceeds max", spans[0].Rect.Width)
	}
	if spans[0].End != 12 {
		t.Errorf("truncated span should cover the whole line, End = %d", spans[0].End)
	}
}

func TestClip(t *testing.T) {
	spans := Layout("Hello, World", Options{MaxWidth: 8, Policy: Clip}, unit)

	if len(spans) != 1 || spans[0].Text != "Hello, World" {
		t.Fatalf("spans = %+v", spans)
	}
	if spans[0].Rect.Width != 8 {
		t.Errorf("width = %v, want 8", spans[0].Rect.Width)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want Policy
		err  bool
	}{
		{"wrap", Wrap, false},
		{"Truncate", Truncate, false},
		{" clip ", Clip, false},
		{"", Wrap, false},
		{"scroll", Wrap, true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParsePolicy(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if Truncate.String() != "truncate" {
		t.Errorf("String() = %q", Truncate.String())
	}
}

func TestDocument(t *testing.T) {
	buf := buffer.NewFromString("one two three\nfour")
	idx := lines.New()
	idx.Rebuild(buf)

	rows := Document(idx, Options{MaxWidth: 8, Policy: Wrap, LineHeight: 10}, unit)

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	wantLines := []int{0, 0, 1}
	for i, r := range rows {
		if r.Line != wantLines[i] {
			t.Errorf("row %d line = %d, want %d", i, r.Line, wantLines[i])
		}
		if r.Rect.Y != float64(i)*10 {
			t.Errorf("row %d Y = %v, want %v", i, r.Rect.Y, float64(i)*10)
		}
	}
}
