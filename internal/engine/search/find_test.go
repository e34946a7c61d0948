package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/textengine/internal/engine/buffer"
)

func TestEmptyNeedleNeverMatches(t *testing.T) {
	src := buffer.NewFromString("anything")
	f := New("", 0)

	assert.True(t, f.IsEmpty())
	_, ok := f.Find(src, true, 0)
	assert.False(t, ok)
	_, ok = f.Find(src, false, 0)
	assert.False(t, ok)
	assert.Empty(t, f.FindAll(src))
}

func TestNeedleLongerThanBuffer(t *testing.T) {
	src := buffer.NewFromString("ab")
	f := New("abc", CaseSensitive)

	_, ok := f.Find(src, true, 0)
	assert.False(t, ok)
}

func TestFindCaseInsensitiveWrapsAround(t *testing.T) {
	src := buffer.NewFromString("Hello Hello")
	f := New("hello", 0)

	r, ok := f.Find(src, true, 0)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(0, 5), r)

	r, ok = f.Find(src, true, r.End())
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(6, 5), r)

	r, ok = f.Find(src, true, r.End())
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(0, 5), r)
}

func TestFindCaseSensitive(t *testing.T) {
	src := buffer.NewFromString("Hello hello")
	f := New("hello", CaseSensitive)

	r, ok := f.Find(src, true, 0)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(6, 5), r)
}

func TestFindWholeWords(t *testing.T) {
	src := buffer.NewFromString("cat category cat")
	f := New("cat", WholeWords|CaseSensitive)

	r, ok := f.Find(src, true, 0)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(0, 3), r)

	r, ok = f.Find(src, true, r.End())
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(13, 3), r, "must skip the prefix of category")
	assert.Equal(t, "cat", string(src.SliceRange(r)))
}

func TestFindWholeWordsNoValidMatchTerminates(t *testing.T) {
	src := buffer.NewFromString("concatenate scatter")
	f := New("cat", WholeWords)

	_, ok := f.Find(src, true, 5)
	assert.False(t, ok)
	_, ok = f.Find(src, false, 5)
	assert.False(t, ok)
}

func TestFindBackward(t *testing.T) {
	src := buffer.NewFromString("ab ab ab")
	f := New("ab", CaseSensitive)

	// Selection [6,8): backward starts at 6-2 = 4.
	r, ok := f.Find(src, false, 4)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(3, 2), r)

	r, ok = f.Find(src, false, r.Start-2)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(0, 2), r)

	// Negative start wraps to the last candidate.
	r, ok = f.Find(src, false, r.Start-2)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(6, 2), r)
}

func TestFindFromPastEndWraps(t *testing.T) {
	src := buffer.NewFromString("xx needle")
	f := New("needle", 0)

	r, ok := f.Find(src, true, 100)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(3, 6), r)
}

func TestFindUnicodeFolding(t *testing.T) {
	src := buffer.NewFromString("Straße ΣΊΣΥΦΟΣ café")

	r, ok := New("STRASSE", 0).Find(src, true, 0)
	assert.False(t, ok, "folding must not change match length: %v", r)

	r, ok = New("σίσυφος", 0).Find(src, true, 0)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(7, 7), r)

	r, ok = New("CAFÉ", 0).Find(src, true, 0)
	require.True(t, ok)
	assert.Equal(t, buffer.NewRange(15, 4), r)
}

// TestFindTotality checks that repeated forward finds cycle through every
// non-overlapping occurrence exactly once before repeating.
func TestFindTotality(t *testing.T) {
	tests := []struct {
		text   string
		needle string
		opts   Options
	}{
		{"a-b-a-b-a", "a", CaseSensitive},
		{"The the THE tHe", "the", 0},
		{"x", "x", 0},
		{"one two one two one", "one", WholeWords},
	}

	for _, tt := range tests {
		src := buffer.NewFromString(tt.text)
		f := New(tt.needle, tt.opts)
		all := f.FindAll(src)
		require.NotEmpty(t, all, tt.text)

		seen := map[int]bool{}
		from := 0
		for i := 0; i < len(all); i++ {
			r, ok := f.Find(src, true, from)
			require.True(t, ok)
			assert.False(t, seen[r.Start], "%q: %v visited twice", tt.text, r)
			seen[r.Start] = true
			from = r.End()
		}
		assert.Len(t, seen, len(all), tt.text)

		r, ok := f.Find(src, true, from)
		require.True(t, ok)
		assert.Equal(t, all[0], r, "%q: cycle should restart at the first match", tt.text)
	}
}

func TestOptions(t *testing.T) {
	f := New("x", CaseSensitive)

	assert.True(t, f.Options().Has(CaseSensitive))
	assert.False(t, f.Options().Has(WholeWords))

	f.SetOptions(CaseSensitive | WholeWords)
	assert.True(t, f.Options().Has(CaseSensitive|WholeWords))

	f.SetNeedle("y")
	assert.Equal(t, "y", f.Needle())
}
