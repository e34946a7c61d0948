// Package metrics provides font metric implementations for laying out
// editor text.
package metrics

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Font measures text and reports vertical metrics.
type Font interface {
	MeasureWidth(text string) float64
	Ascent() float64
	Descent() float64
	Leading() float64
}

// LineHeight returns the distance between consecutive baselines.
func LineHeight(f Font) float64 {
	return f.Ascent() + f.Descent() + f.Leading()
}

// Cell measures text in terminal cells. Wide East Asian characters and
// emoji take two cells, combining marks none.
type Cell struct{}

// MeasureWidth returns the number of cells text occupies.
func (Cell) MeasureWidth(text string) float64 {
	return float64(uniseg.StringWidth(text))
}

// Ascent is one cell.
func (Cell) Ascent() float64 { return 1 }

// Descent is zero; a cell row includes its descent.
func (Cell) Descent() float64 { return 0 }

// Leading is zero.
func (Cell) Leading() float64 { return 0 }

// Fixed gives every character the same advance.
type Fixed struct {
	Advance float64
	Asc     float64
	Desc    float64
	Lead    float64
}

// NewFixed creates a fixed pitch font with the given advance and line height.
func NewFixed(advance, height float64) Fixed {
	return Fixed{Advance: advance, Asc: height}
}

// MeasureWidth returns Advance times the number of characters.
func (f Fixed) MeasureWidth(text string) float64 {
	return f.Advance * float64(utf8.RuneCountInString(text))
}

// Ascent returns the configured ascent.
func (f Fixed) Ascent() float64 { return f.Asc }

// Descent returns the configured descent.
func (f Fixed) Descent() float64 { return f.Desc }

// Leading returns the configured leading.
func (f Fixed) Leading() float64 { return f.Lead }
