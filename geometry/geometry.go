// SPDX-License-Identifier: Unlicense OR MIT

/*
Package geometry computes cell rectangles for the rows of a rows view.

A Strategy maps a row, its cell count, whether the sibling row has any
cells and the container bounds to one rectangle per cell. Strategies are
pure: the same input always yields the same frames, and a zero count
yields no frames.

Two strategies are provided. Separated splits the container into a Top
band and a Bottom band. Overlapping lets Top span the whole container and
draws the Bottom band over it.
*/
package geometry

import (
	"image"
	"math"

	"gioui.org/f32"

	"github.com/rowsview/rowsview/rows"
)

// Strategy computes frames for the cells of a row.
type Strategy interface {
	// Frames returns n rectangles in index order.
	Frames(n int, row rows.Row, siblingPresent bool, bounds image.Rectangle) []image.Rectangle
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(n int, row rows.Row, siblingPresent bool, bounds image.Rectangle) []image.Rectangle

// Align positions the block of cells within its band.
type Align uint8

// Band is the spacing policy of a row.
type Band struct {
	// Margin insets the band on all sides, as a fraction of the
	// container height.
	Margin float32
	// Gap separates neighbouring cells, as a fraction of the container
	// width.
	Gap float32
	// MaxAspect caps cell width to MaxAspect times the band height.
	// Zero means uncapped.
	MaxAspect float32
	Align     Align
}

const (
	Center Align = iota
	Leading
)

// DefaultProportion is the share of the container height given to the
// Top band when both rows are present.
const DefaultProportion = 2.0 / 3.0

// frect is a sub-pixel rectangle.
type frect struct {
	Min, Max f32.Point
}

func (f StrategyFunc) Frames(n int, row rows.Row, siblingPresent bool, bounds image.Rectangle) []image.Rectangle {
	return f(n, row, siblingPresent, bounds)
}

// DefaultBands returns an edge-to-edge Top band and a Bottom band with
// 5% margins, 5% gaps and cells no wider than 16:9.
func DefaultBands() rows.Pair[Band] {
	return rows.Pair[Band]{
		rows.Top:    {},
		rows.Bottom: {Margin: 0.05, Gap: 0.05, MaxAspect: 16.0 / 9.0},
	}
}

func toFrect(r image.Rectangle) frect {
	return frect{
		Min: f32.Pt(float32(r.Min.X), float32(r.Min.Y)),
		Max: f32.Pt(float32(r.Max.X), float32(r.Max.Y)),
	}
}

func (r frect) Dx() float32 { return r.Max.X - r.Min.X }

func (r frect) Dy() float32 { return r.Max.Y - r.Min.Y }

// split divides r horizontally, giving the upper part p of its height.
func (r frect) split(p float32) (upper, lower frect) {
	y := r.Min.Y + r.Dy()*p
	upper, lower = r, r
	upper.Max.Y = y
	lower.Min.Y = y
	return upper, lower
}

func (r frect) inset(d float32) frect {
	r.Min = r.Min.Add(f32.Pt(d, d))
	r.Max = r.Max.Sub(f32.Pt(d, d))
	return r
}

// round aligns every edge to the nearest pixel.
func (r frect) round() image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(roundf(r.Min.X), roundf(r.Min.Y)),
		Max: image.Pt(roundf(r.Max.X), roundf(r.Max.Y)),
	}
}

func roundf(v float32) int {
	return int(math.Round(float64(v)))
}

// distribute lays out n equally sized cells within area.
func distribute(n int, area frect, b Band, bounds image.Rectangle) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	area = area.inset(float32(bounds.Dy()) * b.Margin)
	gap := float32(bounds.Dx()) * b.Gap
	w := (area.Dx() - float32(n-1)*gap) / float32(n)
	if b.MaxAspect > 0 {
		if limit := area.Dy() * b.MaxAspect; w > limit {
			w = limit
		}
	}
	if w < 0 {
		w = 0
	}
	x := area.Min.X
	if b.Align == Center {
		block := float32(n)*w + float32(n-1)*gap
		x += (area.Dx() - block) / 2
	}
	frames := make([]image.Rectangle, n)
	for i := range frames {
		frames[i] = frect{
			Min: f32.Pt(x, area.Min.Y),
			Max: f32.Pt(x+w, area.Max.Y),
		}.round()
		x += w + gap
	}
	return frames
}
