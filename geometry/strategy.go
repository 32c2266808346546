// SPDX-License-Identifier: Unlicense OR MIT

package geometry

import (
	"image"

	"github.com/rowsview/rowsview/rows"
)

// Separated stacks the Top band above the Bottom band. When Bottom is
// absent Top occupies the whole container.
type Separated struct {
	// Proportion is the share of the container height given to Top.
	Proportion float32
	Bands      rows.Pair[Band]
}

// Overlapping lets Top span the whole container and draws Bottom in its
// band on top of it, aligned to the leading edge.
type Overlapping struct {
	Proportion float32
	Bands      rows.Pair[Band]
}

// NewSeparated returns a Separated strategy with the default proportion
// and bands.
func NewSeparated() Separated {
	return Separated{
		Proportion: DefaultProportion,
		Bands:      DefaultBands(),
	}
}

// NewOverlapping returns an Overlapping strategy with the default
// proportion and a leading Bottom band.
func NewOverlapping() Overlapping {
	bands := DefaultBands()
	bands[rows.Bottom].Align = Leading
	return Overlapping{
		Proportion: DefaultProportion,
		Bands:      bands,
	}
}

func (s Separated) Frames(n int, row rows.Row, siblingPresent bool, bounds image.Rectangle) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	all := toFrect(bounds)
	area := all
	if row == rows.Bottom || siblingPresent {
		top, bottom := all.split(s.Proportion)
		area = top
		if row == rows.Bottom {
			area = bottom
		}
	}
	return distribute(n, area, s.Bands[row], bounds)
}

func (s Overlapping) Frames(n int, row rows.Row, siblingPresent bool, bounds image.Rectangle) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	area := toFrect(bounds)
	if row == rows.Bottom {
		_, area = area.split(s.Proportion)
	}
	return distribute(n, area, s.Bands[row], bounds)
}
