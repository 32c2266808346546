// SPDX-License-Identifier: Unlicense OR MIT

package rowsview

import (
	"weak"

	"gioui.org/layout"

	"github.com/rowsview/rowsview/rows"
)

type weakSource[T comparable, S any, P interface {
	*S
	DataSource[T]
}] struct {
	p weak.Pointer[S]
}

type weakDelegate[T comparable, S any, P interface {
	*S
	Delegate[T]
}] struct {
	p        weak.Pointer[S]
	fallback func() Cell[T]
}

// blank is a cell that draws nothing.
type blank[T comparable] struct {
	item T
}

// WeakDataSource returns a DataSource that refers to src without keeping
// it alive. Once src is collected the result reports no items, no Bottom
// row and an empty vanish resolution.
func WeakDataSource[T comparable, S any, P interface {
	*S
	DataSource[T]
}](src P) DataSource[T] {
	return weakSource[T, S, P]{p: weak.Make((*S)(src))}
}

// WeakDelegate returns a Delegate that refers to d without keeping it
// alive. Once d is collected, cells come from fallback, or draw nothing
// if fallback is nil.
func WeakDelegate[T comparable, S any, P interface {
	*S
	Delegate[T]
}](d P, fallback func() Cell[T]) Delegate[T] {
	return weakDelegate[T, S, P]{p: weak.Make((*S)(d)), fallback: fallback}
}

func (w weakSource[T, S, P]) ShouldPopulateBottomRow() bool {
	if s := w.p.Value(); s != nil {
		return P(s).ShouldPopulateBottomRow()
	}
	return false
}

func (w weakSource[T, S, P]) NumItems(row rows.Row) int {
	if s := w.p.Value(); s != nil {
		return P(s).NumItems(row)
	}
	return 0
}

func (w weakSource[T, S, P]) Item(c rows.Coordinate) T {
	if s := w.p.Value(); s != nil {
		return P(s).Item(c)
	}
	var zero T
	return zero
}

func (w weakSource[T, S, P]) ResolveTopRowVanish() []int {
	if s := w.p.Value(); s != nil {
		return P(s).ResolveTopRowVanish()
	}
	return nil
}

func (w weakDelegate[T, S, P]) CellFor(c rows.Coordinate) Cell[T] {
	if d := w.p.Value(); d != nil {
		return P(d).CellFor(c)
	}
	if w.fallback != nil {
		return w.fallback()
	}
	return new(blank[T])
}

func (b *blank[T]) SetItem(item T) { b.item = item }

func (b *blank[T]) Item() T { return b.item }

func (b *blank[T]) Layout(gtx layout.Context) layout.Dimensions {
	return layout.Dimensions{Size: gtx.Constraints.Min}
}
