// SPDX-License-Identifier: Unlicense OR MIT

/*
Package rowsview implements a two-row item layout widget.

A View keeps an ordered collection of cells in two rows, Top and Bottom,
each cell presenting one item supplied by a DataSource. Cells come from
a Delegate and are placed by a geometry.Strategy. Structural edits
(insert, remove, move) keep the items and cells of every row in lockstep
and animate the cells to their new places.

When an edit leaves Top empty while Bottom still has items, the View
asks the data source which Bottom items to promote into Top. The View
supplies the mechanism; the policy belongs to the data source.

All methods must be called from the goroutine that runs the window's
event loop. Operations mutate the store immediately; only the drawing
of frames and opacity is animated, and it settles in Layout.
*/
package rowsview

import (
	"image"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/rowsview/rowsview/anim"
	"github.com/rowsview/rowsview/geometry"
	"github.com/rowsview/rowsview/internal/store"
	"github.com/rowsview/rowsview/rows"
)

// View is a two-row layout of cells.
type View[T comparable] struct {
	// Duration of animated transactions. Zero means anim.DefaultDuration.
	Duration time.Duration
	// Now returns the time new transactions begin at. Nil means time.Now.
	Now func() time.Time

	source   DataSource[T]
	delegate Delegate[T]
	strategy geometry.Strategy

	store   store.Store[T, *entry[T]]
	display []*entry[T]
	pending []completion
	bounds  image.Rectangle
	dirty   bool
	// busy names the operation in progress.
	busy string
}

// New returns a View with the Separated strategy.
func New[T comparable]() *View[T] {
	return &View[T]{strategy: geometry.NewSeparated()}
}

func (v *View[T]) SetDataSource(s DataSource[T]) { v.source = s }

func (v *View[T]) SetDelegate(d Delegate[T]) { v.delegate = d }

// SetStrategy swaps the geometry strategy. Cells are placed by the new
// strategy on the next Layout.
func (v *View[T]) SetStrategy(s geometry.Strategy) {
	v.strategy = s
	v.dirty = true
}

func (v *View[T]) Strategy() geometry.Strategy { return v.strategy }

// NumItems returns the number of items in row.
func (v *View[T]) NumItems(row rows.Row) int {
	return v.store.Len(row)
}

// Item returns the item at c.
func (v *View[T]) Item(c rows.Coordinate) T {
	v.checkStored("Item", c)
	return v.store.Item(c)
}

// Cell returns the cell at c.
func (v *View[T]) Cell(c rows.Coordinate) Cell[T] {
	v.checkStored("Cell", c)
	return v.store.Cell(c).cell
}

// Frame returns the committed frame of the cell at c.
func (v *View[T]) Frame(c rows.Coordinate) image.Rectangle {
	v.checkStored("Frame", c)
	return v.store.Cell(c).frame
}

// Alpha returns the committed opacity of the cell at c.
func (v *View[T]) Alpha(c rows.Coordinate) float32 {
	v.checkStored("Alpha", c)
	return v.store.Cell(c).alpha
}

// Attached returns the displayed cells in paint order, including removed
// cells that are still fading out.
func (v *View[T]) Attached() []Cell[T] {
	cells := make([]Cell[T], len(v.display))
	for i, e := range v.display {
		cells[i] = e.cell
	}
	return cells
}

// Animating reports whether any transition or deferred completion is
// outstanding.
func (v *View[T]) Animating() bool {
	if len(v.pending) > 0 {
		return true
	}
	for _, e := range v.display {
		if e.move != nil || e.fade != nil {
			return true
		}
	}
	return false
}

// Bounds returns the container bounds of the most recent Layout.
func (v *View[T]) Bounds() image.Rectangle { return v.bounds }

// Check verifies that every row pairs each item with a cell presenting
// it.
func (v *View[T]) Check() error {
	return v.store.Check(func(e *entry[T]) T { return e.cell.Item() })
}

// Layout settles transitions, places cells when the container or the
// strategy changed and draws the attached cells.
func (v *View[T]) Layout(gtx layout.Context) layout.Dimensions {
	now := gtx.Now
	if now.IsZero() {
		now = v.now()
	}
	v.settle(now)
	if b := (image.Rectangle{Max: gtx.Constraints.Max}); b != v.bounds || v.dirty {
		v.bounds = b
		v.dirty = false
		v.layoutRows(rows.Pair[bool]{true, true}, nil)
	}
	animating := len(v.pending) > 0
	for _, e := range v.display {
		frame, alpha, active := e.presentation(now)
		animating = animating || active
		if alpha <= 0 || frame.Empty() {
			continue
		}
		v.draw(gtx, e.cell, frame, alpha)
	}
	if animating {
		gtx.Execute(op.InvalidateCmd{})
	}
	return layout.Dimensions{Size: gtx.Constraints.Max}
}

func (v *View[T]) draw(gtx layout.Context, c Cell[T], frame image.Rectangle, alpha float32) {
	defer op.Offset(frame.Min).Push(gtx.Ops).Pop()
	size := frame.Size()
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	if alpha < 1 {
		defer paint.PushOpacity(gtx.Ops, alpha).Pop()
	}
	gtx.Constraints = layout.Exact(size)
	c.Layout(gtx)
}

func (v *View[T]) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

func (v *View[T]) duration() time.Duration {
	if v.Duration > 0 {
		return v.Duration
	}
	return anim.DefaultDuration
}

// transaction begins a transaction at t if animated, or returns nil.
func (v *View[T]) transaction(t time.Time, animated bool) *anim.Transaction {
	if !animated {
		return nil
	}
	return &anim.Transaction{Begin: t, Duration: v.duration()}
}

// frames computes the frames of row r at its current item count.
func (v *View[T]) frames(name string, r rows.Row) []image.Rectangle {
	n := v.store.Len(r)
	if v.strategy == nil {
		return make([]image.Rectangle, n)
	}
	frames := v.strategy.Frames(n, r, v.store.Present(r.Other()), v.bounds)
	if len(frames) != n {
		violate(name, "strategy returned %d frames for %d cells in %v row", len(frames), n, r)
	}
	return frames
}

// layoutRows places the cells of the affected rows, animating within tx
// if it is non-nil.
func (v *View[T]) layoutRows(affected rows.Pair[bool], tx *anim.Transaction) {
	for _, r := range rows.All {
		if !affected[r] {
			continue
		}
		frames := v.frames("layout", r)
		for i, e := range v.store.Cells(r) {
			e.moveTo(frames[i], tx)
		}
	}
}

// enter marks op as in progress and fast-forwards transitions left over
// from earlier operations.
func (v *View[T]) enter(name string) {
	if v.busy != "" {
		violate(name, "called while %s is in progress", v.busy)
	}
	v.busy = name
	v.finish()
}

func (v *View[T]) leave() {
	v.busy = ""
}

func (v *View[T]) requireSource(name string) {
	if v.source == nil {
		violate(name, "data source not set")
	}
}

func (v *View[T]) requireDelegate(name string) {
	if v.delegate == nil {
		violate(name, "delegate not set")
	}
}

func (v *View[T]) cellFor(name string, c rows.Coordinate) *entry[T] {
	v.requireDelegate(name)
	cell := v.delegate.CellFor(c)
	if cell == nil {
		violate(name, "delegate returned no cell for %v", c)
	}
	return newEntry(cell, c.Row)
}

// vanish promotes Bottom items into an emptied Top row. It reports
// whether a promotion happened.
func (v *View[T]) vanish(name string) bool {
	if v.store.Present(rows.Top) || !v.store.Present(rows.Bottom) {
		return false
	}
	v.requireSource(name)
	indices := v.source.ResolveTopRowVanish()
	if len(indices) == 0 {
		violate(name, "top row vanished but the data source promoted no bottom items")
	}
	v.checkUnique(name, rows.Bottom, indices, v.store.Len(rows.Bottom))
	v.store.Promote(indices)
	v.restack(rows.Top)
	return true
}

// affected returns the rows whose geometry changed after an edit
// touching the given rows.
func (v *View[T]) affected(touched rows.Pair[bool], bottomWasPresent, vanished bool) rows.Pair[bool] {
	bottom := v.store.Present(rows.Bottom)
	if vanished {
		return rows.Pair[bool]{rows.Top: true, rows.Bottom: bottom}
	}
	a := touched
	// Top geometry depends on whether Bottom is present.
	if bottom != bottomWasPresent {
		a[rows.Top] = true
	}
	if !bottom {
		a[rows.Bottom] = false
	}
	return a
}

func (v *View[T]) checkIndex(name string, c rows.Coordinate, n int) {
	if c.Row != rows.Top && c.Row != rows.Bottom {
		violate(name, "invalid row in %v", c)
	}
	if c.Index < 0 || c.Index >= n {
		violate(name, "%v out of range [0, %d)", c, n)
	}
}

func (v *View[T]) checkStored(name string, c rows.Coordinate) {
	if c.Row != rows.Top && c.Row != rows.Bottom {
		violate(name, "invalid row in %v", c)
	}
	v.checkIndex(name, c, v.store.Len(c.Row))
}

// checkUnique verifies indices into a row of n items.
func (v *View[T]) checkUnique(name string, r rows.Row, indices []int, n int) {
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		v.checkIndex(name, rows.At(i, r), n)
		if seen[i] {
			violate(name, "duplicate %v", rows.At(i, r))
		}
		seen[i] = true
	}
}

// checkExisting verifies coordinates of stored items.
func (v *View[T]) checkExisting(name string, cs []rows.Coordinate) {
	for _, c := range cs {
		if c.Row != rows.Top && c.Row != rows.Bottom {
			violate(name, "invalid row in %v", c)
		}
	}
	groups := rows.Group(cs)
	for _, r := range rows.All {
		v.checkUnique(name, r, groups[r], v.store.Len(r))
	}
}

// checkInsertions verifies that each row's insertion indices, applied in
// ascending order, stay within the growing row of initial length n.
func (v *View[T]) checkInsertions(name string, cs []rows.Coordinate, n rows.Pair[int]) {
	for _, c := range cs {
		if c.Row != rows.Top && c.Row != rows.Bottom {
			violate(name, "invalid row in %v", c)
		}
	}
	groups := rows.Group(cs)
	for _, r := range rows.All {
		prev := -1
		for k, i := range rows.Ascending(groups[r]) {
			if i == prev {
				violate(name, "duplicate %v", rows.At(i, r))
			}
			if i < 0 || i > n[r]+k {
				violate(name, "%v out of range [0, %d]", rows.At(i, r), n[r]+k)
			}
			prev = i
		}
	}
}
