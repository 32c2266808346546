// SPDX-License-Identifier: Unlicense OR MIT

package rowsview

import (
	"cmp"
	"image"
	"slices"
	"time"

	"github.com/rowsview/rowsview/rows"
)

// insertion is an item on its way into the store.
type insertion[T comparable] struct {
	at   rows.Coordinate
	item T
}

// transfer is a stored pair on its way to a new coordinate.
type transfer[T comparable] struct {
	from, to rows.Coordinate
	item     T
	e        *entry[T]
}

// ReloadData discards every item and cell and rebuilds both rows from the
// data source. The Bottom row is queried only if the data source asks
// for it.
func (v *View[T]) ReloadData() {
	const name = "ReloadData"
	v.enter(name)
	defer v.leave()
	v.requireSource(name)
	v.requireDelegate(name)

	v.store.Clear()
	v.display = nil

	populate := []rows.Row{rows.Top}
	if v.source.ShouldPopulateBottomRow() {
		populate = append(populate, rows.Bottom)
	}
	for _, r := range populate {
		n := v.source.NumItems(r)
		if n < 0 {
			violate(name, "data source reports %d items in %v row", n, r)
		}
		for i := 0; i < n; i++ {
			c := rows.At(i, r)
			item := v.source.Item(c)
			e := v.cellFor(name, c)
			e.cell.SetItem(item)
			v.store.Append(r, item, e)
			v.attach(e, c)
		}
	}
	v.vanish(name)
	v.layoutRows(rows.Pair[bool]{true, true}, nil)
	v.dirty = true
}

// InsertItems inserts the items the data source reports at coords. Each
// row's indices are applied in ascending order, each one relative to the
// row as grown by the insertions before it.
//
// Existing cells make room, and the new cells fade in once they have.
// New cells fade in at once when the view was empty.
func (v *View[T]) InsertItems(coords []rows.Coordinate, animated bool) {
	const name = "InsertItems"
	v.enter(name)
	defer v.leave()
	v.requireSource(name)
	v.requireDelegate(name)
	v.checkInsertions(name, coords, rows.Pair[int]{v.store.Len(rows.Top), v.store.Len(rows.Bottom)})

	ins := make([]insertion[T], len(coords))
	for i, c := range coords {
		ins[i] = insertion[T]{at: c, item: v.source.Item(c)}
	}
	slices.SortStableFunc(ins, func(a, b insertion[T]) int {
		return cmp.Or(cmp.Compare(a.at.Row, b.at.Row), cmp.Compare(a.at.Index, b.at.Index))
	})

	wasEmpty := v.store.Empty()
	bottomWasPresent := v.store.Present(rows.Bottom)
	var items rows.Pair[[]T]
	var at rows.Pair[[]int]
	for _, in := range ins {
		r := in.at.Row
		at[r] = append(at[r], in.at.Index)
		items[r] = append(items[r], in.item)
	}
	for _, r := range rows.All {
		v.store.InsertItems(r, at[r], items[r])
	}

	groups := rows.Group(coords)
	var touched rows.Pair[bool]
	for _, r := range rows.All {
		touched[r] = len(groups[r]) > 0
	}
	affected := v.affected(touched, bottomWasPresent, false)

	// Split the final frames into the frames existing cells move to and
	// the frames new cells appear at.
	var room, slots rows.Pair[[]image.Rectangle]
	for _, r := range rows.All {
		if affected[r] {
			room[r], slots[r] = rows.Remove(v.frames(name, r), groups[r])
		}
	}

	now := v.now()
	tx := v.transaction(now, animated)
	if !wasEmpty {
		for _, r := range rows.All {
			if !affected[r] {
				continue
			}
			for i, e := range v.store.Cells(r) {
				e.moveTo(room[r][i], tx)
			}
		}
	}

	delay := v.duration()
	if wasEmpty {
		delay = 0
	}
	var k rows.Pair[int]
	for _, in := range ins {
		r := in.at.Row
		e := v.cellFor(name, in.at)
		e.cell.SetItem(in.item)
		v.store.InsertCell(in.at, e)
		v.attach(e, in.at)
		e.frame = slots[r][k[r]]
		k[r]++
		if tx != nil {
			e.alpha = 0
			e.fadeTo(1, delay, tx)
		}
	}

	// Inserting into Bottom of an empty view leaves Top empty.
	if v.vanish(name) {
		v.layoutRows(v.affected(touched, bottomWasPresent, true), tx)
	}
}

// RemoveItems removes the items at coords. Removed cells fade out and are
// detached; only then do the remaining cells close the gaps.
func (v *View[T]) RemoveItems(coords []rows.Coordinate, animated bool) {
	const name = "RemoveItems"
	v.enter(name)
	defer v.leave()
	v.checkExisting(name, coords)

	bottomWasPresent := v.store.Present(rows.Bottom)
	groups := rows.Group(coords)
	var touched rows.Pair[bool]
	var removed []*entry[T]
	for _, r := range rows.All {
		if len(groups[r]) == 0 {
			continue
		}
		touched[r] = true
		_, cells := v.store.Remove(r, groups[r])
		removed = append(removed, cells...)
	}
	vanished := v.vanish(name)
	affected := v.affected(touched, bottomWasPresent, vanished)

	reflow := func(at time.Time) {
		for _, e := range removed {
			v.detach(e)
		}
		v.layoutRows(affected, v.transaction(at, animated))
	}
	now := v.now()
	if !animated {
		reflow(now)
		return
	}
	tx := v.transaction(now, true)
	for _, e := range removed {
		e.fadeTo(0, 0, tx)
	}
	v.schedule(tx.End(0), reflow)
}

// MoveItems moves the items at from to the coordinates at the same
// positions in to. Sources are removed in descending index order, then
// destinations are filled in ascending index order.
func (v *View[T]) MoveItems(from, to []rows.Coordinate, animated bool) {
	const name = "MoveItems"
	v.enter(name)
	defer v.leave()
	if len(from) != len(to) {
		violate(name, "%d source and %d destination coordinates", len(from), len(to))
	}
	v.checkExisting(name, from)
	remaining := rows.Pair[int]{v.store.Len(rows.Top), v.store.Len(rows.Bottom)}
	for _, c := range from {
		remaining[c.Row]--
	}
	v.checkInsertions(name, to, remaining)

	bottomWasPresent := v.store.Present(rows.Bottom)
	ts := make([]*transfer[T], len(from))
	for i := range from {
		ts[i] = &transfer[T]{from: from[i], to: to[i]}
	}
	byFrom := make(map[rows.Coordinate]*transfer[T], len(ts))
	for _, t := range ts {
		byFrom[t.from] = t
	}
	sources := rows.Group(from)
	for _, r := range rows.All {
		for _, i := range rows.Descending(sources[r]) {
			t := byFrom[rows.At(i, r)]
			t.item, t.e = v.store.RemoveAt(t.from)
			v.detach(t.e)
		}
	}
	slices.SortStableFunc(ts, func(a, b *transfer[T]) int {
		return cmp.Compare(a.to.Index, b.to.Index)
	})
	var touched rows.Pair[bool]
	for _, t := range ts {
		v.store.Insert(t.to, t.item, t.e)
		v.attach(t.e, t.to)
		touched[t.from.Row] = true
		touched[t.to.Row] = true
	}
	vanished := v.vanish(name)
	affected := v.affected(touched, bottomWasPresent, vanished)
	v.layoutRows(affected, v.transaction(v.now(), animated))
}

// ReacquireCells replaces the cells at coords with fresh ones from the
// delegate. The new cells take over the frames of the old ones.
func (v *View[T]) ReacquireCells(coords []rows.Coordinate) {
	const name = "ReacquireCells"
	v.enter(name)
	defer v.leave()
	v.requireDelegate(name)
	v.checkExisting(name, coords)

	groups := rows.Group(coords)
	for _, r := range rows.All {
		for _, i := range rows.Descending(groups[r]) {
			v.reacquire(name, rows.At(i, r))
		}
	}
}

// reacquire swaps the cell at c for a fresh one in the same frame and
// paint position.
func (v *View[T]) reacquire(name string, c rows.Coordinate) {
	old := v.store.Cell(c)
	e := v.cellFor(name, c)
	e.cell.SetItem(v.store.Item(c))
	e.frame = old.frame
	e.alpha = old.alpha
	v.store.ReplaceCell(c, e)
	if at := v.indexOf(old); at >= 0 {
		v.display[at] = e
	} else {
		v.attach(e, c)
	}
}

// ReloadItems refetches the items at coords and hands them to the
// existing cells. Nothing moves.
func (v *View[T]) ReloadItems(coords []rows.Coordinate) {
	const name = "ReloadItems"
	v.enter(name)
	defer v.leave()
	v.requireSource(name)
	v.checkExisting(name, coords)

	for _, c := range coords {
		item := v.source.Item(c)
		v.store.SetItem(c, item)
		v.store.Cell(c).cell.SetItem(item)
	}
}
