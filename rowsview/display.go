// SPDX-License-Identifier: Unlicense OR MIT

package rowsview

import (
	"image"
	"slices"
	"time"

	"github.com/rowsview/rowsview/anim"
	"github.com/rowsview/rowsview/rows"
)

// entry is a cell together with its placement. The frame and alpha fields
// hold committed values; move and fade only drive what is drawn until
// they complete.
type entry[T comparable] struct {
	cell  Cell[T]
	row   rows.Row
	frame image.Rectangle
	alpha float32
	move  *moving
	fade  *fading
}

type moving struct {
	anim.Move
	tx anim.Transaction
}

type fading struct {
	anim.Fade
	tx anim.Transaction
}

// completion is work deferred until a transition ends.
type completion struct {
	at time.Time
	fn func(at time.Time)
}

func newEntry[T comparable](cell Cell[T], row rows.Row) *entry[T] {
	return &entry[T]{cell: cell, row: row, alpha: 1}
}

// presentation returns the frame and opacity to draw at now, and whether
// a transition is still running.
func (e *entry[T]) presentation(now time.Time) (image.Rectangle, float32, bool) {
	frame, alpha, active := e.frame, e.alpha, false
	if m := e.move; m != nil {
		if p, done := m.tx.Progress(now, 0); !done {
			frame = m.At(p)
			active = true
		}
	}
	if f := e.fade; f != nil {
		if p, done := f.tx.Progress(now, f.Delay); !done {
			alpha = f.At(p)
			active = true
		}
	}
	return frame, alpha, active
}

// settle drops completed transitions.
func (e *entry[T]) settle(now time.Time) {
	if e.move != nil {
		if _, done := e.move.tx.Progress(now, 0); done {
			e.move = nil
		}
	}
	if e.fade != nil {
		if _, done := e.fade.tx.Progress(now, e.fade.Delay); done {
			e.fade = nil
		}
	}
}

// moveTo commits frame and, if tx is non-nil, animates towards it from
// the currently drawn frame.
func (e *entry[T]) moveTo(frame image.Rectangle, tx *anim.Transaction) {
	if tx != nil {
		from, _, _ := e.presentation(tx.Begin)
		if from != frame {
			e.move = &moving{Move: anim.NewMove(from, frame), tx: *tx}
		}
	} else {
		e.move = nil
	}
	e.frame = frame
}

// fadeTo commits alpha and, if tx is non-nil, fades towards it after
// delay.
func (e *entry[T]) fadeTo(alpha float32, delay time.Duration, tx *anim.Transaction) {
	if tx != nil {
		_, from, _ := e.presentation(tx.Begin)
		e.fade = &fading{Fade: anim.NewFade(from, alpha, delay), tx: *tx}
	} else {
		e.fade = nil
	}
	e.alpha = alpha
}

// snap ends all transitions at their committed values.
func (e *entry[T]) snap() {
	e.move = nil
	e.fade = nil
}

func (v *View[T]) indexOf(e *entry[T]) int {
	return slices.Index(v.display, e)
}

// attach threads the entry stored at c into the paint order. Within a row
// higher indices paint above lower ones, and the Bottom row paints above
// the Top row.
func (v *View[T]) attach(e *entry[T], c rows.Coordinate) {
	e.row = c.Row
	cells := v.store.Cells(c.Row)
	if c.Index+1 < len(cells) {
		if at := v.indexOf(cells[c.Index+1]); at >= 0 {
			v.display = slices.Insert(v.display, at, e)
			return
		}
	}
	if c.Index > 0 {
		if at := v.indexOf(cells[c.Index-1]); at >= 0 {
			v.display = slices.Insert(v.display, at+1, e)
			return
		}
	}
	if c.Row == rows.Top {
		at := slices.IndexFunc(v.display, func(o *entry[T]) bool {
			return o.row == rows.Bottom
		})
		if at >= 0 {
			v.display = slices.Insert(v.display, at, e)
			return
		}
	}
	v.display = append(v.display, e)
}

func (v *View[T]) detach(e *entry[T]) {
	if at := v.indexOf(e); at >= 0 {
		v.display = slices.Delete(v.display, at, at+1)
	}
}

// restack detaches and reattaches every cell of r in index order.
func (v *View[T]) restack(r rows.Row) {
	cells := v.store.Cells(r)
	for _, e := range cells {
		v.detach(e)
	}
	for i, e := range cells {
		v.attach(e, rows.At(i, r))
	}
}

// schedule defers fn until at.
func (v *View[T]) schedule(at time.Time, fn func(at time.Time)) {
	v.pending = append(v.pending, completion{at: at, fn: fn})
	slices.SortStableFunc(v.pending, func(a, b completion) int {
		return a.at.Compare(b.at)
	})
}

// settle runs the completions due at now and drops finished transitions.
func (v *View[T]) settle(now time.Time) {
	for len(v.pending) > 0 && !v.pending[0].at.After(now) {
		c := v.pending[0]
		v.pending = v.pending[1:]
		c.fn(c.at)
	}
	for _, e := range v.display {
		e.settle(now)
	}
}

// finish fast-forwards every transition in flight.
func (v *View[T]) finish() {
	for len(v.pending) > 0 {
		c := v.pending[0]
		v.pending = v.pending[1:]
		c.fn(c.at)
	}
	for _, e := range v.display {
		e.snap()
	}
}
