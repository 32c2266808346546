// SPDX-License-Identifier: Unlicense OR MIT

package rowsview

import (
	"image"
	"slices"
	"testing"
	"time"

	"gioui.org/layout"
	"gioui.org/op"

	"github.com/rowsview/rowsview/geometry"
	"github.com/rowsview/rowsview/rows"
)

var container = image.Pt(300, 300)

type peer struct {
	name string
}

// model is a data source backed by two slices.
type model struct {
	rows        rows.Pair[[]*peer]
	noBottom    bool
	promote     []int
	vanishCalls int
}

type cell struct {
	id    int
	item  *peer
	drawn int
}

type factory struct {
	made int
	last *cell
}

type clock struct {
	t time.Time
}

func (m *model) ShouldPopulateBottomRow() bool { return !m.noBottom }

func (m *model) NumItems(r rows.Row) int { return len(m.rows[r]) }

func (m *model) Item(c rows.Coordinate) *peer { return m.rows[c.Row][c.Index] }

func (m *model) ResolveTopRowVanish() []int {
	m.vanishCalls++
	return m.promote
}

func (m *model) insert(c rows.Coordinate, name string) *peer {
	p := &peer{name: name}
	m.rows[c.Row] = slices.Insert(m.rows[c.Row], c.Index, p)
	return p
}

func (m *model) remove(c rows.Coordinate) {
	m.rows[c.Row] = slices.Delete(m.rows[c.Row], c.Index, c.Index+1)
}

func (c *cell) SetItem(p *peer) { c.item = p }

func (c *cell) Item() *peer { return c.item }

func (c *cell) Layout(gtx layout.Context) layout.Dimensions {
	c.drawn++
	return layout.Dimensions{Size: gtx.Constraints.Min}
}

func (f *factory) CellFor(c rows.Coordinate) Cell[*peer] {
	f.made++
	f.last = &cell{id: f.made}
	return f.last
}

func (c *clock) now() time.Time { return c.t }

func peers(names ...string) []*peer {
	ps := make([]*peer, len(names))
	for i, n := range names {
		ps[i] = &peer{name: n}
	}
	return ps
}

// newView returns a view reloaded from a model with the given rows and
// laid out once in a 300x300 container.
func newView(t *testing.T, top, bottom []string) (*View[*peer], *model, *clock) {
	t.Helper()
	m := &model{rows: rows.Pair[[]*peer]{peers(top...), peers(bottom...)}}
	clk := &clock{t: time.Unix(1000, 0)}
	v := New[*peer]()
	v.Now = clk.now
	v.SetDataSource(m)
	v.SetDelegate(new(factory))
	v.ReloadData()
	lay(v, clk.t)
	mustHold(t, v)
	return v, m, clk
}

func lay(v *View[*peer], now time.Time) layout.Dimensions {
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Constraints: layout.Exact(container),
		Now:         now,
	}
	return v.Layout(gtx)
}

// mustHold checks the pairing and density invariants.
func mustHold(t *testing.T, v *View[*peer]) {
	t.Helper()
	if err := v.Check(); err != nil {
		t.Fatal(err)
	}
	if v.NumItems(rows.Top) == 0 && v.NumItems(rows.Bottom) > 0 {
		t.Fatalf("top row empty with %d bottom items", v.NumItems(rows.Bottom))
	}
}

func names(v *View[*peer], r rows.Row) []string {
	var ns []string
	for i := 0; i < v.NumItems(r); i++ {
		ns = append(ns, v.Item(rows.At(i, r)).name)
	}
	return ns
}

func frames(v *View[*peer], r rows.Row) []image.Rectangle {
	var fs []image.Rectangle
	for i := 0; i < v.NumItems(r); i++ {
		fs = append(fs, v.Frame(rows.At(i, r)))
	}
	return fs
}

func want(n int, r rows.Row, sibling bool) []image.Rectangle {
	return geometry.NewSeparated().Frames(n, r, sibling, image.Rectangle{Max: container})
}

// attachedNames lists the attached cells in paint order.
func attachedNames(v *View[*peer]) []string {
	var ns []string
	for _, c := range v.Attached() {
		ns = append(ns, c.Item().name)
	}
	return ns
}

func mustViolate(t *testing.T, f func()) *ContractError {
	t.Helper()
	var err *ContractError
	func() {
		defer func() {
			r := recover()
			e, ok := r.(*ContractError)
			if !ok {
				t.Fatalf("got panic %v; want *ContractError", r)
			}
			err = e
		}()
		f()
	}()
	return err
}
