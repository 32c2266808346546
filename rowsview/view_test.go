// SPDX-License-Identifier: Unlicense OR MIT

package rowsview

import (
	"image"
	"slices"
	"testing"
	"time"

	"github.com/rowsview/rowsview/geometry"
	"github.com/rowsview/rowsview/rows"
)

func TestReloadData(t *testing.T) {
	v, _, _ := newView(t, []string{"1", "2", "3"}, nil)
	if got := v.NumItems(rows.Top); got != 3 {
		t.Errorf("top: got %d items; want 3", got)
	}
	if got := v.NumItems(rows.Bottom); got != 0 {
		t.Errorf("bottom: got %d items; want 0", got)
	}
	if got, want := frames(v, rows.Top), want(3, rows.Top, false); !slices.Equal(got, want) {
		t.Errorf("frames: got %v; want %v", got, want)
	}
}

func TestReloadDataSkipsBottom(t *testing.T) {
	m := &model{rows: rows.Pair[[]*peer]{peers("a"), peers("me")}, noBottom: true}
	v := New[*peer]()
	v.SetDataSource(m)
	v.SetDelegate(new(factory))
	v.ReloadData()
	if got := v.NumItems(rows.Bottom); got != 0 {
		t.Errorf("bottom: got %d items; want 0", got)
	}
}

func TestReloadDataIdempotent(t *testing.T) {
	v, _, clk := newView(t, []string{"1", "2", "3"}, []string{"me"})
	beforeTop, beforeBottom := names(v, rows.Top), names(v, rows.Bottom)
	beforeFrames := append(frames(v, rows.Top), frames(v, rows.Bottom)...)

	v.ReloadData()
	lay(v, clk.t)
	mustHold(t, v)
	if got := names(v, rows.Top); !slices.Equal(got, beforeTop) {
		t.Errorf("top: got %v; want %v", got, beforeTop)
	}
	if got := names(v, rows.Bottom); !slices.Equal(got, beforeBottom) {
		t.Errorf("bottom: got %v; want %v", got, beforeBottom)
	}
	if got := append(frames(v, rows.Top), frames(v, rows.Bottom)...); !slices.Equal(got, beforeFrames) {
		t.Errorf("frames: got %v; want %v", got, beforeFrames)
	}
	if got := len(v.Attached()); got != 4 {
		t.Errorf("got %d attached cells; want 4", got)
	}
}

func TestReloadDataRequiresCollaborators(t *testing.T) {
	v := New[*peer]()
	if err := mustViolate(t, v.ReloadData); err.Msg != "data source not set" {
		t.Errorf("got %q", err.Msg)
	}
	v.SetDataSource(new(model))
	if err := mustViolate(t, v.ReloadData); err.Msg != "delegate not set" {
		t.Errorf("got %q", err.Msg)
	}
}

func TestInsertIntoEmptyView(t *testing.T) {
	v, m, clk := newView(t, nil, nil)
	m.insert(rows.At(0, rows.Top), "a")
	v.InsertItems([]rows.Coordinate{rows.At(0, rows.Top)}, true)
	mustHold(t, v)

	e := v.store.Cell(rows.At(0, rows.Top))
	if e.fade == nil || e.fade.Delay != 0 {
		t.Fatalf("fade = %+v; want an undelayed fade", e.fade)
	}
	if e.move != nil {
		t.Errorf("new cell moves: %+v", e.move)
	}
	if got := v.Alpha(rows.At(0, rows.Top)); got != 1 {
		t.Errorf("committed alpha %v; want 1", got)
	}
	if _, alpha, _ := e.presentation(clk.t.Add(v.duration() / 2)); alpha <= 0 {
		t.Errorf("cell still transparent half way: %v", alpha)
	}
	if got, want := v.Frame(rows.At(0, rows.Top)), want(1, rows.Top, false)[0]; got != want {
		t.Errorf("frame %v; want %v", got, want)
	}
}

func TestInsertMakesRoomFirst(t *testing.T) {
	v, m, clk := newView(t, []string{"a", "b"}, nil)
	m.insert(rows.At(1, rows.Top), "n")
	v.InsertItems([]rows.Coordinate{rows.At(1, rows.Top)}, true)
	mustHold(t, v)

	if got := names(v, rows.Top); !slices.Equal(got, []string{"a", "n", "b"}) {
		t.Fatalf("top: got %v", got)
	}
	final := want(3, rows.Top, false)
	if got := frames(v, rows.Top); !slices.Equal(got, final) {
		t.Errorf("frames: got %v; want %v", got, final)
	}
	for _, i := range []int{0, 2} {
		if v.store.Cell(rows.At(i, rows.Top)).move == nil {
			t.Errorf("existing cell %d does not move", i)
		}
	}
	e := v.store.Cell(rows.At(1, rows.Top))
	if e.fade == nil || e.fade.Delay != v.duration() {
		t.Fatalf("fade = %+v; want delay %v", e.fade, v.duration())
	}
	if _, alpha, _ := e.presentation(clk.t.Add(v.duration() / 2)); alpha != 0 {
		t.Errorf("new cell visible while others make room: %v", alpha)
	}
	if _, alpha, _ := e.presentation(clk.t.Add(v.duration() * 3 / 2)); alpha <= 0 || alpha >= 1 {
		t.Errorf("new cell not fading in after the reflow: %v", alpha)
	}
	lay(v, clk.t.Add(3*v.duration()))
	if v.Animating() {
		t.Error("still animating after the transaction ended")
	}
}

func TestInsertWithoutAnimation(t *testing.T) {
	v, m, _ := newView(t, []string{"a"}, nil)
	m.insert(rows.At(1, rows.Top), "b")
	v.InsertItems([]rows.Coordinate{rows.At(1, rows.Top)}, false)
	if v.Animating() {
		t.Error("animating without animation")
	}
	if got := v.Alpha(rows.At(1, rows.Top)); got != 1 {
		t.Errorf("alpha %v; want 1", got)
	}
}

func TestInsertBatch(t *testing.T) {
	v, m, _ := newView(t, []string{"a", "b"}, []string{"me"})
	m.insert(rows.At(0, rows.Top), "x")
	m.insert(rows.At(3, rows.Top), "y")
	m.insert(rows.At(1, rows.Bottom), "z")
	v.InsertItems([]rows.Coordinate{rows.At(3, rows.Top), rows.At(1, rows.Bottom), rows.At(0, rows.Top)}, false)
	mustHold(t, v)
	if got := names(v, rows.Top); !slices.Equal(got, []string{"x", "a", "b", "y"}) {
		t.Errorf("top: got %v", got)
	}
	if got := names(v, rows.Bottom); !slices.Equal(got, []string{"me", "z"}) {
		t.Errorf("bottom: got %v", got)
	}
	if got, want := frames(v, rows.Bottom), want(2, rows.Bottom, true); !slices.Equal(got, want) {
		t.Errorf("bottom frames: got %v; want %v", got, want)
	}
}

func TestInsertBatchOutOfOrder(t *testing.T) {
	v, m, _ := newView(t, []string{"a", "b", "c"}, nil)
	m.insert(rows.At(0, rows.Top), "n0")
	m.insert(rows.At(2, rows.Top), "n2")
	v.InsertItems([]rows.Coordinate{rows.At(2, rows.Top), rows.At(0, rows.Top)}, true)
	mustHold(t, v)

	order := []string{"n0", "a", "n2", "b", "c"}
	if got := names(v, rows.Top); !slices.Equal(got, order) {
		t.Fatalf("top: got %v; want %v", got, order)
	}
	if got, want := frames(v, rows.Top), want(5, rows.Top, false); !slices.Equal(got, want) {
		t.Errorf("frames: got %v; want %v", got, want)
	}
	if got := attachedNames(v); !slices.Equal(got, order) {
		t.Errorf("attached: got %v; want %v", got, order)
	}
	for i, e := range v.store.Cells(rows.Top) {
		isNew := i == 0 || i == 2
		if isNew && (e.fade == nil || e.move != nil) {
			t.Errorf("new cell %d: fade %v, move %v", i, e.fade, e.move)
		}
		if !isNew && e.move == nil {
			t.Errorf("existing cell %d does not make room", i)
		}
	}
}

func TestInsertBottomReflowsTop(t *testing.T) {
	v, m, _ := newView(t, []string{"1", "2", "3"}, nil)
	m.insert(rows.At(0, rows.Bottom), "me")
	v.InsertItems([]rows.Coordinate{rows.At(0, rows.Bottom)}, false)
	mustHold(t, v)
	if got, want := frames(v, rows.Top), want(3, rows.Top, true); !slices.Equal(got, want) {
		t.Errorf("top frames: got %v; want %v", got, want)
	}
}

func TestInsertBottomIntoEmptyViewPromotes(t *testing.T) {
	v, m, _ := newView(t, nil, nil)
	m.insert(rows.At(0, rows.Bottom), "me")
	m.promote = []int{0}
	v.InsertItems([]rows.Coordinate{rows.At(0, rows.Bottom)}, false)
	mustHold(t, v)
	if got := names(v, rows.Top); !slices.Equal(got, []string{"me"}) {
		t.Errorf("top: got %v", got)
	}
}

func TestRemoveVanish(t *testing.T) {
	v, m, _ := newView(t, []string{"a"}, []string{"x", "y"})
	m.promote = []int{0, 1}
	v.RemoveItems([]rows.Coordinate{rows.At(0, rows.Top)}, false)
	mustHold(t, v)

	if m.vanishCalls != 1 {
		t.Errorf("vanish resolved %d times; want 1", m.vanishCalls)
	}
	if got := names(v, rows.Top); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("top: got %v", got)
	}
	if got := v.NumItems(rows.Bottom); got != 0 {
		t.Errorf("bottom: got %d items", got)
	}
	if got, want := frames(v, rows.Top), want(2, rows.Top, false); !slices.Equal(got, want) {
		t.Errorf("top frames: got %v; want %v", got, want)
	}
	if got := attachedNames(v); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("attached: got %v", got)
	}
}

func TestRemovePartialVanish(t *testing.T) {
	v, m, _ := newView(t, []string{"a"}, []string{"x", "y", "z"})
	m.promote = []int{2, 0}
	v.RemoveItems([]rows.Coordinate{rows.At(0, rows.Top)}, false)
	mustHold(t, v)
	if got := names(v, rows.Top); !slices.Equal(got, []string{"x", "z"}) {
		t.Errorf("top: got %v", got)
	}
	if got := names(v, rows.Bottom); !slices.Equal(got, []string{"y"}) {
		t.Errorf("bottom: got %v", got)
	}
	if got, want := frames(v, rows.Bottom), want(1, rows.Bottom, true); !slices.Equal(got, want) {
		t.Errorf("bottom frames: got %v; want %v", got, want)
	}
	if got := attachedNames(v); !slices.Equal(got, []string{"x", "z", "y"}) {
		t.Errorf("attached: got %v", got)
	}
}

func TestRemoveLastBottomReflowsTop(t *testing.T) {
	v, _, _ := newView(t, []string{"1", "2"}, []string{"me"})
	v.RemoveItems([]rows.Coordinate{rows.At(0, rows.Bottom)}, false)
	mustHold(t, v)
	if got, want := frames(v, rows.Top), want(2, rows.Top, false); !slices.Equal(got, want) {
		t.Errorf("top frames: got %v; want %v", got, want)
	}
}

func TestRemoveAnimatedDetachesAfterFade(t *testing.T) {
	v, _, clk := newView(t, []string{"a", "b", "c"}, nil)
	old := frames(v, rows.Top)
	v.RemoveItems([]rows.Coordinate{rows.At(1, rows.Top)}, true)
	mustHold(t, v)

	if got := names(v, rows.Top); !slices.Equal(got, []string{"a", "c"}) {
		t.Fatalf("top: got %v", got)
	}
	if got := attachedNames(v); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("fading cell detached early: %v", got)
	}
	if got := v.Frame(rows.At(1, rows.Top)); got != old[2] {
		t.Errorf("remaining cells moved before the fade: %v", got)
	}

	lay(v, clk.t.Add(v.duration()))
	if got := attachedNames(v); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("attached after fade: %v", got)
	}
	if got, want := frames(v, rows.Top), want(2, rows.Top, false); !slices.Equal(got, want) {
		t.Errorf("frames: got %v; want %v", got, want)
	}
	if !v.Animating() {
		t.Error("gap closing is not animated")
	}
	lay(v, clk.t.Add(2*v.duration()))
	if v.Animating() {
		t.Error("still animating")
	}
}

func TestRemoveBatch(t *testing.T) {
	v, _, _ := newView(t, []string{"a", "b", "c", "d"}, []string{"x", "y"})
	v.RemoveItems([]rows.Coordinate{rows.At(3, rows.Top), rows.At(0, rows.Bottom), rows.At(1, rows.Top)}, false)
	mustHold(t, v)
	if got := names(v, rows.Top); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("top: got %v", got)
	}
	if got := names(v, rows.Bottom); !slices.Equal(got, []string{"y"}) {
		t.Errorf("bottom: got %v", got)
	}
}

func TestMoveOnlyTopItemIntoEmptyBottom(t *testing.T) {
	v, m, _ := newView(t, []string{"a"}, nil)
	// The host promotes Bottom back as soon as Top empties.
	m.promote = []int{0}
	v.MoveItems([]rows.Coordinate{rows.At(0, rows.Top)}, []rows.Coordinate{rows.At(0, rows.Bottom)}, false)
	mustHold(t, v)
	if m.vanishCalls != 1 {
		t.Errorf("vanish resolved %d times; want 1", m.vanishCalls)
	}
	if got := names(v, rows.Top); !slices.Equal(got, []string{"a"}) {
		t.Errorf("top: got %v", got)
	}
	if got := v.NumItems(rows.Bottom); got != 0 {
		t.Errorf("bottom: got %d items", got)
	}
}

func TestMoveIntoBottom(t *testing.T) {
	v, m, _ := newView(t, []string{"1", "2", "3"}, nil)
	v.MoveItems([]rows.Coordinate{rows.At(2, rows.Top)}, []rows.Coordinate{rows.At(0, rows.Bottom)}, false)
	mustHold(t, v)
	if m.vanishCalls != 0 {
		t.Error("vanish resolved with items left in top")
	}
	if got, want := frames(v, rows.Top), want(2, rows.Top, true); !slices.Equal(got, want) {
		t.Errorf("top frames: got %v; want %v", got, want)
	}
	if got, want := frames(v, rows.Bottom), want(1, rows.Bottom, true); !slices.Equal(got, want) {
		t.Errorf("bottom frames: got %v; want %v", got, want)
	}
	if got := attachedNames(v); !slices.Equal(got, []string{"1", "2", "3"}) {
		t.Errorf("attached: got %v", got)
	}
}

func TestMoveWithinRow(t *testing.T) {
	v, _, clk := newView(t, []string{"a", "b", "c"}, nil)
	v.MoveItems([]rows.Coordinate{rows.At(0, rows.Top)}, []rows.Coordinate{rows.At(2, rows.Top)}, true)
	mustHold(t, v)
	if got := names(v, rows.Top); !slices.Equal(got, []string{"b", "c", "a"}) {
		t.Errorf("top: got %v", got)
	}
	if got := attachedNames(v); !slices.Equal(got, []string{"b", "c", "a"}) {
		t.Errorf("attached: got %v", got)
	}
	e := v.store.Cell(rows.At(2, rows.Top))
	if e.move == nil {
		t.Fatal("moved cell does not animate")
	}
	if frame, _, _ := e.presentation(clk.t); frame != want(3, rows.Top, false)[0] {
		t.Errorf("moved cell starts at %v", frame)
	}
}

func TestEnlargeAndCollapse(t *testing.T) {
	v, _, _ := newView(t, []string{"1", "2", "3"}, []string{"me"})
	v.MoveItems(
		[]rows.Coordinate{rows.At(1, rows.Top), rows.At(2, rows.Top)},
		[]rows.Coordinate{rows.At(0, rows.Bottom), rows.At(1, rows.Bottom)},
		false,
	)
	mustHold(t, v)
	if got := names(v, rows.Top); !slices.Equal(got, []string{"1"}) {
		t.Errorf("enlarged top: got %v", got)
	}
	if got := names(v, rows.Bottom); !slices.Equal(got, []string{"2", "3", "me"}) {
		t.Errorf("enlarged bottom: got %v", got)
	}

	v.MoveItems(
		[]rows.Coordinate{rows.At(0, rows.Bottom), rows.At(1, rows.Bottom)},
		[]rows.Coordinate{rows.At(1, rows.Top), rows.At(2, rows.Top)},
		false,
	)
	mustHold(t, v)
	if got := names(v, rows.Top); !slices.Equal(got, []string{"1", "2", "3"}) {
		t.Errorf("collapsed top: got %v", got)
	}
	if got := attachedNames(v); !slices.Equal(got, []string{"1", "2", "3", "me"}) {
		t.Errorf("attached: got %v", got)
	}
}

func TestReacquireCells(t *testing.T) {
	v, _, _ := newView(t, []string{"a", "b"}, []string{"me"})
	c := rows.At(1, rows.Top)
	oldCell, oldFrame := v.Cell(c), v.Frame(c)
	order := attachedNames(v)

	v.ReacquireCells([]rows.Coordinate{c, rows.At(0, rows.Bottom)})
	mustHold(t, v)
	if v.Cell(c) == oldCell {
		t.Error("cell not replaced")
	}
	if got := v.Frame(c); got != oldFrame {
		t.Errorf("frame %v; want %v", got, oldFrame)
	}
	if got := attachedNames(v); !slices.Equal(got, order) {
		t.Errorf("attached: got %v; want %v", got, order)
	}
	if slices.Contains(v.Attached(), oldCell) {
		t.Error("old cell still attached")
	}
}

func TestReloadItems(t *testing.T) {
	v, m, _ := newView(t, []string{"a", "b"}, nil)
	c := rows.At(1, rows.Top)
	cell, frame := v.Cell(c), v.Frame(c)
	m.rows[rows.Top][1] = &peer{name: "B"}

	v.ReloadItems([]rows.Coordinate{c})
	mustHold(t, v)
	if got := v.Item(c).name; got != "B" {
		t.Errorf("item %q; want B", got)
	}
	if v.Cell(c) != cell || v.Frame(c) != frame {
		t.Error("reload items changed the cell or its frame")
	}
}

func TestOperationFinishesPendingTransitions(t *testing.T) {
	v, m, _ := newView(t, []string{"a", "b", "c"}, nil)
	v.RemoveItems([]rows.Coordinate{rows.At(0, rows.Top)}, true)
	m.remove(rows.At(0, rows.Top))

	m.insert(rows.At(2, rows.Top), "d")
	v.InsertItems([]rows.Coordinate{rows.At(2, rows.Top)}, false)
	mustHold(t, v)
	if v.Animating() {
		t.Error("transitions survived a new operation")
	}
	if got := attachedNames(v); !slices.Equal(got, []string{"b", "c", "d"}) {
		t.Errorf("attached: got %v", got)
	}
	if got, want := frames(v, rows.Top), want(3, rows.Top, false); !slices.Equal(got, want) {
		t.Errorf("frames: got %v; want %v", got, want)
	}
}

func TestSetStrategy(t *testing.T) {
	v, _, clk := newView(t, []string{"a", "b"}, []string{"x", "y"})
	s := geometry.NewOverlapping()
	v.SetStrategy(s)
	lay(v, clk.t)
	bounds := image.Rectangle{Max: container}
	if got, want := frames(v, rows.Top), s.Frames(2, rows.Top, true, bounds); !slices.Equal(got, want) {
		t.Errorf("top: got %v; want %v", got, want)
	}
	if got, want := frames(v, rows.Bottom), s.Frames(2, rows.Bottom, true, bounds); !slices.Equal(got, want) {
		t.Errorf("bottom: got %v; want %v", got, want)
	}
}

func TestLayoutDrawsVisibleCells(t *testing.T) {
	v, _, clk := newView(t, []string{"a"}, nil)
	c := v.Cell(rows.At(0, rows.Top)).(*cell)
	c.drawn = 0
	dims := lay(v, clk.t)
	if dims.Size != container {
		t.Errorf("size %v; want %v", dims.Size, container)
	}
	if c.drawn != 1 {
		t.Errorf("cell drawn %d times; want 1", c.drawn)
	}

	v.RemoveItems([]rows.Coordinate{rows.At(0, rows.Top)}, true)
	c.drawn = 0
	lay(v, clk.t.Add(v.duration()/2))
	if c.drawn != 1 {
		t.Errorf("fading cell drawn %d times; want 1", c.drawn)
	}
	lay(v, clk.t.Add(v.duration()))
	if c.drawn != 1 {
		t.Errorf("detached cell drawn again")
	}
}

func TestLayoutResize(t *testing.T) {
	v, _, clk := newView(t, []string{"a", "b"}, nil)
	before := frames(v, rows.Top)
	v.bounds = image.Rect(0, 0, 10, 10)
	lay(v, clk.t.Add(time.Second))
	if got := frames(v, rows.Top); !slices.Equal(got, before) {
		t.Errorf("frames after resize: got %v; want %v", got, before)
	}
}

func TestInvariantsAcrossOperations(t *testing.T) {
	v, m, clk := newView(t, []string{"1", "2", "3"}, []string{"me"})
	steps := []func(){
		func() {
			m.insert(rows.At(0, rows.Bottom), "x")
			v.InsertItems([]rows.Coordinate{rows.At(0, rows.Bottom)}, true)
		},
		func() {
			v.MoveItems([]rows.Coordinate{rows.At(0, rows.Top)}, []rows.Coordinate{rows.At(2, rows.Bottom)}, true)
		},
		func() { v.RemoveItems([]rows.Coordinate{rows.At(0, rows.Top)}, true) },
		func() { v.ReacquireCells([]rows.Coordinate{rows.At(0, rows.Bottom)}) },
		func() {
			m.promote = []int{0, 1, 2}
			v.RemoveItems([]rows.Coordinate{rows.At(0, rows.Top)}, true)
		},
	}
	for i, step := range steps {
		step()
		mustHold(t, v)
		clk.t = clk.t.Add(v.duration() / 3)
		lay(v, clk.t)
		mustHold(t, v)
		for _, r := range rows.All {
			if got := len(frames(v, r)); got != v.NumItems(r) {
				t.Errorf("step %d: %v row has %d frames for %d items", i, r, got, v.NumItems(r))
			}
		}
	}
	if got := names(v, rows.Top); !slices.Equal(got, []string{"x", "me", "1"}) {
		t.Errorf("top: got %v", got)
	}
}
