// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gioui.org/layout"
	"gioui.org/widget/material"
	"github.com/charmbracelet/log"

	"github.com/rowsview/rowsview/geometry"
	"github.com/rowsview/rowsview/rows"
	"github.com/rowsview/rowsview/rowsview"
)

// ErrOutOfRange is returned for inspector input addressing no slot.
var ErrOutOfRange = errors.New("index out of range")

// Controller owns the peer model and the view presenting it. It serves as
// the view's data source and delegate; the view only refers to it weakly.
type Controller struct {
	view     *rowsview.View[*Peer]
	peers    rows.Pair[[]*Peer]
	theme    *material.Theme
	log      *log.Logger
	strategy string
	// still disables transitions when the configured duration is zero.
	still bool
}

func NewController(th *material.Theme, logger *log.Logger, c Config, r Roster) *Controller {
	ctl := &Controller{
		peers: rows.Pair[[]*Peer]{peersNamed(r.Top), peersNamed(r.Bottom)},
		theme: th,
		log:   logger,
		still: c.Animation == 0,
	}
	v := rowsview.New[*Peer]()
	v.Duration = c.duration()
	v.SetDataSource(rowsview.WeakDataSource[*Peer](ctl))
	v.SetDelegate(rowsview.WeakDelegate[*Peer](ctl, nil))
	ctl.view = v
	ctl.setStrategy(c.Strategy)
	v.ReloadData()
	ctl.verify("reload")
	return ctl
}

func (c *Controller) Layout(gtx layout.Context) layout.Dimensions {
	return c.view.Layout(gtx)
}

// Insert adds a peer named name at the slot at.
func (c *Controller) Insert(name string, at rows.Coordinate, animated bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("insert: empty name")
	}
	if err := checkRow("insert", at); err != nil {
		return err
	}
	if err := c.checkSlot("insert", at, len(c.peers[at.Row])); err != nil {
		return err
	}
	c.peers[at.Row] = slices.Insert(c.peers[at.Row], at.Index, NewPeer(name))
	c.log.Info("insert", "name", name, "at", at, "animated", animated)
	c.view.InsertItems([]rows.Coordinate{at}, c.animate(animated))
	c.verify("insert")
	return nil
}

// Remove drops the peer at.
func (c *Controller) Remove(at rows.Coordinate, animated bool) error {
	if err := c.checkItem("remove", at); err != nil {
		return err
	}
	p := c.peers[at.Row][at.Index]
	c.peers[at.Row] = slices.Delete(c.peers[at.Row], at.Index, at.Index+1)
	c.log.Info("remove", "name", p.Name, "at", at, "animated", animated)
	c.view.RemoveItems([]rows.Coordinate{at}, c.animate(animated))
	c.verify("remove")
	return nil
}

// Move relocates the peer at from to the slot to, addressed after the
// peer has left from.
func (c *Controller) Move(from, to rows.Coordinate, animated bool) error {
	if err := c.checkItem("move", from); err != nil {
		return err
	}
	if err := checkRow("move", to); err != nil {
		return err
	}
	n := len(c.peers[to.Row])
	if to.Row == from.Row {
		n--
	}
	if err := c.checkSlot("move", to, n); err != nil {
		return err
	}
	p := c.peers[from.Row][from.Index]
	c.peers[from.Row] = slices.Delete(c.peers[from.Row], from.Index, from.Index+1)
	c.peers[to.Row] = slices.Insert(c.peers[to.Row], to.Index, p)
	c.log.Info("move", "name", p.Name, "from", from, "to", to, "animated", animated)
	c.view.MoveItems([]rows.Coordinate{from}, []rows.Coordinate{to}, c.animate(animated))
	c.verify("move")
	return nil
}

// EnlargeFirst moves the second and third Top peers to the front of
// Bottom, leaving the first one more room.
func (c *Controller) EnlargeFirst(animated bool) error {
	top := c.peers[rows.Top]
	if len(top) < 3 {
		return fmt.Errorf("enlarge: %w: top row has %d peers, need 3", ErrOutOfRange, len(top))
	}
	moved := slices.Clone(top[1:3])
	c.peers[rows.Top] = slices.Delete(slices.Clone(top), 1, 3)
	c.peers[rows.Bottom] = append(moved, c.peers[rows.Bottom]...)
	c.log.Info("enlarge first", "animated", animated)
	c.view.MoveItems(
		[]rows.Coordinate{rows.At(1, rows.Top), rows.At(2, rows.Top)},
		[]rows.Coordinate{rows.At(0, rows.Bottom), rows.At(1, rows.Bottom)},
		c.animate(animated),
	)
	c.verify("enlarge first")
	return nil
}

// CollapseFirst undoes EnlargeFirst.
func (c *Controller) CollapseFirst(animated bool) error {
	top, bottom := c.peers[rows.Top], c.peers[rows.Bottom]
	if len(top) < 1 || len(bottom) < 2 {
		return fmt.Errorf("collapse: %w: need a top peer and 2 bottom peers", ErrOutOfRange)
	}
	moved := slices.Clone(bottom[:2])
	c.peers[rows.Bottom] = slices.Clone(bottom[2:])
	c.peers[rows.Top] = slices.Insert(slices.Clone(top), 1, moved...)
	c.log.Info("collapse first", "animated", animated)
	c.view.MoveItems(
		[]rows.Coordinate{rows.At(0, rows.Bottom), rows.At(1, rows.Bottom)},
		[]rows.Coordinate{rows.At(1, rows.Top), rows.At(2, rows.Top)},
		c.animate(animated),
	)
	c.verify("collapse first")
	return nil
}

// Rename replaces the peer at with a renamed copy. Its cell stays put.
func (c *Controller) Rename(at rows.Coordinate, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("rename: empty name")
	}
	if err := c.checkItem("rename", at); err != nil {
		return err
	}
	c.peers[at.Row][at.Index] = c.peers[at.Row][at.Index].Renamed(name)
	c.log.Info("rename", "at", at, "name", name)
	c.view.ReloadItems([]rows.Coordinate{at})
	c.verify("rename")
	return nil
}

// Refresh replaces every cell with a fresh one.
func (c *Controller) Refresh() {
	var all []rows.Coordinate
	for _, r := range rows.All {
		for i := range c.peers[r] {
			all = append(all, rows.At(i, r))
		}
	}
	c.log.Debug("refresh", "cells", len(all))
	c.view.ReacquireCells(all)
	c.verify("refresh")
}

// Reload rebuilds the view from the model.
func (c *Controller) Reload() {
	c.log.Info("reload")
	c.view.ReloadData()
	c.verify("reload")
}

// ToggleStrategy switches between the separated and overlapping layouts.
func (c *Controller) ToggleStrategy() {
	if c.strategy == separated {
		c.setStrategy(overlapping)
	} else {
		c.setStrategy(separated)
	}
	c.log.Info("strategy", "name", c.strategy)
}

func (c *Controller) animate(requested bool) bool {
	return requested && !c.still
}

func (c *Controller) setStrategy(name string) {
	var s geometry.Strategy = geometry.NewSeparated()
	if name == overlapping {
		s = geometry.NewOverlapping()
	} else {
		name = separated
	}
	c.strategy = name
	c.view.SetStrategy(s)
}

func (c *Controller) ShouldPopulateBottomRow() bool { return true }

func (c *Controller) NumItems(r rows.Row) int { return len(c.peers[r]) }

func (c *Controller) Item(at rows.Coordinate) *Peer { return c.peers[at.Row][at.Index] }

// ResolveTopRowVanish promotes all of Bottom.
func (c *Controller) ResolveTopRowVanish() []int {
	n := len(c.peers[rows.Bottom])
	c.peers[rows.Top], c.peers[rows.Bottom] = c.peers[rows.Bottom], nil
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	c.log.Info("top row vanished", "promoted", n)
	return indices
}

func (c *Controller) CellFor(at rows.Coordinate) rowsview.Cell[*Peer] {
	return newPeerCell(c.theme)
}

func (c *Controller) checkItem(op string, at rows.Coordinate) error {
	if err := checkRow(op, at); err != nil {
		return err
	}
	if n := len(c.peers[at.Row]); at.Index < 0 || at.Index >= n {
		return fmt.Errorf("%s: %w: %v not in [0, %d)", op, ErrOutOfRange, at, n)
	}
	return nil
}

// checkSlot verifies an insertion slot into a row of n peers. The row
// must have been checked.
func (c *Controller) checkSlot(op string, at rows.Coordinate, n int) error {
	if at.Index < 0 || at.Index > n {
		return fmt.Errorf("%s: %w: %v not in [0, %d]", op, ErrOutOfRange, at, n)
	}
	return nil
}

func checkRow(op string, at rows.Coordinate) error {
	if at.Row != rows.Top && at.Row != rows.Bottom {
		return fmt.Errorf("%s: invalid row in %v", op, at)
	}
	return nil
}

// verify logs a disagreement between the model and the view.
func (c *Controller) verify(op string) {
	if err := c.view.Check(); err != nil {
		c.log.Error("view out of sync", "op", op, "err", err)
		return
	}
	for _, r := range rows.All {
		if n := c.view.NumItems(r); n != len(c.peers[r]) {
			c.log.Error("view out of sync", "op", op, "row", r, "view", n, "model", len(c.peers[r]))
		}
	}
}

// parseCoordinate reads inspector input.
func parseCoordinate(index, row string) (rows.Coordinate, error) {
	i, err := strconv.Atoi(strings.TrimSpace(index))
	if err != nil {
		return rows.Coordinate{}, fmt.Errorf("index %q: %w", index, err)
	}
	switch row {
	case "top":
		return rows.At(i, rows.Top), nil
	case "bottom":
		return rows.At(i, rows.Bottom), nil
	}
	return rows.Coordinate{}, fmt.Errorf("unknown row %q", row)
}
