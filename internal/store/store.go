// SPDX-License-Identifier: Unlicense OR MIT

// Package store holds the items of a rows view and the cells presenting
// them, one pair of sequences per row.
package store

import (
	"fmt"
	"slices"

	"github.com/rowsview/rowsview/rows"
)

// Store pairs items[r][i] with cells[r][i]. Callers may break the pairing
// between mutations of a single operation but must restore it before
// the operation returns.
type Store[T comparable, C any] struct {
	items rows.Pair[[]T]
	cells rows.Pair[[]C]
}

// Len returns the number of items in r.
func (s *Store[T, C]) Len(r rows.Row) int {
	return len(s.items[r])
}

// Empty reports whether both rows are empty.
func (s *Store[T, C]) Empty() bool {
	return len(s.items[rows.Top]) == 0 && len(s.items[rows.Bottom]) == 0
}

// Present reports whether r has any items.
func (s *Store[T, C]) Present(r rows.Row) bool {
	return len(s.items[r]) > 0
}

func (s *Store[T, C]) Item(c rows.Coordinate) T {
	return s.items[c.Row][c.Index]
}

func (s *Store[T, C]) Cell(c rows.Coordinate) C {
	return s.cells[c.Row][c.Index]
}

// Items returns the items of r. The slice must not be modified.
func (s *Store[T, C]) Items(r rows.Row) []T {
	return s.items[r]
}

// Cells returns the cells of r. The slice must not be modified.
func (s *Store[T, C]) Cells(r rows.Row) []C {
	return s.cells[r]
}

// SetItem replaces the item at c.
func (s *Store[T, C]) SetItem(c rows.Coordinate, item T) {
	s.items[c.Row][c.Index] = item
}

// Append adds a paired item and cell to the end of r.
func (s *Store[T, C]) Append(r rows.Row, item T, cell C) {
	s.items[r] = append(s.items[r], item)
	s.cells[r] = append(s.cells[r], cell)
}

// InsertItem inserts an item without its cell.
func (s *Store[T, C]) InsertItem(c rows.Coordinate, item T) {
	s.items[c.Row] = slices.Insert(s.items[c.Row], c.Index, item)
}

// InsertItems inserts items into r without their cells, one by one in
// ascending index order. items[k] lands at the k-th smallest of indices.
func (s *Store[T, C]) InsertItems(r rows.Row, indices []int, items []T) {
	s.items[r] = rows.Insert(s.items[r], indices, items)
}

// InsertCell inserts a cell for an item inserted earlier.
func (s *Store[T, C]) InsertCell(c rows.Coordinate, cell C) {
	s.cells[c.Row] = slices.Insert(s.cells[c.Row], c.Index, cell)
}

// Insert inserts a paired item and cell at c.
func (s *Store[T, C]) Insert(c rows.Coordinate, item T, cell C) {
	s.InsertItem(c, item)
	s.InsertCell(c, cell)
}

// RemoveAt removes and returns the pair at c.
func (s *Store[T, C]) RemoveAt(c rows.Coordinate) (T, C) {
	item := s.items[c.Row][c.Index]
	cell := s.cells[c.Row][c.Index]
	s.items[c.Row] = slices.Delete(s.items[c.Row], c.Index, c.Index+1)
	s.cells[c.Row] = slices.Delete(s.cells[c.Row], c.Index, c.Index+1)
	return item, cell
}

// ReplaceCell swaps the cell at c and returns the old one.
func (s *Store[T, C]) ReplaceCell(c rows.Coordinate, cell C) C {
	old := s.cells[c.Row][c.Index]
	s.cells[c.Row][c.Index] = cell
	return old
}

// Remove removes the pairs at indices of r and returns them in their
// original order.
func (s *Store[T, C]) Remove(r rows.Row, indices []int) ([]T, []C) {
	var items []T
	var cells []C
	s.items[r], items = rows.Remove(s.items[r], indices)
	s.cells[r], cells = rows.Remove(s.cells[r], indices)
	return items, cells
}

// Promote moves the Bottom pairs at indices to become the whole Top row,
// keeping their relative order. Top must be empty.
func (s *Store[T, C]) Promote(indices []int) {
	if len(s.items[rows.Top]) != 0 || len(s.cells[rows.Top]) != 0 {
		panic("store: promoting into a non-empty top row")
	}
	s.items[rows.Top], s.cells[rows.Top] = s.Remove(rows.Bottom, indices)
}

// Clear empties both rows and returns every cell that was stored.
func (s *Store[T, C]) Clear() []C {
	var cells []C
	for _, r := range rows.All {
		cells = append(cells, s.cells[r]...)
		s.items[r] = nil
		s.cells[r] = nil
	}
	return cells
}

// Check verifies that every row holds as many cells as items and that
// itemOf reports the paired item for each cell.
func (s *Store[T, C]) Check(itemOf func(C) T) error {
	for _, r := range rows.All {
		items, cells := s.items[r], s.cells[r]
		if len(items) != len(cells) {
			return fmt.Errorf("store: %v row has %d items and %d cells", r, len(items), len(cells))
		}
		for i, c := range cells {
			if itemOf(c) != items[i] {
				return fmt.Errorf("store: cell at %v presents %v, want %v", rows.At(i, r), itemOf(c), items[i])
			}
		}
	}
	return nil
}
