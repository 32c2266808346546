// SPDX-License-Identifier: Unlicense OR MIT

/*
Package rows defines the two fixed ranks of a rows view and the
coordinates addressing items within them.

Top is the primary rank and Bottom the auxiliary one. Indices are dense
and zero based within a row.
*/
package rows

import (
	"fmt"
	"slices"
)

// Row is one of the two ranks of a rows view.
type Row uint8

// Coordinate identifies a logical slot.
type Coordinate struct {
	Index int
	Row   Row
}

// Pair holds one value per Row. Index it with a Row.
type Pair[V any] [2]V

const (
	Top Row = iota
	Bottom
)

// All lists the rows in stacking order.
var All = [...]Row{Top, Bottom}

// At is shorthand for Coordinate{Index: index, Row: r}.
func At(index int, r Row) Coordinate {
	return Coordinate{Index: index, Row: r}
}

// Other returns the sibling row.
func (r Row) Other() Row {
	if r == Top {
		return Bottom
	}
	return Top
}

func (r Row) String() string {
	switch r {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return fmt.Sprintf("Row(%d)", uint8(r))
	}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%s[%d]", c.Row, c.Index)
}

// Group collects the indices of cs per row, in the order they appear.
func Group(cs []Coordinate) Pair[[]int] {
	var p Pair[[]int]
	for _, c := range cs {
		p[c.Row] = append(p[c.Row], c.Index)
	}
	return p
}

// Ascending returns a sorted copy of indices.
func Ascending(indices []int) []int {
	s := slices.Clone(indices)
	slices.Sort(s)
	return s
}

// Descending returns a reverse sorted copy of indices.
func Descending(indices []int) []int {
	s := Ascending(indices)
	slices.Reverse(s)
	return s
}

// Remove deletes the elements of s at indices. It returns the remaining
// elements and the removed ones, both in their original relative order.
// The indices must be unique and within range.
func Remove[S ~[]E, E any](s S, indices []int) (rest, removed S) {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	rest = make(S, 0, len(s)-len(indices))
	removed = make(S, 0, len(indices))
	for i, e := range s {
		if drop[i] {
			removed = append(removed, e)
		} else {
			rest = append(rest, e)
		}
	}
	return rest, removed
}

// Insert places elems into s so that elems[k] ends up at the k-th smallest
// of indices, inserting one by one in ascending index order.
func Insert[S ~[]E, E any](s S, indices []int, elems S) S {
	if len(indices) != len(elems) {
		panic("rows: indices and elements differ in length")
	}
	for k, i := range Ascending(indices) {
		s = slices.Insert(s, i, elems[k])
	}
	return s
}
