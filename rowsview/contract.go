// SPDX-License-Identifier: Unlicense OR MIT

package rowsview

import (
	"fmt"

	"gioui.org/layout"

	"github.com/rowsview/rowsview/rows"
)

// DataSource supplies the items of a View. The View queries it during
// operations and never keeps the results beyond the store.
type DataSource[T comparable] interface {
	// ShouldPopulateBottomRow reports whether ReloadData should query
	// the Bottom row at all.
	ShouldPopulateBottomRow() bool
	// NumItems returns the number of items in row.
	NumItems(row rows.Row) int
	// Item returns the item at c.
	Item(c rows.Coordinate) T
	// ResolveTopRowVanish is called when Top has become empty while Bottom
	// still has items. It returns the indices, into the current Bottom
	// row, of the items that become the new Top row. The result must not
	// be empty.
	ResolveTopRowVanish() []int
}

// Delegate constructs cells.
type Delegate[T comparable] interface {
	// CellFor returns a cell for the item at c. The View assigns the item
	// after the call.
	CellFor(c rows.Coordinate) Cell[T]
}

// Cell presents one item. The View owns the placement of the cell: it
// lays the cell out with exact constraints the size of its frame.
type Cell[T comparable] interface {
	SetItem(item T)
	Item() T
	Layout(gtx layout.Context) layout.Dimensions
}

// ContractError describes a violated precondition. View operations panic
// with a *ContractError rather than continue with a corrupted store.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string {
	return "rowsview: " + e.Op + ": " + e.Msg
}

func violate(op, format string, args ...any) {
	panic(&ContractError{Op: op, Msg: fmt.Sprintf(format, args...)})
}
