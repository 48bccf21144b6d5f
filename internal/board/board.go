// Package board implements the bounded cell grid that games draw into.
// The grid is the single source of truth for what a frame looks like; the
// wire encoder reads it after the game callback has finished mutating it,
// so no locking is needed.
package board

import (
	"fmt"

	"github.com/avoronov/gridframe/internal/palette"
)

// MaxCells caps the total grid size. Boards are re-encoded and transmitted
// every frame, so the cap keeps the per-frame wire payload bounded.
const MaxCells = 1024

// Cell holds the renderable state of one grid position.
type Cell struct {
	Background palette.Color
	Foreground palette.Color
	Symbol     palette.Symbol
}

// BoundsError reports an access outside the grid extents. The offending
// operation has no effect on the board.
type BoundsError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("board: cell (%d, %d) outside %dx%d grid", e.Row, e.Col, e.Rows, e.Cols)
}

// Board is a fixed-size rows x cols grid of cells, stored row-major.
type Board struct {
	rows  int
	cols  int
	cells []Cell
}

// New creates a board with every cell at the default background, default
// foreground and no symbol. Dimensions must be positive and rows*cols may
// not exceed MaxCells; violations are reported as errors so the caller can
// recover (log, retry smaller, abort).
func New(rows, cols int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("board: dimensions %dx%d must be positive", rows, cols)
	}
	// Checking each dimension first keeps the product from overflowing.
	if rows > MaxCells || cols > MaxCells {
		return nil, fmt.Errorf("board: %dx%d grid exceeds the %d cell limit", rows, cols, MaxCells)
	}
	if rows*cols > MaxCells {
		return nil, fmt.Errorf("board: %dx%d grid has %d cells, exceeds the %d cell limit", rows, cols, rows*cols, MaxCells)
	}

	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	b.reset()
	return b, nil
}

// reset restores every cell to its construction defaults.
func (b *Board) reset() {
	for i := range b.cells {
		b.cells[i] = Cell{
			Background: palette.DefaultBackground,
			Foreground: palette.DefaultForeground,
			Symbol:     palette.SymbolNone,
		}
	}
}

// Rows returns the number of grid rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of grid columns.
func (b *Board) Cols() int {
	return b.cols
}

// Cells returns the total cell count.
func (b *Board) Cells() int {
	return len(b.cells)
}

// check validates a cell coordinate.
func (b *Board) check(row, col int) error {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return &BoundsError{Row: row, Col: col, Rows: b.rows, Cols: b.cols}
	}
	return nil
}

// SetBackground sets the background color of one cell.
func (b *Board) SetBackground(row, col int, c palette.Color) error {
	if err := b.check(row, col); err != nil {
		return err
	}
	b.cells[row*b.cols+col].Background = c
	return nil
}

// SetForeground sets the foreground color of one cell.
func (b *Board) SetForeground(row, col int, c palette.Color) error {
	if err := b.check(row, col); err != nil {
		return err
	}
	b.cells[row*b.cols+col].Foreground = c
	return nil
}

// SetSymbol draws a symbol at one cell in the given foreground color.
func (b *Board) SetSymbol(row, col int, sym palette.Symbol, c palette.Color) error {
	if err := b.check(row, col); err != nil {
		return err
	}
	cell := &b.cells[row*b.cols+col]
	cell.Symbol = sym
	cell.Foreground = c
	return nil
}

// Get returns a copy of the cell at (row, col).
func (b *Board) Get(row, col int) (Cell, error) {
	if err := b.check(row, col); err != nil {
		return Cell{}, err
	}
	return b.cells[row*b.cols+col], nil
}

// Clear restores the whole board to its construction defaults.
func (b *Board) Clear() {
	b.reset()
}
