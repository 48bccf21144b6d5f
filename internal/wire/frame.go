// Package wire converts a board into the compact frame form that gets
// transmitted to a renderer every tick. A frame carries three row-major
// sequences, one per cell channel, plus the grid dimensions; decoding is an
// exact inverse, so no cell state is lost in transit.
package wire

import (
	"fmt"

	"github.com/avoronov/gridframe/internal/board"
	"github.com/avoronov/gridframe/internal/palette"
)

// Encoding selects how a frame's sequences are laid out.
type Encoding int

const (
	// Raw emits one value per cell. This is the default path.
	Raw Encoding = iota
	// RLE collapses runs of equal values into (value, count) pairs. An
	// optional mode for boards with large uniform areas.
	RLE
)

// Frame is the wire form of one rendered board. With RLE set, the three
// sequences hold flattened (value, count) pairs instead of one value per
// cell; either way they describe exactly Dimensions[0]*Dimensions[1] cells
// in row-major order.
type Frame struct {
	BG         []int  `json:"bg"`
	FG         []int  `json:"fg"`
	Symbols    []int  `json:"symbols"`
	Dimensions [2]int `json:"dimensions"`
	RLE        bool   `json:"rle,omitempty"`
}

// Encoder turns boards into frames. It keeps no board state between calls;
// every frame is recomputed from scratch.
type Encoder struct {
	mode Encoding
}

// NewEncoder creates an encoder with the given mode.
func NewEncoder(mode Encoding) *Encoder {
	return &Encoder{mode: mode}
}

// Mode returns the encoder's encoding mode.
func (e *Encoder) Mode() Encoding {
	return e.mode
}

// Encode serializes the board into a frame.
func (e *Encoder) Encode(b *board.Board) *Frame {
	total := b.Cells()
	bg := make([]int, total)
	fg := make([]int, total)
	symbols := make([]int, total)

	i := 0
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			cell, _ := b.Get(row, col)
			bg[i] = int(cell.Background)
			fg[i] = int(cell.Foreground)
			symbols[i] = int(cell.Symbol)
			i++
		}
	}

	f := &Frame{
		BG:         bg,
		FG:         fg,
		Symbols:    symbols,
		Dimensions: [2]int{b.Rows(), b.Cols()},
	}
	if e.mode == RLE {
		f.BG = runLength(f.BG)
		f.FG = runLength(f.FG)
		f.Symbols = runLength(f.Symbols)
		f.RLE = true
	}
	return f
}

// Decode reconstructs a board from a frame. Every cell comes back exactly
// as it was encoded; malformed frames are rejected with an error.
func Decode(f *Frame) (*board.Board, error) {
	rows, cols := f.Dimensions[0], f.Dimensions[1]
	b, err := board.New(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("wire: bad frame dimensions: %w", err)
	}

	bg, fg, symbols := f.BG, f.FG, f.Symbols
	if f.RLE {
		if bg, err = expand(bg, b.Cells()); err != nil {
			return nil, fmt.Errorf("wire: bg sequence: %w", err)
		}
		if fg, err = expand(fg, b.Cells()); err != nil {
			return nil, fmt.Errorf("wire: fg sequence: %w", err)
		}
		if symbols, err = expand(symbols, b.Cells()); err != nil {
			return nil, fmt.Errorf("wire: symbols sequence: %w", err)
		}
	}
	if len(bg) != b.Cells() || len(fg) != b.Cells() || len(symbols) != b.Cells() {
		return nil, fmt.Errorf("wire: sequence lengths %d/%d/%d do not match %d cells",
			len(bg), len(fg), len(symbols), b.Cells())
	}

	i := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if err := b.SetBackground(row, col, palette.Color(bg[i])); err != nil {
				return nil, err
			}
			if err := b.SetSymbol(row, col, palette.Symbol(symbols[i]), palette.Color(fg[i])); err != nil {
				return nil, err
			}
			i++
		}
	}
	return b, nil
}
