package board

import (
	"errors"
	"testing"

	"github.com/avoronov/gridframe/internal/palette"
)

func TestNewBoard(t *testing.T) {
	b, err := New(10, 10)
	if err != nil {
		t.Fatalf("New(10, 10) returned error: %v", err)
	}
	if b.Rows() != 10 || b.Cols() != 10 {
		t.Errorf("dimensions = %dx%d, expected 10x10", b.Rows(), b.Cols())
	}

	// Every cell starts at the defaults
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			cell, err := b.Get(row, col)
			if err != nil {
				t.Fatalf("Get(%d, %d) returned error: %v", row, col, err)
			}
			if cell.Background != palette.DefaultBackground {
				t.Errorf("cell (%d, %d) background = %v, expected default", row, col, cell.Background)
			}
			if cell.Foreground != palette.DefaultForeground {
				t.Errorf("cell (%d, %d) foreground = %v, expected default", row, col, cell.Foreground)
			}
			if cell.Symbol != palette.SymbolNone {
				t.Errorf("cell (%d, %d) symbol = %v, expected none", row, col, cell.Symbol)
			}
		}
	}
}

func TestNewBoardSizeLimit(t *testing.T) {
	// Anything up to 1024 cells is fine, including non-square shapes
	valid := [][2]int{{32, 32}, {1, 1024}, {64, 16}, {1, 1}, {15, 15}}
	for _, dims := range valid {
		if _, err := New(dims[0], dims[1]); err != nil {
			t.Errorf("New(%d, %d) returned error: %v", dims[0], dims[1], err)
		}
	}

	// Over the cap must fail with a reported error, not a crash
	invalid := [][2]int{{33, 32}, {100, 20}, {1, 1025}, {1024, 1024}}
	for _, dims := range invalid {
		if _, err := New(dims[0], dims[1]); err == nil {
			t.Errorf("New(%d, %d) should have failed", dims[0], dims[1])
		}
	}

	// Dimensions large enough that their product overflows int must still
	// be rejected, not slip past the cap into make.
	huge := int(uint64(1) << 32)
	for _, dims := range [][2]int{{huge, huge}, {huge, 1}, {1, huge}} {
		if _, err := New(dims[0], dims[1]); err == nil {
			t.Errorf("New(%d, %d) should have failed", dims[0], dims[1])
		}
	}
}

func TestNewBoardInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {5, -1}} {
		if _, err := New(dims[0], dims[1]); err == nil {
			t.Errorf("New(%d, %d) should have failed", dims[0], dims[1])
		}
	}
}

func TestBoardSetGet(t *testing.T) {
	b, err := New(8, 12)
	if err != nil {
		t.Fatal(err)
	}

	if err := b.SetBackground(3, 7, palette.Blue); err != nil {
		t.Fatalf("SetBackground: %v", err)
	}
	if err := b.SetForeground(3, 7, palette.Yellow); err != nil {
		t.Fatalf("SetForeground: %v", err)
	}

	cell, err := b.Get(3, 7)
	if err != nil {
		t.Fatal(err)
	}
	if cell.Background != palette.Blue {
		t.Errorf("background = %v, expected blue", cell.Background)
	}
	if cell.Foreground != palette.Yellow {
		t.Errorf("foreground = %v, expected yellow", cell.Foreground)
	}

	// A neighboring cell is untouched
	other, err := b.Get(3, 8)
	if err != nil {
		t.Fatal(err)
	}
	if other.Background != palette.DefaultBackground {
		t.Errorf("neighbor background = %v, expected default", other.Background)
	}
}

func TestBoardSetSymbol(t *testing.T) {
	b, err := New(4, 4)
	if err != nil {
		t.Fatal(err)
	}

	if err := b.SetSymbol(1, 2, palette.SymbolSword, palette.Red); err != nil {
		t.Fatalf("SetSymbol: %v", err)
	}

	cell, _ := b.Get(1, 2)
	if cell.Symbol != palette.SymbolSword {
		t.Errorf("symbol = %v, expected sword", cell.Symbol)
	}
	if cell.Foreground != palette.Red {
		t.Errorf("foreground = %v, expected red", cell.Foreground)
	}
	// Background is left alone
	if cell.Background != palette.DefaultBackground {
		t.Errorf("background = %v, expected default", cell.Background)
	}
}

func TestBoardOutOfBounds(t *testing.T) {
	b, err := New(5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SetBackground(2, 2, palette.Green); err != nil {
		t.Fatal(err)
	}

	cases := [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {100, 100}}
	for _, c := range cases {
		err := b.SetBackground(c[0], c[1], palette.Red)
		if err == nil {
			t.Errorf("SetBackground(%d, %d) should have failed", c[0], c[1])
			continue
		}
		var be *BoundsError
		if !errors.As(err, &be) {
			t.Errorf("SetBackground(%d, %d) error = %v, expected BoundsError", c[0], c[1], err)
		}
		if _, err := b.Get(c[0], c[1]); err == nil {
			t.Errorf("Get(%d, %d) should have failed", c[0], c[1])
		}
	}

	// Board contents are unchanged after rejected writes
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			cell, _ := b.Get(row, col)
			want := palette.DefaultBackground
			if row == 2 && col == 2 {
				want = palette.Green
			}
			if cell.Background != want {
				t.Errorf("cell (%d, %d) background = %v after rejected writes, expected %v", row, col, cell.Background, want)
			}
		}
	}
}

func TestBoardClear(t *testing.T) {
	b, err := New(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SetSymbol(0, 0, palette.SymbolStar, palette.Cyan); err != nil {
		t.Fatal(err)
	}

	b.Clear()

	cell, _ := b.Get(0, 0)
	if cell.Symbol != palette.SymbolNone || cell.Foreground != palette.DefaultForeground {
		t.Errorf("cell not reset after Clear: %+v", cell)
	}
}
