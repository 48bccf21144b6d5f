package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avoronov/gridframe/internal/board"
	"github.com/avoronov/gridframe/internal/palette"
	"github.com/avoronov/gridframe/internal/wire"
)

// ansi maps palette colors to terminal colors. The wire carries palette
// indices; this table is the terminal renderer's half of the contract.
var ansi = map[palette.Color]lipgloss.Color{
	palette.Black:       lipgloss.Color("0"),
	palette.White:       lipgloss.Color("15"),
	palette.Red:         lipgloss.Color("1"),
	palette.Green:       lipgloss.Color("2"),
	palette.Blue:        lipgloss.Color("4"),
	palette.Yellow:      lipgloss.Color("3"),
	palette.Magenta:     lipgloss.Color("5"),
	palette.Cyan:        lipgloss.Color("6"),
	palette.Orange:      lipgloss.Color("208"),
	palette.Gray:        lipgloss.Color("245"),
	palette.LightSalmon: lipgloss.Color("216"),
	palette.SteelBlue:   lipgloss.Color("67"),
}

func termColor(c palette.Color) lipgloss.Color {
	if col, ok := ansi[c]; ok {
		return col
	}
	return ansi[palette.DefaultForeground]
}

// styleKey identifies a color pair so adjacent identical cells share one
// escape sequence.
type styleKey struct {
	bg palette.Color
	fg palette.Color
}

// RenderFrame converts a wire frame to a styled string for display.
// Frames that fail to decode render as an empty string; the next good
// frame repairs the view.
func RenderFrame(f *wire.Frame) string {
	b, err := wire.Decode(f)
	if err != nil {
		return ""
	}
	return renderBoard(b)
}

// renderBoard draws the grid. Each cell becomes two terminal columns so the
// board looks roughly square; adjacent cells with the same colors are
// grouped to keep the ANSI output small.
func renderBoard(b *board.Board) string {
	var sb strings.Builder
	sb.Grow(b.Rows() * b.Cols() * 4)

	styles := make(map[styleKey]lipgloss.Style)
	for row := 0; row < b.Rows(); row++ {
		if row > 0 {
			sb.WriteRune('\n')
		}
		col := 0
		for col < b.Cols() {
			cell, _ := b.Get(row, col)
			run := styleKey{bg: cell.Background, fg: cell.Foreground}

			var chunk strings.Builder
			for col < b.Cols() {
				cell, _ = b.Get(row, col)
				if cell.Background != run.bg || cell.Foreground != run.fg {
					break
				}
				chunk.WriteRune(cell.Symbol.Rune())
				chunk.WriteRune(' ')
				col++
			}

			style, ok := styles[run]
			if !ok {
				style = lipgloss.NewStyle().
					Background(termColor(run.bg)).
					Foreground(termColor(run.fg))
				styles[run] = style
			}
			sb.WriteString(style.Render(chunk.String()))
		}
	}
	return sb.String()
}
