// Package palette defines the fixed color and symbol palettes that board
// cells index into. Indices are small integers so they serialize compactly
// on the wire; the renderer on the other end owns the actual RGB values and
// glyph shapes.
package palette

// Color is an index into the fixed color palette.
type Color uint8

// Named palette colors. DefaultBackground and DefaultForeground are what a
// freshly constructed board cell starts with.
const (
	Black Color = iota
	White
	Red
	Green
	Blue
	Yellow
	Magenta
	Cyan
	Orange
	Gray
	LightSalmon
	SteelBlue

	DefaultBackground = Black
	DefaultForeground = White
)

// String returns a human-readable name for the color.
func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	case Magenta:
		return "magenta"
	case Cyan:
		return "cyan"
	case Orange:
		return "orange"
	case Gray:
		return "gray"
	case LightSalmon:
		return "lightsalmon"
	case SteelBlue:
		return "steelblue"
	default:
		return "unknown"
	}
}

// Symbol is an index into the fixed glyph palette.
type Symbol uint8

// Named palette symbols. SymbolNone renders as an empty cell.
const (
	SymbolNone Symbol = iota
	SymbolCircle
	SymbolSquare
	SymbolTriangle
	SymbolStar
	SymbolHeart
	SymbolSword
	SymbolArrowUp
	SymbolArrowDown
	SymbolArrowLeft
	SymbolArrowRight
)

// Rune returns the terminal glyph for a symbol. Unknown symbols render as a
// space so a stale index never corrupts the display.
func (s Symbol) Rune() rune {
	switch s {
	case SymbolNone:
		return ' '
	case SymbolCircle:
		return '●'
	case SymbolSquare:
		return '■'
	case SymbolTriangle:
		return '▲'
	case SymbolStar:
		return '★'
	case SymbolHeart:
		return '♥'
	case SymbolSword:
		return '†'
	case SymbolArrowUp:
		return '↑'
	case SymbolArrowDown:
		return '↓'
	case SymbolArrowLeft:
		return '←'
	case SymbolArrowRight:
		return '→'
	default:
		return ' '
	}
}
