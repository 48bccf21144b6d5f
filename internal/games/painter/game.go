// Package painter implements a small drawing game used to exercise the
// engine's full input surface: held arrows auto-repeat cursor movement
// through the fire cooldown, Space paints continuously while held, and the
// letter keys pick brush colors.
package painter

import (
	"github.com/avoronov/gridframe/internal/engine"
	"github.com/avoronov/gridframe/internal/input"
	"github.com/avoronov/gridframe/internal/palette"
	"github.com/avoronov/gridframe/internal/registry"
)

// moveCooldown is the auto-repeat delay, in frames, while an arrow is held.
const moveCooldown = 3

var brushes = []palette.Color{palette.Green, palette.Red, palette.Blue, palette.Yellow}

// Game is the painter game state.
type Game struct {
	row, col int
	brush    int
}

// New creates a painter game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:    "painter",
		Title: "Painter",
		Rows:  16,
		Cols:  32,
	}, func() engine.Game {
		return New()
	})
}

// Initialize centers the cursor and draws it.
func (g *Game) Initialize(gctx *engine.Context) {
	b := gctx.Board()
	g.row = b.Rows() / 2
	g.col = b.Cols() / 2

	keys := gctx.Keys()
	for _, m := range []*input.Machine{
		keys.Up(), keys.Down(), keys.Left(), keys.Right(),
	} {
		m.SetFireCooldown(moveCooldown)
	}
	// Space paints every held frame.
	keys.Space().SetFireCooldown(0)

	g.drawCursor(gctx)
}

// GameLoop moves the cursor, paints, and handles brush selection.
func (g *Game) GameLoop(gctx *engine.Context) {
	keys := gctx.Keys()
	b := gctx.Board()

	if keys.Q().JustPressed() {
		gctx.Quit()
		return
	}

	// Brush selection on the letter keys
	switch {
	case keys.W().JustPressed():
		g.brush = 0
	case keys.A().JustPressed():
		g.brush = 1
	case keys.S().JustPressed():
		g.brush = 2
	case keys.D().JustPressed():
		g.brush = 3
	}

	// Erase the cursor glyph before moving; painted background stays.
	prev, err := b.Get(g.row, g.col)
	if err == nil {
		_ = b.SetSymbol(g.row, g.col, palette.SymbolNone, prev.Foreground)
	}

	// Held arrows repeat through the cooldown
	if keys.Up().Fire() && g.row > 0 {
		g.row--
	}
	if keys.Down().Fire() && g.row < b.Rows()-1 {
		g.row++
	}
	if keys.Left().Fire() && g.col > 0 {
		g.col--
	}
	if keys.Right().Fire() && g.col < b.Cols()-1 {
		g.col++
	}

	if keys.Space().Fire() {
		_ = b.SetBackground(g.row, g.col, brushes[g.brush])
	}

	g.drawCursor(gctx)
}

// drawCursor marks the cursor cell with the brush-colored star.
func (g *Game) drawCursor(gctx *engine.Context) {
	_ = gctx.Board().SetSymbol(g.row, g.col, palette.SymbolStar, brushes[g.brush])
}

// Cursor returns the cursor position, used by tests.
func (g *Game) Cursor() (row, col int) {
	return g.row, g.col
}
