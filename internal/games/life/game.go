// Package life implements Conway's Game of Life on the engine board.
// Space toggles pause, S single-steps while paused, A reseeds the grid,
// Q quits. Live cells are colored by age.
package life

import (
	"math/rand"

	"github.com/avoronov/gridframe/internal/engine"
	"github.com/avoronov/gridframe/internal/palette"
	"github.com/avoronov/gridframe/internal/registry"
)

const (
	// stepEveryFrames slows evolution below the frame rate so individual
	// generations are visible at 30 fps.
	stepEveryFrames = 5
	// stepCooldown is the auto-repeat delay for manual stepping.
	stepCooldown = 5

	seedDensity = 0.3
)

// Game is the life simulation state.
type Game struct {
	rows, cols int
	cells      []uint8 // age per cell, 0 = dead
	next       []uint8
	rng        *rand.Rand
	paused     bool
	frames     int
}

// New creates a life game with a time-independent default seed; the CLI
// reseeds via the A key.
func New(seed int64) *Game {
	return &Game{rng: rand.New(rand.NewSource(seed))}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:    "life",
		Title: "Game of Life",
		Rows:  24,
		Cols:  40,
	}, func() engine.Game {
		return New(1)
	})
}

// Initialize seeds the grid and paints the first generation.
func (g *Game) Initialize(gctx *engine.Context) {
	b := gctx.Board()
	g.rows, g.cols = b.Rows(), b.Cols()
	g.cells = make([]uint8, g.rows*g.cols)
	g.next = make([]uint8, g.rows*g.cols)

	gctx.Keys().S().SetFireCooldown(stepCooldown)

	g.seed()
	g.paint(gctx)
}

// seed randomizes the grid.
func (g *Game) seed() {
	for i := range g.cells {
		if g.rng.Float64() < seedDensity {
			g.cells[i] = 1
		} else {
			g.cells[i] = 0
		}
	}
}

// GameLoop handles input and advances the simulation on its cadence.
func (g *Game) GameLoop(gctx *engine.Context) {
	keys := gctx.Keys()

	if keys.Q().JustPressed() {
		gctx.Quit()
		return
	}
	if keys.Space().JustPressed() {
		g.paused = !g.paused
	}
	if keys.A().JustPressed() {
		g.seed()
		g.paint(gctx)
		return
	}

	if g.paused {
		// Manual stepping repeats while S is held
		if keys.S().Fire() {
			g.step()
			g.paint(gctx)
		}
		return
	}

	g.frames++
	if g.frames%stepEveryFrames == 0 {
		g.step()
		g.paint(gctx)
	}
}

// step computes the next generation. Ages saturate so colors settle.
func (g *Game) step() {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			i := row*g.cols + col
			n := g.neighbors(row, col)
			switch {
			case g.cells[i] > 0 && (n == 2 || n == 3):
				if g.cells[i] < 250 {
					g.next[i] = g.cells[i] + 1
				} else {
					g.next[i] = g.cells[i]
				}
			case g.cells[i] == 0 && n == 3:
				g.next[i] = 1
			default:
				g.next[i] = 0
			}
		}
	}
	g.cells, g.next = g.next, g.cells
}

// neighbors counts live cells around (row, col) with wrap-around edges.
func (g *Game) neighbors(row, col int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r := (row + dr + g.rows) % g.rows
			c := (col + dc + g.cols) % g.cols
			if g.cells[r*g.cols+c] > 0 {
				count++
			}
		}
	}
	return count
}

// ageColor maps cell age to a palette color.
func ageColor(age uint8) palette.Color {
	switch {
	case age == 0:
		return palette.DefaultBackground
	case age < 3:
		return palette.Green
	case age < 10:
		return palette.Cyan
	default:
		return palette.SteelBlue
	}
}

// paint writes the current generation to the board.
func (g *Game) paint(gctx *engine.Context) {
	b := gctx.Board()
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			_ = b.SetBackground(row, col, ageColor(g.cells[row*g.cols+col]))
		}
	}
}

// Population returns the number of live cells, used by tests.
func (g *Game) Population() int {
	count := 0
	for _, age := range g.cells {
		if age > 0 {
			count++
		}
	}
	return count
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}
