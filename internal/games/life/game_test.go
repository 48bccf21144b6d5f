package life

import (
	"context"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/avoronov/gridframe/internal/engine"
	"github.com/avoronov/gridframe/internal/input"
	"github.com/avoronov/gridframe/internal/palette"
	"github.com/avoronov/gridframe/internal/wire"
)

type discardRenderer struct{}

func (discardRenderer) Render(*wire.Frame) error { return nil }
func (discardRenderer) Close() error             { return nil }

// grid builds a game with the given live cells set to age 1.
func grid(rows, cols int, live ...[2]int) *Game {
	g := &Game{
		rows:  rows,
		cols:  cols,
		cells: make([]uint8, rows*cols),
		next:  make([]uint8, rows*cols),
	}
	for _, p := range live {
		g.cells[p[0]*cols+p[1]] = 1
	}
	return g
}

func alive(g *Game) [][2]int {
	var out [][2]int
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if g.cells[row*g.cols+col] > 0 {
				out = append(out, [2]int{row, col})
			}
		}
	}
	return out
}

func TestBlinkerOscillates(t *testing.T) {
	g := grid(5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})

	g.step()
	horizontal := [][2]int{{2, 1}, {2, 2}, {2, 3}}
	if got := alive(g); !reflect.DeepEqual(got, horizontal) {
		t.Fatalf("after one step: %v, want %v", got, horizontal)
	}

	g.step()
	vertical := [][2]int{{1, 2}, {2, 2}, {3, 2}}
	if got := alive(g); !reflect.DeepEqual(got, vertical) {
		t.Fatalf("after two steps: %v, want %v", got, vertical)
	}
}

func TestBlockIsStillAndAges(t *testing.T) {
	g := grid(5, 5, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{2, 2})

	for i := 0; i < 3; i++ {
		g.step()
	}
	if got := len(alive(g)); got != 4 {
		t.Fatalf("population = %d, want 4", got)
	}
	// Survivors age each generation.
	if age := g.cells[1*g.cols+1]; age != 4 {
		t.Fatalf("age = %d, want 4", age)
	}
}

func TestLonelyCellDies(t *testing.T) {
	g := grid(5, 5, [2]int{2, 2})
	g.step()
	if got := g.Population(); got != 0 {
		t.Fatalf("population = %d, want 0", got)
	}
}

func TestNeighborsWrapAround(t *testing.T) {
	// Corner cell sees the three opposite corners through the wrap.
	g := grid(4, 4, [2]int{0, 0}, [2]int{3, 3}, [2]int{0, 3}, [2]int{3, 0})
	if n := g.neighbors(0, 0); n != 3 {
		t.Fatalf("neighbors = %d, want 3", n)
	}
}

func TestAgeColor(t *testing.T) {
	cases := []struct {
		age  uint8
		want palette.Color
	}{
		{0, palette.DefaultBackground},
		{1, palette.Green},
		{2, palette.Green},
		{3, palette.Cyan},
		{9, palette.Cyan},
		{10, palette.SteelBlue},
		{250, palette.SteelBlue},
	}
	for _, c := range cases {
		if got := ageColor(c.age); got != c.want {
			t.Errorf("ageColor(%d) = %v, want %v", c.age, got, c.want)
		}
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a := New(7)
	a.rows, a.cols = 10, 10
	a.cells = make([]uint8, 100)
	a.next = make([]uint8, 100)
	a.seed()

	b := New(7)
	b.rows, b.cols = 10, 10
	b.cells = make([]uint8, 100)
	b.next = make([]uint8, 100)
	b.seed()

	if !reflect.DeepEqual(a.cells, b.cells) {
		t.Fatal("same seed produced different grids")
	}
	if pop := a.Population(); pop == 0 || pop == 100 {
		t.Fatalf("population = %d, want a mixed grid", pop)
	}
}

// runFrames drives the game through the engine with the given keys held.
func runFrames(t *testing.T, g *Game, frames uint64, held ...input.Key) {
	t.Helper()

	cfg := engine.Config{
		Rows:       24,
		Cols:       40,
		FrameRate:  500,
		WarmUp:     time.Millisecond,
		FrameLimit: frames,
	}
	eng, err := engine.New(cfg, g, discardRenderer{}, engine.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, k := range held {
		eng.Snapshot().Press(k)
	}
	if err := eng.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

// replica rebuilds the grid a fresh game seeds during Initialize.
func replica(seed int64, rows, cols int) *Game {
	g := New(seed)
	g.rows, g.cols = rows, cols
	g.cells = make([]uint8, rows*cols)
	g.next = make([]uint8, rows*cols)
	g.seed()
	return g
}

func TestEvolvesOnCadence(t *testing.T) {
	g := New(1)
	runFrames(t, g, stepEveryFrames)

	want := replica(1, 24, 40)
	want.step()
	if !reflect.DeepEqual(g.cells, want.cells) {
		t.Fatal("grid does not match one generation from the seed")
	}
}

func TestSpacePauses(t *testing.T) {
	g := New(1)
	runFrames(t, g, stepEveryFrames+2, input.KeySpace)

	if !g.Paused() {
		t.Fatal("Space did not pause")
	}
	// Paused grids do not evolve.
	want := replica(1, 24, 40)
	if !reflect.DeepEqual(g.cells, want.cells) {
		t.Fatal("paused grid evolved")
	}
}

func TestStepWhilePaused(t *testing.T) {
	g := New(1)
	g.paused = true
	runFrames(t, g, 1, input.KeyS)

	want := replica(1, 24, 40)
	want.step()
	if !reflect.DeepEqual(g.cells, want.cells) {
		t.Fatal("S did not advance exactly one generation")
	}
}
