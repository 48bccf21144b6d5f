// Package engine runs the frame loop that drives a grid game: sample input,
// run the game callback, encode the board, hand the frame to a renderer,
// then pace to the target rate. One logical thread executes the loop; the
// only asynchrony is input-delivery collaborators writing into the shared
// key snapshot.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/avoronov/gridframe/internal/board"
	"github.com/avoronov/gridframe/internal/input"
	"github.com/avoronov/gridframe/internal/wire"
)

// ErrConnectionLost marks a renderer failure the loop cannot recover from.
// Renderers wrap it into errors they return from Render when the peer is
// gone for good; any other error is treated as transient and the frame is
// dropped.
var ErrConnectionLost = errors.New("renderer connection lost")

// State is the scheduler lifecycle state.
type State int32

const (
	StateNotStarted State = iota
	StateRunning
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Game is the capability contract a game supplies to the engine.
// Initialize runs once before the first transmitted frame; GameLoop runs
// once per frame, reading key signals and mutating the board.
type Game interface {
	Initialize(gctx *Context)
	GameLoop(gctx *Context)
}

// Renderer receives one encoded frame per call. Returning an error wrapping
// ErrConnectionLost stops the loop; any other error drops the frame and the
// loop continues.
type Renderer interface {
	Render(f *wire.Frame) error
	Close() error
}

// Context is the game's handle into the engine, passed to both callbacks.
type Context struct {
	e *Engine
}

// Board returns the grid the game draws into.
func (c *Context) Board() *board.Board {
	return c.e.board
}

// Keys returns the per-key state machines, updated once per frame before
// GameLoop runs.
func (c *Context) Keys() *input.Set {
	return c.e.keys
}

// FrameCount returns the number of completed loop iterations.
func (c *Context) FrameCount() uint64 {
	return c.e.FrameCount()
}

// Quit asks the engine to stop after the current iteration.
func (c *Context) Quit() {
	c.e.Quit()
}

// Config holds the engine's tunables. Zero values fall back to defaults.
type Config struct {
	Rows int
	Cols int

	// FrameRate is the target cadence in frames per second. Default 30.
	FrameRate float64

	// WarmUp is the grace period before the first transmitted frame,
	// giving the renderer time to connect. Default 1s.
	WarmUp time.Duration

	// FrameLimit caps the number of frames before cooperative shutdown.
	// Zero means unlimited. Mostly useful for tests and benchmarks.
	FrameLimit uint64

	// Encoding selects the wire form of transmitted frames.
	Encoding wire.Encoding
}

// DefaultConfig returns a config with the reference cadence and warm-up.
func DefaultConfig(rows, cols int) Config {
	return Config{
		Rows:      rows,
		Cols:      cols,
		FrameRate: 30,
		WarmUp:    time.Second,
	}
}

// Summary describes a finished run, used by the session store.
type Summary struct {
	Frames    uint64
	Duration  time.Duration
	EndReason string
}

// Engine is the frame scheduler. Create one per game run; once stopped it
// cannot be restarted.
type Engine struct {
	cfg      Config
	game     Game
	renderer Renderer
	logger   *log.Logger

	board    *board.Board
	snapshot *input.Snapshot
	keys     *input.Set
	encoder  *wire.Encoder

	state     atomic.Int32
	frames    atomic.Uint64
	quit      chan struct{}
	quitOnce  atomic.Bool
	started   time.Time
	endReason string
}

// Option tweaks engine construction.
type Option func(*Engine)

// WithLogger replaces the engine's default logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New builds an engine for the given game and renderer. Board construction
// errors (including the cell-count cap) are reported, never fatal, so the
// caller can retry with a smaller grid.
func New(cfg Config, game Game, renderer Renderer, opts ...Option) (*Engine, error) {
	if game == nil {
		return nil, errors.New("engine: nil game")
	}
	if renderer == nil {
		return nil, errors.New("engine: nil renderer")
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 30
	}
	if cfg.WarmUp <= 0 {
		cfg.WarmUp = time.Second
	}

	b, err := board.New(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	snap := input.NewSnapshot()
	e := &Engine{
		cfg:      cfg,
		game:     game,
		renderer: renderer,
		logger:   log.NewWithOptions(os.Stderr, log.Options{Prefix: "engine"}),
		board:    b,
		snapshot: snap,
		keys:     input.NewSet(snap),
		encoder:  wire.NewEncoder(cfg.Encoding),
		quit:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Snapshot returns the raw key state that input-delivery collaborators
// write into.
func (e *Engine) Snapshot() *input.Snapshot {
	return e.snapshot
}

// Board returns the engine's grid.
func (e *Engine) Board() *board.Board {
	return e.board
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// FrameCount returns the number of completed loop iterations.
func (e *Engine) FrameCount() uint64 {
	return e.frames.Load()
}

// Quit requests a cooperative stop: the current iteration finishes, then
// the loop exits and the renderer is torn down. Safe to call from any
// goroutine, any number of times.
func (e *Engine) Quit() {
	if e.quitOnce.CompareAndSwap(false, true) {
		close(e.quit)
	}
}

// Summary reports what the run did. Valid once Run has returned.
func (e *Engine) Summary() Summary {
	var d time.Duration
	if !e.started.IsZero() {
		d = time.Since(e.started)
	}
	return Summary{
		Frames:    e.frames.Load(),
		Duration:  d,
		EndReason: e.endReason,
	}
}

// Run executes the frame loop until the frame limit is hit, Quit is called,
// the context is cancelled, or the renderer reports the connection lost.
// Cancellation is a shutdown request, not an error; Run returns nil for
// every cooperative stop. Once Run returns the engine is Stopped for good.
func (e *Engine) Run(ctx context.Context) error {
	if !e.state.CompareAndSwap(int32(StateNotStarted), int32(StateRunning)) {
		return fmt.Errorf("engine: cannot start from state %q", e.State())
	}
	defer func() {
		e.state.Store(int32(StateStopped))
		if err := e.renderer.Close(); err != nil {
			e.logger.Warn("renderer close failed", "error", err)
		}
	}()

	e.started = time.Now()
	gctx := &Context{e: e}

	// Warm-up grace period before the first transmitted frame.
	if !e.pause(ctx, e.cfg.WarmUp) {
		e.endReason = e.stopReason()
		return nil
	}

	e.game.Initialize(gctx)
	if stop := e.transmit(); stop {
		e.endReason = "connection lost"
		return nil
	}

	pace := newPacer(time.Duration(float64(time.Second) / e.cfg.FrameRate))
	pace.start()

	for {
		e.keys.UpdateAll()
		e.game.GameLoop(gctx)
		if stop := e.transmit(); stop {
			e.endReason = "connection lost"
			return nil
		}

		if !e.pause(ctx, pace.delay()) {
			e.endReason = e.stopReason()
			return nil
		}
		pace.mark()

		frame := e.frames.Add(1)
		if e.cfg.FrameLimit > 0 && frame >= e.cfg.FrameLimit {
			e.logger.Info("frame limit reached", "frames", frame)
			e.endReason = "frame limit"
			return nil
		}
	}
}

// stopReason distinguishes a Quit call from an external interrupt.
func (e *Engine) stopReason() string {
	if e.quitOnce.Load() {
		return "quit"
	}
	return "interrupted"
}

// transmit encodes the board and hands the frame to the renderer. Returns
// true when the loop must stop.
func (e *Engine) transmit() bool {
	err := e.renderer.Render(e.encoder.Encode(e.board))
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConnectionLost) {
		e.logger.Error("renderer connection lost", "error", err)
		return true
	}
	// Transient: drop the frame and keep going.
	e.logger.Warn("frame dropped", "error", err)
	return false
}

// pause blocks for d, returning false when the wait is interrupted by Quit
// or context cancellation. Interruption is a shutdown signal, never an
// error to surface.
func (e *Engine) pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		// Still honor pending shutdown requests on over-budget frames.
		select {
		case <-e.quit:
			return false
		case <-ctx.Done():
			return false
		default:
			return true
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-e.quit:
		return false
	case <-ctx.Done():
		return false
	}
}
