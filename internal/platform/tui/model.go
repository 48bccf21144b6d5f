// Package tui runs engine games in the local terminal. The engine keeps
// its own frame-paced loop in a goroutine; the Bubble Tea program is a
// renderer on one side (frames arrive as messages) and an input source on
// the other (key presses become synthetic holds in the shared snapshot).
package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/avoronov/gridframe/internal/engine"
	"github.com/avoronov/gridframe/internal/input"
	"github.com/avoronov/gridframe/internal/registry"
	"github.com/avoronov/gridframe/internal/wire"
)

// holdTickInterval is how often expired synthetic key holds are released.
const holdTickInterval = 50 * time.Millisecond

// frameMsg carries one encoded frame from the engine into the UI loop.
type frameMsg struct {
	frame *wire.Frame
}

// engineDoneMsg reports that the engine loop has returned.
type engineDoneMsg struct {
	err error
}

// holdTickMsg drives synthetic key-hold expiry.
type holdTickMsg time.Time

func holdTickCmd() tea.Cmd {
	return tea.Tick(holdTickInterval, func(t time.Time) tea.Msg {
		return holdTickMsg(t)
	})
}

// programRenderer forwards engine frames into the Bubble Tea program. The
// program is attached after construction because the engine and the program
// reference each other; frames rendered before attach are dropped, which
// only happens during warm-up.
type programRenderer struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRenderer) attach(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRenderer) Render(f *wire.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.p == nil {
		return nil
	}
	r.p.Send(frameMsg{frame: f})
	return nil
}

func (r *programRenderer) Close() error {
	return nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	waitStyle  = lipgloss.NewStyle().Faint(true).Padding(1, 2)
)

// Model is the Bubble Tea model for a single game run.
type Model struct {
	snap     *input.Snapshot
	mapper   *KeyMapper
	info     registry.GameInfo
	keys     uiKeyMap
	help     help.Model
	cancel   context.CancelFunc
	frame    *wire.Frame
	err      error
	quitting bool
}

// NewModel creates the model for a constructed engine.
func NewModel(snap *input.Snapshot, info registry.GameInfo, cancel context.CancelFunc) Model {
	return Model{
		snap:   snap,
		mapper: NewKeyMapper(),
		info:   info,
		keys:   defaultUIKeyMap(),
		help:   help.New(),
		cancel: cancel,
	}
}

// Init starts the hold-expiry ticker.
func (m Model) Init() tea.Cmd {
	return holdTickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		m.frame = msg.frame
		return m, nil

	case holdTickMsg:
		m.mapper.Expire(m.snap, time.Time(msg))
		return m, holdTickCmd()

	case engineDoneMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey routes chrome keys to the UI and everything else to the game.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		m.mapper.ReleaseAll(m.snap)
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	m.mapper.Press(msg, m.snap, time.Now())
	return m, nil
}

// View renders the last received frame with a title and help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.frame == nil {
		body = waitStyle.Render("waiting for first frame...")
	} else {
		body = RenderFrame(m.frame)
	}

	return titleStyle.Render(m.info.Title) + "\n" + body + "\n" + m.help.View(m.keys)
}

// Run constructs an engine for the game, hosts it in a Bubble Tea program,
// and blocks until either side finishes. The returned summary covers the
// completed run even when the user force-quits.
func Run(ctx context.Context, cfg engine.Config, game engine.Game, info registry.GameInfo, logger *log.Logger) (engine.Summary, error) {
	renderer := &programRenderer{}
	eng, err := engine.New(cfg, game, renderer, engine.WithLogger(logger))
	if err != nil {
		return engine.Summary{}, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(eng.Snapshot(), info, cancel)
	p := tea.NewProgram(model, tea.WithAltScreen())
	renderer.attach(p)

	engineErr := make(chan error, 1)
	go func() {
		err := eng.Run(ctx)
		engineErr <- err
		p.Send(engineDoneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-engineErr
		return eng.Summary(), fmt.Errorf("tui: %w", err)
	}
	cancel()
	return eng.Summary(), <-engineErr
}
