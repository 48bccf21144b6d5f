package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/avoronov/gridframe/internal/engine"
	"github.com/avoronov/gridframe/internal/registry"
	"github.com/avoronov/gridframe/internal/storage"
	"github.com/avoronov/gridframe/internal/wire"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.gridframe/host_key.
	HostKeyPath string

	// DBPath is the path to the session history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Engine is the template for per-session engines; Rows and Cols are
	// replaced by the selected game's dimensions.
	Engine engine.Config
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.gridframe/sessions.db",
		IdleTimeout: 30 * time.Minute,
		Engine:      engine.DefaultConfig(16, 32),
	}
}

// SSHServer wraps a Wish SSH server that serves games over the terminal.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridframe-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open session database", "error", err)
		// Continue without history
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".gridframe", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	_, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(s.store, s.logger.With("user", sshSession.User()), s.config.Engine)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// latestRenderer keeps only the most recent frame. SSH sessions cannot own
// the Bubble Tea program, so the session model polls this slot on a tick
// instead of receiving frames as messages.
type latestRenderer struct {
	mu    sync.Mutex
	frame *wire.Frame
}

func (r *latestRenderer) Render(f *wire.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame = f
	return nil
}

func (r *latestRenderer) Close() error {
	return nil
}

func (r *latestRenderer) Latest() *wire.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// renderTickMsg drives frame polling and key-hold expiry inside a session.
type renderTickMsg time.Time

func renderTickCmd(rate float64) tea.Cmd {
	if rate <= 0 {
		rate = 30
	}
	interval := time.Duration(float64(time.Second) / rate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return renderTickMsg(t)
	})
}

// gameRun holds everything for one in-progress engine run.
type gameRun struct {
	eng      *engine.Engine
	renderer *latestRenderer
	cancel   context.CancelFunc
	done     chan error // receives the Run result exactly once
	info     registry.GameInfo
	mapper   *KeyMapper
}

// SessionModel manages the full session flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	logger   *log.Logger
	template engine.Config
	menu     MenuModel
	run      *gameRun
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, logger *log.Logger, template engine.Config) SessionModel {
	return SessionModel{
		store:    store,
		logger:   logger,
		template: template,
		menu:     NewMenuModel(store),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the menu or the running game.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.run != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates while browsing the menu.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		return m.startGame(*selected)
	}
	return m, cmd
}

// startGame constructs an engine for the chosen game and launches it.
func (m SessionModel) startGame(info registry.GameInfo) (tea.Model, tea.Cmd) {
	game, info, err := registry.Create(info.ID)
	if err != nil {
		// Menu only lists registered games, so this is unexpected.
		m.logger.Error("create game failed", "game", info.ID, "error", err)
		m.menu = NewMenuModel(m.store)
		return m, nil
	}

	cfg := m.template
	cfg.Rows = info.Rows
	cfg.Cols = info.Cols

	renderer := &latestRenderer{}
	eng, err := engine.New(cfg, game, renderer, engine.WithLogger(m.logger))
	if err != nil {
		m.logger.Error("create engine failed", "game", info.ID, "error", err)
		m.menu = NewMenuModel(m.store)
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- eng.Run(ctx)
	}()

	m.run = &gameRun{
		eng:      eng,
		renderer: renderer,
		cancel:   cancel,
		done:     done,
		info:     info,
		mapper:   NewKeyMapper(),
	}
	return m, renderTickCmd(cfg.FrameRate)
}

// updateGame handles updates while a game runs.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.endGame()
		}
		m.run.mapper.Press(msg, m.run.eng.Snapshot(), time.Now())
		return m, nil

	case renderTickMsg:
		m.run.mapper.Expire(m.run.eng.Snapshot(), time.Time(msg))
		if m.run.eng.State() == engine.StateStopped {
			return m.endGame()
		}
		return m, renderTickCmd(m.template.FrameRate)
	}

	return m, nil
}

// endGame stops the engine, records the session, and returns to the menu.
// The summary is only valid once Run has returned, so the cancel is
// followed by a wait on the run's done channel; the engine stops
// cooperatively within one frame, so the wait is bounded.
func (m SessionModel) endGame() (tea.Model, tea.Cmd) {
	run := m.run
	m.run = nil
	run.cancel()
	if runErr := <-run.done; runErr != nil {
		m.logger.Error("engine stopped", "game", run.info.ID, "error", runErr)
	}

	sum := run.eng.Summary()
	if m.store != nil && sum.Frames > 0 {
		if _, err := m.store.SaveSession(run.info.ID, "ssh", sum); err != nil {
			m.logger.Warn("could not save session", "error", err)
		}
	}

	m.menu = NewMenuModel(m.store)
	return m, m.menu.Init()
}

// View renders the menu or the running game.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.run != nil {
		var body string
		if f := m.run.renderer.Latest(); f != nil {
			body = RenderFrame(f)
		} else {
			body = waitStyle.Render("waiting for first frame...")
		}
		return titleStyle.Render(m.run.info.Title) + "\n" + body
	}

	return m.menu.View()
}
