package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/avoronov/gridframe/internal/platform/tui"
	"github.com/avoronov/gridframe/internal/registry"
	"github.com/avoronov/gridframe/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game in the local terminal",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Game input
  Space        - Game action
  Q            - Quit the game
  Ctrl+C       - Force quit

Examples:
  gridframe play painter
  gridframe play life --fps 15`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'gridframe list' to see available games.")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	game, info, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// The engine keeps logging during the run; the terminal belongs to the
	// game, so those messages go nowhere.
	logger := log.New(io.Discard)

	engCfg := cfg.Engine(logger)
	engCfg.Rows = info.Rows
	engCfg.Cols = info.Cols

	// Each cell renders as two terminal columns plus chrome lines.
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if w < info.Cols*2 || h < info.Rows+2 {
			fmt.Fprintf(os.Stderr, "Warning: terminal %dx%d is small for a %dx%d board\n",
				w, h, info.Rows, info.Cols)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, runErr := tui.Run(ctx, engCfg, game, info, logger)
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	if sum.Frames > 0 {
		if store, storeErr := storage.Open(cfg.Storage.DBPath); storeErr == nil {
			//nolint:errcheck // Best-effort save, history is advisory
			store.SaveSession(gameID, "local", sum)
			store.Close()
		}
	}

	fmt.Printf("%s: %d frames in %s (%s)\n",
		info.Title, sum.Frames, sum.Duration.Round(10*time.Millisecond), sum.EndReason)
}
