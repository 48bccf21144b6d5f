package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/avoronov/gridframe/internal/engine"
	"github.com/avoronov/gridframe/internal/registry"
	"github.com/avoronov/gridframe/internal/storage"
	"github.com/avoronov/gridframe/internal/transport"
)

var flagStreamURL string

var streamCmd = &cobra.Command{
	Use:   "stream <game>",
	Short: "Stream frames to a remote websocket renderer",
	Long: `Run a game headless and stream its encoded frames to a remote
renderer over a websocket. Key events sent back by the renderer drive the
game's input.

The run stops when the game quits, the frame limit is reached, or the
connection to the renderer is lost.

Examples:
  gridframe stream life --url ws://localhost:8080/frames
  gridframe stream painter --url ws://render.example.com/frames --fps 15`,
	Args: cobra.ExactArgs(1),
	Run:  runStream,
}

func init() {
	streamCmd.Flags().StringVar(&flagStreamURL, "url", "", "Websocket URL of the remote renderer (required)")
	//nolint:errcheck // Flag exists, registered one line above
	streamCmd.MarkFlagRequired("url")
}

func runStream(cmd *cobra.Command, args []string) {
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

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridframe",
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := transport.Dial(ctx, flagStreamURL, transport.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to renderer: %v\n", err)
		os.Exit(1)
	}

	engCfg := cfg.Engine(logger)
	engCfg.Rows = info.Rows
	engCfg.Cols = info.Cols

	eng, err := engine.New(engCfg, game, client, engine.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating engine: %v\n", err)
		os.Exit(1)
	}

	// The remote renderer's key events drive the shared input snapshot.
	go client.ForwardInputs(ctx, eng.Snapshot())

	logger.Info("streaming", "game", gameID, "url", flagStreamURL, "board",
		fmt.Sprintf("%dx%d", info.Rows, info.Cols))

	if runErr := eng.Run(ctx); runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	sum := eng.Summary()
	if sum.Frames > 0 {
		if store, storeErr := storage.Open(cfg.Storage.DBPath); storeErr == nil {
			//nolint:errcheck // Best-effort save, history is advisory
			store.SaveSession(gameID, "stream", sum)
			store.Close()
		}
	}
	logger.Info("stream finished", "frames", sum.Frames, "reason", sum.EndReason)
}
