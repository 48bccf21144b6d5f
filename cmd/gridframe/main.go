// gridframe is a frame-paced grid game engine for the terminal.
//
// Usage:
//
//	gridframe list              - List available games
//	gridframe play <game>       - Play a game in the local terminal
//	gridframe serve             - Start SSH server for remote play
//	gridframe stream <game>     - Stream frames to a remote renderer
//	gridframe sessions [game]   - Show recorded session history
//
// Global flags:
//
//	--config <path>  - Path to config YAML (default: ~/.gridframe/config.yaml)
//	--db <path>      - Override session database path
//	--fps <rate>     - Override target frame rate
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/avoronov/gridframe/internal/games/life"
	_ "github.com/avoronov/gridframe/internal/games/painter"

	"github.com/avoronov/gridframe/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
	flagFPS    float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridframe",
	Short: "Frame-paced grid games in your terminal",
	Long: `gridframe runs small grid games at a fixed frame rate, locally or
over SSH, and can stream encoded frames to a remote renderer.

Available commands:
  list      - Show all available games
  play      - Play a game in the local terminal
  serve     - Start SSH server for remote play
  stream    - Stream frames to a remote websocket renderer
  sessions  - View recorded session history

Examples:
  gridframe list
  gridframe play painter
  gridframe serve --ssh :2222
  gridframe stream life --url ws://localhost:8080/frames
  gridframe sessions painter`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Override session database path")
	rootCmd.PersistentFlags().Float64Var(&flagFPS, "fps", 0, "Override target frame rate")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// loadConfig loads the YAML config and applies global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagFPS > 0 {
		cfg.Frame.Rate = flagFPS
	}
	return cfg, nil
}
