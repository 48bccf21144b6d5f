package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avoronov/gridframe/internal/registry"
	"github.com/avoronov/gridframe/internal/storage"
)

var flagSessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions [game]",
	Short: "Show recorded session history",
	Long: `Display recent recorded sessions, newest first. With a game ID the
list is filtered to that game and aggregate stats are shown.

Examples:
  gridframe sessions
  gridframe sessions painter
  gridframe sessions life --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionsLimit, "limit", 10, "Maximum sessions to show")
}

func runSessions(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var sessions []storage.Session
	if len(args) == 1 {
		gameID := args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			os.Exit(1)
		}
		sessions, err = store.GameSessions(gameID, flagSessionsLimit)
		if err == nil {
			printGameStats(store, gameID)
		}
	} else {
		sessions, err = store.RecentSessions(flagSessionsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading sessions: %v\n", err)
		os.Exit(1)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	fmt.Printf("  %-10s  %-8s  %8s  %10s  %6s  %s\n",
		"Game", "Surface", "Frames", "Duration", "FPS", "Ended")
	fmt.Printf("  %-10s  %-8s  %8s  %10s  %6s  %s\n",
		"----", "-------", "------", "--------", "---", "-----")
	for _, s := range sessions {
		fmt.Printf("  %-10s  %-8s  %8d  %10s  %6.1f  %s\n",
			s.GameID, s.Surface, s.Frames, s.Duration.Round(10*time.Millisecond), s.AvgFPS, s.EndReason)
	}
}

// printGameStats shows the aggregate line above a filtered listing.
func printGameStats(store *storage.Store, gameID string) {
	stats, err := store.GetGameStats(gameID)
	if err != nil || stats.Runs == 0 {
		return
	}
	fmt.Printf("%s: %d runs, %d total frames, longest run %s, last played %s\n\n",
		gameID, stats.Runs, stats.TotalFrames, stats.LongestRun.Round(time.Second),
		stats.LastPlayed.Format("2006-01-02 15:04"))
}
