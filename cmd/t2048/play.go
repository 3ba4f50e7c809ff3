package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zenvertao/2048-game/internal/audio"
	"github.com/zenvertao/2048-game/internal/logging"
	"github.com/zenvertao/2048-game/internal/platform/tui"
	"github.com/zenvertao/2048-game/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Arrows/WASD/hjkl - Slide tiles (or drag with the mouse)
  N                - New game
  X                - Change difficulty (asks to confirm)
  C                - Keep playing after reaching 2048
  T                - Next theme
  M                - Mute sound effects
  ?                - Show all keys
  Q/Ctrl+C         - Quit

Examples:
  t2048 play
  t2048 play --difficulty easy
  t2048 play --seed 42 --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: play needs an interactive terminal")
		os.Exit(1)
	}

	cfg, source := loadConfig(cmd)

	logger, logCloser, err := logging.New(cfg.Log, logging.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open log: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	logger.Info("starting", "config", source)

	// Validated by loadConfig.
	difficulty, _ := cfg.GameDifficulty()
	th, _ := cfg.GameTheme()

	store, bestStore := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	runErr := tui.Run(tui.Options{
		Session: session.Options{
			Difficulty: difficulty,
			Seed:       flagSeed,
			Store:      bestStore,
			Timing:     cfg.Timing(),
			Audio:      audio.New(cfg.Audio.Enabled, cfg.Audio.Volume, logger),
			Logger:     logger,
		},
		Theme:          th,
		FrameInterval:  cfg.FrameInterval(),
		SwipeThreshold: cfg.Input.SwipeThreshold,
		Logger:         logger,
	})
	if runErr != nil {
		logger.Error("game exited", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
