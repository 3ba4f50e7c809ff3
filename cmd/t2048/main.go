// t2048 is the 2048 sliding tile puzzle for the terminal.
//
// Usage:
//
//	t2048                  - Play (same as "t2048 play")
//	t2048 play             - Play in this terminal
//	t2048 serve            - Serve games over SSH and WebSocket
//	t2048 best             - Show or reset the best score
//	t2048 config           - Print the effective configuration
//
// Global flags:
//
//	--config <path>        - Config file (default: ~/.t2048/config.yaml)
//	--db <path>            - Best score database
//	--difficulty <name>    - easy, normal or hard
//	--theme <name>         - classic, dark, pastel or neon
//	--fps <rate>           - Animation frame rate
//	--seed <value>         - RNG seed for reproducible games
//	--mute                 - Disable sound effects
//	--log-file <path>      - Log file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zenvertao/2048-game/internal/config"
	"github.com/zenvertao/2048-game/internal/game"
	"github.com/zenvertao/2048-game/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDBPath     string
	flagDifficulty string
	flagTheme      string
	flagFPS        int
	flagSeed       int64
	flagMute       bool
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding tile puzzle for the terminal.

Slide the board with the arrow keys, WASD, hjkl or a mouse drag. Equal
tiles merge; reach 2048 to win, and keep going for a higher score.

Available commands:
  play     - Play in this terminal (default)
  serve    - Serve games over SSH and WebSocket
  best     - Show or reset the best score
  config   - Print the effective configuration

Examples:
  t2048
  t2048 --difficulty hard --theme neon
  t2048 serve --ssh :2048 --ws :8048
  t2048 best --reset`,
	Run: runPlay,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Path to config YAML")
	flags.StringVar(&flagDBPath, "db", "", "Path to best score database")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, normal, hard")
	flags.StringVar(&flagTheme, "theme", "", "Theme: classic, dark, pastel, neon")
	flags.IntVar(&flagFPS, "fps", 0, "Animation frame rate")
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.BoolVar(&flagMute, "mute", false, "Disable sound effects")
	flags.StringVar(&flagLogFile, "log-file", "", "Path to log file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file and applies flags set on the command
// line. Errors exit the process.
func loadConfig(cmd *cobra.Command) (config.Config, string) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("difficulty") {
		cfg.Difficulty = flagDifficulty
	}
	if flags.Changed("theme") {
		cfg.Theme = flagTheme
	}
	if flags.Changed("fps") {
		cfg.FPS = flagFPS
	}
	if flags.Changed("mute") {
		cfg.Audio.Enabled = !flagMute
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid settings: %v\n", err)
		os.Exit(1)
	}
	return cfg, source
}

// openStore opens the best score database. A failure is reported and the
// game continues without persistence.
func openStore(cfg config.Config) (*storage.Store, game.BestScoreStore) {
	store, err := storage.Open(config.ExpandHome(cfg.Storage.DBPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open best score database: %v\n", err)
		return nil, nil
	}
	return store, store
}
