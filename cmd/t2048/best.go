package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zenvertao/2048-game/internal/config"
	"github.com/zenvertao/2048-game/internal/storage"
)

var flagReset bool

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show or reset the best score",
	Long: `Display the best score and when it was set.

Examples:
  t2048 best
  t2048 best --reset
  t2048 best --db ./best.db`,
	Args: cobra.NoArgs,
	Run:  runBest,
}

func init() {
	bestCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the stored best score")
}

func runBest(cmd *cobra.Command, _ []string) {
	cfg, _ := loadConfig(cmd)

	store, err := storage.Open(config.ExpandHome(cfg.Storage.DBPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening best score database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagReset {
		if err := store.ResetBestScore(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Best score reset.")
		return
	}

	best, err := store.Best()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving best score: %v\n", err)
		os.Exit(1)
	}

	if best.Score == 0 {
		fmt.Println("No best score recorded yet.")
		fmt.Println()
		fmt.Println("Run 't2048' to set one!")
		return
	}

	fmt.Printf("Best score: %d\n", best.Score)
	if !best.UpdatedAt.IsZero() {
		fmt.Printf("Set on:     %s\n", best.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}
