package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/cliprdf/internal/storage"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the history index from the history log",
	Long: `Rebuild the SQLite search index from history.jsonl.

Use this after editing or syncing the log, or if the database becomes corrupted.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status  string `json:"status"`
	Entries int    `json:"entries"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	db, err := storage.OpenDB(cfg.DBPath())
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	count, err := db.RebuildFromJSONL(cfg.HistoryPath())
	if err != nil {
		exitWithError(ExitDataError, "rebuilding database: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt history index with %d entries\n", count)
	} else {
		outputJSON(RebuildResult{
			Status:  "rebuilt",
			Entries: count,
		})
	}
	return nil
}
