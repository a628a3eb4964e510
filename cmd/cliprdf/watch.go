package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/matsen/cliprdf/internal/clipboard"
	"github.com/matsen/cliprdf/internal/export"
	"github.com/matsen/cliprdf/internal/pipeline"
	"github.com/matsen/cliprdf/internal/storage"
)

var watchOutputDir string

func init() {
	watchCmd.Flags().StringVar(&watchOutputDir, "output-dir", "", "Directory for .rdf files (overrides output_dir)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Convert every citation copied to the clipboard",
	Long: `Poll the clipboard and convert each newly copied citation into an .rdf
file named after its title. Texts that are not citations are logged and
skipped. Runs until interrupted.

Examples:
  cliprdf watch
  cliprdf watch --output-dir ~/zotero-inbox --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !clipboard.IsAvailable() {
		exitWithError(ExitConfigError, "%v: install xclip or xsel", clipboard.ErrClipboardUnavailable)
	}

	outputDir := cfg.OutputDir
	if watchOutputDir != "" {
		outputDir = watchOutputDir
	}

	db, err := storage.OpenDB(cfg.DBPath())
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	proc := &pipeline.Processor{
		Converter:   pipeline.NewConverter(export.NewRDFBuilder(cfg.RDFOptions())),
		OutputDir:   outputDir,
		HistoryPath: cfg.HistoryPath(),
		DB:          db,
		Log:         log,
	}
	w := &clipboard.Watcher{
		Source:   clipboard.SystemSource{},
		Interval: cfg.PollInterval,
		Window:   cfg.DedupeWindow,
		Log:      log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(logrus.Fields{
		"output_dir": outputDir,
		"interval":   cfg.PollInterval,
	}).Info("Watching clipboard")

	if err := w.Watch(ctx, proc.Handler); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Println("Stopped")
	} else {
		outputJSON(StatusResponse{Status: "stopped", Path: outputDir})
	}
	return nil
}
