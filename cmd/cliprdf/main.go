// Package main provides the cliprdf CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/matsen/cliprdf/internal/config"
	"github.com/matsen/cliprdf/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	humanOutput bool   // Human-readable output instead of JSON
	configPath  string // Overrides the default config location
	logLevel    string // Overrides log_level from config
)

// Set by loadRuntime before any subcommand runs.
var (
	cfg *config.Config
	log *logrus.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cliprdf",
	Short: "Convert copied citations into Zotero RDF",
	Long: `cliprdf converts a free-text citation (authors, title, venue line and an
optional DOI line) into a Zotero-importable RDF/XML file.

Use "cliprdf convert" for one citation from a file or stdin, or
"cliprdf watch" to convert every citation copied to the clipboard.
Commands output JSON by default; pass --human for readable output.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/cliprdf/config.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Version = Version
}

// loadRuntime reads .env, the config file and sets up logging.
func loadRuntime(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log, err = logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return nil
}
