package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matsen/cliprdf/internal/config"
)

var configInit bool

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write the default config file if none exists")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print, as YAML, the configuration after applying the config file, .env and
environment variables (CLIPRDF_OUTPUT_DIR, CLIPRDF_DATA_DIR, CLIPRDF_LOG_LEVEL).

Examples:
  cliprdf config
  cliprdf config --init`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configInit {
		path := configPath
		if path == "" {
			path = config.ConfigPath()
		}
		if _, err := os.Stat(path); err == nil {
			exitWithError(ExitConfigError, "config already exists: %s", path)
		}
		if err := config.Default().Save(path); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		if humanOutput {
			fmt.Printf("Wrote %s\n", path)
		} else {
			outputJSON(StatusResponse{Status: "created", Path: path})
		}
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		exitWithError(ExitError, "encoding config: %v", err)
	}
	fmt.Print(string(data))
	return nil
}
