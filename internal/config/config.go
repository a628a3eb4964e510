// Package config handles cliprdf configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/matsen/cliprdf/internal/export"
)

// Config is the configuration stored in ~/.config/cliprdf/config.yml.
type Config struct {
	OutputDir    string        `yaml:"output_dir"`    // Where watch writes .rdf files
	DataDir      string        `yaml:"data_dir"`      // Conversion history location
	Subjects     []string      `yaml:"subjects"`      // dc:subject tags added to every item
	ItemID       string        `yaml:"item_id"`       // rdf:about of the description
	ItemType     string        `yaml:"item_type"`     // Zotero item type
	Indent       string        `yaml:"indent"`        // One indentation unit
	EscapeXML    bool          `yaml:"escape_xml"`    // Escape &, <, > in field text
	PollInterval time.Duration `yaml:"poll_interval"` // Clipboard polling period
	DedupeWindow time.Duration `yaml:"dedupe_window"` // Ignore repeats of a text within this window
	LogLevel     string        `yaml:"log_level"`
}

const (
	HistoryFile = "history.jsonl"
	DBFile      = "history.db"
)

// Environment variables that override the config file.
const (
	EnvOutputDir = "CLIPRDF_OUTPUT_DIR"
	EnvDataDir   = "CLIPRDF_DATA_DIR"
	EnvLogLevel  = "CLIPRDF_LOG_LEVEL"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		OutputDir:    ".",
		DataDir:      DefaultDataDir(),
		Subjects:     append([]string(nil), export.DefaultSubjects...),
		ItemID:       export.DefaultItemID,
		ItemType:     export.DefaultItemType,
		Indent:       "    ",
		EscapeXML:    true,
		PollInterval: 500 * time.Millisecond,
		DedupeWindow: time.Minute,
		LogLevel:     "info",
	}
}

// DefaultDataDir returns $XDG_DATA_HOME/cliprdf, defaulting to
// ~/.local/share/cliprdf.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppDir)
}

// HistoryPath returns the path to history.jsonl.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, HistoryFile)
}

// DBPath returns the path to history.db.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, DBFile)
}

// RDFOptions returns the serializer settings.
func (c *Config) RDFOptions() export.RDFOptions {
	return export.RDFOptions{
		Subjects: c.Subjects,
		ItemID:   c.ItemID,
		ItemType: c.ItemType,
		Escape:   c.EscapeXML,
		Indent:   c.Indent,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.DedupeWindow < 0 {
		return fmt.Errorf("dedupe_window must not be negative, got %s", c.DedupeWindow)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
