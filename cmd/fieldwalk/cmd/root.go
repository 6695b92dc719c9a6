package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/fieldwalk/internal/config"
	"github.com/dbsmedya/fieldwalk/internal/logger"
	"github.com/dbsmedya/fieldwalk/internal/render"
	"github.com/dbsmedya/fieldwalk/internal/schema"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile      string
	logLevel     string
	logFormat    string
	outputFormat string
	batchSize    int
	noColor      bool
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

var rootCmd = &cobra.Command{
	Use:   "fieldwalk",
	Short: "Flatten nested records into leaf fields",
	Long: `A CLI tool that expands nested record types into their leaf fields
and flattens documents into rows of leaf values.

Features:
  - Depth-first field expansion in declaration order
  - Record types declared in YAML configuration
  - Table, JSON and CSV output
  - Batched, transactional export of flattened rows to MySQL`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "fieldwalk.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Output overrides
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "",
		"Override output format (table, json, csv)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored table output")

	// Export overrides
	rootCmd.PersistentFlags().IntVar(&batchSize, "batch-size", 0,
		"Override export batch size (rows per INSERT statement)")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel     string
	LogFormat    string
	OutputFormat string
	BatchSize    int
	NoColor      bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:     logLevel,
		LogFormat:    logFormat,
		OutputFormat: outputFormat,
		BatchSize:    batchSize,
		NoColor:      noColor,
	}
}

// loadConfig reads the config file, applies CLI overrides and validates
// everything except the export destination.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	o := GetCLIOverrides()
	cfg.ApplyOverrides(o.LogLevel, o.LogFormat, o.OutputFormat, o.BatchSize, o.NoColor)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads the configuration and builds the logger and the registry
// shared by every command.
func setup() (*config.Config, *logger.Logger, *schema.Registry, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	reg, err := schema.BuildFromConfig(&cfg.Schema)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, reg, nil
}

func newRenderer(cfg *config.Config) *render.Renderer {
	return render.New(outputWriter, render.Options{
		Format: cfg.Output.Format,
		Color:  cfg.Output.Color,
	})
}
