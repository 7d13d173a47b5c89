package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	requestPath string
	verbose     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gsettings-codegen",
	Short: "Generate typed settings bindings from GSettings schema XML",
	Long: `gsettings-codegen compiles a GSettings schema document and a YAML
generation request into a typed Go wrapper: one getter, setter,
try-setter, change subscription, property binding, and action factory
per key, plus named Go types for the schema's enums and flags.

Quick start:
  gsettings-codegen gen              # Generate from codegen.yaml
  gsettings-codegen gen --watch      # Regenerate on schema changes
  gsettings-codegen check            # Compile without writing output
  gsettings-codegen dump             # Inspect the resolved accessors`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&requestPath, "request", "r", "codegen.yaml", "generation request file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds the console logger shared by the subcommands. Debug
// level requires --verbose.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
