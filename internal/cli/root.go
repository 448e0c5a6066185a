// Package cli implements the docsuite command line.
package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/frherrer/docsuite/internal/config"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	// cfgLoaded is false when no config file was found and defaults are used.
	cfgLoaded bool
	logFile   io.Closer
	log       = logrus.New()
	version   = "dev"
)

// rootCmd is the base command for docsuite.
var rootCmd = &cobra.Command{
	Use:   "docsuite",
	Short: "Build executable suite trees from suite files and directories",
	Long: `docsuite parses suite files (native YAML, Markdown, AsciiDoc, plain text,
JSON, CUE and HCL) and directories of them into one executable suite tree.

Defaults are read from a configuration file (docsuite.yaml or docsuite.toml);
command line flags override them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return setupLogging(cfg.Logging, verbose)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "docsuite.yaml", "config file path (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	log.SetOutput(os.Stderr)
}

// loadConfig reads the config file. A missing default file falls back to
// the built-in defaults, a missing file given with --config is an error.
func loadConfig(cmd *cobra.Command) error {
	loaded, err := config.Load(cfgFile)
	switch {
	case err == nil:
		cfg, cfgLoaded = loaded, true
	case errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config"):
		cfg, cfgLoaded = config.DefaultConfig(), false
	default:
		return err
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	return cfg.CheckVersion(version)
}

func setupLogging(lc config.LoggingConfig, verbose bool) error {
	level := logrus.InfoLevel
	if lc.Level != "" {
		parsed, err := logrus.ParseLevel(lc.Level)
		if err != nil {
			return err
		}
		level = parsed
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if lc.File != "" {
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		log.SetOutput(f)
		logFile = f
	}
	return nil
}

// Execute runs the root command. v is reported by --version and checked
// against the min_version of the config file.
func Execute(ctx context.Context, v string) error {
	version = v
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(v),
		fang.WithNotifySignal(os.Interrupt),
	)
}
