// ABOUTME: Root Cobra command and global flags for diary CLI.
// ABOUTME: Sets up lifecycle hooks for config loading and logger initialization.
package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/config"
	"github.com/2389-research/diary/internal/logger"
)

var globalConfig *config.Config
var globalLogger *slog.Logger

// Flags
var (
	configFile string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "diary",
	Short: "Journal entries and phone number extraction",
	Long: `Collect journal entries from files, flags, stdin, or a remote journal,
and pull out the phone numbers they mention.

A phone number is "07" followed by nine digits. Each distinct number is
reported once, in the order it first appears.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		// Config edits read the raw file, so a broken config can still be fixed.
		if cmd.Parent() == configCmd {
			return nil
		}

		var cfg *config.Config
		var err error
		if configFile != "" {
			cfg, err = config.LoadFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if logFormat != "" {
			cfg.Log.Format = logFormat
		}
		globalConfig = cfg
		globalLogger = logger.New(cfg.Log)

		globalLogger.Debug("config loaded", "remote", cfg.HasRemote())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/diary/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text, json, plain")
}
