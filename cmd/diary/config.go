// ABOUTME: CLI commands for editing the diary config file.
// ABOUTME: Provides config set, which writes one setting back to YAML.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/diary/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage diary configuration",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: "Write one setting to the config file. Keys: " + strings.Join(config.Keys, ", ") + ".\n" +
		"Environment overrides (DIARY_*) are not written back.",
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	path := configFile
	if path == "" {
		defaultPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	cfg, err := config.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if configFile != "" {
		err = cfg.SaveFile(configFile)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", key, path)
	return err
}
