// ABOUTME: Version command for the diary CLI.
// ABOUTME: The version string is stamped at build time via -ldflags.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the diary version",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "diary %s\n", version)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
