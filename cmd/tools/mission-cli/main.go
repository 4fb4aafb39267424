// Package main provides the mission-cli entrypoint: offline scoring plus
// registry and user administration.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "mission-cli",
		Short:        "Score mission statements and manage the analyzer",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newBenchmarkCmd())
	rootCmd.AddCommand(newWorkshopCmd())
	rootCmd.AddCommand(newRegistryCmd())
	rootCmd.AddCommand(newUserCmd())

	return rootCmd
}
