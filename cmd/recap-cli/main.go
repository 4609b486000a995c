package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "recap-cli",
	Short: "Recap CLI - drive the workspace configuration engine without the server",
	Long: `recap-cli runs the adaptive workspace configuration engine from the
command line, seeded with the same embedded module and layout catalogs
the server uses.

Examples:
  # Inspect what the engine derives from a session
  recap-cli analyze --input session.json --pretty

  # Generate a full workspace configuration
  recap-cli generate --input session.json --theme dark --output config.json

  # Browse the seeded catalogs
  recap-cli modules --category media
  recap-cli layouts`,
	Version: version,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("recap-cli %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}
