package main

import (
	"github.com/spf13/cobra"

	"github.com/recaphq/recap-server/internal/domain/workspace"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a workspace configuration",
	Long: `Run the full generation pipeline over a session telemetry file:
analyze, select a layout, compose modules, and print the result.

A failed generation still prints a renderable fallback result with
success false; inspect the error field for the cause.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("input", "i", "", "Session data JSON file (- for stdin)")
	generateCmd.MarkFlagRequired("input")
	generateCmd.Flags().String("layout", "", "Force a layout type instead of heuristic selection")
	generateCmd.Flags().String("theme", "", "Theme mode: light, dark, or auto")
	generateCmd.Flags().Int("max-modules", 0, "Cap on placed modules (0 uses the engine default)")
	generateCmd.Flags().StringSlice("exclude", nil, "Module types to exclude, repeatable")
	generateCmd.Flags().StringSlice("prefer", nil, "Module types to place first, repeatable")
	generateCmd.Flags().String("target", "", "Responsive target: desktop, tablet, or mobile")
	generateCmd.Flags().String("variant", "", "Preferred variant for every module that supports it")
	generateCmd.Flags().StringP("output", "o", "", "Write the result to a file instead of stdout")
	generateCmd.Flags().Bool("pretty", false, "Indent the JSON output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	pretty, _ := cmd.Flags().GetBool("pretty")

	data, err := loadSessionData(input)
	if err != nil {
		return err
	}

	opts := workspace.GenerateOptions{}
	opts.LayoutType, _ = cmd.Flags().GetString("layout")
	opts.ThemeMode, _ = cmd.Flags().GetString("theme")
	opts.MaxModules, _ = cmd.Flags().GetInt("max-modules")
	opts.ExcludedModules, _ = cmd.Flags().GetStringSlice("exclude")
	opts.PreferredModules, _ = cmd.Flags().GetStringSlice("prefer")
	opts.Target, _ = cmd.Flags().GetString("target")
	opts.DefaultVariant, _ = cmd.Flags().GetString("variant")

	registry, layouts, err := seededCatalogs()
	if err != nil {
		return err
	}

	result := workspace.NewGenerator(registry, layouts).Generate(data, opts)
	return writeResult(result, pretty, output)
}
