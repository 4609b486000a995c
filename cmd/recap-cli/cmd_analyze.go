package main

import (
	"github.com/spf13/cobra"

	"github.com/recaphq/recap-server/internal/domain/session"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze session content",
	Long:  `Extract content characteristics from a session telemetry file.`,
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("input", "i", "", "Session data JSON file (- for stdin)")
	analyzeCmd.MarkFlagRequired("input")
	analyzeCmd.Flags().Bool("pretty", false, "Indent the JSON output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	pretty, _ := cmd.Flags().GetBool("pretty")

	data, err := loadSessionData(input)
	if err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	return writeResult(session.Analyze(data), pretty, "")
}
