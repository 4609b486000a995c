package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/recaphq/recap-server/internal/domain/session"
	"github.com/recaphq/recap-server/internal/domain/workspace"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON Schema files",
	Long: `Generate JSON Schema files for the session data input and the
workspace configuration output. Useful for validating payloads in
clients that do not share the Go types.`,
	RunE: runSchema,
}

func init() {
	schemaCmd.Flags().StringP("output", "o", "schemas", "Output directory for schema files")
}

func runSchema(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            false,
		ExpandedStruct:            true,
	}

	sessionSchema := reflector.Reflect(&session.Data{})
	sessionSchema.Title = "Session Data"
	sessionSchema.Description = "Recorded session telemetry used as input for workspace generation"
	sessionSchema.Version = version

	sessionPath := filepath.Join(outputDir, "session-data.schema.json")
	if err := writeSchemaFile(sessionPath, sessionSchema); err != nil {
		return fmt.Errorf("write session schema: %w", err)
	}
	fmt.Printf("✓ Generated %s\n", sessionPath)

	configSchema := reflector.Reflect(&workspace.Configuration{})
	configSchema.Title = "Workspace Configuration"
	configSchema.Description = "Complete workspace configuration produced by the generation engine"
	configSchema.Version = version

	configPath := filepath.Join(outputDir, "configuration.schema.json")
	if err := writeSchemaFile(configPath, configSchema); err != nil {
		return fmt.Errorf("write configuration schema: %w", err)
	}
	fmt.Printf("✓ Generated %s\n", configPath)

	return nil
}

func writeSchemaFile(path string, schema *jsonschema.Schema) error {
	data, err := schema.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
