package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/recaphq/recap-server/internal/domain/catalog"
	"github.com/recaphq/recap-server/internal/domain/layout"
	"github.com/recaphq/recap-server/internal/domain/session"
	"github.com/recaphq/recap-server/internal/infrastructure/seed"
)

// seededCatalogs builds fresh catalogs from the embedded seed files.
func seededCatalogs() (catalog.Registry, *layout.Catalog, error) {
	registry := catalog.NewRegistry()
	layouts := layout.NewCatalog()
	if err := seed.Load(registry, layouts); err != nil {
		return nil, nil, err
	}
	return registry, layouts, nil
}

// loadSessionData reads session telemetry from a JSON file. "-" reads stdin.
func loadSessionData(path string) (session.Data, error) {
	var data session.Data

	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return data, fmt.Errorf("read session data: %w", err)
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("parse session data: %w", err)
	}
	return data, nil
}

// writeResult marshals v to the output file, or stdout when path is empty.
func writeResult(v any, pretty bool, outputPath string) error {
	var raw []byte
	var err error
	if pretty || outputPath != "" {
		raw, err = json.MarshalIndent(v, "", "  ")
	} else {
		raw, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, append(raw, '\n'), 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("✓ Wrote %s\n", outputPath)
		return nil
	}

	fmt.Println(string(raw))
	return nil
}
