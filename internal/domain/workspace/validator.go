package workspace

import "fmt"

// ValidationReport is the structural validation outcome for a configuration.
// Errors make the configuration invalid; warnings do not.
type ValidationReport struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidateConfiguration checks the aggregate structurally: required fields,
// unique module ids, and slot references. A module slot that does not resolve
// in the chosen layout is a warning, since free-floating modules are allowed.
func ValidateConfiguration(config *Configuration) ValidationReport {
	if config == nil {
		return ValidationReport{Errors: []string{"configuration is required"}}
	}

	var errors []string
	var warnings []string

	if config.ID == "" {
		errors = append(errors, "configuration id is required")
	}
	if config.Name == "" {
		errors = append(errors, "configuration name is required")
	}
	if config.Layout.Type == "" {
		errors = append(errors, "layout is required")
	}
	if config.Theme.Mode == "" {
		errors = append(errors, "theme mode is required")
	}
	if config.Modules == nil {
		errors = append(errors, "modules list is required, even when empty")
	}

	seen := make(map[string]bool, len(config.Modules))
	for i, module := range config.Modules {
		if module.ID == "" {
			errors = append(errors, fmt.Sprintf("modules[%d]: id is required", i))
		} else if seen[module.ID] {
			errors = append(errors, fmt.Sprintf("duplicate module id: %s", module.ID))
		} else {
			seen[module.ID] = true
		}
		if module.Type == "" {
			errors = append(errors, fmt.Sprintf("modules[%d]: type is required", i))
		}
		if module.SlotID != "" && !config.Layout.HasSlot(module.SlotID) {
			warnings = append(warnings, fmt.Sprintf("module %s references unknown slot %s", module.ID, module.SlotID))
		}
	}

	return ValidationReport{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}
