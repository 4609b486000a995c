package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recaphq/recap-server/internal/domain/catalog"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List seeded modules",
	Long:  `List the module definitions from the embedded catalog.`,
	RunE:  runModules,
}

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List seeded layout templates",
	Long:  `List the layout templates from the embedded catalog with their slot summaries.`,
	RunE:  runLayouts,
}

func init() {
	modulesCmd.Flags().String("category", "", "Filter by category")
	modulesCmd.Flags().StringSlice("tag", nil, "Filter by tag, repeatable")
	modulesCmd.Flags().Bool("match-all", false, "Require every tag instead of any")
}

func runModules(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	tags, _ := cmd.Flags().GetStringSlice("tag")
	matchAll, _ := cmd.Flags().GetBool("match-all")

	if category != "" && !catalog.Category(category).Valid() {
		return fmt.Errorf("unknown category: %s", category)
	}

	registry, _, err := seededCatalogs()
	if err != nil {
		return err
	}

	var entries []*catalog.Entry
	switch {
	case len(tags) > 0:
		entries = registry.SearchByTags(tags, matchAll)
	case category != "":
		entries = registry.GetByCategory(catalog.Category(category))
	default:
		entries = registry.GetAll()
	}

	filtered := make([]*catalog.Entry, 0, len(entries))
	for _, entry := range entries {
		if category != "" && entry.Definition.Category != catalog.Category(category) {
			continue
		}
		filtered = append(filtered, entry)
	}

	fmt.Printf("%d modules:\n", len(filtered))
	for _, entry := range filtered {
		def := entry.Definition
		fmt.Printf("  %-20s %-12s %s\n", def.Type, def.Category, def.DisplayName)
		fmt.Printf("  %-20s variants: %s (default %s)\n", "", strings.Join(def.Variants, ", "), def.DefaultVariant)
		if flags := requiredFlags(def.Requires); len(flags) > 0 {
			fmt.Printf("  %-20s requires: %s\n", "", strings.Join(flags, ", "))
		}
	}

	return nil
}

// requiredFlags lists the flags a module requires, sorted for stable output.
func requiredFlags(requires map[string]bool) []string {
	flags := make([]string, 0, len(requires))
	for flag, required := range requires {
		if required {
			flags = append(flags, flag)
		}
	}
	sort.Strings(flags)
	return flags
}

func runLayouts(cmd *cobra.Command, args []string) error {
	_, layouts, err := seededCatalogs()
	if err != nil {
		return err
	}

	templates := layouts.GetAllLayouts()
	fmt.Printf("%d layouts:\n", len(templates))
	for _, template := range templates {
		fmt.Printf("  %-22s %s\n", template.Type, template.DisplayName)
		for _, slot := range template.Slots {
			accepts := "any category"
			if len(slot.Accepts) > 0 {
				names := make([]string, 0, len(slot.Accepts))
				for _, c := range slot.Accepts {
					names = append(names, string(c))
				}
				accepts = strings.Join(names, ", ")
			}
			fmt.Printf("  %-22s - slot %s (%s)\n", "", slot.ID, accepts)
		}
		if len(template.RecommendedModules) > 0 {
			fmt.Printf("  %-22s recommends: %s\n", "", strings.Join(template.RecommendedModules, ", "))
		}
	}

	return nil
}
