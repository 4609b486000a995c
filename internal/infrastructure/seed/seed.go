// Package seed loads the built-in module and layout catalogs embedded in the
// binary. The server and the CLI both seed from the same files, so an engine
// is usable without any runtime registration.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/recaphq/recap-server/internal/domain/catalog"
	engineErrors "github.com/recaphq/recap-server/internal/domain/errors"
	"github.com/recaphq/recap-server/internal/domain/layout"
)

//go:embed modules.yaml
var modulesYAML []byte

//go:embed layouts.yaml
var layoutsYAML []byte

type moduleFile struct {
	Modules []moduleSeed `yaml:"modules"`
}

type moduleSeed struct {
	Type            string          `yaml:"type"`
	DisplayName     string          `yaml:"displayName"`
	Description     string          `yaml:"description"`
	Category        string          `yaml:"category"`
	Icon            string          `yaml:"icon"`
	Variants        []string        `yaml:"variants"`
	DefaultVariant  string          `yaml:"defaultVariant"`
	DefaultSettings map[string]any  `yaml:"defaultSettings"`
	Requires        map[string]bool `yaml:"requires"`
	Tags            []string        `yaml:"tags"`
}

type layoutFile struct {
	Layouts []layoutSeed `yaml:"layouts"`
}

type layoutSeed struct {
	LayoutType         string     `yaml:"layoutType"`
	DisplayName        string     `yaml:"displayName"`
	Description        string     `yaml:"description"`
	Grid               gridSeed   `yaml:"gridConfig"`
	Slots              []slotSeed `yaml:"slots"`
	RecommendedModules []string   `yaml:"recommendedModules"`
}

type gridSeed struct {
	Columns int `yaml:"columns"`
	Gap     int `yaml:"gap"`
}

type slotSeed struct {
	ID         string                   `yaml:"id"`
	Accepts    []string                 `yaml:"accepts"`
	Placements map[string]placementSeed `yaml:"placements"`
}

type placementSeed struct {
	Column  int `yaml:"column"`
	Row     int `yaml:"row"`
	ColSpan int `yaml:"colSpan"`
	RowSpan int `yaml:"rowSpan"`
}

// Load seeds both catalogs and cross-checks that every recommended module in
// a seeded layout is a seeded module. Any violation fails startup.
func Load(registry catalog.Registry, layouts *layout.Catalog) error {
	if err := Modules(registry); err != nil {
		return err
	}
	if err := Layouts(layouts); err != nil {
		return err
	}

	for _, template := range layouts.GetAllLayouts() {
		for _, moduleType := range template.RecommendedModules {
			if !registry.Has(moduleType) {
				return engineErrors.NewEngineError(engineErrors.ErrCodeSeedInvalid,
					fmt.Sprintf("layout %s recommends unseeded module %s", template.Type, moduleType))
			}
		}
	}
	return nil
}

// Modules registers every embedded module definition into the registry.
func Modules(registry catalog.Registry) error {
	var file moduleFile
	if err := yaml.Unmarshal(modulesYAML, &file); err != nil {
		return engineErrors.Wrap(err, engineErrors.ErrCodeSeedInvalid, "parse embedded modules.yaml")
	}
	if len(file.Modules) == 0 {
		return engineErrors.NewEngineError(engineErrors.ErrCodeSeedInvalid, "embedded modules.yaml defines no modules")
	}

	for _, seed := range file.Modules {
		def := catalog.Definition{
			DisplayName:     seed.DisplayName,
			Description:     seed.Description,
			Category:        catalog.Category(seed.Category),
			Icon:            seed.Icon,
			Variants:        seed.Variants,
			DefaultVariant:  seed.DefaultVariant,
			DefaultSettings: seed.DefaultSettings,
			Requires:        seed.Requires,
			Tags:            seed.Tags,
		}
		if err := registry.Register(seed.Type, nil, def); err != nil {
			return engineErrors.Wrap(err, engineErrors.ErrCodeSeedInvalid,
				fmt.Sprintf("seed module %s", seed.Type))
		}
	}
	return nil
}

// Layouts registers every embedded layout template into the catalog.
func Layouts(layouts *layout.Catalog) error {
	var file layoutFile
	if err := yaml.Unmarshal(layoutsYAML, &file); err != nil {
		return engineErrors.Wrap(err, engineErrors.ErrCodeSeedInvalid, "parse embedded layouts.yaml")
	}
	if len(file.Layouts) == 0 {
		return engineErrors.NewEngineError(engineErrors.ErrCodeSeedInvalid, "embedded layouts.yaml defines no layouts")
	}

	for _, seed := range file.Layouts {
		if err := layouts.RegisterLayout(buildTemplate(seed)); err != nil {
			return engineErrors.Wrap(err, engineErrors.ErrCodeSeedInvalid,
				fmt.Sprintf("seed layout %s", seed.LayoutType))
		}
	}
	return nil
}

func buildTemplate(seed layoutSeed) layout.Template {
	slots := make([]layout.Slot, 0, len(seed.Slots))
	for _, slot := range seed.Slots {
		accepts := make([]catalog.Category, 0, len(slot.Accepts))
		for _, category := range slot.Accepts {
			accepts = append(accepts, catalog.Category(category))
		}
		placements := make(map[layout.Breakpoint]layout.Placement, len(slot.Placements))
		for breakpoint, placement := range slot.Placements {
			placements[layout.Breakpoint(breakpoint)] = normalizePlacement(placement)
		}
		slots = append(slots, layout.Slot{
			ID:         slot.ID,
			Accepts:    accepts,
			Placements: placements,
		})
	}
	return layout.Template{
		Type:               layout.Type(seed.LayoutType),
		DisplayName:        seed.DisplayName,
		Description:        seed.Description,
		Grid:               layout.GridConfig{Columns: seed.Grid.Columns, Gap: seed.Grid.Gap},
		Slots:              slots,
		RecommendedModules: seed.RecommendedModules,
	}
}

// normalizePlacement fills omitted grid fields. A span of zero means the seed
// left it out, not a zero-width cell.
func normalizePlacement(p placementSeed) layout.Placement {
	placement := layout.Placement{Column: p.Column, Row: p.Row, ColSpan: p.ColSpan, RowSpan: p.RowSpan}
	if placement.Column <= 0 {
		placement.Column = 1
	}
	if placement.Row <= 0 {
		placement.Row = 1
	}
	if placement.ColSpan <= 0 {
		placement.ColSpan = 1
	}
	if placement.RowSpan <= 0 {
		placement.RowSpan = 1
	}
	return placement
}
