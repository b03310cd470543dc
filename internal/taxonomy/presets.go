package taxonomy

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/content-topology/topology/internal/corpus"
	"github.com/content-topology/topology/internal/topoerr"
)

// PresetCategory is a seed category loaded from a YAML preset file: a
// label with hand-authored keywords, each given weight 1.0. Grounded on the teacher's embedding-space YAML index
// (internal/embedding/spaces.go), generalized from named vector spaces
// to named keyword categories.
type PresetCategory struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
	Parent   string   `yaml:"parent,omitempty"`
}

// Preset is a YAML file of seed categories, mirroring the teacher's
// practice of shipping a default YAML index alongside computed data.
// ToTaxonomy turns it into a Taxonomy; discover and the generate
// operation do not read presets.
type Preset struct {
	Categories []PresetCategory `yaml:"categories"`
}

// LoadPreset reads a seed-category list from a YAML file.
func LoadPreset(path string) (*Preset, *topoerr.Error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, topoerr.WithField(topoerr.KindTaxonomyLoad, "cannot read preset file: "+err.Error(), "path")
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, topoerr.WithField(topoerr.KindTaxonomyLoad, "invalid preset schema: "+err.Error(), "path")
	}
	return &p, nil
}

// ToTaxonomy converts a preset into a Taxonomy, assigning sequential ids
// in file order and uniform keyword weight 1.0. Parent labels are
// resolved against earlier categories in the same preset; an unresolved
// parent label is treated as root-level.
func (p *Preset) ToTaxonomy() Taxonomy {
	var tx Taxonomy
	labelToID := make(map[string]int, len(p.Categories))
	for i, pc := range p.Categories {
		keywords := make([]corpus.WeightedTerm, len(pc.Keywords))
		for j, kw := range pc.Keywords {
			keywords[j] = corpus.WeightedTerm{Term: kw, Weight: 1.0}
		}
		var parent *int
		if pc.Parent != "" {
			if pid, ok := labelToID[pc.Parent]; ok {
				parentID := pid
				parent = &parentID
			}
		}
		tx.Categories = append(tx.Categories, Category{
			ID:       i,
			Label:    pc.Label,
			Keywords: keywords,
			Parent:   parent,
		})
		labelToID[pc.Label] = i
	}
	return tx
}
