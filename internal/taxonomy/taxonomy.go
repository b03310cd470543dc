// Package taxonomy implements the category tree produced by discover and
// consumed by classify: an ordered set of categories, each with a label
// and keyword set, optionally parented. Grounded on the wingthing memory
// store's JSON persistence shape, adapted to the spec's exact taxonomy
// file schema.
package taxonomy

import (
	"encoding/json"
	"os"

	"github.com/content-topology/topology/internal/corpus"
	"github.com/content-topology/topology/internal/topoerr"
)

// Category is one taxonomy node.
type Category struct {
	ID       int                  `json:"id"`
	Label    string               `json:"label"`
	Keywords []corpus.WeightedTerm `json:"keywords"`
	Parent   *int                 `json:"parent"`
}

// Taxonomy is the ordered category set produced by discover.
type Taxonomy struct {
	Categories []Category `json:"categories"`
}

// ByID returns the category with the given id, if present.
func (t *Taxonomy) ByID(id int) (Category, bool) {
	for _, c := range t.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Hierarchy renders "parent/label" for a category, omitting the parent
// segment when the category is root-level.
func (t *Taxonomy) Hierarchy(c Category) string {
	if c.Parent == nil {
		return c.Label
	}
	if parent, ok := t.ByID(*c.Parent); ok {
		return parent.Label + "/" + c.Label
	}
	return c.Label
}

// Load reads a taxonomy from a JSON file at path.
func Load(path string) (*Taxonomy, *topoerr.Error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, topoerr.WithField(topoerr.KindTaxonomyLoad, "cannot read taxonomy file: "+err.Error(), "path")
	}
	var tx Taxonomy
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, topoerr.WithField(topoerr.KindTaxonomyLoad, "invalid taxonomy schema: "+err.Error(), "path")
	}
	return &tx, nil
}

// Save writes the taxonomy as JSON to path.
func (t *Taxonomy) Save(path string) *topoerr.Error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return topoerr.New(topoerr.KindIO, "cannot marshal taxonomy: "+err.Error())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return topoerr.WithField(topoerr.KindIO, "cannot write taxonomy file: "+err.Error(), "path")
	}
	return nil
}
