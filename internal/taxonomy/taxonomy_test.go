package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/content-topology/topology/internal/corpus"
)

func sampleTaxonomy() Taxonomy {
	root := 0
	return Taxonomy{Categories: []Category{
		{ID: 0, Label: "languages", Keywords: []corpus.WeightedTerm{{Term: "rust", Weight: 0.8}}, Parent: nil},
		{ID: 1, Label: "rust", Keywords: []corpus.WeightedTerm{{Term: "rust", Weight: 1}, {Term: "cargo", Weight: 0.5}}, Parent: &root},
	}}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tx := sampleTaxonomy()
	dir := t.TempDir()
	path := filepath.Join(dir, "tax.json")
	if err := tx.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, lerr := Load(path)
	if lerr != nil {
		t.Fatalf("load failed: %v", lerr)
	}
	if len(loaded.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(loaded.Categories))
	}
	if loaded.Categories[1].Parent == nil || *loaded.Categories[1].Parent != 0 {
		t.Fatalf("expected parent 0, got %+v", loaded.Categories[1].Parent)
	}
}

func TestHierarchyWithAndWithoutParent(t *testing.T) {
	tx := sampleTaxonomy()
	root, _ := tx.ByID(0)
	if got := tx.Hierarchy(root); got != "languages" {
		t.Fatalf("got %q, want %q", got, "languages")
	}
	child, _ := tx.ByID(1)
	if got := tx.Hierarchy(child); got != "languages/rust" {
		t.Fatalf("got %q, want %q", got, "languages/rust")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/tax.json")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if err.Kind != "taxonomy-load" {
		t.Fatalf("expected taxonomy-load kind, got %q", err.Kind)
	}
}

func TestPresetToTaxonomyParentResolution(t *testing.T) {
	yamlDoc := `
categories:
  - label: languages
    keywords: [rust, go, python]
  - label: rust
    parent: languages
    keywords: [cargo, ownership, borrow]
`
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.yaml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	preset, perr := LoadPreset(path)
	if perr != nil {
		t.Fatalf("load preset failed: %v", perr)
	}
	tx := preset.ToTaxonomy()
	if len(tx.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(tx.Categories))
	}
	child := tx.Categories[1]
	if child.Parent == nil || *child.Parent != 0 {
		t.Fatalf("expected rust's parent to resolve to id 0, got %+v", child.Parent)
	}
}
