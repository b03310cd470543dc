package discover

import (
	"testing"

	"github.com/content-topology/topology/internal/hac"
	"github.com/content-topology/topology/internal/record"
)

func rustCookingBatch() record.Batch {
	var b record.Batch
	for i := 0; i < 4; i++ {
		b = append(b, record.Record{"content": "rust is a fast and safe systems programming language"})
	}
	for i := 0; i < 6; i++ {
		b = append(b, record.Record{"content": "cooking pasta requires boiling water and salt"})
	}
	return b
}

func TestDiscoverTwoClusters(t *testing.T) {
	res, err := Discover(rustCookingBatch(), Options{Field: "content", Clusters: 2, Linkage: hac.Average, Seed: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Taxonomy.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(res.Taxonomy.Categories))
	}
	labels := map[string]bool{}
	for _, c := range res.Taxonomy.Categories {
		labels[c.Label] = true
	}
	if !labels["rust"] || !labels["cooking"] {
		t.Fatalf("expected labels drawn from {rust, cooking}, got %v", res.Taxonomy.Categories)
	}
}

func TestDiscoverMissingFieldErrors(t *testing.T) {
	batch := record.Batch{{"other": "x"}}
	_, err := Discover(batch, Options{Field: "content", Clusters: 2})
	if err == nil {
		t.Fatal("expected field-missing error")
	}
}

func TestDiscoverInvalidClusterCount(t *testing.T) {
	_, err := Discover(rustCookingBatch(), Options{Field: "content", Clusters: 0})
	if err == nil {
		t.Fatal("expected error for clusters <= 0")
	}
}

func TestDiscoverDeterministic(t *testing.T) {
	batch := rustCookingBatch()
	a, _ := Discover(batch, Options{Field: "content", Clusters: 2, Seed: 3})
	b, _ := Discover(batch, Options{Field: "content", Clusters: 2, Seed: 3})
	if len(a.Taxonomy.Categories) != len(b.Taxonomy.Categories) {
		t.Fatalf("non-deterministic cluster count")
	}
	for i := range a.Taxonomy.Categories {
		if a.Taxonomy.Categories[i].Label != b.Taxonomy.Categories[i].Label {
			t.Fatalf("non-deterministic labels at %d: %q vs %q", i, a.Taxonomy.Categories[i].Label, b.Taxonomy.Categories[i].Label)
		}
	}
}
