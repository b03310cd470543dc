package dedup

import (
	"testing"

	"github.com/content-topology/topology/internal/record"
)

func TestURLDedupScenario(t *testing.T) {
	batch := record.Batch{
		{"url": "https://www.a.com/x?utm_source=g"},
		{"url": "http://a.com/x"},
	}
	out := Dedup(batch, Options{URLField: "url", Strategy: URL})
	if out[0].DupGroup != out[1].DupGroup {
		t.Fatalf("expected both records in same group, got %+v", out)
	}
	if !out[0].IsPrimary || out[1].IsPrimary {
		t.Fatalf("expected record 0 to be primary, got %+v", out)
	}
}

func TestURLDedupDistinctGroupsSeparate(t *testing.T) {
	batch := record.Batch{
		{"url": "https://a.com/x"},
		{"url": "https://b.com/y"},
	}
	out := Dedup(batch, Options{URLField: "url", Strategy: URL})
	if out[0].DupGroup == out[1].DupGroup {
		t.Fatalf("expected distinct groups, got %+v", out)
	}
	if !out[0].IsPrimary || !out[1].IsPrimary {
		t.Fatalf("expected both singleton groups to be primary, got %+v", out)
	}
}

func TestFuzzyDedupNearDuplicates(t *testing.T) {
	batch := record.Batch{
		{"content": "rust is a fast and safe systems programming language for building reliable software"},
		{"content": "rust is a fast and safe systems programming language for building dependable software"},
		{"content": "completely unrelated content about gardening and flowers in spring"},
	}
	// The two near-duplicates' fingerprints differ in 10 bits; the
	// unrelated record is 41 bits from either.
	out := Dedup(batch, Options{Field: "content", Strategy: Fuzzy, Threshold: 12})
	if out[0].DupGroup != out[1].DupGroup {
		t.Fatalf("expected near-duplicate records grouped together, got %+v", out)
	}
	if out[2].DupGroup == out[0].DupGroup {
		t.Fatalf("expected unrelated record in its own group, got %+v", out)
	}
}

func TestEverySingletonIsPrimary(t *testing.T) {
	batch := record.Batch{
		{"url": "https://a.com/1"},
		{"url": "https://b.com/2"},
		{"url": "https://c.com/3"},
	}
	out := Dedup(batch, Options{URLField: "url", Strategy: URL})
	for i, o := range out {
		if !o.IsPrimary {
			t.Fatalf("record %d: expected singleton group to be primary", i)
		}
		if o.DupGroup != i {
			t.Fatalf("record %d: expected dup group == own index, got %d", i, o.DupGroup)
		}
	}
}

func TestCombinedStrategyUnionsBothEdgeSets(t *testing.T) {
	batch := record.Batch{
		{"url": "https://a.com/x", "content": "alpha beta gamma delta epsilon zeta eta theta"},
		{"url": "https://a.com/x?utm_source=g", "content": "completely different text with no overlap words present"},
	}
	out := Dedup(batch, Options{URLField: "url", Field: "content", Strategy: Combined, Threshold: 1})
	if out[0].DupGroup != out[1].DupGroup {
		t.Fatalf("expected combined strategy to union via URL edge, got %+v", out)
	}
}
