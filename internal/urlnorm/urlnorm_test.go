package urlnorm

import "testing"

func TestNormalizeSpecExample(t *testing.T) {
	got := Normalize("https://www.Example.com:443/p?utm_source=x&id=9#f")
	if got.Normalized != "https://example.com/p?id=9" {
		t.Fatalf("normalized = %q", got.Normalized)
	}
	if got.CanonicalKey != "example.com/p?id=9" {
		t.Fatalf("canonical_key = %q", got.CanonicalKey)
	}
}

func TestNormalizeDropsWWWAndDefaultPort(t *testing.T) {
	got := Normalize("http://www.a.com:80/x")
	if got.Normalized != "http://a.com/x" {
		t.Fatalf("normalized = %q", got.Normalized)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	u := "https://www.Example.com:443/p?utm_source=x&id=9#f"
	first := Normalize(u)
	second := Normalize(first.Normalized)
	if first.Normalized != second.Normalized || first.CanonicalKey != second.CanonicalKey {
		t.Fatalf("not idempotent: %+v vs %+v", first, second)
	}
}

func TestNormalizeMalformedFallsBack(t *testing.T) {
	raw := "not a url at all"
	got := Normalize(raw)
	if got.Normalized != raw || got.CanonicalKey != raw {
		t.Fatalf("expected raw fallback, got %+v", got)
	}
}

func TestNormalizeDedupEquivalence(t *testing.T) {
	a := Normalize("https://www.a.com/x?utm_source=g")
	b := Normalize("http://a.com/x")
	if a.CanonicalKey != b.CanonicalKey {
		t.Fatalf("expected equal canonical keys, got %q vs %q", a.CanonicalKey, b.CanonicalKey)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Rust Programming!":  "rust-programming",
		"  leading/trailing ": "leading-trailing",
		"already-a-slug":     "already-a-slug",
		"a/b/c":              "a-b-c",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}
