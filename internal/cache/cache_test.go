package cache

import "testing"

func TestPutGetRoundTrip(t *testing.T) {
	c, err := Open("")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer c.Close()

	key := Key{Kind: "corpus", ContentHash: "abc", ArgsHash: "def", Version: "v1"}
	if err := c.Put(key, []byte("payload")); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(got) != "payload" {
		t.Fatalf("got %q, want %q", got, "payload")
	}
}

func TestGetMissOnUnknownKey(t *testing.T) {
	c, _ := Open("")
	defer c.Close()
	_, ok := c.Get(Key{Kind: "corpus", ContentHash: "x", ArgsHash: "y", Version: "v1"})
	if ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestNilCacheAlwaysMisses(t *testing.T) {
	var c *Cache
	_, ok := c.Get(Key{Kind: "k"})
	if ok {
		t.Fatal("expected nil cache to always miss")
	}
	if err := c.Put(Key{Kind: "k"}, []byte("x")); err != nil {
		t.Fatalf("expected nil cache Put to be a no-op, got error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("expected nil cache Close to be a no-op, got error: %v", err)
	}
}

func TestStatsTracksHitsAndMisses(t *testing.T) {
	c, _ := Open("")
	defer c.Close()
	key := Key{Kind: "k", ContentHash: "a", ArgsHash: "b", Version: "1"}
	c.Get(key) // miss
	c.Put(key, []byte("v"))
	c.Get(key) // hit
	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Fatalf("got hits=%d misses=%d, want 1,1", hits, misses)
	}
}

func TestHashStringsDeterministic(t *testing.T) {
	a := HashStrings([]string{"alpha", "beta"})
	b := HashStrings([]string{"alpha", "beta"})
	if a != b {
		t.Fatalf("expected deterministic hash, got %q vs %q", a, b)
	}
	c := HashStrings([]string{"beta", "alpha"})
	if a == c {
		t.Fatalf("expected order-sensitive hash to differ for reordered input")
	}
}

func TestHashArgsOrderInsensitive(t *testing.T) {
	a := HashArgs(map[string]string{"x": "1", "y": "2"})
	b := HashArgs(map[string]string{"y": "2", "x": "1"})
	if a != b {
		t.Fatalf("expected key-order-insensitive hash, got %q vs %q", a, b)
	}
}
