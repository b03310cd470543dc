package corpus

import (
	"math"
	"testing"
)

func approx(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestBuildVocabularyOrderAndCoverage(t *testing.T) {
	c := Build([][]string{
		{"go", "is", "fast"},
		{"rust", "is", "also", "fast"},
	})
	if c.Size() != 2 {
		t.Fatalf("size = %d, want 2", c.Size())
	}
	if c.VocabSize() != 5 {
		t.Fatalf("vocab size = %d, want 5", c.VocabSize())
	}
	id, ok := c.TermID("go")
	if !ok || id != 0 {
		t.Fatalf("expected 'go' to be term 0 (document-visit order), got %d ok=%v", id, ok)
	}
	for i := 0; i < c.VocabSize(); i++ {
		if c.DocFreq(i) < 1 {
			t.Fatalf("term id %d (%q) has df=0, violates coverage invariant", i, c.Term(i))
		}
	}
}

func TestIDFBM25Formula(t *testing.T) {
	// Manually verify against spec formula: ln((N-df+0.5)/(df+0.5)+1).
	n, df := 10, 3
	want := math.Log((float64(n)-float64(df)+0.5)/(float64(df)+0.5) + 1)
	got := idfBM25(n, df)
	if !approx(got, want, 1e-9) {
		t.Fatalf("got %f, want %f", got, want)
	}
}

func TestCosineIdenticalDocsIsOne(t *testing.T) {
	c := Build([][]string{
		{"alpha", "beta", "gamma"},
		{"alpha", "beta", "gamma"},
	})
	sim := Cosine(c.TFIDF(0), c.TFIDF(1))
	if !approx(sim, 1, 1e-9) {
		t.Fatalf("got %f, want 1", sim)
	}
}

func TestCosineDisjointDocsIsZero(t *testing.T) {
	c := Build([][]string{
		{"alpha", "beta"},
		{"gamma", "delta"},
	})
	sim := Cosine(c.TFIDF(0), c.TFIDF(1))
	if sim != 0 {
		t.Fatalf("got %f, want 0", sim)
	}
}

func TestCosineDistanceComplement(t *testing.T) {
	c := Build([][]string{
		{"alpha", "beta"},
		{"alpha", "beta"},
	})
	sim := Cosine(c.TFIDF(0), c.TFIDF(1))
	dist := CosineDistance(c.TFIDF(0), c.TFIDF(1))
	if !approx(sim+dist, 1, 1e-9) {
		t.Fatalf("sim+dist = %f, want 1", sim+dist)
	}
}

func TestBM25FavorsHigherTermFrequency(t *testing.T) {
	c := Build([][]string{
		{"go", "go", "go", "concurrency"},
		{"go", "ruby", "python", "java"},
	})
	scoreHigh := c.BM25(0, []string{"go"}, DefaultK1, DefaultB)
	scoreLow := c.BM25(1, []string{"go"}, DefaultK1, DefaultB)
	if scoreHigh <= scoreLow {
		t.Fatalf("expected doc with higher tf(go) to score higher: %f vs %f", scoreHigh, scoreLow)
	}
}

func TestBM25QueryUnseenTermIgnored(t *testing.T) {
	c := Build([][]string{{"go", "rust"}})
	score := c.BM25Query([]string{"go", "rust"}, []string{"go", "nonexistent"}, DefaultK1, DefaultB)
	if score <= 0 {
		t.Fatalf("expected positive score from known term, got %f", score)
	}
}

func TestTopMeanTFIDFTermsDeterministicTies(t *testing.T) {
	c := Build([][]string{
		{"zebra", "apple"},
		{"zebra", "apple"},
	})
	top := c.TopMeanTFIDFTerms([]int{0, 1}, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(top))
	}
	// Equal weights -> alphabetical tie-break.
	if top[0].Term != "apple" || top[1].Term != "zebra" {
		t.Fatalf("got %v, want [apple zebra] order", top)
	}
}

func TestEmptyCorpus(t *testing.T) {
	c := Build(nil)
	if c.Size() != 0 || c.VocabSize() != 0 {
		t.Fatalf("expected empty corpus, got size=%d vocab=%d", c.Size(), c.VocabSize())
	}
}
