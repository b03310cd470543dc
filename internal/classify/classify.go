// Package classify assigns each record to the best-matching taxonomy
// category by BM25-scoring the record's own tokens against each
// category's keyword list, softmax-normalizing the winning score into a
// confidence. Grounded on the teacher's threshold-based embedding
// assignment (internal/embedding/assign.go), generalized from cosine
// nearest-space lookup to BM25 keyword scoring.
package classify

import (
	"math"

	"github.com/content-topology/topology/internal/corpus"
	"github.com/content-topology/topology/internal/taxonomy"
	"github.com/content-topology/topology/internal/tokenize"
)

// Uncategorized is the reserved category label used when a record's best
// score does not exceed the configured threshold.
const Uncategorized = "uncategorized"

// Assignment is the per-record outcome of classification.
type Assignment struct {
	Category   string
	Hierarchy  string
	Confidence float64
}

// Classify scores text against every category in tx and returns the
// winning assignment. c supplies the global IDF weights used by BM25;
// the winning score must exceed threshold to avoid falling back to
// Uncategorized, so with threshold 0 a record that matches no keyword
// (score 0) is Uncategorized.
func Classify(text string, c *corpus.Corpus, tx *taxonomy.Taxonomy, threshold float64) Assignment {
	tokens := tokenize.Tokenize(text, tokenize.Default())

	scores := make([]float64, len(tx.Categories))
	for i, cat := range tx.Categories {
		terms := make([]string, len(cat.Keywords))
		weightOf := make(map[string]float64, len(cat.Keywords))
		for j, kw := range cat.Keywords {
			terms[j] = kw.Term
			weightOf[kw.Term] += kw.Weight
		}
		var score float64
		for _, term := range uniqueTerms(terms) {
			score += c.BM25Query(tokens, []string{term}, corpus.DefaultK1, corpus.DefaultB) * weightOf[term]
		}
		scores[i] = score
	}

	if len(scores) == 0 {
		return Assignment{Category: Uncategorized, Hierarchy: Uncategorized, Confidence: 0}
	}

	bestIdx := 0
	for i, s := range scores {
		if s > scores[bestIdx] {
			bestIdx = i
		}
	}
	best := scores[bestIdx]

	if best <= threshold {
		return Assignment{Category: Uncategorized, Hierarchy: Uncategorized, Confidence: 0}
	}

	confidence := softmaxTop(scores, bestIdx)
	cat := tx.Categories[bestIdx]
	return Assignment{
		Category:   cat.Label,
		Hierarchy:  tx.Hierarchy(cat),
		Confidence: confidence,
	}
}

// softmaxTop computes the softmax weight of scores[top] against the full
// score vector.
func softmaxTop(scores []float64, top int) float64 {
	maxScore := scores[0]
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	var sum float64
	for _, s := range scores {
		sum += math.Exp(s - maxScore)
	}
	if sum == 0 {
		return 0
	}
	return math.Exp(scores[top]-maxScore) / sum
}

func uniqueTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
