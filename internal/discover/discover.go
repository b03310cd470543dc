// Package discover learns a taxonomy from a record batch by sampling,
// building a corpus, clustering with HAC, and labeling each cluster by
// its dominant TF-IDF terms. Grounded on the teacher's layered-retrieval
// pipeline shape (internal/memory/retrieval.go: fetch -> score -> label),
// generalized from embedding-space retrieval to a clustering pipeline.
package discover

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/content-topology/topology/internal/corpus"
	"github.com/content-topology/topology/internal/hac"
	"github.com/content-topology/topology/internal/record"
	"github.com/content-topology/topology/internal/sample"
	"github.com/content-topology/topology/internal/taxonomy"
	"github.com/content-topology/topology/internal/tokenize"
	"github.com/content-topology/topology/internal/topoerr"
	"github.com/content-topology/topology/internal/urlnorm"
)

// DefaultSampleCap is the advisory sample size above which discover
// draws a seeded subsample before running HAC, since HAC is O(N^2).
const DefaultSampleCap = 500

// Options configures a Discover call.
type Options struct {
	Field    string
	Clusters int
	SampleCap int // 0 means DefaultSampleCap
	Linkage  hac.Linkage
	TopTerms int // keywords per cluster; 0 means 5
	Seed     int64
}

// Result is the outcome of a Discover call: the learned taxonomy plus
// the sampled document count actually clustered (for observability).
type Result struct {
	Taxonomy      taxonomy.Taxonomy
	SampledCount  int
	OriginalCount int
	Warning       string
}

// Discover extracts text from batch, samples down to the cap, clusters
// the sample by cosine-distance over TF-IDF with HAC, and labels each
// resulting cluster by its top mean-TF-IDF terms.
func Discover(batch record.Batch, opts Options) (Result, *topoerr.Error) {
	if opts.Clusters <= 0 {
		return Result{}, topoerr.Invalid("clusters must be >= 1, got %d", opts.Clusters)
	}
	topTerms := opts.TopTerms
	if topTerms <= 0 {
		topTerms = 5
	}
	sampleCap := opts.SampleCap
	if sampleCap <= 0 {
		sampleCap = DefaultSampleCap
	}
	linkage := opts.Linkage
	if linkage == "" {
		linkage = hac.Average
	}

	texts, _ := record.Texts(batch, opts.Field)
	if len(texts) == 0 {
		return Result{}, topoerr.WithField(topoerr.KindFieldMissing, "no records contain the requested field", opts.Field)
	}

	sampled := texts
	if len(texts) > sampleCap {
		rows := make(record.Batch, len(texts))
		for i, t := range texts {
			rows[i] = record.Record{"_text": t}
		}
		drawn, serr := sample.Sample(rows, sample.Options{Size: sampleCap, Strategy: sample.Random, Seed: opts.Seed})
		if serr != nil {
			return Result{}, serr
		}
		sampled = make([]string, len(drawn))
		for i, r := range drawn {
			s, _ := r.StringField("_text")
			sampled[i] = s
		}
	}

	tokenized := make([][]string, len(sampled))
	for i, text := range sampled {
		tokenized[i] = tokenize.Tokenize(text, tokenize.Default())
	}
	c := corpus.Build(tokenized)

	n := len(sampled)
	vecs := make([]corpus.Vector, n)
	for i := 0; i < n; i++ {
		vecs[i] = corpus.Normalize(c.TFIDF(i))
	}

	// Each goroutine owns a distinct row i and writes only dist[i][j] and
	// dist[j][i] for j > i; no two goroutines ever touch the same cell, so
	// the result is identical regardless of scheduling order.
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			for j := i + 1; j < n; j++ {
				d := corpus.CosineDistance(vecs[i], vecs[j])
				dist[i][j] = d
				dist[j][i] = d
			}
			return nil
		})
	}
	_ = g.Wait()

	var warning string
	if isZeroVariance(dist) {
		warning = "distance matrix is zero-variance; reporting a single cluster"
	}

	k := opts.Clusters
	if k > n {
		k = n
	}
	dendro := hac.Build(dist, linkage)
	clusters := dendro.CutAt(k)
	if warning != "" {
		clusters = dendro.CutAt(1)
	}

	var tx taxonomy.Taxonomy
	for id, members := range clusters {
		top := c.TopMeanTFIDFTerms(members, topTerms)
		label := "uncategorized"
		if len(top) > 0 {
			label = urlnorm.Slug(top[0].Term)
		}
		tx.Categories = append(tx.Categories, taxonomy.Category{
			ID:       id,
			Label:    label,
			Keywords: top,
			Parent:   nil,
		})
	}

	return Result{
		Taxonomy:      tx,
		SampledCount:  n,
		OriginalCount: len(texts),
		Warning:       warning,
	}, nil
}

func isZeroVariance(dist [][]float64) bool {
	for _, row := range dist {
		for _, v := range row {
			if v != 0 {
				return false
			}
		}
	}
	return true
}
