// Package ops implements the operation facade: the eleven entry points
// of §4.13, each taking a generic argument record and a record sequence
// and returning either an annotated record sequence or a summary record.
// This is the single integration point every frontend (CLI, or any other
// protocol surface) calls into; it owns no state itself and contains no
// algorithmic content of its own beyond wiring the components together
// in the documented column order.
package ops

import (
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/content-topology/topology/internal/classify"
	"github.com/content-topology/topology/internal/corpus"
	"github.com/content-topology/topology/internal/dedup"
	"github.com/content-topology/topology/internal/discover"
	"github.com/content-topology/topology/internal/hac"
	"github.com/content-topology/topology/internal/nmf"
	"github.com/content-topology/topology/internal/record"
	"github.com/content-topology/topology/internal/sample"
	"github.com/content-topology/topology/internal/simhash"
	"github.com/content-topology/topology/internal/strdist"
	"github.com/content-topology/topology/internal/taxonomy"
	"github.com/content-topology/topology/internal/tokenize"
	"github.com/content-topology/topology/internal/topoerr"
	"github.com/content-topology/topology/internal/urlnorm"
)

// SampleArgs configures the sample operation.
type SampleArgs struct {
	Size     int
	Strategy sample.Strategy
	Field    string
	Seed     int64
}

// Sample draws a subset of records using the configured strategy.
func Sample(batch record.Batch, args SampleArgs) (record.Batch, *topoerr.Error) {
	return sample.Sample(batch, sample.Options{Size: args.Size, Strategy: args.Strategy, Field: args.Field, Seed: args.Seed})
}

// FingerprintArgs configures the fingerprint operation.
type FingerprintArgs struct {
	Field    string
	Weighted bool
}

// Fingerprint appends a `_fingerprint` column: a 16-character lowercase
// hex SimHash over each record's tokenized text field. When Weighted is
// set, each occurrence of a term contributes that term's corpus IDF
// (built over the batch) rather than its full TF-IDF — simhash.Compute
// already accumulates per occurrence, so a term repeated tf times still
// nets tf·idf overall, matching unweighted mode's per-occurrence
// accumulation to tf. Rows whose field is missing are skipped (left
// unannotated).
func Fingerprint(batch record.Batch, args FingerprintArgs) record.Batch {
	texts, indices := record.Texts(batch, args.Field)
	tokenized := make([][]string, len(texts))
	for i, t := range texts {
		tokenized[i] = tokenize.Tokenize(t, tokenize.Default())
	}

	var c *corpus.Corpus
	if args.Weighted {
		c = corpus.Build(tokenized)
	}

	out := make(record.Batch, len(batch))
	copy(out, batch)

	for i, tokens := range tokenized {
		var weights simhash.Weights
		if args.Weighted {
			tfidf := c.TFIDF(i)
			weights = make(simhash.Weights, len(tfidf))
			for id := range tfidf {
				weights[c.Term(id)] = c.IDF(id)
			}
		}
		fp := simhash.Compute(tokens, weights)
		orig := indices[i]
		out[orig] = out[orig].With("_fingerprint", fp.Hex())
	}
	return out
}

// Analyze produces a summary record over the batch's fields: per-field
// presence counts plus a humanized total-record count.
func Analyze(batch record.Batch) record.Record {
	fieldCounts := make(map[string]int)
	for _, r := range batch {
		for _, k := range record.SortedKeys(r) {
			fieldCounts[k]++
		}
	}
	fields := make([]string, 0, len(fieldCounts))
	for k := range fieldCounts {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	counts := make(map[string]int, len(fields))
	for _, f := range fields {
		counts[f] = fieldCounts[f]
	}

	return record.Record{
		"record_count":  len(batch),
		"records_human": humanize.Comma(int64(len(batch))),
		"field_counts":  counts,
	}
}

// Similarity scores two strings under the named metric.
func Similarity(a, b string, metric strdist.Metric) (float64, bool) {
	return strdist.Similarity(metric, a, b)
}

// NormalizeURL normalizes a single URL string.
func NormalizeURL(raw string) urlnorm.Normalized {
	return urlnorm.Normalize(raw)
}

// ClassifyArgs configures the classify operation.
type ClassifyArgs struct {
	Field        string
	Clusters     int
	TaxonomyPath string
	Taxonomy     *taxonomy.Taxonomy // used in preference to TaxonomyPath when non-nil
	Threshold    float64
	Linkage      hac.Linkage
	SampleCap    int
	Seed         int64
}

// Classify assigns each record a category, hierarchy path, and
// confidence. If args.Taxonomy and args.TaxonomyPath are both empty, a
// taxonomy is first learned via discover using args.Clusters.
func Classify(batch record.Batch, args ClassifyArgs) (record.Batch, *topoerr.Error) {
	tx := args.Taxonomy
	if tx == nil && args.TaxonomyPath != "" {
		loaded, err := taxonomy.Load(args.TaxonomyPath)
		if err != nil {
			return nil, err
		}
		tx = loaded
	}
	if tx == nil {
		result, err := discover.Discover(batch, discover.Options{
			Field: args.Field, Clusters: args.Clusters, Linkage: args.Linkage,
			SampleCap: args.SampleCap, Seed: args.Seed,
		})
		if err != nil {
			return nil, err
		}
		tx = &result.Taxonomy
	}

	texts, indices := record.Texts(batch, args.Field)
	if len(texts) == 0 {
		return nil, topoerr.WithField(topoerr.KindFieldMissing, "every record is missing the classify field", args.Field)
	}
	tokenized := make([][]string, len(texts))
	for i, t := range texts {
		tokenized[i] = tokenize.Tokenize(t, tokenize.Default())
	}
	c := corpus.Build(tokenized)

	out := make(record.Batch, len(batch))
	copy(out, batch)

	uncategorized := 0
	for i, text := range texts {
		a := classify.Classify(text, c, tx, args.Threshold)
		if a.Category == classify.Uncategorized {
			uncategorized++
		}
		orig := indices[i]
		out[orig] = out[orig].With("_category", a.Category)
		out[orig] = out[orig].With("_hierarchy", a.Hierarchy)
		out[orig] = out[orig].With("_confidence", a.Confidence)
	}
	return out, nil
}

// GenerateArgs configures the generate (taxonomy discovery) operation.
type GenerateArgs struct {
	Field     string
	Depth     int // reserved for future hierarchical discovery; flat taxonomies today
	Linkage   hac.Linkage
	TopTerms  int
	Clusters  int
	SampleCap int
	Seed      int64
}

// Generate learns a taxonomy from the batch and returns it as a record,
// including the additive `_classification_coverage` field: fraction of
// records a subsequent classify call would not assign uncategorized,
// estimated by classifying the same batch against the learned taxonomy.
func Generate(batch record.Batch, args GenerateArgs) (record.Record, *topoerr.Error) {
	clusters := args.Clusters
	if clusters <= 0 {
		clusters = 5
	}
	result, err := discover.Discover(batch, discover.Options{
		Field: args.Field, Clusters: clusters, Linkage: args.Linkage,
		TopTerms: args.TopTerms, SampleCap: args.SampleCap, Seed: args.Seed,
	})
	if err != nil {
		return nil, err
	}

	texts, _ := record.Texts(batch, args.Field)
	tokenized := make([][]string, len(texts))
	for i, t := range texts {
		tokenized[i] = tokenize.Tokenize(t, tokenize.Default())
	}
	c := corpus.Build(tokenized)

	uncategorized := 0
	for _, t := range texts {
		a := classify.Classify(t, c, &result.Taxonomy, 0)
		if a.Category == classify.Uncategorized {
			uncategorized++
		}
	}
	coverage := 1.0
	if len(texts) > 0 {
		coverage = 1 - float64(uncategorized)/float64(len(texts))
	}

	return record.Record{
		"taxonomy":                 result.Taxonomy,
		"sampled_count":            result.SampledCount,
		"original_count":           result.OriginalCount,
		"warning":                  result.Warning,
		"_classification_coverage": coverage,
	}, nil
}

// TagsArgs configures the tags operation.
type TagsArgs struct {
	Field string
	Count int
}

// Tags appends a `_tags` column: the top-Count TF-IDF terms for each
// record's own text, computed against a corpus built over the batch.
func Tags(batch record.Batch, args TagsArgs) record.Batch {
	count := args.Count
	if count <= 0 {
		count = 5
	}
	texts, indices := record.Texts(batch, args.Field)
	tokenized := make([][]string, len(texts))
	for i, t := range texts {
		tokenized[i] = tokenize.Tokenize(t, tokenize.Default())
	}
	c := corpus.Build(tokenized)

	out := make(record.Batch, len(batch))
	copy(out, batch)

	for i := range texts {
		top := c.TopMeanTFIDFTerms([]int{i}, count)
		tags := make([]string, len(top))
		for j, wt := range top {
			tags[j] = wt.Term
		}
		orig := indices[i]
		out[orig] = out[orig].With("_tags", tags)
	}
	return out
}

// TopicsArgs configures the topics operation.
type TopicsArgs struct {
	Field      string
	Topics     int
	Terms      int
	Iterations int
	Seed       int64
}

// Topics runs NMF over the batch's TF-IDF matrix and returns a summary
// record: one entry per topic with its top terms.
func Topics(batch record.Batch, args TopicsArgs) (record.Record, *topoerr.Error) {
	if args.Topics <= 0 {
		return nil, topoerr.Invalid("topics count must be >= 1, got %d", args.Topics)
	}
	texts, _ := record.Texts(batch, args.Field)
	if len(texts) == 0 {
		return nil, topoerr.WithField(topoerr.KindFieldMissing, "no records contain the requested field", args.Field)
	}
	tokenized := make([][]string, len(texts))
	for i, t := range texts {
		tokenized[i] = tokenize.Tokenize(t, tokenize.Default())
	}
	c := corpus.Build(tokenized)

	v := make(nmf.Matrix, len(texts))
	for i := range v {
		row := make([]float64, c.VocabSize())
		for id, w := range c.TFIDF(i) {
			row[id] = w
		}
		v[i] = row
	}

	terms := args.Terms
	if terms <= 0 {
		terms = 10
	}
	res := nmf.Factorize(v, args.Topics, args.Seed, args.Iterations, nmf.DefaultTolerance)

	topics := make([]record.Record, len(res.H))
	for k, row := range res.H {
		idx := nmf.TopTerms(row, terms)
		words := make([]string, len(idx))
		for j, id := range idx {
			words[j] = c.Term(id)
		}
		topics[k] = record.Record{"topic": k, "terms": words}
	}

	return record.Record{"topics": topics, "iterations": res.Iterations}, nil
}

// DedupArgs configures the dedup operation.
type DedupArgs struct {
	Field     string
	URLField  string
	Strategy  dedup.Strategy
	Threshold int
}

// Dedup appends `_dup_group` and `_is_primary` columns.
func Dedup(batch record.Batch, args DedupArgs) record.Batch {
	outcomes := dedup.Dedup(batch, dedup.Options{
		Field: args.Field, URLField: args.URLField, Strategy: args.Strategy, Threshold: args.Threshold,
	})
	out := make(record.Batch, len(batch))
	for i, r := range batch {
		out[i] = r.With("_dup_group", outcomes[i].DupGroup).With("_is_primary", outcomes[i].IsPrimary)
	}
	return out
}

// OrganizeFormat selects the organize operation's path layout.
type OrganizeFormat string

const (
	Folders OrganizeFormat = "folders"
	Flat    OrganizeFormat = "flat"
	Nested  OrganizeFormat = "nested"
)

// OrganizeArgs configures the organize operation.
type OrganizeArgs struct {
	Format        OrganizeFormat
	OutputDir     string
	CategoryField string
}

// Organize appends an `_output_path` column per §4.13's path rule. It
// only computes paths; writing files to disk is a collaborator's job.
func Organize(batch record.Batch, args OrganizeArgs) record.Batch {
	out := make(record.Batch, len(batch))
	for i, r := range batch {
		id := recordIdentifier(r, i)
		var path string
		switch args.Format {
		case Flat:
			path = args.OutputDir + "/" + urlnorm.Slug(id)
		case Nested:
			hierarchy, _ := r.StringField("_hierarchy")
			if hierarchy == "" {
				hierarchy = id
			}
			path = args.OutputDir
			for _, seg := range splitPath(hierarchy) {
				path += "/" + urlnorm.Slug(seg)
			}
		case Folders:
			fallthrough
		default:
			category, _ := r.StringField(args.CategoryField)
			if category == "" {
				category = "uncategorized"
			}
			idOrHierarchy := id
			if hierarchy, ok := r.StringField("_hierarchy"); ok && hierarchy != "" {
				idOrHierarchy = hierarchy
			}
			path = args.OutputDir + "/" + urlnorm.Slug(category) + "/" + urlnorm.Slug(idOrHierarchy)
		}
		out[i] = r.With("_output_path", path)
	}
	return out
}

func recordIdentifier(r record.Record, idx int) string {
	if id, ok := r.StringField("id"); ok && id != "" {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(itoa(idx))).String()
}

func splitPath(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '/' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
