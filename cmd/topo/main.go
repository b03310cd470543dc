// Command topo is the CLI collaborator for the content-topology engine:
// one subcommand per operation in the facade, each marshaling flags and
// stdin into an ops argument struct and unmarshaling the result back to
// stdout. No algorithmic content lives here — it is a thin frontend over
// internal/ops, grounded on the teacher's cmd/wt cobra tree.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/content-topology/topology/internal/dedup"
	"github.com/content-topology/topology/internal/hac"
	"github.com/content-topology/topology/internal/logger"
	"github.com/content-topology/topology/internal/ops"
	"github.com/content-topology/topology/internal/record"
	"github.com/content-topology/topology/internal/sample"
	"github.com/content-topology/topology/internal/strdist"
)

func main() {
	var logLevel string

	root := &cobra.Command{
		Use:   "topo",
		Short: "topo — content-topology engine CLI",
		Long:  "Tokenizes, fingerprints, clusters, classifies, and deduplicates record batches.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "debug|info|warn|error")

	root.AddCommand(
		sampleCmd(),
		fingerprintCmd(),
		analyzeCmd(),
		similarityCmd(),
		normalizeURLCmd(),
		classifyCmd(),
		generateCmd(),
		tagsCmd(),
		topicsCmd(),
		dedupCmd(),
		organizeCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readBatch() (record.Batch, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	var batch record.Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parse stdin as JSON record array: %w", err)
	}
	return batch, nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func sampleCmd() *cobra.Command {
	var size int
	var strategy string
	var field string
	var seed int64

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Draw a subset of records",
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readBatch()
			if err != nil {
				return err
			}
			logger.Operation("sample", "records", len(batch), "size", size, "strategy", strategy)
			out, topoErr := ops.Sample(batch, ops.SampleArgs{Size: size, Strategy: sample.Strategy(strategy), Field: field, Seed: seed})
			if topoErr != nil {
				return topoErr
			}
			return writeJSON(out)
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "number of records to draw")
	cmd.Flags().StringVar(&strategy, "strategy", "random", "random|stratified|systematic|reservoir")
	cmd.Flags().StringVar(&field, "field", "", "grouping field for stratified sampling")
	cmd.Flags().Int64Var(&seed, "seed", 0, "sampling seed (0 uses the documented default)")
	return cmd
}

func fingerprintCmd() *cobra.Command {
	var field string
	var weighted bool

	cmd := &cobra.Command{
		Use:   "fingerprint",
		Short: "Append a SimHash _fingerprint column",
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readBatch()
			if err != nil {
				return err
			}
			logger.Operation("fingerprint", "records", len(batch), "field", field, "weighted", weighted)
			out := ops.Fingerprint(batch, ops.FingerprintArgs{Field: field, Weighted: weighted})
			return writeJSON(out)
		},
	}
	cmd.Flags().StringVar(&field, "field", "content", "text field to fingerprint")
	cmd.Flags().BoolVar(&weighted, "weighted", false, "weight tokens by TF-IDF")
	return cmd
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Summarize the batch's fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readBatch()
			if err != nil {
				return err
			}
			logger.Operation("analyze", "records", len(batch))
			return writeJSON(ops.Analyze(batch))
		},
	}
}

func similarityCmd() *cobra.Command {
	var metric string

	cmd := &cobra.Command{
		Use:   "similarity [a] [b]",
		Short: "Score two strings under a similarity metric",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Operation("similarity", "metric", metric)
			score, ok := ops.Similarity(args[0], args[1], strdist.Metric(metric))
			if !ok {
				return fmt.Errorf("unknown similarity metric %q", metric)
			}
			return writeJSON(record.Record{"score": score})
		},
	}
	cmd.Flags().StringVar(&metric, "metric", "levenshtein", "levenshtein|jaro_winkler|cosine_bigram")
	return cmd
}

func normalizeURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize-url [url]",
		Short: "Normalize a URL and derive its canonical key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Operation("normalize-url")
			return writeJSON(ops.NormalizeURL(args[0]))
		},
	}
}

func classifyCmd() *cobra.Command {
	var field, taxonomyPath string
	var clusters int
	var threshold float64
	var linkage string
	var sampleCap int
	var seed int64

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Assign each record a category, hierarchy, and confidence",
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readBatch()
			if err != nil {
				return err
			}
			logger.Operation("classify", "records", len(batch), "field", field, "clusters", clusters)
			out, topoErr := ops.Classify(batch, ops.ClassifyArgs{
				Field: field, Clusters: clusters, TaxonomyPath: taxonomyPath,
				Threshold: threshold, Linkage: hac.Linkage(linkage), SampleCap: sampleCap, Seed: seed,
			})
			if topoErr != nil {
				return topoErr
			}
			return writeJSON(out)
		},
	}
	cmd.Flags().StringVar(&field, "field", "content", "text field to classify")
	cmd.Flags().StringVar(&taxonomyPath, "taxonomy-path", "", "path to a taxonomy JSON file; omit to learn one from the batch")
	cmd.Flags().IntVar(&clusters, "clusters", 5, "cluster count when learning a taxonomy")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "minimum score to avoid 'uncategorized'")
	cmd.Flags().StringVar(&linkage, "linkage", "average", "single|complete|average|ward")
	cmd.Flags().IntVar(&sampleCap, "sample-cap", 0, "advisory sample cap for learning a taxonomy")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for sampling")
	return cmd
}

func generateCmd() *cobra.Command {
	var field string
	var depth, topTerms, clusters, sampleCap int
	var linkage string
	var seed int64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Discover a taxonomy from the batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readBatch()
			if err != nil {
				return err
			}
			logger.Operation("generate", "records", len(batch), "field", field, "clusters", clusters)
			out, topoErr := ops.Generate(batch, ops.GenerateArgs{
				Field: field, Depth: depth, Linkage: hac.Linkage(linkage),
				TopTerms: topTerms, Clusters: clusters, SampleCap: sampleCap, Seed: seed,
			})
			if topoErr != nil {
				return topoErr
			}
			return writeJSON(out)
		},
	}
	cmd.Flags().StringVar(&field, "field", "content", "text field to discover a taxonomy over")
	cmd.Flags().IntVar(&depth, "depth", 1, "taxonomy depth (reserved)")
	cmd.Flags().StringVar(&linkage, "linkage", "average", "single|complete|average|ward")
	cmd.Flags().IntVar(&topTerms, "top-terms", 5, "keywords per discovered category")
	cmd.Flags().IntVar(&clusters, "clusters", 5, "number of categories to discover")
	cmd.Flags().IntVar(&sampleCap, "sample-cap", 0, "advisory sample cap (0 uses the documented default)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "sampling seed")
	return cmd
}

func tagsCmd() *cobra.Command {
	var field string
	var count int

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Append a _tags column of top TF-IDF terms per record",
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readBatch()
			if err != nil {
				return err
			}
			logger.Operation("tags", "records", len(batch), "field", field, "count", count)
			return writeJSON(ops.Tags(batch, ops.TagsArgs{Field: field, Count: count}))
		},
	}
	cmd.Flags().StringVar(&field, "field", "content", "text field to tag")
	cmd.Flags().IntVar(&count, "count", 5, "number of tags per record")
	return cmd
}

func topicsCmd() *cobra.Command {
	var field string
	var topicsCount, terms, iterations int
	var seed int64

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Factor the batch's TF-IDF matrix into topics via NMF",
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readBatch()
			if err != nil {
				return err
			}
			logger.Operation("topics", "records", len(batch), "field", field, "topics-count", topicsCount)
			out, topoErr := ops.Topics(batch, ops.TopicsArgs{
				Field: field, Topics: topicsCount, Terms: terms, Iterations: iterations, Seed: seed,
			})
			if topoErr != nil {
				return topoErr
			}
			return writeJSON(out)
		},
	}
	cmd.Flags().StringVar(&field, "field", "content", "text field to factor")
	cmd.Flags().IntVar(&topicsCount, "topics-count", 5, "number of topics")
	cmd.Flags().IntVar(&terms, "terms", 10, "top terms per topic")
	cmd.Flags().IntVar(&iterations, "iterations", 0, "iteration cap (0 uses the documented default)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "NMF initialization seed")
	return cmd
}

func dedupCmd() *cobra.Command {
	var field, urlField, strategy string
	var threshold int

	cmd := &cobra.Command{
		Use:   "dedup",
		Short: "Group duplicate/near-duplicate records",
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readBatch()
			if err != nil {
				return err
			}
			logger.Operation("dedup", "records", len(batch), "strategy", strategy)
			return writeJSON(ops.Dedup(batch, ops.DedupArgs{
				Field: field, URLField: urlField, Strategy: dedup.Strategy(strategy), Threshold: threshold,
			}))
		},
	}
	cmd.Flags().StringVar(&field, "field", "content", "text field for fuzzy dedup")
	cmd.Flags().StringVar(&urlField, "url-field", "url", "URL field for url dedup")
	cmd.Flags().StringVar(&strategy, "strategy", "combined", "url|fuzzy|combined")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "Hamming distance threshold (0 uses the documented default)")
	return cmd
}

func organizeCmd() *cobra.Command {
	var format, outputDir, categoryField string

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Append an _output_path column",
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := readBatch()
			if err != nil {
				return err
			}
			logger.Operation("organize", "records", len(batch), "format", format, "output-dir", outputDir)
			return writeJSON(ops.Organize(batch, ops.OrganizeArgs{
				Format: ops.OrganizeFormat(format), OutputDir: outputDir, CategoryField: categoryField,
			}))
		},
	}
	cmd.Flags().StringVar(&format, "format", "folders", "folders|flat|nested")
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "output directory root")
	cmd.Flags().StringVar(&categoryField, "category-field", "_category", "field naming each record's category")
	return cmd
}
