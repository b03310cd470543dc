// Package dedup groups near- and exact-duplicate records via union-find
// over URL-canonical-key equivalence and/or SimHash-LSH fuzzy candidate
// pairs. Grounded on the Omen duplicate-analyzer's groupClones union-find
// routine, generalized from content-clone grouping to the spec's three
// dedup strategies.
package dedup

import (
	"sort"

	"github.com/content-topology/topology/internal/lsh"
	"github.com/content-topology/topology/internal/record"
	"github.com/content-topology/topology/internal/simhash"
	"github.com/content-topology/topology/internal/tokenize"
	"github.com/content-topology/topology/internal/urlnorm"
)

// Strategy selects which equivalence edges feed the union-find merge.
type Strategy string

const (
	URL      Strategy = "url"
	Fuzzy    Strategy = "fuzzy"
	Combined Strategy = "combined"
)

// DefaultHammingThreshold is the default fuzzy-match cutoff (<=3 bits of
// a 64-bit fingerprint differ, corresponding to similarity >= ~0.95).
const DefaultHammingThreshold = 3

// Options configures a Dedup call.
type Options struct {
	Field     string // text field, used by fuzzy/combined
	URLField  string // url field, used by url/combined
	Strategy  Strategy
	Threshold int // Hamming distance threshold; 0 means DefaultHammingThreshold
}

// Outcome is the per-record annotation dedup adds.
type Outcome struct {
	DupGroup  int
	IsPrimary bool
}

// Dedup partitions batch into duplicate groups using the configured
// strategy and returns one Outcome per original index.
func Dedup(batch record.Batch, opts Options) []Outcome {
	n := len(batch)
	uf := newUnionFind(n)

	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultHammingThreshold
	}

	if opts.Strategy == URL || opts.Strategy == Combined {
		unionByURL(batch, opts.URLField, uf)
	}
	if opts.Strategy == Fuzzy || opts.Strategy == Combined {
		unionByFuzzy(batch, opts.Field, threshold, uf)
	}

	groupMembers := make(map[int][]int)
	for i := 0; i < n; i++ {
		root := uf.find(i)
		groupMembers[root] = append(groupMembers[root], i)
	}

	out := make([]Outcome, n)
	for _, members := range groupMembers {
		sort.Ints(members)
		groupID := members[0]
		for _, idx := range members {
			out[idx] = Outcome{DupGroup: groupID, IsPrimary: idx == groupID}
		}
	}
	return out
}

func unionByURL(batch record.Batch, field string, uf *unionFind) {
	keyToFirst := make(map[string]int)
	for i, r := range batch {
		raw, ok := r.StringField(field)
		if !ok || raw == "" {
			continue
		}
		norm := urlnorm.Normalize(raw)
		if first, seen := keyToFirst[norm.CanonicalKey]; seen {
			uf.union(first, i)
		} else {
			keyToFirst[norm.CanonicalKey] = i
		}
	}
}

func unionByFuzzy(batch record.Batch, field string, threshold int, uf *unionFind) {
	fingerprints := make([]simhash.Fingerprint, len(batch))
	haveFP := make([]bool, len(batch))
	idx := lsh.NewSimHashIndex(8, 8) // 8*8 = 64 bits

	for i, r := range batch {
		text, ok := r.Text(field)
		if !ok {
			continue
		}
		tokens := tokenize.Tokenize(text, tokenize.Default())
		fp := simhash.Unweighted(tokens)
		fingerprints[i] = fp
		haveFP[i] = true
		idx.InsertSimHash(recordKey(i), fp)
	}

	for i := range batch {
		if !haveFP[i] {
			continue
		}
		candidates := idx.CandidatesSimHash(recordKey(i), fingerprints[i])
		for _, c := range candidates {
			j := decodeRecordKey(c)
			if j <= i {
				continue // each pair considered once
			}
			if simhash.Hamming(fingerprints[i], fingerprints[j]) <= threshold {
				uf.union(i, j)
			}
		}
	}
}

func recordKey(i int) string {
	return itoa(i)
}

func decodeRecordKey(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}

// unionFind is a standard disjoint-set structure with path compression
// and union-by-rank, grounded on the Omen duplicate-analyzer's groupClones.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}
