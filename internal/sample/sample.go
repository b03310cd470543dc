// Package sample implements the four seeded sampling strategies used by
// the sample operation and by the discover pipeline's sample cap.
package sample

import (
	"fmt"
	"sort"

	"github.com/content-topology/topology/internal/record"
	"github.com/content-topology/topology/internal/topoerr"
)

// Strategy names a sampling algorithm for tagged-variant dispatch.
type Strategy string

const (
	Random      Strategy = "random"
	Stratified  Strategy = "stratified"
	Systematic  Strategy = "systematic"
	Reservoir   Strategy = "reservoir"
	DefaultSeed int64    = 42
)

// Options configures a single Sample call. Sample is pure in all four of
// Size, Strategy, Field, and Seed: identical arguments always produce an
// identical result.
type Options struct {
	Size     int
	Strategy Strategy
	Field    string // grouping key for Stratified; ignored otherwise
	Seed     int64
}

// Sample draws opts.Size records from batch using opts.Strategy. If
// opts.Size >= len(batch), batch is returned unchanged (same order).
func Sample(batch record.Batch, opts Options) (record.Batch, *topoerr.Error) {
	if opts.Size < 0 {
		return nil, topoerr.Invalid("sample size must be >= 0, got %d", opts.Size)
	}
	if opts.Size >= len(batch) {
		out := make(record.Batch, len(batch))
		copy(out, batch)
		return out, nil
	}
	if opts.Size == 0 {
		return record.Batch{}, nil
	}

	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSeed
	}

	switch opts.Strategy {
	case "", Random:
		return sampleRandom(batch, opts.Size, seed), nil
	case Stratified:
		if opts.Field == "" {
			return nil, topoerr.WithField(topoerr.KindInvalidInput, "stratified sampling requires a field", "field")
		}
		return sampleStratified(batch, opts.Size, opts.Field, seed), nil
	case Systematic:
		return sampleSystematic(batch, opts.Size, seed), nil
	case Reservoir:
		return sampleReservoir(batch, opts.Size, seed), nil
	default:
		return nil, topoerr.Invalid("unknown sample strategy %q", opts.Strategy)
	}
}

func sampleRandom(batch record.Batch, size int, seed int64) record.Batch {
	idx := make([]int, len(batch))
	for i := range idx {
		idx[i] = i
	}
	g := newLCG(seed)
	g.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	chosen := idx[:size]
	sort.Ints(chosen)

	out := make(record.Batch, size)
	for i, orig := range chosen {
		out[i] = batch[orig]
	}
	return out
}

func sampleStratified(batch record.Batch, size int, field string, seed int64) record.Batch {
	strata := make(map[string][]int)
	var keys []string
	for i, r := range batch {
		k, _ := r.StringField(field)
		if _, ok := strata[k]; !ok {
			keys = append(keys, k)
		}
		strata[k] = append(strata[k], i)
	}
	sort.Strings(keys)

	// Proportional allocation with at least one per stratum when the
	// requested size is >= the number of strata.
	alloc := make(map[string]int, len(keys))
	remaining := size
	if size >= len(keys) {
		for _, k := range keys {
			alloc[k] = 1
			remaining--
		}
	}
	total := len(batch)
	for _, k := range keys {
		if remaining <= 0 {
			break
		}
		share := int(float64(len(strata[k])) / float64(total) * float64(size))
		if share > remaining {
			share = remaining
		}
		alloc[k] += share
		remaining -= share
	}
	// Distribute any leftover (rounding slack) deterministically,
	// largest stratum first.
	if remaining > 0 {
		order := append([]string(nil), keys...)
		sort.Slice(order, func(i, j int) bool {
			if len(strata[order[i]]) != len(strata[order[j]]) {
				return len(strata[order[i]]) > len(strata[order[j]])
			}
			return order[i] < order[j]
		})
		for _, k := range order {
			if remaining <= 0 {
				break
			}
			if alloc[k] < len(strata[k]) {
				alloc[k]++
				remaining--
			}
		}
	}

	g := newLCG(seed)
	var chosen []int
	for _, k := range keys {
		members := append([]int(nil), strata[k]...)
		g.Shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
		n := alloc[k]
		if n > len(members) {
			n = len(members)
		}
		chosen = append(chosen, members[:n]...)
	}
	sort.Ints(chosen)

	out := make(record.Batch, len(chosen))
	for i, orig := range chosen {
		out[i] = batch[orig]
	}
	return out
}

func sampleSystematic(batch record.Batch, size int, seed int64) record.Batch {
	idx := make([]int, len(batch))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return recordID(batch[idx[i]], idx[i]) < recordID(batch[idx[j]], idx[j])
	})

	step := (len(batch) + size - 1) / size // ceil(N/k)
	g := newLCG(seed)
	offset := g.Intn(step)

	var chosen []int
	for pos := offset; pos < len(idx) && len(chosen) < size; pos += step {
		chosen = append(chosen, idx[pos])
	}
	// If rounding left us short, fill from the front of whatever remains.
	for i := 0; len(chosen) < size && i < len(idx); i++ {
		if !containsInt(chosen, idx[i]) {
			chosen = append(chosen, idx[i])
		}
	}
	sort.Ints(chosen)

	out := make(record.Batch, len(chosen))
	for i, orig := range chosen {
		out[i] = batch[orig]
	}
	return out
}

func sampleReservoir(batch record.Batch, size int, seed int64) record.Batch {
	reservoir := make([]int, size)
	for i := 0; i < size; i++ {
		reservoir[i] = i
	}
	g := newLCG(seed)
	for i := size; i < len(batch); i++ {
		j := g.Intn(i + 1)
		if j < size {
			reservoir[j] = i
		}
	}
	sort.Ints(reservoir)

	out := make(record.Batch, size)
	for i, orig := range reservoir {
		out[i] = batch[orig]
	}
	return out
}

// recordID returns a stable sort key for systematic sampling: the record's
// "id" field if present, else a zero-padded original index so ordering
// stays deterministic without an explicit id.
func recordID(r record.Record, idx int) string {
	if s, ok := r.StringField("id"); ok && s != "" {
		return s
	}
	return fmt.Sprintf("%020d", idx)
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
