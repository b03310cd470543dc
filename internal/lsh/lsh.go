// Package lsh implements banded locality-sensitive-hashing indexes over
// MinHash signatures and SimHash fingerprints, grounded on the
// AleutianLocal trace-pattern LSH index's band/bucket layout, generalized
// to both signature shapes per the component spec.
package lsh

import (
	"hash/fnv"
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/content-topology/topology/internal/minhash"
	"github.com/content-topology/topology/internal/simhash"
)

// Index is a banded LSH index over record ids. It never mutates a stored
// signature. Its fields are unexported, so it has no serialized form.
type Index struct {
	bands   int
	rows    int
	buckets []map[uint64][]string // one bucket map per band
	ids     []string              // insertion-order ids, for determinism
}

// NewMinHashIndex builds an index sized for k-length MinHash signatures
// split into bands contiguous sub-arrays of rows integers each.
// bands*rows must equal the signature length the caller will insert.
func NewMinHashIndex(bands, rows int) *Index {
	idx := &Index{bands: bands, rows: rows, buckets: make([]map[uint64][]string, bands)}
	for i := range idx.buckets {
		idx.buckets[i] = make(map[uint64][]string)
	}
	return idx
}

// NewSimHashIndex builds an index over 64-bit SimHash fingerprints split
// into bands contiguous bit-ranges. bands*rows must equal 64.
func NewSimHashIndex(bands, rows int) *Index {
	return NewMinHashIndex(bands, rows)
}

// InsertMinHash adds id under its MinHash signature's band keys.
func (idx *Index) InsertMinHash(id string, sig minhash.Signature) {
	idx.ids = append(idx.ids, id)
	for b := 0; b < idx.bands; b++ {
		key := bandKeyMinHash(sig, b, idx.rows)
		idx.buckets[b][key] = append(idx.buckets[b][key], id)
	}
}

// InsertSimHash adds id under its SimHash fingerprint's band keys.
func (idx *Index) InsertSimHash(id string, fp simhash.Fingerprint) {
	idx.ids = append(idx.ids, id)
	for b := 0; b < idx.bands; b++ {
		key := bandKeySimHash(fp, b, idx.rows)
		idx.buckets[b][key] = append(idx.buckets[b][key], id)
	}
}

// Remove deletes id from every bucket it occupies (no-op if absent).
func (idx *Index) Remove(id string) {
	for _, bucket := range idx.buckets {
		for k, members := range bucket {
			bucket[k] = removeString(members, id)
		}
	}
	idx.ids = removeString(idx.ids, id)
}

// CandidatesMinHash returns the deduplicated, sorted union of ids sharing
// any band bucket with sig, excluding self (by id).
func (idx *Index) CandidatesMinHash(self string, sig minhash.Signature) []string {
	set := make(map[string]bool)
	for b := 0; b < idx.bands; b++ {
		key := bandKeyMinHash(sig, b, idx.rows)
		for _, other := range idx.buckets[b][key] {
			if other != self {
				set[other] = true
			}
		}
	}
	return sortedKeys(set)
}

// CandidatesSimHash returns the deduplicated, sorted union of ids sharing
// any band bucket with fp, excluding self.
func (idx *Index) CandidatesSimHash(self string, fp simhash.Fingerprint) []string {
	set := make(map[string]bool)
	for b := 0; b < idx.bands; b++ {
		key := bandKeySimHash(fp, b, idx.rows)
		for _, other := range idx.buckets[b][key] {
			if other != self {
				set[other] = true
			}
		}
	}
	return sortedKeys(set)
}

func bandKeyMinHash(sig minhash.Signature, band, rows int) uint64 {
	start := band * rows
	end := start + rows
	if end > len(sig) {
		end = len(sig)
	}
	h := xxhash.New()
	var buf [8]byte
	for _, v := range sig[start:end] {
		for i := 0; i < 8; i++ {
			buf[i] = byte(v >> (8 * uint(i)))
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}

func bandKeySimHash(fp simhash.Fingerprint, band, rows int) uint64 {
	start := uint(band * rows)
	var mask uint64
	for i := uint(0); i < uint(rows); i++ {
		mask |= 1 << (start + i)
	}
	bits := uint64(fp) & mask
	h := fnv.New64a()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(bits >> (8 * uint(i)))
	}
	h.Write(buf[:])
	return h.Sum64()
}

func removeString(xs []string, v string) []string {
	out := xs[:0]
	for _, x := range xs {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
