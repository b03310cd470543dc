// Package minhash computes Jaccard-preserving signatures over token
// shingles. Grounded on the AleutianLocal trace-pattern fingerprint's
// k-gram hashing and JaccardSimilarity/EstimatedJaccard shape, using
// cespare/xxhash/v2 as the fast seeded hash function H(seed, token).
package minhash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// DefaultK is the default signature length.
const DefaultK = 128

// Signature is a k-entry MinHash signature.
type Signature []uint64

// Compute builds a k-entry signature over a token shingle set using k
// independent seeded hash functions. Empty input yields a signature of
// all math.MaxUint64, per spec.
func Compute(tokens []string, k int) Signature {
	sig := make(Signature, k)
	for i := range sig {
		sig[i] = math.MaxUint64
	}
	if len(tokens) == 0 {
		return sig
	}
	for seed := 0; seed < k; seed++ {
		var min uint64 = math.MaxUint64
		for _, t := range tokens {
			h := hashSeeded(uint64(seed), t)
			if h < min {
				min = h
			}
		}
		sig[seed] = min
	}
	return sig
}

// hashSeeded combines a seed and token through xxhash, matching the
// pack's fast-hash convention for per-seed hash functions H(seed, token).
func hashSeeded(seed uint64, token string) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	d := xxhash.New()
	d.Write(buf[:])
	d.Write([]byte(token))
	return d.Sum64()
}

// EstimatedJaccard estimates Jaccard similarity as the fraction of
// signature positions in agreement (Hamming agreement over positions).
func EstimatedJaccard(a, b Signature) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	agree := 0
	for i := range a {
		if a[i] == b[i] {
			agree++
		}
	}
	return float64(agree) / float64(len(a))
}

// Shingles builds contiguous n-gram shingles of size n over tokens, the
// typical input to MinHash per spec (as opposed to plain word tokens).
func Shingles(tokens []string, n int) []string {
	if n <= 0 || len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		shingle := tokens[i]
		for j := 1; j < n; j++ {
			shingle += " " + tokens[i+j]
		}
		out = append(out, shingle)
	}
	return out
}
