package cache

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// HashStrings computes a stable hex digest over an ordered sequence of
// strings, used by callers to build a Key's content-hash from document
// text or an args-hash from a sorted argument record.
func HashStrings(items []string) string {
	h := xxhash.New()
	for _, s := range items {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// HashArgs computes a stable hex digest over a string-keyed argument map
// by sorting keys before hashing, so field order never affects the hash.
func HashArgs(args map[string]string) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	h := xxhash.New()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{'='})
		h.Write([]byte(args[k]))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
