// Package record defines the exchange unit every core operation consumes
// and produces: a free-form key/value object plus helpers for the
// additive-column discipline described in the data model (no key is ever
// mutated; operations only append new, underscore-prefixed keys).
package record

import "sort"

// Record is a single JSON-object-shaped input or output row. Values are
// whatever encoding/json would have decoded them into (string, float64,
// bool, []any, map[string]any, or nil).
type Record map[string]any

// Batch is an ordered sequence of records. Order is significant: several
// operations (dedup primary selection, sampling, organize) are defined in
// terms of "original index" within a Batch.
type Batch []Record

// Clone returns a shallow copy of r so callers can add keys without
// mutating the input. Values themselves are not deep-copied; the core
// never mutates a value in place, only assigns new top-level keys.
func (r Record) Clone() Record {
	out := make(Record, len(r)+4)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// With returns a clone of r with the given key set, preserving every
// existing key verbatim. Used by every operation that appends a column.
func (r Record) With(key string, value any) Record {
	out := r.Clone()
	out[key] = value
	return out
}

// Text extracts the string value of field from r. Returns ("", false) if
// the field is absent, nil, or not a string — callers apply the
// field-missing policy (skip row, or fail-fast for classify when every
// row is empty).
func (r Record) Text(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// StringField extracts a string value without requiring non-empty, for
// fields used as grouping keys (e.g. stratified sampling, url field).
func (r Record) StringField(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Texts extracts the text field from every record in b, reporting which
// original indices had usable text. Rows without usable text are
// dropped from the returned slice but their original index is recorded
// in parallel, per each operation's field-missing policy.
func Texts(b Batch, field string) (texts []string, indices []int) {
	texts = make([]string, 0, len(b))
	indices = make([]int, 0, len(b))
	for i, r := range b {
		if s, ok := r.Text(field); ok {
			texts = append(texts, s)
			indices = append(indices, i)
		}
	}
	return texts, indices
}

// SortedKeys returns the keys of r in lexicographic order, useful when a
// caller needs a stable iteration order over a record's fields (e.g. the
// analyze operation's per-field summary).
func SortedKeys(r Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
