// Package urlnorm canonicalizes URLs for equivalence testing and derives
// filesystem-safe slugs from free text, per the URL-normalizer component.
package urlnorm

import (
	"net/url"
	"sort"
	"strings"
)

// Normalized is the result of Normalize: a display-friendly normalized URL
// and a scheme-free canonical key used solely for equivalence testing.
type Normalized struct {
	Normalized   string
	CanonicalKey string
}

// trackingPrefixes are query parameter name prefixes dropped unconditionally.
var trackingPrefixes = []string{"utm_", "mc_"}

// trackingExact are exact query parameter names dropped unconditionally.
var trackingExact = map[string]bool{
	"fbclid": true, "gclid": true, "ref": true, "ref_src": true,
	"igshid": true, "mkt_tok": true, "_ga": true, "_gl": true,
	"msclkid": true, "yclid": true,
}

// Normalize canonicalizes url per the steps in the spec: lowercase
// scheme+host, drop a leading "www.", drop default ports, drop tracking
// query params, sort surviving params, drop the fragment. Malformed URLs
// fall back to the raw string for both fields, deterministically.
func Normalize(raw string) Normalized {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return Normalized{Normalized: raw, CanonicalKey: raw}
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")

	port := u.Port()
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}
	hostport := host
	if port != "" {
		hostport += ":" + port
	}

	query := filterQuery(u.Query())

	path := u.Path
	normalized := scheme + "://" + hostport + path
	if query != "" {
		normalized += "?" + query
	}

	canonicalKey := hostport + path + "?" + query

	return Normalized{Normalized: normalized, CanonicalKey: canonicalKey}
}

// filterQuery drops tracking parameters and returns the surviving params
// sorted lexicographically by name, re-encoded as a query string.
func filterQuery(q url.Values) string {
	keys := make([]string, 0, len(q))
	for k := range q {
		if isTracking(k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		vals := q[k]
		sort.Strings(vals)
		for _, v := range vals {
			parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(v))
		}
	}
	return strings.Join(parts, "&")
}

func isTracking(name string) bool {
	lower := strings.ToLower(name)
	if trackingExact[lower] {
		return true
	}
	for _, p := range trackingPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// Slug converts free text into a filesystem-safe identifier: lowercase,
// non-alphanumeric runs become a single hyphen, and leading/trailing
// hyphens are trimmed. The result consists only of [a-z0-9-].
func Slug(text string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(text) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
