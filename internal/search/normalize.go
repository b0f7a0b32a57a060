// Package search prepares user-supplied keyword queries for matching against
// job and service listings. Queries arrive in arbitrary casing and spacing;
// normalization keeps the SQL LIKE patterns built from them predictable.
package search

import (
	"strings"

	"golang.org/x/text/cases"
)

// folder performs Unicode case folding, which handles casings that
// strings.ToLower gets wrong (e.g. İ, ß). Casers are not safe for concurrent
// use, so each call takes a fresh one; construction is cheap.
func folder() cases.Caser { return cases.Fold() }

// NormalizeQuery canonicalizes a raw search query: case-folded, whitespace
// collapsed to single spaces, and LIKE metacharacters escaped so user input
// can never widen a pattern. Returns "" when nothing searchable remains.
func NormalizeQuery(raw string) string {
	folded := folder().String(strings.TrimSpace(raw))
	if folded == "" {
		return ""
	}

	words := strings.Fields(folded)
	joined := strings.Join(words, " ")

	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(joined)
}

// LikePattern wraps a normalized query in wildcards for a contains-style
// LIKE match. Empty queries produce an empty pattern, which callers treat as
// "no search filter".
func LikePattern(normalized string) string {
	if normalized == "" {
		return ""
	}
	return "%" + normalized + "%"
}
