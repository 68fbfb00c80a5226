// Package options maintains the candidate value lists for each filter
// dimension and answers normalized substring queries against them.
package options

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"leadpanel/pkg/model"
)

// Index holds the full candidate list per dimension alongside a
// pre-normalized shadow list, so a keystroke only pays a linear scan,
// not a re-normalization of tens of thousands of strings.
type Index struct {
	candidates map[model.Dimension][]string
	normalized map[model.Dimension][]string
}

// NewIndex creates an empty candidate index.
func NewIndex() *Index {
	return &Index{
		candidates: make(map[model.Dimension][]string),
		normalized: make(map[model.Dimension][]string),
	}
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases s and strips diacritics, so "São Paulo" matches
// the query "sao".
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Refresh replaces the candidate list for a dimension. Called after the
// initial options load and again after a successful bulk ingestion,
// which may introduce values the server did not know before.
func (ix *Index) Refresh(dim model.Dimension, values []string) {
	cands := make([]string, len(values))
	normed := make([]string, len(values))
	for i, v := range values {
		cands[i] = v
		normed[i] = Normalize(v)
	}
	ix.candidates[dim] = cands
	ix.normalized[dim] = normed
}

// Candidates returns the full candidate list in server order.
func (ix *Index) Candidates(dim model.Dimension) []string {
	vals := ix.candidates[dim]
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Len returns the candidate count for a dimension.
func (ix *Index) Len(dim model.Dimension) int {
	return len(ix.candidates[dim])
}

// Filter returns the ordered subsequence of candidates whose normalized
// form contains the normalized query as a substring. An empty query
// returns the full list in original order. Filter(Filter(q), q) equals
// Filter(q).
func (ix *Index) Filter(dim model.Dimension, query string) []string {
	query = Normalize(strings.TrimSpace(query))
	if query == "" {
		return ix.Candidates(dim)
	}
	cands := ix.candidates[dim]
	normed := ix.normalized[dim]
	var out []string
	for i, n := range normed {
		if strings.Contains(n, query) {
			out = append(out, cands[i])
		}
	}
	return out
}
