// Package rewrite replaces source-site URLs with their new local permalinks.
package rewrite

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/siteimport/internal/record"
)

// Pair maps one source permalink to its new permalink.
type Pair struct {
	Source string
	Target string
}

// Table is an immutable set of substitutions ordered longest source first.
// Sources of equal length keep the order they were added in.
type Table struct {
	pairs    []Pair
	replacer *strings.Replacer
}

// FromResults builds a table from results in order. Error results and results
// without a source or new permalink are skipped; the first result for a
// source wins.
func FromResults(results []*record.Result) Table {
	seen := make(map[string]struct{}, len(results))
	pairs := make([]Pair, 0, len(results))
	for _, r := range results {
		if r == nil || r.HasError() || r.SourcePermalink == "" || r.Permalink == "" {
			continue
		}
		if _, ok := seen[r.SourcePermalink]; ok {
			continue
		}
		seen[r.SourcePermalink] = struct{}{}
		pairs = append(pairs, Pair{Source: r.SourcePermalink, Target: r.Permalink})
	}
	return NewTable(pairs)
}

// NewTable builds a table from explicit pairs. Later duplicates and pairs with
// an empty side are dropped.
func NewTable(pairs []Pair) Table {
	kept := make([]Pair, 0, len(pairs))
	seen := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		if p.Source == "" || p.Target == "" {
			continue
		}
		if _, ok := seen[p.Source]; ok {
			continue
		}
		seen[p.Source] = struct{}{}
		kept = append(kept, p)
	}
	slices.SortStableFunc(kept, func(a, b Pair) int {
		return len(b.Source) - len(a.Source)
	})

	// strings.Replacer tries old strings in argument order at each position and
	// never rescans replaced text.
	args := make([]string, 0, 2*len(kept))
	for _, p := range kept {
		args = append(args, p.Source, p.Target)
	}
	return Table{pairs: kept, replacer: strings.NewReplacer(args...)}
}

// Len returns the number of substitutions.
func (t Table) Len() int { return len(t.pairs) }

// Pairs returns a copy of the substitutions in application order.
func (t Table) Pairs() []Pair { return slices.Clone(t.pairs) }

// Apply replaces every occurrence of every source in one left-to-right pass.
func (t Table) Apply(content []byte) []byte {
	if len(t.pairs) == 0 || len(content) == 0 {
		return content
	}
	return []byte(t.replacer.Replace(string(content)))
}

// ApplyTo rewrites the content of every successful page and post result in
// place and returns how many were changed.
func (t Table) ApplyTo(results []*record.Result) int {
	changed := 0
	for _, r := range results {
		if r == nil || r.HasError() || !r.Kind.IsDocument() {
			continue
		}
		out := t.Apply(r.Content)
		if string(out) != string(r.Content) {
			changed++
		}
		r.Content = out
	}
	return changed
}
