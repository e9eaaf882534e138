// Package render turns a record into a front-matter document.
package render

import (
	"fmt"

	"git.home.luguber.info/inful/siteimport/internal/frontmatter"
	"git.home.luguber.info/inful/siteimport/internal/record"
)

// Layouts holds the layout names injected per record kind. Empty means none.
type Layouts struct {
	Page string
	Post string
}

func (l Layouts) forKind(k record.Kind) string {
	switch k {
	case record.KindPage:
		return l.Page
	case record.KindPost:
		return l.Post
	default:
		return ""
	}
}

// Document renders the record's attributes as YAML front matter followed by
// its body. The record is not modified.
func Document(r *record.Record, layouts Layouts) ([]byte, error) {
	attrs := r.Attrs().Clone()

	if layout := layouts.forKind(r.Kind); layout != "" && !attrs.Has(record.KeyLayout) {
		attrs.SetLayout(layout)
	}
	if r.Title != "" {
		attrs.SetTitle(r.Title)
	}

	fields := make([]frontmatter.Field, 0, attrs.Len())
	attrs.Each(func(k string, v any) {
		fields = append(fields, frontmatter.Field{Key: k, Value: v})
	})

	header, err := frontmatter.SerializeYAML(fields, frontmatter.Style{})
	if err != nil {
		return nil, fmt.Errorf("serialize front matter: %w", err)
	}
	return frontmatter.Join(header, r.Body, frontmatter.Style{}), nil
}
