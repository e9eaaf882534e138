// Package record defines the items a provider hands to the importer and the
// per-item results the importer reports back.
package record

import (
	"fmt"
	"time"
)

// Kind classifies a record.
type Kind int

const (
	KindPage Kind = iota
	KindPost
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindPost:
		return "post"
	case KindResource:
		return "resource"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsDocument reports whether records of this kind are rendered with front
// matter and take part in URL rewriting.
func (k Kind) IsDocument() bool {
	return k == KindPage || k == KindPost
}

// DefaultExtension is used when a record does not carry one.
const DefaultExtension = "html"

// Record is a single item from an export.
type Record struct {
	Kind Kind
	// Permalink is the absolute URL the item had on the source site.
	Permalink  string
	Title      string
	Body       []byte
	Attributes *Attributes
	Date       *time.Time
	Extension  string
	// FetchRemote marks resources whose bytes must be downloaded from Permalink.
	FetchRemote bool
}

// New creates a record with an empty attribute set.
func New(kind Kind, permalink string) *Record {
	return &Record{
		Kind:       kind,
		Permalink:  permalink,
		Attributes: NewAttributes(),
	}
}

// Ext returns the record extension, defaulting to DefaultExtension.
func (r *Record) Ext() string {
	if r.Extension == "" {
		return DefaultExtension
	}
	return r.Extension
}

// Attrs returns the attribute set, creating it on first use.
func (r *Record) Attrs() *Attributes {
	if r.Attributes == nil {
		r.Attributes = NewAttributes()
	}
	return r.Attributes
}
