// Package wxr reads WordPress eXtended RSS exports.
package wxr

import (
	"context"
	"encoding/xml"
	"log/slog"
	"os"
	"strings"
	"time"

	"git.home.luguber.info/inful/siteimport/internal/foundation/errors"
	"git.home.luguber.info/inful/siteimport/internal/logfields"
	"git.home.luguber.info/inful/siteimport/internal/provider"
	"git.home.luguber.info/inful/siteimport/internal/record"
)

// Name is the registry name of this provider.
const Name = "wxr"

// OptionFile is the option key holding the export path.
const OptionFile = "file"

const postDateLayout = "2006-01-02 15:04:05"

// Statuses that never make it into the site.
var skippedStatuses = map[string]bool{
	"trash":      true,
	"auto-draft": true,
}

// Provider implements provider.Provider for WXR files.
//
// Pages and posts keep the item link as their permalink. Attachments use
// wp:attachment_url, the address of the file itself, and fall back to the
// item link only when it is missing: the link of an attachment is its HTML
// landing page, while post bodies embed the file URL.
type Provider struct {
	file string
	doc  *document
}

// New returns an unconfigured provider.
func New() provider.Provider {
	return &Provider{}
}

// Register adds the provider to reg under Name.
func Register(reg *provider.Registry) error {
	return reg.Register(Name, New)
}

func (p *Provider) SetUp(opts provider.Options) error {
	file := opts.Get(OptionFile)
	if file == "" {
		return errors.ConfigError("wxr provider requires a file option").Build()
	}

	f, err := os.Open(file)
	if err != nil {
		return errors.ProviderError("cannot open export file").
			WithCause(err).
			WithContext("file", file).
			Build()
	}
	defer func() { _ = f.Close() }()

	var doc document
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return errors.ProviderError("cannot parse export file").
			WithCause(err).
			WithContext("file", file).
			Build()
	}

	p.file = file
	p.doc = &doc
	return nil
}

func (p *Provider) Records(ctx context.Context) ([]*record.Record, error) {
	if p.doc == nil {
		return nil, errors.ProviderError("wxr provider used before SetUp").Build()
	}

	records := make([]*record.Record, 0, len(p.doc.Channel.Items))
	for i := range p.doc.Channel.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		it := &p.doc.Channel.Items[i]
		rec, ok := toRecord(it)
		if !ok {
			slog.Debug("Skipping export item",
				slog.String("post_type", it.PostType),
				slog.String("status", it.Status),
				logfields.SourceURL(it.Link))
			continue
		}
		records = append(records, rec)
	}

	slog.Info("Read export",
		logfields.File(p.file),
		slog.Int("items", len(p.doc.Channel.Items)),
		slog.Int("records", len(records)))
	return records, nil
}

func (p *Provider) TearDown() error {
	p.doc = nil
	return nil
}

func toRecord(it *item) (*record.Record, bool) {
	if skippedStatuses[it.Status] {
		return nil, false
	}

	var kind record.Kind
	permalink := strings.TrimSpace(it.Link)
	fetch := false

	switch it.PostType {
	case "page":
		kind = record.KindPage
	case "post":
		kind = record.KindPost
	case "attachment":
		kind = record.KindResource
		if u := strings.TrimSpace(it.AttachmentURL); u != "" {
			permalink = u
		}
		fetch = true
	default:
		return nil, false
	}

	rec := record.New(kind, permalink)
	rec.Title = strings.TrimSpace(it.Title)
	rec.Extension = record.DefaultExtension
	rec.FetchRemote = fetch
	rec.Date = parseDate(it.PostDate)
	if kind.IsDocument() {
		rec.Body = []byte(it.Content)
	}

	categories := []string{}
	tags := []string{}
	for _, c := range it.Categories {
		switch c.Domain {
		case "category":
			categories = append(categories, c.Name)
		case "post_tag":
			tags = append(tags, c.Name)
		}
	}

	attrs := rec.Attrs()
	attrs.Set("author", strings.TrimSpace(it.Creator))
	attrs.Set("excerpt", it.Excerpt)
	attrs.Set("categories", categories)
	attrs.Set("tags", tags)
	return rec, true
}

func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "0000-00-00") {
		return nil
	}
	t, err := time.Parse(postDateLayout, raw)
	if err != nil {
		slog.Warn("Unparseable post date", slog.String("value", raw), logfields.Error(err))
		return nil
	}
	return &t
}

var _ provider.Provider = (*Provider)(nil)
