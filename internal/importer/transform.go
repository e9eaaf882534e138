package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/siteimport/internal/foundation/errors"
	"git.home.luguber.info/inful/siteimport/internal/permalink"
	"git.home.luguber.info/inful/siteimport/internal/record"
	"git.home.luguber.info/inful/siteimport/internal/render"
)

const (
	contentDir = "content"
	postsDir   = "posts"
	dateLayout = "2006-01-02"
)

// transformer turns single records into results. It holds no per-run state
// besides configuration, so it is safe to share across workers.
type transformer struct {
	im      *Importer
	opts    Options
	layouts render.Layouts
	assets  string
}

func newTransformer(im *Importer, opts Options) *transformer {
	return &transformer{
		im:      im,
		opts:    opts,
		layouts: render.Layouts{Page: opts.PageLayout, Post: opts.PostLayout},
		assets:  permalink.Sanitize(contentDir + "/" + opts.AssetsDir),
	}
}

// transform returns the result for rec, or nil for resources that are skipped.
// Failures, including panics, become error results.
func (t *transformer) transform(ctx context.Context, rec *record.Record) (res *record.Result) {
	defer func() {
		if p := recover(); p != nil {
			res = record.Failed(rec, errors.InternalError(fmt.Sprintf("panic while importing record: %v", p)).
				WithContext("source_permalink", rec.Permalink).
				Build())
		}
	}()

	if err := ctx.Err(); err != nil {
		return record.Failed(rec, err)
	}

	var err error
	switch rec.Kind {
	case record.KindPost:
		res, err = t.post(ctx, rec)
	case record.KindResource:
		if !t.opts.FetchResources {
			return nil
		}
		res, err = t.resource(ctx, rec)
	default:
		res, err = t.page(ctx, rec)
	}
	if err != nil {
		return record.Failed(rec, err)
	}
	return res
}

func (t *transformer) page(ctx context.Context, rec *record.Record) (*record.Result, error) {
	urlPath := permalink.PathFromPermalink(rec.Permalink)
	dir, base := permalink.SplitBase(urlPath)

	if base == "" {
		base = "index." + rec.Ext()
	}
	if !strings.Contains(base, ".") {
		base += "." + rec.Ext()
	}

	newPermalink := t.applyPermalink(rec, urlPath)
	return t.document(ctx, rec, permalink.Sanitize(contentDir+"/"+dir+"/"+base), newPermalink)
}

func (t *transformer) post(ctx context.Context, rec *record.Record) (*record.Result, error) {
	if rec.Date == nil {
		return nil, errors.RecordValidationError(fmt.Sprintf("date in post item %q is required", rec.Permalink)).
			WithContext("field", "date").
			Build()
	}
	if strings.TrimSpace(rec.Title) == "" {
		return nil, errors.RecordValidationError(fmt.Sprintf("title in post item %q is required", rec.Permalink)).
			WithContext("field", "title").
			Build()
	}

	slug := permalink.Slug(rec.Title)
	if slug == "" {
		return nil, errors.RecordValidationError(fmt.Sprintf("title in post item %q yields an empty file name", rec.Permalink)).
			WithContext("field", "title").
			Build()
	}

	newPermalink := t.applyPermalink(rec, permalink.PathFromPermalink(rec.Permalink))
	filename := fmt.Sprintf("%s-%s.%s", rec.Date.Format(dateLayout), slug, rec.Ext())
	return t.document(ctx, rec, permalink.Sanitize(contentDir+"/"+postsDir+"/"+filename), newPermalink)
}

// applyPermalink sets the permalink override and the extensionless flag on
// the record and returns the new permalink ("" for the site root).
func (t *transformer) applyPermalink(rec *record.Record, urlPath string) string {
	newPermalink := permalink.PermalinkFromPath(urlPath)
	attrs := rec.Attrs()
	if newPermalink != "" {
		attrs.SetPermalink(newPermalink)
	}
	attrs.SetNoHTMLExtension(true)
	return newPermalink
}

func (t *transformer) document(ctx context.Context, rec *record.Record, relPath, newPermalink string) (*record.Result, error) {
	exists, err := t.im.store.Exists(ctx, relPath)
	if err != nil {
		return nil, errors.FileSystemError("failed to probe destination").
			WithCause(err).
			WithContext("path", relPath).
			Build()
	}

	content, err := render.Document(rec, t.layouts)
	if err != nil {
		return nil, errors.InternalError("failed to render document").
			WithCause(err).
			WithContext("source_permalink", rec.Permalink).
			Build()
	}

	return &record.Result{
		Kind:            rec.Kind,
		SourcePermalink: rec.Permalink,
		Permalink:       newPermalink,
		RelativePath:    relPath,
		Content:         content,
		Collision:       exists,
	}, nil
}

func (t *transformer) resource(ctx context.Context, rec *record.Record) (*record.Result, error) {
	dir, base := permalink.SplitBase(permalink.PathFromPermalink(rec.Permalink))
	if base == "" {
		return nil, errors.RecordValidationError(fmt.Sprintf("resource %q has no file name", rec.Permalink)).Build()
	}
	relPath := permalink.Sanitize(t.assets + "/" + dir + "/" + base)

	exists, err := t.im.store.Exists(ctx, relPath)
	if err != nil {
		return nil, errors.FileSystemError("failed to probe destination").
			WithCause(err).
			WithContext("path", relPath).
			Build()
	}

	body := rec.Body
	if rec.FetchRemote {
		start := time.Now()
		body, err = t.im.fetcher.Fetch(ctx, rec.Permalink)
		t.im.recorder.ObserveFetch(time.Since(start), err == nil)
		if err != nil {
			return nil, err
		}
	}

	return &record.Result{
		Kind:            rec.Kind,
		SourcePermalink: rec.Permalink,
		Permalink:       strings.TrimPrefix(relPath, contentDir),
		RelativePath:    relPath,
		Content:         body,
		Collision:       exists,
	}, nil
}
