package linkreport

import (
	"log/slog"
	"net/url"
	"path"
	"slices"
	"strings"

	"git.home.luguber.info/inful/siteimport/internal/frontmatter"
	"git.home.luguber.info/inful/siteimport/internal/logfields"
	"git.home.luguber.info/inful/siteimport/internal/record"
)

// Finding is a link in an imported document that still targets a source host.
type Finding struct {
	SourcePermalink string
	Path            string
	URL             string
	Tag             string
}

// SourceHosts collects the lower-cased hosts of all source permalinks.
func SourceHosts(results []*record.Result) []string {
	seen := map[string]bool{}
	var hosts []string
	for _, r := range results {
		u, err := url.Parse(r.SourcePermalink)
		if err != nil || u.Host == "" {
			continue
		}
		h := strings.ToLower(u.Host)
		if !seen[h] {
			seen[h] = true
			hosts = append(hosts, h)
		}
	}
	slices.Sort(hosts)
	return hosts
}

// Scan inspects every successful page and post for links to hosts. Bodies of
// .md files are read as Markdown (with embedded HTML), everything else as HTML.
func Scan(results []*record.Result, hosts []string) []Finding {
	if len(hosts) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(hosts))
	for _, h := range hosts {
		wanted[strings.ToLower(h)] = true
	}

	var findings []Finding
	for _, r := range results {
		if r.HasError() || !r.Kind.IsDocument() {
			continue
		}

		_, body, _, _, err := frontmatter.Split(r.Content)
		if err != nil {
			body = r.Content
		}

		seen := map[string]bool{}
		for _, l := range documentLinks(r.RelativePath, body) {
			if seen[l.URL] || !wanted[linkHost(l.URL)] {
				continue
			}
			seen[l.URL] = true
			findings = append(findings, Finding{
				SourcePermalink: r.SourcePermalink,
				Path:            r.RelativePath,
				URL:             l.URL,
				Tag:             l.Tag,
			})
		}
	}
	return findings
}

func documentLinks(relPath string, body []byte) []Link {
	var links []Link
	switch strings.ToLower(path.Ext(relPath)) {
	case ".md", ".markdown":
		links = ExtractMarkdown(body)
	}

	htmlLinks, err := ExtractHTML(body)
	if err != nil {
		slog.Debug("Skipping unparseable HTML body", logfields.Path(relPath), logfields.Error(err))
		return links
	}
	return append(links, htmlLinks...)
}

func linkHost(raw string) string {
	if strings.HasPrefix(raw, "//") {
		raw = "http:" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
