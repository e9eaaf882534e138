// Package permalink maps source URLs to destination-relative paths and back.
package permalink

import (
	"net/url"
	"regexp"
	"strings"
)

var repeatedSlashes = regexp.MustCompile(`//+`)

// Sanitize strips leading slashes and collapses runs of slashes into one.
func Sanitize(p string) string {
	return repeatedSlashes.ReplaceAllString(strings.TrimLeft(p, "/"), "/")
}

// PathFromPermalink returns the lower-cased path of an absolute URL, as it is
// written in the URL, with a trailing slash, sanitized. Percent-encoding is
// neither added nor removed. Unparseable URLs yield "".
//
//	https://example.com/About/      -> about/
//	https://example.com/2016/06/x   -> 2016/06/x/
//	https://example.com/Café/       -> café/
//	https://example.com/caf%C3%A9/  -> caf%c3%a9/
//	https://example.com/            -> ""
func PathFromPermalink(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return Sanitize(strings.ToLower(rawPath(raw, u)) + "/")
}

// rawPath cuts the path component out of raw, which u was parsed from.
func rawPath(raw string, u *url.URL) string {
	s, _, _ := strings.Cut(raw, "#")
	s, _, _ = strings.Cut(s, "?")
	if u.Scheme != "" {
		s = s[len(u.Scheme)+1:]
	}
	if strings.HasPrefix(s, "//") {
		i := strings.IndexByte(s[2:], '/')
		if i < 0 {
			return ""
		}
		s = s[2+i:]
	}
	return s
}

// PermalinkFromPath turns a normalized path back into a site-absolute permalink
// without a trailing slash. The site root yields "", which callers read as
// "no permalink override".
func PermalinkFromPath(p string) string {
	return strings.TrimRight("/"+p, "/")
}

// SplitBase splits a path into its directory and last segment, ignoring a
// trailing slash. "2016/06/photo.jpg/" gives ("2016/06", "photo.jpg").
func SplitBase(p string) (dir, base string) {
	p = strings.TrimRight(p, "/")
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return "", p
	}
	return p[:i], p[i+1:]
}
