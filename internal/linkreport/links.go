// Package linkreport finds links that still point at the source site after an
// import.
package linkreport

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// Link is one URL found in a document body.
type Link struct {
	URL string
	// Tag is the HTML element or the Markdown construct the URL came from.
	Tag string
}

// linkAttrs lists the URL-carrying attribute per HTML element.
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"iframe": "src",
	"video":  "src",
	"audio":  "src",
	"source": "src",
}

// ExtractHTML returns the links in an HTML fragment in document order.
func ExtractHTML(body []byte) ([]Link, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if attr, ok := linkAttrs[n.Data]; ok {
				if v := strings.TrimSpace(getAttr(n, attr)); v != "" {
					links = append(links, Link{URL: v, Tag: n.Data})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// ExtractMarkdown returns the links, images, autolinks and reference
// definitions of a Markdown body.
func ExtractMarkdown(body []byte) []Link {
	ctx := parser.NewContext()
	root := goldmark.New().Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	var links []Link
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{URL: string(node.URL(body)), Tag: "autolink"})
		case *gmast.Image:
			links = append(links, Link{URL: string(node.Destination), Tag: "image"})
		case *gmast.Link:
			links = append(links, Link{URL: string(node.Destination), Tag: "link"})
		}
		return gmast.WalkContinue, nil
	})

	for _, ref := range ctx.References() {
		links = append(links, Link{URL: string(ref.Destination()), Tag: "reference"})
	}
	return links
}
