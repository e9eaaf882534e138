package wxr

import (
	"encoding/xml"
	"strings"
)

const (
	nsContent = "http://purl.org/rss/1.0/modules/content/"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	// WordPress bumps the export version in the namespace URL (1.0, 1.1, 1.2).
	nsWPPrefix = "http://wordpress.org/export/"
)

type category struct {
	Domain string
	Name   string
}

// item is one <item> of a WXR channel.
type item struct {
	Title         string
	Link          string
	Creator       string
	Content       string
	Excerpt       string
	PostDate      string
	PostType      string
	Status        string
	AttachmentURL string
	Categories    []category
}

func isWP(space string) bool {
	return strings.HasPrefix(space, nsWPPrefix) && !strings.HasSuffix(space, "/excerpt/")
}

func isExcerpt(space string) bool {
	return strings.HasPrefix(space, nsWPPrefix) && strings.HasSuffix(space, "/excerpt/")
}

// UnmarshalXML reads the child elements it knows and skips the rest. It
// matches WordPress namespaces by prefix so every export version decodes.
func (it *item) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.EndElement:
			return nil
		case xml.StartElement:
			if err := it.decodeChild(d, t); err != nil {
				return err
			}
		}
	}
}

func (it *item) decodeChild(d *xml.Decoder, el xml.StartElement) error {
	var target *string
	space, local := el.Name.Space, el.Name.Local

	switch {
	case space == "" && local == "title":
		target = &it.Title
	case space == "" && local == "link":
		target = &it.Link
	case space == "" && local == "category":
		var text string
		if err := d.DecodeElement(&text, &el); err != nil {
			return err
		}
		c := category{Name: strings.TrimSpace(text)}
		for _, a := range el.Attr {
			if a.Name.Local == "domain" {
				c.Domain = a.Value
			}
		}
		it.Categories = append(it.Categories, c)
		return nil
	case space == nsDC && local == "creator":
		target = &it.Creator
	case space == nsContent && local == "encoded":
		target = &it.Content
	case isExcerpt(space) && local == "encoded":
		target = &it.Excerpt
	case isWP(space) && local == "post_date":
		target = &it.PostDate
	case isWP(space) && local == "post_type":
		target = &it.PostType
	case isWP(space) && local == "status":
		target = &it.Status
	case isWP(space) && local == "attachment_url":
		target = &it.AttachmentURL
	default:
		return d.Skip()
	}

	return d.DecodeElement(target, &el)
}

type channel struct {
	Items []item `xml:"item"`
}

type document struct {
	XMLName xml.Name `xml:"rss"`
	Channel channel  `xml:"channel"`
}
