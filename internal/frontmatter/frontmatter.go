// Package frontmatter reads and writes the YAML header of imported documents.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Style captures the newline shape of a document.
type Style struct {
	Newline string
}

// ErrMissingClosingDelimiter indicates the document opened a front matter block
// without closing it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Split separates the `---` delimited header from the body.
//
// If the document does not start with a delimiter, had is false and body is
// the full input.
func Split(content []byte) (header []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)

	delim := []byte("---" + style.Newline)
	if !bytes.HasPrefix(content, delim) {
		return nil, content, false, style, nil
	}

	start := len(delim)
	if bytes.HasPrefix(content[start:], delim) {
		return []byte{}, content[start+len(delim):], true, style, nil
	}

	closing := []byte(style.Newline + "---" + style.Newline)
	idx := bytes.Index(content[start:], closing)
	if idx < 0 {
		return nil, nil, false, style, ErrMissingClosingDelimiter
	}

	end := start + idx + len(style.Newline)
	return content[start:end], content[start+idx+len(closing):], true, style, nil
}

// Join emits `---`, the header, `---` and the body. The header is expected to
// end with a newline, as SerializeYAML output does.
func Join(header []byte, body []byte, style Style) []byte {
	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}
	delim := "---" + nl

	out := make([]byte, 0, 2*len(delim)+len(header)+len(body))
	out = append(out, delim...)
	out = append(out, header...)
	out = append(out, delim...)
	out = append(out, body...)
	return out
}

// ParseYAML parses a raw header (without delimiters) into a map.
func ParseYAML(header []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(header) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(header, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectStyle(content []byte) Style {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return Style{Newline: "\r\n"}
	}
	return Style{Newline: "\n"}
}
