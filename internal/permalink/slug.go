package permalink

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugSeparator = regexp.MustCompile(`[\s_|+-]+`)

// Slug builds a filename-safe slug from a title: accents are folded, letters
// and digits of any script are kept, everything is lower-cased, and
// separators collapse into single hyphens. Other punctuation is dropped.
//
//	"Spress import plugin" -> "spress-import-plugin"
//	"Crème Brûlée!"        -> "creme-brulee"
//	"Привет мир"           -> "привет-мир"
func Slug(title string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, title)
	if err != nil {
		folded = title
	}

	s := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r), r == '_', r == '|', r == '+', r == '-':
			return r
		default:
			return -1
		}
	}, folded)
	s = slugSeparator.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
