package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/siteimport/internal/frontmatter"
	"git.home.luguber.info/inful/siteimport/internal/record"
)

// Fingerprint identifies the content written for a result. Documents use the
// mdfp front matter + body fingerprint; resources a sha256 of the bytes.
func Fingerprint(r *record.Result) string {
	if r.Kind.IsDocument() {
		header, body, had, _, err := frontmatter.Split(r.Content)
		if err == nil && had {
			return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(header), "\n"), string(body))
		}
		return mdfp.CalculateFingerprintFromParts("", string(r.Content))
	}
	sum := sha256.Sum256(r.Content)
	return "sha256:" + hex.EncodeToString(sum[:])
}
