// Package sitefs is the destination content tree an import writes into.
package sitefs

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// Store probes and writes files relative to a site source directory.
// Paths always use forward slashes.
type Store interface {
	// Exists reports whether a file is already present at rel.
	Exists(ctx context.Context, rel string) (bool, error)

	// Write creates or replaces the file at rel, creating parent directories.
	Write(ctx context.Context, rel string, data []byte) error
}

// ErrInvalidPath is returned for paths that are absolute or escape the root.
type ErrInvalidPath struct {
	Path string
}

func (e ErrInvalidPath) Error() string {
	return fmt.Sprintf("invalid destination path %q", e.Path)
}

func cleanRel(rel string) (string, error) {
	if rel == "" || path.IsAbs(rel) {
		return "", ErrInvalidPath{Path: rel}
	}
	cleaned := path.Clean(rel)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath{Path: rel}
	}
	return cleaned, nil
}
