package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyProvider   = "provider"
	KeyKind       = "kind"
	KeySourceURL  = "source_url"
	KeyPath       = "path"
	KeyPermalink  = "permalink"
	KeyFile       = "file"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyDryRun     = "dry_run"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Provider(name string) slog.Attr  { return slog.String(KeyProvider, name) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func SourceURL(u string) slog.Attr    { return slog.String(KeySourceURL, u) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Permalink(p string) slog.Attr    { return slog.String(KeyPermalink, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func DryRun(v bool) slog.Attr         { return slog.Bool(KeyDryRun, v) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
