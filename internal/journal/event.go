// Package journal keeps an append-only record of import runs.
package journal

import "time"

// Event types.
const (
	TypeRunStarted     = "RunStarted"
	TypeRecordImported = "RecordImported"
	TypeRecordFailed   = "RecordFailed"
	TypeRunCompleted   = "RunCompleted"
)

// Event is one stored journal entry. Payload is JSON.
type Event struct {
	ID        int64             `json:"id"`
	RunID     string            `json:"run_id"`
	Type      string            `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   []byte            `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// RunStarted is emitted before the provider is asked for records.
type RunStarted struct {
	Provider       string `json:"provider"`
	Source         string `json:"source,omitempty"`
	Dest           string `json:"dest"`
	DryRun         bool   `json:"dry_run"`
	FetchResources bool   `json:"fetch_resources"`
	ReplaceURLs    bool   `json:"replace_urls"`
}

// RecordImported is emitted for every successful result.
type RecordImported struct {
	Kind            string `json:"kind"`
	SourcePermalink string `json:"source_permalink"`
	Permalink       string `json:"permalink"`
	Path            string `json:"path"`
	Collision       bool   `json:"collision,omitempty"`
	Fingerprint     string `json:"fingerprint"`
}

// RecordFailed is emitted for every error result.
type RecordFailed struct {
	Kind            string `json:"kind"`
	SourcePermalink string `json:"source_permalink"`
	Error           string `json:"error"`
}

// RunCompleted closes a run.
type RunCompleted struct {
	Total      int    `json:"total"`
	Imported   int    `json:"imported"`
	Failed     int    `json:"failed"`
	Collisions int    `json:"collisions"`
	DurationMS int64  `json:"duration_ms"`
	Outcome    string `json:"outcome"`
	Error      string `json:"error,omitempty"`
}
