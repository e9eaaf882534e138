package record

// Result is the outcome of importing one record.
type Result struct {
	Kind            Kind
	SourcePermalink string
	// Permalink is the new site-absolute permalink; empty for error results.
	Permalink    string
	RelativePath string
	Content      []byte
	// Collision is set when another file already owns RelativePath.
	Collision bool
	Err       error
}

// Failed builds an error result for the record.
func Failed(r *Record, err error) *Result {
	return &Result{Kind: r.Kind, SourcePermalink: r.Permalink, Err: err}
}

func (r *Result) HasError() bool { return r.Err != nil }

// Message returns the error text, or "" for successful results.
func (r *Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
