package record

import "slices"

// Well-known attribute keys.
const (
	KeyPermalink       = "permalink"
	KeyLayout          = "layout"
	KeyTitle           = "title"
	KeyNoHTMLExtension = "no_html_extension"
)

// Attributes is an insertion-ordered key/value set. The order is the order the
// keys are serialized in.
type Attributes struct {
	keys   []string
	values map[string]any
}

// NewAttributes returns an empty set.
func NewAttributes() *Attributes {
	return &Attributes{values: map[string]any{}}
}

// Set adds or replaces a value. Replacing keeps the original position.
func (a *Attributes) Set(key string, value any) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

func (a *Attributes) Get(key string) (any, bool) {
	v, ok := a.values[key]
	return v, ok
}

// GetString returns the value for key when it is a string.
func (a *Attributes) GetString(key string) (string, bool) {
	v, ok := a.values[key].(string)
	return v, ok
}

func (a *Attributes) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

func (a *Attributes) Delete(key string) {
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	a.keys = slices.DeleteFunc(a.keys, func(k string) bool { return k == key })
}

func (a *Attributes) Len() int { return len(a.keys) }

// Keys returns the keys in insertion order.
func (a *Attributes) Keys() []string {
	return slices.Clone(a.keys)
}

// Each calls fn for every entry in insertion order.
func (a *Attributes) Each(fn func(key string, value any)) {
	for _, k := range a.keys {
		fn(k, a.values[k])
	}
}

// Clone returns a shallow copy; values are shared.
func (a *Attributes) Clone() *Attributes {
	c := &Attributes{
		keys:   slices.Clone(a.keys),
		values: make(map[string]any, len(a.values)),
	}
	for k, v := range a.values {
		c.values[k] = v
	}
	return c
}

func (a *Attributes) Permalink() (string, bool) { return a.GetString(KeyPermalink) }
func (a *Attributes) SetPermalink(p string)     { a.Set(KeyPermalink, p) }
func (a *Attributes) Layout() (string, bool)    { return a.GetString(KeyLayout) }
func (a *Attributes) SetLayout(l string)        { a.Set(KeyLayout, l) }
func (a *Attributes) SetTitle(t string)         { a.Set(KeyTitle, t) }

// SetNoHTMLExtension tells the site generator to serve the document without
// an .html suffix.
func (a *Attributes) SetNoHTMLExtension(v bool) { a.Set(KeyNoHTMLExtension, v) }
