// Package theme holds the artifact tree every generation stage writes into.
package theme

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Bucket names one of the seven top-level directories of a theme.
type Bucket string

const (
	Layout    Bucket = "layout"
	Sections  Bucket = "sections"
	Templates Bucket = "templates"
	Snippets  Bucket = "snippets"
	Assets    Bucket = "assets"
	Config    Bucket = "config"
	Locales   Bucket = "locales"
)

// Buckets lists every bucket in archive order.
var Buckets = []Bucket{Layout, Sections, Templates, Snippets, Assets, Config, Locales}

// Well-known file names.
const (
	RootLayout     = "theme.liquid"
	SettingsSchema = "settings_schema.json"
	SettingsData   = "settings_data.json"
	DefaultLocale  = "en.default.json"
)

// Structure is a generated theme. Each bucket maps a file name to either a
// string (source text) or a JSON-compatible value (map, slice).
type Structure struct {
	Layout    map[string]any `json:"layout"`
	Sections  map[string]any `json:"sections"`
	Templates map[string]any `json:"templates"`
	Snippets  map[string]any `json:"snippets"`
	Assets    map[string]any `json:"assets"`
	Config    map[string]any `json:"config"`
	Locales   map[string]any `json:"locales"`
}

// New returns a Structure with every bucket allocated.
func New() *Structure {
	return &Structure{
		Layout:    map[string]any{},
		Sections:  map[string]any{},
		Templates: map[string]any{},
		Snippets:  map[string]any{},
		Assets:    map[string]any{},
		Config:    map[string]any{},
		Locales:   map[string]any{},
	}
}

// Bucket returns the map for b, allocating it when nil.
func (s *Structure) Bucket(b Bucket) map[string]any {
	ptr := s.bucketPtr(b)
	if ptr == nil {
		return nil
	}
	if *ptr == nil {
		*ptr = map[string]any{}
	}
	return *ptr
}

func (s *Structure) bucketPtr(b Bucket) *map[string]any {
	switch b {
	case Layout:
		return &s.Layout
	case Sections:
		return &s.Sections
	case Templates:
		return &s.Templates
	case Snippets:
		return &s.Snippets
	case Assets:
		return &s.Assets
	case Config:
		return &s.Config
	case Locales:
		return &s.Locales
	}
	return nil
}

// Put stores a file, replacing any previous value.
func (s *Structure) Put(b Bucket, name string, content any) {
	s.Bucket(b)[name] = content
}

// Get returns a file and whether it exists.
func (s *Structure) Get(b Bucket, name string) (any, bool) {
	v, ok := s.Bucket(b)[name]
	return v, ok
}

// Has reports whether a file exists.
func (s *Structure) Has(b Bucket, name string) bool {
	_, ok := s.Get(b, name)
	return ok
}

// Text returns a file as text: strings are returned as is, other values are
// JSON encoded with two-space indentation.
func (s *Structure) Text(b Bucket, name string) (string, bool) {
	v, ok := s.Get(b, name)
	if !ok {
		return "", false
	}
	text, err := Encode(v)
	if err != nil {
		return "", false
	}
	return text, true
}

// Names returns the sorted file names of a bucket.
func (s *Structure) Names(b Bucket) []string {
	m := s.Bucket(b)
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the total number of files.
func (s *Structure) Count() int {
	n := 0
	for _, b := range Buckets {
		n += len(s.Bucket(b))
	}
	return n
}

// Merge copies every file of other into s. A file that already exists in s
// is an error: stages own disjoint parts of the tree. s is left untouched
// when an error is returned.
func (s *Structure) Merge(other *Structure) error {
	if other == nil {
		return nil
	}
	for _, b := range Buckets {
		for name := range other.Bucket(b) {
			if s.Has(b, name) {
				return fmt.Errorf("%s/%s written by two stages", b, name)
			}
		}
	}
	for _, b := range Buckets {
		for name, v := range other.Bucket(b) {
			s.Put(b, name, v)
		}
	}
	return nil
}

// Clone returns a shallow copy with fresh bucket maps.
func (s *Structure) Clone() *Structure {
	out := New()
	for _, b := range Buckets {
		for name, v := range s.Bucket(b) {
			out.Put(b, name, v)
		}
	}
	return out
}

// Encode renders a file value as text.
func Encode(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	case json.RawMessage:
		return string(t), nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SectionName returns the section identifier used by templates for a section
// file name ("hero.liquid" -> "hero").
func SectionName(file string) string {
	return strings.TrimSuffix(file, ".liquid")
}

// SectionFile is the inverse of SectionName.
func SectionFile(name string) string {
	if strings.HasSuffix(name, ".liquid") {
		return name
	}
	return name + ".liquid"
}

// TemplateFile returns the template file name for a page type ("product" -> "product.json").
func TemplateFile(pageType string) string {
	return pageType + ".json"
}
