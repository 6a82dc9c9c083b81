package theme

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Template is a JSON page-composition descriptor: the sections a page shows
// and their order.
type Template struct {
	Sections map[string]TemplateSection `json:"sections"`
	Order    []string                   `json:"order"`
}

// TemplateSection places one section file on a page.
type TemplateSection struct {
	Type       string         `json:"type"`
	Settings   map[string]any `json:"settings,omitempty"`
	Blocks     map[string]any `json:"blocks,omitempty"`
	BlockOrder []string       `json:"block_order,omitempty"`
	Disabled   bool           `json:"disabled,omitempty"`
}

// ParseTemplate decodes a templates bucket entry, which may be source text
// or an already decoded value.
func ParseTemplate(v any) (*Template, error) {
	var data []byte
	switch t := v.(type) {
	case string:
		data = []byte(t)
	case []byte:
		data = t
	case json.RawMessage:
		data = t
	default:
		var err error
		if data, err = json.Marshal(v); err != nil {
			return nil, err
		}
	}
	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, err
	}
	if tpl.Sections == nil {
		tpl.Sections = map[string]TemplateSection{}
	}
	return &tpl, nil
}

// Normalize fills a missing order with the section ids sorted, and drops
// order entries that name no section.
func (t *Template) Normalize() {
	if len(t.Order) == 0 {
		for id := range t.Sections {
			t.Order = append(t.Order, id)
		}
		sort.Strings(t.Order)
		return
	}
	kept := t.Order[:0]
	for _, id := range t.Order {
		if _, ok := t.Sections[id]; ok {
			kept = append(kept, id)
		}
	}
	t.Order = kept
}

// References returns the section types used by the template, in order.
func (t *Template) References() []string {
	var out []string
	for _, id := range t.Order {
		if s, ok := t.Sections[id]; ok && !s.Disabled {
			out = append(out, s.Type)
		}
	}
	return out
}

// Validate reports whether every placed section names a type.
func (t *Template) Validate() error {
	if len(t.Sections) == 0 {
		return fmt.Errorf("template has no sections")
	}
	for id, s := range t.Sections {
		if s.Type == "" {
			return fmt.Errorf("template section %q has no type", id)
		}
	}
	return nil
}
