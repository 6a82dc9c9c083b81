// Package assets generates imagery for a session and records it in a
// manifest the generators and assembler reference by URL.
package assets

import (
	"regexp"
	"sort"
)

// Type is the semantic role of a generated asset.
type Type string

const (
	TypeHero       Type = "hero"
	TypeBanner     Type = "banner"
	TypeProduct    Type = "product"
	TypeLifestyle  Type = "lifestyle"
	TypeBackground Type = "background"
)

// GeneratedAsset is one generated binary asset. Data is only held until the
// asset is uploaded; the theme references URL.
type GeneratedAsset struct {
	ID          string `json:"id"`
	Type        Type   `json:"type"`
	URL         string `json:"url,omitempty"`
	Data        []byte `json:"-"`
	MIME        string `json:"mime,omitempty"`
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Section     string `json:"section,omitempty"`
}

// Manifest lists the assets generated during one session.
type Manifest struct {
	SessionID string           `json:"sessionId"`
	Assets    []GeneratedAsset `json:"assets"`
}

// NewManifest returns an empty manifest for a session.
func NewManifest(sessionID string) *Manifest {
	return &Manifest{SessionID: sessionID, Assets: []GeneratedAsset{}}
}

// Len is nil-safe.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Assets)
}

// URLs maps asset id to hosted URL for assets that have one.
func (m *Manifest) URLs() map[string]string {
	out := map[string]string{}
	if m == nil {
		return out
	}
	for _, a := range m.Assets {
		if a.URL != "" {
			out[a.ID] = a.URL
		}
	}
	return out
}

// ForSection returns the assets generated for a blueprint section type.
func (m *Manifest) ForSection(section string) []GeneratedAsset {
	if m == nil {
		return nil
	}
	var out []GeneratedAsset
	for _, a := range m.Assets {
		if a.Section == section {
			out = append(out, a)
		}
	}
	return out
}

// RefScheme prefixes asset references inside generated sources.
const RefScheme = "asset://"

var refPattern = regexp.MustCompile(`asset://([A-Za-z0-9_-]+)`)

// Ref returns the placeholder generated sources use for an asset.
func Ref(id string) string { return RefScheme + id }

// ResolveRefs replaces every asset://<id> in src with its hosted URL and
// returns the ids that could not be resolved, sorted and unique.
func ResolveRefs(src string, urls map[string]string) (string, []string) {
	missing := map[string]bool{}
	out := refPattern.ReplaceAllStringFunc(src, func(ref string) string {
		id := ref[len(RefScheme):]
		if url, ok := urls[id]; ok {
			return url
		}
		missing[id] = true
		return ref
	})
	ids := make([]string, 0, len(missing))
	for id := range missing {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return out, ids
}
