// Package tokens derives a normalized design-token set from vision and
// stylesheet analysis of a captured page.
package tokens

// DesignTokens is the single source of truth for generated styling. It is
// built once per session by Finalize and treated as read-only afterwards.
type DesignTokens struct {
	Colors     Colors            `json:"colors"`
	Typography Typography        `json:"typography"`
	Spacing    map[string]string `json:"spacing"`
	Radii      map[string]string `json:"borderRadius"`
	Shadows    map[string]string `json:"shadows"`
	Buttons    []ButtonStyle     `json:"buttons"`
}

// Colors maps semantic roles (primary, background, text, ...) to hex values
// and keeps the deduplicated palette.
type Colors struct {
	Roles   map[string]string `json:"roles"`
	Palette []string          `json:"palette"`
}

type Typography struct {
	Families     []string          `json:"fontFamilies"`
	HeadingSizes map[string]string `json:"headingSizes"`
	BodySizes    map[string]string `json:"bodySizes"`
	Weights      []int             `json:"weights"`
}

type ButtonStyle struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Border     string `json:"border,omitempty"`
	Radius     string `json:"radius,omitempty"`
	Padding    string `json:"padding,omitempty"`
}

// Role returns the color for role, or fallback when the role is unknown.
func (t *DesignTokens) Role(role, fallback string) string {
	if t == nil {
		return fallback
	}
	if c, ok := t.Colors.Roles[role]; ok {
		return c
	}
	return fallback
}

// PrimaryFamily returns the first declared font family or "".
func (t *DesignTokens) PrimaryFamily() string {
	if t == nil || len(t.Typography.Families) == 0 {
		return ""
	}
	return t.Typography.Families[0]
}

// HeadingFamily returns the second declared family when present, else the first.
func (t *DesignTokens) HeadingFamily() string {
	if t == nil {
		return ""
	}
	if len(t.Typography.Families) > 1 {
		return t.Typography.Families[1]
	}
	return t.PrimaryFamily()
}
