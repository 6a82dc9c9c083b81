// Package settings maps design tokens onto the theme's native settings
// objects and a custom-properties stylesheet. Everything here is pure.
package settings

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/v0xg/themeforge/internal/theme"
	"github.com/v0xg/themeforge/internal/tokens"
)

// TokensStylesheet is the asset file holding the custom properties.
const TokensStylesheet = "theme-tokens.css"

// colorSettings maps setting ids to token roles and fallbacks.
var colorSettings = []struct {
	id, role, label, fallback string
}{
	{"colors_primary", "primary", "Primary", "#121212"},
	{"colors_secondary", "secondary", "Secondary", "#334FB4"},
	{"colors_accent", "accent", "Accent", "#C8102E"},
	{"colors_background", "background", "Background", "#FFFFFF"},
	{"colors_text", "text", "Text", "#121212"},
	{"colors_border", "border", "Border", "#E5E5E5"},
}

// Output is the result of Customize.
type Output struct {
	Schema []any
	Data   map[string]any
	CSS    string
}

// Customize derives settings schema, settings data and the tokens stylesheet.
// It is deterministic: equal tokens give equal output.
func Customize(t *tokens.DesignTokens) Output {
	current := Current(t)
	return Output{
		Schema: schema(current),
		Data: map[string]any{
			"current": current,
			"presets": map[string]any{"Default": copyMap(current)},
		},
		CSS: Stylesheet(t),
	}
}

// Structure places the output at its fixed paths.
func (o Output) Structure() *theme.Structure {
	s := theme.New()
	s.Put(theme.Config, theme.SettingsSchema, o.Schema)
	s.Put(theme.Config, theme.SettingsData, o.Data)
	s.Put(theme.Assets, TokensStylesheet, o.CSS)
	return s
}

// Current returns the setting id -> value map for t.
func Current(t *tokens.DesignTokens) map[string]any {
	current := map[string]any{}
	for _, c := range colorSettings {
		current[c.id] = t.Role(c.role, c.fallback)
	}

	current["type_body_font"] = MatchFont(t.PrimaryFamily())
	current["type_heading_font"] = MatchFont(t.HeadingFamily())
	current["type_base_size"] = snap(px(bodySize(t), 16), 12, 24, 1)
	current["page_width"] = 1200
	current["spacing_sections"] = snap(px(lookup(t, "spacing", "xl", "lg"), 48), 0, 100, 4)
	current["buttons_radius"] = snap(px(buttonRadius(t), 4), 0, 40, 2)
	return current
}

func schema(current map[string]any) []any {
	colors := make([]any, 0, len(colorSettings))
	for _, c := range colorSettings {
		colors = append(colors, map[string]any{
			"type": "color", "id": c.id, "label": c.label, "default": current[c.id],
		})
	}

	return []any{
		map[string]any{
			"name":                    "theme_info",
			"theme_name":              "Themeforge",
			"theme_version":           "1.0.0",
			"theme_author":            "Themeforge",
			"theme_documentation_url": "https://github.com/v0xg/themeforge",
			"theme_support_url":       "https://github.com/v0xg/themeforge/issues",
		},
		map[string]any{"name": "Colors", "settings": colors},
		map[string]any{"name": "Typography", "settings": []any{
			map[string]any{"type": "font_picker", "id": "type_body_font", "label": "Body font", "default": current["type_body_font"]},
			map[string]any{"type": "font_picker", "id": "type_heading_font", "label": "Heading font", "default": current["type_heading_font"]},
			rangeSetting("type_base_size", "Base font size", 12, 24, 1, current),
		}},
		map[string]any{"name": "Layout", "settings": []any{
			rangeSetting("page_width", "Page width", 1000, 1600, 100, current),
			rangeSetting("spacing_sections", "Space between sections", 0, 100, 4, current),
			rangeSetting("buttons_radius", "Button corner radius", 0, 40, 2, current),
		}},
	}
}

func rangeSetting(id, label string, lo, hi, step int, current map[string]any) map[string]any {
	return map[string]any{
		"type": "range", "id": id, "label": label,
		"min": lo, "max": hi, "step": step, "unit": "px",
		"default": current[id],
	}
}

// Stylesheet renders the custom-properties stylesheet for t.
func Stylesheet(t *tokens.DesignTokens) string {
	var sb strings.Builder
	sb.WriteString("/* Generated from design tokens. */\n:root {\n")

	for _, role := range sortedKeys(t.Colors.Roles) {
		fmt.Fprintf(&sb, "  --color-%s: %s;\n", cssName(role), t.Colors.Roles[role])
	}
	for i, c := range t.Colors.Palette {
		fmt.Fprintf(&sb, "  --palette-%d: %s;\n", i+1, c)
	}
	if f := t.PrimaryFamily(); f != "" {
		fmt.Fprintf(&sb, "  --font-body: %s;\n", f)
	}
	if f := t.HeadingFamily(); f != "" {
		fmt.Fprintf(&sb, "  --font-heading: %s;\n", f)
	}
	writeScale(&sb, "font-size", t.Typography.HeadingSizes)
	writeScale(&sb, "font-size", t.Typography.BodySizes)
	writeScale(&sb, "space", t.Spacing)
	writeScale(&sb, "radius", t.Radii)
	writeScale(&sb, "shadow", t.Shadows)
	sb.WriteString("}\n")

	for _, b := range t.Buttons {
		fmt.Fprintf(&sb, "\n.button--%s {\n  background-color: %s;\n  color: %s;\n", cssName(b.Name), b.Background, b.Text)
		if b.Border != "" {
			fmt.Fprintf(&sb, "  border: 1px solid %s;\n", b.Border)
		}
		if b.Radius != "" {
			fmt.Fprintf(&sb, "  border-radius: %s;\n", b.Radius)
		}
		if b.Padding != "" {
			fmt.Fprintf(&sb, "  padding: %s;\n", b.Padding)
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

func writeScale(sb *strings.Builder, prefix string, scale map[string]string) {
	for _, k := range sortedKeys(scale) {
		fmt.Fprintf(sb, "  --%s-%s: %s;\n", prefix, cssName(k), scale[k])
	}
}

func cssName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			sb.WriteRune(r)
		case r == '_' || r == ' ':
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

func bodySize(t *tokens.DesignTokens) string {
	for _, k := range []string{"base", "body", "md", "regular"} {
		if v, ok := t.Typography.BodySizes[k]; ok {
			return v
		}
	}
	return ""
}

func lookup(t *tokens.DesignTokens, group string, keys ...string) string {
	var scale map[string]string
	switch group {
	case "spacing":
		scale = t.Spacing
	case "radius":
		scale = t.Radii
	}
	for _, k := range keys {
		if v, ok := scale[k]; ok {
			return v
		}
	}
	return ""
}

func buttonRadius(t *tokens.DesignTokens) string {
	for _, b := range t.Buttons {
		if b.Radius != "" {
			return b.Radius
		}
	}
	return lookup(t, "radius", "md", "sm")
}

// px parses "16px", "1rem" or "16" into pixels, falling back to def.
func px(v string, def int) int {
	v = strings.TrimSpace(strings.ToLower(v))
	mult := 1.0
	switch {
	case strings.HasSuffix(v, "px"):
		v = strings.TrimSuffix(v, "px")
	case strings.HasSuffix(v, "rem"):
		v, mult = strings.TrimSuffix(v, "rem"), 16
	case strings.HasSuffix(v, "em"):
		v, mult = strings.TrimSuffix(v, "em"), 16
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return int(math.Round(f * mult))
}

// snap clamps v into [lo,hi] and rounds it onto the step grid from lo.
func snap(v, lo, hi, step int) int {
	v = max(lo, min(hi, v))
	return lo + int(math.Round(float64(v-lo)/float64(step)))*step
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
