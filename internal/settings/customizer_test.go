package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/themeforge/internal/theme"
	"github.com/v0xg/themeforge/internal/tokens"
)

func sampleTokens() *tokens.DesignTokens {
	return tokens.Finalize(tokens.Partial{
		"colors": map[string]any{"primary": "#ff0000", "background": "#fff", "palette": []any{"#ff0000", "#ffffff"}},
		"typography": map[string]any{
			"fontFamilies": []any{"Open Sans, sans-serif", "Playfair Display"},
			"bodySizes":    map[string]any{"base": "1.125rem"},
			"headingSizes": map[string]any{"h1": "48px"},
		},
		"spacing":      map[string]any{"xl": "63px"},
		"borderRadius": map[string]any{"md": "7px"},
		"buttons":      []any{map[string]any{"name": "Primary CTA", "background": "#000", "text": "#fff", "radius": "999px"}},
	})
}

func TestMatchFont(t *testing.T) {
	tests := map[string]string{
		"Inter, sans-serif":     "inter_n4",
		"ROBOTO":                "roboto_n4",
		"'Playfair Display'":    "playfair_display_n4",
		"Open Sans":             "open_sans_n4",
		"Comic Sans MS":         DefaultFont,
		"":                      DefaultFont,
		"helvetica neue, arial": "helvetica_n4",
	}
	for in, want := range tests {
		assert.Equal(t, want, MatchFont(in), in)
	}
}

func TestCurrentSettings(t *testing.T) {
	current := Current(sampleTokens())

	assert.Equal(t, "#FF0000", current["colors_primary"])
	assert.Equal(t, "#FFFFFF", current["colors_background"])
	assert.Equal(t, "#121212", current["colors_text"], "missing role falls back")
	assert.Equal(t, "open_sans_n4", current["type_body_font"])
	assert.Equal(t, "playfair_display_n4", current["type_heading_font"])
	assert.Equal(t, 18, current["type_base_size"])
	assert.Equal(t, 64, current["spacing_sections"])
	assert.Equal(t, 40, current["buttons_radius"], "clamped to range max")
}

func TestCustomizeIsIdempotent(t *testing.T) {
	tok := sampleTokens()
	assert.Equal(t, Customize(tok), Customize(tok))
}

func TestStylesheet(t *testing.T) {
	css := Stylesheet(sampleTokens())

	assert.Contains(t, css, "--color-primary: #FF0000;")
	assert.Contains(t, css, "--palette-2: #FFFFFF;")
	assert.Contains(t, css, "--font-body: Open Sans, sans-serif;")
	assert.Contains(t, css, "--font-heading: Playfair Display;")
	assert.Contains(t, css, "--font-size-h1: 48px;")
	assert.Contains(t, css, "--space-xl: 63px;")
	assert.Contains(t, css, ".button--primary-cta {")
	assert.Contains(t, css, "border-radius: 999px;")
}

func TestStructurePaths(t *testing.T) {
	s := Customize(sampleTokens()).Structure()

	assert.True(t, s.Has(theme.Config, theme.SettingsSchema))
	assert.True(t, s.Has(theme.Config, theme.SettingsData))
	assert.True(t, s.Has(theme.Assets, TokensStylesheet))

	data, ok := s.Get(theme.Config, theme.SettingsData)
	require.True(t, ok)
	assert.Contains(t, data.(map[string]any), "current")

	schema, ok := s.Get(theme.Config, theme.SettingsSchema)
	require.True(t, ok)
	first := schema.([]any)[0].(map[string]any)
	assert.Equal(t, "theme_info", first["name"])
}

func TestSnapAndPx(t *testing.T) {
	assert.Equal(t, 16, px("16px", 0))
	assert.Equal(t, 24, px("1.5rem", 0))
	assert.Equal(t, 9, px("junk", 9))
	assert.Equal(t, 64, snap(63, 0, 100, 4))
	assert.Equal(t, 12, snap(2, 12, 24, 1))
}
