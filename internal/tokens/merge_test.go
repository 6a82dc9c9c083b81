package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeVisionOverridesStylesheet(t *testing.T) {
	vision := Partial{
		"colors":  map[string]any{"primary": "#111111", "palette": []any{"#111111", "#fff"}},
		"spacing": map[string]any{"md": "16px"},
	}
	stylesheet := Partial{
		"colors":       map[string]any{"primary": "#222222", "text": "#333333", "palette": []any{"#FFFFFF", "#444"}},
		"spacing":      map[string]any{"md": "20px", "lg": "40px"},
		"borderRadius": map[string]any{"sm": "2px"},
	}

	merged := Merge(vision, stylesheet)

	colors := merged["colors"].(map[string]any)
	assert.Equal(t, "#111111", colors["primary"], "vision wins")
	assert.Equal(t, "#333333", colors["text"], "stylesheet fills absent key")
	assert.Equal(t, []any{"#111111", "#FFFFFF", "#444444"}, colors["palette"])

	spacing := merged["spacing"].(map[string]any)
	assert.Equal(t, "16px", spacing["md"])
	assert.Equal(t, "40px", spacing["lg"])

	assert.Equal(t, map[string]any{"sm": "2px"}, merged["borderRadius"])
}

func TestMergeEveryVisionKeySurvives(t *testing.T) {
	vision := Partial{"shadows": "flat", "buttons": []any{map[string]any{"name": "v"}}}
	stylesheet := Partial{"shadows": map[string]any{"sm": "x"}, "buttons": []any{}, "typography": map[string]any{"fontFamilies": []any{"Inter"}}}

	merged := Merge(vision, stylesheet)
	assert.Equal(t, "flat", merged["shadows"])
	assert.Equal(t, vision["buttons"], merged["buttons"])
	assert.Equal(t, stylesheet["typography"], merged["typography"])
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	vision := Partial{"colors": map[string]any{"primary": "#111111"}}
	stylesheet := Partial{"colors": map[string]any{"text": "#333333"}}
	Merge(vision, stylesheet)
	assert.NotContains(t, vision["colors"].(map[string]any), "text")
	assert.NotContains(t, stylesheet["colors"].(map[string]any), "primary")
}

func TestFinalizeEmpty(t *testing.T) {
	tok := Finalize(Partial{})
	require.NotNil(t, tok)
	assert.Empty(t, tok.Colors.Roles)
	assert.NotNil(t, tok.Colors.Palette)
	assert.NotNil(t, tok.Spacing)
	assert.NotNil(t, tok.Typography.Families)
	assert.Equal(t, "", tok.PrimaryFamily())
	assert.Equal(t, "#FFFFFF", tok.Role("background", "#FFFFFF"))
}

func TestFinalizeTypography(t *testing.T) {
	tok := Finalize(Partial{"typography": map[string]any{
		"fontFamilies": []any{"Inter, sans-serif", "Playfair Display"},
		"headingSizes": map[string]any{"h1": "48px"},
		"weights":      []any{400.0, "700", "bold"},
	}})
	assert.Equal(t, "Inter, sans-serif", tok.PrimaryFamily())
	assert.Equal(t, "Playfair Display", tok.HeadingFamily())
	assert.Equal(t, "48px", tok.Typography.HeadingSizes["h1"])
	assert.Equal(t, []int{400, 700}, tok.Typography.Weights)
}
