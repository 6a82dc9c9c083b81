package tokens

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#fff", "#FFFFFF"},
		{"#1a2B3c", "#1A2B3C"},
		{"  #abc  ", "#AABBCC"},
		{"rgb(0,0,0)", "#000000"},
		{"rgb(255, 128, 0)", "#FF8000"},
		{"rgba(12.6, 300, -4, 0.5)", "#0DFF00"},
		{"RGB(1 2 3)", "#010203"},
		{"not-a-color", "#000000"},
		{"#abcd", "#000000"},
		{"rgb(1,2)", "#000000"},
		{"", "#000000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeColor(tt.in))
		})
	}
}

func TestDedupePalette(t *testing.T) {
	assert.Equal(t, []string{"#FFFFFF"}, DedupePalette([]string{"#FFF", "#fff", "#FFFFFF"}))
	assert.Equal(t, []string{"#000000", "#112233"}, DedupePalette([]string{"junk", "#112233", "rgb(0,0,0)"}))
}

func TestRGB(t *testing.T) {
	r, g, b := RGB("#FF8000")
	assert.Equal(t, []uint8{255, 128, 0}, []uint8{r, g, b})
}

var hexRe = regexp.MustCompile(`^#[0-9A-F]{6}$`)

func TestFinalizeColorsAlwaysNormalized(t *testing.T) {
	p := Partial{
		"colors": map[string]any{
			"primary":    "rgb(10, 20, 30)",
			"background": "#fff",
			"text":       42.0,
			"accent":     "hotpink",
			"palette":    []any{"#eee", "#EEEEEE", "bad", "rgba(0,0,0,1)"},
		},
		"buttons": []any{
			map[string]any{"background": "#123", "text": "white", "border": "rgb(1,1,1)"},
		},
	}

	tok := Finalize(p)
	for role, c := range tok.Colors.Roles {
		assert.Regexp(t, hexRe, c, role)
	}
	for _, c := range tok.Colors.Palette {
		assert.Regexp(t, hexRe, c)
	}
	assert.Equal(t, "#0A141E", tok.Colors.Roles["primary"])
	assert.Equal(t, "#000000", tok.Colors.Roles["text"])
	assert.Equal(t, "#000000", tok.Colors.Roles["accent"])
	assert.Equal(t, []string{"#EEEEEE", "#000000"}, tok.Colors.Palette)

	assert.Len(t, tok.Buttons, 1)
	assert.Equal(t, "button-1", tok.Buttons[0].Name)
	assert.Equal(t, "#112233", tok.Buttons[0].Background)
	assert.Equal(t, "#000000", tok.Buttons[0].Text)
	assert.Equal(t, "#010101", tok.Buttons[0].Border)
}
