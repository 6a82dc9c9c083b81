package blueprint

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/themeforge/internal/ai"
	"github.com/v0xg/themeforge/internal/ai/aitest"
	"github.com/v0xg/themeforge/internal/capture"
	"github.com/v0xg/themeforge/internal/logging"
)

func newGenerator(p ai.Provider) *Generator {
	return &Generator{Provider: p, Log: logging.Nop()}
}

func TestGenerateDropsIncompleteEntries(t *testing.T) {
	answer := "```json\n" + `[
		{"type": "hero", "purpose": "Introduce the brand", "visualHierarchy": [{"elementId": "h1", "importance": 14}, {"elementId": "cta", "importance": 0}],
		 "inputs": [{"id": "heading", "kind": "TEXT", "purpose": "Headline"}, {"id": "video", "kind": "video", "purpose": "Background"}]},
		{"type": "", "purpose": "No type"},
		{"type": "faq"},
		{"type": 7, "purpose": "Wrong type"},
		{"type": "newsletter", "purpose": "Collect emails"}
	]` + "\n```"
	p := aitest.New(aitest.Rule{Match: "Segment the rendered page", Response: answer})

	sections, err := newGenerator(p).Generate(context.Background(), "<html></html>", nil)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	hero := sections[0]
	assert.Equal(t, "hero", hero.Type)
	assert.Equal(t, 10, hero.Hierarchy[0].Importance)
	assert.Equal(t, 1, hero.Hierarchy[1].Importance)
	require.Len(t, hero.Inputs, 1)
	assert.Equal(t, KindText, hero.Inputs[0].Kind)

	assert.Equal(t, "newsletter", sections[1].Type)
}

func TestGenerateEmptyArrayIsValid(t *testing.T) {
	p := aitest.New(aitest.Rule{Match: "Segment", Response: "[]"})

	sections, err := newGenerator(p).Generate(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestGenerateNonArrayIsParseError(t *testing.T) {
	p := aitest.New(aitest.Rule{Match: "Segment", Response: `{"type": "hero"}`})

	_, err := newGenerator(p).Generate(context.Background(), "", nil)
	var perr *ai.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, Stage, perr.Stage)
}

func TestGenerateBoundsHTMLAndListsSections(t *testing.T) {
	p := aitest.New(aitest.Rule{Match: "Segment", Response: "[]"})
	g := newGenerator(p)
	g.HTMLLimit = 100

	html := strings.Repeat("a", 100) + "TAIL-MARKER"
	dom := []capture.DOMSection{{Tag: "section", Selector: "#hero", Text: "Big sale", Box: capture.Box{Width: 1440, Height: 600}}}

	_, err := g.Generate(context.Background(), html, dom)
	require.NoError(t, err)

	calls := p.Calls()
	require.Len(t, calls, 1)
	assert.NotContains(t, calls[0].Prompt, "TAIL-MARKER")
	assert.Contains(t, calls[0].Prompt, "#hero")
	assert.Contains(t, calls[0].Prompt, `"Big sale"`)
}

func TestSelectPrimary(t *testing.T) {
	assert.Equal(t, -1, SelectPrimary(nil))

	sections := []Section{
		{Type: "header"},
		{Type: "hero"},
		{Type: "product-main"},
	}
	assert.Equal(t, 2, SelectPrimary(sections))
	assert.Equal(t, 1, SelectPrimary(sections[:2]))

	ranked := []Section{
		{Type: "banner", Hierarchy: []HierarchyEntry{{Importance: 3}}},
		{Type: "grid", Hierarchy: []HierarchyEntry{{Importance: 9}}},
	}
	assert.Equal(t, 1, SelectPrimary(ranked))
}

func TestSupportingBoundedPrefix(t *testing.T) {
	var sections []Section
	for _, typ := range []string{"a", "b", "product", "c", "d", "e", "f", "g"} {
		sections = append(sections, Section{Type: typ, Purpose: "x"})
	}

	got := Supporting(sections, 2, 5)
	var types []string
	for _, s := range got {
		types = append(types, s.Type)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, types)

	assert.Empty(t, Supporting(sections[2:3], 0, 5))
}
