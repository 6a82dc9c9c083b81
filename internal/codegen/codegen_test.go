package codegen_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/v0xg/themeforge/internal/ai"
	"github.com/v0xg/themeforge/internal/ai/aitest"
	"github.com/v0xg/themeforge/internal/assemble"
	"github.com/v0xg/themeforge/internal/blueprint"
	"github.com/v0xg/themeforge/internal/codegen"
	"github.com/v0xg/themeforge/internal/logging"
	"github.com/v0xg/themeforge/internal/settings"
	"github.com/v0xg/themeforge/internal/theme"
	"github.com/v0xg/themeforge/internal/tokens"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const pageJSON = "```json\n{\"sections\":{\"main\":{\"type\":\"main-product\"}},\"order\":[\"main\"]}\n```"

func rules() []aitest.Rule {
	return []aitest.Rule{
		{Match: "Write the main product section", Response: "```liquid\n<div class=\"product\">{% if product %}{{ product.title }}{% endif %}</div>\n```"},
		{Match: "Write the section ", Response: "<section>{{ section.settings.heading }}</section>"},
		{Match: "Write layout/theme.liquid", Response: "<html><head>{{ content_for_header }}</head><body>{% section 'header' %}<main>{{ content_for_layout }}</main>{% section 'footer' %}</body></html>"},
		{Match: "Write sections/header.liquid", Response: "<header>{{ shop.name }}</header>"},
		{Match: "Write sections/footer.liquid", Response: "<footer></footer>\n{% schema %}\n{\"name\":\"Footer\"}\n{% endschema %}"},
		{Match: "Write assets/base.css", Response: "body { margin: 0 }"},
		{Match: "Write templates/", Response: pageJSON},
	}
}

func sampleTokens() *tokens.DesignTokens {
	return tokens.Finalize(tokens.Partial{
		"colors":     map[string]any{"primary": "#112233", "palette": []any{"#112233"}},
		"typography": map[string]any{"fontFamilies": []any{"Inter, sans-serif"}},
	})
}

func newGenerator(p ai.Provider) *codegen.Generator {
	return &codegen.Generator{Provider: p, Log: logging.Nop()}
}

func TestSingleHeroEndToEnd(t *testing.T) {
	sections := []blueprint.Section{{Type: "hero", Purpose: "Introduce the store"}}
	plan := codegen.NewPlan(sections, codegen.DefaultMaxSupporting)
	assert.Equal(t, "hero", plan.Primary.Type)
	assert.Empty(t, plan.Supporting)

	tok := sampleTokens()
	p := aitest.New(rules()...)
	out, err := newGenerator(p).Generate(context.Background(), codegen.Input{Tokens: tok, Plan: plan})
	require.NoError(t, err)

	primary, ok := out.Text(theme.Sections, "main-product.liquid")
	require.True(t, ok)
	body, schema := theme.SplitSchema(primary)
	assert.Contains(t, body, "product.title")
	assert.NotContains(t, body, "```")
	assert.Contains(t, schema, `"name": "Main product"`)

	assert.Equal(t, []string{"footer.liquid", "header.liquid", "main-product.liquid"}, out.Names(theme.Sections))
	assert.Equal(t, []string{"cart.json", "collection.json", "index.json", "page.json", "product.json"}, out.Names(theme.Templates))
	assert.True(t, out.Has(theme.Layout, theme.RootLayout))
	assert.True(t, out.Has(theme.Assets, "base.css"))

	header, _ := out.Text(theme.Sections, "header.liquid")
	_, headerSchema := theme.SplitSchema(header)
	assert.Contains(t, headerSchema, "Header")

	// 1 primary + 0 supporting + 4 architecture + 4 pages
	assert.Len(t, p.Calls(), 9)

	a := &assemble.Assembler{Log: logging.Nop()}
	res := a.Assemble(assemble.Input{Generated: out, Settings: settings.Customize(tok).Structure()})
	assert.True(t, res.Valid, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestSupportingSectionsGetSchemaAndTemplate(t *testing.T) {
	sections := []blueprint.Section{
		{Type: "Header", Purpose: "Navigation"},
		{Type: "product-main", Purpose: "Buy"},
		{Type: "reviews", Purpose: "Social proof", Inputs: []blueprint.Input{
			{ID: "heading", Kind: blueprint.KindText, Purpose: "Heading", Default: "Loved by customers"},
			{Kind: blueprint.KindNumber, Purpose: "Stars shown", Default: 250.0},
		}},
	}
	plan := codegen.NewPlan(sections, 5)
	require.Len(t, plan.Supporting, 2)
	assert.Equal(t, "header-2", plan.Supporting[0].Name)
	assert.Equal(t, "reviews", plan.Supporting[1].Name)

	p := aitest.New(rules()...)
	out, err := newGenerator(p).Product(context.Background(), codegen.Input{Plan: plan})
	require.NoError(t, err)

	reviews, ok := out.Text(theme.Sections, "reviews.liquid")
	require.True(t, ok)
	_, schema := theme.SplitSchema(reviews)
	assert.Contains(t, schema, `"stars_shown"`)
	assert.Contains(t, schema, `"type": "range"`)
	assert.Contains(t, schema, `"default": 100`)
	assert.Contains(t, schema, `"default": "Loved by customers"`)
	assert.NotContains(t, schema, "image_picker")

	tpl, err := theme.ParseTemplate(mustGet(t, out, theme.Templates, "product.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{"main", "header-2", "reviews"}, tpl.Order)

	var supportingPrompt string
	for _, c := range p.Calls() {
		if strings.Contains(c.Prompt, `Write the section "reviews"`) {
			supportingPrompt = c.Prompt
		}
	}
	assert.Contains(t, supportingPrompt, "heading, stars_shown")
	assert.Contains(t, supportingPrompt, "Do not include a {% schema %} block")
	assert.Contains(t, supportingPrompt, "sections/reviews.liquid")
	assert.NotContains(t, supportingPrompt, "%!")
}

func mustGet(t *testing.T, s *theme.Structure, b theme.Bucket, name string) any {
	t.Helper()
	v, ok := s.Get(b, name)
	require.True(t, ok, "%s/%s", b, name)
	return v
}

func TestGenerateIsAllOrNothing(t *testing.T) {
	r := append([]aitest.Rule{{Match: "Write templates/cart.json", Response: "{not valid json"}}, rules()...)
	p := aitest.New(r...)

	out, err := newGenerator(p).Generate(context.Background(), codegen.Input{
		Tokens: sampleTokens(),
		Plan:   codegen.NewPlan(nil, 5),
	})
	assert.Nil(t, out)
	var perr *ai.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, codegen.StagePages+".cart", perr.Stage)
}

func TestArchitectureCallFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	r := append([]aitest.Rule{{Match: "Write assets/base.css", Err: &ai.CallError{Provider: "fake", Err: boom}}}, rules()...)

	out, err := newGenerator(aitest.New(r...)).Architecture(context.Background(), codegen.Input{})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, boom)
}

func TestPagesRejectEmptyDescriptor(t *testing.T) {
	r := append([]aitest.Rule{{Match: "Write templates/page.json", Response: `{"order":[]}`}}, rules()...)
	_, err := newGenerator(aitest.New(r...)).Pages(context.Background(), codegen.Input{Plan: codegen.NewPlan(nil, 5)})
	assert.ErrorContains(t, err, "codegen.pages.page")
}

func TestPagesPromptListsPlannedSections(t *testing.T) {
	plan := codegen.NewPlan([]blueprint.Section{
		{Type: "product", Purpose: "Buy"},
		{Type: "Featured Collection!", Purpose: "Cross sell"},
	}, 5)
	p := aitest.New(rules()...)
	_, err := newGenerator(p).Pages(context.Background(), codegen.Input{Plan: plan})
	require.NoError(t, err)

	calls := p.Calls()
	require.Len(t, calls, 4)
	for _, c := range calls {
		assert.Contains(t, c.Prompt, "header, main-product, featured-collection, footer")
	}
}
