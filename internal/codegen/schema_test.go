package codegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/themeforge/internal/blueprint"
	"github.com/v0xg/themeforge/internal/codegen"
)

func TestSchemaStubMapsEveryKind(t *testing.T) {
	s := blueprint.Section{Type: "showcase", Purpose: "p", Inputs: []blueprint.Input{
		{ID: "title", Kind: blueprint.KindText, Purpose: "Title"},
		{ID: "image", Kind: blueprint.KindImage, Purpose: "Image"},
		{ID: "link", Kind: blueprint.KindURL, Purpose: "Link"},
		{ID: "featured", Kind: blueprint.KindProductReference, Purpose: "Product"},
		{ID: "accent", Kind: blueprint.KindColor, Purpose: "Accent", Default: "#FF0000"},
		{ID: "columns", Kind: blueprint.KindNumber, Purpose: "Columns", Default: -3.0},
		{ID: "title", Kind: blueprint.KindText, Purpose: "Duplicate id"},
	}}

	stub := codegen.SchemaStub("product-showcase-with-a-long-name", s)
	assert.Equal(t, "Product showcase with a l", stub["name"])

	settings := stub["settings"].([]any)
	require.Len(t, settings, 7)

	want := []string{"text", "image_picker", "url", "product", "color", "range", "text"}
	for i, w := range want {
		assert.Equal(t, w, settings[i].(map[string]any)["type"], "setting %d", i)
	}

	number := settings[5].(map[string]any)
	assert.Equal(t, 0, number["min"])
	assert.Equal(t, 100, number["max"])
	assert.Equal(t, 1, number["step"])
	assert.Equal(t, 0, number["default"])

	assert.Equal(t, "#FF0000", settings[4].(map[string]any)["default"])
	assert.Equal(t, "title_", settings[6].(map[string]any)["id"])
}

func TestNewPlanEmptyBlueprint(t *testing.T) {
	plan := codegen.NewPlan(nil, 5)
	assert.Equal(t, codegen.PrimarySection, plan.Primary.Type)
	assert.NotEmpty(t, plan.Primary.Purpose)
	assert.Empty(t, plan.Supporting)
}

func TestNewPlanBoundedPrefix(t *testing.T) {
	var sections []blueprint.Section
	for _, typ := range []string{"hero", "gallery", "gallery", "faq", "footer", "blog", "instagram", "press"} {
		sections = append(sections, blueprint.Section{Type: typ, Purpose: "p"})
	}
	plan := codegen.NewPlan(sections, 5)
	require.Len(t, plan.Supporting, 5)

	var names []string
	for _, p := range plan.Supporting {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"gallery", "gallery-2", "faq", "footer-2", "blog"}, names)
}
