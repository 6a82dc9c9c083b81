package codegen

import (
	"context"
	"fmt"
	"strings"

	"github.com/v0xg/themeforge/internal/ai"
	"github.com/v0xg/themeforge/internal/blueprint"
	"github.com/v0xg/themeforge/internal/theme"
)

// Product writes the primary product section, the supporting sections and
// the product template. Every section gets a schema derived from its
// inputs.
func (g *Generator) Product(ctx context.Context, in Input) (*theme.Structure, error) {
	planned := append([]Planned{{Name: PrimarySection, Section: in.Plan.Primary}}, in.Plan.Supporting...)

	tasks := make([]ai.Task[string], len(planned))
	for i, p := range planned {
		tasks[i] = func(ctx context.Context) (string, error) {
			return g.section(ctx, in, p, i == 0)
		}
	}
	sources, err := ai.FanOut(ctx, tasks...)
	if err != nil {
		return nil, err
	}

	out := theme.New()
	for i, p := range planned {
		out.Put(theme.Sections, theme.SectionFile(p.Name), sources[i])
	}
	out.Put(theme.Templates, theme.TemplateFile("product"), productTemplate(in.Plan))
	return out, nil
}

func (g *Generator) section(ctx context.Context, in Input, p Planned, primary bool) (string, error) {
	stub := SchemaStub(p.Name, p.Section)

	var prompt string
	if primary {
		prompt = primaryPrompt
	} else {
		prompt = fmt.Sprintf(supportingPrompt, p.Name, p.Name, strings.Join(settingIDs(stub), ", "))
	}
	prompt = ai.Join(prompt, describe(p.Section), assetBlock(in.Manifest, p.Section.Type))

	src, err := g.text(ctx, StageProduct+"."+p.Name, prompt, in)
	if err != nil {
		return "", err
	}
	return theme.WithSchema(src, stub)
}

// describe renders the blueprint entry for a prompt.
func describe(s blueprint.Section) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Section blueprint:\ntype: %s\npurpose: %s\n", s.Type, s.Purpose)
	for _, h := range s.Hierarchy {
		fmt.Fprintf(&sb, "element %s importance %d\n", h.ElementID, h.Importance)
	}
	for _, p := range s.Patterns {
		fmt.Fprintf(&sb, "repeats %s x%d fields %s\n", p.Name, p.Count, strings.Join(p.Fields, ","))
	}
	for _, c := range s.Conditions {
		fmt.Fprintf(&sb, "when %s show %s\n", c.When, c.Show)
	}
	return sb.String()
}

func settingIDs(stub map[string]any) []string {
	settings, _ := stub["settings"].([]any)
	ids := make([]string, 0, len(settings))
	for _, s := range settings {
		if m, ok := s.(map[string]any); ok {
			ids = append(ids, fmt.Sprint(m["id"]))
		}
	}
	if len(ids) == 0 {
		return []string{"(none)"}
	}
	return ids
}

// productTemplate is built mechanically: the primary section followed by
// the supporting sections in blueprint order.
func productTemplate(p Plan) theme.Template {
	tpl := theme.Template{
		Sections: map[string]theme.TemplateSection{
			"main": {Type: PrimarySection, Settings: map[string]any{}},
		},
		Order: []string{"main"},
	}
	for _, s := range p.Supporting {
		tpl.Sections[s.Name] = theme.TemplateSection{Type: s.Name, Settings: map[string]any{}}
		tpl.Order = append(tpl.Order, s.Name)
	}
	return tpl
}
