package codegen

import (
	"context"
	"fmt"
	"strings"

	"github.com/v0xg/themeforge/internal/ai"
	"github.com/v0xg/themeforge/internal/theme"
)

// Pages writes the secondary page descriptors. Each must decode as a
// template that places at least one section.
func (g *Generator) Pages(ctx context.Context, in Input) (*theme.Structure, error) {
	available := strings.Join(in.Plan.SectionNames(), ", ")

	tasks := make([]ai.Task[theme.Template], len(SecondaryPages))
	for i, page := range SecondaryPages {
		tasks[i] = func(ctx context.Context) (theme.Template, error) {
			return g.page(ctx, in, page, available)
		}
	}
	templates, err := ai.FanOut(ctx, tasks...)
	if err != nil {
		return nil, err
	}

	out := theme.New()
	for i, page := range SecondaryPages {
		out.Put(theme.Templates, theme.TemplateFile(page), templates[i])
	}
	return out, nil
}

func (g *Generator) page(ctx context.Context, in Input, page, available string) (theme.Template, error) {
	purpose := pagePurposes[page]
	stage := StagePages + "." + page

	var tpl theme.Template
	err := ai.GenerateJSON(ctx, g.Provider, stage, ai.Request{
		Model:       g.Model,
		System:      ai.Platform,
		Prompt:      ai.Join(fmt.Sprintf(pagePrompt, page, purpose, available, purpose), ai.JSONOnly),
		Temperature: g.Temperature,
		MaxTokens:   g.MaxTokens,
	}, &tpl)
	if err != nil {
		return theme.Template{}, err
	}
	if err := tpl.Validate(); err != nil {
		return theme.Template{}, fmt.Errorf("%s: %w", stage, err)
	}
	tpl.Normalize()
	return tpl, nil
}
