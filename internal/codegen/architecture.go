package codegen

import (
	"context"

	"github.com/v0xg/themeforge/internal/ai"
	"github.com/v0xg/themeforge/internal/theme"
)

type artifact struct {
	bucket theme.Bucket
	name   string
	prompt string
}

var architecture = []artifact{
	{theme.Layout, theme.RootLayout, layoutPrompt},
	{theme.Sections, theme.SectionFile(HeaderSection), headerPrompt},
	{theme.Sections, theme.SectionFile(FooterSection), footerPrompt},
	{theme.Assets, "base.css", stylesheetPrompt},
}

// Architecture writes the root layout, header, footer and base stylesheet.
// The four requests are independent and all must succeed.
func (g *Generator) Architecture(ctx context.Context, in Input) (*theme.Structure, error) {
	tasks := make([]ai.Task[string], len(architecture))
	for i, a := range architecture {
		tasks[i] = func(ctx context.Context) (string, error) {
			src, err := g.text(ctx, StageArchitecture+"."+a.name, a.prompt, in)
			if err != nil {
				return "", err
			}
			if a.bucket == theme.Sections {
				return ensureSchema(src, theme.SectionName(a.name))
			}
			return src, nil
		}
	}
	sources, err := ai.FanOut(ctx, tasks...)
	if err != nil {
		return nil, err
	}

	out := theme.New()
	for i, a := range architecture {
		out.Put(a.bucket, a.name, sources[i])
	}
	return out, nil
}

// ensureSchema adds a minimal schema to a section that came back without one.
func ensureSchema(src, name string) (string, error) {
	if _, schema := theme.SplitSchema(src); schema != "" {
		return src, nil
	}
	return theme.WithSchema(src, map[string]any{"name": title(name), "settings": []any{}})
}
