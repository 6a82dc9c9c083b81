package codegen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/v0xg/themeforge/internal/ai"
	"github.com/v0xg/themeforge/internal/assets"
	"github.com/v0xg/themeforge/internal/logging"
	"github.com/v0xg/themeforge/internal/theme"
	"github.com/v0xg/themeforge/internal/tokens"
)

// Stage names used in errors and logs.
const (
	StageProduct      = "codegen.product"
	StageArchitecture = "codegen.architecture"
	StagePages        = "codegen.pages"
)

// Input is what every generator role reads. It is shared read-only across
// the fan-out.
type Input struct {
	Tokens   *tokens.DesignTokens
	Plan     Plan
	Manifest *assets.Manifest
}

// Generator runs the three generator roles against one provider.
type Generator struct {
	Provider    ai.Provider
	Model       string
	Temperature float64
	MaxTokens   int
	Log         *logging.Logger
}

// Generate runs product, architecture and pages concurrently. Either every
// role succeeds and the merged structure is returned, or nothing is.
func (g *Generator) Generate(ctx context.Context, in Input) (*theme.Structure, error) {
	parts, err := ai.FanOut(ctx,
		func(ctx context.Context) (*theme.Structure, error) { return g.Product(ctx, in) },
		func(ctx context.Context) (*theme.Structure, error) { return g.Architecture(ctx, in) },
		func(ctx context.Context) (*theme.Structure, error) { return g.Pages(ctx, in) },
	)
	if err != nil {
		return nil, err
	}

	out := theme.New()
	for _, part := range parts {
		if err := out.Merge(part); err != nil {
			return nil, err
		}
	}
	g.Log.Info("code generation complete", "files", out.Count(), "supporting_sections", len(in.Plan.Supporting))
	return out, nil
}

func (g *Generator) text(ctx context.Context, stage string, prompt string, in Input) (string, error) {
	return ai.GenerateText(ctx, g.Provider, stage, ai.Request{
		Model:       g.Model,
		System:      ai.Platform,
		Prompt:      ai.Join(prompt, tokenBlock(in.Tokens), ai.LiquidOnly),
		Temperature: g.Temperature,
		MaxTokens:   g.MaxTokens,
	})
}

func tokenBlock(t *tokens.DesignTokens) string {
	if t == nil {
		return ""
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return ""
	}
	return "Design tokens:\n" + string(data)
}

func assetBlock(m *assets.Manifest, section string) string {
	list := m.ForSection(section)
	if len(list) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Use these images as src values, exactly as written:\n")
	for _, a := range list {
		fmt.Fprintf(&sb, "- %s (%s, %s): %s\n", assets.Ref(a.ID), a.Type, a.AspectRatio, a.Prompt)
	}
	return sb.String()
}
