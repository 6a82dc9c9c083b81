package main

import (
	"context"
	"fmt"

	"github.com/v0xg/themeforge/internal/ai"
	"github.com/v0xg/themeforge/internal/assemble"
	"github.com/v0xg/themeforge/internal/assets"
	"github.com/v0xg/themeforge/internal/blueprint"
	"github.com/v0xg/themeforge/internal/capture"
	"github.com/v0xg/themeforge/internal/codegen"
	"github.com/v0xg/themeforge/internal/compliance"
	"github.com/v0xg/themeforge/internal/config"
	"github.com/v0xg/themeforge/internal/logging"
	"github.com/v0xg/themeforge/internal/pipeline"
	"github.com/v0xg/themeforge/internal/storage"
	"github.com/v0xg/themeforge/internal/tokens"
)

// apiKey returns the configured key for the selected provider.
func apiKey(c config.AIConfig) string {
	switch c.Provider {
	case "claude", "anthropic":
		return c.AnthropicKey
	case "openai", "gpt":
		return c.OpenAIKey
	case "gemini", "google":
		return c.GeminiKey
	}
	return ""
}

func captureOptions(c config.CaptureConfig) capture.Options {
	return capture.Options{
		Desktop:            capture.Viewport{Name: "desktop", Width: c.DesktopWidth, Height: c.DesktopHeight},
		Mobile:             capture.Viewport{Name: "mobile", Width: c.MobileWidth, Height: c.MobileHeight, Mobile: true},
		Timeout:            c.Timeout,
		SelectorTimeout:    c.SelectorTimeout,
		HydrationSelectors: c.HydrationWaitFor,
	}
}

// buildPipeline constructs every stage service once. The driver is owned by
// the caller.
func buildPipeline(ctx context.Context, cfg *config.Config, driver capture.Driver, log *logging.Logger) (*pipeline.Pipeline, error) {
	provider, err := ai.NewProvider(ctx, cfg.AI.Provider, ai.Options{
		APIKey:    apiKey(cfg.AI),
		Model:     cfg.AI.Model,
		MaxTokens: cfg.AI.MaxTokens,
		Timeout:   cfg.AI.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("AI provider init failed: %w", err)
	}

	visionModel := cfg.AI.VisionModel
	if visionModel == "" {
		visionModel = cfg.AI.Model
	}

	p := &pipeline.Pipeline{
		Capture: &capture.Collector{Driver: driver, Opts: captureOptions(cfg.Capture), Log: log.With("stage", "capture")},
		Tokens: &tokens.Extractor{
			Provider:    provider,
			Model:       visionModel,
			Temperature: cfg.AI.Temperature,
			Log:         log.With("stage", "tokens"),
		},
		Blueprint: &blueprint.Generator{
			Provider:    provider,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			HTMLLimit:   cfg.Capture.HTMLLimit,
			Log:         log.With("stage", "blueprint"),
		},
		Codegen: &codegen.Generator{
			Provider:    provider,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			MaxTokens:   cfg.AI.MaxTokens,
			Log:         log.With("stage", "codegen"),
		},
		Assembler:      &assemble.Assembler{Log: log.With("stage", "assemble")},
		Compliance:     &compliance.Validator{Log: log.With("stage", "compliance")},
		VisionMaxWidth: cfg.Capture.VisionMaxWidth,
		MaxSupporting:  cfg.Generation.MaxSupportingSections,
		Log:            log,
	}

	if cfg.Generation.GenerateAssets {
		imager, err := newImager(ctx, cfg, provider)
		if err != nil {
			return nil, err
		}
		p.Assets = &assets.Generator{
			Imager: imager,
			Store:  storage.NewLocal(cfg.Storage.Root, cfg.Storage.BaseURL),
			Log:    log.With("stage", "assets"),
		}
	}
	return p, nil
}

// newImager reuses the Gemini client when Gemini is also the text provider.
func newImager(ctx context.Context, cfg *config.Config, provider ai.Provider) (assets.Imager, error) {
	if gp, ok := provider.(*ai.GeminiProvider); ok {
		return assets.NewGeminiImager(gp.Client(), cfg.AI.ImageModel), nil
	}
	imager, err := assets.NewGeminiImagerFromKey(ctx, cfg.AI.GeminiKey, cfg.AI.ImageModel)
	if err != nil {
		return nil, fmt.Errorf("asset generation: %w", err)
	}
	return imager, nil
}
