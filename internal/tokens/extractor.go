package tokens

import (
	"context"

	"github.com/v0xg/themeforge/internal/ai"
	"github.com/v0xg/themeforge/internal/logging"
)

// Stage names used in errors and logs.
const (
	StageVision     = "tokens.vision"
	StageStylesheet = "tokens.stylesheet"
)

// stylesheetLimit bounds the CSS sent to the model.
const stylesheetLimit = 20000

// Image is a base64 encoded screenshot.
type Image struct {
	Base64 string
	MIME   string
}

// Extractor derives DesignTokens from a screenshot and optional raw CSS.
type Extractor struct {
	Provider    ai.Provider
	Model       string
	Temperature float64
	Log         *logging.Logger
}

// Extract runs vision and stylesheet analysis concurrently and merges them.
// A vision failure is returned; a stylesheet failure degrades to an empty
// partial.
func (e *Extractor) Extract(ctx context.Context, shot Image, css string) (*DesignTokens, error) {
	partials, err := ai.FanOut(ctx,
		func(ctx context.Context) (Partial, error) {
			return e.vision(ctx, shot)
		},
		func(ctx context.Context) (Partial, error) {
			return e.stylesheet(ctx, css), nil
		},
	)
	if err != nil {
		return nil, err
	}
	return Finalize(Merge(partials[0], partials[1])), nil
}

func (e *Extractor) vision(ctx context.Context, shot Image) (Partial, error) {
	var p Partial
	err := ai.GenerateJSON(ctx, e.Provider, StageVision, ai.Request{
		Model:       e.Model,
		Prompt:      ai.Join(visionPrompt, ai.JSONOnly),
		Temperature: e.Temperature,
		ImageBase64: shot.Base64,
		ImageMIME:   shot.MIME,
	}, &p)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = Partial{}
	}
	return p, nil
}

func (e *Extractor) stylesheet(ctx context.Context, css string) Partial {
	if css == "" {
		return Partial{}
	}
	var p Partial
	err := ai.GenerateJSON(ctx, e.Provider, StageStylesheet, ai.Request{
		Model:       e.Model,
		Prompt:      ai.Join(stylesheetPrompt+ai.Truncate(css, stylesheetLimit), ai.JSONOnly),
		Temperature: e.Temperature,
	}, &p)
	if err != nil {
		e.Log.Warn("stylesheet analysis failed, continuing with vision tokens only", "error", err.Error())
		return Partial{}
	}
	if p == nil {
		return Partial{}
	}
	return p
}
