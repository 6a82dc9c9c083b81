package ai

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider using the Google GenAI SDK.
type GeminiProvider struct {
	client *genai.Client
	opts   Options
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, opts Options) (*GeminiProvider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("THEMEFORGE_AI_GEMINI_KEY or GEMINI_API_KEY environment variable required")
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiProvider{client: client, opts: opts}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

// Client exposes the underlying SDK client so the image generator can share it.
func (p *GeminiProvider) Client() *genai.Client { return p.client }

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := callContext(ctx, p.opts.Timeout)
	defer cancel()

	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.HasImage() {
		data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return "", fmt.Errorf("decode inline image: %w", err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, req.ImageMIME))
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(maxTokens(req, p.opts)),
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx,
		modelFor(req, p.opts.Model),
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		cfg,
	)
	if err != nil {
		return "", &CallError{Provider: p.Name(), Err: err}
	}

	text := resp.Text()
	if text == "" {
		return "", &CallError{Provider: p.Name(), Err: ErrEmptyResponse}
	}
	return text, nil
}
